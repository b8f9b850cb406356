// Package dump renders decoded jkc streams for people and for JSON tools.
package dump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/jkc/wire"

	"github.com/segmentio/encoding/json"
)

type Option func(*opts)

type opts struct {
	colors *Colors
}

// WithColors colors Text output. A nil Colors disables coloring.
func WithColors(c *Colors) Option {
	return func(o *opts) { o.colors = c }
}

// Flat reports whether rec alternates dictionary ids and values.
func Flat(rec []wire.Field, keys map[int64]string) bool {
	if len(rec)%2 != 0 {
		return false
	}
	for i := 0; i < len(rec); i += 2 {
		if rec[i].Type != wire.Int {
			return false
		}
		if _, ok := keys[rec[i].Int]; !ok {
			return false
		}
	}
	return true
}

// Text writes one line per record followed by the dictionary.
func Text(w io.Writer, s *wire.Stream, options ...Option) error {
	o := &opts{}
	for _, opt := range options {
		opt(o)
	}
	c := o.colors
	sep := c.Color(wire.Boundary, SepColor)
	keyColor := c.Color(wire.Int, KeyColor)
	keys := s.Keys()
	bw := bufio.NewWriter(w)
	for i, rec := range s.Records {
		bw.WriteString(c.Color(wire.Boundary, IndexColor)("#" + strconv.Itoa(i)))
		bw.WriteByte(' ')
		flat := Flat(rec, keys)
		lb, rb := "[", "]"
		if flat {
			lb, rb = "{", "}"
		}
		bw.WriteString(sep(lb))
		for j := 0; j < len(rec); j++ {
			if j > 0 {
				bw.WriteString(sep(", "))
			}
			if flat {
				bw.WriteString(keyColor(keys[rec[j].Int]))
				bw.WriteString(sep(": "))
				j++
			}
			f := rec[j]
			bw.WriteString(c.Color(f.Type, ValueColor)(f.String()))
		}
		bw.WriteString(sep(rb))
		bw.WriteByte('\n')
	}
	bw.WriteString(c.Color(wire.DictionaryStart, SepColor)(fmt.Sprintf("dict (%d):", len(s.Dict))))
	for _, e := range s.Dict {
		bw.WriteByte(' ')
		bw.WriteString(keyColor(e.Key))
		bw.WriteString(sep("="))
		bw.WriteString(strconv.FormatInt(e.ID, 10))
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

// JSON writes one JSON value per record.
func JSON(w io.Writer, s *wire.Stream) error {
	keys := s.Keys()
	bw := bufio.NewWriter(w)
	var buf []byte
	for i, rec := range s.Records {
		var err error
		buf, err = AppendRecord(buf[:0], rec, keys)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// AppendRecord appends rec as a JSON object when it is flat and as a JSON
// array otherwise.
func AppendRecord(dst []byte, rec []wire.Field, keys map[int64]string) ([]byte, error) {
	flat := Flat(rec, keys)
	if flat {
		dst = append(dst, '{')
	} else {
		dst = append(dst, '[')
	}
	for j := 0; j < len(rec); j++ {
		if j > 0 {
			dst = append(dst, ',')
		}
		if flat {
			var err error
			dst, err = appendString(dst, []byte(keys[rec[j].Int]))
			if err != nil {
				return dst, err
			}
			dst = append(dst, ':')
			j++
		}
		var err error
		dst, err = appendField(dst, rec[j])
		if err != nil {
			return dst, err
		}
	}
	if flat {
		return append(dst, '}'), nil
	}
	return append(dst, ']'), nil
}

func appendField(dst []byte, f wire.Field) ([]byte, error) {
	var v any
	switch f.Type {
	case wire.Null:
		return append(dst, "null"...), nil
	case wire.Int:
		v = f.Int
	case wire.Float:
		v = f.Float
	case wire.Bool:
		v = f.Bool
	case wire.String:
		return appendString(dst, f.Bytes)
	default:
		return dst, fmt.Errorf("%w: %s field in record", wire.ErrMalformed, f.Type)
	}
	d, err := json.Marshal(v)
	if err != nil {
		return dst, err
	}
	return append(dst, d...), nil
}

// appendString re-quotes string contents. The wire keeps JSON escapes
// verbatim, so contents are unescaped first and marshaled again.
func appendString(dst, raw []byte) ([]byte, error) {
	var s string
	quoted := make([]byte, 0, len(raw)+2)
	quoted = append(quoted, '"')
	quoted = append(quoted, raw...)
	quoted = append(quoted, '"')
	if err := json.Unmarshal(quoted, &s); err != nil {
		s = strings.ToValidUTF8(string(raw), "�")
	}
	d, err := json.Marshal(s)
	if err != nil {
		return dst, err
	}
	return append(dst, d...), nil
}
