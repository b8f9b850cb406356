package wire

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

var (
	ErrMalformed         = errors.New("malformed field")
	ErrMissingDictionary = errors.New("missing dictionary block")
)

const (
	// maxStringLen bounds STRING payloads accepted by the reader.
	maxStringLen = math.MaxInt32
	// stringChunk bounds the up front allocation for a STRING payload.
	// Longer payloads grow as their bytes arrive.
	stringChunk = 4096
)

// Field is one decoded field. Only the member matching Type is set.
type Field struct {
	Type  Type
	Int   int64
	Float float32
	Bool  bool
	Bytes []byte
}

func (f Field) String() string {
	switch f.Type {
	case Null:
		return "null"
	case Int:
		return strconv.FormatInt(f.Int, 10)
	case Float:
		return strconv.FormatFloat(float64(f.Float), 'g', -1, 32)
	case Bool:
		return strconv.FormatBool(f.Bool)
	case String:
		return strconv.Quote(string(f.Bytes))
	default:
		return f.Type.String()
	}
}

// Reader decodes fields from a byte stream.
type Reader struct {
	r   *bufio.Reader
	off int64
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.off
}

// ReadField reads the next field. It returns io.EOF only at a field
// boundary; a field cut short returns io.ErrUnexpectedEOF.
func (r *Reader) ReadField() (Field, error) {
	off := r.off
	tag, err := r.r.ReadByte()
	if err != nil {
		return Field{}, err
	}
	r.off++
	t, low := Split(tag)
	malformed := func(msg string) error {
		return fmt.Errorf("%w: %s tag %#02x at offset %d", ErrMalformed, msg, tag, off)
	}
	f := Field{Type: t}
	switch t {
	case Null, Boundary, DictionaryStart:
		if low != 0 {
			return Field{}, malformed("non zero low nibble in")
		}
	case Bool:
		if low > 1 {
			return Field{}, malformed("bad bool")
		}
		f.Bool = low == 1
	case Int:
		v, err := r.readUint(low)
		if err != nil {
			if errors.Is(err, ErrMalformed) {
				return Field{}, malformed("bad int length in")
			}
			return Field{}, err
		}
		f.Int = int64(v)
	case Float:
		if low != FloatSize {
			return Field{}, malformed("bad float length in")
		}
		var b [FloatSize]byte
		if err := r.readFull(b[:]); err != nil {
			return Field{}, err
		}
		f.Float = math.Float32frombits(binary.BigEndian.Uint32(b[:]))
	case String:
		n, err := r.readUint(low)
		if err != nil {
			if errors.Is(err, ErrMalformed) {
				return Field{}, malformed("bad string length in")
			}
			return Field{}, err
		}
		if n > maxStringLen {
			return Field{}, malformed("string too long in")
		}
		b, err := r.readString(int64(n))
		if err != nil {
			return Field{}, err
		}
		f.Bytes = b
	default:
		return Field{}, malformed("unknown type in")
	}
	return f, nil
}

func (r *Reader) readUint(n byte) (uint64, error) {
	if n == 0 || n > MaxIntSize {
		return 0, ErrMalformed
	}
	var b [MaxIntSize]byte
	if err := r.readFull(b[MaxIntSize-int(n):]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func (r *Reader) readString(n int64) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, min(n, stringChunk)))
	m, err := io.CopyN(buf, r.r, n)
	r.off += m
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Reader) readFull(b []byte) error {
	n, err := io.ReadFull(r.r, b)
	r.off += int64(n)
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
