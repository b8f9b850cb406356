package encode

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/signadot/jkc/debug"
	"github.com/signadot/jkc/dict"
	"github.com/signadot/jkc/token"
	"github.com/signadot/jkc/wire"

	"github.com/tidwall/jsonc"
)

// Encoder is a single use streaming encoder. It is fed with Write and
// finished with exactly one Close.
type Encoder struct {
	opts  options
	lines *LineBuffer
	dict  *dict.Dictionary
	scan  *token.Scanner
	rec   []byte // scratch for the record being encoded

	stats  Stats
	err    error // sticky, set on fatal errors
	closed bool
}

// Stats summarizes what an Encoder has done so far.
type Stats struct {
	// Records counts records written, failed ones included.
	Records int
	// Failed counts records written empty because they failed to encode.
	Failed int
	// Dropped is the size of an unterminated final line left out at Close.
	Dropped int
	// Keys is the size of the dictionary.
	Keys int
}

func New(opts ...Option) *Encoder {
	o := newOptions(opts)
	return &Encoder{
		opts:  o,
		lines: NewLineBuffer(o.lineBufferSize),
		dict:  dict.New(),
		scan:  token.NewScanner(nil, token.DepthHint(keyDepthHint)),
	}
}

// Clone returns an independent copy of e, including buffered input and
// the dictionary.
func (e *Encoder) Clone() *Encoder {
	return &Encoder{
		opts:   e.opts,
		lines:  e.lines.Clone(),
		dict:   e.dict.Clone(),
		scan:   token.NewScanner(nil, token.DepthHint(keyDepthHint)),
		stats:  e.stats,
		err:    e.err,
		closed: e.closed,
	}
}

func (e *Encoder) Stats() Stats {
	s := e.stats
	s.Keys = e.dict.Len()
	return s
}

// Dict returns the encoder's dictionary. It must not be modified.
func (e *Encoder) Dict() *dict.Dictionary {
	return e.dict
}

// Write consumes p, writing every record completed by it to dst. It
// returns the number of bytes of p consumed, which is less than len(p)
// only when an error is returned.
func (e *Encoder) Write(dst io.Writer, p []byte) (int, error) {
	if e.closed {
		return 0, ErrClosed
	}
	if e.err != nil {
		return 0, e.err
	}
	n := 0
	for {
		n += e.lines.Append(p[n:])
		if err := e.frame(dst); err != nil {
			return n, err
		}
		if n == len(p) {
			return n, nil
		}
		if e.lines.Free() == 0 {
			e.err = &LineTooLongError{Cap: e.lines.Cap()}
			return n, e.err
		}
	}
}

// frame encodes every complete line in the buffer.
func (e *Encoder) frame(dst io.Writer) error {
	for {
		line := e.lines.Line()
		if line == nil {
			return nil
		}
		if err := e.writeRecord(dst, line); err != nil {
			return err
		}
		e.lines.Consume(len(line))
	}
}

// writeRecord encodes one record and writes it terminated by a record
// boundary. A record which fails to encode is written empty and the
// dictionary ids it assigned are forgotten.
func (e *Encoder) writeRecord(dst io.Writer, line []byte) error {
	idx := e.stats.Records
	if debug.Records() {
		debug.Logf("record %d: %s\n", idx, line)
	}
	mark := e.dict.Mark()
	rec, err := e.appendRecord(e.rec[:0], line)
	if err != nil {
		e.dict.Rollback(mark)
		e.stats.Failed++
		e.opts.log.Warn("skipping record", slog.Int("record", idx), slog.Any("error", err))
		if debug.Tokens() {
			toks, _ := token.Tokenize(nil, line)
			token.PrintTokens(debug.Output(), toks, fmt.Sprintf("record %d", idx))
		}
		rec = e.rec[:0]
	}
	rec = append(rec, wire.RecordBoundary)
	e.rec = rec
	e.stats.Records++
	if _, err := dst.Write(rec); err != nil {
		e.err = fmt.Errorf("error writing record %d: %w", idx, err)
		return e.err
	}
	return nil
}

func (e *Encoder) appendRecord(dst, line []byte) ([]byte, error) {
	if e.opts.comments {
		line = jsonc.ToJSON(line)
	}
	e.scan.Reset(line)
	for {
		ev, err := e.scan.Next()
		if err == io.EOF {
			return dst, nil
		}
		if err != nil {
			return dst, err
		}
		switch ev.Type {
		case token.EventKey:
			dst = e.appendKey(dst, ev.Token.Bytes)
		case token.EventValue:
			dst, err = e.appendValue(dst, ev.Token.Bytes)
			if err != nil {
				return dst, err
			}
		}
	}
}

// Close finishes the stream: a buffered line without a newline is dropped
// (or encoded, see FlushTrailing) and the dictionary block is written to
// dst.
func (e *Encoder) Close(dst io.Writer) error {
	if e.closed {
		return ErrClosed
	}
	e.closed = true
	if e.err != nil {
		return e.err
	}
	if pending := e.lines.Pending(); len(pending) > 0 {
		switch {
		case len(bytes.TrimSpace(pending)) == 0:
		case e.opts.flushTrailing:
			if err := e.writeRecord(dst, pending); err != nil {
				return err
			}
		default:
			e.stats.Dropped = len(pending)
			e.opts.log.Warn("dropping unterminated final line", slog.Int("bytes", len(pending)))
		}
		e.lines.Reset()
	}
	return e.writeDict(dst)
}

func (e *Encoder) writeDict(dst io.Writer) error {
	buf := append(e.rec[:0], wire.DictStart)
	for _, ent := range e.dict.Entries(e.opts.order) {
		buf = wire.AppendString(buf, []byte(ent.Key))
		buf = wire.AppendInt(buf, int64(ent.ID))
	}
	e.rec = buf
	if debug.Dict() {
		debug.Logf("dict: flushing %d keys in %s order\n", e.dict.Len(), e.opts.order)
	}
	if _, err := dst.Write(buf); err != nil {
		e.err = fmt.Errorf("error writing dictionary: %w", err)
		return e.err
	}
	return nil
}
