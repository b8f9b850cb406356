package encode

import (
	"fmt"
	"io"
)

// Writer binds an Encoder to a destination.
type Writer struct {
	dst io.Writer
	enc *Encoder
}

var _ io.WriteCloser = (*Writer)(nil)

func NewWriter(dst io.Writer, enc *Encoder) *Writer {
	return &Writer{dst: dst, enc: enc}
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.enc.Write(w.dst, p)
}

// Close closes the encoder. It does not close the destination.
func (w *Writer) Close() error {
	return w.enc.Close(w.dst)
}

func (w *Writer) Encoder() *Encoder {
	return w.enc
}

// EncodeStream encodes all of src to dst and closes the encoder.
func EncodeStream(dst io.Writer, src io.Reader, opts ...Option) (Stats, error) {
	enc := New(opts...)
	buf := make([]byte, readChunkSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := enc.Write(dst, buf[:n]); werr != nil {
				return enc.Stats(), werr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return enc.Stats(), fmt.Errorf("error reading input: %w", err)
		}
	}
	if err := enc.Close(dst); err != nil {
		return enc.Stats(), err
	}
	return enc.Stats(), nil
}
