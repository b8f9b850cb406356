// Package compression wraps jkc output in an optional compressed framing.
//
// The raw jkc format never starts with a zstd or lz4 frame magic (its
// first byte is a tag byte), so readers can detect the framing.
package compression

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm identifies the framing of a stream.
type Algorithm uint8

const (
	None Algorithm = iota
	Zstd
	LZ4
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", a)
	}
}

// Parse parses an algorithm from its string representation.
func Parse(name string) (Algorithm, error) {
	switch name {
	case "none", "":
		return None, nil
	case "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(d []byte) error {
	p, err := Parse(string(d))
	if err != nil {
		return err
	}
	*a = p
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NewWriter returns a writer compressing to w. Closing it flushes the
// framing but does not close w.
func NewWriter(w io.Writer, a Algorithm) (io.WriteCloser, error) {
	switch a {
	case None:
		return nopCloser{w}, nil
	case Zstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return zw, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", a)
	}
}

// Detect reports the framing at the start of r without consuming it.
func Detect(r *bufio.Reader) (Algorithm, error) {
	head, err := r.Peek(4)
	if err != nil && err != io.EOF {
		return None, err
	}
	switch {
	case bytes.Equal(head, zstdMagic):
		return Zstd, nil
	case bytes.Equal(head, lz4Magic):
		return LZ4, nil
	default:
		return None, nil
	}
}

// NewReader returns a reader decompressing r, detecting the framing.
func NewReader(r io.Reader) (io.ReadCloser, Algorithm, error) {
	br := bufio.NewReader(r)
	a, err := Detect(br)
	if err != nil {
		return nil, None, err
	}
	switch a {
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, a, fmt.Errorf("zstd reader: %w", err)
		}
		return zr.IOReadCloser(), a, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(br)), a, nil
	default:
		return io.NopCloser(br), a, nil
	}
}
