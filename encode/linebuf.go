package encode

import (
	"bytes"
	"slices"
)

// LineBuffer is a fixed capacity buffer holding at most one partial line
// plus newly arrived bytes.
type LineBuffer struct {
	buf []byte
	n   int
}

func NewLineBuffer(size int) *LineBuffer {
	return &LineBuffer{buf: make([]byte, size)}
}

func (b *LineBuffer) Cap() int {
	return len(b.buf)
}

func (b *LineBuffer) Len() int {
	return b.n
}

func (b *LineBuffer) Free() int {
	return len(b.buf) - b.n
}

// Append copies as much of p as fits and returns the number of bytes
// copied.
func (b *LineBuffer) Append(p []byte) int {
	c := copy(b.buf[b.n:], p)
	b.n += c
	return c
}

// Line returns the first complete line, newline included, or nil. The
// result aliases the buffer and is valid until the next Consume.
func (b *LineBuffer) Line() []byte {
	i := bytes.IndexByte(b.buf[:b.n], '\n')
	if i < 0 {
		return nil
	}
	return b.buf[:i+1]
}

// Consume drops the first n buffered bytes, moving the rest to the front
// and zeroing the vacated tail.
func (b *LineBuffer) Consume(n int) {
	n = min(n, b.n)
	end := b.n
	copy(b.buf, b.buf[n:end])
	b.n -= n
	clear(b.buf[b.n:end])
}

// Pending returns the buffered bytes.
func (b *LineBuffer) Pending() []byte {
	return b.buf[:b.n]
}

func (b *LineBuffer) Reset() {
	b.Consume(b.n)
}

func (b *LineBuffer) Clone() *LineBuffer {
	return &LineBuffer{buf: slices.Clone(b.buf), n: b.n}
}
