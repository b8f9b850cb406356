package token

import (
	"fmt"
	"strconv"
)

// sampleRadius is how many bytes on each side of an offset are shown in
// error messages.
const sampleRadius = 6

// Pos is a byte offset into the record being tokenized.
type Pos struct {
	Off int
	rec []byte
}

func at(rec []byte, off int) Pos {
	return Pos{Off: off, rec: rec}
}

// Sample returns the bytes around the offset, quoted without the
// surrounding quotes.
func (p Pos) Sample() string {
	if p.rec == nil {
		return ""
	}
	lo := max(0, p.Off-sampleRadius)
	hi := min(len(p.rec), p.Off+sampleRadius)
	q := strconv.Quote(string(p.rec[lo:hi]))
	return q[1 : len(q)-1]
}

func (p Pos) String() string {
	return fmt.Sprintf("offset %d near `%s`", p.Off, p.Sample())
}
