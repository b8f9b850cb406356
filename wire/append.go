package wire

import (
	"encoding/binary"
	"math"
	"math/bits"
)

// MinimalBytes returns the number of big-endian bytes needed to hold v
// without leading zero bytes. Zero needs one byte.
func MinimalBytes(v uint64) int {
	if v == 0 {
		return 1
	}
	return (bits.Len64(v) + 7) / 8
}

// AppendUint appends a field of type t whose payload is the minimal
// big-endian encoding of v.
func AppendUint(dst []byte, t Type, v uint64) []byte {
	n := MinimalBytes(v)
	var word [8]byte
	binary.BigEndian.PutUint64(word[:], v)
	dst = append(dst, Tag(t, byte(n)))
	return append(dst, word[8-n:]...)
}

// AppendInt appends an INT field.
func AppendInt(dst []byte, v int64) []byte {
	return AppendUint(dst, Int, uint64(v))
}

// AppendFloat appends a FLOAT field.
func AppendFloat(dst []byte, f float32) []byte {
	dst = append(dst, Tag(Float, FloatSize))
	return binary.BigEndian.AppendUint32(dst, math.Float32bits(f))
}

// AppendString appends a STRING field holding s verbatim.
func AppendString(dst []byte, s []byte) []byte {
	dst = AppendUint(dst, String, uint64(len(s)))
	return append(dst, s...)
}

// AppendBool appends a BOOL field.
func AppendBool(dst []byte, b bool) []byte {
	if b {
		return append(dst, Tag(Bool, 1))
	}
	return append(dst, Tag(Bool, 0))
}

// AppendNull appends a NULL field.
func AppendNull(dst []byte) []byte {
	return append(dst, Tag(Null, 0))
}
