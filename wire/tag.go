package wire

import "fmt"

// Type is the high nibble of a tag byte.
type Type byte

const (
	Null            Type = 0x0
	Int             Type = 0xa
	Float           Type = 0xb
	Bool            Type = 0xc
	String          Type = 0xd
	Boundary        Type = 0xe
	DictionaryStart Type = 0xf
)

const (
	// RecordBoundary terminates every record.
	RecordBoundary byte = byte(Boundary) << 4
	// DictStart opens the trailing dictionary block.
	DictStart byte = byte(DictionaryStart) << 4

	// FloatSize is the payload size of FLOAT fields.
	FloatSize = 4
	// MaxIntSize is the largest INT payload.
	MaxIntSize = 8
)

// Tag builds a tag byte.
func Tag(t Type, low byte) byte {
	return byte(t)<<4 | low&0x0f
}

// Split splits a tag byte into its type and low nibble.
func Split(tag byte) (Type, byte) {
	return Type(tag >> 4), tag & 0x0f
}

func (t Type) String() string {
	switch t {
	case Null:
		return "NULL"
	case Int:
		return "INT"
	case Float:
		return "FLOAT"
	case Bool:
		return "BOOL"
	case String:
		return "STRING"
	case Boundary:
		return "RECORD_BOUNDARY"
	case DictionaryStart:
		return "DICTIONARY_START"
	default:
		return fmt.Sprintf("Type(%#x)", byte(t))
	}
}

// Valid reports whether t is one of the defined field types.
func (t Type) Valid() bool {
	switch t {
	case Null, Int, Float, Bool, String, Boundary, DictionaryStart:
		return true
	default:
		return false
	}
}
