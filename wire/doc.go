// Package wire defines the tagged binary encoding produced by jkc.
//
// Every field starts with a tag byte. The high nibble is the field
// [Type]; the low nibble is the payload byte count for INT, FLOAT and
// STRING fields, the value for BOOL fields, and 0 otherwise.
//
//	NULL     0x00
//	INT      0xa<n> n big-endian bytes, minimal, 0 is a single 0x00
//	FLOAT    0xb4   4 bytes, big-endian IEEE-754 binary32
//	BOOL     0xc0 / 0xc1
//	STRING   0xd<n> n big-endian length bytes (as INT), then the bytes
//
// A stream is a sequence of records, each terminated by RECORD_BOUNDARY
// (0xe0), followed by one dictionary block: DICTIONARY_START (0xf0) then
// (STRING key, INT id) pairs up to the end of the stream.
//
// INT payloads hold a 64-bit two's complement word with its leading zero
// bytes removed, so non-negative values take ceil(bitlen/8) bytes and
// negative values always take 8.
package wire
