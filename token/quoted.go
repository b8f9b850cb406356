package token

import (
	"unicode/utf8"
)

// bsEscQuoted returns the length of the double quoted string at the start
// of d, closing quote included. Escapes are checked, not decoded.
func bsEscQuoted(d []byte) (int, error) {
	if len(d) == 0 || d[0] != '"' {
		return 0, ErrUnterminated
	}
	escaped := false
	start := 1
	n := len(d)
	for start < n {
		r, sz := utf8.DecodeRune(d[start:])
		start += sz
		if r == utf8.RuneError && sz == 1 {
			return 0, ErrBadUTF8
		}
		switch r {
		case '"':
			if !escaped {
				return start, nil
			}
			escaped = false
		case 'u':
			if escaped {
				if start+4 > n {
					return start, ErrUnterminated
				}
				if !allHex(d[start : start+4]) {
					return start, ErrBadUnicode
				}
			}
			escaped = false
		case '/', 'b', 'f', 'n', 'r', 't':
			escaped = false
		case '\\':
			escaped = !escaped
		default:
			if r < 0x20 {
				return start, ErrUnicodeControl
			}
			if escaped {
				return start, ErrBadEscape
			}
			escaped = false
		}
	}
	return 0, ErrUnterminated
}

func allHex(d []byte) bool {
	for _, c := range d {
		if c >= '0' && c <= '9' {
			continue
		}
		if c >= 'a' && c <= 'f' {
			continue
		}
		if c >= 'A' && c <= 'F' {
			continue
		}
		return false
	}
	return true
}
