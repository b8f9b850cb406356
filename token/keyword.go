package token

import (
	"unicode"
	"unicode/utf8"
)

func isKeyWordPrefix(d, pre []byte) bool {
	if len(d) < len(pre) {
		return false
	}
	for i := range pre {
		if d[i] != pre[i] {
			return false
		}
	}
	if len(d) == len(pre) {
		return true
	}
	r, _ := utf8.DecodeRune(d[len(pre):])
	return !isMidLiteral(r)
}

func isMidLiteral(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// primitive returns the length of the run at the start of d which ends at
// whitespace or at a structural byte.
func primitive(d []byte) int {
	for i, c := range d {
		switch c {
		case ' ', '\t', '\r', '\n', ',', ':', '{', '}', '[', ']', '"':
			if i > 0 {
				return i
			}
		}
	}
	return len(d)
}
