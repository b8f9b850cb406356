package token

import (
	"fmt"
)

type TokenType int

const (
	TInteger TokenType = iota
	TFloat
	TColon
	TNull
	TTrue
	TFalse
	TString
	TLCurl
	TRCurl
	TLSquare
	TRSquare
	TComma
	// TPrimitive is a bare run of bytes starting no other token.
	TPrimitive
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TInteger:   "TInteger",
		TFloat:     "TFloat",
		TColon:     "TColon",
		TNull:      "TNull",
		TTrue:      "TTrue",
		TFalse:     "TFalse",
		TString:    "TString",
		TLCurl:     "TLCurl",
		TRCurl:     "TRCurl",
		TLSquare:   "TLSquare",
		TRSquare:   "TRSquare",
		TComma:     "TComma",
		TPrimitive: "TPrimitive",
	}[t]
}

// IsScalar reports whether the token is a complete value on its own.
func (t TokenType) IsScalar() bool {
	switch t {
	case TInteger, TFloat, TNull, TTrue, TFalse, TString, TPrimitive:
		return true
	default:
		return false
	}
}

type Token struct {
	Type  TokenType
	Pos   Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

func (t *Token) String() string {
	return string(t.Bytes)
}

type TokenizeErr struct {
	Err error
	Pos Pos
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func NewTokenizeErr(e error, p Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: p}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func ExpectedErr(what string, p Pos) error {
	return NewTokenizeErr(fmt.Errorf("expected %s", what), p)
}
func UnexpectedErr(what string, p Pos) error {
	return NewTokenizeErr(fmt.Errorf("unexpected %s", what), p)
}
