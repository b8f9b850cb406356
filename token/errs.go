package token

import (
	"errors"
	"fmt"
)

var (
	ErrBadUTF8           = errors.New("bad utf8")
	ErrUnterminated      = errors.New("unterminated string")
	ErrNumberLeadingZero = errors.New("number with leading zero")
	ErrDocBalance        = errors.New("imbalanced brackets")
	ErrLiteral           = errors.New("bad literal")
	ErrBadEscape         = errors.New("bad escape")
	ErrBadUnicode        = errors.New("bad unicode escape")
	ErrUnicodeControl    = errors.New("control character in string")
	ErrNumber            = errors.New("bad number")
	ErrTrailing          = errors.New("material after value")
)

// ErrImbalancedStructure reports a bracket without a partner. Open is nil
// for a stray close, Close is nil for a bracket left open at the end of
// the record.
type ErrImbalancedStructure struct {
	Open, Close *Token
}

func (e *ErrImbalancedStructure) Unwrap() error {
	return ErrDocBalance
}

func (e *ErrImbalancedStructure) Error() string {
	switch {
	case e.Open == nil:
		return fmt.Sprintf("%s: stray %s at %s", ErrDocBalance, e.Close.Bytes, e.Close.Pos)
	case e.Close == nil:
		return fmt.Sprintf("%s: %s at %s never closed", ErrDocBalance, e.Open.Bytes, e.Open.Pos)
	}
	return fmt.Sprintf("%s: %s at %s closed by %s at %s", ErrDocBalance,
		e.Open.Bytes, e.Open.Pos, e.Close.Bytes, e.Close.Pos)
}
