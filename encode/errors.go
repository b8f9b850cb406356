package encode

import (
	"errors"
	"fmt"
)

var (
	// ErrBufferOverflow is returned when a single line does not fit in the
	// line buffer. It is fatal for the stream.
	ErrBufferOverflow = errors.New("buffer overflow")

	ErrNumberTokenOverflow  = errors.New("number token overflow")
	ErrNumber               = errors.New("bad number")
	ErrUnsupportedValueType = errors.New("unsupported value type")
	ErrClosed               = errors.New("encoder closed")
)

// LineTooLongError details an [ErrBufferOverflow].
type LineTooLongError struct {
	Cap int
}

func (e *LineTooLongError) Error() string {
	return fmt.Sprintf("%s: line exceeds %d bytes", ErrBufferOverflow, e.Cap)
}

func (e *LineTooLongError) Unwrap() error {
	return ErrBufferOverflow
}
