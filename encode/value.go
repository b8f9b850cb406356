package encode

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/signadot/jkc/debug"
	"github.com/signadot/jkc/wire"
)

// appendKey replaces a quoted key with its dictionary id.
func (e *Encoder) appendKey(dst, raw []byte) []byte {
	key := string(unquote(raw))
	n := e.dict.Len()
	id := e.dict.GetOrAssign(key)
	if debug.Dict() && id > n {
		debug.Logf("dict: %q -> %d\n", key, id)
	}
	return wire.AppendInt(dst, int64(id))
}

// appendValue encodes a raw value token, dispatching on its first byte.
// Values with an unrecognized first byte are left out unless the encoder
// is strict.
func (e *Encoder) appendValue(dst, raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return dst, nil
	}
	switch c := raw[0]; {
	case c == '"':
		return wire.AppendString(dst, unquote(raw)), nil
	case c == 't':
		return wire.AppendBool(dst, true), nil
	case c == 'f':
		return wire.AppendBool(dst, false), nil
	case c == 'n':
		return wire.AppendNull(dst), nil
	case c >= '0' && c <= '9', c == '-', c == '.':
		return e.appendNumber(dst, raw)
	default:
		if e.opts.strict {
			return dst, fmt.Errorf("%w: leading byte %q", ErrUnsupportedValueType, c)
		}
		return dst, nil
	}
}

// appendNumber encodes tokens holding a '.' as FLOAT and everything else
// as INT.
func (e *Encoder) appendNumber(dst, raw []byte) ([]byte, error) {
	if len(raw) > e.opts.maxNumberLen {
		return dst, fmt.Errorf("%w: %d bytes, max %d", ErrNumberTokenOverflow, len(raw), e.opts.maxNumberLen)
	}
	s := string(raw)
	if bytes.IndexByte(raw, '.') >= 0 {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return dst, fmt.Errorf("%w %q: %w", ErrNumber, s, err)
		}
		return wire.AppendFloat(dst, float32(f)), nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return dst, fmt.Errorf("%w %q: %w", ErrNumber, s, err)
	}
	return wire.AppendInt(dst, v), nil
}

// unquote strips the first and last byte. Escapes are kept as is.
func unquote(raw []byte) []byte {
	if len(raw) < 2 {
		return nil
	}
	return raw[1 : len(raw)-1]
}
