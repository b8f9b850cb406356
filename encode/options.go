package encode

import (
	"log/slog"

	"github.com/signadot/jkc/dict"
)

const (
	DefaultLineBufferSize = 4096
	DefaultMaxNumberLen   = 15

	// readChunkSize is the read size used by EncodeStream.
	readChunkSize = 1024
	// keyDepthHint is the nesting depth the scanner is sized for.
	keyDepthHint = 2
)

type options struct {
	lineBufferSize int
	maxNumberLen   int
	order          dict.Order
	strict         bool
	flushTrailing  bool
	comments       bool
	log            *slog.Logger
}

// Option configures an Encoder.
type Option func(*options)

// LineBufferSize sets the maximum line length, newline included.
func LineBufferSize(n int) Option {
	return func(o *options) { o.lineBufferSize = n }
}

// MaxNumberLen sets the maximum length of a numeric token.
func MaxNumberLen(n int) Option {
	return func(o *options) { o.maxNumberLen = n }
}

// DictOrder sets the order of the dictionary block.
func DictOrder(order dict.Order) Option {
	return func(o *options) { o.order = order }
}

// Strict makes values with an unrecognized leading byte fail their record
// with ErrUnsupportedValueType instead of being left out.
func Strict(v bool) Option {
	return func(o *options) { o.strict = v }
}

// FlushTrailing makes Close encode a final line lacking its newline
// instead of dropping it.
func FlushTrailing(v bool) Option {
	return func(o *options) { o.flushTrailing = v }
}

// AllowComments accepts JSONC records: comments and trailing commas are
// blanked out before tokenizing.
func AllowComments(v bool) Option {
	return func(o *options) { o.comments = v }
}

// Logger sets the logger used for skipped records. nil means
// slog.Default().
func Logger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

func newOptions(opts []Option) options {
	o := options{
		lineBufferSize: DefaultLineBufferSize,
		maxNumberLen:   DefaultMaxNumberLen,
		order:          dict.OrderKey,
	}
	for _, f := range opts {
		f(&o)
	}
	if o.lineBufferSize <= 0 {
		o.lineBufferSize = DefaultLineBufferSize
	}
	if o.maxNumberLen <= 0 {
		o.maxNumberLen = DefaultMaxNumberLen
	}
	if o.log == nil {
		o.log = slog.Default()
	}
	return o
}
