// Package encode provides the streaming jkc encoder.
//
// An [Encoder] consumes newline delimited JSON records and writes the
// tagged binary form described in package wire. Object keys are replaced
// by integer ids; the id table is written once, as a trailing dictionary
// block, when the encoder is closed.
//
// The encoder does not hold on to an output. The destination is passed
// to each [Encoder.Write] and to [Encoder.Close]; [Writer] binds one for
// use as an io.WriteCloser.
//
// Records that fail to tokenize or encode are logged and written as empty
// records, so the output always holds one record per input line. A line
// longer than the line buffer is fatal: [ErrBufferOverflow].
package encode
