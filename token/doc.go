// Package token provides tokenization support for single JSON records.
//
// [Tokenize] is a function for tokenizing the bytes of one record. Token
// bytes alias the input and string tokens keep their surrounding quotes.
//
// [Scanner] walks the tokens of a record and reports structural events in
// document order, distinguishing object keys from values.
package token
