package token

// Tokenize appends the tokens of the JSON record src to dst. Token bytes
// alias src. Whitespace, including the terminating newline, produces no
// tokens. A run of bytes which starts no JSON token becomes a TPrimitive
// token, leaving it to the caller to accept or reject.
func Tokenize(dst []Token, src []byte) ([]Token, error) {
	var (
		i, n int
		c    byte
		d    = src
	)
	n = len(d)

	for i < n {
		c = d[i]
		switch c {
		case ' ', '\t', '\r', '\n':
			i++
		case ':':
			dst = append(dst, Token{
				Type:  TColon,
				Pos:   at(src, i),
				Bytes: d[i : i+1],
			})
			i++
		case ',':
			dst = append(dst, Token{
				Type:  TComma,
				Pos:   at(src, i),
				Bytes: d[i : i+1],
			})
			i++
		case '{':
			dst = append(dst, Token{
				Type:  TLCurl,
				Pos:   at(src, i),
				Bytes: d[i : i+1],
			})
			i++
		case '}':
			dst = append(dst, Token{
				Type:  TRCurl,
				Pos:   at(src, i),
				Bytes: d[i : i+1],
			})
			i++
		case '[':
			dst = append(dst, Token{
				Type:  TLSquare,
				Pos:   at(src, i),
				Bytes: d[i : i+1],
			})
			i++
		case ']':
			dst = append(dst, Token{
				Type:  TRSquare,
				Pos:   at(src, i),
				Bytes: d[i : i+1],
			})
			i++
		case '"':
			j, err := bsEscQuoted(d[i:])
			if err != nil {
				return nil, NewTokenizeErr(err, at(src, i))
			}
			dst = append(dst, Token{
				Type:  TString,
				Pos:   at(src, i),
				Bytes: d[i : i+j],
			})
			i += j
		case '-', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			if c == '-' && i == n-1 {
				return nil, UnexpectedErr("end", at(src, i))
			}
			sz, isFloat, err := Number(d[i:])
			if err != nil {
				return nil, NewTokenizeErr(err, at(src, i))
			}
			tok := Token{
				Type:  TInteger,
				Pos:   at(src, i),
				Bytes: d[i : i+sz],
			}
			if isFloat {
				tok.Type = TFloat
			}
			dst = append(dst, tok)
			i += sz
		case 'n':
			if !isKeyWordPrefix(d[i:], []byte("null")) {
				return nil, NewTokenizeErr(ErrLiteral, at(src, i))
			}
			dst = append(dst, Token{
				Type:  TNull,
				Pos:   at(src, i),
				Bytes: d[i : i+4],
			})
			i += 4
		case 't':
			if !isKeyWordPrefix(d[i:], []byte("true")) {
				return nil, NewTokenizeErr(ErrLiteral, at(src, i))
			}
			dst = append(dst, Token{
				Type:  TTrue,
				Pos:   at(src, i),
				Bytes: d[i : i+4],
			})
			i += 4
		case 'f':
			if !isKeyWordPrefix(d[i:], []byte("false")) {
				return nil, NewTokenizeErr(ErrLiteral, at(src, i))
			}
			dst = append(dst, Token{
				Type:  TFalse,
				Pos:   at(src, i),
				Bytes: d[i : i+5],
			})
			i += 5
		default:
			sz := primitive(d[i:])
			dst = append(dst, Token{
				Type:  TPrimitive,
				Pos:   at(src, i),
				Bytes: d[i : i+sz],
			})
			i += sz
		}
	}
	return dst, nil
}
