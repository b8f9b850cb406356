package token

import (
	"io"
)

type scanState int

const (
	stValue        scanState = iota // a value is required
	stValueOrClose                  // after '['
	stKeyOrClose                    // after '{'
	stKey                           // after ',' in an object
	stColon                         // after a key
	stCommaOrClose                  // after a value in a container
	stDone                          // top level value complete
)

// Scanner reports the structural events of one JSON record.
//
// A Scanner is reused across records with [Scanner.Reset]; events
// returned by [Scanner.Next] reference the record passed to the most
// recent Reset.
type Scanner struct {
	toks  []Token
	i     int
	stack []*Token
	state scanState
	err   error
}

// NewScanner creates a scanner positioned at the start of rec.
func NewScanner(rec []byte, opts ...ScanOpt) *Scanner {
	opt := &scanOpts{}
	for _, o := range opts {
		o(opt)
	}
	s := &Scanner{
		stack: make([]*Token, 0, max(opt.depthHint, 0)),
	}
	s.Reset(rec)
	return s
}

// Reset positions the scanner at the start of rec, reusing its buffers.
// A tokenization failure is reported by the first call to Next.
func (s *Scanner) Reset(rec []byte) {
	s.i = 0
	s.stack = s.stack[:0]
	s.state = stValue
	s.err = nil
	toks, err := Tokenize(s.toks[:0], rec)
	if err != nil {
		s.toks = s.toks[:0]
		s.err = err
		return
	}
	s.toks = toks
}

// Depth returns the current nesting depth (0 = top level).
func (s *Scanner) Depth() int {
	return len(s.stack)
}

// Next returns the next event of the record. It returns io.EOF after the
// top level value is complete. A record holding only whitespace yields
// io.EOF straight away.
func (s *Scanner) Next() (Event, error) {
	for {
		if s.err != nil {
			return Event{}, s.err
		}
		if s.i >= len(s.toks) {
			return Event{}, s.end()
		}
		tok := &s.toks[s.i]
		s.i++
		ev, ok, err := s.step(tok)
		if err != nil {
			s.err = err
			return Event{}, err
		}
		if ok {
			return ev, nil
		}
	}
}

func (s *Scanner) end() error {
	if len(s.stack) > 0 {
		s.err = &ErrImbalancedStructure{Open: s.stack[len(s.stack)-1]}
		return s.err
	}
	switch s.state {
	case stDone:
		return io.EOF
	case stValue:
		if len(s.toks) == 0 {
			return io.EOF
		}
	}
	last := &s.toks[len(s.toks)-1]
	s.err = UnexpectedErr("end after "+string(last.Bytes), last.Pos)
	return s.err
}

func (s *Scanner) step(tok *Token) (Event, bool, error) {
	switch s.state {
	case stDone:
		return Event{}, false, NewTokenizeErr(ErrTrailing, tok.Pos)
	case stColon:
		if tok.Type != TColon {
			return Event{}, false, ExpectedErr("':'", tok.Pos)
		}
		s.state = stValue
		return Event{}, false, nil
	case stKeyOrClose, stKey:
		switch tok.Type {
		case TString:
			s.state = stColon
			return Event{Type: EventKey, Token: *tok}, true, nil
		case TRCurl:
			if s.state == stKey {
				return Event{}, false, UnexpectedErr("'}' after ','", tok.Pos)
			}
			return s.close(tok)
		default:
			return Event{}, false, ExpectedErr("string key", tok.Pos)
		}
	case stCommaOrClose:
		switch tok.Type {
		case TComma:
			if s.top().Type == TLCurl {
				s.state = stKey
			} else {
				s.state = stValue
			}
			return Event{}, false, nil
		case TRCurl, TRSquare:
			return s.close(tok)
		default:
			return Event{}, false, ExpectedErr("',' or close", tok.Pos)
		}
	}
	// stValue, stValueOrClose
	switch tok.Type {
	case TLCurl:
		s.stack = append(s.stack, tok)
		s.state = stKeyOrClose
		return Event{Type: EventBeginObject, Token: *tok}, true, nil
	case TLSquare:
		s.stack = append(s.stack, tok)
		s.state = stValueOrClose
		return Event{Type: EventBeginArray, Token: *tok}, true, nil
	case TRCurl, TRSquare:
		if len(s.stack) == 0 || (s.state == stValueOrClose && tok.Type == TRSquare) {
			return s.close(tok)
		}
	}
	if !tok.Type.IsScalar() {
		return Event{}, false, UnexpectedErr(string(tok.Bytes), tok.Pos)
	}
	s.afterValue()
	return Event{Type: EventValue, Token: *tok}, true, nil
}

func (s *Scanner) top() *Token {
	return s.stack[len(s.stack)-1]
}

func (s *Scanner) afterValue() {
	if len(s.stack) == 0 {
		s.state = stDone
		return
	}
	s.state = stCommaOrClose
}

func (s *Scanner) close(tok *Token) (Event, bool, error) {
	if len(s.stack) == 0 {
		return Event{}, false, &ErrImbalancedStructure{Close: tok}
	}
	open := s.top()
	want := TRCurl
	ev := EventEndObject
	if open.Type == TLSquare {
		want = TRSquare
		ev = EventEndArray
	}
	if tok.Type != want {
		return Event{}, false, &ErrImbalancedStructure{Open: open, Close: tok}
	}
	s.stack = s.stack[:len(s.stack)-1]
	s.afterValue()
	return Event{Type: ev, Token: *tok}, true, nil
}
