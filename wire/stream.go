package wire

import (
	"errors"
	"fmt"
	"io"
)

// DictEntry is one (key, id) pair of the dictionary block.
type DictEntry struct {
	Key string
	ID  int64
}

// Stream is a fully decoded jkc stream.
type Stream struct {
	Records [][]Field
	Dict    []DictEntry
}

// Keys returns the dictionary indexed by id.
func (s *Stream) Keys() map[int64]string {
	res := make(map[int64]string, len(s.Dict))
	for _, e := range s.Dict {
		res[e.ID] = e.Key
	}
	return res
}

// ReadStream decodes a whole stream. Records are returned without their
// boundary markers. The partially decoded stream is returned along with
// any error.
func ReadStream(r io.Reader) (*Stream, error) {
	rd := NewReader(r)
	s := &Stream{Records: [][]Field{}, Dict: []DictEntry{}}
	rec := []Field{}
	for {
		f, err := rd.ReadField()
		if err == io.EOF {
			return s, ErrMissingDictionary
		}
		if err != nil {
			return s, err
		}
		switch f.Type {
		case Boundary:
			s.Records = append(s.Records, rec)
			rec = []Field{}
			continue
		case DictionaryStart:
			if len(rec) != 0 {
				return s, fmt.Errorf("%w: %d fields after the last record boundary", ErrMalformed, len(rec))
			}
			return s, readDict(rd, s)
		}
		rec = append(rec, f)
	}
}

func readDict(rd *Reader, s *Stream) error {
	for {
		k, err := rd.ReadField()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if k.Type != String {
			return fmt.Errorf("%w: dictionary key is %s at offset %d", ErrMalformed, k.Type, rd.Offset())
		}
		id, err := rd.ReadField()
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}
		if id.Type != Int {
			return fmt.Errorf("%w: dictionary id is %s at offset %d", ErrMalformed, id.Type, rd.Offset())
		}
		s.Dict = append(s.Dict, DictEntry{Key: string(k.Bytes), ID: id.Int})
	}
}
