package encode

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jkc/dict"
	"github.com/signadot/jkc/wire"
)

func quietLogger(buf *bytes.Buffer) *slog.Logger {
	if buf == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(buf, nil))
}

func encodeString(t *testing.T, in string, opts ...Option) []byte {
	t.Helper()
	out := &bytes.Buffer{}
	opts = append([]Option{Logger(quietLogger(nil))}, opts...)
	enc := New(opts...)
	n, err := enc.Write(out, []byte(in))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != len(in) {
		t.Fatalf("wrote %d of %d", n, len(in))
	}
	if err := enc.Close(out); err != nil {
		t.Fatalf("close: %v", err)
	}
	return out.Bytes()
}

func TestEncodeSingleKey(t *testing.T) {
	got := encodeString(t, "{\"a\":1}\n")
	want := []byte{
		0xa1, 0x01, 0xa1, 0x01, 0xe0,
		0xf0, 0xd1, 0x01, 'a', 0xa1, 0x01,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x\nwant % x", got, want)
	}
}

func TestEncodeLiterals(t *testing.T) {
	got := encodeString(t, `{"x":true,"y":false,"z":null}`+"\n")
	want := []byte{
		0xa1, 0x01, 0xc1,
		0xa1, 0x02, 0xc0,
		0xa1, 0x03, 0x00,
		0xe0,
		0xf0,
		0xd1, 0x01, 'x', 0xa1, 0x01,
		0xd1, 0x01, 'y', 0xa1, 0x02,
		0xd1, 0x01, 'z', 0xa1, 0x03,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x\nwant % x", got, want)
	}
}

func TestEncodeNumbers(t *testing.T) {
	got := encodeString(t, `{"f":3.5,"i":0,"n":-5,"b":256}`+"\n")
	want := []byte{
		0xa1, 0x01, 0xb4, 0x40, 0x60, 0x00, 0x00,
		0xa1, 0x02, 0xa1, 0x00,
		0xa1, 0x03, 0xa8, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfb,
		0xa1, 0x04, 0xa2, 0x01, 0x00,
		0xe0,
	}
	if !bytes.HasPrefix(got, want) {
		t.Errorf("got % x\nwant prefix % x", got, want)
	}
}

func TestEncodeStringsAndNesting(t *testing.T) {
	got := encodeString(t, `{"s":"h\"i","o":{"k":[1,"v"]}}`+"\n")
	s, err := wire.ReadStream(bytes.NewReader(got))
	if err != nil {
		t.Fatal(err)
	}
	want := [][]wire.Field{{
		{Type: wire.Int, Int: 1},
		{Type: wire.String, Bytes: []byte(`h\"i`)},
		{Type: wire.Int, Int: 2},
		{Type: wire.Int, Int: 3},
		{Type: wire.Int, Int: 1},
		{Type: wire.String, Bytes: []byte("v")},
	}}
	if diff := cmp.Diff(want, s.Records); diff != "" {
		t.Errorf("records (-want +got):\n%s", diff)
	}
	wantDict := []wire.DictEntry{{Key: "k", ID: 3}, {Key: "o", ID: 2}, {Key: "s", ID: 1}}
	if diff := cmp.Diff(wantDict, s.Dict); diff != "" {
		t.Errorf("dict (-want +got):\n%s", diff)
	}
}

func TestKeyReuse(t *testing.T) {
	in := "{\"a\":1,\"b\":2}\n{\"b\":3,\"a\":4}\n{\"a\":5}\n"
	out := &bytes.Buffer{}
	enc := New(Logger(quietLogger(nil)))
	if _, err := enc.Write(out, []byte(in)); err != nil {
		t.Fatal(err)
	}
	if enc.Dict().Len() != 2 {
		t.Errorf("dict len %d want 2", enc.Dict().Len())
	}
	if err := enc.Close(out); err != nil {
		t.Fatal(err)
	}
	s, err := wire.ReadStream(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Records) != 3 {
		t.Fatalf("%d records", len(s.Records))
	}
	if s.Records[1][0].Int != 2 || s.Records[1][2].Int != 1 {
		t.Errorf("record 1 keys %v", s.Records[1])
	}
	if len(s.Dict) != 2 {
		t.Errorf("dict %v", s.Dict)
	}
}

func TestChunkingInvariance(t *testing.T) {
	in := "{\"a\":1,\"b\":\"two\"}\n{\"c\":[true,false]}\n\n{\"a\":2.25}\n"
	whole := encodeString(t, in)

	out := &bytes.Buffer{}
	enc := New(Logger(quietLogger(nil)))
	for i := 0; i < len(in); i++ {
		n, err := enc.Write(out, []byte{in[i]})
		if err != nil || n != 1 {
			t.Fatalf("byte %d: n=%d err=%v", i, n, err)
		}
	}
	if err := enc.Close(out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(whole, out.Bytes()) {
		t.Errorf("bytewise writes differ:\n% x\n% x", whole, out.Bytes())
	}
	if !bytes.Equal(whole, encodeString(t, in)) {
		t.Error("encoding is not deterministic")
	}
}

func TestMalformedRecord(t *testing.T) {
	logBuf := &bytes.Buffer{}
	in := "{\"a\":1}\n{\"b:2}\n{\"c\":3}\n"
	out := &bytes.Buffer{}
	enc := New(Logger(quietLogger(logBuf)))
	if _, err := enc.Write(out, []byte(in)); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(out); err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0xa1, 0x01, 0xa1, 0x01, 0xe0,
		0xe0,
		0xa1, 0x02, 0xa1, 0x03, 0xe0,
		0xf0,
		0xd1, 0x01, 'a', 0xa1, 0x01,
		0xd1, 0x01, 'c', 0xa1, 0x02,
	}
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("got % x\nwant % x", out.Bytes(), want)
	}
	if !strings.Contains(logBuf.String(), "skipping record") || !strings.Contains(logBuf.String(), "record=1") {
		t.Errorf("log: %s", logBuf.String())
	}
	st := enc.Stats()
	if st.Records != 3 || st.Failed != 1 || st.Keys != 2 {
		t.Errorf("stats %+v", st)
	}
}

func TestFailedRecordRollsBackKeys(t *testing.T) {
	in := "{\"a\":1}\n{\"b\":1,\"c\":1234567890123456}\n{\"d\":2}\n"
	s, err := wire.ReadStream(bytes.NewReader(encodeString(t, in)))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Records) != 3 || len(s.Records[1]) != 0 {
		t.Fatalf("records %v", s.Records)
	}
	want := []wire.DictEntry{{Key: "a", ID: 1}, {Key: "d", ID: 2}}
	if diff := cmp.Diff(want, s.Dict); diff != "" {
		t.Errorf("dict (-want +got):\n%s", diff)
	}
}

func TestRecordLevelErrors(t *testing.T) {
	tests := []struct {
		in string
	}{
		{in: `{"n":1234567890123456}`},
		{in: `{"n":1e5}`},
		{in: `{"n":1.5e99}`},
		{in: `{"a":1,}`},
		{in: `{"a":[1}`},
	}
	for _, tt := range tests {
		s, err := wire.ReadStream(bytes.NewReader(encodeString(t, tt.in+"\n")))
		if err != nil {
			t.Errorf("%s: %v", tt.in, err)
			continue
		}
		if len(s.Records) != 1 || len(s.Records[0]) != 0 || len(s.Dict) != 0 {
			t.Errorf("%s: got %+v", tt.in, s)
		}
	}
}

func TestBufferOverflow(t *testing.T) {
	out := &bytes.Buffer{}
	enc := New(LineBufferSize(16), Logger(quietLogger(nil)))
	in := []byte("{\"a\":1}\n{\"bbbbbbbbbbbbbbbbbbbb\":1}\n{\"c\":1}\n")
	n, err := enc.Write(out, in)
	if !errors.Is(err, ErrBufferOverflow) {
		t.Fatalf("got %v want ErrBufferOverflow", err)
	}
	var tooLong *LineTooLongError
	if !errors.As(err, &tooLong) || tooLong.Cap != 16 {
		t.Errorf("got %v", err)
	}
	if n >= len(in) {
		t.Errorf("consumed %d of %d", n, len(in))
	}
	if !bytes.Equal(out.Bytes(), []byte{0xa1, 0x01, 0xa1, 0x01, 0xe0}) {
		t.Errorf("output % x", out.Bytes())
	}
	if _, err := enc.Write(out, []byte("{}\n")); !errors.Is(err, ErrBufferOverflow) {
		t.Errorf("second write: %v", err)
	}
	if err := enc.Close(out); !errors.Is(err, ErrBufferOverflow) {
		t.Errorf("close: %v", err)
	}
}

func TestLineExactlyAtCapacity(t *testing.T) {
	line := "{\"a\":12345678}\n"
	out := &bytes.Buffer{}
	enc := New(LineBufferSize(len(line)), Logger(quietLogger(nil)))
	if _, err := enc.Write(out, []byte(line+line)); err != nil {
		t.Fatal(err)
	}
	if enc.Stats().Records != 2 {
		t.Errorf("records %d", enc.Stats().Records)
	}
}

func TestTrailingLine(t *testing.T) {
	in := "{\"a\":1}\n{\"b\":2}"
	dropped := encodeString(t, in)
	s, err := wire.ReadStream(bytes.NewReader(dropped))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Records) != 1 || len(s.Dict) != 1 {
		t.Errorf("dropping: %+v", s)
	}

	flushed := encodeString(t, in, FlushTrailing(true))
	s, err = wire.ReadStream(bytes.NewReader(flushed))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Records) != 2 || len(s.Dict) != 2 {
		t.Errorf("flushing: %+v", s)
	}

	enc := New(Logger(quietLogger(nil)))
	out := &bytes.Buffer{}
	enc.Write(out, []byte(in))
	enc.Close(out)
	if enc.Stats().Dropped != len(`{"b":2}`) {
		t.Errorf("dropped %d", enc.Stats().Dropped)
	}
}

func TestDictOrder(t *testing.T) {
	in := "{\"z\":1,\"a\":2}\n"
	byKey := encodeString(t, in)
	byID := encodeString(t, in, DictOrder(dict.OrderID))
	sk, err := wire.ReadStream(bytes.NewReader(byKey))
	if err != nil {
		t.Fatal(err)
	}
	si, err := wire.ReadStream(bytes.NewReader(byID))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]wire.DictEntry{{Key: "a", ID: 2}, {Key: "z", ID: 1}}, sk.Dict); diff != "" {
		t.Errorf("key order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]wire.DictEntry{{Key: "z", ID: 1}, {Key: "a", ID: 2}}, si.Dict); diff != "" {
		t.Errorf("id order (-want +got):\n%s", diff)
	}
}

func TestClosed(t *testing.T) {
	enc := New()
	out := &bytes.Buffer{}
	if err := enc.Close(out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), []byte{0xf0}) {
		t.Errorf("empty stream % x", out.Bytes())
	}
	if _, err := enc.Write(out, []byte("{}\n")); err != ErrClosed {
		t.Errorf("write after close: %v", err)
	}
	if err := enc.Close(out); err != ErrClosed {
		t.Errorf("double close: %v", err)
	}
}

func TestClone(t *testing.T) {
	enc := New(Logger(quietLogger(nil)))
	first := &bytes.Buffer{}
	enc.Write(first, []byte("{\"a\":1}\n{\"b\""))

	c := enc.Clone()
	second := &bytes.Buffer{}
	if _, err := c.Write(second, []byte(":2}\n")); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(second); err != nil {
		t.Fatal(err)
	}
	if c.Dict().Len() != 2 || enc.Dict().Len() != 1 {
		t.Errorf("clone shares dictionary: %d %d", c.Dict().Len(), enc.Dict().Len())
	}
	want := []byte{0xa1, 0x02, 0xa1, 0x02, 0xe0}
	if !bytes.HasPrefix(second.Bytes(), want) {
		t.Errorf("clone output % x", second.Bytes())
	}
	if err := enc.Close(first); err != nil {
		t.Fatalf("first encoder close: %v", err)
	}
}

func TestAllowComments(t *testing.T) {
	in := "{\"a\":1, /* note */ \"b\":2,} // trailing\n"
	strictOut := encodeString(t, in)
	s, err := wire.ReadStream(bytes.NewReader(strictOut))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Records[0]) != 0 {
		t.Errorf("comments accepted without AllowComments: %v", s.Records[0])
	}
	s, err = wire.ReadStream(bytes.NewReader(encodeString(t, in, AllowComments(true))))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Records[0]) != 4 {
		t.Errorf("got %v", s.Records[0])
	}
}

func TestUnrecognizedValue(t *testing.T) {
	in := "{\"a\":NaN,\"b\":1}\n"
	dictBlock := []byte{
		0xf0,
		0xd1, 0x01, 'a', 0xa1, 0x01,
		0xd1, 0x01, 'b', 0xa1, 0x02,
	}
	got := encodeString(t, in)
	want := append([]byte{0xa1, 0x01, 0xa1, 0x02, 0xa1, 0x01, 0xe0}, dictBlock...)
	if !bytes.Equal(got, want) {
		t.Errorf("lenient: got % x\nwant % x", got, want)
	}

	logBuf := &bytes.Buffer{}
	out := &bytes.Buffer{}
	enc := New(Strict(true), Logger(quietLogger(logBuf)))
	if _, err := enc.Write(out, []byte(in)); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(out); err != nil {
		t.Fatal(err)
	}
	if want := []byte{0xe0, 0xf0}; !bytes.Equal(out.Bytes(), want) {
		t.Errorf("strict: got % x\nwant % x", out.Bytes(), want)
	}
	if !strings.Contains(logBuf.String(), ErrUnsupportedValueType.Error()) {
		t.Errorf("log: %s", logBuf.String())
	}
	if st := enc.Stats(); st.Failed != 1 || st.Keys != 0 {
		t.Errorf("stats %+v", st)
	}
}

func TestLeadingDotNumber(t *testing.T) {
	in := "{\"a\":.5,\"b\":1}\n"
	want := []byte{
		0xa1, 0x01, 0xb4, 0x3f, 0x00, 0x00, 0x00,
		0xa1, 0x02, 0xa1, 0x01,
		0xe0,
		0xf0,
		0xd1, 0x01, 'a', 0xa1, 0x01,
		0xd1, 0x01, 'b', 0xa1, 0x02,
	}
	for _, strict := range []bool{false, true} {
		if got := encodeString(t, in, Strict(strict)); !bytes.Equal(got, want) {
			t.Errorf("strict=%t: got % x\nwant % x", strict, got, want)
		}
	}
}

func TestRawStringBytes(t *testing.T) {
	in := "{\"a\":\"\xef\xbf\xbd\",\"b\":\"x\x7fy\"}\n"
	want := []byte{
		0xa1, 0x01, 0xd3, 0xef, 0xbf, 0xbd,
		0xa1, 0x02, 0xd3, 'x', 0x7f, 'y',
		0xe0,
		0xf0,
		0xd1, 0x01, 'a', 0xa1, 0x01,
		0xd1, 0x01, 'b', 0xa1, 0x02,
	}
	if got := encodeString(t, in); !bytes.Equal(got, want) {
		t.Errorf("got % x\nwant % x", got, want)
	}
}

func TestAppendNumberOverflow(t *testing.T) {
	enc := New()
	if _, err := enc.appendNumber(nil, []byte("123456789012345")); err != nil {
		t.Errorf("15 digits: %v", err)
	}
	_, err := enc.appendNumber(nil, []byte("1234567890123456"))
	if !errors.Is(err, ErrNumberTokenOverflow) {
		t.Errorf("16 digits: %v", err)
	}
	enc = New(MaxNumberLen(3))
	if _, err := enc.appendNumber(nil, []byte("1.25")); !errors.Is(err, ErrNumberTokenOverflow) {
		t.Errorf("max 3: %v", err)
	}
}
