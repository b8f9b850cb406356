package debug

import (
	"bytes"
	"testing"
)

func TestLogf(t *testing.T) {
	buf := &bytes.Buffer{}
	prev := SetOutput(buf)
	defer SetOutput(prev)

	Logf("record %d %s %s\n", 3, []byte("a\n"), map[string]any{"k": 1})
	want := "record 3 \"a\\n\" {\"k\":1}\n"
	if buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
}

func TestBoolEnv(t *testing.T) {
	t.Setenv("JKC_TEST_FLAG", "true")
	if !boolEnv("JKC_TEST_FLAG") {
		t.Error("expected true")
	}
	t.Setenv("JKC_TEST_FLAG", "nope")
	if boolEnv("JKC_TEST_FLAG") {
		t.Error("expected false")
	}
}
