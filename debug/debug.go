package debug

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/segmentio/encoding/json"
)

type debug struct {
	Records bool
	Dict    bool
	Tokens  bool
}

var (
	d   *debug
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

func init() {
	d = &debug{}
	d.Records = boolEnv("JKC_DEBUG_RECORDS")
	d.Dict = boolEnv("JKC_DEBUG_DICT")
	d.Tokens = boolEnv("JKC_DEBUG_TOKENS")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Records traces each framed record.
func Records() bool {
	return d.Records
}

// Dict traces dictionary assignments and the flush.
func Dict() bool {
	return d.Dict
}

// Tokens dumps the tokens of records which fail to encode.
func Tokens() bool {
	return d.Tokens
}

// Output returns the writer debug output goes to.
func Output() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// SetOutput redirects debug output, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case []byte:
			args[i] = strconv.Quote(string(x))
		case map[string]any, []any:
			b, err := json.Marshal(x)
			if err != nil {
				args[i] = fmt.Sprintf("%v", x)
				continue
			}
			args[i] = string(b)
		}
	}
	fmt.Fprintf(Output(), msg, args...)
}

func LogAny(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(Output(), "%v\n", v)
		return
	}
	Output().Write(b)
}
