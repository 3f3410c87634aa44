// pkg/brew/output.go
package brew

import (
	"bytes"
	"strings"
	"sync"

	"golang.org/x/text/encoding/unicode"
)

// outputBuffer accumulates one stream of process output. Appends and the
// final read are mutually exclusive.
type outputBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *outputBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *outputBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return decodeText(b.buf.Bytes())
}

// decodeText converts tool output to a string, replacing invalid UTF-8
// sequences with U+FFFD instead of failing
func decodeText(p []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(p)
	if err != nil {
		return strings.ToValidUTF8(string(p), "�")
	}
	return string(out)
}

// splitLines breaks a chunk into its non-empty line fragments. A line that
// spans two chunks comes out as two fragments.
func splitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}
