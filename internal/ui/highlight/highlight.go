package highlight

import (
	"bytes"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
)

const defaultStyle = "nord"

var (
	mu    sync.RWMutex
	style = defaultStyle
)

// SetStyle selects the chroma style used by SQL. An empty name restores the default.
func SetStyle(name string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(name) == "" {
		name = defaultStyle
	}
	style = name
}

// Style returns the active chroma style name
func Style() string {
	mu.RLock()
	defer mu.RUnlock()
	return style
}

// SQL returns sql with terminal colour codes. The text is returned unchanged if
// the lexer or formatter fails.
func SQL(sql string) string {
	if sql == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, sql, "sql", "terminal256", Style()); err != nil {
		return sql
	}

	out := buf.String()
	// the formatter terminates the last line even when the input does not
	if !strings.HasSuffix(sql, "\n") {
		out = strings.TrimSuffix(out, "\n")
	}
	return out
}
