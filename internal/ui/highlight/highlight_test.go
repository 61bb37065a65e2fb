package highlight

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestSQLKeepsTextIntact(t *testing.T) {
	inputs := []string{
		"SELECT * FROM users",
		"SELECT name, count(*) AS n\nFROM orders\nWHERE total > 10.5 AND status = 'paid'\nGROUP BY name",
		"select 1;\n",
	}
	for _, in := range inputs {
		out := SQL(in)
		assert.Equal(t, in, ansi.ReplaceAllString(out, ""), "input %q", in)
	}
}

func TestSQLColoursKeywords(t *testing.T) {
	out := SQL("SELECT 1")
	assert.Contains(t, out, "\x1b[")
}

func TestSQLEmpty(t *testing.T) {
	assert.Equal(t, "", SQL(""))
}

func TestSetStyle(t *testing.T) {
	t.Cleanup(func() { SetStyle("") })

	SetStyle("monokai")
	assert.Equal(t, "monokai", Style())

	SetStyle("  ")
	assert.Equal(t, defaultStyle, Style())
}
