package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/askdb/internal/assistant"
)

func decode(t *testing.T, body string) *assistant.Response {
	t.Helper()
	var resp assistant.Response
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return &resp
}

func TestErrorWinsOverOtherFields(t *testing.T) {
	for _, body := range []string{
		`{"error":"X"}`,
		`{"error":"X","sql":"SELECT 1"}`,
		`{"error":"X","resultados":[{"a":1}]}`,
	} {
		f := Response(decode(t, body))
		assert.Equal(t, KindError, f.Kind, body)
		assert.Equal(t, "X", f.Message, body)
		assert.Contains(t, f.View(80), ErrorPrefix+"X", body)
	}
}

func TestNoResults(t *testing.T) {
	for _, body := range []string{`{"resultados":[]}`, `{}`, `{"sql":"UPDATE t SET a=1"}`} {
		f := Response(decode(t, body))
		assert.Equal(t, KindEmpty, f.Kind, body)
		assert.Equal(t, EmptyMessage, f.Message, body)
		assert.Contains(t, f.View(80), EmptyMessage, body)
	}
	assert.Equal(t, KindEmpty, Response(nil).Kind)
}

func TestTableFromFirstRowKeys(t *testing.T) {
	f := Response(decode(t, `{"resultados":[{"a":1,"b":2},{"a":3,"b":4}]}`))

	require.Equal(t, KindTable, f.Kind)
	assert.Equal(t, []string{"a", "b"}, f.Columns)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, f.Rows)
}

func TestColumnOrderFollowsFirstRow(t *testing.T) {
	f := Response(decode(t, `{"resultados":[{"b":2,"a":1},{"a":3,"b":4}]}`))

	assert.Equal(t, []string{"b", "a"}, f.Columns)
	assert.Equal(t, [][]string{{"2", "1"}, {"4", "3"}}, f.Rows)
}

func TestLaterRowsAreReadThroughFirstRowColumns(t *testing.T) {
	f := Response(decode(t, `{"resultados":[{"a":1,"b":2},{"a":3,"c":9}]}`))

	assert.Equal(t, []string{"a", "b"}, f.Columns)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", ""}}, f.Rows)
}

func TestValuesRenderAsText(t *testing.T) {
	f := Response(decode(t, `{"resultados":[{"n":1.50,"s":"x","z":null,"b":false}]}`))
	assert.Equal(t, [][]string{{"1.50", "x", "null", "false"}}, f.Rows)
}

func TestTableView(t *testing.T) {
	f := Response(decode(t, `{"resultados":[{"nombre":"Ana","total":10},{"nombre":"Luis","total":7}]}`))
	out := f.View(0)

	for _, want := range []string{"nombre", "total", "Ana", "Luis", "10", "7", "2 rows"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "nombre"), strings.Index(out, "total"))
}
