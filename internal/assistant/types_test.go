package assistant

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseKeepsColumnOrder(t *testing.T) {
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(`{
		"sql": "SELECT z, a, m FROM t",
		"resultados": [{"z": 1, "a": "x", "m": null}, {"m": true, "z": 2.50, "a": "y"}]
	}`), &resp))

	require.Len(t, resp.Results, 2)
	assert.True(t, resp.HasResults)
	assert.Equal(t, []string{"z", "a", "m"}, resp.Results[0].Keys)
	assert.Equal(t, []string{"m", "z", "a"}, resp.Results[1].Keys)

	v, ok := resp.Results[1].Value("z")
	assert.True(t, ok)
	assert.Equal(t, "2.50", v)
	v, _ = resp.Results[0].Value("m")
	assert.Equal(t, "null", v)
	v, _ = resp.Results[1].Value("m")
	assert.Equal(t, "true", v)
}

func TestResponseResultsPresence(t *testing.T) {
	cases := map[string]bool{
		`{}`:                  false,
		`{"resultados": null}`: false,
		`{"resultados": []}`:   true,
		`{"resultados": [{}]}`: true,
	}
	for body, want := range cases {
		var resp Response
		require.NoError(t, json.Unmarshal([]byte(body), &resp), body)
		assert.Equal(t, want, resp.HasResults, body)
	}
}

func TestResponseErrorField(t *testing.T) {
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(`{"sql":"SELECT","error":"syntax error"}`), &resp))
	assert.True(t, resp.Failed())
	assert.False(t, resp.Saveable())

	require.NoError(t, json.Unmarshal([]byte(`{"error":{"code":42}}`), &resp))
	assert.Equal(t, `{"code":42}`, resp.Error)
	assert.Empty(t, resp.SQL)

	require.NoError(t, json.Unmarshal([]byte(`{"sql":"SELECT 1","resultados":[]}`), &resp))
	assert.False(t, resp.Failed())
	assert.True(t, resp.Saveable())
}

func TestResponseFalsyErrorIsNoError(t *testing.T) {
	for _, v := range []string{`false`, `0`, `0.0`, `""`, `null`} {
		var resp Response
		body := `{"sql":"SELECT 1","error":` + v + `,"resultados":[{"a":1}]}`
		require.NoError(t, json.Unmarshal([]byte(body), &resp), body)
		assert.Empty(t, resp.Error, body)
		assert.False(t, resp.Failed(), body)
		assert.True(t, resp.Saveable(), body)
	}

	for body, want := range map[string]string{
		`{"error":true}`: "true",
		`{"error":500}`:  "500",
	} {
		var resp Response
		require.NoError(t, json.Unmarshal([]byte(body), &resp), body)
		assert.Equal(t, want, resp.Error, body)
		assert.True(t, resp.Failed(), body)
	}
}

func TestRowRejectsNonObject(t *testing.T) {
	var resp Response
	assert.Error(t, json.Unmarshal([]byte(`{"resultados":[[1,2]]}`), &resp))
}

func TestRowMarshalPreservesOrder(t *testing.T) {
	var row Row
	require.NoError(t, json.Unmarshal([]byte(`{"b":1,"a":{"n":[1,2]}}`), &row))

	out, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":{"n":[1,2]}}`, string(out))

	v, _ := row.Value("a")
	assert.Equal(t, `{"n":[1,2]}`, v)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "null", FormatValue(nil))
	assert.Equal(t, "text", FormatValue("text"))
	assert.Equal(t, "10", FormatValue(json.Number("10")))
	assert.Equal(t, "false", FormatValue(false))
	assert.Equal(t, `["a"]`, FormatValue([]any{"a"}))
}
