package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AskRequest is the body of POST /preguntar
type AskRequest struct {
	Question string `json:"pregunta"`
}

// SQLRequest is the body of POST /preguntar-sql
type SQLRequest struct {
	SQL string `json:"sql"`
}

// Response is what both endpoints return. HasResults distinguishes an absent
// "resultados" field from an empty one.
type Response struct {
	SQL        string `json:"sql,omitempty"`
	Error      string `json:"error,omitempty"`
	Results    []Row  `json:"resultados,omitempty"`
	HasResults bool   `json:"-"`
}

// Failed reports whether the service reported an error
func (r *Response) Failed() bool {
	return r.Error != ""
}

// Saveable reports whether the exchange produced SQL worth keeping
func (r *Response) Saveable() bool {
	return r.SQL != "" && r.Error == ""
}

// UnmarshalJSON records whether "resultados" was present
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw struct {
		SQL     *string         `json:"sql"`
		Error   json.RawMessage `json:"error"`
		Results json.RawMessage `json:"resultados"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Response{}
	if raw.SQL != nil {
		r.SQL = *raw.SQL
	}
	r.Error = errorText(raw.Error)

	if len(raw.Results) > 0 && !bytes.Equal(raw.Results, []byte("null")) {
		if err := json.Unmarshal(raw.Results, &r.Results); err != nil {
			return fmt.Errorf("resultados: %w", err)
		}
		r.HasResults = true
	}
	return nil
}

// errorText accepts a string error or any other JSON value the service sends.
// Falsy values (null, false, 0, "") mean no error.
func errorText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("false")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil && n == 0 {
		return ""
	}
	return string(raw)
}

// Row is one result object with its key order preserved
type Row struct {
	Keys   []string
	Values map[string]any
}

// Value returns the value under key as display text
func (r Row) Value(key string) (string, bool) {
	v, ok := r.Values[key]
	if !ok {
		return "", false
	}
	return FormatValue(v), true
}

// UnmarshalJSON walks the object token by token so Keys keeps the order the
// server sent
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row: expected object, got %v", tok)
	}

	r.Keys = nil
	r.Values = make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("row: expected key, got %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("row %q: %w", key, err)
		}
		if _, dup := r.Values[key]; !dup {
			r.Keys = append(r.Keys, key)
		}
		r.Values[key] = v
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON writes the object back in its original key order
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.Values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FormatValue renders a decoded JSON value as text, without type-specific
// formatting: numbers keep their literal form
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return strings.TrimSpace(string(b))
	}
}
