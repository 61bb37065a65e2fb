// Package render turns an assistant response into a display fragment.
package render

import (
	"github.com/nhath/askdb/internal/assistant"
)

// Kind selects which of the three fragment shapes applies
type Kind int

const (
	KindError Kind = iota
	KindEmpty
	KindTable
)

const (
	ErrorPrefix  = "Error: "
	EmptyMessage = "Query executed. No results."
)

// Fragment is the display-independent result of rendering a response
type Fragment struct {
	Kind    Kind
	Message string
	Columns []string
	Rows    [][]string
}

// Response renders resp. Columns come from the first row's keys, in order,
// and every row is read through that same column list; keys missing from a
// later row render as empty text and keys it adds are not shown.
func Response(resp *assistant.Response) Fragment {
	if resp == nil {
		return Fragment{Kind: KindEmpty, Message: EmptyMessage}
	}
	if resp.Error != "" {
		return Fragment{Kind: KindError, Message: resp.Error}
	}
	if len(resp.Results) == 0 {
		return Fragment{Kind: KindEmpty, Message: EmptyMessage}
	}

	columns := append([]string(nil), resp.Results[0].Keys...)
	rows := make([][]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i], _ = r.Value(col)
		}
		rows = append(rows, cells)
	}
	return Fragment{Kind: KindTable, Columns: columns, Rows: rows}
}
