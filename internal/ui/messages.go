package ui

import (
	"github.com/nhath/askdb/internal/assistant"
)

// AnswerMsg is sent when a question or a saved-query replay completes
type AnswerMsg struct {
	RequestID string
	Display   Mode // surface the request was issued from
	Question  string
	Replay    bool
	Response  *assistant.Response
	Err       error
}

// ExportCompleteMsg is sent when export is complete
type ExportCompleteMsg struct {
	Path string
	Rows int
	Err  error
}
