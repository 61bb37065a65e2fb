package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// submit sends the active input's question. One routine serves both modes;
// the display strategy decides where the answer lands.
func (m Model) submit() (Model, tea.Cmd) {
	display := m.mode
	question := strings.TrimSpace(m.inputFor(display).Value())
	if question == "" {
		return m, nil
	}

	id, ctx, cancel := m.track(question, display)
	client := m.client
	log.Printf("ui: %s ask (%s): %q", id, display, question)

	ask := func() tea.Msg {
		defer cancel()
		resp, err := client.Ask(ctx, question)
		return AnswerMsg{RequestID: id, Display: display, Question: question, Response: resp, Err: err}
	}
	return m, m.startLoading(ask)
}

// replay re-runs the saved query at index as plain SQL. Out-of-range indexes
// are ignored.
func (m Model) replay(index int) (Model, tea.Cmd) {
	q, ok := m.store.Get(index)
	if !ok {
		return m, nil
	}

	question := q.Description + SavedSuffix
	id, ctx, cancel := m.track(question, m.mode)
	client := m.client
	sql := q.SQL
	log.Printf("ui: %s replay saved #%d", id, index+1)

	run := func() tea.Msg {
		defer cancel()
		resp, err := client.RunSQL(ctx, sql)
		return AnswerMsg{RequestID: id, Question: question, Replay: true, Response: resp, Err: err}
	}
	return m, m.startLoading(run)
}

// track registers an outstanding request bounded by the configured timeout
func (m *Model) track(question string, display Mode) (string, context.Context, context.CancelFunc) {
	id := uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	m.pending[id] = pendingRequest{question: question, display: display, cancel: cancel}
	m.order = append(m.order, id)
	m.refreshLog()
	return id, ctx, cancel
}

func (m Model) startLoading(cmd tea.Cmd) tea.Cmd {
	if len(m.order) == 1 {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

// cancelAll aborts every outstanding request
func (m Model) cancelAll() Model {
	for _, id := range m.order {
		if p, ok := m.pending[id]; ok {
			p.cancel()
		}
	}
	if len(m.order) > 0 {
		m.statusMsg = fmt.Sprintf("cancelled %d request(s)", len(m.order))
	}
	return m
}

// handleAnswer routes a completed request. Completions are applied in arrival
// order, so in simple mode the last one to arrive wins.
func (m Model) handleAnswer(msg AnswerMsg) Model {
	p, tracked := m.pending[msg.RequestID]
	delete(m.pending, msg.RequestID)
	for i, id := range m.order {
		if id == msg.RequestID {
			m.order = append(m.order[:i:i], m.order[i+1:]...)
			break
		}
	}
	if tracked {
		p.cancel()
	}

	if msg.Err != nil {
		log.Printf("ui: %s failed: %v", msg.RequestID, msg.Err)
		m.errorBlock = describeError(msg.Err, m.timeout)
		m.refreshLog()
		return m
	}
	if msg.Response == nil {
		m.errorBlock = "Error: empty response from the assistant"
		m.refreshLog()
		return m
	}

	display := msg.Display
	if msg.Replay {
		display = m.mode
	}
	ex := Exchange{Question: msg.Question, Response: msg.Response, At: time.Now()}
	if display == ModeChat {
		m = m.appendExchange(ex)
	} else {
		m = m.showAnswer(ex)
	}

	if len(msg.Response.Results) > 0 && !msg.Response.Failed() {
		m.lastResult = &ex
	}

	if msg.Replay {
		return m
	}

	m.inputFor(msg.Display).Reset()
	if msg.Response.Saveable() {
		if err := m.store.Save(msg.Question, msg.Response.SQL); err != nil {
			log.Printf("ui: save query: %v", err)
			m.statusMsg = "could not save query: " + err.Error()
		} else {
			m.savedCursor = m.store.Len() - 1
		}
	}
	return m
}

// removeSaved deletes the saved query at index and reports whether it did;
// out of range is a no-op
func (m Model) removeSaved(index int) (Model, bool) {
	ok, err := m.store.Remove(index)
	if err != nil {
		log.Printf("ui: remove saved #%d: %v", index+1, err)
		m.errorBlock = "Error: " + err.Error()
		return m, false
	}
	if !ok {
		return m, false
	}
	if m.savedCursor >= m.store.Len() {
		m.savedCursor = m.store.Len() - 1
	}
	if m.savedCursor < 0 {
		m.savedCursor = 0
	}
	return m, true
}

func describeError(err error, timeout time.Duration) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("Error: request timed out after %s", timeout)
	case errors.Is(err, context.Canceled):
		return "Error: request cancelled"
	default:
		return "Error: " + err.Error()
	}
}
