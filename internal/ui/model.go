// internal/ui/model.go
// Root Model struct, constructor, and Init
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/askdb/internal/assistant"
	"github.com/nhath/askdb/internal/config"
	"github.com/nhath/askdb/internal/saved"
)

// Assistant is the remote question-answering service
type Assistant interface {
	Ask(ctx context.Context, question string) (*assistant.Response, error)
	RunSQL(ctx context.Context, sql string) (*assistant.Response, error)
}

// Exchange is one question with the response it produced
type Exchange struct {
	Question string
	Response *assistant.Response
	At       time.Time
}

// pendingRequest is an outstanding remote call
type pendingRequest struct {
	question string
	display  Mode
	cancel   context.CancelFunc
}

// Model is the root Bubble Tea model. It owns all UI state: the mode flag,
// the chat log, the saved-query store and the outstanding requests.
type Model struct {
	config  *config.Config
	client  Assistant
	store   *saved.Store
	keys    keyMap
	timeout time.Duration

	// Core state
	mode          Mode
	focus         Focus
	width, height int

	// Inputs, one per mode
	chatInput   textinput.Model
	simpleInput textinput.Model

	// Chat log (history panel)
	viewport viewport.Model
	log      []Exchange

	// Single-answer region
	answer     *Exchange
	answerView viewport.Model

	// Most recent response with a result table, target of /export
	lastResult *Exchange

	// Saved-query panel
	showSaved   bool
	savedCursor int

	// Outstanding requests keyed by request id, in issue order
	pending map[string]pendingRequest
	order   []string
	spinner spinner.Model

	// Status
	errorBlock string // dismissable error overlay
	statusMsg  string
	showHelp   bool
	help       help.Model
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, client Assistant, store *saved.Store) Model {
	mode, err := ParseMode(cfg.DefaultMode)
	if err != nil {
		mode = ModeChat
	}

	ci := textinput.New()
	ci.Prompt = "❯ "
	ci.Placeholder = "Ask a question about your data..."
	ci.CharLimit = 2000
	ci.Width = 80
	ci.PromptStyle = lipgloss.NewStyle().Foreground(AccentColor()).Bold(true)

	si := textinput.New()
	si.Prompt = "? "
	si.Placeholder = "Ask a question (simple mode)..."
	si.CharLimit = 2000
	si.Width = 80
	si.PromptStyle = lipgloss.NewStyle().Foreground(HighlightColor()).Bold(true)

	if mode == ModeChat {
		ci.Focus()
	} else {
		si.Focus()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor())

	return Model{
		config:      cfg,
		client:      client,
		store:       store,
		keys:        newKeyMap(cfg.Keys),
		timeout:     cfg.RequestTimeout(),
		mode:        mode,
		focus:       FocusInput,
		chatInput:   ci,
		simpleInput: si,
		viewport:    viewport.New(80, 10),
		answerView:  viewport.New(80, 10),
		showSaved:   cfg.ShowSavedPanel,
		pending:     make(map[string]pendingRequest),
		spinner:     sp,
		help:        help.New(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Mode returns the current display mode
func (m Model) Mode() Mode {
	return m.mode
}

// activeInput returns the input of the current mode
func (m *Model) activeInput() *textinput.Model {
	if m.mode == ModeChat {
		return &m.chatInput
	}
	return &m.simpleInput
}

// inputFor returns the input that belongs to display d
func (m *Model) inputFor(d Mode) *textinput.Model {
	if d == ModeChat {
		return &m.chatInput
	}
	return &m.simpleInput
}

// pendingFor counts outstanding requests issued from display d
func (m Model) pendingFor(d Mode) int {
	n := 0
	for _, id := range m.order {
		if p, ok := m.pending[id]; ok && p.display == d {
			n++
		}
	}
	return n
}
