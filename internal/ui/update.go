package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.layout(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.scroll(msg)

	case spinner.TickMsg:
		if len(m.order) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshLog()
		return m, cmd

	case AnswerMsg:
		return m.handleAnswer(msg), nil

	case ExportCompleteMsg:
		if msg.Err != nil {
			log.Printf("ui: export failed: %v", msg.Err)
			m.errorBlock = "Error: export failed: " + msg.Err.Error()
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("exported %d rows to %s", msg.Rows, msg.Path)
		return m, nil
	}

	var cmd tea.Cmd
	*m.activeInput(), cmd = m.activeInput().Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The error block is modal
	if m.errorBlock != "" {
		switch {
		case key.Matches(msg, m.keys.Dismiss):
			m.errorBlock = ""
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Dismiss, m.keys.Help) || msg.String() == "?" || msg.String() == "q" {
			m.showHelp = false
			return m, nil
		}
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.ToggleMode):
		return m.toggleMode(), nil
	case key.Matches(msg, m.keys.ToggleSaved):
		return m.toggleSaved(), nil
	case key.Matches(msg, m.keys.Cancel):
		return m.cancelAll(), nil
	case key.Matches(msg, m.keys.FocusSaved):
		return m.toggleFocus(), nil
	}

	if m.focus == FocusSaved {
		return m.handleSavedKey(msg)
	}

	m.statusMsg = ""
	input := m.activeInput()
	switch {
	case key.Matches(msg, m.keys.Submit):
		value := strings.TrimSpace(input.Value())
		if strings.HasPrefix(value, "/") {
			return m.handleCommand(value)
		}
		return m.submit()
	case msg.String() == "?" && input.Value() == "":
		m.showHelp = true
		return m, nil
	case msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown:
		return m.scroll(msg)
	}

	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return m, cmd
}

// handleSavedKey handles keys while the saved panel has focus
func (m Model) handleSavedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.savedCursor > 0 {
			m.savedCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.savedCursor < m.store.Len()-1 {
			m.savedCursor++
		}
	case key.Matches(msg, m.keys.RunSaved):
		return m.replay(m.savedCursor)
	case key.Matches(msg, m.keys.DeleteSaved):
		m, _ = m.removeSaved(m.savedCursor)
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		return m.toggleFocus(), nil
	}
	return m, nil
}

// scroll forwards msg to the region visible in the current mode
func (m Model) scroll(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.mode == ModeSimple {
		m.answerView, cmd = m.answerView.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// toggleMode flips between chat and simple, moving input focus along
func (m Model) toggleMode() Model {
	m.activeInput().Blur()
	m.mode = m.mode.Toggle()
	if m.focus == FocusInput {
		m.activeInput().Focus()
	}
	log.Printf("ui: mode %s", m.mode)
	return m.layout()
}

func (m Model) toggleSaved() Model {
	m.showSaved = !m.showSaved
	if !m.showSaved && m.focus == FocusSaved {
		m = m.toggleFocus()
	}
	return m.layout()
}

// toggleFocus moves keyboard focus between the input and the saved panel
func (m Model) toggleFocus() Model {
	if m.focus == FocusSaved {
		m.focus = FocusInput
		m.activeInput().Focus()
		return m
	}
	if !m.panelVisible() {
		return m
	}
	m.focus = FocusSaved
	m.activeInput().Blur()
	if m.savedCursor >= m.store.Len() {
		m.savedCursor = max(m.store.Len()-1, 0)
	}
	return m
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m = m.cancelAll()
	return m, tea.Quit
}
