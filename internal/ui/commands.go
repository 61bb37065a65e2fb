package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// commandHelp lists the slash commands for the help popup
var commandHelp = [][2]string{
	{"/export csv|json [file]", "write the last result table"},
	{"/run N", "replay saved query N"},
	{"/delete N", "delete saved query N"},
	{"/saved", "toggle the saved panel"},
	{"/mode", "switch between chat and simple"},
	{"/clear", "clear the chat log"},
	{"/help", "show this help"},
}

// handleCommand processes commands starting with /
func (m Model) handleCommand(input string) (Model, tea.Cmd) {
	parts := strings.Fields(strings.TrimPrefix(input, "/"))
	m.activeInput().Reset()
	if len(parts) == 0 {
		return m, nil
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "export":
		return m.handleExportCommand(args)
	case "run", "delete":
		n, err := savedIndex(args, m.store.Len())
		if err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		if cmd == "run" {
			return m.replay(n)
		}
		var removed bool
		if m, removed = m.removeSaved(n); removed {
			m.statusMsg = fmt.Sprintf("deleted saved query %d", n+1)
		}
		return m, nil
	case "saved":
		return m.toggleSaved(), nil
	case "mode":
		return m.toggleMode(), nil
	case "clear":
		m.log = nil
		m.refreshLog()
		m.statusMsg = "chat log cleared"
		return m, nil
	case "help":
		m.showHelp = true
		return m, nil
	default:
		m.statusMsg = fmt.Sprintf("command '/%s' not found", cmd)
		return m, nil
	}
}

// handleExportCommand handles /export csv|json [file]
func (m Model) handleExportCommand(args []string) (Model, tea.Cmd) {
	format := ExportCSV
	if len(args) > 0 {
		switch ExportFormat(strings.ToLower(args[0])) {
		case ExportCSV:
		case ExportJSON:
			format = ExportJSON
		default:
			m.statusMsg = "usage: /export csv|json [file]"
			return m, nil
		}
		args = args[1:]
	}

	cmd := m.exportResultCmd(format, strings.Join(args, " "))
	if cmd == nil {
		m.statusMsg = "no result to export"
		return m, nil
	}
	return m, cmd
}

// savedIndex parses a 1-based saved-query position into an index
func savedIndex(args []string, n int) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one saved query number")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid saved query number %q", args[0])
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("no saved query %d", i)
	}
	return i - 1, nil
}
