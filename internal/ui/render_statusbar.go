package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/askdb/internal/ui/icons"
)

func (m Model) renderStatusBar() string {
	var parts []string

	// 1. Mode
	modeStyle := ModeStyle
	if m.mode == ModeSimple {
		modeStyle = SimpleModeStyle
	}
	parts = append(parts, modeStyle.Render(icons.ModeIcon(string(m.mode))+" "+strings.ToUpper(string(m.mode))))

	// 2. Toggle label
	toggle := lipgloss.NewStyle().Foreground(TextSecondary()).Background(bgSecondary).Padding(0, 1)
	parts = append(parts, toggle.Render(m.keys.ToggleMode.Help().Key+": "+m.mode.ToggleLabel()))

	// 3. Server
	if m.client != nil && m.config != nil {
		parts = append(parts, ServerStyle.Render(limitString(m.config.ServerURL, 40)))
	}

	// 4. Outstanding requests
	if n := len(m.order); n > 0 {
		loading := lipgloss.NewStyle().Foreground(AccentColor()).Background(bgSecondary).Padding(0, 1)
		parts = append(parts, loading.Render(fmt.Sprintf("%s %d pending", m.spinner.View(), n)))
	}

	// 5. Status message
	if m.statusMsg != "" {
		parts = append(parts, SuccessStyle.Render(icons.IconSuccess+" "+limitString(m.statusMsg, 50)))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return StatusBarStyle.Width(m.width).Render(content)
}

func (m Model) renderHelp() string {
	if m.focus == FocusSaved {
		return " " + m.help.ShortHelpView(m.keys.savedHelp())
	}
	return " " + m.help.ShortHelpView(m.keys.ShortHelp())
}

func limitString(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
