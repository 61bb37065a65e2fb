package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/nhath/askdb/internal/ui/highlight"
	"github.com/nhath/askdb/internal/ui/icons"
)

const (
	savedPanelWidth   = 34
	minWidthForPanel  = 70
	inputChromeHeight = 2 // top border + input line
)

// View renders the model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	statusBar := m.renderStatusBar()
	helpText := m.renderHelp()
	bodyHeight := max(m.height-lipgloss.Height(statusBar)-lipgloss.Height(helpText), 0)
	mainWidth := m.mainWidth()

	var region string
	if m.mode == ModeChat {
		input := InputStyle.Width(mainWidth).Render(m.chatInput.View())
		region = lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), input)
	} else {
		input := InputStyle.Width(mainWidth).Render(m.simpleInput.View())
		region = lipgloss.JoinVertical(lipgloss.Left, m.answerView.View(), input)
	}

	body := region
	if m.panelVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, region, m.renderSavedPanel(bodyHeight))
	}

	main := lipgloss.JoinVertical(lipgloss.Left, body, statusBar, helpText)

	if m.showHelp {
		main = overlay.Composite(m.renderHelpPopup(), main, overlay.Center, overlay.Center, 0, 0)
	}
	if m.errorBlock != "" {
		main = overlay.Composite(m.renderErrorPopup(), main, overlay.Center, overlay.Center, 0, 0)
	}
	return main
}

// panelVisible reports whether the saved panel fits on screen
func (m Model) panelVisible() bool {
	return m.showSaved && m.width >= minWidthForPanel
}

func (m Model) mainWidth() int {
	if m.panelVisible() {
		return m.width - savedPanelWidth
	}
	return m.width
}

// layout sizes the viewport and inputs after a resize or panel toggle
func (m Model) layout() Model {
	mainWidth := m.mainWidth()
	chrome := lipgloss.Height(m.renderStatusBar()) + lipgloss.Height(m.renderHelp()) + inputChromeHeight
	m.viewport.Width = mainWidth
	m.viewport.Height = max(m.height-chrome, 1)
	m.answerView.Width = mainWidth
	m.answerView.Height = m.viewport.Height

	inputWidth := max(mainWidth-4, 10)
	m.chatInput.Width = inputWidth
	m.simpleInput.Width = inputWidth
	m.help.Width = m.width

	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
	m.answerView.SetContent(m.renderAnswer(mainWidth))
	return m
}

// renderSavedPanel draws the saved-query list with the selected query's SQL
func (m Model) renderSavedPanel(height int) string {
	style := PanelStyle
	if m.focus == FocusSaved {
		style = PanelFocusStyle
	}
	inner := savedPanelWidth - style.GetHorizontalFrameSize()

	var b strings.Builder
	b.WriteString(SystemMessageStyle.Render(fmt.Sprintf("%s Saved queries (%d)", icons.IconSaved, m.store.Len())))
	b.WriteString("\n\n")

	queries := m.store.List()
	if len(queries) == 0 {
		b.WriteString(MetaStyle.Render("No saved queries yet."))
	}
	for i, q := range queries {
		label := limitString(fmt.Sprintf("%d. %s", i+1, q.Description), inner-2)
		if i == m.savedCursor && m.focus == FocusSaved {
			b.WriteString(SelectionStyle.Render(icons.IconSelect + " " + label))
		} else if i == m.savedCursor {
			b.WriteString(ItemStyle.Bold(true).Render(icons.IconSelect + " " + label))
		} else {
			b.WriteString(ItemStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}

	if q, ok := m.store.Get(m.savedCursor); ok {
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render("SQL"))
		b.WriteString("\n")
		b.WriteString(highlight.SQL(wrap(q.SQL, inner)))
	}

	frameHeight := max(height-style.GetVerticalFrameSize(), 1)
	return style.
		Width(inner).
		Height(frameHeight).
		MaxHeight(height).
		Render(b.String())
}

func (m Model) renderErrorPopup() string {
	width := min(max(m.width/2, 30), m.width-4)
	body := ErrorStyle.Render(wrap(m.errorBlock, width-6))
	hint := MetaStyle.Render(m.keys.Dismiss.Help().Key + ": dismiss")
	return ErrorPopupStyle.Width(width).Render(body + "\n\n" + hint)
}

func (m Model) renderHelpPopup() string {
	var b strings.Builder
	b.WriteString(SystemMessageStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, k := range group {
			h := k.Help()
			b.WriteString(fmt.Sprintf("%-14s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(SystemMessageStyle.Render("Commands"))
	b.WriteString("\n\n")
	for _, c := range commandHelp {
		b.WriteString(fmt.Sprintf("%-22s %s\n", c[0], c[1]))
	}
	return PopupStyle.Render(strings.TrimRight(b.String(), "\n"))
}
