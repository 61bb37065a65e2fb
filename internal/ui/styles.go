// internal/ui/styles.go
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/askdb/internal/config"
	"github.com/nhath/askdb/internal/render"
	"github.com/nhath/askdb/internal/ui/highlight"
)

var (
	textPrimary   lipgloss.Color
	textSecondary lipgloss.Color
	textFaint     lipgloss.Color

	accentColor    lipgloss.Color
	successColor   lipgloss.Color
	errorColor     lipgloss.Color
	highlightColor lipgloss.Color

	bgPrimary   lipgloss.Color
	bgSecondary lipgloss.Color
	cardBg      lipgloss.Color
	borderColor lipgloss.Color

	// Styles
	StatusBarStyle     lipgloss.Style
	ModeStyle          lipgloss.Style
	SimpleModeStyle    lipgloss.Style
	ServerStyle        lipgloss.Style
	QuestionStyle      lipgloss.Style
	LabelStyle         lipgloss.Style
	MetaStyle          lipgloss.Style
	SelectionStyle     lipgloss.Style
	ItemStyle          lipgloss.Style
	InputStyle         lipgloss.Style
	PanelStyle         lipgloss.Style
	PanelFocusStyle    lipgloss.Style
	SuccessStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style
	SystemMessageStyle lipgloss.Style
	PopupStyle         lipgloss.Style
	ErrorPopupStyle    lipgloss.Style
)

// Color getter functions for use in components
func TextSecondary() lipgloss.Color  { return textSecondary }
func TextFaint() lipgloss.Color      { return textFaint }
func AccentColor() lipgloss.Color    { return accentColor }
func HighlightColor() lipgloss.Color { return highlightColor }

// InitStyles initializes the global styles based on the provided configuration theme.
// It also configures the result renderer and the SQL highlighter.
func InitStyles(theme config.Theme) {
	textPrimary = lipgloss.Color(theme.TextPrimary)
	textSecondary = lipgloss.Color(theme.TextSecondary)
	textFaint = lipgloss.Color(theme.TextFaint)

	accentColor = lipgloss.Color(theme.Accent)
	successColor = lipgloss.Color(theme.Success)
	errorColor = lipgloss.Color(theme.Error)
	highlightColor = lipgloss.Color(theme.Highlight)

	bgPrimary = lipgloss.Color(theme.BgPrimary)
	bgSecondary = lipgloss.Color(theme.BgSecondary)
	cardBg = lipgloss.Color(theme.CardBg)
	borderColor = lipgloss.Color(theme.BorderColor)
	if theme.BorderColor == "" {
		borderColor = textFaint
	}

	render.Init(theme)
	highlight.SetStyle(theme.SyntaxStyle)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(textPrimary).
		Background(bgSecondary)

	ModeStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(accentColor).
		Foreground(bgPrimary)

	SimpleModeStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(successColor).
		Foreground(bgPrimary)

	ServerStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(cardBg).
		Foreground(textPrimary)

	QuestionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(textPrimary)

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(textSecondary)

	MetaStyle = lipgloss.NewStyle().
		Foreground(textFaint).
		Italic(true)

	SelectionStyle = lipgloss.NewStyle().
		Foreground(bgPrimary).
		Background(highlightColor).
		Bold(true)

	ItemStyle = lipgloss.NewStyle().
		Foreground(textPrimary)

	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(textFaint)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	PanelFocusStyle = PanelStyle.
		BorderForeground(accentColor)

	SuccessStyle = lipgloss.NewStyle().
		Background(successColor).
		Foreground(bgPrimary).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	SystemMessageStyle = lipgloss.NewStyle().
		Foreground(highlightColor).
		Bold(true)

	PopupStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(highlightColor).
		Padding(1, 2)

	ErrorPopupStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(errorColor).
		Padding(1, 2)
}
