package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nhath/askdb/internal/render"
	"github.com/nhath/askdb/internal/ui/highlight"
	"github.com/nhath/askdb/internal/ui/icons"
)

// appendExchange adds ex to the chat log and scrolls to the newest entry
func (m Model) appendExchange(ex Exchange) Model {
	m.log = append(m.log, ex)
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
	return m
}

// refreshLog re-renders the log, following the bottom if the view was already
// there, and the single-answer region
func (m *Model) refreshLog() {
	follow := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderLog())
	if follow {
		m.viewport.GotoBottom()
	}
	m.answerView.SetContent(m.renderAnswer(m.answerView.Width))
}

// showAnswer replaces the single-answer region and scrolls it to the top
func (m Model) showAnswer(ex Exchange) Model {
	m.answer = &ex
	m.refreshLog()
	m.answerView.GotoTop()
	return m
}

// renderLog builds the viewport content: every exchange, then chat questions
// still waiting for an answer
func (m Model) renderLog() string {
	width := m.viewport.Width
	var sections []string
	for _, ex := range m.log {
		sections = append(sections, m.renderExchange(ex, width))
	}
	for _, id := range m.order {
		p, ok := m.pending[id]
		if !ok || p.display != ModeChat {
			continue
		}
		sections = append(sections, m.renderPending(p.question, width))
	}
	if len(sections) == 0 {
		return MetaStyle.Render("Ask a question about your data to get started.")
	}

	sep := "\n" + lipgloss.NewStyle().Foreground(TextFaint()).Render(strings.Repeat("─", max(width-2, 1))) + "\n"
	return strings.Join(sections, sep)
}

// renderExchange renders one question with its SQL and result
func (m Model) renderExchange(ex Exchange, width int) string {
	var b strings.Builder

	b.WriteString(LabelStyle.Render("You: "))
	b.WriteString(QuestionStyle.Render(wrap(ex.Question, width-5)))
	b.WriteString("\n")

	b.WriteString(LabelStyle.Render("SQL: "))
	if ex.Response != nil && ex.Response.SQL != "" {
		b.WriteString(highlight.SQL(ex.Response.SQL))
	} else {
		b.WriteString(MetaStyle.Render("(no SQL)"))
	}
	b.WriteString("\n")

	b.WriteString(render.Response(ex.Response).View(width))
	if !ex.At.IsZero() {
		b.WriteString("\n")
		b.WriteString(MetaStyle.Render(ex.At.Format("15:04:05")))
	}
	return b.String()
}

func (m Model) renderPending(question string, width int) string {
	return LabelStyle.Render("You: ") + QuestionStyle.Render(wrap(question, width-5)) + "\n" +
		m.spinner.View() + MetaStyle.Render(" Thinking...")
}

// renderAnswer is the single-answer region of simple mode
func (m Model) renderAnswer(width int) string {
	if n := m.pendingFor(ModeSimple); n > 0 {
		return m.spinner.View() + MetaStyle.Render(" Thinking...")
	}
	if m.answer == nil {
		return MetaStyle.Render(icons.IconSimple + " Ask a question to see the answer here.")
	}
	return m.renderExchange(*m.answer, width)
}

func wrap(s string, width int) string {
	if width < 10 {
		return s
	}
	return wordwrap.String(s, width)
}
