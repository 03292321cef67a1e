package analyzer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"msgrisk/cmd/msgrisk/ui"
	"msgrisk/internal/controller"
	"msgrisk/internal/notify"
	"msgrisk/internal/render"
	"msgrisk/internal/scoring"
)

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.styles.InputBox.Render(m.textarea.View()),
		m.renderActions(),
	}
	if m.surface.Visible(controller.ElemResults) {
		sections = append(sections, m.renderResults())
	}
	if toasts := m.renderToasts(); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.styles.Footer.Render(m.help.View(m.keys)))

	return m.styles.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHeader() string {
	counter := m.surface.Text(controller.ElemCounter)
	if counter == "" {
		counter = "0"
	}
	title := m.styles.Title.Render("MSGRISK") + " " + m.styles.Subtitle.Render("message risk analyzer")
	scans := m.styles.Muted.Render("Scans today: ") + m.styles.Counter.Render(counter)

	// Content and Header padding take two columns each side.
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(scans) - 8
	if gap < 2 {
		gap = 2
	}
	return m.styles.Header.Render(title + strings.Repeat(" ", gap) + scans)
}

func (m Model) renderActions() string {
	button := m.styles.ButtonDisabled.Render("Analyze")
	if m.surface.Enabled(controller.ElemSubmit) {
		button = m.styles.ButtonEnabled.Render("Analyze")
	}
	if m.surface.Visible(controller.ElemLoading) {
		return button + "  " + m.spinner.View() + m.styles.Muted.Render(" Analyzing message...")
	}
	return button
}

func (m Model) renderResults() string {
	tier := render.Tier(m.surface.Class(controller.ElemRiskCard))
	card, score := m.styles.ForTier(tier)

	lines := []string{
		score.Render(m.surface.Text(controller.ElemRiskLevel)),
		m.styles.Body.Render(m.surface.Text(controller.ElemRiskDescription)),
	}
	if rec := m.surface.Text(controller.ElemRecommendation); rec != "" {
		lines = append(lines, m.styles.Muted.Render(rec))
	}

	gauge := m.bar
	gauge.FullColor = string(ui.TierColor(tier))
	gauge.Width = m.barWidth()
	lines = append(lines, "",
		gauge.ViewAs(m.surface.Width(controller.ElemScoreCircle)/100)+"  "+
			score.Render(m.surface.Text(controller.ElemScoreValue)),
		"")

	cat := m.bar
	cat.Width = m.barWidth()
	for _, c := range scoring.Categories {
		lines = append(lines, fmt.Sprintf("%-10s %s  %s",
			render.CategoryTitle(c),
			cat.ViewAs(m.surface.Width(controller.BarID(c))/100),
			m.styles.Muted.Render(m.surface.Text(controller.CountID(c))),
		))
	}

	lines = append(lines, "")
	for _, r := range m.surface.Items(controller.ElemReasons) {
		style := m.styles.Reason
		if r.Affirmative {
			style = style.Foreground(ui.Low)
		}
		lines = append(lines, style.Render(r.Icon+" "+r.Text))
	}

	if ts := m.surface.Text(controller.ElemTimestamp); ts != "" {
		lines = append(lines, "", m.styles.Timestamp.Render("Analyzed "+ts))
	}
	return card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderToasts() string {
	active := m.toasts.Active(m.now())
	if len(active) == 0 {
		return ""
	}
	out := make([]string, 0, len(active))
	for _, n := range active {
		style := m.styles.ToastInfo
		switch n.Severity {
		case notify.SeverityWarning:
			style = m.styles.ToastWarning
		case notify.SeverityError:
			style = m.styles.ToastError
		}
		out = append(out, style.Render(n.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func (m Model) barWidth() int {
	if m.width <= 0 {
		return 40
	}
	return min(max(m.width/2, 10), 60)
}
