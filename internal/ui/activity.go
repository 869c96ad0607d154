package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookshelf/internal/logtail"
)

// handleActivityKey scrolls the activity log or returns to the list.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "L", "q":
		m.mode = modeList
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "g", "home":
		m.activity.GotoTop()
		return m, nil
	case "G", "end":
		m.activity.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.activity, cmd = m.activity.Update(msg)
	return m, cmd
}

// resizeActivity fits the viewport to the window below the header and
// above the footer.
func (m *Model) resizeActivity() {
	w := max(m.width-2, 10)
	h := max(m.height-4, 3)
	m.activity.Width = w
	m.activity.Height = h
	m.updateActivityViewport()
}

// updateActivityViewport re-renders the parsed log entries. The view
// follows the tail unless the user has scrolled up.
func (m *Model) updateActivityViewport() {
	atBottom := m.activity.AtBottom() || m.activity.TotalLineCount() == 0
	m.activity.SetContent(m.formatActivity())
	if atBottom {
		m.activity.GotoBottom()
	}
}

func (m Model) formatActivity() string {
	styles := m.theme.Styles()
	if len(m.activityLines) == 0 {
		return styles.FaintText.Render("No activity yet.")
	}

	width := max(m.activity.Width, 20)
	lines := make([]string, 0, len(m.activityLines))
	for _, e := range m.activityLines {
		var b strings.Builder
		if e.Stamp != "" {
			b.WriteString(styles.FaintText.Render(e.Stamp))
			b.WriteString(" ")
		}
		text := truncate(e.Text, width-len(e.Stamp)-1)
		if e.Level == logtail.LevelError {
			b.WriteString(styles.DangerText.Render(text))
		} else {
			b.WriteString(styles.Text.Render(text))
		}
		if e.RequestID != "" {
			b.WriteString(" ")
			b.WriteString(styles.InfoText.Render(e.RequestID))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// renderActivity renders the activity log screen.
func (m Model) renderActivity() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	title := bg.Render("bookshelf", styles.Logo) + bg.Spaces(2) +
		bg.Render("Activity", styles.Text.Bold(true))
	if m.logPath != "" {
		title += bg.Spaces(2) + bg.Render(truncate(m.logPath, max(m.width-30, 10)), styles.FaintText)
	}
	header := styles.Header.Width(m.width).Render(title)

	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Render(m.activity.View())

	footer := styles.Footer.Width(m.width).Render(
		bg.Render("j/k", styles.AccentText) + bg.Space() + bg.Render("Scroll", styles.MutedText) + bg.Spaces(2) +
			bg.Render("G", styles.AccentText) + bg.Space() + bg.Render("Follow", styles.MutedText) + bg.Spaces(2) +
			bg.Render("esc", styles.AccentText) + bg.Space() + bg.Render("Back", styles.MutedText),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// readActivityCmd reads the tail of the log file.
func readActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		lines, err := logtail.Read(path, ActivityLineLimit)
		if err != nil {
			return activityMsg{lines: []string{"read log: " + err.Error()}}
		}
		return activityMsg{lines: lines}
	}
}
