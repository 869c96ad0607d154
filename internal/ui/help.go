package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpSectionTitles = []string{"Navigation", "Filters", "Books", "General"}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	groups := m.keys.FullHelp()
	for i, group := range groups {
		title := ""
		if i < len(helpSectionTitles) {
			title = helpSectionTitles[i]
		}
		b.WriteString(styles.AccentText.Bold(true).Render(title))
		b.WriteString("\n")
		for _, binding := range group {
			if !binding.Enabled() {
				continue
			}
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	return m.renderModal(b.String(), HelpWidth)
}

// renderCommandBar renders the short help line shown in the footer.
func (m Model) renderCommandBar(styles Styles, bg BgStyle) string {
	var parts []string
	for _, binding := range m.keys.ShortHelp() {
		parts = append(parts, helpChip(binding, styles, bg))
	}
	return bg.Join(parts, "  ")
}

func helpChip(binding key.Binding, styles Styles, bg BgStyle) string {
	h := binding.Help()
	return bg.Render(h.Key, styles.AccentText) + bg.Space() + bg.Render(h.Desc, styles.MutedText)
}
