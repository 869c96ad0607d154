package ui

import (
	"fmt"
	"strings"
)

// renderConfirm renders the delete confirmation modal.
func (m Model) renderConfirm() string {
	styles := m.theme.Styles()
	b := m.confirm

	var sb strings.Builder
	sb.WriteString(styles.DangerText.Render("Delete book?"))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Text.Bold(true).Render(truncate(b.Title, ConfirmWidth-8)))
	sb.WriteString("\n")
	sb.WriteString(styles.MutedText.Render(fmt.Sprintf("%s · %d", truncate(b.Author, ConfirmWidth-16), b.PublishedYear)))
	sb.WriteString("\n\n")
	sb.WriteString(styles.AccentText.Render("y"))
	sb.WriteString(styles.MutedText.Render(" delete   "))
	sb.WriteString(styles.AccentText.Render("n"))
	sb.WriteString(styles.MutedText.Render(" cancel"))

	return m.renderModal(sb.String(), ConfirmWidth)
}
