package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookshelf/internal/book"
	"github.com/five82/bookshelf/internal/presenter"
)

// renderMain renders the list screen: header, book table, footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	footer := m.renderFooter()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if m.mode == modeSearch {
		bodyHeight--
	}
	bodyHeight = max(bodyHeight, 5)

	parts := []string{header}
	if m.mode == modeSearch {
		parts = append(parts, m.renderSearchBar())
	}
	parts = append(parts, m.renderTable(m.width, bodyHeight), footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	snap := m.snapshot

	parts := []string{bg.Render("bookshelf", styles.Logo)}

	if snap.Loading {
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText)+bg.Space()+
			bg.Render("Loading...", styles.WarningText))
	} else if snap.LastError != "" {
		parts = append(parts, bg.Render("● "+truncate(snap.LastError, 40), styles.DangerText))
	} else {
		parts = append(parts, bg.Render("●", styles.SuccessText))
	}

	parts = append(parts,
		bg.Render("Books:", styles.MutedText)+bg.Space()+
			bg.Render(strconv.Itoa(len(snap.View)), styles.Text)+
			bg.Render("/"+strconv.Itoa(len(snap.Items)), styles.FaintText),
	)

	if filters := m.filterSummary(); filters != "" {
		parts = append(parts, bg.Render(filters, styles.InfoText))
	}

	if m.width >= LayoutWideWidth && m.apiURL != "" {
		parts = append(parts, bg.Render(truncate(m.apiURL, 40), styles.FaintText))
	}

	if !m.lastUpdated.IsZero() && m.width >= LayoutCompactWidth {
		parts = append(parts, bg.Render(m.lastUpdated.Format("15:04:05"), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// filterSummary describes the active query, or "" when unfiltered.
func (m Model) filterSummary() string {
	q := m.snapshot.Query
	var parts []string
	if q.Search != "" {
		parts = append(parts, fmt.Sprintf("search:%q", q.Search))
	}
	if q.Genre != "" {
		parts = append(parts, "genre:"+q.Genre)
	}
	if q.Status != "" {
		parts = append(parts, "status:"+string(q.Status))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderSearchBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	return styles.Text.Width(m.width).Render(m.search.View())
}

// column widths for the book table. Title and author share what is left.
const (
	colGenre  = 16
	colYear   = 6
	colStatus = 11
)

// renderTable renders the current page inside a titled box.
func (m Model) renderTable(width, height int) string {
	snap := m.snapshot
	title := fmt.Sprintf("Books  Page %d/%d", snap.Page.Current, snap.TotalPages())
	innerWidth := max(width-4, 20)
	compact := width < LayoutCompactWidth

	fixed := colStatus + 1
	if !compact {
		fixed += colGenre + colYear + 2
	}
	flex := max(innerWidth-fixed-1, 10)
	titleWidth := flex * 3 / 5
	authorWidth := flex - titleWidth

	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	var lines []string
	head := cell("TITLE", titleWidth) + " " + cell("AUTHOR", authorWidth)
	if !compact {
		head += " " + cell("GENRE", colGenre) + " " + cell("YEAR", colYear)
	}
	head += " " + "STATUS"
	lines = append(lines, " "+styles.FaintText.Render(head))

	books := m.visibleBooks()
	if len(books) == 0 {
		msg := "No books found."
		switch {
		case snap.Loading:
			msg = "Loading books..."
		case len(snap.Items) > 0:
			msg = "No books match the current filters."
		}
		lines = append(lines, "", " "+styles.MutedText.Render(msg))
	}

	for i, b := range books {
		row := cell(b.Title, titleWidth) + " " + cell(b.Author, authorWidth)
		if !compact {
			row += " " + cell(b.Genre, colGenre) + " " + cell(strconv.Itoa(b.PublishedYear), colYear)
		}
		badge := m.statusBadge(b.Status)
		if i == m.selectedRow {
			sel := lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Foreground(lipgloss.Color(m.theme.SelectionText)).
				Bold(true)
			lines = append(lines, sel.Render(" "+row+" ")+badge)
			continue
		}
		lines = append(lines, " "+styles.Text.Render(row)+" "+badge)
	}

	return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, true)
}

func (m Model) statusBadge(st book.Status) string {
	return m.theme.Styles().StatusStyle(string(st)).Render(string(st))
}

// renderFooter shows the latest notification, or the command bar when
// there is none.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var content string
	switch {
	case m.notice.Message != "" && m.notice.Kind == presenter.Failure:
		content = bg.Render("✗ "+m.notice.Message, styles.DangerText)
	case m.notice.Message != "":
		content = bg.Render("✓ "+m.notice.Message, styles.SuccessText)
	case m.mode == modeSearch:
		content = bg.Render("enter", styles.AccentText) + bg.Space() + bg.Render("Keep", styles.MutedText) + bg.Spaces(2) +
			bg.Render("esc", styles.AccentText) + bg.Space() + bg.Render("Cancel", styles.MutedText)
	default:
		content = m.renderCommandBar(styles, bg)
	}

	return styles.Footer.Width(m.width).Render(content)
}

// renderTitledBox draws a box with the title embedded in the top border.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColor))
	contentLines := strings.Split(content, "\n")

	rows := make([]string, 0, max(height-2, 0))
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		rows = append(rows, bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}

	return top + "\n" + strings.Join(rows, "\n") + "\n" + bottom
}
