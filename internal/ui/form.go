package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookshelf/internal/book"
)

// Form field indices. The status selector follows the text inputs.
const (
	fieldTitle = iota
	fieldAuthor
	fieldGenre
	fieldYear
	fieldStatus
	fieldCount
)

var formLabels = [fieldCount]string{"Title", "Author", "Genre", "Published", "Status"}

var formFields = [fieldStatus]book.Field{book.FieldTitle, book.FieldAuthor, book.FieldGenre, book.FieldPublishedYear}

// bookForm holds the add/edit modal state.
type bookForm struct {
	id         string // empty when adding
	inputs     [fieldStatus]textinput.Model
	status     book.Status
	focus      int
	errors     map[book.Field]string
	submitting bool
}

func newBookForm(id string, f book.Form) bookForm {
	values := [fieldStatus]string{f.Title, f.Author, f.Genre, f.PublishedYear}
	placeholders := [fieldStatus]string{"Dune", "Frank Herbert", "Science Fiction", fmt.Sprintf("%d (blank = this year)", book.CurrentYear())}

	var form bookForm
	form.id = id
	for i := range form.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.Placeholder = placeholders[i]
		ti.SetValue(values[i])
		form.inputs[i] = ti
	}
	form.inputs[fieldYear].CharLimit = 4

	form.status = book.StatusAvailable
	if st, ok := book.ParseStatus(f.Status); ok {
		form.status = st
	}
	return form
}

// value collects the form input.
func (f bookForm) value() book.Form {
	return book.Form{
		Title:         f.inputs[fieldTitle].Value(),
		Author:        f.inputs[fieldAuthor].Value(),
		Genre:         f.inputs[fieldGenre].Value(),
		PublishedYear: f.inputs[fieldYear].Value(),
		Status:        string(f.status),
	}
}

func (f *bookForm) focusCmd() tea.Cmd {
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.focus {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

func (f *bookForm) move(delta int) tea.Cmd {
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.focusCmd()
}

// setErrors records validation failures and focuses the first one.
func (f *bookForm) setErrors(errs map[book.Field]string) {
	f.submitting = false
	f.errors = errs
	for i, field := range formFields {
		if _, ok := errs[field]; ok {
			f.focus = i
			f.focusCmd()
			return
		}
	}
}

func (f *bookForm) toggleStatus() {
	statuses := book.Statuses()
	for i, st := range statuses {
		if st == f.status {
			f.status = statuses[(i+1)%len(statuses)]
			return
		}
	}
	f.status = statuses[0]
}

// handleFormKey edits the add/edit form.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.submitting {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.form = bookForm{}
		m.mode = modeList
		return m, nil
	case "tab", "down":
		cmd := m.form.move(1)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.form.move(-1)
		return m, cmd
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		if m.form.focus == fieldStatus {
			return m.submitForm()
		}
		cmd := m.form.move(1)
		return m, cmd
	}

	if m.form.focus == fieldStatus {
		switch msg.String() {
		case " ", "left", "right", "h", "l":
			m.form.toggleStatus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	delete(m.form.errors, formFields[m.form.focus])
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.p == nil {
		return m, nil
	}
	m.form.submitting = true
	m.form.errors = nil
	return m, saveCmd(m.ctx, m.p, m.form.id, m.form.value())
}

// renderForm renders the add/edit modal.
func (m Model) renderForm() string {
	styles := m.theme.Styles()
	f := m.form

	title := "Add Book"
	if f.id != "" {
		title = "Edit Book"
	}

	labelStyle := lipgloss.NewStyle().Width(11).Foreground(lipgloss.Color(m.theme.Muted))
	focusLabel := labelStyle.Foreground(lipgloss.Color(m.theme.Accent)).Bold(true)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 36)))
	b.WriteString("\n\n")

	for i := 0; i < fieldCount; i++ {
		label := labelStyle
		if i == f.focus {
			label = focusLabel
		}
		b.WriteString(label.Render(formLabels[i]))

		if i == fieldStatus {
			b.WriteString(m.renderStatusChoice(f.status, i == f.focus))
			b.WriteString("\n")
			continue
		}

		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
		if msg := f.errors[formFields[i]]; msg != "" {
			b.WriteString(labelStyle.Render(""))
			b.WriteString(styles.DangerText.Render(msg))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if f.submitting {
		b.WriteString(m.spinner.View() + " " + styles.MutedText.Render("Saving..."))
	} else {
		b.WriteString(styles.FaintText.Render("tab next · enter/ctrl+s save · esc cancel"))
	}

	return m.renderModal(b.String(), FormWidth)
}

func (m Model) renderStatusChoice(current book.Status, focused bool) string {
	styles := m.theme.Styles()
	parts := make([]string, 0, len(book.Statuses()))
	for _, st := range book.Statuses() {
		if st == current {
			parts = append(parts, styles.StatusStyle(string(st)).Render(string(st)))
			continue
		}
		parts = append(parts, styles.FaintText.Render(" "+string(st)+" "))
	}
	line := strings.Join(parts, " ")
	if focused {
		line += styles.FaintText.Render("  (space to change)")
	}
	return line
}

// renderModal centers content in a bordered box.
func (m Model) renderModal(content string, width int) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(width)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
