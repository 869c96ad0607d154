package ui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bookshelf/internal/book"
	"github.com/five82/bookshelf/internal/prefs"
)

// handleSearchKey edits the search term. The list narrows as the user types;
// enter keeps the term, esc restores the previous one.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.mode = modeList
		m.savePrefs()
		return m, nil
	case "esc":
		m.search.SetValue(m.prevSearch)
		m.applySearch()
		m.search.Blur()
		m.mode = modeList
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.snapshot.Query.Search {
		m.applySearch()
	}
	return m, cmd
}

func (m *Model) applySearch() {
	if m.p == nil {
		return
	}
	m.p.SetSearch(m.search.Value())
	m.selectedRow = 0
	m.refreshSnapshot()
}

// cycleGenre steps through "all" followed by the loaded genres.
func (m *Model) cycleGenre() {
	if m.p == nil {
		return
	}
	options := append([]string{""}, m.snapshot.Genres()...)
	m.p.SetGenreFilter(nextOption(options, m.snapshot.Query.Genre))
	m.selectedRow = 0
	m.refreshSnapshot()
	m.savePrefs()
}

// cycleStatus steps through "all" followed by the known statuses.
func (m *Model) cycleStatus() {
	if m.p == nil {
		return
	}
	options := []string{""}
	for _, st := range book.Statuses() {
		options = append(options, string(st))
	}
	m.p.SetStatusFilter(book.Status(nextOption(options, string(m.snapshot.Query.Status))))
	m.selectedRow = 0
	m.refreshSnapshot()
	m.savePrefs()
}

func (m *Model) clearFilters() {
	if m.p == nil {
		return
	}
	m.p.SetSearch("")
	m.p.SetGenreFilter("")
	m.p.SetStatusFilter("")
	m.search.SetValue("")
	m.selectedRow = 0
	m.refreshSnapshot()
	m.savePrefs()
}

// savePrefs persists the theme and the current query.
func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	q := m.snapshot.Query
	p := prefs.Prefs{
		Theme: m.theme.Name,
		Filters: prefs.Filters{
			Search: q.Search,
			Genre:  q.Genre,
			Status: string(q.Status),
		},
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

// nextOption returns the option after current, wrapping around. An unknown
// current value restarts at the first option.
func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return ""
	}
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}
