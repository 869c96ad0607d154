package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings of the list view.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Filters
	Search      key.Binding
	CycleGenre  key.Binding
	CycleStatus key.Binding
	ClearFilter key.Binding

	// Book actions
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Reload key.Binding

	// Views
	Activity key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "First row"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last row"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "pgup", "left", "h"),
			key.WithHelp("[", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "pgdown", "right", "l"),
			key.WithHelp("]", "Next page"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search title or author"),
		),
		CycleGenre: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "Cycle genre filter"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle status filter"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear search and filters"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add book"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter/e", "Edit book"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete book"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),

		Activity: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Activity log"),
		),
	}
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Search, k.CycleGenre, k.CycleStatus, k.PrevPage, k.NextPage, k.Help, k.Quit}
}

// FullHelp returns key bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PrevPage, k.NextPage},
		{k.Search, k.CycleGenre, k.CycleStatus, k.ClearFilter},
		{k.Add, k.Edit, k.Delete, k.Reload},
		{k.Activity, k.CycleTheme, k.Help, k.Quit},
	}
}
