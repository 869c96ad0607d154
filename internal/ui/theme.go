package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and footer bars
	SurfaceAlt string // Panels
	FocusBg    string // Focused panel

	// Table colors
	SelectionBg   string // Selected row background
	SelectionText string // Selected row text

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// StatusColors maps a lower-cased book status to its badge color.
	StatusColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header lipgloss.Style
	Footer lipgloss.Style
	Logo   lipgloss.Style

	// For dynamic status colors
	statusColors map[string]string
	background   string
	muted        string
}

// StatusStyle returns a badge style for the given book status.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[strings.ToLower(strings.TrimSpace(status))]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles with every style on the given
// background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)

	return Styles{
		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),
		InfoText:    s.InfoText.Background(bg),

		Header: s.Header.Background(bg),
		Footer: s.Footer.Background(bg),
		Logo:   s.Logo.Background(bg),

		statusColors: s.statusColors,
		background:   s.background,
		muted:        s.muted,
	}
}

// Theme definitions

var themes = map[string]Theme{
	"Nightfox":  nightfoxTheme(),
	"Gruvbox":   gruvboxTheme(),
	"Solarized": solarizedTheme(),
}

var themeOrder = []string{"Nightfox", "Gruvbox", "Solarized"}

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2
		FocusBg:    "#29394f", // bg3

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf",
		Muted:   "#738091",
		Faint:   "#71839b",
		Accent:  "#719cd6",
		Success: "#81b29a",
		Warning: "#dbc074",
		Danger:  "#c94f6d",
		Info:    "#63cdcf",

		StatusColors: map[string]string{
			"available": "#81b29a", // green
			"issued":    "#f4a261", // orange
		},
	}
}

func gruvboxTheme() Theme {
	// Gruvbox dark palette: https://github.com/morhetz/gruvbox
	return Theme{
		Name: "Gruvbox",

		Background: "#1d2021", // bg0_h
		Surface:    "#282828", // bg0
		SurfaceAlt: "#32302f", // bg0_s
		FocusBg:    "#3c3836", // bg1

		SelectionBg:   "#504945", // bg2
		SelectionText: "#fbf1c7", // fg0

		Border:      "#665c54", // bg3
		BorderFocus: "#83a598", // blue

		Text:    "#ebdbb2",
		Muted:   "#a89984",
		Faint:   "#928374",
		Accent:  "#83a598",
		Success: "#b8bb26",
		Warning: "#fabd2f",
		Danger:  "#fb4934",
		Info:    "#8ec07c",

		StatusColors: map[string]string{
			"available": "#b8bb26", // green
			"issued":    "#fe8019", // orange
		},
	}
}

func solarizedTheme() Theme {
	// Solarized dark palette: https://ethanschoonover.com/solarized/
	return Theme{
		Name: "Solarized",

		Background: "#002b36", // base03
		Surface:    "#073642", // base02
		SurfaceAlt: "#0a3d4a",
		FocusBg:    "#11474f",

		SelectionBg:   "#268bd2", // blue
		SelectionText: "#fdf6e3", // base3

		Border:      "#586e75", // base01
		BorderFocus: "#2aa198", // cyan

		Text:    "#93a1a1", // base1
		Muted:   "#839496", // base0
		Faint:   "#657b83", // base00
		Accent:  "#268bd2",
		Success: "#859900",
		Warning: "#b58900",
		Danger:  "#dc322f",
		Info:    "#2aa198",

		StatusColors: map[string]string{
			"available": "#859900", // green
			"issued":    "#cb4b16", // orange
		},
	}
}
