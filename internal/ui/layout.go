package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the genre and year
	// columns are hidden.
	LayoutCompactWidth = 80

	// LayoutWideWidth is the minimum width to show the API URL in the header.
	LayoutWideWidth = 120
)

// Modal widths.
const (
	FormWidth    = 60
	ConfirmWidth = 50
	HelpWidth    = 46
)

// Activity view limits.
const (
	// ActivityLineLimit is the number of log lines read for the activity view.
	ActivityLineLimit = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// NoticeTTL is how long a notification stays in the footer.
	NoticeTTL = 5 * time.Second
)
