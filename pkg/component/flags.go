package component

import "time"

// Flag thresholds.
const (
	RecentWindow = 24 * time.Hour
	StaleWindow  = 90 * 24 * time.Hour

	IncompleteContentLength = 100
)

// Flags are derived status annotations, computed at layout time rather
// than stored.
type Flags struct {
	Recent     bool `json:"recent"`
	Stale      bool `json:"stale"`
	Incomplete bool `json:"incomplete"`
	Orphan     bool `json:"orphan"`
}

// FlagsFor derives a component's flags at the given instant. A component
// without an update timestamp is neither recent nor stale.
func FlagsFor(c *Component, now time.Time) Flags {
	f := Flags{
		Incomplete: len(c.Content) < IncompleteContentLength,
		Orphan:     c.Feature == "",
	}

	if !c.UpdatedAt.IsZero() {
		age := now.Sub(c.UpdatedAt)
		f.Recent = age < RecentWindow
		f.Stale = age >= StaleWindow
	}

	return f
}
