package ports

// Progress reports export progress to a terminal or HTTP surface.
// A total of -1 means the amount of work is indeterminate (spinner only).
type Progress interface {
	// Start begins a progress display with the given total and label.
	Start(total int, label string)

	// Advance adds n completed units.
	Advance(n int)

	// Done finishes the display. Safe to call without Start.
	Done()
}
