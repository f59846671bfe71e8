package domain

// MaxPercent is the largest percent a State may record.
const MaxPercent = 100

// State is the persisted idempotence record.
// LastPercent is nil before the first successful post.
type State struct {
	LastPercent *int
}

// IsEmpty returns true if no percent has been recorded.
func (s State) IsEmpty() bool {
	return s.LastPercent == nil
}

// ShouldPost reports whether percent advances past the recorded value.
func (s State) ShouldPost(percent int) bool {
	return s.LastPercent == nil || percent > *s.LastPercent
}

// WithPercent returns a State recording percent.
func WithPercent(percent int) State {
	p := percent
	return State{LastPercent: &p}
}
