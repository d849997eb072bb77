package watch

import "fmt"

type SessionState int

const (
	StateIdle SessionState = iota
	StateAccumulating
	StateTriggered
)

// WatchSession tracks one player element's progress within a page session.
// It is ephemeral: discarded when the element leaves the document. The
// Triggered state is terminal, an element records at most once.
type WatchSession struct {
	State        SessionState
	Watched      float64
	LastPosition float64
	HasLast      bool
	Duration     float64
}

// Progress credits the forward movement since the last observation.
// Backward jumps clamp to zero: rewinding never grows or shrinks the
// accumulated watch time.
func (s *WatchSession) Progress(position float64) {
	if s.State == StateTriggered {
		return
	}
	if !s.HasLast {
		s.HasLast = true
		s.LastPosition = position
		s.State = StateAccumulating
		return
	}
	delta := position - s.LastPosition
	if delta > 0 {
		s.Watched += delta
	}
	s.LastPosition = position
}

// Reposition moves the cursor without crediting the jump. Used for seeks
// and play-resumes so neither the skipped span nor the paused gap counts.
func (s *WatchSession) Reposition(position float64) {
	s.HasLast = true
	s.LastPosition = position
	if s.State == StateIdle {
		s.State = StateAccumulating
	}
}

// ThresholdMet reports whether the accumulated progress qualifies as a view
// and, if so, why.
func (s *WatchSession) ThresholdMet(minSeconds, minFraction float64) (bool, string) {
	if s.Duration > 0 {
		frac := s.Watched / s.Duration
		if s.Watched >= minSeconds || frac >= minFraction {
			return true, fmt.Sprintf("watched %.0fs (%.0f%%)", s.Watched, frac*100)
		}
		return false, ""
	}
	if s.Watched >= minSeconds {
		return true, fmt.Sprintf("watched %.0fs (no duration)", s.Watched)
	}
	return false, ""
}
