package routing

import "time"

// Stopwatch accumulates time spent in measured sections.
type Stopwatch struct {
	total time.Duration
	now   func() time.Time
}

// Start begins a measured section; calling the returned func ends it.
func (s *Stopwatch) Start() func() {
	start := s.clock()
	return func() { s.total += s.clock().Sub(start) }
}

// Elapsed is the sum of all finished sections.
func (s *Stopwatch) Elapsed() time.Duration { return s.total }

func (s *Stopwatch) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
