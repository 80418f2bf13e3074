package reactotron

import "time"

// Stopwatch measures elapsed time from its creation. Readings use the
// monotonic clock.
type Stopwatch struct {
	start   time.Time
	latched time.Duration
	stopped bool
}

// NewStopwatch returns a running stopwatch.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{start: time.Now()}
}

// Elapsed returns the time since start, or the latched reading after Stop.
func (s *Stopwatch) Elapsed() time.Duration {
	if s.stopped {
		return s.latched
	}
	return time.Since(s.start)
}

// Stop latches and returns the elapsed time. Later calls keep the first
// reading.
func (s *Stopwatch) Stop() time.Duration {
	if !s.stopped {
		s.latched = time.Since(s.start)
		s.stopped = true
	}
	return s.latched
}
