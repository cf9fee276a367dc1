package mode

import "time"

type stopwatch struct {
	now   func() time.Time
	start time.Time
	end   time.Time
}

func (s *stopwatch) begin() {
	if s.start.IsZero() {
		s.start = s.now()
	}
}

func (s *stopwatch) started() bool {
	return !s.start.IsZero()
}

// stop latches the end instant; later calls are ignored.
func (s *stopwatch) stop(at time.Time) {
	if s.started() && s.end.IsZero() {
		s.end = at
	}
}

func (s *stopwatch) stopped() bool {
	return !s.end.IsZero()
}

func (s *stopwatch) elapsed() time.Duration {
	switch {
	case !s.started():
		return 0
	case s.stopped():
		return s.end.Sub(s.start)
	default:
		return s.now().Sub(s.start)
	}
}

func (s *stopwatch) reset() {
	s.start = time.Time{}
	s.end = time.Time{}
}
