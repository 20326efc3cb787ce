package dynamo

// Source broadcasts rotation to an ordered list of sinks.
type Source struct {
	phase float64
	speed float64
	sinks []Sink
}

func NewSource() *Source {
	return &Source{sinks: make([]Sink, 0)}
}

// AddSink registers s and points its upstream at this source.
// It panics if s is nil, already registered here, or owned by another source.
func (src *Source) AddSink(s Sink) {
	if s == nil {
		panic(&WiringError{Index: len(src.sinks), Wrapped: ErrNilSink})
	}
	for i, existing := range src.sinks {
		if existing == s {
			panic(&WiringError{Index: i, Wrapped: ErrDuplicateSink})
		}
	}
	if up := s.Upstream(); up != nil && up != src {
		panic(&WiringError{Index: len(src.sinks), Wrapped: ErrMultipleSources})
	}
	s.SetSource(src)
	src.sinks = append(src.sinks, s)
}

// SetPhase stores phase and forwards it to every sink.
func (src *Source) SetPhase(phase float64) {
	src.phase = phase
	for _, s := range src.sinks {
		s.SetPhase(phase)
	}
}

// SetRotation stores phase and speed and forwards both to every sink.
func (src *Source) SetRotation(phase, speed float64) {
	src.phase = phase
	src.speed = speed
	for _, s := range src.sinks {
		s.Rotate(phase, speed)
	}
}

func (src *Source) Phase() float64 { return src.phase }
func (src *Source) Speed() float64 { return src.speed }

// Sinks returns a copy of the registered sinks.
func (src *Source) Sinks() []Sink {
	out := make([]Sink, len(src.sinks))
	copy(out, src.sinks)
	return out
}

func (src *Source) NumSinks() int { return len(src.sinks) }

// Reset zeroes the broadcast state. Registered sinks are kept.
func (src *Source) Reset() {
	src.phase = 0
	src.speed = 0
}
