package dynamo

import "math"

// Epsilon guards divisions by radii, distances and frame rates.
const Epsilon = 1e-9

// Sink receives rotation from at most one upstream Source.
type Sink interface {
	// SetPhase delivers a phase-only update in turns.
	SetPhase(phase float64)
	// Rotate delivers phase in turns and speed in turns/second.
	Rotate(phase, speed float64)
	// SetSource records the upstream source. It is called once, by AddSink.
	SetSource(src *Source)
	// Upstream reports the upstream source or nil.
	Upstream() *Source
}

// Wrap reduces x to [0, 1).
func Wrap(x float64) float64 {
	w := x - math.Floor(x)
	if w >= 1 {
		return 0
	}
	return w
}

// Link is embedded by sinks to satisfy the SetSource/Upstream half of Sink.
type Link struct {
	src *Source
}

func (l *Link) SetSource(src *Source) { l.src = src }

func (l *Link) Upstream() *Source { return l.src }
