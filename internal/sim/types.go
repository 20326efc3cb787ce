package sim

import (
	"fmt"

	"github.com/san-kum/machinesim/internal/machine"
)

// Metric accumulates one number over a recorded run.
type Metric interface {
	Name() string
	Observe(m *machine.Machine)
	Value() float64
	Reset()
}

// Observer is told about every frame after the machine advances.
type Observer interface {
	OnFrame(m *machine.Machine)
}

type Config struct {
	Frames    int
	FrameRate float64
}

// Trace is a recorded run: one snapshot per frame starting at frame 0.
type Trace struct {
	Machine   int
	FrameRate float64
	Snapshots []machine.Snapshot
	// Samples holds each metric's value after every frame, aligned with
	// Snapshots.
	Samples map[string][]float64
	Metrics map[string]float64
}

func (t *Trace) Len() int { return len(t.Snapshots) }

func (t *Trace) Times() []float64 {
	out := make([]float64, len(t.Snapshots))
	for i, s := range t.Snapshots {
		out[i] = s.Time
	}
	return out
}

// Series extracts one field of one component across the trace. Field is
// one of x, y, rotation, phase, speed, vx, vy or active.
func (t *Trace) Series(component, field string) ([]float64, error) {
	get, ok := fields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	out := make([]float64, 0, len(t.Snapshots))
	for _, snap := range t.Snapshots {
		st, ok := snap.Find(component)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, component)
		}
		out = append(out, get(st))
	}
	return out, nil
}

var fields = map[string]func(machine.ComponentState) float64{
	"x":        func(s machine.ComponentState) float64 { return s.X },
	"y":        func(s machine.ComponentState) float64 { return s.Y },
	"rotation": func(s machine.ComponentState) float64 { return s.Rotation },
	"phase":    func(s machine.ComponentState) float64 { return s.Phase },
	"speed":    func(s machine.ComponentState) float64 { return s.Speed },
	"vx":       func(s machine.ComponentState) float64 { return s.VX },
	"vy":       func(s machine.ComponentState) float64 { return s.VY },
	"active": func(s machine.ComponentState) float64 {
		if s.Active {
			return 1
		}
		return 0
	},
}

// Fields lists the names Series accepts.
func Fields() []string {
	return []string{"x", "y", "rotation", "phase", "speed", "vx", "vy", "active"}
}
