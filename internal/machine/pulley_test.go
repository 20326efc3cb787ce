package machine

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/machinesim/internal/dynamo"
	"github.com/san-kum/machinesim/internal/gfx"
)

const tol = 1e-9

func TestPulleyRatio(t *testing.T) {
	tests := []struct {
		name         string
		driver, load float64
		phase, speed float64
		wantPhase    float64
		wantSpeed    float64
	}{
		{"step down", 10, 20, 0.5, 1.0, 0.25, 0.5},
		{"step up", 20, 10, 0.3, 0.25, 0.6, 0.5},
		{"wraps", 30, 10, 0.5, 2, 0.5, 6},
		{"equal", 15, 15, 0.7, -1, 0.7, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewPulley("a", tt.driver)
			b := NewPulley("b", tt.load)
			a.Drive(b)
			a.Rotate(tt.phase, tt.speed)

			if math.Abs(b.Phase()-tt.wantPhase) > tol {
				t.Errorf("phase = %v, want %v", b.Phase(), tt.wantPhase)
			}
			if math.Abs(b.Speed()-tt.wantSpeed) > tol {
				t.Errorf("speed = %v, want %v", b.Speed(), tt.wantSpeed)
			}
		})
	}
}

func TestPulleyDriveDoesNotRegisterSink(t *testing.T) {
	a := NewPulley("a", 10)
	b := NewPulley("b", 20)
	a.Drive(b)

	if a.Source().NumSinks() != 0 {
		t.Errorf("driven pulley must not be a sink of the driver, got %d sinks", a.Source().NumSinks())
	}
	if b.Upstream() != a.Source() {
		t.Error("driven pulley should point upstream at the driver source")
	}
}

func TestPulleyDriveTwicePanics(t *testing.T) {
	a := NewPulley("a", 10)
	b := NewPulley("b", 20)
	a.Drive(b)

	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, dynamo.ErrDuplicateSink) {
			t.Errorf("expected duplicate sink panic, got %v", err)
		}
	}()
	a.Drive(b)
}

func TestPulleySecondDriverPanics(t *testing.T) {
	a := NewPulley("a", 10)
	c := NewPulley("c", 10)
	b := NewPulley("b", 20)
	a.Drive(b)

	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, dynamo.ErrMultipleSources) {
			t.Errorf("expected multiple sources panic, got %v", err)
		}
	}()
	c.Drive(b)
}

func TestPulleyForwardsToAttachedSinks(t *testing.T) {
	a := NewPulley("a", 10)
	b := NewPulley("b", 5)
	conv := NewConveyor("belt", 100, 10)
	a.Drive(b)
	b.AddSink(conv)

	a.Rotate(0.1, 1)

	if math.Abs(conv.Speed()-2) > tol {
		t.Errorf("conveyor speed = %v, want 2", conv.Speed())
	}
}

func TestMotorDrivesPulleyChain(t *testing.T) {
	m := New(1)
	motor := NewMotor("motor", "images")
	motor.SetSpeed(0.25)
	motor.SetInitiallyActive(true)
	p1 := NewPulley("p1", 10)
	p2 := NewPulley("p2", 20)
	motor.AddSink(p1)
	p1.Drive(p2)

	m.AddComponent(motor)
	m.AddComponent(p1)
	m.AddComponent(p2)
	m.Reset()

	for m.Frame() < 60 {
		m.Update()
	}

	if math.Abs(p1.Phase()-0.5) > tol {
		t.Errorf("p1 phase = %v, want 0.5", p1.Phase())
	}
	if math.Abs(p2.Phase()-0.25) > tol {
		t.Errorf("p2 phase = %v, want 0.25", p2.Phase())
	}
	if math.Abs(p2.Speed()-0.125) > tol {
		t.Errorf("p2 speed = %v, want 0.125", p2.Speed())
	}
}

func TestPulleyBelts(t *testing.T) {
	a := NewPulley("a", 10)
	a.SetPosition(0, 0)
	b := NewPulley("b", 20)
	b.SetPosition(100, 0)
	c := NewPulley("c", 20)
	c.SetPosition(0, 0)
	a.Drive(b)
	a.Drive(c)

	r := gfx.NewRecorder()
	a.DrawBelts(r)

	if n := r.Count(gfx.OpLine); n != 2 {
		t.Fatalf("expected 2 belt lines for one non-degenerate belt, got %d", n)
	}
	top := r.Ops[0].Points
	if math.Abs(top[0].Y-top[1].Y) < tol {
		t.Errorf("belt between pulleys of different radii should slope, got %v", top)
	}
}
