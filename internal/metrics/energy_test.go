package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/machinesim/internal/machine"
)

func ballMachine(withFloor bool) (*machine.Machine, *machine.Shape) {
	m := machine.New(1)
	if withFloor {
		floor := machine.NewShape("floor")
		floor.Rectangle(-200, -10, 400, 10)
		m.AddComponent(floor)
	}
	ball := machine.NewShape("ball")
	ball.Circle(10)
	ball.SetDynamic()
	ball.SetInitialPosition(0, 100)
	m.AddComponent(ball)
	m.Reset()
	return m, ball
}

func TestKineticEnergy(t *testing.T) {
	m, ball := ballMachine(true)
	e := NewKineticEnergy()

	e.Observe(m)
	if e.Value() != 0 {
		t.Errorf("resting machine has energy %v", e.Value())
	}

	ball.Physics().SetLinearVelocity(2, 0)
	e.Observe(m)

	mass := ball.Physics().Body().GetMass()
	expected := 0.5 * mass * 4
	if math.Abs(e.Value()-expected) > 1e-9 {
		t.Errorf("expected energy %f, got %f", expected, e.Value())
	}
	if e.Peak() != e.Value() {
		t.Errorf("peak %v should match latest %v", e.Peak(), e.Value())
	}
}

func TestKineticEnergyIncludesSpin(t *testing.T) {
	m, ball := ballMachine(true)
	e := NewKineticEnergy()

	ball.Physics().SetAngularVelocity(1)
	e.Observe(m)
	if e.Value() <= 0 {
		t.Error("a spinning ball should carry energy")
	}
}

func TestKineticEnergyReset(t *testing.T) {
	m, ball := ballMachine(true)
	e := NewKineticEnergy()

	ball.Physics().SetLinearVelocity(1, 1)
	e.Observe(m)
	if e.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	e.Reset()
	if e.Value() != 0 || e.Peak() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestStability(t *testing.T) {
	tests := []struct {
		name      string
		withFloor bool
		stable    bool
	}{
		{"ball on floor", true, true},
		{"ball falls away", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := ballMachine(tt.withFloor)
			s := NewStability(-50)
			for i := 0; i < 60; i++ {
				m.Update()
				s.Observe(m)
			}
			if got := s.Value() == 1; got != tt.stable {
				t.Errorf("stability = %v", s.Value())
			}
		})
	}
}

func TestActiveMotors(t *testing.T) {
	m := machine.New(1)
	running := machine.NewMotor("running", "images")
	running.SetInitiallyActive(true)
	idle := machine.NewMotor("idle", "images")
	idle.SetPosition(200, 0)
	m.AddComponent(running)
	m.AddComponent(idle)
	m.Reset()

	a := NewActiveMotors()
	a.Observe(m)
	a.Observe(m)
	if a.Value() != 1 || a.Frames() != 2 {
		t.Errorf("value=%v frames=%d, want 1 and 2", a.Value(), a.Frames())
	}

	a.Reset()
	if a.Value() != 0 || a.Frames() != 0 {
		t.Error("expected zero after reset")
	}
}
