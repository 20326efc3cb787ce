package machine

import (
	"math"
	"testing"

	"github.com/san-kum/machinesim/internal/physics"
)

func installedShape(t *testing.T, b Behavior) *Shape {
	t.Helper()
	s := NewShape("block")
	s.CenteredSquare(20)
	s.SetInitialPosition(40, 120)
	s.SetInitialRotation(0.1)
	s.SetBehavior(b)

	m := New(1)
	m.AddComponent(s)
	m.Reset()
	return s
}

func TestShapeBehaviors(t *testing.T) {
	tests := []struct {
		name     string
		behavior Behavior
		drive    func(s *Shape)
		wantSpin float64 // radians per second
		wantRot  float64 // turns
	}{
		{"dynamic rotate spins", DynamicBehavior{}, func(s *Shape) { s.Rotate(0.3, 0.5) }, 0.5 * 2 * math.Pi, 0.1},
		{"dynamic ignores phase", DynamicBehavior{}, func(s *Shape) { s.SetPhase(0.7) }, 0, 0.1},
		{"static ignores rotate", StaticBehavior{}, func(s *Shape) { s.Rotate(0.3, 0.5) }, 0, 0.1},
		{"static ignores phase", StaticBehavior{}, func(s *Shape) { s.SetPhase(0.7) }, 0, 0.1},
		{"kinematic follows phase", KinematicBehavior{}, func(s *Shape) { s.SetPhase(0.25) }, 0, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := installedShape(t, tt.behavior)
			body := s.Physics().Body()
			before := s.Physics().Position()

			tt.drive(s)

			if w := body.GetAngularVelocity(); math.Abs(w-tt.wantSpin) > 1e-12 {
				t.Errorf("angular velocity %v, want %v", w, tt.wantSpin)
			}
			if r := s.Physics().Rotation(); math.Abs(r-tt.wantRot) > 1e-9 {
				t.Errorf("rotation %v, want %v", r, tt.wantRot)
			}
			if p := s.Physics().Position(); math.Abs(p.X-before.X) > 1e-9 || math.Abs(p.Y-before.Y) > 1e-9 {
				t.Errorf("position moved from %v to %v", before, p)
			}
			if vx, vy := s.Physics().LinearVelocity(); vx != 0 || vy != 0 {
				t.Errorf("linear velocity (%v, %v), want zero", vx, vy)
			}
		})
	}
}

func TestShapeBehaviorBodyTypes(t *testing.T) {
	tests := []struct {
		behavior Behavior
		want     physics.BodyType
	}{
		{StaticBehavior{}, physics.Static},
		{DynamicBehavior{}, physics.Dynamic},
		{KinematicBehavior{}, physics.Kinematic},
	}

	for _, tt := range tests {
		if got := BehaviorFor(tt.want); got != tt.behavior {
			t.Errorf("BehaviorFor(%v) = %T, want %T", tt.want, got, tt.behavior)
		}
		s := installedShape(t, tt.behavior)
		if s.Physics().BodyType() != tt.want {
			t.Errorf("%T installed as %v, want %v", tt.behavior, s.Physics().BodyType(), tt.want)
		}
	}
}

func TestShapeForwardsRotation(t *testing.T) {
	for _, b := range []Behavior{StaticBehavior{}, DynamicBehavior{}} {
		s := installedShape(t, b)
		s.Rotate(0.4, 0.2)
		if s.Source().Phase() != 0.4 || s.Source().Speed() != 0.2 {
			t.Errorf("%T forwarded phase=%v speed=%v", b, s.Source().Phase(), s.Source().Speed())
		}
	}
}
