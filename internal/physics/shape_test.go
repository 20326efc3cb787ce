package physics

import (
	"errors"
	"math"
	"testing"
)

func expectPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, want) {
			t.Errorf("panic %v, want %v", r, want)
		}
	}()
	fn()
}

func box(w, h float64) *Shape {
	s := NewShape()
	s.BottomCenteredRectangle(w, h)
	return s
}

func TestShapeCachedBeforeInstall(t *testing.T) {
	s := box(20, 10)
	s.SetPosition(150, 40)
	s.SetRotation(0.125)

	if p := s.Position(); p.X != 150 || p.Y != 40 {
		t.Errorf("expected cached position (150,40), got %v", p)
	}
	if r := s.Rotation(); r != 0.125 {
		t.Errorf("expected cached rotation 0.125, got %v", r)
	}
	s.SetAngularVelocity(1)
	if s.Installed() {
		t.Error("shape should not be installed")
	}
}

func TestShapeInstallUsesInitialTransform(t *testing.T) {
	s := box(20, 10)
	s.SetInitialPosition(-250, 120)
	s.SetInitialRotation(0.25)
	s.Install(NewWorld(1))

	p := s.Position()
	if math.Abs(p.X+250) > 1e-9 || math.Abs(p.Y-120) > 1e-9 {
		t.Errorf("body at %v, want (-250,120)", p)
	}
	if math.Abs(s.Rotation()-0.25) > 1e-9 {
		t.Errorf("rotation %v, want 0.25", s.Rotation())
	}
}

func TestShapeWriteAfterInstallDisablesGravity(t *testing.T) {
	w := NewWorld(1)
	s := box(20, 10)
	s.SetDynamic()
	s.Install(w)

	if s.Body().GetGravityScale() != 1 {
		t.Fatal("fresh body should feel gravity")
	}
	s.SetRotation(0.5)
	if s.Body().GetGravityScale() != 0 {
		t.Error("SetRotation on an installed body should zero gravity scale")
	}
	if math.Abs(s.Body().GetAngle()-math.Pi) > 1e-9 {
		t.Errorf("angle %v, want pi", s.Body().GetAngle())
	}

	s.SetPosition(10, 20)
	for i := 0; i < 30; i++ {
		w.Step(1.0 / 30)
	}
	if p := s.Position(); math.Abs(p.Y-20) > 1e-6 {
		t.Errorf("body without gravity drifted to %v", p)
	}
}

func TestShapeAngularVelocityInTurns(t *testing.T) {
	s := box(20, 10)
	s.SetKinematic()
	s.Install(NewWorld(1))
	s.SetAngularVelocity(0.5)

	if got := s.Body().GetAngularVelocity(); math.Abs(got-math.Pi) > 1e-9 {
		t.Errorf("angular velocity %v rad/s, want pi", got)
	}
}

func TestShapeInstallTwicePanics(t *testing.T) {
	w := NewWorld(1)
	s := box(20, 10)
	s.Install(w)
	expectPanic(t, ErrInstalled, func() { s.Install(w) })

	next := NewWorld(2)
	s.Install(next)
	if s.World() != next {
		t.Error("reinstall into a new generation should rebind the world")
	}
}

func TestShapeSettersAfterInstallPanic(t *testing.T) {
	s := box(20, 10)
	s.Install(NewWorld(1))

	expectPanic(t, ErrInstalled, func() { s.SetDynamic() })
	expectPanic(t, ErrInstalled, func() { s.SetPhysics(2, 0, 0) })
}

func TestShapeEmptyOutlinePanics(t *testing.T) {
	expectPanic(t, ErrEmptyOutline, func() { NewShape().Install(NewWorld(1)) })
}

func TestFixturePointsShrink(t *testing.T) {
	s := NewShape()
	s.Rectangle(0, 0, 20, 10)
	pts := s.fixturePoints()

	want := []struct{ x, y float64 }{{0.95, 0.95}, {19.05, 0.95}, {19.05, 9.05}, {0.95, 9.05}}
	for i, p := range pts {
		if math.Abs(p.X-want[i].x) > 1e-9 || math.Abs(p.Y-want[i].y) > 1e-9 {
			t.Errorf("vertex %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestDynamicCircleFalls(t *testing.T) {
	w := NewWorld(1)
	s := NewShape()
	s.Circle(10)
	s.SetDynamic()
	s.SetInitialPosition(0, 500)
	s.Install(w)

	for i := 0; i < 30; i++ {
		w.Step(1.0 / 30)
	}
	if s.Position().Y >= 500 {
		t.Errorf("dynamic circle did not fall, y=%v", s.Position().Y)
	}
	if w.BodyCount() != 1 {
		t.Errorf("expected one body, got %d", w.BodyCount())
	}
}
