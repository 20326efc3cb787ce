package machine

import (
	"image/color"

	"github.com/san-kum/machinesim/internal/dynamo"
	"github.com/san-kum/machinesim/internal/gfx"
	"github.com/san-kum/machinesim/internal/physics"
)

// Behavior decides how a shape's body reacts to rotation input.
type Behavior interface {
	BodyType() physics.BodyType
	Rotate(s *physics.Shape, phase, speed float64)
	SetPhase(s *physics.Shape, phase float64)
}

// StaticBehavior ignores rotation input.
type StaticBehavior struct{}

func (StaticBehavior) BodyType() physics.BodyType              { return physics.Static }
func (StaticBehavior) Rotate(*physics.Shape, float64, float64) {}
func (StaticBehavior) SetPhase(*physics.Shape, float64)        {}

// DynamicBehavior spins the body at the drive speed and lets the solver
// place it. Phase-only updates carry no speed and are ignored.
type DynamicBehavior struct{}

func (DynamicBehavior) BodyType() physics.BodyType { return physics.Dynamic }

func (DynamicBehavior) Rotate(s *physics.Shape, _, speed float64) {
	s.SetAngularVelocity(speed)
}

func (DynamicBehavior) SetPhase(*physics.Shape, float64) {}

// KinematicBehavior pins the body angle to the incoming phase.
type KinematicBehavior struct{}

func (KinematicBehavior) BodyType() physics.BodyType { return physics.Kinematic }

func (KinematicBehavior) Rotate(s *physics.Shape, phase, _ float64) {
	s.SetRotation(phase)
}

func (KinematicBehavior) SetPhase(s *physics.Shape, phase float64) {
	s.SetRotation(phase)
}

// BehaviorFor returns the behaviour matching a body type.
func BehaviorFor(t physics.BodyType) Behavior {
	switch t {
	case physics.Dynamic:
		return DynamicBehavior{}
	case physics.Kinematic:
		return KinematicBehavior{}
	default:
		return StaticBehavior{}
	}
}

// Shape is a general rigid body: floors, balls, dominoes, ramps, spoons.
// When driven it applies its behaviour and passes the rotation on.
type Shape struct {
	Base

	shape    *physics.Shape
	behavior Behavior
	source   *dynamo.Source

	phase float64
	speed float64
}

func NewShape(name string) *Shape {
	return &Shape{
		Base:     newBase("shape", name),
		shape:    physics.NewShape(),
		behavior: StaticBehavior{},
		source:   dynamo.NewSource(),
	}
}

func (s *Shape) Circle(radius float64) { s.shape.Circle(radius) }

func (s *Shape) Rectangle(x, y, w, h float64)         { s.shape.Rectangle(x, y, w, h) }
func (s *Shape) BottomCenteredRectangle(w, h float64) { s.shape.BottomCenteredRectangle(w, h) }
func (s *Shape) CenteredSquare(size float64)          { s.shape.CenteredSquare(size) }
func (s *Shape) AddPoint(x, y float64)                { s.shape.AddPoint(x, y) }

func (s *Shape) SetImage(path string)  { s.shape.SetImage(path) }
func (s *Shape) SetColor(c color.RGBA) { s.shape.SetColor(c) }

func (s *Shape) SetInitialPosition(x, y float64) {
	s.setPosition(x, y)
	s.shape.SetInitialPosition(x, y)
}

func (s *Shape) SetInitialRotation(turns float64) { s.shape.SetInitialRotation(turns) }

func (s *Shape) SetPhysics(density, friction, restitution float64) {
	s.shape.SetPhysics(density, friction, restitution)
}

// SetBehavior selects the behaviour and the matching body type.
func (s *Shape) SetBehavior(b Behavior) {
	s.shape.SetBodyType(b.BodyType())
	s.behavior = b
}

func (s *Shape) SetDynamic()   { s.SetBehavior(DynamicBehavior{}) }
func (s *Shape) SetKinematic() { s.SetBehavior(KinematicBehavior{}) }

func (s *Shape) Behavior() Behavior       { return s.behavior }
func (s *Shape) Physics() *physics.Shape  { return s.shape }
func (s *Shape) Source() *dynamo.Source   { return s.source }
func (s *Shape) AddSink(sink dynamo.Sink) { s.source.AddSink(sink) }

func (s *Shape) Rotate(phase, speed float64) {
	s.phase = phase
	s.speed = speed
	s.behavior.Rotate(s.shape, phase, speed)
	s.source.SetRotation(phase, speed)
}

func (s *Shape) SetPhase(phase float64) {
	s.phase = phase
	s.behavior.SetPhase(s.shape, phase)
	s.source.SetPhase(phase)
}

func (s *Shape) Install(w *physics.World) {
	s.shape.Install(w)
	s.phase = 0
	s.speed = 0
	s.source.Reset()
}

func (s *Shape) Draw(surface gfx.Surface) { s.shape.Draw(surface) }

func (s *Shape) State() ComponentState {
	p := s.shape.Position()
	vx, vy := s.shape.LinearVelocity()
	return ComponentState{
		Name:     s.name,
		Kind:     s.kind,
		X:        p.X,
		Y:        p.Y,
		Rotation: s.shape.Rotation(),
		Phase:    s.phase,
		Speed:    s.speed,
		VX:       vx,
		VY:       vy,
	}
}
