package machine

import (
	"github.com/ByteArena/box2d"

	"github.com/san-kum/machinesim/internal/gfx"
	"github.com/san-kum/machinesim/internal/physics"
)

// Elevator is a kinematic platform that rises at a speed proportional to
// its drive speed and carries whatever rests on it.
type Elevator struct {
	Base

	shape      *physics.Shape
	multiplier float64
	speed      float64
}

func NewElevator(name string, width, height float64) *Elevator {
	e := &Elevator{
		Base:       newBase("elevator", name),
		shape:      physics.NewShape(),
		multiplier: DefaultSpeedMultiplier,
	}
	e.shape.BottomCenteredRectangle(width, height)
	e.shape.SetKinematic()
	e.shape.SetPhysics(1.0, 0.5, 0.0)
	e.shape.SetColor(gfx.Gray)
	return e
}

func (e *Elevator) SetPosition(x, y float64) {
	e.setPosition(x, y)
	e.shape.SetInitialPosition(x, y)
}

func (e *Elevator) SetImage(path string)         { e.shape.SetImage(path) }
func (e *Elevator) SetSpeedMultiplier(m float64) { e.multiplier = m }
func (e *Elevator) Shape() *physics.Shape        { return e.shape }
func (e *Elevator) Speed() float64               { return e.speed }

// Velocity is the platform's vertical velocity in metres/second.
func (e *Elevator) Velocity() float64 {
	return e.speed * e.multiplier / physics.MtoCM
}

// Rotate stores speed and applies it to the platform at once.
func (e *Elevator) Rotate(_, speed float64) {
	e.speed = speed
	e.drive()
}

func (e *Elevator) Install(w *physics.World) {
	e.shape.Install(w)
	e.speed = 0
}

func (e *Elevator) drive() {
	if !e.shape.Installed() {
		return
	}
	e.shape.SetGravityScale(0)
	e.shape.SetLinearVelocity(0, e.Velocity())
}

// Update keeps the platform moving and lifts dynamic bodies touching it
// without changing their horizontal velocity.
func (e *Elevator) Update(float64) {
	body := e.shape.Body()
	if body == nil || e.speed == 0 {
		return
	}
	e.drive()
	v := e.Velocity()
	for edge := body.GetContactList(); edge != nil; edge = edge.Next {
		if !edge.Contact.IsTouching() || edge.Other == nil {
			continue
		}
		if edge.Other.GetType() != box2d.B2BodyType.B2_dynamicBody {
			continue
		}
		vel := edge.Other.GetLinearVelocity()
		edge.Other.SetLinearVelocity(box2d.MakeB2Vec2(vel.X, v))
	}
}

func (e *Elevator) Draw(s gfx.Surface) { e.shape.Draw(s) }

func (e *Elevator) State() ComponentState {
	p := e.shape.Position()
	vx, vy := e.shape.LinearVelocity()
	return ComponentState{
		Name:  e.name,
		Kind:  e.kind,
		X:     p.X,
		Y:     p.Y,
		Speed: e.speed,
		VX:    vx,
		VY:    vy,
	}
}
