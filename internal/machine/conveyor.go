package machine

import (
	"github.com/ByteArena/box2d"

	"github.com/san-kum/machinesim/internal/gfx"
	"github.com/san-kum/machinesim/internal/physics"
)

// DefaultSpeedMultiplier converts turns/second to surface cm/s.
const DefaultSpeedMultiplier = 50.0

// Conveyor is a static belt. Positive drive speed moves riders toward -x,
// matching a belt turned clockwise from its right-hand end.
type Conveyor struct {
	Base

	shape      *physics.Shape
	multiplier float64
	speed      float64
}

func NewConveyor(name string, width, height float64) *Conveyor {
	c := &Conveyor{
		Base:       newBase("conveyor", name),
		shape:      physics.NewShape(),
		multiplier: DefaultSpeedMultiplier,
	}
	c.shape.BottomCenteredRectangle(width, height)
	c.shape.SetColor(gfx.Black)
	return c
}

func (c *Conveyor) SetPosition(x, y float64) {
	c.setPosition(x, y)
	c.shape.SetInitialPosition(x, y)
}

func (c *Conveyor) SetImage(path string)         { c.shape.SetImage(path) }
func (c *Conveyor) SetSpeedMultiplier(m float64) { c.multiplier = m }
func (c *Conveyor) Shape() *physics.Shape        { return c.shape }
func (c *Conveyor) Speed() float64               { return c.speed }

// SurfaceVelocity is the belt velocity along +x in metres/second.
func (c *Conveyor) SurfaceVelocity() float64 {
	return -c.speed * c.multiplier / physics.MtoCM
}

func (c *Conveyor) Rotate(_, speed float64) { c.speed = speed }

func (c *Conveyor) Install(w *physics.World) {
	body := c.shape.Install(w)
	w.Dispatcher().Add(body, c)
	c.speed = 0
}

func (c *Conveyor) BeginContact(box2d.B2ContactInterface) {}

// PreSolve sets the contact tangent speed so riders slide with the belt.
// The solver drives (vB - vA) along the tangent (n.y, -n.x) toward the
// tangent speed, so the sign depends on which fixture is the belt.
func (c *Conveyor) PreSolve(contact box2d.B2ContactInterface, _ box2d.B2Manifold) {
	body := c.shape.Body()
	if body == nil {
		return
	}
	var wm box2d.B2WorldManifold
	contact.GetWorldManifold(&wm)
	tx := wm.Normal.Y
	v := c.SurfaceVelocity()
	if contact.GetFixtureA().GetBody() == body {
		contact.SetTangentSpeed(v * tx)
	} else {
		contact.SetTangentSpeed(-v * tx)
	}
}

// Update writes the belt velocity into every dynamic body resting on it.
func (c *Conveyor) Update(float64) {
	body := c.shape.Body()
	if body == nil || c.speed == 0 {
		return
	}
	v := c.SurfaceVelocity()
	for edge := body.GetContactList(); edge != nil; edge = edge.Next {
		if !edge.Contact.IsTouching() || edge.Other == nil {
			continue
		}
		if edge.Other.GetType() != box2d.B2BodyType.B2_dynamicBody {
			continue
		}
		vel := edge.Other.GetLinearVelocity()
		edge.Other.SetLinearVelocity(box2d.MakeB2Vec2(v, vel.Y))
	}
}

func (c *Conveyor) Draw(s gfx.Surface) { c.shape.Draw(s) }

func (c *Conveyor) State() ComponentState {
	p := c.shape.Position()
	return ComponentState{
		Name:  c.name,
		Kind:  c.kind,
		X:     p.X,
		Y:     p.Y,
		Speed: c.speed,
		VX:    c.SurfaceVelocity(),
	}
}
