package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"

	"github.com/san-kum/machinesim/internal/gfx"
)

// Shape is an outline that becomes one engine body once installed.
// Before installation position and rotation live in the shape itself;
// afterwards every read and write goes through the body.
type Shape struct {
	Outline

	bodyType BodyType
	material Material

	initialPosition gfx.Point
	initialRotation float64

	body  *box2d.B2Body
	world *World
}

func NewShape() *Shape {
	return &Shape{material: DefaultMaterial()}
}

func (s *Shape) mustNotBeInstalled() {
	if s.body != nil {
		panic(fmt.Errorf("modify shape body: %w", ErrInstalled))
	}
}

func (s *Shape) SetBodyType(t BodyType) {
	s.mustNotBeInstalled()
	s.bodyType = t
}

func (s *Shape) BodyType() BodyType { return s.bodyType }

func (s *Shape) SetMaterial(m Material) {
	s.mustNotBeInstalled()
	s.material = m
}

// SetPhysics sets density, friction and restitution in one call.
func (s *Shape) SetPhysics(density, friction, restitution float64) {
	s.SetMaterial(Material{Density: density, Friction: friction, Restitution: restitution})
}

func (s *Shape) Material() Material { return s.material }

func (s *Shape) SetDynamic()   { s.SetBodyType(Dynamic) }
func (s *Shape) SetKinematic() { s.SetBodyType(Kinematic) }

// SetInitialPosition sets where Install places the body, in centimetres.
func (s *Shape) SetInitialPosition(x, y float64) {
	s.initialPosition = gfx.Pt(x, y)
}

// SetInitialRotation sets the body angle at Install, in turns.
func (s *Shape) SetInitialRotation(turns float64) {
	s.initialRotation = turns
}

func (s *Shape) Installed() bool { return s.body != nil }

func (s *Shape) Body() *box2d.B2Body { return s.body }

func (s *Shape) World() *World { return s.world }

// Install creates the body and fixture in w. Installing twice into the same
// world panics. Installing into a new generation drops the stale handle.
func (s *Shape) Install(w *World) *box2d.B2Body {
	if s.world == w && s.body != nil {
		panic(fmt.Errorf("install into generation %d: %w", w.Generation(), ErrInstalled))
	}
	if w.Locked() {
		panic(fmt.Errorf("install: %w", ErrWorldLocked))
	}

	def := box2d.MakeB2BodyDef()
	def.Type = s.bodyType.b2()
	def.Position = toMeters(s.initialPosition.X, s.initialPosition.Y)
	def.Angle = TurnsToRadians(s.initialRotation)
	body := w.b2.CreateBody(&def)

	fixture := box2d.MakeB2FixtureDef()
	fixture.Density = s.material.Density
	fixture.Friction = s.material.Friction
	fixture.Restitution = s.material.Restitution

	if s.IsCircle() {
		circle := box2d.MakeB2CircleShape()
		circle.M_radius = s.Radius()/MtoCM - circleInset
		fixture.Shape = &circle
	} else {
		pts := s.fixturePoints()
		if len(pts) < 3 {
			panic(fmt.Errorf("install: %w", ErrEmptyOutline))
		}
		if len(pts) > box2d.B2_maxPolygonVertices {
			panic(fmt.Errorf("install %d vertices: %w", len(pts), ErrTooManyVertices))
		}
		vertices := make([]box2d.B2Vec2, len(pts))
		for i, p := range pts {
			vertices[i] = toMeters(p.X, p.Y)
		}
		poly := box2d.MakeB2PolygonShape()
		poly.Set(vertices, len(vertices))
		fixture.Shape = &poly
	}
	body.CreateFixtureFromDef(&fixture)

	s.body = body
	s.world = w
	return body
}

// Position is the body origin in centimetres.
func (s *Shape) Position() gfx.Point {
	if s.body == nil {
		return s.initialPosition
	}
	p := s.body.GetPosition()
	return gfx.Pt(p.X*MtoCM, p.Y*MtoCM)
}

// SetPosition moves the shape. An installed body stops feeling gravity.
func (s *Shape) SetPosition(x, y float64) {
	if s.body == nil {
		s.SetInitialPosition(x, y)
		return
	}
	s.body.SetTransform(toMeters(x, y), s.body.GetAngle())
	s.body.SetGravityScale(0)
}

// Rotation is the body angle in turns.
func (s *Shape) Rotation() float64 {
	if s.body == nil {
		return s.initialRotation
	}
	return RadiansToTurns(s.body.GetAngle())
}

// SetRotation turns the shape to an absolute angle in turns. An installed
// body stops feeling gravity.
func (s *Shape) SetRotation(turns float64) {
	if s.body == nil {
		s.SetInitialRotation(turns)
		return
	}
	s.body.SetTransform(s.body.GetPosition(), TurnsToRadians(turns))
	s.body.SetGravityScale(0)
}

// SetAngularVelocity sets spin in turns per second. No-op before Install.
func (s *Shape) SetAngularVelocity(turnsPerSec float64) {
	if s.body == nil {
		return
	}
	s.body.SetAngularVelocity(TurnsToRadians(turnsPerSec))
}

// SetLinearVelocity sets velocity in metres per second. No-op before Install.
func (s *Shape) SetLinearVelocity(vx, vy float64) {
	if s.body == nil {
		return
	}
	s.body.SetLinearVelocity(box2d.MakeB2Vec2(vx, vy))
}

func (s *Shape) LinearVelocity() (vx, vy float64) {
	if s.body == nil {
		return 0, 0
	}
	v := s.body.GetLinearVelocity()
	return v.X, v.Y
}

func (s *Shape) SetGravityScale(scale float64) {
	if s.body == nil {
		return
	}
	s.body.SetGravityScale(scale)
}

// Draw paints the outline at the current transform.
func (s *Shape) Draw(surface gfx.Surface) {
	s.Outline.Draw(surface, s.Position(), s.Rotation())
}
