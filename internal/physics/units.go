package physics

import (
	"math"

	"github.com/ByteArena/box2d"
)

const (
	// MtoCM converts engine metres to machine centimetres.
	MtoCM = 100.0

	// Gravity is the vertical acceleration in m/s^2.
	Gravity = -9.8

	VelocityIterations = 6
	PositionIterations = 2

	// circleInset is subtracted from circle fixture radii, in metres.
	circleInset = 0.005
	// polygonInset shrinks polygon fixtures per side, in centimetres.
	polygonInset = 0.95
)

// BodyType selects how the engine moves a body.
type BodyType int

const (
	Static BodyType = iota
	Kinematic
	Dynamic
)

func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

func (t BodyType) b2() uint8 {
	switch t {
	case Kinematic:
		return box2d.B2BodyType.B2_kinematicBody
	case Dynamic:
		return box2d.B2BodyType.B2_dynamicBody
	default:
		return box2d.B2BodyType.B2_staticBody
	}
}

// Material is the fixture surface description.
type Material struct {
	Density     float64
	Friction    float64
	Restitution float64
}

func DefaultMaterial() Material {
	return Material{Density: 1, Friction: 0.5, Restitution: 0.5}
}

func TurnsToRadians(turns float64) float64 { return turns * 2 * math.Pi }

func RadiansToTurns(rad float64) float64 { return rad / (2 * math.Pi) }

func toMeters(x, y float64) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(x/MtoCM, y/MtoCM)
}
