package machine

import (
	"fmt"
	"math"

	"github.com/san-kum/machinesim/internal/dynamo"
	"github.com/san-kum/machinesim/internal/gfx"
	"github.com/san-kum/machinesim/internal/physics"
)

// beltInset pulls belt lines inside the pulley rim, in centimetres.
const beltInset = 3.0

// Pulley is a wheel without a body. It turns with its upstream source,
// drives other pulleys through belts and re-broadcasts to attached sinks.
type Pulley struct {
	Base

	radius float64
	face   physics.Outline
	source *dynamo.Source
	driven []*Pulley

	phase float64
	speed float64
}

func NewPulley(name string, radius float64) *Pulley {
	p := &Pulley{
		Base:   newBase("pulley", name),
		radius: radius,
		source: dynamo.NewSource(),
	}
	p.face.Circle(radius)
	p.face.SetColor(gfx.Gray)
	return p
}

func (p *Pulley) SetPosition(x, y float64) { p.setPosition(x, y) }
func (p *Pulley) SetImage(path string)     { p.face.SetImage(path) }

func (p *Pulley) Radius() float64        { return p.radius }
func (p *Pulley) Phase() float64         { return p.phase }
func (p *Pulley) Speed() float64         { return p.speed }
func (p *Pulley) Source() *dynamo.Source { return p.source }
func (p *Pulley) Driven() []*Pulley      { return append([]*Pulley(nil), p.driven...) }

// AddSink attaches a non-belt sink such as a conveyor or shape.
func (p *Pulley) AddSink(s dynamo.Sink) { p.source.AddSink(s) }

// Drive belts other to this pulley. The driven pulley's upstream becomes
// this pulley's source, but it is not a sink of that source: belt updates
// are sent directly with the radius ratio applied.
func (p *Pulley) Drive(other *Pulley) {
	if other == nil {
		return
	}
	if other == p {
		panic(fmt.Errorf("pulley %q drives itself: %w", p.name, dynamo.ErrDuplicateSink))
	}
	for _, d := range p.driven {
		if d == other {
			panic(fmt.Errorf("pulley %q already drives %q: %w", p.name, other.name, dynamo.ErrDuplicateSink))
		}
	}
	if up := other.Upstream(); up != nil {
		panic(fmt.Errorf("pulley %q: %w", other.name, dynamo.ErrMultipleSources))
	}
	other.SetSource(p.source)
	p.driven = append(p.driven, other)
}

// Rotate stores phase and speed, drives belted pulleys, then broadcasts.
func (p *Pulley) Rotate(phase, speed float64) {
	p.phase = phase
	p.speed = speed
	for _, d := range p.driven {
		if d.radius < dynamo.Epsilon {
			continue
		}
		ratio := p.radius / d.radius
		d.Rotate(dynamo.Wrap(phase*ratio), speed*ratio)
	}
	p.source.SetRotation(phase, speed)
}

// SetPhase is Rotate without a speed change.
func (p *Pulley) SetPhase(phase float64) {
	p.phase = phase
	for _, d := range p.driven {
		if d.radius < dynamo.Epsilon {
			continue
		}
		d.SetPhase(dynamo.Wrap(phase * p.radius / d.radius))
	}
	p.source.SetPhase(phase)
}

func (p *Pulley) Install(*physics.World) {
	p.phase = 0
	p.speed = 0
	p.source.Reset()
}

func (p *Pulley) Draw(s gfx.Surface) {
	p.face.Draw(s, p.position, p.phase)
}

// DrawBelts draws the two tangent lines of every belt leaving this pulley.
func (p *Pulley) DrawBelts(s gfx.Surface) {
	origin := p.position
	rBase := p.radius - beltInset
	for _, d := range p.driven {
		dest := d.position
		rOut := d.radius - beltInset
		dx, dy := dest.X-origin.X, dest.Y-origin.Y
		dist := math.Hypot(dx, dy)
		if dist < 0.001 {
			continue
		}
		theta := math.Atan2(dy, dx)
		phi := math.Asin(math.Max(-1, math.Min(1, (rOut-rBase)/dist)))

		for _, base := range []float64{phi + math.Pi/2, -phi - math.Pi/2} {
			a := theta + base
			sin, cos := math.Sincos(a)
			s.StrokeLine(
				gfx.Pt(origin.X+rBase*cos, origin.Y+rBase*sin),
				gfx.Pt(dest.X+rOut*cos, dest.Y+rOut*sin),
				gfx.BeltColor,
			)
		}
	}
}

func (p *Pulley) State() ComponentState {
	return ComponentState{
		Name:     p.name,
		Kind:     p.kind,
		X:        p.position.X,
		Y:        p.position.Y,
		Rotation: p.phase,
		Phase:    p.phase,
		Speed:    p.speed,
	}
}
