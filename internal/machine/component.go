package machine

import (
	"github.com/san-kum/machinesim/internal/dynamo"
	"github.com/san-kum/machinesim/internal/gfx"
	"github.com/san-kum/machinesim/internal/physics"
)

// Component is one part of a machine. Every component is a rotation sink;
// the ones that also drive others expose a Source method.
type Component interface {
	dynamo.Sink

	Name() string
	Kind() string
	Machine() *Machine

	// Install creates the component's bodies in w and restores its
	// construction-time runtime state. Machine.Reset calls it once per
	// world generation.
	Install(w *physics.World)
	// Update advances the component by dt seconds after the world step.
	Update(dt float64)
	Draw(s gfx.Surface)
	State() ComponentState

	attach(m *Machine)
}

// BeltDrawer is implemented by components that draw belts beneath every
// other component.
type BeltDrawer interface {
	DrawBelts(s gfx.Surface)
}

// Base carries what every component shares. Embedders get no-op sink
// methods, Update and Draw and override the ones they need.
type Base struct {
	dynamo.Link

	name     string
	kind     string
	machine  *Machine
	position gfx.Point
}

func newBase(kind, name string) Base {
	return Base{kind: kind, name: name}
}

func (b *Base) Name() string        { return b.name }
func (b *Base) Kind() string        { return b.kind }
func (b *Base) Machine() *Machine   { return b.machine }
func (b *Base) attach(m *Machine)   { b.machine = m }
func (b *Base) Position() gfx.Point { return b.position }

func (b *Base) SetPhase(float64)         {}
func (b *Base) Rotate(float64, float64)  {}
func (b *Base) Install(*physics.World)   {}
func (b *Base) Update(float64)           {}
func (b *Base) Draw(gfx.Surface)         {}
func (b *Base) setPosition(x, y float64) { b.position = gfx.Pt(x, y) }

func (b *Base) State() ComponentState {
	return ComponentState{Name: b.name, Kind: b.kind, X: b.position.X, Y: b.position.Y}
}
