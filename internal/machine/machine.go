package machine

import (
	"github.com/san-kum/machinesim/internal/dynamo"
	"github.com/san-kum/machinesim/internal/gfx"
	"github.com/san-kum/machinesim/internal/physics"
)

// DefaultFrameRate is the frame rate a new machine runs at.
const DefaultFrameRate = 30.0

// Machine owns an ordered set of components and the physics world they
// live in. It advances one fixed frame per Update. A machine is not safe
// for concurrent use.
type Machine struct {
	number     int
	frameRate  float64
	frame      int
	location   gfx.Point
	components []Component
	world      *physics.World
	generation int
}

func New(number int) *Machine {
	return &Machine{
		number:     number,
		frameRate:  DefaultFrameRate,
		components: make([]Component, 0),
	}
}

func (m *Machine) Number() int { return m.number }

// AddComponent appends c. Insertion order is update and draw order.
// Components added after the first Reset are installed immediately.
func (m *Machine) AddComponent(c Component) {
	if c == nil {
		return
	}
	c.attach(m)
	m.components = append(m.components, c)
	if m.world != nil {
		c.Install(m.world)
	}
}

func (m *Machine) Components() []Component {
	out := make([]Component, len(m.components))
	copy(out, m.components)
	return out
}

// Component returns the first component with the given name.
func (m *Machine) Component(name string) Component {
	for _, c := range m.components {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Reset throws away the world and every body in it, builds the next
// generation and reinstalls every component in order. The frame counter
// returns to zero.
func (m *Machine) Reset() {
	if m.world != nil {
		m.world.Destroy()
	}
	m.generation++
	m.world = physics.NewWorld(m.generation)
	m.frame = 0
	for _, c := range m.components {
		c.Install(m.world)
	}
}

// Update advances one frame: step the world, then update every component.
// It does nothing while the frame rate is not positive.
func (m *Machine) Update() {
	if m.frameRate < dynamo.Epsilon {
		return
	}
	if m.world == nil {
		m.Reset()
	}
	dt := 1 / m.frameRate
	m.world.Step(dt)
	for _, c := range m.components {
		c.Update(dt)
	}
	m.frame++
}

func (m *Machine) Frame() int { return m.frame }

// Time is the simulated time in seconds, or 0 without a positive frame rate.
func (m *Machine) Time() float64 {
	if m.frameRate < dynamo.Epsilon {
		return 0
	}
	return float64(m.frame) / m.frameRate
}

func (m *Machine) FrameRate() float64 { return m.frameRate }

// SetFrameRate changes the fixed step. Frames already simulated used the
// old step, so callers reset the machine when the rate changes.
func (m *Machine) SetFrameRate(rate float64) { m.frameRate = rate }

func (m *Machine) Location() gfx.Point      { return m.location }
func (m *Machine) SetLocation(x, y float64) { m.location = gfx.Pt(x, y) }

func (m *Machine) World() *physics.World { return m.world }

func (m *Machine) Generation() int { return m.generation }

// Draw renders the machine at its location with y pointing up. Belts go
// underneath everything else.
func (m *Machine) Draw(s gfx.Surface) {
	s.PushState()
	defer s.PopState()

	s.Translate(m.location.X, m.location.Y)
	s.Scale(1, -1)

	for _, c := range m.components {
		if bd, ok := c.(BeltDrawer); ok {
			bd.DrawBelts(s)
		}
	}
	for _, c := range m.components {
		c.Draw(s)
	}
}

// Snapshot captures the state of every component at the current frame.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Machine:    m.number,
		Frame:      m.frame,
		Time:       m.Time(),
		Components: make([]ComponentState, 0, len(m.components)),
	}
	for _, c := range m.components {
		snap.Components = append(snap.Components, c.State())
	}
	return snap
}
