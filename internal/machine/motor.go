package machine

import (
	"math"
	"path/filepath"

	"github.com/ByteArena/box2d"

	"github.com/san-kum/machinesim/internal/dynamo"
	"github.com/san-kum/machinesim/internal/gfx"
	"github.com/san-kum/machinesim/internal/physics"
)

const (
	motorBoxWidth  = 75
	motorBoxHeight = 50
	motorWheelSize = 45

	// shaftHeight is the shaft offset above the box origin, in centimetres.
	shaftHeight = 24
	// imageOffsetX shifts the animation frames left of the shaft.
	imageOffsetX = -12

	// DefaultAmplitude is the oscillation half-swing in turns.
	DefaultAmplitude = 0.25

	// motorFramesPerTurn is how many animation frames play per revolution.
	motorFramesPerTurn = 16
	motorActiveFrames  = 4
)

// MotorState is the activation state. A motor only moves forward from
// Idle to Active; Reset is the only way back.
type MotorState int

const (
	Idle MotorState = iota
	Active
)

func (s MotorState) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Motor drives its sinks at a constant speed once active. It is either
// active from the start or woken by the first contact with its box.
type Motor struct {
	Base

	box    *physics.Shape
	wheel  physics.Outline
	frames [motorActiveFrames + 1]physics.Outline
	source *dynamo.Source

	speed           float64
	initiallyActive bool
	oscillating     bool
	amplitude       float64

	state      MotorState
	phase      float64
	activeTime float64
}

// NewMotor creates an idle, non-oscillating motor whose images are read
// from imagesDir.
func NewMotor(name, imagesDir string) *Motor {
	m := &Motor{
		Base:      newBase("motor", name),
		box:       physics.NewShape(),
		source:    dynamo.NewSource(),
		amplitude: DefaultAmplitude,
	}
	m.box.BottomCenteredRectangle(motorBoxWidth, motorBoxHeight)
	m.box.SetImage(filepath.Join(imagesDir, "motor-box.png"))
	m.wheel.CenteredSquare(motorWheelSize)
	m.wheel.SetImage(filepath.Join(imagesDir, "wheel.png"))

	names := [motorActiveFrames + 1]string{
		"motor-idle.png",
		"motor-active-1.png",
		"motor-active-2.png",
		"motor-active-3.png",
		"motor-active-4.png",
	}
	for i, n := range names {
		m.frames[i].CenteredSquare(motorWheelSize)
		m.frames[i].SetImage(filepath.Join(imagesDir, n))
	}
	return m
}

func (m *Motor) SetPosition(x, y float64) {
	m.setPosition(x, y)
	m.box.SetInitialPosition(x, y)
}

// SetSpeed sets the drive speed in turns/second. Negative speeds mirror the artwork.
func (m *Motor) SetSpeed(speed float64)         { m.speed = speed }
func (m *Motor) SetInitiallyActive(active bool) { m.initiallyActive = active }
func (m *Motor) SetOscillating(osc bool)        { m.oscillating = osc }

// SetAmplitude sets the oscillation half-swing in turns.
func (m *Motor) SetAmplitude(a float64) { m.amplitude = a }

func (m *Motor) Speed() float64         { return m.speed }
func (m *Motor) Phase() float64         { return m.phase }
func (m *Motor) MotorState() MotorState { return m.state }
func (m *Motor) Active() bool           { return m.state == Active }
func (m *Motor) Source() *dynamo.Source { return m.source }
func (m *Motor) Box() *physics.Shape    { return m.box }

// AddSink attaches a sink to the motor output.
func (m *Motor) AddSink(s dynamo.Sink) { m.source.AddSink(s) }

// ShaftPosition is the top centre of the motor box in centimetres.
func (m *Motor) ShaftPosition() gfx.Point {
	p := m.box.Position()
	return gfx.Pt(p.X, p.Y+shaftHeight)
}

func (m *Motor) Install(w *physics.World) {
	body := m.box.Install(w)
	w.Dispatcher().Add(body, m)

	m.phase = 0
	m.activeTime = 0
	m.source.Reset()
	m.state = Idle
	if m.initiallyActive {
		m.state = Active
	}
}

// BeginContact activates the motor when its own box is touched.
func (m *Motor) BeginContact(c box2d.B2ContactInterface) {
	if physics.Involves(c, m.box.Body()) {
		m.state = Active
	}
}

func (m *Motor) PreSolve(box2d.B2ContactInterface, box2d.B2Manifold) {}

// Update advances the phase by dt and broadcasts it. Idle motors emit nothing.
func (m *Motor) Update(dt float64) {
	if m.state != Active {
		return
	}
	m.activeTime += dt
	if m.oscillating {
		m.phase = m.amplitude*math.Sin(2*math.Pi*m.speed*m.activeTime) + m.amplitude
	} else {
		m.phase = dynamo.Wrap(m.phase + m.speed*dt)
	}
	m.source.SetRotation(m.phase, m.speed)
}

// FrameIndex selects the artwork: 0 is idle, 1..4 cycle while active.
func (m *Motor) FrameIndex() int {
	if m.state != Active {
		return 0
	}
	idx := int(m.phase*motorFramesPerTurn)%motorActiveFrames + 1
	if idx < 1 {
		idx += motorActiveFrames
	}
	return idx
}

func (m *Motor) Draw(s gfx.Surface) {
	m.box.Draw(s)

	p := m.box.Position()
	centre := gfx.Pt(p.X+imageOffsetX, p.Y+shaftHeight)

	s.PushState()
	s.Translate(centre.X, centre.Y)
	if m.speed < 0 {
		s.Scale(-1, 1)
	}
	m.frames[m.FrameIndex()].Draw(s, gfx.Point{}, 0)
	s.PopState()

	if m.state == Active {
		m.wheel.Draw(s, centre, m.phase)
	}
}

func (m *Motor) State() ComponentState {
	p := m.box.Position()
	return ComponentState{
		Name:   m.name,
		Kind:   m.kind,
		X:      p.X,
		Y:      p.Y,
		Phase:  m.phase,
		Speed:  m.source.Speed(),
		Active: m.state == Active,
	}
}
