package sim

import (
	"github.com/san-kum/machinesim/internal/config"
	"github.com/san-kum/machinesim/internal/gfx"
)

const (
	hitWidth  = 200
	hitHeight = 600
)

// Drawable places a machine system in a host scene. The host's timeline
// frame is offset by the start frame before the machine sees it.
type Drawable struct {
	name       string
	system     *System
	position   gfx.Point
	scale      float64
	startFrame int
}

func NewDrawable(name string, system *System) *Drawable {
	return &Drawable{
		name:   name,
		system: system,
		scale:  config.DefaultScale,
	}
}

func (d *Drawable) Name() string        { return d.name }
func (d *Drawable) System() *System     { return d.system }
func (d *Drawable) Scale() float64      { return d.scale }
func (d *Drawable) StartFrame() int     { return d.startFrame }
func (d *Drawable) Position() gfx.Point { return d.position }

func (d *Drawable) SetPosition(x, y float64) { d.position = gfx.Pt(x, y) }
func (d *Drawable) SetScale(scale float64)   { d.scale = scale }
func (d *Drawable) SetStartFrame(frame int)  { d.startFrame = frame }

func (d *Drawable) SetMachineNumber(n int) { d.system.ChooseMachine(n) }
func (d *Drawable) MachineNumber() int     { return d.system.MachineNumber() }

// SetFrameRate follows the host timeline's rate.
func (d *Drawable) SetFrameRate(rate float64) { d.system.SetFrameRate(rate) }

// MachineFrame maps a timeline frame to a machine frame. The machine holds
// at frame 0 until the start frame.
func (d *Drawable) MachineFrame(frame int) int {
	if f := frame - d.startFrame; f > 0 {
		return f
	}
	return 0
}

// SetTimelineFrame seeks the machine to match the host timeline.
func (d *Drawable) SetTimelineFrame(frame int) {
	d.system.SetFrame(d.MachineFrame(frame))
}

// HitTest reports whether (x, y) falls in the box the machine roughly
// covers: centred on the placed position horizontally and extending up
// from it, in surface coordinates.
func (d *Drawable) HitTest(x, y float64) bool {
	w := float64(int(hitWidth * d.scale))
	h := float64(int(hitHeight * d.scale))
	left := d.position.X - w/2
	right := d.position.X + w/2
	top := d.position.Y - h
	bottom := d.position.Y
	return x >= left && x <= right && y >= top && y <= bottom
}

// Draw renders the machine at the placed position and scale. The machine
// location is forced to the origin since placement comes from the
// transform.
func (d *Drawable) Draw(s gfx.Surface) {
	s.PushState()
	defer s.PopState()

	s.Translate(d.position.X, d.position.Y)
	s.Scale(d.scale, d.scale)
	d.system.SetLocation(0, 0)
	d.system.Draw(s)
}

func (d *Drawable) SaveState() config.DrawableState {
	return config.DrawableState{
		Machine:    d.system.MachineNumber(),
		StartFrame: d.startFrame,
		Scale:      d.scale,
	}
}

func (d *Drawable) LoadState(st config.DrawableState) {
	d.startFrame = st.StartFrame
	d.scale = st.Scale
	d.system.ChooseMachine(st.Machine)
}
