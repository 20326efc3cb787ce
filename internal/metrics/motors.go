package metrics

import "github.com/san-kum/machinesim/internal/machine"

// ActiveMotors counts running motors. Value is the latest count; Frames
// the number of samples with at least one motor running.
type ActiveMotors struct {
	name    string
	active  int
	frames  int
	samples int
}

func NewActiveMotors() *ActiveMotors {
	return &ActiveMotors{name: "active_motors"}
}

func (a *ActiveMotors) Name() string {
	return a.name
}

func (a *ActiveMotors) Observe(m *machine.Machine) {
	a.active = 0
	for _, c := range m.Components() {
		if motor, ok := c.(*machine.Motor); ok && motor.Active() {
			a.active++
		}
	}
	if a.active > 0 {
		a.frames++
	}
	a.samples++
}

func (a *ActiveMotors) Value() float64 { return float64(a.active) }
func (a *ActiveMotors) Frames() int    { return a.frames }

func (a *ActiveMotors) Reset() {
	a.active = 0
	a.frames = 0
	a.samples = 0
}
