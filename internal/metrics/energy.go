package metrics

import (
	"math"

	"github.com/ByteArena/box2d"

	"github.com/san-kum/machinesim/internal/machine"
)

// KineticEnergy is the translational plus rotational energy of every
// dynamic body in joules. Value is the latest sample; Peak the largest.
type KineticEnergy struct {
	name    string
	current float64
	peak    float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(m *machine.Machine) {
	w := m.World()
	if w == nil {
		return
	}
	e.current = Kinetic(w.Engine())
	e.peak = math.Max(e.peak, e.current)
	e.samples++
}

func (e *KineticEnergy) Value() float64 { return e.current }
func (e *KineticEnergy) Peak() float64  { return e.peak }

func (e *KineticEnergy) Reset() {
	e.current = 0
	e.peak = 0
	e.samples = 0
}

// Kinetic sums ½mv² + ½Iω² over the dynamic bodies of w, with I taken
// about each body's centre of mass.
func Kinetic(w *box2d.B2World) float64 {
	total := 0.0
	for b := w.GetBodyList(); b != nil; b = b.GetNext() {
		if b.GetType() != box2d.B2BodyType.B2_dynamicBody {
			continue
		}
		mass := b.GetMass()
		v := b.GetLinearVelocity()
		lc := b.GetLocalCenter()
		inertia := b.GetInertia() - mass*box2d.B2Vec2Dot(lc, lc)
		omega := b.GetAngularVelocity()
		total += 0.5*mass*(v.X*v.X+v.Y*v.Y) + 0.5*inertia*omega*omega
	}
	return total
}
