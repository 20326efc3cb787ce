package metrics

import (
	"github.com/ByteArena/box2d"

	"github.com/san-kum/machinesim/internal/machine"
	"github.com/san-kum/machinesim/internal/physics"
)

// Stability is the fraction of frames in which no dynamic body has fallen
// below a floor height in centimetres. Pieces that leave the scene show
// up as a value below 1.
type Stability struct {
	name       string
	floor      float64
	violations int
	samples    int
}

func NewStability(floor float64) *Stability {
	return &Stability{
		name:  "stability",
		floor: floor,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(m *machine.Machine) {
	w := m.World()
	if w == nil {
		return
	}
	s.samples++
	for b := w.Engine().GetBodyList(); b != nil; b = b.GetNext() {
		if b.GetType() != box2d.B2BodyType.B2_dynamicBody {
			continue
		}
		if b.GetPosition().Y*physics.MtoCM < s.floor {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
