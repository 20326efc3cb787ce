package factory_test

import (
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/machinesim/internal/factory"
	"github.com/san-kum/machinesim/internal/machine"
)

func kinds(m *machine.Machine) map[string]int {
	out := make(map[string]int)
	for _, c := range m.Components() {
		out[c.Kind()]++
	}
	return out
}

func advance(m *machine.Machine, frames int) {
	for m.Frame() < frames {
		m.Update()
	}
}

var _ = Describe("Registry", func() {
	var r *factory.Registry

	BeforeEach(func() {
		r = factory.NewRegistry("resources")
	})

	It("lists the built-in machines in order", func() {
		Expect(r.Numbers()).To(Equal([]int{1, 2}))
		Expect(r.Name(1)).To(Equal("siege"))
	})

	It("resolves images under the resources directory", func() {
		Expect(r.ImagesDir()).To(Equal(filepath.Join("resources", "images")))
	})

	It("gives an empty machine for unknown numbers", func() {
		_, err := r.Lookup(9)
		Expect(err).To(MatchError(factory.ErrUnknownMachine))
		Expect(errors.Is(err, factory.ErrUnknownMachine)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("9"))

		m := r.Create(9)
		Expect(m.Number()).To(Equal(9))
		Expect(m.Components()).To(BeEmpty())
	})

	It("lets callers replace a machine", func() {
		r.Register(2, "blank", func(string) factory.Factory { return blank{} })
		Expect(r.Create(2).Components()).To(BeEmpty())
		Expect(r.Name(2)).To(Equal("blank"))
	})
})

type blank struct{}

func (blank) Create(n int) *machine.Machine { return machine.New(n) }

var _ = Describe("Machine 1", func() {
	var m *machine.Machine

	BeforeEach(func() {
		m = factory.NewRegistry("resources").Create(1)
		m.Reset()
	})

	It("wires every part of the contraption", func() {
		Expect(kinds(m)).To(HaveKeyWithValue("motor", 2))
		Expect(kinds(m)).To(HaveKeyWithValue("pulley", 7))
		Expect(kinds(m)).To(HaveKeyWithValue("conveyor", 1))
		Expect(kinds(m)).To(HaveKeyWithValue("elevator", 3))
	})

	It("names every component uniquely", func() {
		seen := make(map[string]bool)
		for _, c := range m.Components() {
			Expect(seen).NotTo(HaveKey(c.Name()))
			seen[c.Name()] = true
		}
	})

	It("runs the belt and elevators from the first frame", func() {
		advance(m, 1)
		conveyor := m.Component("ec-conveyor").(*machine.Conveyor)
		Expect(conveyor.Speed()).To(BeNumerically("~", 0.25, 1e-9))
		for _, name := range []string{"ec-elevator1", "ec-elevator2", "ec-elevator3"} {
			Expect(m.Component(name).(*machine.Elevator).Speed()).To(BeNumerically("~", 0.25, 1e-9))
		}
	})

	It("keeps the catapult motor idle until struck", func() {
		motor := m.Component("sc-motor").(*machine.Motor)
		Expect(motor.Active()).To(BeFalse())
		Expect(m.Component("sc-pulley-arm").(*machine.Pulley).Speed()).To(BeZero())
	})

	It("places the spoon on the arm pulley", func() {
		spoon := m.Component("sc-spoon").(*machine.Shape)
		arm := m.Component("sc-pulley-arm").(*machine.Pulley)
		got := spoon.Physics().Position()
		Expect(got.X).To(BeNumerically("~", arm.Position().X, 1e-9))
		Expect(got.Y).To(BeNumerically("~", arm.Position().Y, 1e-9))
	})
})

var _ = Describe("Machine 2", func() {
	var m *machine.Machine

	BeforeEach(func() {
		m = factory.NewRegistry("resources").Create(2)
		m.Reset()
	})

	It("starts with the motor idle", func() {
		Expect(m.Component("motor").(*machine.Motor).Active()).To(BeFalse())
		Expect(m.World().BodyCount()).To(Equal(6))
	})

	It("drives the spinner through the pulley ratio", func() {
		motor := m.Component("motor").(*machine.Motor)
		motor.Source().SetRotation(0.3, 0.5)

		p2 := m.Component("pulley2").(*machine.Pulley)
		Expect(p2.Speed()).To(BeNumerically("~", 0.5*10/15, 1e-9))

		spinner := m.Component("spinner").(*machine.Shape)
		Expect(spinner.Physics().Rotation()).To(BeNumerically("~", p2.Phase(), 1e-9))
	})

	It("replays the same frames after a reset", func() {
		advance(m, 60)
		first := m.Snapshot()
		m.Reset()
		advance(m, 60)
		Expect(m.Snapshot()).To(Equal(first))
	})
})
