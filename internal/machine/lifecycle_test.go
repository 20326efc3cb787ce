package machine_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/machinesim/internal/machine"
)

// beltRig is a motor woken by a falling ball, driving a belt that carries
// a crate and an elevator through a pulley pair.
func beltRig() *machine.Machine {
	m := machine.New(7)

	floor := machine.NewShape("floor")
	floor.Rectangle(-400, -10, 800, 10)
	m.AddComponent(floor)

	motor := machine.NewMotor("motor", "images")
	motor.SetPosition(-200, 0)
	motor.SetSpeed(0.5)
	m.AddComponent(motor)

	trigger := machine.NewShape("trigger")
	trigger.Circle(8)
	trigger.SetDynamic()
	trigger.SetInitialPosition(-200, 90)
	m.AddComponent(trigger)

	drive := machine.NewPulley("drive", 10)
	drive.SetPosition(-200, 24)
	idler := machine.NewPulley("idler", 20)
	idler.SetPosition(0, 60)
	motor.AddSink(drive)
	drive.Drive(idler)
	m.AddComponent(drive)
	m.AddComponent(idler)

	belt := machine.NewConveyor("belt", 200, 10)
	belt.SetPosition(100, 40)
	idler.AddSink(belt)
	m.AddComponent(belt)

	crate := machine.NewShape("crate")
	crate.CenteredSquare(16)
	crate.SetDynamic()
	crate.SetInitialPosition(150, 60)
	m.AddComponent(crate)

	lift := machine.NewElevator("lift", 60, 8)
	lift.SetPosition(300, 0)
	lift2 := machine.NewPulley("lift-drive", 10)
	lift2.SetPosition(300, 200)
	drive.AddSink(lift2)
	lift2.AddSink(lift)
	m.AddComponent(lift2)
	m.AddComponent(lift)

	return m
}

func run(m *machine.Machine, frames int) machine.Snapshot {
	for m.Frame() < frames {
		m.Update()
	}
	return m.Snapshot()
}

var _ = Describe("Machine lifecycle", func() {
	var m *machine.Machine

	BeforeEach(func() {
		m = beltRig()
		m.Reset()
	})

	It("replays identically after a reset", func() {
		first := run(m, 90)
		m.Reset()
		second := run(m, 90)

		Expect(cmp.Diff(first, second, cmpopts.EquateApprox(0, 1e-12))).To(BeEmpty())
	})

	It("is not affected by reset being called twice", func() {
		first := run(m, 45)
		m.Reset()
		m.Reset()
		Expect(m.Generation()).To(Equal(3))
		Expect(cmp.Diff(first, run(m, 45), cmpopts.EquateApprox(0, 1e-12))).To(BeEmpty())
	})

	It("wakes the motor when the trigger ball lands", func() {
		motor := m.Component("motor").(*machine.Motor)
		Expect(motor.Active()).To(BeFalse())

		run(m, 60)
		Expect(motor.Active()).To(BeTrue())

		idler := m.Component("idler").(*machine.Pulley)
		Expect(idler.Speed()).To(BeNumerically("~", 0.25, 1e-9))
	})

	It("keeps every body in the current world generation", func() {
		run(m, 10)
		m.Reset()
		for _, name := range []string{"floor", "trigger", "crate"} {
			s := m.Component(name).(*machine.Shape)
			Expect(s.Physics().World()).To(BeIdenticalTo(m.World()))
		}
		Expect(m.World().BodyCount()).To(Equal(6))
	})

	Context("with the crate on the belt", func() {
		It("moves the crate once power arrives", func() {
			before := m.Component("crate").State()
			after, ok := run(m, 120).Find("crate")
			Expect(ok).To(BeTrue())
			Expect(after.X).To(BeNumerically("<", before.X))
		})
	})
})
