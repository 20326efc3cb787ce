package factory

import (
	"fmt"
	"path/filepath"

	"github.com/san-kum/machinesim/internal/gfx"
	"github.com/san-kum/machinesim/internal/machine"
)

const (
	FloorWidth  = 600.0
	FloorHeight = 15.0

	DominoWidth      = 5.0
	DominoHeight     = 25.0
	BowlingPinWidth  = 11.0
	BowlingPinHeight = 40.0
)

type DominoColor int

const (
	Black DominoColor = iota
	Red
	Green
	Blue
)

func (c DominoColor) image() string {
	switch c {
	case Red:
		return "domino-red.png"
	case Green:
		return "domino-green.png"
	case Blue:
		return "domino-blue.png"
	default:
		return "domino-black.png"
	}
}

// Machine1 is the siege machine: a running motor feeding a belt and three
// elevators, two stacks of dominoes and pins, and a catapult whose motor
// waits to be struck.
type Machine1 struct {
	imagesDir string

	dominoes int
	pins     int
}

func NewMachine1(imagesDir string) *Machine1 {
	return &Machine1{imagesDir: imagesDir}
}

func (f *Machine1) image(name string) string {
	return filepath.Join(f.imagesDir, name)
}

func (f *Machine1) Create(number int) *machine.Machine {
	f.dominoes, f.pins = 0, 0
	m := machine.New(number)

	ball := func(name string, r, x, y, density, restitution float64) {
		s := machine.NewShape(name)
		s.Circle(r)
		s.SetImage(f.image(name + ".png"))
		s.SetInitialPosition(x, y)
		s.SetDynamic()
		s.SetPhysics(density, 0.5, restitution)
		m.AddComponent(s)
	}
	ball("basketball", 16, -200, 350, 1, 0.5)
	ball("bowlingball", 16, -300, 80, 5, 0.6)
	ball("tennisball", 8, -230, 100, 1, 0.8)

	floor := machine.NewShape("floor")
	width := FloorWidth + 200
	floor.Rectangle(-width/2, -FloorHeight, width, FloorHeight)
	floor.SetImage(f.image("floor.png"))
	floor.SetInitialPosition(50, -40)
	m.AddComponent(floor)

	f.elevatorAndConveyor(m)

	f.platform(m, "platform1", 210, 250)
	f.dominoStack(m, gfx.Pt(150, 250))

	f.platform(m, "platform2", 265, 100)
	f.bowlingPinStack(m, gfx.Pt(150, 100))

	f.siegeContraption(m)

	return m
}

func (f *Machine1) platform(m *machine.Machine, name string, x, y float64) {
	p := machine.NewShape(name)
	p.Rectangle(-150, -FloorHeight/2, 300, FloorHeight)
	p.SetImage(f.image("floor.png"))
	p.SetInitialPosition(x, y)
	m.AddComponent(p)
}

func (f *Machine1) elevatorAndConveyor(m *machine.Machine) {
	motor := machine.NewMotor("ec-motor", f.imagesDir)
	motor.SetPosition(-20, 340)
	motor.SetInitiallyActive(true)
	motor.SetSpeed(0.25)
	m.AddComponent(motor)

	conveyor := machine.NewConveyor("ec-conveyor", 100, 15)
	conveyor.SetImage(f.image("conveyor.png"))
	conveyor.SetPosition(-340, 500)
	m.AddComponent(conveyor)

	elevators := make([]*machine.Elevator, 3)
	for i := range elevators {
		e := machine.NewElevator(fmt.Sprintf("ec-elevator%d", i+1), 50, 15)
		e.SetImage(f.image("beam2.png"))
		e.SetPosition(-277.5, -47.5+150*float64(i))
		m.AddComponent(e)
		elevators[i] = e
	}

	wedge := machine.NewShape("ec-wedge")
	wedge.AddPoint(-25, 0)
	wedge.AddPoint(25, 0)
	wedge.AddPoint(25, 4.5)
	wedge.AddPoint(-25, 55)
	wedge.SetImage(f.image("wedge.png"))
	wedge.SetInitialRotation(-0.25)
	wedge.SetInitialPosition(-490, 545)
	m.AddComponent(wedge)

	shaft := motor.ShaftPosition()
	drive := f.pulley(m, "ec-pulley-motor", 10, shaft.X, shaft.Y)
	motor.AddSink(drive)

	belt := f.pulley(m, "ec-pulley-conveyor", 10, -150, 320)
	drive.Drive(belt)
	belt.AddSink(conveyor)

	lift := f.pulley(m, "ec-pulley-elevator", 10, -310, 370)
	belt.Drive(lift)
	for _, e := range elevators {
		lift.AddSink(e)
	}
}

func (f *Machine1) siegeContraption(m *machine.Machine) {
	beam := machine.NewShape("sc-beam")
	beam.BottomCenteredRectangle(180, FloorHeight)
	beam.SetImage(f.image("beam.png"))
	beam.SetInitialPosition(-290, 420)
	m.AddComponent(beam)

	wedge := machine.NewShape("sc-wedge")
	wedge.AddPoint(-5, 0)
	wedge.AddPoint(0, 0)
	wedge.AddPoint(0, 4.5)
	wedge.AddPoint(-5, 45)
	wedge.SetImage(f.image("wedge.png"))
	wedge.SetInitialRotation(0.25)
	wedge.SetInitialPosition(-90, 240)
	m.AddComponent(wedge)

	motor := machine.NewMotor("sc-motor", f.imagesDir)
	motor.SetPosition(-230, 25)
	motor.SetSpeed(0.2)
	motor.SetOscillating(true)
	motor.SetAmplitude(0.1)
	m.AddComponent(motor)

	outer := f.pulley(m, "sc-pulley-mid-outer", 25, -125, 140)

	shaft := motor.ShaftPosition()
	drive := f.pulley(m, "sc-pulley-motor", 10, shaft.X, shaft.Y)
	motor.AddSink(drive)

	// The inner and outer pulleys share a shaft.
	inner := f.pulley(m, "sc-pulley-mid-inner", 10, -125, 140)
	drive.Drive(inner)
	inner.AddSink(outer)

	arm := f.pulley(m, "sc-pulley-arm", 10, -205, 215)
	outer.Drive(arm)

	spoon := machine.NewShape("sc-spoon")
	pivot := arm.Position()
	spoon.SetInitialPosition(pivot.X, pivot.Y)
	spoon.AddPoint(-7, 10)
	spoon.AddPoint(7, 10)
	spoon.AddPoint(7, -60)
	spoon.AddPoint(-7, -60)
	spoon.SetImage(f.image("spoon.png"))
	spoon.SetKinematic()
	spoon.SetInitialRotation(0.5)
	m.AddComponent(spoon)
	arm.AddSink(spoon)
}

func (f *Machine1) pulley(m *machine.Machine, name string, radius, x, y float64) *machine.Pulley {
	p := machine.NewPulley(name, radius)
	p.SetImage(f.image("pulley.png"))
	p.SetPosition(x, y)
	m.AddComponent(p)
	return p
}

func (f *Machine1) dominoStack(m *machine.Machine, at gfx.Point) {
	const h, w = DominoHeight, DominoWidth

	// A tower of three paired layers with a capstone in the middle.
	f.domino(m, at, -h/2+w/2, h/2, 0, Red)
	f.domino(m, at, h/2-w/2, h/2, 0, Green)
	f.domino(m, at, -h/2+w/2, h*1.5, 0, Blue)
	f.domino(m, at, h/2-w/2, h*1.5, 0, Red)
	f.domino(m, at, -h/2+w/2, h*2.5, 0, Green)
	f.domino(m, at, h/2-w/2, h*2.5, 0, Blue)
	f.domino(m, at, h/2-w*2.5, h*3+w/2, 0.25, Black)

	// Two-layer towers either side.
	for _, dx := range []float64{-h * 1.5, h * 1.5} {
		f.domino(m, at, dx-h/2+w/2, h/2, 0, Red)
		f.domino(m, at, dx+h/2-w/2, h/2, 0, Green)
		f.domino(m, at, dx-h/2+w/2, h*1.5, 0, Blue)
		f.domino(m, at, dx+h/2-w/2, h*1.5, 0, Red)
		f.domino(m, at, dx+h/2-w*2.5, h*2+w/2, 0.25, Black)
	}

	// Single-layer towers at the ends.
	for _, dx := range []float64{-h * 3, h * 3} {
		f.domino(m, at, dx-h/2+w/2, h/2, 0, Red)
		f.domino(m, at, dx+h/2-w/2, h/2, 0, Green)
		f.domino(m, at, dx+h/2-w*2.5, h+w/2, 0.25, Black)
	}
}

func (f *Machine1) bowlingPinStack(m *machine.Machine, at gfx.Point) {
	const h, w, ph = DominoHeight, DominoWidth, BowlingPinHeight

	f.bowlingPin(m, at, 0, ph/2)
	f.bowlingPin(m, at, -h, ph/2)
	f.bowlingPin(m, at, h, ph/2)
	f.domino(m, at, -h/2, ph+w/2, 0.25, Red)
	f.domino(m, at, h/2, ph+w/2, 0.25, Green)
	f.bowlingPin(m, at, -h/2, ph*1.5+w)
	f.bowlingPin(m, at, h/2, ph*1.5+w)
	f.domino(m, at, 0, ph*2+w*1.5, 0.25, Blue)
	f.bowlingPin(m, at, 0, ph*2.5+w*2)
}

func (f *Machine1) domino(m *machine.Machine, at gfx.Point, dx, dy, rotation float64, c DominoColor) *machine.Shape {
	f.dominoes++
	d := machine.NewShape(fmt.Sprintf("domino%d", f.dominoes))
	d.Rectangle(-DominoWidth/2, -DominoHeight/2, DominoWidth, DominoHeight)
	d.SetImage(f.image(c.image()))
	d.SetInitialPosition(at.X+dx, at.Y+dy)
	d.SetInitialRotation(rotation)
	d.SetDynamic()
	d.SetPhysics(0.5, 0.5, 0.75)
	m.AddComponent(d)
	return d
}

func (f *Machine1) bowlingPin(m *machine.Machine, at gfx.Point, dx, dy float64) *machine.Shape {
	f.pins++
	p := machine.NewShape(fmt.Sprintf("pin%d", f.pins))
	p.Rectangle(-BowlingPinWidth/2, -BowlingPinHeight/2, BowlingPinWidth, BowlingPinHeight)
	p.SetImage(f.image("pin.png"))
	p.SetInitialPosition(at.X+dx, at.Y+dy)
	p.SetDynamic()
	p.SetPhysics(0.5, 0.5, 1.0)
	m.AddComponent(p)
	return p
}
