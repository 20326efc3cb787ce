package factory

import (
	"path/filepath"

	"github.com/san-kum/machinesim/internal/machine"
)

// Machine2 rolls a ball down a ramp onto an idle motor that spins a
// kinematic paddle through a pulley pair.
type Machine2 struct {
	imagesDir string
}

func NewMachine2(imagesDir string) *Machine2 {
	return &Machine2{imagesDir: imagesDir}
}

func (f *Machine2) image(name string) string {
	return filepath.Join(f.imagesDir, name)
}

func (f *Machine2) Create(number int) *machine.Machine {
	m := machine.New(number)

	floor := machine.NewShape("floor")
	floor.Rectangle(-FloorWidth/2, -FloorHeight, FloorWidth, FloorHeight)
	floor.SetImage(f.image("floor.png"))
	floor.SetInitialPosition(0, -40)
	m.AddComponent(floor)

	ball := machine.NewShape("basketball")
	ball.Circle(16)
	ball.SetImage(f.image("basketball.png"))
	ball.SetInitialPosition(-150, 250)
	ball.SetDynamic()
	ball.SetPhysics(1, 0.5, 0.5)
	m.AddComponent(ball)

	ramp := machine.NewShape("ramp")
	ramp.AddPoint(-50, 0)
	ramp.AddPoint(50, 0)
	ramp.AddPoint(50, 5)
	ramp.AddPoint(-50, 40)
	ramp.SetImage(f.image("wedge.png"))
	ramp.SetInitialPosition(-100, 150)
	m.AddComponent(ramp)

	motor := machine.NewMotor("motor", f.imagesDir)
	motor.SetPosition(50, 100)
	motor.SetSpeed(0.5)
	m.AddComponent(motor)

	shaft := motor.ShaftPosition()
	p1 := machine.NewPulley("pulley1", 10)
	p1.SetImage(f.image("pulley.png"))
	p1.SetPosition(shaft.X, shaft.Y)
	m.AddComponent(p1)
	motor.AddSink(p1)

	p2 := machine.NewPulley("pulley2", 15)
	p2.SetImage(f.image("pulley2.png"))
	p2.SetPosition(150, 150)
	m.AddComponent(p2)
	p1.Drive(p2)

	spinner := machine.NewShape("spinner")
	spinner.Rectangle(-10, -40, 20, 80)
	spinner.SetImage(f.image("spoon.png"))
	spinner.SetInitialPosition(150, 200)
	spinner.SetKinematic()
	m.AddComponent(spinner)
	p2.AddSink(spinner)

	platform := machine.NewShape("platform")
	platform.Rectangle(-100, -FloorHeight/2, 200, FloorHeight)
	platform.SetImage(f.image("floor.png"))
	platform.SetInitialPosition(-150, 50)
	m.AddComponent(platform)

	return m
}
