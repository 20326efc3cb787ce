package sim

import (
	"context"
	"io"
	"log"

	"github.com/san-kum/machinesim/internal/dynamo"
	"github.com/san-kum/machinesim/internal/factory"
	"github.com/san-kum/machinesim/internal/gfx"
	"github.com/san-kum/machinesim/internal/machine"
)

// System owns every machine built so far and seeks the current one to a
// requested frame. Machines are built lazily and kept, so switching back
// and forth is cheap. A System is not safe for concurrent use.
type System struct {
	registry  *factory.Registry
	machines  map[int]*machine.Machine
	current   int
	frameRate float64
	logger    *log.Logger
}

type Option func(*System)

func WithLogger(l *log.Logger) Option {
	return func(s *System) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithFrameRate(rate float64) Option {
	return func(s *System) { s.frameRate = rate }
}

// NewSystem builds machine 1 straight away so a host can query it.
func NewSystem(registry *factory.Registry, opts ...Option) *System {
	s := &System{
		registry:  registry,
		machines:  make(map[int]*machine.Machine),
		frameRate: machine.DefaultFrameRate,
		logger:    log.New(io.Discard, "machinesim: ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ChooseMachine(1)
	return s
}

func (s *System) machine(number int) *machine.Machine {
	if m, ok := s.machines[number]; ok {
		return m
	}
	m := s.registry.Create(number)
	m.SetFrameRate(s.frameRate)
	m.Reset()
	s.machines[number] = m
	s.logger.Printf("built machine %d with %d components", number, len(m.Components()))
	return m
}

// ChooseMachine makes number current, building it on first use.
func (s *System) ChooseMachine(number int) {
	s.current = number
	s.machine(number)
}

func (s *System) MachineNumber() int { return s.current }

// Machine returns the current machine.
func (s *System) Machine() *machine.Machine { return s.machine(s.current) }

func (s *System) SetLocation(x, y float64) { s.Machine().SetLocation(x, y) }
func (s *System) Location() gfx.Point      { return s.Machine().Location() }

// SetFrame runs the current machine to frame. Seeking backward resets and
// replays from zero, so the result never depends on earlier seeks.
// Negative frames clamp to zero.
func (s *System) SetFrame(frame int) {
	_ = s.Seek(context.Background(), frame)
}

// Seek is SetFrame with cancellation between frames. On cancellation the
// machine is left at the last completed frame and the error is a
// *SeekError.
func (s *System) Seek(ctx context.Context, frame int) error {
	if frame < 0 {
		frame = 0
	}
	m := s.Machine()
	if frame < m.Frame() {
		s.logger.Printf("machine %d: seek back from %d to %d", s.current, m.Frame(), frame)
		m.Reset()
	}
	// Update never advances below this rate.
	if m.FrameRate() < dynamo.Epsilon {
		return nil
	}
	for m.Frame() < frame {
		if err := ctx.Err(); err != nil {
			return &SeekError{Machine: s.current, Frame: m.Frame(), Wrapped: err}
		}
		m.Update()
	}
	return nil
}

func (s *System) Frame() int { return s.Machine().Frame() }

// SetFrameRate applies rate to every machine built so far and to ones
// built later. A machine whose rate changes is reset, since its frames so
// far used the old step.
func (s *System) SetFrameRate(rate float64) {
	s.frameRate = rate
	for n, m := range s.machines {
		if m.FrameRate() == rate {
			continue
		}
		m.SetFrameRate(rate)
		m.Reset()
		s.logger.Printf("machine %d: frame rate %g, reset", n, rate)
	}
}

func (s *System) FrameRate() float64 { return s.frameRate }

// MachineTime is the current machine's simulated time in seconds.
func (s *System) MachineTime() float64 { return s.Machine().Time() }

func (s *System) Draw(surface gfx.Surface) { s.Machine().Draw(surface) }
