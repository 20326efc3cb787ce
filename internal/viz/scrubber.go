package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/machinesim/internal/machine"
	"github.com/san-kum/machinesim/internal/metrics"
	"github.com/san-kum/machinesim/internal/sim"
)

const (
	jumpFrames    = 10
	sparkWidth    = 40
	minCanvasCols = 20
	minCanvasRows = 8
)

type TickMsg time.Time

// Scrubber is a bubbletea model that seeks a machine system frame by frame
// and draws it on a braille canvas.
type Scrubber struct {
	system   *sim.System
	machines []int
	canvas   *Canvas
	view     View
	playing  bool
	theme    int
	styles   Styles
	energy   []float64
	horizon  int
	width    int
	height   int
}

// NewScrubber shows the system's current machine. Tab cycles through
// machines.
func NewScrubber(system *sim.System, machines []int) *Scrubber {
	s := &Scrubber{
		system:   system,
		machines: machines,
		canvas:   NewCanvas(100, 30),
		view:     DefaultView,
		styles:   NewStyles(Themes[0]),
		width:    104,
		height:   40,
	}
	system.SetLocation(0, 0)
	s.sample()
	return s
}

func (s *Scrubber) Frame() int    { return s.system.Frame() }
func (s *Scrubber) Playing() bool { return s.playing }
func (s *Scrubber) Theme() Theme  { return Themes[s.theme] }

// SetTheme selects a theme by name. Unknown names select the first theme.
func (s *Scrubber) SetTheme(name string) {
	want := GetTheme(name)
	for i, t := range Themes {
		if t.Name == want.Name {
			s.theme = i
		}
	}
	s.styles = NewStyles(Themes[s.theme])
}

// SetHorizon sets the frame count the progress bar measures against. Zero
// hides the bar.
func (s *Scrubber) SetHorizon(frames int) { s.horizon = frames }

func (s *Scrubber) tick() tea.Cmd {
	rate := s.system.FrameRate()
	if rate <= 0 {
		rate = machine.DefaultFrameRate
	}
	return tea.Tick(time.Duration(float64(time.Second)/rate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (s *Scrubber) Init() tea.Cmd { return nil }

func (s *Scrubber) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)
	case tea.WindowSizeMsg:
		s.resize(msg.Width, msg.Height)
	case TickMsg:
		if !s.playing {
			return s, nil
		}
		s.seek(s.Frame() + 1)
		return s, s.tick()
	}
	return s, nil
}

func (s *Scrubber) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return s, tea.Quit
	case "right", "l":
		s.seek(s.Frame() + 1)
	case "left", "h":
		s.seek(s.Frame() - 1)
	case "]":
		s.seek(s.Frame() + jumpFrames)
	case "[":
		s.seek(s.Frame() - jumpFrames)
	case "r":
		s.playing = false
		s.seek(0)
	case " ", "space":
		s.playing = !s.playing
		if s.playing {
			return s, s.tick()
		}
	case "tab":
		s.nextMachine()
	case "t":
		s.theme = (s.theme + 1) % len(Themes)
		s.styles = NewStyles(Themes[s.theme])
	}
	return s, nil
}

func (s *Scrubber) resize(w, h int) {
	s.width, s.height = w, h
	cols := max(w-4, minCanvasCols)
	rows := max(h-10, minCanvasRows)
	s.canvas = NewCanvas(cols, rows)
}

// seek moves to frame and keeps the energy history aligned with it.
func (s *Scrubber) seek(frame int) {
	s.system.SetFrame(frame)
	s.sample()
}

func (s *Scrubber) sample() {
	f := s.Frame()
	if f < len(s.energy) {
		s.energy = s.energy[:f]
	}
	e := 0.0
	if w := s.system.Machine().World(); w != nil {
		e = metrics.Kinetic(w.Engine())
	}
	for len(s.energy) <= f {
		s.energy = append(s.energy, e)
	}
}

func (s *Scrubber) nextMachine() {
	if len(s.machines) == 0 {
		return
	}
	next := s.machines[0]
	for i, n := range s.machines {
		if n == s.system.MachineNumber() {
			next = s.machines[(i+1)%len(s.machines)]
			break
		}
	}
	s.system.ChooseMachine(next)
	s.system.SetLocation(0, 0)
	s.energy = s.energy[:0]
	s.sample()
}

func (s *Scrubber) status() string {
	m := s.system.Machine()
	active := 0
	for _, c := range m.Components() {
		if motor, ok := c.(*machine.Motor); ok && motor.Active() {
			active++
		}
	}

	state := StatusPaused.Render("paused")
	if s.playing {
		state = StatusRunning.Render("playing")
	}
	motors := s.styles.Idle.Render("idle")
	if active > 0 {
		motors = s.styles.Active.Render(fmt.Sprintf("%d running", active))
	}

	return fmt.Sprintf("%s %s  %s %s  %s %s  %s %s  %s",
		s.styles.Label.Render("frame"), s.styles.Value.Render(fmt.Sprintf("%d", s.Frame())),
		s.styles.Label.Render("time"), s.styles.Value.Render(fmt.Sprintf("%.2fs", s.system.MachineTime())),
		s.styles.Label.Render("motors"), motors,
		s.styles.Label.Render("energy"), MetricValue.Render(fmt.Sprintf("%.3fJ", s.energy[len(s.energy)-1])),
		state)
}

func (s *Scrubber) View() string {
	Render(s.canvas, s.system, s.view)

	var b strings.Builder
	title := fmt.Sprintf("machine %d", s.system.MachineNumber())
	b.WriteString(s.styles.Title.Render(title) + "  " + Subtle.Render(s.Theme().Name) + "\n")
	b.WriteString(s.styles.Frame.Render(strings.TrimRight(s.canvas.String(), "\n")) + "\n")
	b.WriteString(s.status() + "\n")
	b.WriteString(SparklineChart(s.energy, sparkWidth) + "\n")
	if s.horizon > 0 {
		done := float64(s.Frame()) / float64(s.horizon)
		b.WriteString(ProgressBar(done, sparkWidth) + " " +
			MetricLabel.Render(fmt.Sprintf("%d/%d", s.Frame(), s.horizon)) + "\n")
	}
	b.WriteString(Separator(max(s.width-4, 8)) + "\n")
	b.WriteString(KeyHint.Render("←/→ frame  [/] ±10  space play  r reset  tab machine  t theme  q quit"))
	return b.String()
}
