package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/machinesim/internal/factory"
	"github.com/san-kum/machinesim/internal/machine"
)

type frameCounter struct{ n float64 }

func (c *frameCounter) Name() string             { return "frames" }
func (c *frameCounter) Observe(*machine.Machine) { c.n++ }
func (c *frameCounter) Value() float64           { return c.n }
func (c *frameCounter) Reset()                   { c.n = 0 }

type observerCount int

func (o *observerCount) OnFrame(*machine.Machine) { *o++ }

func machine2() *machine.Machine {
	return factory.NewRegistry("resources").Create(2)
}

func TestRecord(t *testing.T) {
	rec := NewRecorder()
	counter := &frameCounter{}
	var seen observerCount
	rec.AddMetric(counter)
	rec.AddObserver(&seen)

	trace, err := rec.Record(context.Background(), machine2(), Config{Frames: 30, FrameRate: 30})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	if trace.Len() != 31 {
		t.Errorf("expected 31 snapshots, got %d", trace.Len())
	}
	times := trace.Times()
	if times[0] != 0 || times[30] != 1 {
		t.Errorf("times run %v..%v, want 0..1", times[0], times[30])
	}
	if len(trace.Samples["frames"]) != 31 || trace.Metrics["frames"] != 31 {
		t.Errorf("samples=%d final=%v", len(trace.Samples["frames"]), trace.Metrics["frames"])
	}
	if seen != 30 {
		t.Errorf("observer saw %d frames, want 30", seen)
	}
}

func TestRecordInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero frames", Config{Frames: 0, FrameRate: 30}, ErrFrames},
		{"negative frames", Config{Frames: -1, FrameRate: 30}, ErrFrames},
		{"zero rate", Config{Frames: 10, FrameRate: 0}, ErrFrameRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecorder().Record(context.Background(), machine2(), tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRecordCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trace, err := NewRecorder().Record(ctx, machine2(), Config{Frames: 100, FrameRate: 30})
	var se *SeekError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SeekError, got %v", err)
	}
	if trace == nil || trace.Len() != 1 {
		t.Error("cancelled recording should keep the initial snapshot")
	}
}

func TestTraceSeries(t *testing.T) {
	trace, err := NewRecorder().Record(context.Background(), machine2(), Config{Frames: 10, FrameRate: 30})
	if err != nil {
		t.Fatal(err)
	}

	ys, err := trace.Series("basketball", "y")
	if err != nil {
		t.Fatal(err)
	}
	if len(ys) != 11 || ys[10] >= ys[0] {
		t.Errorf("ball should fall: %v", ys)
	}

	if _, err := trace.Series("basketball", "colour"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	if _, err := trace.Series("anvil", "x"); !errors.Is(err, ErrUnknownComponent) {
		t.Errorf("expected ErrUnknownComponent, got %v", err)
	}
}

func TestEnsembleMatchesSingleRuns(t *testing.T) {
	reg := factory.NewRegistry("resources")
	cfg := Config{Frames: 60, FrameRate: 30}
	numbers := []int{1, 2, 1, 2, 3}

	traces, err := NewEnsemble(reg, nil).Run(context.Background(), numbers, cfg)
	if err != nil {
		t.Fatal(err)
	}

	want := make(map[int]*Trace)
	for _, n := range []int{1, 2, 3} {
		single, err := NewRecorder().Record(context.Background(), reg.Create(n), cfg)
		if err != nil {
			t.Fatal(err)
		}
		want[n] = single
	}

	for i, n := range numbers {
		if traces[i].Machine != n {
			t.Errorf("trace %d is machine %d, want %d", i, traces[i].Machine, n)
			continue
		}
		if diff := cmp.Diff(want[n].Snapshots, traces[i].Snapshots); diff != "" {
			t.Errorf("ensemble run %d (machine %d) differs from a single run (-want +got):\n%s", i, n, diff)
		}
	}
}
