package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/machinesim/internal/machine"
)

// Recorder runs a machine from a fresh reset and keeps a snapshot of
// every frame.
type Recorder struct {
	metrics   []Metric
	observers []Observer
}

func NewRecorder() *Recorder {
	return &Recorder{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Recorder) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Recorder) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Record resets m and advances it cfg.Frames frames. On cancellation the
// frames recorded so far are returned with a *SeekError.
func (r *Recorder) Record(ctx context.Context, m *machine.Machine, cfg Config) (*Trace, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	m.SetFrameRate(cfg.FrameRate)
	m.Reset()
	for _, mt := range r.metrics {
		mt.Reset()
	}

	trace := &Trace{
		Machine:   m.Number(),
		FrameRate: cfg.FrameRate,
		Snapshots: make([]machine.Snapshot, 0, cfg.Frames+1),
		Samples:   make(map[string][]float64),
		Metrics:   make(map[string]float64),
	}
	r.sample(m, trace)

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			r.finish(trace)
			return trace, &SeekError{Machine: m.Number(), Frame: m.Frame(), Wrapped: ctx.Err()}
		default:
		}

		m.Update()
		for _, obs := range r.observers {
			obs.OnFrame(m)
		}
		r.sample(m, trace)
	}

	r.finish(trace)
	return trace, nil
}

func (r *Recorder) sample(m *machine.Machine, trace *Trace) {
	for _, mt := range r.metrics {
		mt.Observe(m)
		trace.Samples[mt.Name()] = append(trace.Samples[mt.Name()], mt.Value())
	}
	trace.Snapshots = append(trace.Snapshots, m.Snapshot())
}

func (r *Recorder) finish(trace *Trace) {
	for _, mt := range r.metrics {
		trace.Metrics[mt.Name()] = mt.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w, got %d", ErrFrames, cfg.Frames)
	}
	if cfg.FrameRate <= 0 {
		return fmt.Errorf("%w, got %g", ErrFrameRate, cfg.FrameRate)
	}
	return nil
}
