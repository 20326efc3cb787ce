package sim

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/san-kum/machinesim/internal/factory"
)

func newTestSystem(opts ...Option) *System {
	s := NewSystem(factory.NewRegistry("resources"), opts...)
	s.ChooseMachine(2)
	return s
}

func TestSeekOrderIndependence(t *testing.T) {
	direct := newTestSystem()
	direct.SetFrame(40)

	tests := []struct {
		name  string
		seeks []int
	}{
		{"forward in steps", []int{10, 25, 40}},
		{"overshoot and back", []int{70, 40}},
		{"zigzag", []int{70, 10, 55, 40}},
		{"same frame twice", []int{40, 40}},
	}

	want := direct.Machine().Snapshot()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSystem()
			for _, f := range tt.seeks {
				s.SetFrame(f)
			}
			if diff := cmp.Diff(want, s.Machine().Snapshot(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("snapshot differs from a direct seek (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetFrameClampsNegative(t *testing.T) {
	s := newTestSystem()
	s.SetFrame(20)
	s.SetFrame(-5)
	if s.Frame() != 0 {
		t.Errorf("frame = %d, want 0", s.Frame())
	}
}

func TestMachineTime(t *testing.T) {
	s := newTestSystem()
	s.SetFrame(45)
	if s.MachineTime() != 1.5 {
		t.Errorf("time = %v, want 1.5", s.MachineTime())
	}
}

func TestSetFrameRateResetsChangedMachines(t *testing.T) {
	s := newTestSystem()
	s.SetFrame(30)

	s.SetFrameRate(30)
	if s.Frame() != 30 {
		t.Errorf("same rate should not reset, frame = %d", s.Frame())
	}

	s.SetFrameRate(60)
	if s.Frame() != 0 {
		t.Errorf("changed rate should reset, frame = %d", s.Frame())
	}
	s.ChooseMachine(1)
	if s.Machine().FrameRate() != 60 {
		t.Errorf("machine 1 rate = %v, want 60", s.Machine().FrameRate())
	}

	s.ChooseMachine(4)
	if s.Machine().FrameRate() != 60 {
		t.Error("machines built later should pick up the rate")
	}
}

func TestZeroFrameRateDoesNotAdvance(t *testing.T) {
	s := newTestSystem()
	s.SetFrameRate(0)
	s.SetFrame(10)
	if s.Frame() != 0 || s.MachineTime() != 0 {
		t.Errorf("frame=%d time=%v, want 0 and 0", s.Frame(), s.MachineTime())
	}
}

func TestTinyFrameRateSeekReturns(t *testing.T) {
	for _, rate := range []float64{1e-12, -1} {
		s := newTestSystem()
		s.SetFrameRate(rate)

		done := make(chan struct{})
		go func() {
			s.SetFrame(3)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(3 * time.Second):
			t.Fatalf("SetFrame(3) at rate %g did not return", rate)
		}
		if s.Frame() != 0 {
			t.Errorf("rate %g: frame=%d, want 0", rate, s.Frame())
		}
	}
}

func TestChooseMachineKeepsState(t *testing.T) {
	s := newTestSystem()
	s.SetFrame(12)
	s.ChooseMachine(1)
	if s.MachineNumber() != 1 || s.Frame() != 0 {
		t.Errorf("machine %d at frame %d", s.MachineNumber(), s.Frame())
	}
	s.ChooseMachine(2)
	if s.Frame() != 12 {
		t.Errorf("machine 2 should still be at 12, got %d", s.Frame())
	}
}

func TestUnknownMachineIsEmpty(t *testing.T) {
	s := newTestSystem()
	s.ChooseMachine(9)
	s.SetFrame(10)
	if len(s.Machine().Components()) != 0 || s.Frame() != 10 {
		t.Errorf("unexpected machine 9 state: %d components at frame %d",
			len(s.Machine().Components()), s.Frame())
	}
}

func TestSeekCancelled(t *testing.T) {
	s := newTestSystem()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Seek(ctx, 100)
	var se *SeekError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SeekError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("seek error should wrap the context error")
	}
	if se.Machine != 2 || se.Frame != 0 {
		t.Errorf("unexpected error context %+v", se)
	}
}

func TestLocation(t *testing.T) {
	s := newTestSystem()
	s.SetLocation(120, 480)
	if p := s.Location(); p.X != 120 || p.Y != 480 {
		t.Errorf("location = %v", p)
	}
}

func TestSystemLogsBackwardSeek(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSystem(WithLogger(log.New(&buf, "", 0)))
	s.SetFrame(10)
	s.SetFrame(5)

	if !strings.Contains(buf.String(), "seek back from 10 to 5") {
		t.Errorf("log missing backward seek:\n%s", buf.String())
	}
}
