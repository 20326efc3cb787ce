package physics

import (
	"sync"
	"testing"
)

// landing drops a ball onto a floor, then resets and drops it again, and
// reports where it ends up.
func landing(frames int) float64 {
	var y float64
	for gen := 1; gen <= 2; gen++ {
		w := NewWorld(gen)

		floor := NewShape()
		floor.Rectangle(-200, -10, 400, 10)
		floor.Install(w)

		ball := NewShape()
		ball.Circle(10)
		ball.SetDynamic()
		ball.SetInitialPosition(0, 80)
		ball.Install(w)

		for i := 0; i < frames; i++ {
			w.Step(1.0 / 30)
		}
		y = ball.Position().Y
		w.Destroy()
	}
	return y
}

func TestWorldsStepConcurrently(t *testing.T) {
	want := landing(90)

	const runs = 8
	got := make([]float64, runs)

	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			got[idx] = landing(90)
		}(i)
	}
	wg.Wait()

	for i, y := range got {
		if y != want {
			t.Errorf("run %d landed at y=%v, want %v", i, y, want)
		}
	}
	if want >= 80 || want < 0 {
		t.Errorf("ball should fall onto the floor, y=%v", want)
	}
}

func TestWorldStepAfterDestroyIsNoop(t *testing.T) {
	w := NewWorld(1)
	w.Destroy()
	w.Destroy()
	w.Step(1.0 / 30)
	if !w.Destroyed() {
		t.Error("world should report destroyed")
	}
}
