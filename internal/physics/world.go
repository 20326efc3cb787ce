package physics

import (
	"sync"

	"github.com/ByteArena/box2d"
)

// engineMu serialises the box2d calls that touch package-level engine
// state: the lazily built contact registry and the distance and
// time-of-impact counters. Worlds in different goroutines share it.
var engineMu sync.Mutex

// World is one generation of the engine world and its dispatcher.
// A machine reset destroys it and creates the next generation.
type World struct {
	b2         *box2d.B2World
	dispatcher *Dispatcher
	generation int
	destroyed  bool
}

// NewWorld creates generation gen with downward gravity and the dispatcher
// installed as the contact listener.
func NewWorld(gen int) *World {
	engineMu.Lock()
	defer engineMu.Unlock()

	w := box2d.MakeB2World(box2d.MakeB2Vec2(0, Gravity))
	world := &World{
		b2:         &w,
		dispatcher: NewDispatcher(),
		generation: gen,
	}
	world.b2.SetContactListener(world.dispatcher)
	return world
}

func (w *World) Engine() *box2d.B2World { return w.b2 }

func (w *World) Dispatcher() *Dispatcher { return w.dispatcher }

func (w *World) Generation() int { return w.generation }

func (w *World) Locked() bool { return w.b2.IsLocked() }

// Step advances the world by dt seconds with fixed solver iterations.
// It is a no-op for a non-positive dt or a destroyed world.
func (w *World) Step(dt float64) {
	if w.destroyed || dt <= 0 {
		return
	}
	engineMu.Lock()
	defer engineMu.Unlock()
	w.b2.Step(dt, VelocityIterations, PositionIterations)
}

// Destroy releases the fixtures. The world must not be stepped afterwards.
func (w *World) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	engineMu.Lock()
	defer engineMu.Unlock()
	w.b2.Destroy()
}

func (w *World) Destroyed() bool { return w.destroyed }

func (w *World) BodyCount() int { return w.b2.GetBodyCount() }
