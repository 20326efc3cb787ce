package physics

import "github.com/ByteArena/box2d"

// ContactHandler receives contacts that involve a registered body.
type ContactHandler interface {
	BeginContact(c box2d.B2ContactInterface)
	PreSolve(c box2d.B2ContactInterface, old box2d.B2Manifold)
}

// HandlerFuncs adapts plain functions to ContactHandler. Nil fields are skipped.
type HandlerFuncs struct {
	Begin func(c box2d.B2ContactInterface)
	Pre   func(c box2d.B2ContactInterface, old box2d.B2Manifold)
}

func (h HandlerFuncs) BeginContact(c box2d.B2ContactInterface) {
	if h.Begin != nil {
		h.Begin(c)
	}
}

func (h HandlerFuncs) PreSolve(c box2d.B2ContactInterface, old box2d.B2Manifold) {
	if h.Pre != nil {
		h.Pre(c, old)
	}
}

// Dispatcher routes engine contact events to the handler registered for
// each participating body. Both bodies are checked independently, so a
// contact between two registered bodies reaches both handlers.
type Dispatcher struct {
	handlers map[*box2d.B2Body]ContactHandler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[*box2d.B2Body]ContactHandler)}
}

// Add registers h for body. A second registration replaces the first.
func (d *Dispatcher) Add(body *box2d.B2Body, h ContactHandler) {
	if body == nil || h == nil {
		return
	}
	d.handlers[body] = h
}

func (d *Dispatcher) Len() int { return len(d.handlers) }

func (d *Dispatcher) lookup(c box2d.B2ContactInterface) (ContactHandler, ContactHandler) {
	var ha, hb ContactHandler
	if fa := c.GetFixtureA(); fa != nil {
		ha = d.handlers[fa.GetBody()]
	}
	if fb := c.GetFixtureB(); fb != nil {
		hb = d.handlers[fb.GetBody()]
	}
	return ha, hb
}

func (d *Dispatcher) BeginContact(c box2d.B2ContactInterface) {
	ha, hb := d.lookup(c)
	if ha != nil {
		ha.BeginContact(c)
	}
	if hb != nil {
		hb.BeginContact(c)
	}
}

func (d *Dispatcher) EndContact(c box2d.B2ContactInterface) {}

func (d *Dispatcher) PreSolve(c box2d.B2ContactInterface, old box2d.B2Manifold) {
	ha, hb := d.lookup(c)
	if ha != nil {
		ha.PreSolve(c, old)
	}
	if hb != nil {
		hb.PreSolve(c, old)
	}
}

func (d *Dispatcher) PostSolve(c box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {}

// Involves reports whether body is one of the two bodies in c.
func Involves(c box2d.B2ContactInterface, body *box2d.B2Body) bool {
	if body == nil {
		return false
	}
	fa, fb := c.GetFixtureA(), c.GetFixtureB()
	return (fa != nil && fa.GetBody() == body) || (fb != nil && fb.GetBody() == body)
}

// Other returns the body in c that is not body, or nil.
func Other(c box2d.B2ContactInterface, body *box2d.B2Body) *box2d.B2Body {
	fa, fb := c.GetFixtureA(), c.GetFixtureB()
	if fa == nil || fb == nil {
		return nil
	}
	switch body {
	case fa.GetBody():
		return fb.GetBody()
	case fb.GetBody():
		return fa.GetBody()
	}
	return nil
}
