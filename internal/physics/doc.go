// Package physics wraps the box2d rigid-body engine for machine components.
//
// Machine code works in centimetres and turns. This package converts to the
// engine's metres and radians ([MtoCM]), owns the per-generation world
// ([World]), creates one body per component outline ([Shape]) and routes
// contact callbacks to the component that owns each body ([Dispatcher]).
//
// Contact callbacks run inside [World.Step] while the engine is locked.
// Handlers may set flags or contact tangent speeds but must not move,
// create or destroy bodies.
package physics
