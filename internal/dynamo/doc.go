// Package dynamo provides the rotation-propagation primitives shared by every
// machine component.
//
// Power flows through a directed, acyclic graph of rotation sources and sinks:
//
//   - [Source]: owns a phase (turns) and speed (turns/second) and broadcasts
//     every change to its registered sinks in registration order
//   - [Sink]: receives phase-only updates ([Sink.SetPhase]) or full rotation
//     updates ([Sink.Rotate]) and remembers its single upstream source
//   - [Wrap]: reduces a phase to the half-open interval [0, 1)
//
// # Example
//
//	motorOut := dynamo.NewSource()
//	motorOut.AddSink(pulley)
//	motorOut.SetRotation(dynamo.Wrap(phase+speed*dt), speed)
//
// # Thread Safety
//
// Sources are NOT thread-safe. A machine and everything it owns is driven
// from a single goroutine.
package dynamo
