package physics

import "errors"

var (
	// ErrInstalled indicates a body already exists for this generation, or a
	// setter that shapes the body was called after installation.
	ErrInstalled = errors.New("physics: shape already installed")

	// ErrEmptyOutline indicates an outline with too few vertices for a fixture.
	ErrEmptyOutline = errors.New("physics: outline needs a radius or at least 3 vertices")

	// ErrTooManyVertices indicates an outline the engine cannot represent.
	ErrTooManyVertices = errors.New("physics: outline exceeds the engine vertex limit")

	// ErrWorldLocked indicates a body was created or moved during a step.
	ErrWorldLocked = errors.New("physics: world is locked during step")
)
