package machine

// ComponentState is the observable state of one component at a frame.
// Positions are centimetres, rotation and phase are turns, speed is
// turns/second and velocities are metres/second.
type ComponentState struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	Phase    float64 `json:"phase"`
	Speed    float64 `json:"speed"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Active   bool    `json:"active,omitempty"`
}

// Snapshot is the state of every component at one frame.
type Snapshot struct {
	Machine    int              `json:"machine"`
	Frame      int              `json:"frame"`
	Time       float64          `json:"time"`
	Components []ComponentState `json:"components"`
}

// Find returns the state of the named component.
func (s Snapshot) Find(name string) (ComponentState, bool) {
	for _, c := range s.Components {
		if c.Name == name {
			return c, true
		}
	}
	return ComponentState{}, false
}
