package gfx

import "math"

// Matrix is a 2-D affine transform:
//
//	| A C E |
//	| B D F |
type Matrix struct {
	A, B, C, D, E, F float64
}

func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Mul returns m*n, which applies n first.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// ScaleFactor is the geometric mean of the axis scales, used for radii.
func (m Matrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// Stack is the transform state that Surface implementations embed.
type Stack struct {
	cur   Matrix
	saved []Matrix
}

func NewStack() Stack {
	return Stack{cur: Identity()}
}

func (s *Stack) PushState() {
	s.saved = append(s.saved, s.cur)
}

// PopState restores the last pushed transform. An unbalanced pop resets to identity.
func (s *Stack) PopState() {
	if len(s.saved) == 0 {
		s.cur = Identity()
		return
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *Stack) Translate(dx, dy float64) {
	s.cur = s.cur.Mul(Matrix{A: 1, D: 1, E: dx, F: dy})
}

func (s *Stack) Scale(sx, sy float64) {
	s.cur = s.cur.Mul(Matrix{A: sx, D: sy})
}

func (s *Stack) Rotate(radians float64) {
	sin, cos := math.Sincos(radians)
	s.cur = s.cur.Mul(Matrix{A: cos, B: sin, C: -sin, D: cos})
}

func (s *Stack) Current() Matrix { return s.cur }

func (s *Stack) Depth() int { return len(s.saved) }

// Transform maps local points to device space.
func (s *Stack) Transform(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = s.cur.Apply(p)
	}
	return out
}
