package gfx

import "image/color"

type OpKind string

const (
	OpLine    OpKind = "line"
	OpPolygon OpKind = "polygon"
	OpCircle  OpKind = "circle"
	OpImage   OpKind = "image"
)

// Op is one recorded draw call with its points already in device space.
type Op struct {
	Kind   OpKind
	Points []Point
	Radius float64
	Color  color.RGBA
	Image  Image
}

// Recorder is a Surface that keeps every call, for tests and debugging.
type Recorder struct {
	Stack
	Ops []Op
}

func NewRecorder() *Recorder {
	return &Recorder{Stack: NewStack()}
}

func (r *Recorder) StrokeLine(a, b Point, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Points: r.Transform([]Point{a, b}), Color: c})
}

func (r *Recorder) FillPolygon(pts []Point, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpPolygon, Points: r.Transform(pts), Color: c})
}

func (r *Recorder) FillCircle(center Point, radius float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpCircle,
		Points: r.Transform([]Point{center}),
		Radius: radius * r.Current().ScaleFactor(),
		Color:  c,
	})
}

func (r *Recorder) DrawImage(img Image, pts []Point) {
	r.Ops = append(r.Ops, Op{Kind: OpImage, Points: r.Transform(pts), Image: img})
}

// Count returns the number of recorded ops of kind k.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.Stack = NewStack()
}
