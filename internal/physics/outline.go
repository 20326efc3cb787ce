package physics

import (
	"image/color"
	"math"

	"github.com/san-kum/machinesim/internal/gfx"
)

// circleSteps is the vertex count used to draw circles.
const circleSteps = 32

// Outline is a body's local geometry in centimetres plus how to paint it.
// A positive radius makes it a circle and the vertex list is ignored.
type Outline struct {
	points []gfx.Point
	radius float64
	color  color.RGBA
	image  gfx.Image
}

func (o *Outline) AddPoint(x, y float64) {
	o.points = append(o.points, gfx.Pt(x, y))
}

// Rectangle adds the four corners of a w*h box with its lower-left corner at (x, y).
func (o *Outline) Rectangle(x, y, w, h float64) {
	o.AddPoint(x, y)
	o.AddPoint(x+w, y)
	o.AddPoint(x+w, y+h)
	o.AddPoint(x, y+h)
}

// BottomCenteredRectangle is a w*h box whose bottom edge is centred on the origin.
func (o *Outline) BottomCenteredRectangle(w, h float64) {
	o.Rectangle(-w/2, 0, w, h)
}

func (o *Outline) CenteredSquare(size float64) {
	o.Rectangle(-size/2, -size/2, size, size)
}

func (o *Outline) Circle(radius float64) {
	o.radius = radius
	o.points = o.points[:0]
	for i := 0; i < circleSteps; i++ {
		a := 2 * math.Pi * float64(i) / circleSteps
		o.AddPoint(radius*math.Cos(a), radius*math.Sin(a))
	}
}

func (o *Outline) IsCircle() bool  { return o.radius > 0 }
func (o *Outline) Radius() float64 { return o.radius }

func (o *Outline) Points() []gfx.Point {
	out := make([]gfx.Point, len(o.points))
	copy(out, o.points)
	return out
}

func (o *Outline) Empty() bool { return !o.IsCircle() && len(o.points) == 0 }

func (o *Outline) SetColor(c color.RGBA) { o.color = c }
func (o *Outline) SetImage(path string)  { o.image = gfx.Image{Path: path} }
func (o *Outline) Image() gfx.Image      { return o.image }
func (o *Outline) Color() color.RGBA     { return o.color }

// BoundingBox returns the min corner and the size of the vertex set.
func (o *Outline) BoundingBox() (min, size gfx.Point) {
	if len(o.points) == 0 {
		return gfx.Point{}, gfx.Point{}
	}
	lo, hi := o.points[0], o.points[0]
	for _, p := range o.points[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, gfx.Pt(hi.X-lo.X, hi.Y-lo.Y)
}

// fixturePoints shrinks the outline toward its bounding-box centre so
// neighbouring bodies rest flush instead of overlapping by the engine skin.
func (o *Outline) fixturePoints() []gfx.Point {
	lo, size := o.BoundingBox()
	half := gfx.Pt(size.X/2, size.Y/2)
	centre := gfx.Pt(lo.X+half.X, lo.Y+half.Y)
	sx, sy := 1.0, 1.0
	if half.X > polygonInset {
		sx = (half.X - polygonInset) / half.X
	}
	if half.Y > polygonInset {
		sy = (half.Y - polygonInset) / half.Y
	}
	out := make([]gfx.Point, len(o.points))
	for i, p := range o.points {
		out[i] = gfx.Pt((p.X-centre.X)*sx+centre.X, (p.Y-centre.Y)*sy+centre.Y)
	}
	return out
}

// Draw paints the outline at position (cm) and rotation (turns) in the
// surface's current frame. Nothing is drawn for an empty outline.
func (o *Outline) Draw(s gfx.Surface, position gfx.Point, rotation float64) {
	if o.Empty() {
		return
	}
	s.PushState()
	defer s.PopState()
	s.Translate(position.X, position.Y)
	s.Rotate(TurnsToRadians(rotation))

	if o.image.Path != "" {
		s.DrawImage(o.image, o.points)
		return
	}
	if o.IsCircle() {
		s.FillCircle(gfx.Point{}, o.radius, o.color)
		return
	}
	s.FillPolygon(o.points, o.color)
}
