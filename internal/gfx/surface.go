// Package gfx defines the drawing boundary between a machine and whatever
// renders it: SVG files, the braille terminal canvas, or a test recorder.
//
// Coordinates are centimetres in the machine's own space. Surfaces keep an
// affine transform stack so components can draw in local coordinates.
package gfx

import "image/color"

type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Image names a bitmap by path. Surfaces without bitmap support draw the
// destination polygon instead.
type Image struct {
	Path    string
	MirrorX bool
}

// Surface is the set of drawing calls a machine makes.
type Surface interface {
	PushState()
	PopState()
	Translate(dx, dy float64)
	Scale(sx, sy float64)
	Rotate(radians float64)

	StrokeLine(a, b Point, c color.RGBA)
	FillPolygon(pts []Point, c color.RGBA)
	FillCircle(center Point, radius float64, c color.RGBA)
	// DrawImage stretches img over the polygon pts, given in local space.
	DrawImage(img Image, pts []Point)
}

var (
	Black     = color.RGBA{0, 0, 0, 255}
	BeltColor = color.RGBA{40, 40, 40, 255}
	Gray      = color.RGBA{128, 128, 128, 255}
)
