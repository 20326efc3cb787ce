package viz

import (
	"math"

	"github.com/san-kum/machinesim/internal/gfx"
)

// Drawer is anything that draws itself on a surface, such as a machine or
// a sim.System.
type Drawer interface {
	Draw(s gfx.Surface)
}

// View frames a region of machine space. OriginX and OriginY place the
// machine origin as fractions of the canvas; Width and Height are the
// centimetres that must fit.
type View struct {
	OriginX, OriginY float64
	Width, Height    float64
}

// DefaultView fits both built-in machines with the floor near the bottom.
var DefaultView = View{OriginX: 0.55, OriginY: 0.92, Width: 1000, Height: 700}

// Scale is the sub-pixels per centimetre that fit v on c.
func (v View) Scale(c *Canvas) float64 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return math.Min(float64(c.SubWidth())/v.Width, float64(c.SubHeight())/v.Height)
}

// Render clears c and draws d framed by v. The drawer flips y itself.
func Render(c *Canvas, d Drawer, v View) {
	c.Clear()
	c.PushState()
	defer c.PopState()

	k := v.Scale(c)
	c.Translate(v.OriginX*float64(c.SubWidth()), v.OriginY*float64(c.SubHeight()))
	c.Scale(k, k)
	d.Draw(c)
}
