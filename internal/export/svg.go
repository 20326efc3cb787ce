package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strings"

	"github.com/san-kum/machinesim/internal/gfx"
)

// SVG is a Surface that builds an SVG document. Images become <image>
// elements stretched over their destination box, or outlined
// placeholders when image embedding is off.
type SVG struct {
	gfx.Stack

	width, height int
	background    string
	images        bool
	body          strings.Builder
}

func NewSVG(width, height int) *SVG {
	return &SVG{
		Stack:      gfx.NewStack(),
		width:      width,
		height:     height,
		background: "#ffffff",
		images:     true,
	}
}

func (s *SVG) SetBackground(fill string) { s.background = fill }
func (s *SVG) SetImages(on bool)         { s.images = on }

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(c color.RGBA) string {
	if c.A == 255 {
		return ""
	}
	return fmt.Sprintf(` opacity="%.3f"`, float64(c.A)/255)
}

func points(pts []gfx.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func (s *SVG) StrokeLine(a, b gfx.Point, c color.RGBA) {
	pts := s.Transform([]gfx.Point{a, b})
	fmt.Fprintf(&s.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s"%s/>`+"\n",
		pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, hex(c), opacity(c))
}

func (s *SVG) FillPolygon(pts []gfx.Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	fmt.Fprintf(&s.body, `<polygon points="%s" fill="%s"%s/>`+"\n",
		points(s.Transform(pts)), hex(c), opacity(c))
}

func (s *SVG) FillCircle(center gfx.Point, radius float64, c color.RGBA) {
	p := s.Current().Apply(center)
	r := radius * s.Current().ScaleFactor()
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"%s/>`+"\n",
		p.X, p.Y, r, hex(c), opacity(c))
}

// DrawImage maps the image's top edge to the top of the local bounding
// box of pts, since machine space has y pointing up.
func (s *SVG) DrawImage(img gfx.Image, pts []gfx.Point) {
	if len(pts) == 0 {
		return
	}
	if !s.images {
		fmt.Fprintf(&s.body, `<polygon points="%s" fill="none" stroke="%s" data-href="%s"/>`+"\n",
			points(s.Transform(pts)), hex(gfx.Gray), img.Path)
		return
	}

	lo, hi := bounds(pts)
	flip := gfx.Matrix{A: 1, D: -1, F: lo.Y + hi.Y}
	if img.MirrorX {
		flip.A = -1
		flip.E = lo.X + hi.X
	}
	m := s.Current().Mul(flip)
	fmt.Fprintf(&s.body,
		`<image href="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="none" transform="matrix(%.4f %.4f %.4f %.4f %.2f %.2f)"/>`+"\n",
		img.Path, lo.X, lo.Y, hi.X-lo.X, hi.Y-lo.Y, m.A, m.B, m.C, m.D, m.E, m.F)
}

func bounds(pts []gfx.Point) (lo, hi gfx.Point) {
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.width, s.height, s.width, s.height, s.background)
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func (s *SVG) Save(path string) error {
	return os.WriteFile(path, []byte(s.String()), 0644)
}

// TrajectoryToSVG plots a path, scaled to fill the image with a 10%
// margin.
func TrajectoryToSVG(pts []gfx.Point, width, height int, strokeColor string) string {
	if len(pts) < 2 {
		return ""
	}

	lo, hi := bounds(pts)

	rangeX := hi.X - lo.X
	rangeY := hi.Y - lo.Y
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX := lo.X - rangeX*0.1
	minY := lo.Y - rangeY*0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range pts {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
