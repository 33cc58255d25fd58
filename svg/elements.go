package svg

import (
	"fmt"

	"github.com/felipemfpeixoto/drawmatch"
)

// kappa places the control points of a cubic Bézier approximating a quarter
// of a unit circle.
const kappa = 0.5522847498307936

// Circle is an SVG circle element
type Circle struct {
	ID        string `xml:"id,attr"`
	Transform string `xml:"transform,attr"`
	Style     string `xml:"style,attr"`
	Display   string `xml:"display,attr"`
	Cx        string `xml:"cx,attr"`
	Cy        string `xml:"cy,attr"`
	Radius    string `xml:"r,attr"`
}

// Strokes implements the Element interface.
func (c *Circle) Strokes(parent drawmatch.Affine) drawmatch.Drawing {
	if c.Display == "none" || hiddenStyle(c.Style) {
		return nil
	}
	v, err := parseLengths(c.Cx, c.Cy, c.Radius)
	if err != nil {
		drawmatch.Logger().Warn("skipping circle", "id", c.ID, "err", err)
		return nil
	}
	return ellipseStrokes(v[0], v[1], v[2], v[2], elementTransform(c.ID, c.Transform).Then(parent))
}

// Ellipse is an SVG ellipse element
type Ellipse struct {
	ID        string `xml:"id,attr"`
	Transform string `xml:"transform,attr"`
	Style     string `xml:"style,attr"`
	Display   string `xml:"display,attr"`
	Cx        string `xml:"cx,attr"`
	Cy        string `xml:"cy,attr"`
	Rx        string `xml:"rx,attr"`
	Ry        string `xml:"ry,attr"`
}

// Strokes implements the Element interface.
func (e *Ellipse) Strokes(parent drawmatch.Affine) drawmatch.Drawing {
	if e.Display == "none" || hiddenStyle(e.Style) {
		return nil
	}
	v, err := parseLengths(e.Cx, e.Cy, e.Rx, e.Ry)
	if err != nil {
		drawmatch.Logger().Warn("skipping ellipse", "id", e.ID, "err", err)
		return nil
	}
	return ellipseStrokes(v[0], v[1], v[2], v[3], elementTransform(e.ID, e.Transform).Then(parent))
}

// ellipseStrokes builds an axis-aligned ellipse from four cubic arcs,
// starting at its rightmost point and running clockwise in a y-down
// coordinate system.
func ellipseStrokes(cx, cy, rx, ry float64, aff drawmatch.Affine) drawmatch.Drawing {
	if rx <= 0 || ry <= 0 {
		return nil
	}
	kx, ky := kappa*rx, kappa*ry
	pt := drawmatch.Pt
	p := drawmatch.Path{
		drawmatch.MoveTo(pt(cx+rx, cy)),
		drawmatch.CubicTo(pt(cx+rx, cy+ky), pt(cx+kx, cy+ry), pt(cx, cy+ry)),
		drawmatch.CubicTo(pt(cx-kx, cy+ry), pt(cx-rx, cy+ky), pt(cx-rx, cy)),
		drawmatch.CubicTo(pt(cx-rx, cy-ky), pt(cx-kx, cy-ry), pt(cx, cy-ry)),
		drawmatch.CubicTo(pt(cx+kx, cy-ry), pt(cx+rx, cy-ky), pt(cx+rx, cy)),
		drawmatch.Close(),
	}
	return strokes([]drawmatch.Path{p}, aff)
}

// Rect is an SVG rect element. Rounded corners are drawn square.
type Rect struct {
	ID        string `xml:"id,attr"`
	Transform string `xml:"transform,attr"`
	Style     string `xml:"style,attr"`
	Display   string `xml:"display,attr"`
	X         string `xml:"x,attr"`
	Y         string `xml:"y,attr"`
	Width     string `xml:"width,attr"`
	Height    string `xml:"height,attr"`
}

// Strokes implements the Element interface.
func (r *Rect) Strokes(parent drawmatch.Affine) drawmatch.Drawing {
	if r.Display == "none" || hiddenStyle(r.Style) {
		return nil
	}
	v, err := parseLengths(r.X, r.Y, r.Width, r.Height)
	if err != nil {
		drawmatch.Logger().Warn("skipping rect", "id", r.ID, "err", err)
		return nil
	}
	x, y, w, h := v[0], v[1], v[2], v[3]
	if w <= 0 || h <= 0 {
		return nil
	}
	p := polygon([]drawmatch.Point{
		drawmatch.Pt(x, y),
		drawmatch.Pt(x+w, y),
		drawmatch.Pt(x+w, y+h),
		drawmatch.Pt(x, y+h),
	}, true)
	return strokes([]drawmatch.Path{p}, elementTransform(r.ID, r.Transform).Then(parent))
}

// Line is an SVG line element
type Line struct {
	ID        string `xml:"id,attr"`
	Transform string `xml:"transform,attr"`
	Style     string `xml:"style,attr"`
	Display   string `xml:"display,attr"`
	X1        string `xml:"x1,attr"`
	Y1        string `xml:"y1,attr"`
	X2        string `xml:"x2,attr"`
	Y2        string `xml:"y2,attr"`
}

// Strokes implements the Element interface.
func (l *Line) Strokes(parent drawmatch.Affine) drawmatch.Drawing {
	if l.Display == "none" || hiddenStyle(l.Style) {
		return nil
	}
	v, err := parseLengths(l.X1, l.Y1, l.X2, l.Y2)
	if err != nil {
		drawmatch.Logger().Warn("skipping line", "id", l.ID, "err", err)
		return nil
	}
	p := polygon([]drawmatch.Point{drawmatch.Pt(v[0], v[1]), drawmatch.Pt(v[2], v[3])}, false)
	return strokes([]drawmatch.Path{p}, elementTransform(l.ID, l.Transform).Then(parent))
}

// PolyLine is an SVG polyline element, or a polygon if closed is set.
type PolyLine struct {
	ID        string `xml:"id,attr"`
	Transform string `xml:"transform,attr"`
	Style     string `xml:"style,attr"`
	Display   string `xml:"display,attr"`
	Points    string `xml:"points,attr"`

	closed bool
}

// Strokes implements the Element interface.
func (pl *PolyLine) Strokes(parent drawmatch.Affine) drawmatch.Drawing {
	if pl.Display == "none" || hiddenStyle(pl.Style) {
		return nil
	}
	nums, err := parseNumberList(pl.Points)
	if err == nil && len(nums)%2 != 0 {
		err = fmt.Errorf("odd number of coordinates: %d", len(nums))
	}
	if err != nil {
		drawmatch.Logger().Warn("skipping polyline", "id", pl.ID, "err", err)
		return nil
	}
	pts := make([]drawmatch.Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		pts = append(pts, drawmatch.Pt(nums[i], nums[i+1]))
	}
	return strokes([]drawmatch.Path{polygon(pts, pl.closed)}, elementTransform(pl.ID, pl.Transform).Then(parent))
}

// polygon connects pts with lines, drawing a line back to the first point
// and closing the path if closed is set.
func polygon(pts []drawmatch.Point, closed bool) drawmatch.Path {
	if len(pts) == 0 {
		return nil
	}
	p := drawmatch.Path{drawmatch.MoveTo(pts[0])}
	for _, q := range pts[1:] {
		p = append(p, drawmatch.LineTo(q))
	}
	if closed {
		if pts[len(pts)-1] != pts[0] {
			p = append(p, drawmatch.LineTo(pts[0]))
		}
		p = append(p, drawmatch.Close())
	}
	return p
}

func parseLengths(attrs ...string) ([]float64, error) {
	out := make([]float64, len(attrs))
	for i, a := range attrs {
		v, err := parseLength(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
