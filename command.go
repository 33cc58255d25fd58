package drawmatch

import "fmt"

// CommandKind tells the tessellator how to interpret the points of a
// Command.
type CommandKind int

// These are the drawing commands understood by the tessellator. ClosePath
// is carried through from path sources but produces no points.
const (
	MoveToKind CommandKind = iota
	LineToKind
	QuadToKind
	CubicToKind
	ClosePathKind
)

func (k CommandKind) String() string {
	switch k {
	case MoveToKind:
		return "MoveTo"
	case LineToKind:
		return "LineTo"
	case QuadToKind:
		return "QuadTo"
	case CubicToKind:
		return "CubicTo"
	case ClosePathKind:
		return "ClosePath"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is a single drawing command with absolute coordinates.
//
// Points are used according to Kind:
//
//	MoveTo, LineTo: P0 is the target point
//	QuadTo:         P0 is the control point, P1 the end point
//	CubicTo:        P0 and P1 are the control points, P2 the end point
type Command struct {
	Kind CommandKind
	P0   Point
	P1   Point
	P2   Point
}

// MoveTo returns a command that starts a new subpath at p.
func MoveTo(p Point) Command {
	return Command{Kind: MoveToKind, P0: p}
}

// LineTo returns a command drawing a straight line to p.
func LineTo(p Point) Command {
	return Command{Kind: LineToKind, P0: p}
}

// QuadTo returns a command drawing a quadratic Bézier to p with control
// point c.
func QuadTo(c, p Point) Command {
	return Command{Kind: QuadToKind, P0: c, P1: p}
}

// CubicTo returns a command drawing a cubic Bézier to p with control points
// c1 and c2.
func CubicTo(c1, c2, p Point) Command {
	return Command{Kind: CubicToKind, P0: c1, P1: c2, P2: p}
}

// Close returns a ClosePath command.
func Close() Command {
	return Command{Kind: ClosePathKind}
}

// End returns the point the command leaves the pen at. The boolean is false
// for commands that do not move the pen.
func (c Command) End() (Point, bool) {
	switch c.Kind {
	case MoveToKind, LineToKind:
		return c.P0, true
	case QuadToKind:
		return c.P1, true
	case CubicToKind:
		return c.P2, true
	default:
		return Point{}, false
	}
}

// Transform maps all points of the command through aff.
func (c Command) Transform(aff Affine) Command {
	switch c.Kind {
	case MoveToKind, LineToKind:
		c.P0 = aff.Apply(c.P0)
	case QuadToKind:
		c.P0 = aff.Apply(c.P0)
		c.P1 = aff.Apply(c.P1)
	case CubicToKind:
		c.P0 = aff.Apply(c.P0)
		c.P1 = aff.Apply(c.P1)
		c.P2 = aff.Apply(c.P2)
	}
	return c
}

func (c Command) String() string {
	switch c.Kind {
	case MoveToKind, LineToKind:
		return fmt.Sprintf("%s%v", c.Kind, c.P0)
	case QuadToKind:
		return fmt.Sprintf("%s%v %v", c.Kind, c.P0, c.P1)
	case CubicToKind:
		return fmt.Sprintf("%s%v %v %v", c.Kind, c.P0, c.P1, c.P2)
	default:
		return c.Kind.String()
	}
}

// Path is an ordered sequence of drawing commands.
type Path []Command

// Transform returns a copy of the path with every command mapped through
// aff.
func (p Path) Transform(aff Affine) Path {
	out := make(Path, len(p))
	for i, c := range p {
		out[i] = c.Transform(aff)
	}
	return out
}

// Stroke is one drawn stroke: its commands in local coordinates and the
// transform that maps them into canvas space. A zero Transform is the
// identity.
type Stroke struct {
	Path      Path
	Transform Affine
}

// Points tessellates the stroke in canvas space.
//
// The transform is applied to the control points before tessellation, so
// line sampling density is measured in canvas units. Affine maps carry
// Bézier curves onto Bézier curves, so the sampled shape is the same as
// transforming the sampled points.
func (s Stroke) Points(opts Options) Points {
	p := s.Path
	if !s.Transform.IsZero() && !s.Transform.IsIdentity() {
		p = p.Transform(s.Transform)
	}
	return Tessellate(p, opts)
}

// Drawing is a set of strokes. User drawings and reference shapes are both
// represented as drawings.
type Drawing []Stroke

// Points tessellates every stroke and concatenates the results in stroke
// order.
func (d Drawing) Points(opts Options) Points {
	var out Points
	for _, s := range d {
		out = append(out, s.Points(opts)...)
	}
	return out
}
