package svg

import (
	"fmt"

	"github.com/felipemfpeixoto/drawmatch"
	gl "github.com/rustyoz/genericlexer"
)

// Path is an SVG XML path element
type Path struct {
	ID              string `xml:"id,attr"`
	D               string `xml:"d,attr"`
	Style           string `xml:"style,attr"`
	Display         string `xml:"display,attr"`
	TransformString string `xml:"transform,attr"`
}

// Strokes implements the Element interface. Each subpath of the path
// description becomes a stroke whose commands are in the path's own
// coordinates and whose transform maps them into document space.
func (p *Path) Strokes(parent drawmatch.Affine) drawmatch.Drawing {
	if p.Display == "none" || hiddenStyle(p.Style) {
		return nil
	}
	paths, err := ParsePathData(p.D)
	if err != nil {
		drawmatch.Logger().Warn("truncated path description", "id", p.ID, "err", err)
	}
	return strokes(paths, elementTransform(p.ID, p.TransformString).Then(parent))
}

// strokes pairs every non-empty path with aff.
func strokes(paths []drawmatch.Path, aff drawmatch.Affine) drawmatch.Drawing {
	var out drawmatch.Drawing
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		out = append(out, drawmatch.Stroke{Path: p, Transform: aff})
	}
	return out
}

// elementTransform parses an element's transform attribute, falling back to
// the identity if it is empty or invalid.
func elementTransform(id, s string) drawmatch.Affine {
	if s == "" {
		return drawmatch.Identity()
	}
	t, err := parseTransform(s)
	if err != nil {
		drawmatch.Logger().Warn("ignoring element transform", "id", id, "err", err)
		return drawmatch.Identity()
	}
	return t
}

// commandArity is the number of coordinates consumed by one repetition of
// each path command.
var commandArity = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

type pathDescriptionParser struct {
	lex *gl.Lexer

	// cur is the current point and start the first point of the current
	// subpath, both absolute.
	cur, start drawmatch.Point

	// ctrl is the last control point of the previous command, used by the
	// smooth curve commands S and T. prev is that command, upper-cased.
	ctrl drawmatch.Point
	prev byte

	path  drawmatch.Path
	paths []drawmatch.Path
}

// ParsePathData parses an SVG path description into absolute command
// sequences, one per subpath.
//
// Relative commands are resolved against the current point; H and V become
// LineTo; smooth curves get their reflected control point; Z draws a line back
// to the subpath start when needed and emits ClosePath. Elliptical arcs are
// approximated by a straight line to their end point.
//
// On a syntax error the subpaths parsed so far are returned along with the
// error.
func ParsePathData(d string) ([]drawmatch.Path, error) {
	l, drain := lex("d", d)
	defer drain()
	pdp := &pathDescriptionParser{lex: l}
	err := pdp.parse()
	pdp.flush()
	return pdp.paths, err
}

func (pdp *pathDescriptionParser) parse() error {
	for {
		i := pdp.lex.NextItem()
		switch i.Type {
		case gl.ItemError:
			return fmt.Errorf("lexing path: %s", i.Value)
		case gl.ItemEOS:
			return nil
		case gl.ItemNumber:
			return fmt.Errorf("number %s without a command", i.Value)
		default:
			if !isCommandLetters(i.Value) {
				continue
			}
			// Letters may be lexed together, as in "zM"; only the last one
			// can take arguments.
			for k := 0; k < len(i.Value); k++ {
				if err := pdp.parseCommand(i.Value[k]); err != nil {
					return err
				}
			}
		}
	}
}

func isCommandLetters(s string) bool {
	if s == "" {
		return false
	}
	for k := 0; k < len(s); k++ {
		if _, ok := commandArity[upper(s[k])]; !ok {
			return false
		}
	}
	return true
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func (pdp *pathDescriptionParser) parseCommand(letter byte) error {
	cmd := upper(letter)
	rel := letter != cmd
	arity := commandArity[cmd]

	nums, err := parseNumbers(pdp.lex)
	if err != nil {
		return fmt.Errorf("error parsing %c: %w", letter, err)
	}
	if arity == 0 {
		pdp.closePath()
		if len(nums) > 0 {
			return fmt.Errorf("%c takes no arguments, got %d", letter, len(nums))
		}
		return nil
	}
	if len(nums) == 0 || len(nums)%arity != 0 {
		return fmt.Errorf("%c expects a multiple of %d numbers, got %d", letter, arity, len(nums))
	}

	for j := 0; j < len(nums); j += arity {
		args := nums[j : j+arity]
		switch cmd {
		case 'M':
			if j == 0 {
				pdp.moveTo(pdp.abs(rel, args[0], args[1]))
			} else {
				// Coordinate pairs after the first are implicit lines.
				pdp.lineTo(pdp.abs(rel, args[0], args[1]))
			}
		case 'L':
			pdp.lineTo(pdp.abs(rel, args[0], args[1]))
		case 'H':
			x := args[0]
			if rel {
				x += pdp.cur.X
			}
			pdp.lineTo(drawmatch.Pt(x, pdp.cur.Y))
		case 'V':
			y := args[0]
			if rel {
				y += pdp.cur.Y
			}
			pdp.lineTo(drawmatch.Pt(pdp.cur.X, y))
		case 'C':
			pdp.cubicTo(pdp.abs(rel, args[0], args[1]), pdp.abs(rel, args[2], args[3]), pdp.abs(rel, args[4], args[5]))
		case 'S':
			c1 := pdp.reflect('C', 'S')
			pdp.cubicTo(c1, pdp.abs(rel, args[0], args[1]), pdp.abs(rel, args[2], args[3]))
		case 'Q':
			pdp.quadTo(pdp.abs(rel, args[0], args[1]), pdp.abs(rel, args[2], args[3]))
		case 'T':
			pdp.quadTo(pdp.reflect('Q', 'T'), pdp.abs(rel, args[0], args[1]))
		case 'A':
			drawmatch.Logger().Debug("approximating arc by a line", "rx", args[0], "ry", args[1])
			pdp.lineTo(pdp.abs(rel, args[5], args[6]))
		}
		// S and T only reflect the control point of the command directly
		// before them.
		pdp.prev = cmd
	}
	return nil
}

// abs resolves a coordinate pair against the current point if rel is set.
func (pdp *pathDescriptionParser) abs(rel bool, x, y float64) drawmatch.Point {
	if rel {
		return drawmatch.Pt(pdp.cur.X+x, pdp.cur.Y+y)
	}
	return drawmatch.Pt(x, y)
}

// reflect returns the reflection of the previous control point about the
// current point if the previous command was one of kinds, and the current
// point otherwise.
func (pdp *pathDescriptionParser) reflect(kinds ...byte) drawmatch.Point {
	for _, k := range kinds {
		if pdp.prev == k {
			return drawmatch.Pt(2*pdp.cur.X-pdp.ctrl.X, 2*pdp.cur.Y-pdp.ctrl.Y)
		}
	}
	return pdp.cur
}

// ensureStarted opens a subpath at the current point if a drawing command
// appears without a preceding moveto, as after Z.
func (pdp *pathDescriptionParser) ensureStarted() {
	if len(pdp.path) == 0 {
		pdp.path = append(pdp.path, drawmatch.MoveTo(pdp.cur))
		pdp.start = pdp.cur
	}
}

func (pdp *pathDescriptionParser) flush() {
	if len(pdp.path) > 0 {
		pdp.paths = append(pdp.paths, pdp.path)
	}
	pdp.path = nil
}

func (pdp *pathDescriptionParser) moveTo(p drawmatch.Point) {
	pdp.flush()
	pdp.path = drawmatch.Path{drawmatch.MoveTo(p)}
	pdp.cur, pdp.start = p, p
}

func (pdp *pathDescriptionParser) lineTo(p drawmatch.Point) {
	pdp.ensureStarted()
	pdp.path = append(pdp.path, drawmatch.LineTo(p))
	pdp.cur = p
}

func (pdp *pathDescriptionParser) quadTo(c, p drawmatch.Point) {
	pdp.ensureStarted()
	pdp.path = append(pdp.path, drawmatch.QuadTo(c, p))
	pdp.ctrl, pdp.cur = c, p
}

func (pdp *pathDescriptionParser) cubicTo(c1, c2, p drawmatch.Point) {
	pdp.ensureStarted()
	pdp.path = append(pdp.path, drawmatch.CubicTo(c1, c2, p))
	pdp.ctrl, pdp.cur = c2, p
}

func (pdp *pathDescriptionParser) closePath() {
	pdp.prev = 'Z'
	if len(pdp.path) == 0 {
		return
	}
	if pdp.cur != pdp.start {
		pdp.path = append(pdp.path, drawmatch.LineTo(pdp.start))
	}
	pdp.path = append(pdp.path, drawmatch.Close())
	pdp.cur = pdp.start
	pdp.flush()
}
