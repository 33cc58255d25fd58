package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/felipemfpeixoto/drawmatch"
	gl "github.com/rustyoz/genericlexer"
)

// lex starts a lexer over s after normalizing its number syntax. The
// returned function drains the lexer, which lets its goroutine exit; call it
// once parsing is done, however it ended.
func lex(name, s string) (*gl.Lexer, func()) {
	l, _ := gl.Lex(name, normalizeNumbers(s))
	return l, func() {
		for range l.Items {
		}
	}
}

// normalizeNumbers rewrites the compact number forms that SVG allows into
// ones the lexer reads: a leading '0' is added to numbers that start with a
// '.', and a second '.' in a number starts a new one, so "M.5-.5" becomes
// "M0.5 -0.5" and "1.5.5" becomes "1.5 0.5". Signs that start a number
// right after another one are separated from it as well.
func normalizeNumbers(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	var inNumber, seenDot, seenExp bool
	var prev byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case '0' <= c && c <= '9':
			if !inNumber {
				inNumber, seenDot, seenExp = true, false, false
			}
			b.WriteByte(c)
		case c == '.':
			if inNumber && !seenDot && !seenExp {
				seenDot = true
				b.WriteByte(c)
				break
			}
			if inNumber {
				b.WriteByte(' ')
			}
			b.WriteString("0.")
			inNumber, seenDot, seenExp = true, true, false
		case (c == 'e' || c == 'E') && inNumber && !seenExp:
			seenExp = true
			b.WriteByte(c)
		case c == '-' || c == '+':
			if inNumber && (prev == 'e' || prev == 'E') {
				b.WriteByte(c)
				break
			}
			if inNumber {
				b.WriteByte(' ')
			}
			b.WriteByte(c)
			inNumber = false
		default:
			inNumber = false
			b.WriteByte(c)
		}
		prev = c
	}
	return b.String()
}

func parseNumber(i gl.Item) (float64, error) {
	if i.Type != gl.ItemNumber {
		return 0, fmt.Errorf("expected number, got %q", i.Value)
	}
	n, err := strconv.ParseFloat(i.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing number: %w", err)
	}
	return n, nil
}

// parseNumbers consumes a run of numbers separated by whitespace and commas.
func parseNumbers(l *gl.Lexer) ([]float64, error) {
	var nums []float64
	for {
		l.ConsumeWhiteSpace()
		l.ConsumeComma()
		l.ConsumeWhiteSpace()
		if l.PeekItem().Type != gl.ItemNumber {
			return nums, nil
		}
		n, err := parseNumber(l.NextItem())
		if err != nil {
			return nums, err
		}
		nums = append(nums, n)
	}
}

// parseNumberList parses a whitespace and comma separated list of numbers,
// such as the points attribute of a polyline or the arguments of a transform
// function.
func parseNumberList(s string) ([]float64, error) {
	l, drain := lex("numbers", s)
	defer drain()
	nums, err := parseNumbers(l)
	if err != nil {
		return nums, err
	}
	if i := l.NextItem(); i.Type != gl.ItemEOS {
		return nums, fmt.Errorf("unexpected %q in number list", i.Value)
	}
	return nums, nil
}

// parseTransform parses the value of a transform attribute. The list of
// transform functions is applied right to left, as SVG specifies.
func parseTransform(s string) (drawmatch.Affine, error) {
	t := drawmatch.Identity()
	rest := strings.TrimSpace(s)
	if rest == "" {
		return t, fmt.Errorf("empty transform")
	}
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		end := strings.IndexByte(rest, ')')
		if open < 0 || end < open {
			return drawmatch.Identity(), fmt.Errorf("transform parse failed at %q", rest)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseNumberList(rest[open+1 : end])
		if err != nil {
			return drawmatch.Identity(), fmt.Errorf("transform %s: %w", name, err)
		}
		f, err := transformFunc(name, args)
		if err != nil {
			return drawmatch.Identity(), err
		}
		// Functions listed later apply first.
		t = f.Then(t)
		rest = strings.TrimLeft(rest[end+1:], " \t\r\n,")
	}
	return t, nil
}

func transformFunc(name string, args []float64) (drawmatch.Affine, error) {
	bad := func() (drawmatch.Affine, error) {
		return drawmatch.Identity(), fmt.Errorf("transform %s: unexpected %d arguments", name, len(args))
	}
	switch name {
	case "matrix":
		if len(args) != 6 {
			return bad()
		}
		return drawmatch.NewAffine(args[0], args[1], args[2], args[3], args[4], args[5]), nil
	case "translate":
		switch len(args) {
		case 1:
			return drawmatch.Translate(args[0], 0), nil
		case 2:
			return drawmatch.Translate(args[0], args[1]), nil
		}
		return bad()
	case "scale":
		switch len(args) {
		case 1:
			return drawmatch.Scale(args[0], args[0]), nil
		case 2:
			return drawmatch.Scale(args[0], args[1]), nil
		}
		return bad()
	case "rotate":
		switch len(args) {
		case 1:
			return drawmatch.Rotate(args[0] * math.Pi / 180), nil
		case 3:
			cx, cy := args[1], args[2]
			return drawmatch.Translate(-cx, -cy).
				Then(drawmatch.Rotate(args[0] * math.Pi / 180)).
				Then(drawmatch.Translate(cx, cy)), nil
		}
		return bad()
	case "skewX":
		if len(args) != 1 {
			return bad()
		}
		return drawmatch.NewAffine(1, 0, math.Tan(args[0]*math.Pi/180), 1, 0, 0), nil
	case "skewY":
		if len(args) != 1 {
			return bad()
		}
		return drawmatch.NewAffine(1, math.Tan(args[0]*math.Pi/180), 0, 1, 0, 0), nil
	}
	return drawmatch.Identity(), fmt.Errorf("unsupported transform %q", name)
}

// splitStyle splits a style attribute into its properties.
func splitStyle(s string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		props[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return props
}

func hiddenStyle(s string) bool {
	if s == "" {
		return false
	}
	return splitStyle(s)["display"] == "none"
}

// parseLength parses a coordinate or length attribute. Units are dropped, so
// every length is read as user units. Documents that mix absolute units
// such as cm with px come out distorted.
func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return r == '%' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
	})
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing length: %w", err)
	}
	return n, nil
}
