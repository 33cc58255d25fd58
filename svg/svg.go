// Package svg reads SVG documents into drawmatch strokes.
//
// Only geometry is extracted: paths, lines, polylines, polygons, circles,
// ellipses and rectangles, nested in any number of groups, with their transform
// attributes. Styling is ignored except for elements hidden with
// display:none.
package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/felipemfpeixoto/drawmatch"
)

// Element is implemented by every SVG element that contributes geometry.
type Element interface {
	// Strokes returns one stroke per subpath. parent maps the element's
	// coordinate system into document space.
	Strokes(parent drawmatch.Affine) drawmatch.Drawing
}

// Svg represents an SVG file containing at least a top level group or a
// number of elements.
type Svg struct {
	Title string

	// Groups are the top level groups. They also appear in Elements, which
	// holds every top level element in document order.
	Groups    []*Group
	Elements  []Element
	Name      string
	Transform drawmatch.Affine
}

// Group represents an SVG group (usually located in a 'g' XML element)
type Group struct {
	ID              string
	Hidden          bool
	Elements        []Element
	TransformString string
	Transform       drawmatch.Affine
	Parent          *Group
	Owner           *Svg
}

// Strokes implements the Element interface.
func (g *Group) Strokes(parent drawmatch.Affine) drawmatch.Drawing {
	if g.Hidden {
		return nil
	}
	aff := g.Transform.Then(parent)
	var out drawmatch.Drawing
	for _, e := range g.Elements {
		out = append(out, e.Strokes(aff)...)
	}
	return out
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (g *Group) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	g.Transform = drawmatch.Identity()
	var style string
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			g.ID = attr.Value
		case "style":
			style = attr.Value
		case "display":
			g.Hidden = attr.Value == "none"
		case "transform":
			g.TransformString = attr.Value
			t, err := parseTransform(g.TransformString)
			if err != nil {
				drawmatch.Logger().Warn("ignoring group transform", "id", g.ID, "err", err)
				continue
			}
			g.Transform = t
		}
	}
	if hiddenStyle(style) {
		g.Hidden = true
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if tok.Name.Local == "g" {
				sub := &Group{Parent: g, Owner: g.Owner}
				if err := decoder.DecodeElement(sub, &tok); err != nil {
					return fmt.Errorf("error decoding group within group %q: %w", g.ID, err)
				}
				g.Elements = append(g.Elements, sub)
				continue
			}
			e, err := decodeShape(decoder, tok)
			if err != nil {
				return fmt.Errorf("error decoding element of group %q: %w", g.ID, err)
			}
			if e != nil {
				g.Elements = append(g.Elements, e)
			}

		case xml.EndElement:
			return nil
		}
	}
}

// decodeShape decodes a geometry element. Elements that carry no geometry,
// such as defs, text or metadata, are skipped together with their children
// and yield a nil Element.
func decodeShape(decoder *xml.Decoder, tok xml.StartElement) (Element, error) {
	var e Element
	switch tok.Name.Local {
	case "path":
		e = &Path{}
	case "circle":
		e = &Circle{}
	case "ellipse":
		e = &Ellipse{}
	case "rect":
		e = &Rect{}
	case "line":
		e = &Line{}
	case "polyline":
		e = &PolyLine{}
	case "polygon":
		e = &PolyLine{closed: true}
	default:
		return nil, decoder.Skip()
	}
	if err := decoder.DecodeElement(e, &tok); err != nil {
		return nil, err
	}
	return e, nil
}

// Strokes returns every stroke of the document, in document order, mapped
// into document space and scaled by the factor given to ParseSvg.
func (s *Svg) Strokes() drawmatch.Drawing {
	var out drawmatch.Drawing
	for _, e := range s.Elements {
		out = append(out, e.Strokes(s.Transform)...)
	}
	return out
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (s *Svg) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			switch tok.Name.Local {
			case "title":
				var title string
				if err := decoder.DecodeElement(&title, &tok); err != nil {
					return fmt.Errorf("error decoding title of SVG struct: %w", err)
				}
				s.Title = strings.TrimSpace(title)
				continue
			case "g":
				g := &Group{Owner: s}
				if err = decoder.DecodeElement(g, &tok); err != nil {
					return fmt.Errorf("error decoding group element within SVG struct: %w", err)
				}
				s.Groups = append(s.Groups, g)
				s.Elements = append(s.Elements, g)
				continue
			}

			e, err := decodeShape(decoder, tok)
			if err != nil {
				return fmt.Errorf("error decoding element of SVG struct: %w", err)
			}
			if e != nil {
				s.Elements = append(s.Elements, e)
			}

		case xml.EndElement:
			if tok.Name.Local == "svg" {
				return nil
			}
		}
	}
}

func newSvg(name string, scale float64) *Svg {
	svg := &Svg{Name: name, Transform: drawmatch.Identity()}
	if scale > 0 {
		svg.Transform = drawmatch.Scale(scale, scale)
	}
	if scale < 0 {
		svg.Transform = drawmatch.Scale(1.0/-scale, 1.0/-scale)
	}
	return svg
}

// ParseSvg parses an SVG string into an SVG struct. A positive scale
// multiplies all coordinates, a negative one divides them by -scale, and zero
// leaves them unchanged.
func ParseSvg(str string, name string, scale float64) (*Svg, error) {
	return ParseSvgFromReader(strings.NewReader(str), name, scale)
}

// ParseSvgFromReader parses an SVG struct from an io.Reader
func ParseSvgFromReader(r io.Reader, name string, scale float64) (*Svg, error) {
	svg := newSvg(name, scale)
	if err := xml.NewDecoder(r).Decode(svg); err != nil {
		return nil, fmt.Errorf("ParseSvg %s: %w", name, err)
	}
	for _, g := range svg.Groups {
		g.SetOwner(svg)
	}
	return svg, nil
}

// SetOwner sets the owner of a SVG Group
func (g *Group) SetOwner(svg *Svg) {
	g.Owner = svg
	for _, e := range g.Elements {
		if sub, ok := e.(*Group); ok {
			sub.Parent = g
			sub.SetOwner(svg)
		}
	}
}
