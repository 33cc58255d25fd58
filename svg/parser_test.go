package svg

import (
	"strings"
	"testing"

	"github.com/cheekybits/is"

	"github.com/felipemfpeixoto/drawmatch"
)

const testSvg = `<?xml version="1.0" encoding="utf-8"?>
<!-- Generator: Adobe Illustrator 15.0.2, SVG Export Plug-In . SVG Version: 6.00 Build 0)  -->
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg version="1.1" id="Layer_1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" x="0px" y="0px"
	 width="595.201px" height="841.922px" viewBox="0 0 595.201 841.922" enable-background="new 0 0 595.201 841.922"
	 xml:space="preserve">
<title>Podium</title>
<rect x="207" y="53" fill="#009FE3" width="181.667" height="85.333"/>
<text transform="matrix(1 0 0 1 232.3306 107.5952)" fill="#FFFFFF" font-family="'ArialMT'" font-size="31.9752">PODIUM</text>
</svg>`

func TestParse(t *testing.T) {
	is := is.New(t)

	svg, err := ParseSvg(testSvg, "test", 0)
	is.NoErr(err)
	is.NotNil(svg)
	is.Equal(svg.Title, "Podium")
	is.Equal(len(svg.Elements), 1)

	svg, err = ParseSvgFromReader(strings.NewReader(testSvg), "test", 0)
	is.NoErr(err)
	is.NotNil(svg)

	// Summed at run time, as the parser does, not folded as constants.
	x, y, w, h := 207.0, 53.0, 181.667, 85.333
	strokes := svg.Strokes()
	is.Equal(len(strokes), 1)
	is.Equal(strokes[0].Path, drawmatch.Path{
		drawmatch.MoveTo(drawmatch.Pt(x, y)),
		drawmatch.LineTo(drawmatch.Pt(x+w, y)),
		drawmatch.LineTo(drawmatch.Pt(x+w, y+h)),
		drawmatch.LineTo(drawmatch.Pt(x, y+h)),
		drawmatch.LineTo(drawmatch.Pt(x, y)),
		drawmatch.Close(),
	})
}

func TestParseInvalid(t *testing.T) {
	is := is.New(t)

	_, err := ParseSvg(`<svg><path d="M0 0 L1 1"></svg>`, "broken", 0)
	is.Err(err)

	_, err = ParseSvg(``, "empty", 0)
	is.Err(err)
}

func TestParseScale(t *testing.T) {
	is := is.New(t)
	const doc = `<svg><path d="M10 20 L30 40"/></svg>`

	for _, tt := range []struct {
		scale float64
		want  drawmatch.Point
	}{
		{0, drawmatch.Pt(10, 20)},
		{2, drawmatch.Pt(20, 40)},
		{-10, drawmatch.Pt(1, 2)},
	} {
		svg, err := ParseSvg(doc, "scaled", tt.scale)
		is.NoErr(err)
		strokes := svg.Strokes()
		is.Equal(len(strokes), 1)
		is.Equal(strokes[0].Transform.Apply(strokes[0].Path[0].P0), tt.want)
	}
}

func TestParseGroups(t *testing.T) {
	is := is.New(t)
	const doc = `<svg xmlns="http://www.w3.org/2000/svg">
	<defs><path id="hidden-def" d="M0 0 L100 100"/></defs>
	<g id="outer" transform="translate(10, 0)">
		<g id="inner" transform="scale(2)">
			<path id="p" d="M1 1 L2 2"/>
		</g>
		<circle cx="0" cy="0" r="5" style="display: none"/>
		<line x1="0" y1="0" x2="5" y2="0"/>
		<metadata><path d="M9 9 L8 8"/></metadata>
	</g>
	<g display="none"><path d="M0 0 L1 1"/></g>
	<polygon points="0,0 10,0 10,10"/>
</svg>`

	svg, err := ParseSvg(doc, "groups", 0)
	is.NoErr(err)
	is.Equal(len(svg.Groups), 2)
	is.Equal(svg.Groups[0].ID, "outer")
	is.Equal(svg.Groups[0].Owner, svg)

	inner, ok := svg.Groups[0].Elements[0].(*Group)
	is.True(ok)
	is.Equal(inner.ID, "inner")
	is.Equal(inner.Owner, svg)

	is.Equal(len(svg.Elements), 3)

	strokes := svg.Strokes()
	is.Equal(len(strokes), 3)

	nested := strokes[0]
	is.Equal(nested.Path[0].P0, drawmatch.Pt(1, 1))
	is.Equal(nested.Transform.Apply(nested.Path[0].P0), drawmatch.Pt(12, 2))
	is.Equal(nested.Transform.Apply(nested.Path[1].P0), drawmatch.Pt(14, 4))

	line := strokes[1]
	is.Equal(line.Transform.Apply(line.Path[1].P0), drawmatch.Pt(15, 0))

	poly := strokes[2]
	is.Equal(len(poly.Path), 5)
}

func TestParseDocumentOrder(t *testing.T) {
	is := is.New(t)
	const doc = `<svg>
	<g><path d="M0 0L1 0"/></g>
	<path d="M5 5L6 6"/>
	<g><line x1="7" y1="7" x2="8" y2="8"/></g>
	<polyline points="9 9 10 10"/>
</svg>`

	svg, err := ParseSvg(doc, "order", 0)
	is.NoErr(err)
	strokes := svg.Strokes()
	is.Equal(len(strokes), 4)
	for i, want := range []drawmatch.Point{
		drawmatch.Pt(0, 0), drawmatch.Pt(5, 5), drawmatch.Pt(7, 7), drawmatch.Pt(9, 9),
	} {
		is.Equal(strokes[i].Path[0], drawmatch.MoveTo(want))
	}
}

func TestParseShapes(t *testing.T) {
	is := is.New(t)
	const doc = `<svg>
	<circle cx="50" cy="50" r="10"/>
	<ellipse cx="0" cy="0" rx="20" ry="5"/>
	<polyline points="0 0, 5 5, 10 0"/>
	<rect x="0" y="0" width="0" height="10"/>
	<circle cx="1" cy="1" r="nope"/>
</svg>`

	svg, err := ParseSvg(doc, "shapes", 0)
	is.NoErr(err)
	strokes := svg.Strokes()
	is.Equal(len(strokes), 3)

	circle := strokes[0].Path
	is.Equal(len(circle), 6)
	is.Equal(circle[0], drawmatch.MoveTo(drawmatch.Pt(60, 50)))
	for _, c := range circle[1:5] {
		is.Equal(c.Kind, drawmatch.CubicToKind)
	}
	is.Equal(circle[4].P2, drawmatch.Pt(60, 50))
	is.Equal(circle[5].Kind, drawmatch.ClosePathKind)

	ellipse := strokes[1].Path
	is.Equal(ellipse[1].P2, drawmatch.Pt(0, 5))
	is.Equal(ellipse[2].P2, drawmatch.Pt(-20, 0))

	polyline := strokes[2].Path
	is.Equal(polyline, drawmatch.Path{
		drawmatch.MoveTo(drawmatch.Pt(0, 0)),
		drawmatch.LineTo(drawmatch.Pt(5, 5)),
		drawmatch.LineTo(drawmatch.Pt(10, 0)),
	})
}
