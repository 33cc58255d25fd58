package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/felipemfpeixoto/drawmatch"
)

const (
	overlaySize = 512
	dotRadius   = 2
)

var (
	drawingColor   = color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}
	referenceColor = color.RGBA{R: 0x30, G: 0x50, B: 0xd0, A: 0xff}
)

// overlayPoint maps a normalized coordinate, which lies in [-1, 1], onto an
// image of the given size with a margin on every side.
func overlayPoint(p drawmatch.Point, size int) (float32, float32) {
	half := float64(size) / 2
	return float32(half + p.X*half*0.9), float32(half + p.Y*half*0.9)
}

// dots rasterizes a small diamond at every point.
func dots(pts drawmatch.Points, size int) *vector.Rasterizer {
	z := vector.NewRasterizer(size, size)
	for _, p := range pts {
		x, y := overlayPoint(p, size)
		z.MoveTo(x-dotRadius, y)
		z.LineTo(x, y-dotRadius)
		z.LineTo(x+dotRadius, y)
		z.LineTo(x, y+dotRadius)
		z.ClosePath()
	}
	return z
}

// renderOverlay draws the normalized drawing and reference of r on top of
// each other, labelled with the final distance.
func renderOverlay(r drawmatch.Report, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	dots(r.Reference.Points, size).Draw(img, img.Bounds(), image.NewUniform(referenceColor), image.Point{})
	dots(r.Drawing.Points, size).Draw(img, img.Bounds(), image.NewUniform(drawingColor), image.Point{})

	label := "distance: unbounded"
	if r.Matched() {
		label = fmt.Sprintf("distance: %.4f", r.Distance)
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(8, 8+basicfont.Face7x13.Ascent),
	}
	d.DrawString(label)
	return img
}

func writeOverlay(path string, r drawmatch.Report, size int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating overlay: %w", err)
	}
	if err := png.Encode(f, renderOverlay(r, size)); err != nil {
		f.Close()
		return fmt.Errorf("encoding overlay: %w", err)
	}
	return f.Close()
}
