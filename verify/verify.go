// Package verify checks a read-back frame against the shape a demo is
// expected to draw.
package verify

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	geometry "github.com/richinsley/hellogl/geometry"
)

// ErrMismatch is returned when too many pixels differ from the expectation.
var ErrMismatch = errors.New("frame does not match expected shape")

// Expectation describes a single filled convex shape on a cleared background.
type Expectation struct {
	Name       string
	Color      color.RGBA
	Background color.RGBA
	Outline    geometry.Polygon // NDC, counter-clockwise
}

// Square is what hello-square draws: a red quad over [-0.5,0.5] on black.
func Square() Expectation {
	return Expectation{
		Name:       "red square",
		Color:      color.RGBA{R: 255, A: 255},
		Background: color.RGBA{A: 255},
		Outline:    geometry.QuadOutline(),
	}
}

// Triangle is what hello-triangle draws. Immediate mode without glColor uses
// the default current color, white.
func Triangle() Expectation {
	return Expectation{
		Name:       "white triangle",
		Color:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Background: color.RGBA{A: 255},
		Outline:    geometry.TriangleOutline(),
	}
}

type Tolerance struct {
	EdgePixels  float64 // pixel centers closer than this to the outline are skipped
	ColorDelta  uint8   // allowed per-channel difference
	MaxMismatch float64 // allowed fraction of mismatched pixels
}

var DefaultTolerance = Tolerance{
	EdgePixels:  1.5,
	ColorDelta:  8,
	MaxMismatch: 0.001,
}

type Report struct {
	Width, Height int
	Inside        int
	Outside       int
	Skipped       int
	Mismatched    int
}

func (r Report) Checked() int {
	return r.Inside + r.Outside
}

func (r Report) MismatchRatio() float64 {
	if r.Checked() == 0 {
		return 0
	}
	return float64(r.Mismatched) / float64(r.Checked())
}

func (r Report) String() string {
	return fmt.Sprintf("%dx%d: %d inside, %d outside, %d skipped, %d mismatched",
		r.Width, r.Height, r.Inside, r.Outside, r.Skipped, r.Mismatched)
}

// Check compares every pixel of img (rows top-down, as returned by a flipped
// glReadPixels) with exp. Alpha is ignored.
func Check(img *image.RGBA, exp Expectation, tol Tolerance) (Report, error) {
	if img == nil {
		return Report{}, errors.New("no frame to check")
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	report := Report{Width: w, Height: h}
	if w == 0 || h == 0 {
		return report, fmt.Errorf("empty frame %dx%d", w, h)
	}

	outline := pixelOutline(exp.Outline, w, h)
	for row := 0; row < h; row++ {
		y := h - 1 - row
		for x := 0; x < w; x++ {
			center := geometry.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}
			if outline.Distance(center) < tol.EdgePixels {
				report.Skipped++
				continue
			}

			want := exp.Background
			if outline.Contains(center) {
				report.Inside++
				want = exp.Color
			} else {
				report.Outside++
			}
			if !closeRGB(img.RGBAAt(b.Min.X+x, b.Min.Y+row), want, tol.ColorDelta) {
				report.Mismatched++
			}
		}
	}

	if report.Inside == 0 {
		return report, fmt.Errorf("%w: no checkable pixels inside the %s", ErrMismatch, exp.Name)
	}
	if report.MismatchRatio() > tol.MaxMismatch {
		return report, fmt.Errorf("%w: %d of %d pixels differ from the %s",
			ErrMismatch, report.Mismatched, report.Checked(), exp.Name)
	}
	return report, nil
}

// Reference rasterizes exp by pixel center into a width x height image with
// the same row order Check expects.
func Reference(exp Expectation, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	outline := pixelOutline(exp.Outline, width, height)
	for row := 0; row < height; row++ {
		y := height - 1 - row
		for x := 0; x < width; x++ {
			c := exp.Background
			if outline.Contains(geometry.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}) {
				c = exp.Color
			}
			img.SetRGBA(x, row, c)
		}
	}
	return img
}

func pixelOutline(ndc geometry.Polygon, width, height int) geometry.Polygon {
	return ndc.Map(func(v geometry.Vec2) geometry.Vec2 {
		return geometry.NDCToPixel(v, width, height)
	})
}

func closeRGB(got, want color.RGBA, delta uint8) bool {
	return within(got.R, want.R, delta) && within(got.G, want.G, delta) && within(got.B, want.B, delta)
}

func within(a, b, delta uint8) bool {
	if a > b {
		return a-b <= delta
	}
	return b-a <= delta
}
