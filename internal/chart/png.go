package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"CryptoBoard/internal/calculator"
	"CryptoBoard/internal/model"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Raster geometry at native size.
const (
	baseWidth  = 800
	baseHeight = 400

	padLeft   = 72
	padRight  = 20
	padTop    = 20
	padBottom = 32

	gridLines = 5

	MinWidth = 100
	MaxWidth = 2000
)

var (
	bgRGBA    = color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
	lineRGBA  = color.NRGBA{R: 59, G: 130, B: 246, A: 0xff}
	fillRGBA  = color.NRGBA{R: 59, G: 130, B: 246, A: 26}
	gridRGBA  = color.NRGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xff}
	tickRGBA  = color.NRGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 0xff}
	whiteRGBA = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// WritePNG renders the chart as a PNG. A width of 0 keeps the native size;
// other widths are clamped to [MinWidth, MaxWidth] and keep the aspect ratio.
func (c *Chart) WritePNG(w io.Writer, width int) error {
	if !c.Drawn() {
		return ErrNotDrawn
	}
	points := c.Points()
	img, err := rasterize(points)
	if err != nil {
		return err
	}
	if width > 0 {
		width = max(MinWidth, min(MaxWidth, width))
		if width != baseWidth {
			img = imaging.Resize(img, width, 0, imaging.Lanczos)
		}
	}
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("encode chart png: %w", err)
	}
	return nil
}

func rasterize(points []model.ChartPoint) (*image.NRGBA, error) {
	img := imaging.New(baseWidth, baseHeight, bgRGBA)
	high, low, err := calculator.PriceRange(points)
	if err != nil {
		return nil, err
	}
	top, bottom := calculator.Padded(high, low, 0.1)

	plot := image.Rect(padLeft, padTop, baseWidth-padRight, baseHeight-padBottom)

	// Y gridlines with price ticks; the x axis has none.
	for i := 0; i <= gridLines; i++ {
		y := plot.Min.Y + i*plot.Dy()/gridLines
		draw.Draw(img, image.Rect(plot.Min.X, y, plot.Max.X, y+1), image.NewUniform(gridRGBA), image.Point{}, draw.Src)
		v := top - float64(i)*(top-bottom)/gridLines
		label := fmt.Sprintf("%.0f", v)
		drawText(img, label, plot.Min.X-8-textWidth(label), y+4)
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(plot.Min.X) + float64(plot.Dx())/2
		if len(points) > 1 {
			xs[i] = float64(plot.Min.X) + float64(i)*float64(plot.Dx())/float64(len(points)-1)
		}
		pos, err := calculator.Position(p.Close.InexactFloat64(), top, bottom)
		if err != nil {
			return nil, err
		}
		ys[i] = float64(plot.Max.Y) - pos*float64(plot.Dy())

		label := p.Label
		drawText(img, label, int(xs[i])-textWidth(label)/2, plot.Max.Y+20)
	}

	// Area fill under the line.
	fill := image.NewUniform(fillRGBA)
	for i := 0; i+1 < len(points); i++ {
		for x := int(xs[i]); x < int(xs[i+1]); x++ {
			t := (float64(x) - xs[i]) / (xs[i+1] - xs[i])
			y := int(ys[i] + t*(ys[i+1]-ys[i]))
			draw.Draw(img, image.Rect(x, y, x+1, plot.Max.Y), fill, image.Point{}, draw.Over)
		}
	}

	for i := 0; i+1 < len(points); i++ {
		drawSegment(img, xs[i], ys[i], xs[i+1], ys[i+1], 1.5, lineRGBA)
	}
	for i := range points {
		drawDisc(img, xs[i], ys[i], 4, whiteRGBA)
		drawDisc(img, xs[i], ys[i], 3, lineRGBA)
	}
	return img, nil
}

func drawSegment(img *image.NRGBA, x0, y0, x1, y1, radius float64, col color.NRGBA) {
	steps := int(math.Ceil(math.Hypot(x1-x0, y1-y0) * 2))
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(max(steps, 1))
		drawDisc(img, x0+t*(x1-x0), y0+t*(y1-y0), radius, col)
	}
}

func drawDisc(img *image.NRGBA, cx, cy, r float64, col color.NRGBA) {
	for y := int(math.Floor(cy - r)); y <= int(math.Ceil(cy+r)); y++ {
		for x := int(math.Floor(cx - r)); x <= int(math.Ceil(cx+r)); x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}

func drawText(img *image.NRGBA, s string, x, y int) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(tickRGBA),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Round()
}
