package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"

	"github.com/matzehuels/mosaic/pkg/captions"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/render/raster"
	"github.com/matzehuels/mosaic/pkg/viewer"
)

var (
	colorSheet = color.RGBA{17, 17, 17, 255}
	colorTile  = color.RGBA{43, 43, 43, 255}
	colorEdge  = color.RGBA{60, 60, 60, 255}
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	width    int
	scale    int
	captions captions.Set
	labels   bool
}

// WithPNGWidth sets the output width in pixels.
func WithPNGWidth(px int) PNGOption { return func(r *pngRenderer) { r.width = px } }

// WithSupersample renders at n times the size and downsamples (default 2).
func WithSupersample(n int) PNGOption { return func(r *pngRenderer) { r.scale = n } }

// WithPNGCaptions resolves label text from caption titles.
func WithPNGCaptions(set captions.Set) PNGOption {
	return func(r *pngRenderer) { r.captions = set }
}

// WithoutPNGLabels draws tiles only.
func WithoutPNGLabels() PNGOption { return func(r *pngRenderer) { r.labels = false } }

// RenderPNG rasterizes the contact sheet.
func RenderPNG(res layout.Result, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{width: DefaultWidth, scale: 2, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	r.scale = max(r.scale, 1)

	frame := viewer.NewFrame(res)
	final := viewer.NewFixedView(frame.Home, float64(r.width))
	fw, fh := final.PixelSize()
	out := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(fw)), int(math.Ceil(fh))))

	// Tiles and text are drawn at the supersampled size, then scaled down.
	big := viewer.NewFixedView(frame.Home, float64(r.width*r.scale))
	bw, bh := big.PixelSize()

	surface, err := raster.NewSurface(raster.WithBackground(colorSheet))
	if err != nil {
		return nil, err
	}
	defer surface.Close()
	surface.Resize(int(math.Ceil(bw)), int(math.Ceil(bh)), 1)
	canvas := surface.Image()

	for _, p := range frame.Placements {
		x0, y0 := big.PixelFromPoint(p.X, p.Y, true)
		x1, y1 := big.PixelFromPoint(p.Right(), p.Bottom(), true)
		outer := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
		draw.Draw(canvas, outer, image.NewUniform(colorEdge), image.Point{}, draw.Src)
		draw.Draw(canvas, outer.Inset(r.scale), image.NewUniform(colorTile), image.Point{}, draw.Src)
	}

	if r.labels {
		// Label sizes follow the final width, so draw them against the
		// final view and scale positions by the supersample factor.
		labels := viewer.NewLabels(frame, r.captions, viewer.Config{})
		labels.Draw(scaled{surface, float64(r.scale)}, final)
	}

	draw.CatmullRom.Scale(out, out.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// scaled multiplies every coordinate and size by k before drawing, and
// leaves the already cleared canvas alone.
type scaled struct {
	s *raster.Surface
	k float64
}

func (s scaled) Resize(int, int, float64) {}
func (s scaled) Clear()                   {}

func (s scaled) DrawText(text string, x, y, size, alpha float64) {
	s.s.DrawText(text, x*s.k, y*s.k, size*s.k, alpha)
}
