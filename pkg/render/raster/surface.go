// Package raster draws viewer labels into an in-memory RGBA image.
//
// [Surface] implements the viewer's label overlay contract on top of
// *image.RGBA, using an OpenType face (Go Regular unless another font is
// supplied). It backs the PNG contact sheet and can be used to snapshot
// labels for tests.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// Option configures a Surface.
type Option func(*Surface)

// WithColor sets the text color. Label alpha is applied on top of it.
func WithColor(c color.NRGBA) Option { return func(s *Surface) { s.text = c } }

// WithBackground sets the color Clear fills with. The default is transparent.
func WithBackground(c color.Color) Option { return func(s *Surface) { s.background = c } }

// WithFont replaces Go Regular with another TrueType or OpenType font.
func WithFont(ttf []byte) Option { return func(s *Surface) { s.fontData = ttf } }

// Surface is an RGBA label overlay.
type Surface struct {
	img        *image.RGBA
	ratio      float64
	fontData   []byte
	font       *opentype.Font
	faces      map[float64]font.Face
	text       color.NRGBA
	background color.Color
}

// NewSurface returns an empty surface. Call Resize before drawing.
func NewSurface(opts ...Option) (*Surface, error) {
	s := &Surface{
		ratio:      1,
		fontData:   goregular.TTF,
		faces:      make(map[float64]font.Face),
		text:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		background: color.Transparent,
		img:        image.NewRGBA(image.Rect(0, 0, 0, 0)),
	}
	for _, opt := range opts {
		opt(s)
	}
	f, err := opentype.Parse(s.fontData)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse font")
	}
	s.font = f
	return s, nil
}

// Resize reallocates the backing image at width*ratio by height*ratio
// device pixels. Drawing coordinates stay in CSS pixels.
func (s *Surface) Resize(width, height int, ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	s.ratio = ratio
	w := int(math.Round(float64(max(width, 0)) * ratio))
	h := int(math.Round(float64(max(height, 0)) * ratio))
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	s.Clear()
}

// Clear fills the surface with the background color.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
}

// DrawText draws text centred on x with its top edge at y.
func (s *Surface) DrawText(text string, x, y, size, alpha float64) {
	if text == "" || size <= 0 || alpha <= 0 {
		return
	}
	face := s.face(size * s.ratio)
	if face == nil {
		return
	}

	width := font.MeasureString(face, text)
	ascent := face.Metrics().Ascent
	dot := fixed.Point26_6{
		X: fixed.Int26_6(x*s.ratio*64) - width/2,
		Y: fixed.Int26_6(y*s.ratio*64) + ascent,
	}

	c := s.text
	c.A = uint8(math.Round(float64(c.A) * min(alpha, 1)))
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)
}

// Image returns the backing image.
func (s *Surface) Image() *image.RGBA { return s.img }

// Close releases cached font faces.
func (s *Surface) Close() error {
	for k, f := range s.faces {
		f.Close()
		delete(s.faces, k)
	}
	return nil
}

// face returns a face for a device pixel size, rounded to a quarter pixel.
func (s *Surface) face(px float64) font.Face {
	px = math.Round(px*4) / 4
	if px <= 0 {
		return nil
	}
	if f, ok := s.faces[px]; ok {
		return f
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil
	}
	s.faces[px] = f
	return f
}
