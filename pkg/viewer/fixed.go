package viewer

import "github.com/matzehuels/mosaic/pkg/layout"

// FixedView is a static [View] that maps bounds onto a pixel canvas with a
// uniform scale taken from the width. It is used to render labels into
// still images.
type FixedView struct {
	Rect   layout.Rect
	Width  float64
	Height float64
}

// NewFixedView returns a view of r that is width pixels wide, with the
// height following r's aspect ratio.
func NewFixedView(r layout.Rect, width float64) FixedView {
	h := 0.0
	if r.Width > 0 {
		h = width * r.Height / r.Width
	}
	return FixedView{Rect: r, Width: width, Height: h}
}

func (f FixedView) Bounds(bool) layout.Rect { return f.Rect }

func (f FixedView) PixelSize() (float64, float64) { return f.Width, f.Height }

func (f FixedView) PixelFromPoint(x, y float64, _ bool) (float64, float64) {
	s := f.scale()
	return (x - f.Rect.X) * s, (y - f.Rect.Y) * s
}

// PointFromPixel is the inverse of PixelFromPoint.
func (f FixedView) PointFromPixel(px, py float64) (float64, float64) {
	s := f.scale()
	if s == 0 {
		return f.Rect.X, f.Rect.Y
	}
	return f.Rect.X + px/s, f.Rect.Y + py/s
}

func (f FixedView) scale() float64 {
	if f.Rect.Width <= 0 {
		return 0
	}
	return f.Width / f.Rect.Width
}
