package viewer

import (
	"github.com/matzehuels/mosaic/pkg/geometry"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/observability"
)

// Click thirds: a click on a featured image left of navPrev moves back,
// right of navNext moves forward.
const (
	navPrev = 0.333
	navNext = 0.666
)

// Navigator decides which image to zoom to and moves the viewport there.
type Navigator struct {
	frame    *Frame
	viewport Viewport
	location Location
	cfg      Config
	enabled  bool
}

// NewNavigator returns a navigator over frame. It ignores input until
// [Navigator.Enable] is called.
func NewNavigator(frame *Frame, vp Viewport, loc Location, cfg Config) *Navigator {
	return &Navigator{
		frame:    frame,
		viewport: vp,
		location: loc,
		cfg:      cfg.withDefaults(frame.Layout.Gap),
	}
}

// Enable allows navigation once every image sits at its final position.
func (n *Navigator) Enable() { n.enabled = true }

// Enabled reports whether navigation is active.
func (n *Navigator) Enabled() bool { return n.enabled }

// Featured returns the image that dominates the target viewport, if any.
func (n *Navigator) Featured() (int, bool) {
	if !n.enabled {
		return -1, false
	}
	return geometry.FeaturedIndex(n.frame.Placements, n.viewport.Bounds(false))
}

// FitRect returns the rectangle the viewport is fitted to when zooming to
// image i: the image plus its margin, extended downward by the caption
// reserve.
//
// The reserve is C/s layout units, where C is the caption height in pixels
// and s is the final pixels-per-unit scale. s is the more restrictive of
// the two fits, W/w for the width and (H-C)/h for the height left after
// the caption. When the viewport is no taller than the caption, the
// reserve falls back to the width fit alone.
func (n *Navigator) FitRect(i int) layout.Rect {
	r := n.frame.Placements[i].Rect.Expand(n.cfg.ZoomMargin, n.cfg.ZoomMargin)
	if n.cfg.CaptionLines <= 0 {
		return r
	}
	c := float64(n.cfg.CaptionLines) * n.cfg.CaptionLinePx
	w, h := n.viewport.PixelSize()
	if w <= 0 || r.Width <= 0 {
		return r
	}
	s := w / r.Width
	if h > c && r.Height > 0 {
		s = min(s, (h-c)/r.Height)
	}
	r.Height += c / s
	return r
}

// ZoomTo fits the viewport to image i and publishes its key as the
// fragment. Out-of-range indices are ignored.
func (n *Navigator) ZoomTo(i int, cause string) bool {
	if !n.enabled || i < 0 || i >= n.frame.Len() {
		return false
	}
	n.viewport.FitBounds(n.FitRect(i), false)
	n.location.ReplaceFragment(n.frame.Keys[i])
	observability.Navigation().OnNavigate(i, n.frame.Keys[i], cause)
	return true
}

// Home fits the whole grid.
func (n *Navigator) Home(immediate bool) {
	n.viewport.FitBounds(n.frame.Home, immediate)
}

// Click handles a quick click at pixel (px, py). A click on an image that is
// not featured zooms to it. On the featured image the outer thirds step to
// the previous or next image and the middle third does nothing.
func (n *Navigator) Click(px, py float64) (int, bool) {
	if !n.enabled {
		return -1, false
	}
	x, y := n.viewport.PointFromPixel(px, py)
	i, ok := geometry.HitTest(n.frame.Placements, x, y)
	if !ok {
		return -1, false
	}

	p := n.frame.Placements[i]
	if !geometry.IsFeatured(p.Rect, n.viewport.Bounds(false)) {
		return i, n.ZoomTo(i, CauseClick)
	}

	frac := (x - p.X) / p.Width
	switch {
	case frac < navPrev:
		return i - 1, n.ZoomTo(i-1, CauseClick)
	case frac > navNext:
		return i + 1, n.ZoomTo(i+1, CauseClick)
	}
	return -1, false
}

// Key handles a directional key relative to the featured image.
func (n *Navigator) Key(k Key) (int, bool) {
	cur, ok := n.Featured()
	if !ok {
		return -1, false
	}

	next := -1
	switch k {
	case KeyLeft:
		next = cur - 1
	case KeyRight:
		next = cur + 1
	case KeyUp, KeyDown:
		dir := 1
		if k == KeyUp {
			dir = -1
		}
		if next, ok = geometry.VerticalNeighbor(n.frame.Placements, cur, dir); !ok {
			return -1, false
		}
	default:
		return -1, false
	}
	return next, n.ZoomTo(next, CauseKey)
}
