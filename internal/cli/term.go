package cli

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/viewer"
)

// The terminal is treated as a canvas of virtual pixels so label sizes and
// zoom levels behave as they would on a screen.
const (
	cellW = 8  // virtual pixels per column
	cellH = 16 // virtual pixels per row
)

// =============================================================================
// termViewport - pan/zoom camera over a character grid
// =============================================================================

// termViewport implements viewer.Viewport for the terminal. Camera moves
// ease out over the animation time; the model redraws on every tick.
type termViewport struct {
	cols, rows int
	now        func() time.Time

	anim      time.Duration
	from      layout.Rect
	target    layout.Rect
	requested layout.Rect
	start     time.Time

	items []*termItem
}

func newTermViewport(cols, rows int, now func() time.Time) *termViewport {
	if now == nil {
		now = time.Now
	}
	return &termViewport{cols: cols, rows: rows, now: now}
}

func (v *termViewport) PixelSize() (float64, float64) {
	return float64(v.cols * cellW), float64(v.rows * cellH)
}

func (v *termViewport) Bounds(current bool) layout.Rect {
	if !current || v.anim <= 0 || v.start.IsZero() {
		return v.target
	}
	t := float64(v.now().Sub(v.start)) / float64(v.anim)
	if t >= 1 {
		return v.target
	}
	t = 1 - math.Pow(1-max(t, 0), 3)
	return layout.Rect{
		X:      lerp(v.from.X, v.target.X, t),
		Y:      lerp(v.from.Y, v.target.Y, t),
		Width:  lerp(v.from.Width, v.target.Width, t),
		Height: lerp(v.from.Height, v.target.Height, t),
	}
}

// Animating reports whether the camera is still moving.
func (v *termViewport) Animating() bool {
	return !v.start.IsZero() && v.now().Sub(v.start) < v.anim
}

func (v *termViewport) Open(sources []viewer.Source) {
	v.items = make([]*termItem, len(sources))
	for i, s := range sources {
		aspect := 0.0
		if s.Rect.Width > 0 {
			aspect = s.Rect.Height / s.Rect.Width
		}
		v.items[i] = &termItem{
			id:      s.ID,
			x:       s.Rect.X,
			y:       s.Rect.Y,
			width:   s.Rect.Width,
			aspect:  aspect,
			opacity: s.Opacity,
		}
	}
}

func (v *termViewport) FitBounds(r layout.Rect, immediate bool) {
	v.requested = r
	v.moveTo(v.fit(r), immediate)
}

func (v *termViewport) moveTo(r layout.Rect, immediate bool) {
	if immediate {
		v.from, v.target, v.start = r, r, time.Time{}
		return
	}
	v.from = v.Bounds(true)
	v.target = r
	v.start = v.now()
}

// fit grows r to the viewport aspect ratio around its centre.
func (v *termViewport) fit(r layout.Rect) layout.Rect {
	w, h := v.PixelSize()
	if w <= 0 || h <= 0 || r.Width <= 0 || r.Height <= 0 {
		return r
	}
	aspect := w / h
	b := r
	if r.Width/r.Height > aspect {
		b.Height = r.Width / aspect
	} else {
		b.Width = r.Height * aspect
	}
	b.X = r.CenterX() - b.Width/2
	b.Y = r.CenterY() - b.Height/2
	return b
}

func (v *termViewport) PixelFromPoint(x, y float64, current bool) (float64, float64) {
	b := v.Bounds(current)
	s := v.scale(b)
	return (x - b.X) * s, (y - b.Y) * s
}

func (v *termViewport) PointFromPixel(px, py float64) (float64, float64) {
	b := v.Bounds(true)
	s := v.scale(b)
	if s == 0 {
		return b.X, b.Y
	}
	return b.X + px/s, b.Y + py/s
}

func (v *termViewport) SetAnimationTime(d time.Duration) { v.anim = d }

func (v *termViewport) scale(b layout.Rect) float64 {
	w, _ := v.PixelSize()
	if b.Width <= 0 {
		return 0
	}
	return w / b.Width
}

// resize keeps the last requested rectangle in view at the new size.
func (v *termViewport) resize(cols, rows int) {
	v.cols, v.rows = max(cols, 1), max(rows, 1)
	if v.requested.Width > 0 {
		v.moveTo(v.fit(v.requested), true)
	}
}

// pan shifts the camera by a pixel delta, following a drag.
func (v *termViewport) pan(dx, dy float64) {
	b := v.Bounds(true)
	s := v.scale(b)
	if s == 0 {
		return
	}
	r := b.Translate(-dx/s, -dy/s)
	v.requested = r
	v.moveTo(r, true)
}

// zoom scales the camera target by factor, keeping pixel (px, py) fixed.
func (v *termViewport) zoom(factor, px, py float64) {
	if factor <= 0 {
		return
	}
	b := v.target
	w, h := v.PixelSize()
	if w <= 0 || h <= 0 {
		return
	}
	s := v.scale(b)
	x, y := b.X+px/s, b.Y+py/s
	nw, nh := b.Width/factor, b.Height/factor
	r := layout.Rect{X: x - px/w*nw, Y: y - py/h*nh, Width: nw, Height: nh}
	v.requested = r
	v.moveTo(r, false)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// =============================================================================
// termItem - one image tile
// =============================================================================

type termItem struct {
	id      string
	x, y    float64
	width   float64
	aspect  float64
	opacity float64
}

func (it *termItem) SetOpacity(o float64) { it.opacity = o }

func (it *termItem) SetPosition(x, y float64) {
	it.x = x
	it.y = y
}

func (it *termItem) SetWidth(w float64) { it.width = w }

func (it *termItem) rect() layout.Rect {
	return layout.Rect{X: it.x, Y: it.y, Width: it.width, Height: it.width * it.aspect}
}

// =============================================================================
// termSurface - label overlay
// =============================================================================

type drawnText struct {
	text        string
	x, y        float64
	size, alpha float64
}

// termSurface records label draws; the model places them on the grid.
type termSurface struct {
	width, height int
	ratio         float64
	texts         []drawnText
}

func (s *termSurface) Resize(width, height int, ratio float64) {
	s.width, s.height, s.ratio = width, height, ratio
	s.texts = s.texts[:0]
}

func (s *termSurface) Clear() { s.texts = s.texts[:0] }

func (s *termSurface) DrawText(text string, x, y, size, alpha float64) {
	s.texts = append(s.texts, drawnText{text: text, x: x, y: y, size: size, alpha: alpha})
}

// =============================================================================
// termLocation - the deep-link fragment shown in the status bar
// =============================================================================

type termLocation struct {
	fragment string
}

func (l *termLocation) Fragment() string { return l.fragment }

func (l *termLocation) ReplaceFragment(f string) { l.fragment = f }

// =============================================================================
// teaClock - timers delivered through the bubbletea event loop
// =============================================================================

// timerMsg carries a scheduled callback into Update, so viewer state is
// only touched from the event loop.
type timerMsg struct {
	fn func()
}

type teaClock struct {
	send func(tea.Msg)
}

func (c teaClock) AfterFunc(d time.Duration, f func()) viewer.Stopper {
	return time.AfterFunc(d, func() { c.send(timerMsg{fn: f}) })
}
