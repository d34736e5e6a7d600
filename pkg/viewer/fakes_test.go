package viewer

import (
	"fmt"
	"sort"
	"time"

	"github.com/matzehuels/mosaic/pkg/captions"
	"github.com/matzehuels/mosaic/pkg/layout"
)

var captionsNone captions.Set

// fakeViewport fits bounds instantly, keeping the pixel aspect ratio.
type fakeViewport struct {
	w, h       float64
	bounds     layout.Rect
	fits       []layout.Rect
	opened     []Source
	animations []time.Duration
}

func newFakeViewport(w, h float64) *fakeViewport {
	return &fakeViewport{w: w, h: h, bounds: layout.Rect{Width: 1, Height: h / w}}
}

func (f *fakeViewport) Open(s []Source)                  { f.opened = s }
func (f *fakeViewport) Bounds(bool) layout.Rect          { return f.bounds }
func (f *fakeViewport) PixelSize() (float64, float64)    { return f.w, f.h }
func (f *fakeViewport) SetAnimationTime(d time.Duration) { f.animations = append(f.animations, d) }

func (f *fakeViewport) FitBounds(r layout.Rect, _ bool) {
	f.fits = append(f.fits, r)
	aspect := f.w / f.h
	b := r
	if r.Width/r.Height > aspect {
		b.Height = r.Width / aspect
	} else {
		b.Width = r.Height * aspect
	}
	b.X = r.CenterX() - b.Width/2
	b.Y = r.CenterY() - b.Height/2
	f.bounds = b
}

func (f *fakeViewport) PixelFromPoint(x, y float64, _ bool) (float64, float64) {
	s := f.w / f.bounds.Width
	return (x - f.bounds.X) * s, (y - f.bounds.Y) * s
}

func (f *fakeViewport) PointFromPixel(px, py float64) (float64, float64) {
	s := f.w / f.bounds.Width
	return f.bounds.X + px/s, f.bounds.Y + py/s
}

type fakeItem struct {
	opacity float64
	x, y, w float64
	moves   int
}

func (i *fakeItem) SetOpacity(o float64) { i.opacity = o }
func (i *fakeItem) SetWidth(w float64)   { i.w = w }

func (i *fakeItem) SetPosition(x, y float64) {
	i.x, i.y = x, y
	i.moves++
}

type drawnText struct {
	text        string
	x, y        float64
	size, alpha float64
}

type fakeSurface struct {
	width, height int
	ratio         float64
	clears        int
	texts         []drawnText
}

func (s *fakeSurface) Resize(w, h int, ratio float64) { s.width, s.height, s.ratio = w, h, ratio }

func (s *fakeSurface) Clear() {
	s.clears++
	s.texts = nil
}

func (s *fakeSurface) DrawText(text string, x, y, size, alpha float64) {
	s.texts = append(s.texts, drawnText{text, x, y, size, alpha})
}

type fakeLocation struct {
	fragment string
	history  []string
}

func (l *fakeLocation) Fragment() string { return l.fragment }

func (l *fakeLocation) ReplaceFragment(f string) {
	l.fragment = f
	l.history = append(l.history, f)
}

// fakeClock runs callbacks when Advance moves time past their deadline.
// With leaky set, Stop reports success but the callback still fires.
type fakeClock struct {
	now    time.Duration
	timers []*fakeTimer
	leaky  bool
	seq    int
}

type fakeTimer struct {
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
	clock   *fakeClock
}

func (t *fakeTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	if !t.clock.leaky {
		t.stopped = true
	}
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Stopper {
	c.seq++
	t := &fakeTimer{at: c.now + d, seq: c.seq, f: f, clock: c}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	end := c.now + d
	for {
		var due []*fakeTimer
		for _, t := range c.timers {
			if !t.fired && !t.stopped && t.at <= end {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			break
		}
		sort.Slice(due, func(i, j int) bool {
			if due[i].at != due[j].at {
				return due[i].at < due[j].at
			}
			return due[i].seq < due[j].seq
		})
		t := due[0]
		c.now = t.at
		t.fired = true
		t.f()
	}
	c.now = end
}

// pending returns the number of timers that have neither fired nor stopped.
func (c *fakeClock) pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// scenario is the five-image gallery laid out for a 1.6 viewport.
func scenario() layout.Result {
	sizes := [][2]float64{{4, 3}, {1, 1}, {3, 2}, {2, 3}, {4, 1}}
	images := make([]layout.Image, len(sizes))
	for i, s := range sizes {
		images[i] = layout.Image{ID: fmt.Sprintf("img%d.jpg", i), Width: s[0], Height: s[1]}
	}
	return layout.Compute(images, 1.6)
}

// grid builds a result from explicit rectangles.
func grid(rows ...[]layout.Rect) layout.Result {
	r := layout.Result{TotalWidth: 1, Gap: 0.01, RowCount: len(rows)}
	n := 0
	for row, rects := range rows {
		for _, rect := range rects {
			r.Placements = append(r.Placements, layout.Placement{
				ImageID: fmt.Sprintf("img%d.jpg", n),
				Rect:    rect,
				Row:     row,
			})
			r.TotalHeight = max(r.TotalHeight, rect.Bottom())
			n++
		}
	}
	return r
}

type harness struct {
	vp      *fakeViewport
	surface *fakeSurface
	loc     *fakeLocation
	clock   *fakeClock
	items   []*fakeItem
	viewer  *Viewer
}

func newHarness(r layout.Result, fragment string) *harness {
	h := &harness{
		vp:      newFakeViewport(1600, 1000),
		surface: &fakeSurface{},
		loc:     &fakeLocation{fragment: fragment},
		clock:   &fakeClock{},
	}
	h.viewer = New(r, h.vp, h.surface, h.loc, h.clock, captionsNone, Config{})
	return h
}

// loadAll opens the viewer and delivers every item.
func (h *harness) loadAll() {
	h.viewer.Open()
	for i := range h.vp.opened {
		it := &fakeItem{}
		h.items = append(h.items, it)
		h.viewer.ItemLoaded(i, it)
	}
}

// visited returns the fragment history.
func (h *harness) visited() []string { return h.loc.history }
