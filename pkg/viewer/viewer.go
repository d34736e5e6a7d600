package viewer

import (
	"github.com/matzehuels/mosaic/pkg/captions"
	"github.com/matzehuels/mosaic/pkg/geometry"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/observability"
)

// Viewer connects viewport lifecycle events to navigation, labels, tours
// and deep links.
type Viewer struct {
	frame    *Frame
	viewport Viewport
	surface  Surface
	location Location
	clock    Clock
	cfg      Config

	nav    *Navigator
	labels *Labels
	tour   *Tour

	items    []Item
	loaded   *barrier
	snapped  bool
	linkKey  string
	linkWait bool
}

// New returns a viewer for r. set may be empty; its line count reserves
// caption room below zoomed images unless cfg sets CaptionLines itself.
func New(r layout.Result, vp Viewport, s Surface, loc Location, clock Clock, set captions.Set, cfg Config) *Viewer {
	frame := NewFrame(r)
	if cfg.CaptionLines == 0 {
		cfg.CaptionLines = set.Lines
	}
	cfg = cfg.withDefaults(r.Gap)

	v := &Viewer{
		frame:    frame,
		viewport: vp,
		surface:  s,
		location: loc,
		clock:    clock,
		cfg:      cfg,
		nav:      NewNavigator(frame, vp, loc, cfg),
		labels:   NewLabels(frame, set, cfg),
		items:    make([]Item, frame.Len()),
		loaded:   newBarrier(frame.Len()),
	}
	v.tour = NewTour(clock, cfg.TourDwell, frame.Len(), func(i int) bool {
		return v.nav.ZoomTo(i, CauseTour)
	})
	return v
}

// Frame returns the margin-adjusted layout.
func (v *Viewer) Frame() *Frame { return v.frame }

// Navigator returns the navigation controller.
func (v *Viewer) Navigator() *Navigator { return v.nav }

// Tour returns the tour controller.
func (v *Viewer) Tour() *Tour { return v.tour }

// Labels returns the label renderer.
func (v *Viewer) Labels() *Labels { return v.labels }

// Revealed reports whether every image has loaded and been placed.
func (v *Viewer) Revealed() bool { return v.loaded.complete() }

// LinkPending reports whether a deep link is waiting to be followed.
func (v *Viewer) LinkPending() bool { return v.linkWait }

// Open opens every image at its start rectangle and fits the home view.
// A fragment present at this point is followed after the reveal.
func (v *Viewer) Open() {
	if key := v.location.Fragment(); key != "" {
		v.linkKey = key
		v.linkWait = true
	}
	v.viewport.SetAnimationTime(v.cfg.RevealAnimation)
	v.viewport.Open(v.frame.Sources(v.cfg.StartScale))
	v.nav.Home(true)
}

// ItemLoaded records the handle of image i. When the last image arrives,
// all images are shown and moved to their final rectangles at once.
func (v *Viewer) ItemLoaded(i int, item Item) {
	if i < 0 || i >= len(v.items) {
		return
	}
	if v.items[i] == nil {
		v.items[i] = item
	}
	if !v.loaded.mark(i) {
		return
	}
	v.reveal()
}

func (v *Viewer) reveal() {
	for i, item := range v.items {
		p := v.frame.Placements[i]
		item.SetOpacity(1)
		item.SetPosition(p.X, p.Y)
		item.SetWidth(p.Width)
	}
	v.nav.Enable()
	observability.Navigation().OnReveal(len(v.items))

	if v.linkWait {
		key := v.linkKey
		v.clock.AfterFunc(v.cfg.SettleDelay, func() { v.followLink(key) })
	}
}

func (v *Viewer) followLink(key string) {
	v.linkWait = false
	v.linkKey = ""
	if i, ok := v.frame.Index(key); ok {
		v.nav.ZoomTo(i, CauseLink)
	}
}

// ViewportChanged redraws labels and clears the fragment once no image is
// featured. Clearing is held back while a deep link is pending.
func (v *Viewer) ViewportChanged() {
	if !v.Revealed() {
		v.surface.Clear()
		return
	}
	v.labels.Draw(v.surface, v.viewport)

	if v.linkWait {
		return
	}
	if _, ok := geometry.FeaturedIndex(v.frame.Placements, v.viewport.Bounds(false)); ok {
		return
	}
	if v.location.Fragment() != "" {
		v.location.ReplaceFragment("")
	}
}

// Resize adjusts the overlay to a new viewport size.
func (v *Viewer) Resize(width, height int, ratio float64) {
	v.surface.Resize(width, height, ratio)
	v.ViewportChanged()
}

// Click handles a click or tap. Drags (quick false) are ignored.
func (v *Viewer) Click(px, py float64, quick bool) (int, bool) {
	if !quick {
		return -1, false
	}
	return v.nav.Click(px, py)
}

// Key handles a navigation key.
func (v *Viewer) Key(k Key) (int, bool) {
	v.interact()
	switch {
	case k.Directional():
		v.tour.Cancel()
		return v.nav.Key(k)
	case k == KeyTour:
		if !v.nav.Enabled() {
			return -1, false
		}
		cur, ok := v.nav.Featured()
		v.tour.Toggle(cur, ok)
		return v.tour.Index(), v.tour.Running()
	case k == KeyHome:
		v.tour.Cancel()
		v.nav.Home(false)
	}
	return -1, false
}

// PointerDown cancels a running tour.
func (v *Viewer) PointerDown() {
	v.interact()
	v.tour.Cancel()
}

// Wheel cancels a running tour.
func (v *Viewer) Wheel() {
	v.interact()
	v.tour.Cancel()
}

// interact switches to the snappier animation on the first user input.
func (v *Viewer) interact() {
	if v.snapped || !v.Revealed() {
		return
	}
	v.snapped = true
	v.viewport.SetAnimationTime(v.cfg.InteractiveAnimation)
}
