package viewer

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mosaic/pkg/observability"
)

// Tour steps through the images on a timer.
//
// Every run gets a fresh token. A scheduled step carries the token of the
// run that scheduled it and does nothing if that run has since ended, so a
// timer that fires after cancellation is harmless.
type Tour struct {
	clock Clock
	dwell time.Duration
	count int
	zoom  func(i int) bool

	run   uuid.UUID
	timer Stopper
	index int
}

// NewTour returns an idle tour over count images. zoom performs one step.
func NewTour(clock Clock, dwell time.Duration, count int, zoom func(i int) bool) *Tour {
	return &Tour{clock: clock, dwell: dwell, count: count, zoom: zoom, index: -1}
}

// Running reports whether a tour is in progress.
func (t *Tour) Running() bool { return t.run != uuid.Nil }

// Index returns the image shown by the current step, or -1.
func (t *Tour) Index() int { return t.index }

// Toggle cancels a running tour or starts one after the featured image.
// It returns whether a tour is running afterwards.
func (t *Tour) Toggle(featured int, ok bool) bool {
	if t.Cancel() {
		return false
	}
	from := 0
	if ok {
		from = featured + 1
	}
	t.Start(from)
	return t.Running()
}

// Start begins a tour at image from, cancelling any running tour.
func (t *Tour) Start(from int) {
	t.Cancel()
	t.run = uuid.New()
	observability.Navigation().OnTour(true, from)
	t.step(t.run, from)
}

// Cancel stops a running tour and reports whether one was running.
func (t *Tour) Cancel() bool {
	if !t.Running() {
		return false
	}
	t.stop()
	return true
}

func (t *Tour) stop() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.run = uuid.Nil
	observability.Navigation().OnTour(false, t.index)
	t.index = -1
}

func (t *Tour) step(run uuid.UUID, i int) {
	if run != t.run {
		return
	}
	if i < 0 || i >= t.count || !t.zoom(i) {
		t.stop()
		return
	}
	t.index = i
	t.timer = t.clock.AfterFunc(t.dwell, func() { t.step(run, i+1) })
}
