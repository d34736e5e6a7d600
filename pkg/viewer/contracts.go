package viewer

import (
	"time"

	"github.com/matzehuels/mosaic/pkg/layout"
)

// Source is one image to open in the viewport.
type Source struct {
	Index   int
	ID      string
	Rect    layout.Rect
	Opacity float64
}

// View projects layout coordinates onto pixels.
type View interface {
	// Bounds returns the visible rectangle in layout units. With current
	// set it reports the animated position, otherwise the animation target.
	Bounds(current bool) layout.Rect

	// PixelSize returns the viewport size in CSS pixels.
	PixelSize() (width, height float64)

	// PixelFromPoint converts a layout point to viewport pixels.
	PixelFromPoint(x, y float64, current bool) (px, py float64)
}

// Viewport is the external pan/zoom engine.
type Viewport interface {
	View

	// Open starts loading the given sources. The engine reports each
	// loaded image back through [Viewer.ItemLoaded].
	Open(sources []Source)

	// FitBounds moves the camera so r is fully visible.
	FitBounds(r layout.Rect, immediate bool)

	// PointFromPixel converts viewport pixels to a layout point.
	PointFromPixel(px, py float64) (x, y float64)

	// SetAnimationTime sets the duration of camera animations.
	SetAnimationTime(d time.Duration)
}

// Item is the handle of one loaded image.
type Item interface {
	SetOpacity(opacity float64)
	SetPosition(x, y float64)
	SetWidth(width float64)
}

// Surface is the label overlay.
type Surface interface {
	// Resize sets the size in CSS pixels and the device pixel ratio.
	Resize(width, height int, ratio float64)
	Clear()
	// DrawText draws text horizontally centred on x with its top at y.
	DrawText(text string, x, y, size, alpha float64)
}

// Location holds the deep-link fragment.
type Location interface {
	Fragment() string
	// ReplaceFragment sets the fragment without adding a history entry.
	ReplaceFragment(fragment string)
}

// Stopper cancels a scheduled callback. *time.Timer satisfies it.
type Stopper interface {
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

// Key is a navigation command decoded from keyboard input.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyTour
	KeyHome
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyTour:
		return "tour"
	case KeyHome:
		return "home"
	default:
		return "none"
	}
}

// Directional reports whether k moves between images.
func (k Key) Directional() bool {
	return k >= KeyLeft && k <= KeyDown
}

// Navigation causes reported to observability hooks.
const (
	CauseClick = "click"
	CauseKey   = "key"
	CauseTour  = "tour"
	CauseLink  = "link"
)
