// Package viewer drives interactive navigation over a computed layout.
//
// The package owns no rendering. It talks to an external pan/zoom engine
// through a small set of contracts:
//
//   - [Viewport] opens the images, fits the camera to rectangles, reports
//     the visible bounds and converts between pixels and layout units.
//   - [Item] is the handle of one opened image, delivered when it loads.
//   - [Surface] is a text overlay sized to the viewport.
//   - [Location] stores the deep-link fragment (an image key).
//   - [Clock] schedules deferred work (tour steps, deep-link settle delay).
//
// [Viewer] wires these together: it opens every image at a tiny start
// rectangle with zero opacity, waits until all of them have loaded, then
// reveals the grid in one step. Navigation, labels, tours and deep links are
// handled by [Navigator], [Labels] and [Tour].
//
// # Threading
//
// A Viewer is not safe for concurrent use. Every method, including the
// callbacks passed to [Clock.AfterFunc], must run on one event loop. Clock
// implementations backed by real timers are expected to marshal the
// callback onto that loop.
//
// # Modes
//
// Whether the user is looking at the overview or at a single image is never
// stored. It is derived on demand from the viewport bounds with
// [geometry.FeaturedIndex], so it cannot drift from the camera.
package viewer
