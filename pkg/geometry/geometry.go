// Package geometry answers spatial questions about laid-out images relative
// to the currently visible viewport: how much of an image is visible,
// whether it is the subject of the view, and which image sits above or
// below another.
//
// All functions are pure and operate on [layout.Rect] values in layout
// coordinates.
package geometry

import (
	"math"

	"github.com/matzehuels/mosaic/pkg/layout"
)

const (
	// FeaturedVisible is the visible fraction an image must exceed to be featured.
	FeaturedVisible = 0.9

	// FeaturedCoverage is the share of the viewport width or height a
	// featured image must exceed.
	FeaturedCoverage = 0.8
)

// VisibleFraction returns the share of r's area that lies inside view, in
// [0, 1]. Rectangles that only touch along an edge share nothing.
func VisibleFraction(r, view layout.Rect) float64 {
	in, ok := r.Intersect(view)
	if !ok || r.Area() <= 0 {
		return 0
	}
	return min(1, in.Area()/r.Area())
}

// IsFeatured reports whether r is nearly fully visible and fills nearly the
// whole view in at least one dimension.
func IsFeatured(r, view layout.Rect) bool {
	if VisibleFraction(r, view) <= FeaturedVisible {
		return false
	}
	return r.Width/view.Width > FeaturedCoverage || r.Height/view.Height > FeaturedCoverage
}

// FeaturedIndex returns the featured placement with the largest visible
// fraction. On equal fractions the lowest index wins.
func FeaturedIndex(placements []layout.Placement, view layout.Rect) (int, bool) {
	best, bestFrac := -1, 0.0
	for i, p := range placements {
		if !IsFeatured(p.Rect, view) {
			continue
		}
		if f := VisibleFraction(p.Rect, view); f > bestFrac {
			best, bestFrac = i, f
		}
	}
	return best, best >= 0
}

// VerticalNeighbor finds the image in the row above (direction -1) or below
// (direction +1) placements[from]. It prefers the candidate with the
// largest horizontal overlap and falls back to the nearest horizontal
// centre when nothing overlaps. It returns false when the row does not exist.
func VerticalNeighbor(placements []layout.Placement, from, direction int) (int, bool) {
	if from < 0 || from >= len(placements) {
		return -1, false
	}
	src := placements[from]
	target := src.Row + direction

	best, bestOverlap := -1, 0.0
	nearest, nearestDist := -1, math.Inf(1)
	for i, p := range placements {
		if p.Row != target {
			continue
		}
		if overlap := min(src.Right(), p.Right()) - max(src.X, p.X); overlap > bestOverlap {
			best, bestOverlap = i, overlap
		}
		if d := math.Abs(p.CenterX() - src.CenterX()); d < nearestDist {
			nearest, nearestDist = i, d
		}
	}
	if best >= 0 {
		return best, true
	}
	return nearest, nearest >= 0
}

// HitTest returns the first placement containing the point (x, y).
func HitTest(placements []layout.Placement, x, y float64) (int, bool) {
	for i, p := range placements {
		if p.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}
