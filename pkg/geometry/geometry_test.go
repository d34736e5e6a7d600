package geometry

import (
	"math"
	"testing"

	"github.com/matzehuels/mosaic/pkg/layout"
)

func rect(x, y, w, h float64) layout.Rect {
	return layout.Rect{X: x, Y: y, Width: w, Height: h}
}

func place(id string, row int, r layout.Rect) layout.Placement {
	return layout.Placement{ImageID: id, Rect: r, Row: row}
}

func TestVisibleFraction(t *testing.T) {
	tests := []struct {
		name string
		r    layout.Rect
		view layout.Rect
		want float64
	}{
		{"identical", rect(0, 0, 2, 3), rect(0, 0, 2, 3), 1},
		{"fully inside view", rect(1, 1, 1, 1), rect(0, 0, 10, 10), 1},
		{"half visible", rect(0, 0, 2, 2), rect(1, 0, 5, 5), 0.5},
		{"quarter visible", rect(0, 0, 2, 2), rect(1, 1, 5, 5), 0.25},
		{"disjoint", rect(0, 0, 1, 1), rect(5, 5, 1, 1), 0},
		{"touching edge", rect(0, 0, 1, 1), rect(1, 0, 1, 1), 0},
		{"zero area", rect(0, 0, 0, 1), rect(0, 0, 1, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisibleFraction(tt.r, tt.view); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("VisibleFraction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFeatured(t *testing.T) {
	tests := []struct {
		name string
		r    layout.Rect
		view layout.Rect
		want bool
	}{
		{"fills view", rect(0, 0, 1, 1), rect(-0.02, -0.02, 1.04, 1.04), true},
		{"fills width only", rect(0, 0.4, 1, 0.2), rect(-0.05, 0, 1.1, 1), true},
		{"fills height only", rect(0.4, 0, 0.2, 1), rect(0, -0.05, 1, 1.1), true},
		{"small in view", rect(0, 0, 0.1, 0.1), rect(0, 0, 1, 1), false},
		{"large but clipped", rect(0, 0, 1, 1), rect(0.2, 0, 1, 1), false},
		{"exactly 90 percent visible", rect(0, 0, 1, 1), rect(0.1, 0, 1, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFeatured(tt.r, tt.view); got != tt.want {
				t.Errorf("IsFeatured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFeaturedRequiresVisibility(t *testing.T) {
	// Huge coverage ratios never compensate for a low visible fraction.
	r := rect(0, 0, 10, 10)
	views := []layout.Rect{
		rect(0, 0, 1, 1),
		rect(5, 5, 2, 2),
		rect(-1, -1, 5, 5),
	}
	for _, v := range views {
		if VisibleFraction(r, v) > FeaturedVisible {
			continue
		}
		if IsFeatured(r, v) {
			t.Errorf("IsFeatured(%v, %v) = true with fraction %v", r, v, VisibleFraction(r, v))
		}
	}
}

func TestFeaturedIndex(t *testing.T) {
	placements := []layout.Placement{
		place("a", 0, rect(0, 0, 0.3, 0.2)),
		place("b", 0, rect(0.31, 0, 0.3, 0.2)),
		place("c", 1, rect(0, 0.21, 0.5, 0.3)),
	}

	tests := []struct {
		name   string
		view   layout.Rect
		want   int
		wantOK bool
	}{
		{"overview", rect(0, 0, 1, 0.6), -1, false},
		{"zoomed on b", placements[1].Expand(0.02, 0.02), 1, true},
		{"zoomed on c", placements[2].Expand(0.02, 0.02), 2, true},
		{"empty area", rect(5, 5, 0.1, 0.1), -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FeaturedIndex(placements, tt.view)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FeaturedIndex() = %d, %v; want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFeaturedIndexTieLowestWins(t *testing.T) {
	// Two identical placements stacked on top of each other tie exactly.
	r := rect(0, 0, 1, 1)
	placements := []layout.Placement{place("x", 0, rect(5, 5, 1, 1)), place("a", 0, r), place("b", 0, r)}
	got, ok := FeaturedIndex(placements, r.Expand(0.02, 0.02))
	if !ok || got != 1 {
		t.Errorf("FeaturedIndex() = %d, %v; want 1, true", got, ok)
	}
}

func TestVerticalNeighbor(t *testing.T) {
	// Row 0: a [0,0.4], b [0.45,1.0]
	// Row 1: c [0.1,0.5], d [0.55,0.9]
	// Row 2: e [0.8,1.0]
	placements := []layout.Placement{
		place("a", 0, rect(0, 0, 0.4, 0.2)),
		place("b", 0, rect(0.45, 0, 0.55, 0.2)),
		place("c", 1, rect(0.1, 0.21, 0.4, 0.2)),
		place("d", 1, rect(0.55, 0.21, 0.35, 0.2)),
		place("e", 2, rect(0.8, 0.42, 0.2, 0.2)),
	}

	tests := []struct {
		name      string
		from, dir int
		want      int
		wantOK    bool
	}{
		{"a down overlaps c", 0, 1, 2, true},
		{"b down overlaps d", 1, 1, 3, true},
		{"c up overlaps a most", 2, -1, 0, true},
		{"d up overlaps b", 3, -1, 1, true},
		{"c down no overlap nearest centre", 2, 1, 4, true},
		{"e up overlaps d", 4, -1, 3, true},
		{"top row up", 0, -1, -1, false},
		{"bottom row down", 4, 1, -1, false},
		{"out of range", 9, 1, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := VerticalNeighbor(placements, tt.from, tt.dir)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("VerticalNeighbor(%d, %d) = %d, %v; want %d, %v", tt.from, tt.dir, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestVerticalNeighborOnLayout(t *testing.T) {
	images := []layout.Image{
		{ID: "a", Width: 4, Height: 3},
		{ID: "b", Width: 1, Height: 1},
		{ID: "c", Width: 3, Height: 2},
		{ID: "d", Width: 2, Height: 3},
		{ID: "e", Width: 4, Height: 1},
	}
	res := layout.Compute(images, 1.6)

	for i, p := range res.Placements {
		if p.Row == 0 {
			if _, ok := VerticalNeighbor(res.Placements, i, -1); ok {
				t.Errorf("placement %d in top row has an upper neighbour", i)
			}
		}
		if p.Row == res.RowCount-1 {
			if _, ok := VerticalNeighbor(res.Placements, i, 1); ok {
				t.Errorf("placement %d in bottom row has a lower neighbour", i)
			}
		}
		if p.Row < res.RowCount-1 {
			j, ok := VerticalNeighbor(res.Placements, i, 1)
			if !ok || res.Placements[j].Row != p.Row+1 {
				t.Errorf("placement %d: lower neighbour %d (ok=%v) not in row %d", i, j, ok, p.Row+1)
			}
		}
	}
}

func TestHitTest(t *testing.T) {
	placements := []layout.Placement{
		place("a", 0, rect(0, 0, 0.4, 0.2)),
		place("b", 0, rect(0.45, 0, 0.55, 0.2)),
	}
	tests := []struct {
		name   string
		x, y   float64
		want   int
		wantOK bool
	}{
		{"inside a", 0.1, 0.1, 0, true},
		{"inside b", 0.9, 0.19, 1, true},
		{"in gap", 0.42, 0.1, -1, false},
		{"below", 0.1, 0.5, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HitTest(placements, tt.x, tt.y)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("HitTest(%v, %v) = %d, %v; want %d, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
