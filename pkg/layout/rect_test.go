package layout

import "testing"

func TestRectEdges(t *testing.T) {
	tests := []struct {
		name       string
		rect       Rect
		wantRight  float64
		wantBottom float64
		wantCX     float64
		wantCY     float64
	}{
		{
			name:       "from origin",
			rect:       Rect{Width: 100, Height: 50},
			wantRight:  100,
			wantBottom: 50,
			wantCX:     50,
			wantCY:     25,
		},
		{
			name:       "offset",
			rect:       Rect{X: 20, Y: 10, Width: 60, Height: 40},
			wantRight:  80,
			wantBottom: 50,
			wantCX:     50,
			wantCY:     30,
		},
		{
			name:       "zero size",
			rect:       Rect{X: 5, Y: 5},
			wantRight:  5,
			wantBottom: 5,
			wantCX:     5,
			wantCY:     5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Right(); got != tt.wantRight {
				t.Errorf("Right() = %v, want %v", got, tt.wantRight)
			}
			if got := tt.rect.Bottom(); got != tt.wantBottom {
				t.Errorf("Bottom() = %v, want %v", got, tt.wantBottom)
			}
			if got := tt.rect.CenterX(); got != tt.wantCX {
				t.Errorf("CenterX() = %v, want %v", got, tt.wantCX)
			}
			if got := tt.rect.CenterY(); got != tt.wantCY {
				t.Errorf("CenterY() = %v, want %v", got, tt.wantCY)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 10}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right corner", 30, 20, true},
		{"left of", 9.99, 15, false},
		{"below", 15, 20.01, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		name   string
		b      Rect
		want   Rect
		wantOK bool
	}{
		{"identical", a, a, true},
		{"partial", Rect{X: 5, Y: 5, Width: 10, Height: 10}, Rect{X: 5, Y: 5, Width: 5, Height: 5}, true},
		{"contained", Rect{X: 2, Y: 3, Width: 1, Height: 1}, Rect{X: 2, Y: 3, Width: 1, Height: 1}, true},
		{"touching edge", Rect{X: 10, Y: 0, Width: 5, Height: 5}, Rect{}, false},
		{"disjoint", Rect{X: 20, Y: 20, Width: 5, Height: 5}, Rect{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := a.Intersect(tt.b)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Intersect() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRectExpand(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	got := r.Expand(0.02, 0.1)
	want := Rect{X: 8, Y: 15, Width: 104, Height: 60}
	if got != want {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
}
