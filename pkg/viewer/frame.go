package viewer

import (
	"github.com/matzehuels/mosaic/pkg/gallery"
	"github.com/matzehuels/mosaic/pkg/layout"
)

// marginShare is the outer margin around the grid, as a share of each extent.
const marginShare = 0.01

// Frame is a layout placed inside its outer margin, in viewport coordinates.
type Frame struct {
	Layout layout.Result

	// Placements are the layout placements shifted by the margin.
	Placements []layout.Placement

	// Home is the whole grid including margins.
	Home layout.Rect

	MarginX, MarginY float64

	// Keys are the stable image keys, in placement order.
	Keys []string

	index map[string]int
}

// NewFrame surrounds r with a margin of 1% of its width and height.
func NewFrame(r layout.Result) *Frame {
	gx := r.TotalWidth * marginShare
	gy := r.TotalHeight * marginShare

	f := &Frame{
		Layout:     r,
		Placements: make([]layout.Placement, len(r.Placements)),
		Home:       layout.Rect{Width: r.TotalWidth + 2*gx, Height: r.TotalHeight + 2*gy},
		MarginX:    gx,
		MarginY:    gy,
		Keys:       make([]string, len(r.Placements)),
	}
	ids := make([]string, len(r.Placements))
	for i, p := range r.Placements {
		p.Rect = p.Rect.Translate(gx, gy)
		f.Placements[i] = p
		f.Keys[i] = gallery.Key(p.ImageID)
		ids[i] = p.ImageID
	}
	f.index = gallery.IndexByKey(ids)
	return f
}

// Len returns the number of images.
func (f *Frame) Len() int { return len(f.Placements) }

// Index looks up an image by its stable key.
func (f *Frame) Index(key string) (int, bool) {
	i, ok := f.index[key]
	return i, ok
}

// Start returns image i's pre-reveal rectangle: centred on its final
// rectangle and scaled by scale.
func (f *Frame) Start(i int, scale float64) layout.Rect {
	p := f.Placements[i]
	w, h := p.Width*scale, p.Height*scale
	return layout.Rect{X: p.CenterX() - w/2, Y: p.CenterY() - h/2, Width: w, Height: h}
}

// Sources returns the start sources for every image.
func (f *Frame) Sources(scale float64) []Source {
	out := make([]Source, len(f.Placements))
	for i, p := range f.Placements {
		out[i] = Source{Index: i, ID: p.ImageID, Rect: f.Start(i, scale)}
	}
	return out
}
