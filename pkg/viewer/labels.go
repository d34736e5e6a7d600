package viewer

import (
	"github.com/matzehuels/mosaic/pkg/captions"
	"github.com/matzehuels/mosaic/pkg/gallery"
)

// minAlpha is the opacity below which labels are not drawn at all.
const minAlpha = 0.02

// Labels draws one text label under each image.
//
// The label size is fixed in layout units, so it grows as the user zooms
// in. Above LabelMaxPx it is clamped; below LabelMinPx every label fades
// out in proportion to its size.
type Labels struct {
	frame  *Frame
	texts  []string
	font   float64
	minPx  float64
	maxPx  float64
	anchor float64
}

// NewLabels resolves label text for every image. When set carries
// captions, the caption title is used and images without one get no
// label. Otherwise the text is derived from the image id.
func NewLabels(frame *Frame, set captions.Set, cfg Config) *Labels {
	gap := frame.Layout.Gap
	cfg = cfg.withDefaults(gap)

	texts := make([]string, frame.Len())
	for i, p := range frame.Placements {
		if set.Empty() {
			texts[i] = gallery.Label(p.ImageID)
			continue
		}
		texts[i], _ = set.Title(frame.Keys[i])
	}
	return &Labels{
		frame:  frame,
		texts:  texts,
		font:   cfg.LabelFont,
		minPx:  cfg.LabelMinPx,
		maxPx:  cfg.LabelMaxPx,
		anchor: gap * 0.15,
	}
}

// Text returns the label of image i.
func (l *Labels) Text(i int) string { return l.texts[i] }

// Style returns the font size in pixels and the opacity for the current
// zoom. Labels should be skipped when ok is false.
func (l *Labels) Style(v View) (size, alpha float64, ok bool) {
	vb := v.Bounds(true)
	w, _ := v.PixelSize()
	if vb.Width <= 0 || w <= 0 {
		return 0, 0, false
	}
	px := l.font * w / vb.Width

	alpha = 1
	if px < l.minPx {
		alpha = max(0, px/l.minPx)
	}
	if alpha < minAlpha {
		return 0, 0, false
	}
	return min(px, l.maxPx), alpha, true
}

// Draw clears s and draws every label whose anchor is in view. The anchor
// is centred under the image; horizontally it may sit up to one image
// width outside the view so labels do not pop at the edges.
func (l *Labels) Draw(s Surface, v View) int {
	s.Clear()
	size, alpha, ok := l.Style(v)
	if !ok {
		return 0
	}

	vb := v.Bounds(true)
	drawn := 0
	for i, p := range l.frame.Placements {
		text := l.texts[i]
		if text == "" {
			continue
		}
		cx := p.CenterX()
		ty := p.Bottom() + l.anchor
		if cx < vb.X-p.Width || cx > vb.Right()+p.Width {
			continue
		}
		if ty < vb.Y || ty > vb.Bottom() {
			continue
		}
		px, py := v.PixelFromPoint(cx, ty, true)
		s.DrawText(text, px, py, size, alpha)
		drawn++
	}
	return drawn
}
