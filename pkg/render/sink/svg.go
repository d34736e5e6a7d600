package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/mosaic/pkg/captions"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/viewer"
)

// DefaultWidth is the pixel width of rendered sheets.
const DefaultWidth = 1600

const sheetCSS = `
    .tile { fill: #2b2b2b; stroke: #3c3c3c; stroke-width: 1; transition: fill 0.2s ease; }
    a:hover .tile { fill: #3f3f3f; }
    .label { fill: #ffffff; font-family: sans-serif; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width    float64
	captions captions.Set
	labels   bool
}

func WithWidth(px int) SVGOption              { return func(r *svgRenderer) { r.width = float64(px) } }
func WithCaptions(set captions.Set) SVGOption { return func(r *svgRenderer) { r.captions = set } }
func WithoutLabels() SVGOption                { return func(r *svgRenderer) { r.labels = false } }

// RenderSVG draws the layout as a contact sheet.
func RenderSVG(res layout.Result, opts ...SVGOption) []byte {
	r := svgRenderer{width: DefaultWidth, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	frame := viewer.NewFrame(res)
	view := viewer.NewFixedView(frame.Home, r.width)
	w, h := view.PixelSize()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", sheetCSS)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="#111111"/>`+"\n")

	for i, p := range frame.Placements {
		x, y := view.PixelFromPoint(p.X, p.Y, true)
		pw, ph := p.Width*w/frame.Home.Width, p.Height*w/frame.Home.Width
		fmt.Fprintf(&buf, `  <a href="#%s">`+"\n", escape(frame.Keys[i]))
		fmt.Fprintf(&buf, `    <rect id="img-%s" class="tile" x="%.2f" y="%.2f" width="%.2f" height="%.2f"><title>%s</title></rect>`+"\n",
			escape(frame.Keys[i]), x, y, pw, ph, escape(p.ImageID))
		buf.WriteString("  </a>\n")
	}

	if r.labels {
		renderLabels(&buf, frame, view, r.captions)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// svgText collects labels from the viewer's label renderer.
type svgText struct {
	buf *bytes.Buffer
}

func (s svgText) Resize(int, int, float64) {}
func (s svgText) Clear()                   {}

func (s svgText) DrawText(text string, x, y, size, alpha float64) {
	fmt.Fprintf(s.buf, `  <text class="label" x="%.2f" y="%.2f" font-size="%.2f" fill-opacity="%.3f" text-anchor="middle" dominant-baseline="hanging">%s</text>`+"\n",
		x, y, size, alpha, escape(text))
}

func renderLabels(buf *bytes.Buffer, frame *viewer.Frame, view viewer.View, set captions.Set) {
	labels := viewer.NewLabels(frame, set, viewer.Config{})
	labels.Draw(svgText{buf: buf}, view)
}

func escape(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
