// Package sink renders a computed layout to output formats.
//
// A "sink" turns a [layout.Result] into bytes. All sinks draw the grid the
// way the viewer shows it at its home position: placements shifted by the
// outer margin, with labels anchored under each image.
//
//   - SVG: a contact sheet with one linked tile per image and its label.
//     Each tile links to the image's deep-link fragment.
//   - PNG: the same sheet rasterized natively, with labels drawn by the
//     viewer's label renderer onto a [raster.Surface].
//   - JSON: the layout with margins, keys and label text, for external
//     viewers and for the layout cache.
//
// Basic usage:
//
//	svg := sink.RenderSVG(result, sink.WithWidth(1600), sink.WithCaptions(set))
//	png, err := sink.RenderPNG(result, sink.WithPNGWidth(1600))
//	data, err := sink.RenderJSON(result)
//
// [raster.Surface]: github.com/matzehuels/mosaic/pkg/render/raster.Surface
package sink
