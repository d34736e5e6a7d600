// Package render groups the output renderers for computed layouts.
//
// # Subpackages
//
//   - [sink]: SVG contact sheets, PNG previews and JSON layout exports.
//   - [raster]: an RGBA label surface with OpenType text, used by the PNG sink.
//
// Every renderer draws the grid as the viewer shows it at its home
// position, so a sheet and the interactive view agree on placement,
// margins and label text:
//
//	res := layout.Compute(images, 16.0/9, layout.WithGap(0.01))
//	svg := sink.RenderSVG(res, sink.WithWidth(1600))
//	png, err := sink.RenderPNG(res, sink.WithPNGWidth(800))
//
// [sink]: github.com/matzehuels/mosaic/pkg/render/sink
// [raster]: github.com/matzehuels/mosaic/pkg/render/raster
package render
