// Package pkg holds the libraries behind the mosaic command.
//
// Mosaic packs a collection of images into justified rows that fill a
// viewport of a given aspect ratio, then lets a viewer browse the grid:
// clicking or arrow keys zoom from image to image, a deep-link fragment
// names the image in view, and a timed tour walks the whole set.
//
// # Data Flow
//
//	manifest or image directory   [gallery]
//	         ↓
//	justified-row layout           [layout]
//	         ↓
//	    ┌────┴─────────────┐
//	artifacts [render/sink]   interactive viewer [viewer]
//	(svg, png, json)          (navigation, labels, tour)
//
// [pipeline] ties loading, layout and rendering together behind a cache
// ([cache]); [geometry] answers visibility and neighbour queries for the
// viewer; [captions] supplies optional caption titles.
//
// # Quick Start
//
//	images, _ := gallery.ReadManifest("photos/manifest.json")
//	res := layout.Compute(images, 16.0/9)
//	svg := sink.RenderSVG(res)
//
// Library packages never log. They report through the hooks in
// [observability], which the CLI wires to its logger.
//
// [gallery]: github.com/matzehuels/mosaic/pkg/gallery
// [layout]: github.com/matzehuels/mosaic/pkg/layout
// [render/sink]: github.com/matzehuels/mosaic/pkg/render/sink
// [viewer]: github.com/matzehuels/mosaic/pkg/viewer
// [pipeline]: github.com/matzehuels/mosaic/pkg/pipeline
// [cache]: github.com/matzehuels/mosaic/pkg/cache
// [geometry]: github.com/matzehuels/mosaic/pkg/geometry
// [captions]: github.com/matzehuels/mosaic/pkg/captions
// [observability]: github.com/matzehuels/mosaic/pkg/observability
package pkg
