// Package layout packs images into a justified, gap-separated grid of rows
// inside a fixed horizontal extent.
//
// # Algorithm
//
// [Compute] assigns every image a uniform scale factor s so that an image
// with intrinsic size (w, h) is displayed at (s·w, s·h). Images are sorted
// by intrinsic height, which groups similar heights into the same row and
// reduces the dead space left by each row's tallest member. For a given s,
// rows are packed greedily left to right; a row is closed when the next
// image plus one gap would overflow the total width.
//
// The packed height mostly grows with s, but it drops whenever an image is
// pushed onto a new row that ends up shorter than the row it left. s is
// therefore found by bisection over the running maximum of the height:
// the first scale at which that maximum reaches the height implied by the
// viewport aspect ratio. A wider viewport never yields a taller layout.
// Rows are discrete, so the result generally lands slightly below the
// target rather than on it.
//
// s never exceeds the scale at which the widest image fills the total
// width. A single very wide image therefore caps the scale of the whole
// grid, and such a layout can end far shorter than the target.
//
// Within a row images share a bottom baseline and the row is centred as a
// block when it is narrower than the total width.
//
// # Coordinates
//
// All coordinates are in normalized layout units: x spans [0, TotalWidth]
// (1.0 by default) and y grows downward from 0.
//
// # Usage
//
//	images := []layout.Image{
//	    {ID: "beach.jpg", Width: 4000, Height: 3000},
//	    {ID: "tower.jpg", Width: 2000, Height: 3000},
//	}
//	res := layout.Compute(images, 16.0/10.0)
//	for _, p := range res.Placements {
//	    fmt.Println(p.ImageID, p.X, p.Y, p.Width, p.Height, p.Row)
//	}
//
// Compute is a pure function: identical inputs always produce bit-identical
// output, and it is safe to call concurrently.
package layout
