// Package gallery describes the set of images a mosaic is built from.
//
// An image is identified by its source identifier, typically a file name
// such as "sunset_beach.jpg" or a Deep Zoom descriptor "sunset_beach.dzi".
// Two names are derived from it:
//
//   - [Key] strips a known extension and is used for deep links and caption lookup.
//   - [Label] additionally turns '-' and '_' into spaces for display.
//
// Image sets are read from manifests ([ReadManifest]) in JSON or TOML, or
// produced by scanning a directory ([Scan]), which reads only image headers
// and never decodes pixel data.
package gallery
