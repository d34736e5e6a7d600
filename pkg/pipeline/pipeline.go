// Package pipeline provides the load → layout → render pipeline for mosaic.
//
// The CLI commands share this package so that every entry point validates,
// caches and logs the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read images from a manifest (JSON or TOML) or scan a directory
//  2. Layout: pack the images into justified rows for a viewport aspect
//  3. Render: produce artifacts (SVG, PNG, JSON) from the layout
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	images, err := pipeline.Load(ctx, "photos/manifest.json")
//	opts := pipeline.Options{
//	    Images:  images,
//	    Aspect:  16.0 / 9,
//	    Formats: []string{"svg", "json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/captions"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/gallery"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/render/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultAspect is the viewport aspect ratio used when none is given.
	DefaultAspect = 16.0 / 9

	// DefaultWidth is the pixel width of rendered sheets.
	DefaultWidth = sink.DefaultWidth
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Layout options
	Images     []layout.Image `json:"images"`
	Aspect     float64        `json:"aspect,omitempty"`
	Gap        float64        `json:"gap,omitempty"`
	Iterations int            `json:"iterations,omitempty"`
	Refresh    bool           `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Width   int      `json:"width,omitempty"`
	NoLabel bool     `json:"no_label,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger  `json:"-"`
	Captions captions.Set `json:"-"`

	// CaptionSource identifies Captions in artifact cache keys.
	CaptionSource string `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed layout.
	Layout layout.Result

	// LayoutHash is the content hash of the layout, used for artifact keys.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ImageCount int
	RowCount   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Aspect == 0 {
		o.Aspect = DefaultAspect
	}
	if o.Gap == 0 {
		o.Gap = layout.DefaultGap
	}
	if o.Iterations == 0 {
		o.Iterations = layout.DefaultIterations
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets defaults and checks the layout inputs. The layout
// engine itself trusts its input, so this is where bad manifests stop.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateAspect(o.Aspect); err != nil {
		return err
	}
	if o.Gap < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "gap cannot be negative, got %g", o.Gap)
	}
	if o.Iterations < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "iterations must be at least 1, got %d", o.Iterations)
	}
	return gallery.Validate(o.Images)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Width < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be positive, got %d", o.Width)
	}
	return ValidateFormats(o.Formats)
}

// LayoutOptions returns the engine options.
func (o *Options) LayoutOptions() []layout.Option {
	return []layout.Option{layout.WithGap(o.Gap), layout.WithIterations(o.Iterations)}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Aspect:     o.Aspect,
		Gap:        o.Gap,
		Iterations: o.Iterations,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Width:    o.Width,
		Labels:   !o.NoLabel,
		Captions: o.CaptionSource,
	}
}

// SortedFormats returns the formats in a stable order without duplicates.
func (o *Options) SortedFormats() []string {
	out := slices.Clone(o.Formats)
	slices.Sort(out)
	return slices.Compact(out)
}

func (o *Options) String() string {
	return fmt.Sprintf("%d images, aspect %.3f, gap %g", len(o.Images), o.Aspect, o.Gap)
}
