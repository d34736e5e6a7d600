package cache

import "github.com/matzehuels/mosaic/pkg/layout"

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey addresses a computed layout.
	LayoutKey(images []layout.Image, opts LayoutKeyOpts) string

	// ArtifactKey addresses a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists the layout parameters that change the result.
type LayoutKeyOpts struct {
	Aspect     float64 `json:"aspect"`
	Gap        float64 `json:"gap"`
	Iterations int     `json:"iterations"`
}

// ArtifactKeyOpts lists the render parameters that change an artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Labels   bool   `json:"labels"`
	Captions string `json:"captions,omitempty"`
}

// DefaultKeyer hashes every key component with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey hashes the image list in order together with opts.
func (DefaultKeyer) LayoutKey(images []layout.Image, opts LayoutKeyOpts) string {
	return keyOf(kindLayout, images, opts)
}

// ArtifactKey hashes the layout hash together with opts.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return keyOf(kindArtifact, layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
