package pipeline

import (
	"github.com/matzehuels/mosaic/pkg/layout"
)

// ComputeLayout validates opts and computes the layout without caching.
func ComputeLayout(opts Options) (layout.Result, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Result{}, err
	}
	return layout.Compute(opts.Images, opts.Aspect, opts.LayoutOptions()...), nil
}
