package pipeline

import (
	"context"
	"os"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/gallery"
	"github.com/matzehuels/mosaic/pkg/layout"
)

// Load reads images from a manifest file or, when path is a directory, by
// scanning the image files in it.
func Load(ctx context.Context, path string) ([]layout.Image, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}

	if !fi.IsDir() {
		return gallery.ReadManifest(path)
	}

	res, err := gallery.Scan(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(res.Images) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no readable images in %s", path)
	}
	return res.Images, nil
}
