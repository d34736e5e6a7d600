package gallery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
)

// Format is a manifest encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFor picks the manifest format from a file name; anything other
// than .toml is treated as JSON.
func FormatFor(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Manifest is the on-disk image list.
//
// JSON:
//
//	{"images": [{"id": "beach.jpg", "width": 4000, "height": 3000}]}
//
// TOML:
//
//	[[image]]
//	id = "beach.jpg"
//	width = 4000
//	height = 3000
type Manifest struct {
	Images []layout.Image `json:"images" toml:"image"`
}

// ReadManifest loads and validates a manifest file.
func ReadManifest(path string) ([]layout.Image, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeManifest(f, FormatFor(path))
}

// DecodeManifest parses a manifest and validates its images.
func DecodeManifest(r io.Reader, format Format) ([]layout.Image, error) {
	var m Manifest
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode toml manifest")
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode json manifest")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown manifest format %q", format)
	}
	if err := Validate(m.Images); err != nil {
		return nil, err
	}
	return m.Images, nil
}

// WriteManifest encodes images to path in the format implied by its extension.
func WriteManifest(path string, images []layout.Image) error {
	data, err := EncodeManifest(images, FormatFor(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// EncodeManifest encodes images in the given format.
func EncodeManifest(images []layout.Image, format Format) ([]byte, error) {
	m := Manifest{Images: images}
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return nil, err
		}
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown manifest format %q", format)
	}
	return buf.Bytes(), nil
}

// Validate checks the layout preconditions for an image set: at least one
// image, valid dimensions, and unique identifiers and keys.
func Validate(images []layout.Image) error {
	if len(images) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest contains no images")
	}
	ids := make(map[string]bool, len(images))
	keys := make(map[string]string, len(images))
	for i, img := range images {
		if err := errors.ValidateImage(img.ID, img.Width, img.Height); err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
		if ids[img.ID] {
			return errors.New(errors.ErrCodeInvalidManifest, "duplicate image id %q", img.ID)
		}
		ids[img.ID] = true

		k := Key(img.ID)
		if err := errors.ValidateKey(k); err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
		if prev, ok := keys[k]; ok {
			return errors.New(errors.ErrCodeInvalidManifest, "images %q and %q share key %q", prev, img.ID, k)
		}
		keys[k] = img.ID
	}
	return nil
}
