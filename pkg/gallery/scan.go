package gallery

import (
	"context"
	"encoding/xml"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
)

// scanWorkers bounds concurrent header reads.
const scanWorkers = 8

// ScanResult lists the images found by [Scan], the files that looked like
// images but whose headers could not be read, and the readable files left
// out because another file already claimed their key.
type ScanResult struct {
	Images     []layout.Image
	Skipped    []string
	Duplicates []string
}

// Scan reads the dimensions of every image file directly inside dir.
// Raster formats are read via image.DecodeConfig, which only parses the
// header; Deep Zoom descriptors (.dzi) are read from their Size element.
// Results are sorted by identifier.
//
// Files sharing a key (photo.jpg and photo.dzi) cannot both be laid out.
// The Deep Zoom descriptor wins; otherwise the first name in sort order
// does. The others are reported in Duplicates.
func Scan(ctx context.Context, dir string) (ScanResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ScanResult{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read image directory %s", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !hasImageExt(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)

	found := make([]*layout.Image, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scanWorkers)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			w, h, err := readSize(filepath.Join(dir, name))
			if err != nil {
				return nil
			}
			found[i] = &layout.Image{ID: name, Width: float64(w), Height: float64(h)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ScanResult{}, err
	}

	var res ScanResult
	byKey := make(map[string]int, len(found))
	for i, img := range found {
		if img == nil {
			res.Skipped = append(res.Skipped, names[i])
			continue
		}
		k := Key(img.ID)
		j, taken := byKey[k]
		switch {
		case !taken:
			byKey[k] = len(res.Images)
			res.Images = append(res.Images, *img)
		case isDZI(img.ID) && !isDZI(res.Images[j].ID):
			res.Duplicates = append(res.Duplicates, res.Images[j].ID)
			res.Images[j] = *img
		default:
			res.Duplicates = append(res.Duplicates, img.ID)
		}
	}
	slices.SortFunc(res.Images, func(a, b layout.Image) int { return strings.Compare(a.ID, b.ID) })
	slices.Sort(res.Duplicates)
	return res, nil
}

func isDZI(name string) bool { return strings.EqualFold(filepath.Ext(name), ".dzi") }

func hasImageExt(name string) bool {
	ext := filepath.Ext(name)
	return slices.ContainsFunc(Extensions, func(e string) bool { return strings.EqualFold(e, ext) })
}

func readSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	if isDZI(path) {
		return readDZISize(f)
	}
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("%s: empty image", path)
	}
	return cfg.Width, cfg.Height, nil
}

type dziImage struct {
	Size struct {
		Width  int `xml:"Width,attr"`
		Height int `xml:"Height,attr"`
	} `xml:"Size"`
}

// readDZISize parses the Size element of a Deep Zoom descriptor:
//
//	<Image TileSize="254" Overlap="1" Format="jpg"><Size Width="4000" Height="3000"/></Image>
func readDZISize(r io.Reader) (int, int, error) {
	var d dziImage
	if err := xml.NewDecoder(r).Decode(&d); err != nil {
		return 0, 0, err
	}
	if d.Size.Width <= 0 || d.Size.Height <= 0 {
		return 0, 0, fmt.Errorf("dzi descriptor without size")
	}
	return d.Size.Width, d.Size.Height, nil
}
