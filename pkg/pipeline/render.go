package pipeline

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/observability"
	"github.com/matzehuels/mosaic/pkg/render/sink"
)

// RenderFromLayout renders every requested format concurrently.
func RenderFromLayout(ctx context.Context, l layout.Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	formats := opts.SortedFormats()

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := renderFormat(l, format, opts)
			if err != nil {
				code := errors.GetCode(err)
				if code == "" {
					code = errors.ErrCodeInternal
				}
				return errors.Wrap(code, err, "render %s", format)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			opts.Logger.Debug("rendered", "format", format, "bytes", len(data))
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(l layout.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []sink.SVGOption{sink.WithWidth(opts.Width), sink.WithCaptions(opts.Captions)}
		if opts.NoLabel {
			svgOpts = append(svgOpts, sink.WithoutLabels())
		}
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithPNGWidth(opts.Width), sink.WithPNGCaptions(opts.Captions)}
		if opts.NoLabel {
			pngOpts = append(pngOpts, sink.WithoutPNGLabels())
		}
		return sink.RenderPNG(l, pngOpts...)
	case FormatJSON:
		return sink.RenderJSON(l, sink.WithJSONCaptions(opts.Captions))
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}
