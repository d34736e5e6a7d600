package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/captions"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/render/sink"
)

// layoutSuffix marks files written by the layout command.
const layoutSuffix = ".layout.json"

// renderCommand creates the render command for producing contact sheets.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr  string
		output      string
		captionsSrc string
		flags       layoutFlags
	)
	flags.opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [manifest|dir|layout.json]",
		Short: "Render a layout to SVG, PNG or JSON",
		Long: `Render a layout to SVG, PNG or JSON.

The input is a manifest, an image directory, or a *.layout.json file written
by 'layout'. Tiles are drawn at their placed rectangles inside the 1% outer
margin, with filename labels (or caption titles when --captions is given)
below each image.

The SVG links every tile to its #key fragment, the same deep link the viewer
follows. Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(flags.opts.Formats); err != nil {
				return err
			}
			c.config.applyLayout(cmd.Flags(), &flags.opts)
			flags.opts.CaptionSource = c.config.captionSource(cmd.Flags(), captionsSrc)
			return c.runRender(cmd.Context(), args[0], flags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().IntVar(&flags.opts.Width, "width", flags.opts.Width, "sheet width in pixels")
	cmd.Flags().BoolVar(&flags.opts.NoLabel, "no-label", false, "omit labels below images")
	cmd.Flags().StringVar(&captionsSrc, "captions", "", "caption metadata file or http(s) URL")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, flags layoutFlags, output string) error {
	runner, err := c.newRunner(flags.backend)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := flags.opts
	opts.Logger = c.Logger
	opts.Captions = c.loadCaptions(ctx, opts.CaptionSource)

	l, layoutHit, err := c.resolveLayout(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(output, input)
	formats := opts.SortedFormats()
	printSuccess("Render complete")
	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(len(l.Placements), l.RowCount, layoutHit && renderHit)

	return nil
}

// resolveLayout reads a layout file directly, or loads and lays out a
// manifest or directory through the runner.
func (c *CLI) resolveLayout(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (layout.Result, bool, error) {
	if strings.HasSuffix(input, layoutSuffix) {
		data, err := os.ReadFile(input)
		if err != nil {
			return layout.Result{}, false, fmt.Errorf("read layout %s: %w", input, err)
		}
		l, err := sink.ParseJSON(data)
		if err != nil {
			return layout.Result{}, false, fmt.Errorf("parse layout %s: %w", input, err)
		}
		return l, true, nil
	}

	images, err := pipeline.Load(ctx, input)
	if err != nil {
		return layout.Result{}, false, fmt.Errorf("load %s: %w", input, err)
	}
	opts.Images = images
	l, hit, err := runner.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return layout.Result{}, false, fmt.Errorf("compute layout: %w", err)
	}
	return l, hit, nil
}

// loadCaptions fetches caption metadata. Failures are logged and yield an
// empty set, so labels fall back to filenames.
func (c *CLI) loadCaptions(ctx context.Context, source string) captions.Set {
	if source == "" {
		return captions.Set{}
	}
	set, err := captions.Load(ctx, source, nil)
	if err != nil {
		c.Logger.Warn("captions unavailable, using filenames", "source", source, "err", err)
		return captions.Set{}
	}
	c.Logger.Debug("loaded captions", "source", source, "entries", len(set.Captions), "lines", set.Lines)
	return set
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension (or the layout suffix) from
// input. A known format extension on output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		input = filepath.Clean(input)
		if strings.HasSuffix(input, layoutSuffix) {
			return strings.TrimSuffix(input, layoutSuffix)
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
