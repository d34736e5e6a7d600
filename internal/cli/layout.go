package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/render/sink"
)

// layoutFlags are shared by every command that computes a layout.
type layoutFlags struct {
	opts    pipeline.Options
	backend string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	f.opts.SetLayoutDefaults()
	cmd.Flags().Float64Var(&f.opts.Aspect, "aspect", f.opts.Aspect, "viewport aspect ratio (width / height)")
	cmd.Flags().Float64Var(&f.opts.Gap, "gap", f.opts.Gap, "spacing between images and rows, in layout units")
	cmd.Flags().IntVar(&f.opts.Iterations, "iterations", f.opts.Iterations, "bisection steps when solving the row scale")
	cmd.Flags().StringVar(&f.backend, "cache", backendFile, "cache backend: file, memory, none")
	cmd.Flags().BoolVar(&f.opts.Refresh, "refresh", false, "recompute even when a cached result exists")
}

// layoutCommand creates the layout command for computing a layout from a manifest.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [manifest|dir]",
		Short: "Compute the justified-row layout of a manifest",
		Long: `Compute the justified-row layout of a manifest.

The layout command packs the images of a manifest (or of a directory, which is
scanned first) into rows of equal height whose combined height matches the
viewport aspect ratio, and writes the placements as a layout.json file (same
format as 'render -f json').

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.config.applyLayout(cmd.Flags(), &flags.opts)
			return c.runLayout(cmd.Context(), args[0], flags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, flags layoutFlags, output string) error {
	images, err := pipeline.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	runner, err := c.newRunner(flags.backend)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := flags.opts
	opts.Images = images
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, fmt.Sprintf("Packing %s...", plural(len(images), "image")))
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := sink.RenderJSON(l)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if output == "" {
		output = derivePath(input, ".layout.json")
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(len(l.Placements), l.RowCount, cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+input+" -f svg,png")

	return nil
}
