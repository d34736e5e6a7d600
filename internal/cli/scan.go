package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/gallery"
)

// scanCommand creates the scan command for building a manifest from a directory.
func (c *CLI) scanCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Write an image manifest for a directory",
		Long: `Write an image manifest for a directory.

The scan command reads the header of every JPEG, PNG, GIF, WebP, BMP and TIFF
file (and the Size element of Deep Zoom .dzi descriptors) directly inside the
directory and writes their dimensions as a manifest. The manifest format
follows the output extension: .toml writes [[image]] tables, anything else
writes JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output manifest (default: <dir>/manifest.json)")

	return cmd
}

func (c *CLI) runScan(ctx context.Context, dir, output string) error {
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Reading image headers...")
	spinner.Start()

	res, err := gallery.Scan(ctx, dir)
	if err != nil {
		spinner.StopWithError("Scan failed")
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if len(res.Images) == 0 {
		return errors.New(errors.ErrCodeNotFound, "no readable images in %s", dir)
	}
	prog.done(fmt.Sprintf("Scanned %s", plural(len(res.Images), "image")))

	if output == "" {
		output = filepath.Join(dir, "manifest.json")
	}
	if err := gallery.WriteManifest(output, res.Images); err != nil {
		return fmt.Errorf("write manifest %s: %w", output, err)
	}

	printSuccess("Manifest written")
	printFile(output)
	for _, name := range res.Skipped {
		printWarning("skipped %s: unreadable header", name)
	}
	for _, name := range res.Duplicates {
		printWarning("skipped %s: another file has the same key", name)
	}
	printNewline()
	printNextStep("Browse", appName+" view "+output)

	return nil
}
