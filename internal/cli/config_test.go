package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/viewer"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mosaic.toml", `
gap = 0.02
aspect = 1.5
iterations = 40
label_min_px = 12
tour_dwell = "6s"
settle_delay = "250ms"
zoom_margin = 0.05
captions = "captions.json"
`)

	var logs bytes.Buffer
	cfg, err := readConfig(path, true, newLogger(&logs, log.InfoLevel))
	if err != nil {
		t.Fatalf("readConfig: %v", err)
	}

	want := fileConfig{
		Gap:         0.02,
		Aspect:      1.5,
		Iterations:  40,
		LabelMinPx:  12,
		TourDwell:   duration{6 * time.Second},
		SettleDelay: duration{250 * time.Millisecond},
		ZoomMargin:  0.05,
		Captions:    "captions.json",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected log output: %s", logs.String())
	}
}

func TestReadConfigUnknownKey(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mosaic.toml", "gap = 0.02\ncolour = \"red\"\n")

	var logs bytes.Buffer
	if _, err := readConfig(path, true, newLogger(&logs, log.InfoLevel)); err != nil {
		t.Fatalf("readConfig: %v", err)
	}
	if !strings.Contains(logs.String(), "colour") {
		t.Errorf("unknown key should be logged, got %q", logs.String())
	}
}

func TestReadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	logger := newLogger(&bytes.Buffer{}, log.InfoLevel)

	tests := []struct {
		name     string
		path     string
		explicit bool
		code     errors.Code
	}{
		{"missing explicit", filepath.Join(dir, "nope.toml"), true, errors.ErrCodeFileNotFound},
		{"missing default", filepath.Join(dir, "nope.toml"), false, ""},
		{"bad syntax", writeFile(t, dir, "bad.toml", "gap = ="), true, errors.ErrCodeInvalidFormat},
		{"bad duration", writeFile(t, dir, "dur.toml", `tour_dwell = "soon"`), true, errors.ErrCodeInvalidFormat},
		{"negative duration", writeFile(t, dir, "neg.toml", `tour_dwell = "-1s"`), true, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readConfig(tt.path, tt.explicit, logger)
			if tt.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestApplyLayoutFlagsWin(t *testing.T) {
	cfg := fileConfig{Gap: 0.05, Aspect: 3, Iterations: 10}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var opts pipeline.Options
	flags.Float64Var(&opts.Gap, "gap", 0.01, "")
	flags.Float64Var(&opts.Aspect, "aspect", 1, "")
	flags.IntVar(&opts.Iterations, "iterations", 60, "")
	if err := flags.Parse([]string{"--gap", "0.03"}); err != nil {
		t.Fatal(err)
	}

	cfg.applyLayout(flags, &opts)
	if opts.Gap != 0.03 {
		t.Errorf("Gap = %v, want flag value 0.03", opts.Gap)
	}
	if opts.Aspect != 3 {
		t.Errorf("Aspect = %v, want file value 3", opts.Aspect)
	}
	if opts.Iterations != 10 {
		t.Errorf("Iterations = %v, want file value 10", opts.Iterations)
	}
}

func TestCaptionSource(t *testing.T) {
	cfg := fileConfig{Captions: "file.json"}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var src string
	flags.StringVar(&src, "captions", "", "")

	if got := cfg.captionSource(flags, src); got != "file.json" {
		t.Errorf("unset flag: got %q, want file value", got)
	}
	if err := flags.Parse([]string{"--captions", "flag.json"}); err != nil {
		t.Fatal(err)
	}
	if got := cfg.captionSource(flags, src); got != "flag.json" {
		t.Errorf("set flag: got %q, want flag value", got)
	}
}

func TestViewerConfig(t *testing.T) {
	cfg := fileConfig{LabelMaxPx: 30, TourDwell: duration{3 * time.Second}}
	want := viewer.Config{LabelMaxPx: 30, TourDwell: 3 * time.Second}
	if diff := cmp.Diff(want, cfg.viewerConfig()); diff != "" {
		t.Errorf("viewer config mismatch (-want +got):\n%s", diff)
	}
}
