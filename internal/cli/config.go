package cli

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/viewer"
)

// fileConfig is the content of mosaic.toml. Zero values mean "not set".
//
//	gap = 0.01
//	aspect = 1.7778
//	tour_dwell = "6s"
//	captions = "https://example.com/captions.json"
type fileConfig struct {
	Gap        float64 `toml:"gap"`
	Aspect     float64 `toml:"aspect"`
	Iterations int     `toml:"iterations"`

	LabelFont     float64  `toml:"label_font"`
	LabelMinPx    float64  `toml:"label_min_px"`
	LabelMaxPx    float64  `toml:"label_max_px"`
	CaptionLinePx float64  `toml:"caption_line_px"`
	TourDwell     duration `toml:"tour_dwell"`
	SettleDelay   duration `toml:"settle_delay"`
	ZoomMargin    float64  `toml:"zoom_margin"`

	Captions string `toml:"captions"`
}

// duration decodes TOML strings such as "10s" or "1m30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "duration cannot be negative: %s", text)
	}
	d.Duration = v
	return nil
}

// readConfig decodes path. A missing file is an error only when the path
// was given explicitly. Unknown keys are logged and ignored.
func readConfig(path string, explicit bool, logger *log.Logger) (fileConfig, error) {
	var cfg fileConfig
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config %s", path)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("unknown config key", "file", path, "key", key.String())
	}
	logger.Debug("loaded config", "file", path)
	return cfg, nil
}

// applyLayout fills layout options from the file unless the matching flag
// was set on the command line.
func (cfg fileConfig) applyLayout(flags *pflag.FlagSet, opts *pipeline.Options) {
	if cfg.Gap > 0 && !flags.Changed("gap") {
		opts.Gap = cfg.Gap
	}
	if cfg.Aspect > 0 && !flags.Changed("aspect") {
		opts.Aspect = cfg.Aspect
	}
	if cfg.Iterations > 0 && !flags.Changed("iterations") {
		opts.Iterations = cfg.Iterations
	}
}

// captionSource returns the caption flag value, falling back to the file.
func (cfg fileConfig) captionSource(flags *pflag.FlagSet, flag string) string {
	if flags.Changed("captions") || cfg.Captions == "" {
		return flag
	}
	return cfg.Captions
}

// viewerConfig returns the viewer settings named in the file. Unset fields
// stay zero so the viewer applies its own defaults.
func (cfg fileConfig) viewerConfig() viewer.Config {
	return viewer.Config{
		ZoomMargin:    cfg.ZoomMargin,
		CaptionLinePx: cfg.CaptionLinePx,
		LabelFont:     cfg.LabelFont,
		LabelMinPx:    cfg.LabelMinPx,
		LabelMaxPx:    cfg.LabelMaxPx,
		TourDwell:     cfg.TourDwell.Duration,
		SettleDelay:   cfg.SettleDelay.Duration,
	}
}
