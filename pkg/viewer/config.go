package viewer

import "time"

// Config tunes the viewer. Zero fields fall back to [DefaultConfig].
type Config struct {
	// ZoomMargin is the share of an image's size added on each side when
	// zooming to it.
	ZoomMargin float64

	// CaptionLines reserves room below a zoomed image for that many lines
	// of caption text. CaptionLinePx is the pixel height of one line.
	CaptionLines  int
	CaptionLinePx float64

	// LabelFont is the label size in layout units. Zero derives it from
	// the layout gap.
	LabelFont  float64
	LabelMinPx float64
	LabelMaxPx float64

	TourDwell   time.Duration
	SettleDelay time.Duration

	// StartScale sizes images before reveal, relative to their final size.
	StartScale float64

	RevealAnimation      time.Duration
	InteractiveAnimation time.Duration
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		ZoomMargin:           0.02,
		CaptionLinePx:        28,
		LabelMinPx:           10,
		LabelMaxPx:           24,
		TourDwell:            10 * time.Second,
		SettleDelay:          time.Second,
		StartScale:           0.001,
		RevealAnimation:      10 * time.Second,
		InteractiveAnimation: 3500 * time.Millisecond,
	}
}

func (c Config) withDefaults(gap float64) Config {
	d := DefaultConfig()
	if c.ZoomMargin <= 0 {
		c.ZoomMargin = d.ZoomMargin
	}
	if c.CaptionLinePx <= 0 {
		c.CaptionLinePx = d.CaptionLinePx
	}
	if c.CaptionLines < 0 {
		c.CaptionLines = 0
	}
	if c.LabelFont <= 0 {
		c.LabelFont = gap * 0.6
	}
	if c.LabelMinPx <= 0 {
		c.LabelMinPx = d.LabelMinPx
	}
	if c.LabelMaxPx < c.LabelMinPx {
		c.LabelMaxPx = max(d.LabelMaxPx, c.LabelMinPx)
	}
	if c.TourDwell <= 0 {
		c.TourDwell = d.TourDwell
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = d.SettleDelay
	}
	if c.StartScale <= 0 {
		c.StartScale = d.StartScale
	}
	if c.RevealAnimation <= 0 {
		c.RevealAnimation = d.RevealAnimation
	}
	if c.InteractiveAnimation <= 0 {
		c.InteractiveAnimation = d.InteractiveAnimation
	}
	return c
}
