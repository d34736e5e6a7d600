package sink

import (
	"encoding/json"

	"github.com/matzehuels/mosaic/pkg/captions"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/viewer"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	captions captions.Set
}

// WithJSONCaptions resolves label text from caption titles.
func WithJSONCaptions(set captions.Set) JSONOption {
	return func(r *jsonRenderer) { r.captions = set }
}

// Document is the JSON layout export.
type Document struct {
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	TotalWidth  float64         `json:"total_width"`
	TotalHeight float64         `json:"total_height"`
	MarginX     float64         `json:"margin_x"`
	MarginY     float64         `json:"margin_y"`
	Gap         float64         `json:"gap"`
	Scale       float64         `json:"scale"`
	Rows        [][]string      `json:"rows"`
	Placements  []JSONPlacement `json:"placements"`
}

// JSONPlacement is one image in a [Document]. X and Y are layout
// coordinates without the outer margin.
type JSONPlacement struct {
	ID     string  `json:"id"`
	Key    string  `json:"key"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Row    int     `json:"row"`
	Label  string  `json:"label,omitempty"`
}

// RenderJSON exports the layout.
func RenderJSON(res layout.Result, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	frame := viewer.NewFrame(res)
	labels := viewer.NewLabels(frame, r.captions, viewer.Config{})

	doc := Document{
		Width:       frame.Home.Width,
		Height:      frame.Home.Height,
		TotalWidth:  res.TotalWidth,
		TotalHeight: res.TotalHeight,
		MarginX:     frame.MarginX,
		MarginY:     frame.MarginY,
		Gap:         res.Gap,
		Scale:       res.Scale,
		Placements:  make([]JSONPlacement, len(res.Placements)),
	}
	for i, p := range res.Placements {
		doc.Placements[i] = JSONPlacement{
			ID:     p.ImageID,
			Key:    frame.Keys[i],
			X:      p.X,
			Y:      p.Y,
			Width:  p.Width,
			Height: p.Height,
			Row:    p.Row,
			Label:  labels.Text(i),
		}
	}
	for _, row := range res.Rows() {
		ids := make([]string, len(row))
		for j, i := range row {
			ids[j] = res.Placements[i].ImageID
		}
		doc.Rows = append(doc.Rows, ids)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// ParseJSON reads a document written by [RenderJSON] back into a layout.
func ParseJSON(data []byte) (layout.Result, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return layout.Result{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	if len(doc.Placements) == 0 {
		return layout.Result{}, errors.New(errors.ErrCodeInvalidFormat, "layout has no placements")
	}

	res := layout.Result{
		Placements:  make([]layout.Placement, len(doc.Placements)),
		TotalWidth:  doc.TotalWidth,
		TotalHeight: doc.TotalHeight,
		Gap:         doc.Gap,
		Scale:       doc.Scale,
		RowCount:    len(doc.Rows),
	}
	for i, p := range doc.Placements {
		if err := errors.ValidateImage(p.ID, p.Width, p.Height); err != nil {
			return layout.Result{}, err
		}
		res.Placements[i] = layout.Placement{
			ImageID: p.ID,
			Rect:    layout.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height},
			Row:     p.Row,
		}
	}
	return res, nil
}
