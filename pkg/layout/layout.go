package layout

import (
	"cmp"
	"math"
	"slices"
	"sort"
)

const (
	// DefaultGap is the spacing between images and rows, in layout units.
	DefaultGap = 0.01

	// DefaultTotalWidth is the fixed horizontal extent of the layout.
	DefaultTotalWidth = 1.0

	// DefaultIterations is the number of bisection steps used to find the
	// scale factor. Sixty halvings take any starting interval well below
	// float64 resolution.
	DefaultIterations = 60
)

// Image describes one input image. Width and Height only define its
// aspect ratio and relative size; their unit is arbitrary.
type Image struct {
	ID     string  `json:"id" toml:"id"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Placement is the rectangle assigned to one image.
type Placement struct {
	ImageID string `json:"id"`
	Rect
	// Row is the index of the packed row, counted from the top.
	Row int `json:"row"`
}

// Result is the output of [Compute].
type Result struct {
	// Placements holds one entry per input image, in input order.
	Placements []Placement `json:"placements"`

	// TotalHeight spans from the top of the first row to the bottom of the last.
	TotalHeight float64 `json:"total_height"`

	TotalWidth float64 `json:"total_width"`
	Gap        float64 `json:"gap"`
	Scale      float64 `json:"scale"`
	RowCount   int     `json:"row_count"`
}

// Option configures [Compute].
type Option func(*config)

type config struct {
	gap        float64
	totalWidth float64
	iterations int
}

// WithGap sets the spacing between neighbouring images and rows.
func WithGap(g float64) Option { return func(c *config) { c.gap = g } }

// WithTotalWidth sets the horizontal extent the rows are packed into.
func WithTotalWidth(w float64) Option { return func(c *config) { c.totalWidth = w } }

// WithIterations sets the number of bisection steps.
func WithIterations(n int) Option { return func(c *config) { c.iterations = n } }

// row is a run of images in packing order: order[start:end].
type row struct {
	start, end int
	maxHeight  float64
	width      float64
}

// packer holds the sorted order shared by every packing attempt.
type packer struct {
	images []Image
	order  []int
	cfg    config
}

// Compute lays out images into justified rows whose total height
// approximates TotalWidth / viewportAspect.
//
// Preconditions: images is non-empty, every image has positive Width and
// Height, and viewportAspect is positive. Compute does not check them;
// callers validate input (see the errors package).
func Compute(images []Image, viewportAspect float64, opts ...Option) Result {
	cfg := config{gap: DefaultGap, totalWidth: DefaultTotalWidth, iterations: DefaultIterations}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := newPacker(images, cfg)
	s := p.solveScale(cfg.totalWidth / viewportAspect)
	return p.place(s)
}

func newPacker(images []Image, cfg config) *packer {
	order := make([]int, len(images))
	for i := range order {
		order[i] = i
	}
	// Stable sort keeps the original index order among equal heights.
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(images[a].Height, images[b].Height)
	})
	return &packer{images: images, order: order, cfg: cfg}
}

// packRows greedily fills rows at scale s. A row always takes at least one
// image, even one wider than the total width on its own.
func (p *packer) packRows(s float64) []row {
	var rows []row
	n := len(p.order)
	for i := 0; i < n; {
		r := row{start: i}
		for i < n {
			img := p.images[p.order[i]]
			w := s * img.Width
			needed := w
			if i > r.start {
				needed = r.width + p.cfg.gap + w
				if needed > p.cfg.totalWidth {
					break
				}
			}
			r.width = needed
			r.maxHeight = max(r.maxHeight, s*img.Height)
			i++
		}
		r.end = i
		rows = append(rows, r)
	}
	return rows
}

// solveScale bisects for the largest scale whose layout height stays below
// target. The search starts from the scale at which the narrowest image
// spans the full width.
//
// Greedy packing makes the packed height drop whenever an image moves to
// the next row, so the bisection runs on its running maximum instead. That
// envelope is non-decreasing, which keeps the result's height monotone in
// target. The returned scale is where the envelope's height is reached.
func (p *packer) solveScale(target float64) float64 {
	minW, maxW := p.images[0].Width, p.images[0].Width
	for _, img := range p.images[1:] {
		minW = min(minW, img.Width)
		maxW = max(maxW, img.Width)
	}
	// No image may be wider than the layout itself.
	ceiling := p.cfg.totalWidth / maxW

	env := p.sweep(target, ceiling)
	lo, hi := 0.0, p.cfg.totalWidth/minW
	for range p.cfg.iterations {
		mid := (lo + hi) / 2
		if h, _ := env.at(mid); h < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	_, s := env.at(min(lo, ceiling))
	return s
}

// piece is a scale interval over which the row breaks do not change, so
// the layout height is the line a*s + b.
type piece struct {
	from, to float64
	a, b     float64
	// peak is the highest height reached before from, at scale peakAt.
	peak, peakAt float64
}

// envelope is the running maximum of the packed height over increasing scales.
type envelope struct {
	pieces       []piece
	peak, peakAt float64
}

// at returns the envelope height at scale s and the scale attaining it.
func (e envelope) at(s float64) (float64, float64) {
	i := sort.Search(len(e.pieces), func(i int) bool { return e.pieces[i].from > s }) - 1
	pc := e.pieces[max(i, 0)]
	if s > pc.to {
		if i == len(e.pieces)-1 {
			return e.peak, e.peakAt
		}
		s = pc.to
	}
	if h := pc.a*s + pc.b; h > pc.peak {
		return h, s
	}
	return pc.peak, pc.peakAt
}

// sweep walks the row-break changes upward from scale zero until the
// running maximum reaches target or the scale reaches limit. Row breaks
// only ever move earlier as the scale grows, so each piece ends where its
// first multi-image row overflows.
func (p *packer) sweep(target, limit float64) envelope {
	env := envelope{peak: math.Inf(-1)}
	s := 0.0
	for {
		rows := p.packRows(s)
		a, b := p.heightLine(rows)
		end := max(min(p.nextBreak(rows), limit), s)
		// Rounding can break a row a few ulps before the exact overflow.
		for end > s && !sameBreaks(p.packRows(end), rows) {
			end = math.Nextafter(end, math.Inf(-1))
		}

		env.pieces = append(env.pieces, piece{from: s, to: end, a: a, b: b, peak: env.peak, peakAt: env.peakAt})
		if h := a*end + b; h > env.peak {
			env.peak, env.peakAt = h, end
		}
		if env.peak >= target || end >= limit {
			return env
		}
		s = math.Nextafter(end, math.Inf(1))
	}
}

// heightLine returns a and b such that the packed height is a*s + b while
// the row breaks stay as in rows.
func (p *packer) heightLine(rows []row) (float64, float64) {
	var a float64
	for _, r := range rows {
		var tallest float64
		for k := r.start; k < r.end; k++ {
			tallest = max(tallest, p.images[p.order[k]].Height)
		}
		a += tallest
	}
	return a, float64(len(rows)-1) * p.cfg.gap
}

// nextBreak returns the scale at which the first multi-image row of rows
// grows wider than the total width, or +Inf when every row holds one image.
func (p *packer) nextBreak(rows []row) float64 {
	next := math.Inf(1)
	for _, r := range rows {
		k := r.end - r.start
		if k < 2 {
			continue
		}
		var sum float64
		for i := r.start; i < r.end; i++ {
			sum += p.images[p.order[i]].Width
		}
		next = min(next, (p.cfg.totalWidth-p.cfg.gap*float64(k-1))/sum)
	}
	return next
}

func sameBreaks(a, b []row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].start != b[i].start || a[i].end != b[i].end {
			return false
		}
	}
	return true
}

// place repacks at scale s and assigns coordinates, returning placements
// in input order.
func (p *packer) place(s float64) Result {
	rows := p.packRows(s)
	placements := make([]Placement, len(p.images))

	var y float64
	for ri, r := range rows {
		x := 0.0
		if r.width < p.cfg.totalWidth {
			x = (p.cfg.totalWidth - r.width) / 2
		}
		for k := r.start; k < r.end; k++ {
			idx := p.order[k]
			img := p.images[idx]
			w, h := s*img.Width, s*img.Height
			placements[idx] = Placement{
				ImageID: img.ID,
				Rect:    Rect{X: x, Y: y + r.maxHeight - h, Width: w, Height: h},
				Row:     ri,
			}
			x += w + p.cfg.gap
		}
		y += r.maxHeight + p.cfg.gap
	}

	return Result{
		Placements:  placements,
		TotalHeight: y - p.cfg.gap,
		TotalWidth:  p.cfg.totalWidth,
		Gap:         p.cfg.gap,
		Scale:       s,
		RowCount:    len(rows),
	}
}

// Rows groups placement indices by row, each row ordered left to right.
func (r Result) Rows() [][]int {
	rows := make([][]int, r.RowCount)
	for i, p := range r.Placements {
		if p.Row >= 0 && p.Row < len(rows) {
			rows[p.Row] = append(rows[p.Row], i)
		}
	}
	for _, idxs := range rows {
		slices.SortFunc(idxs, func(a, b int) int {
			return cmp.Compare(r.Placements[a].X, r.Placements[b].X)
		})
	}
	return rows
}

// Bounds returns the rectangle enclosing all placements.
func (r Result) Bounds() Rect {
	return Rect{Width: r.TotalWidth, Height: r.TotalHeight}
}
