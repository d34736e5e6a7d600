package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/matzehuels/mosaic/pkg/captions"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/viewer"
)

const (
	tickInterval = time.Second / 30
	clickTime    = 300 * time.Millisecond
	zoomStep     = 1.25
)

// viewCommand creates the interactive terminal viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		image       string
		captionsSrc string
		logFile     string
		flags       layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "view [manifest|dir|layout.json]",
		Short: "Browse a layout in the terminal",
		Long: `Browse a layout in the terminal.

Images appear once all of them have loaded. Click an image to zoom to it;
on the zoomed image, clicking its left or right third steps to the
neighbour. Arrow keys move left, right, up and down, 't' starts or stops
the tour, '0' returns home, '+' and '-' zoom, dragging pans and the wheel
zooms. The status bar shows the current #key; pass it to --image to open
the viewer on that image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.config.applyLayout(cmd.Flags(), &flags.opts)
			source := c.config.captionSource(cmd.Flags(), captionsSrc)
			return c.runView(cmd.Context(), args[0], flags, source, strings.TrimPrefix(image, "#"), logFile)
		},
	}

	cmd.Flags().StringVar(&image, "image", "", "key of the image to zoom to after loading (deep link)")
	cmd.Flags().StringVar(&captionsSrc, "captions", "", "caption metadata file or http(s) URL")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the viewer runs")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runView(ctx context.Context, input string, flags layoutFlags, source, link, logFile string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New(errors.ErrCodeUnsupported, "view needs an interactive terminal")
	}

	runner, err := c.newRunner(flags.backend)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := flags.opts
	opts.Logger = c.Logger
	l, _, err := c.resolveLayout(ctx, runner, input, opts)
	if err != nil {
		return err
	}
	set := c.loadCaptions(ctx, source)

	// The alternate screen owns the terminal until the program exits.
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "open log file %s", logFile)
		}
		defer f.Close()
		logOut = f
	}
	c.Logger.SetOutput(logOut)
	defer c.Logger.SetOutput(os.Stderr)

	cols, rows, err := term.GetSize(fd)
	if err != nil {
		cols, rows = 80, 24
	}

	var prog *tea.Program
	clock := teaClock{send: func(msg tea.Msg) { prog.Send(msg) }}
	model := newViewModel(l, set, c.config.viewerConfig(), link, clock, nil, c.Logger, cols, rows)
	prog = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := prog.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("viewer: %w", err)
	}

	if key := model.loc.Fragment(); key != "" {
		printInfo("Last image: #%s", key)
		printNextStep("Reopen", appName+" view "+input+" --image "+key)
	}
	return nil
}

// =============================================================================
// viewModel - bubbletea program state
// =============================================================================

type loadedMsg struct{ index int }

type tickMsg time.Time

// pointer tracks a held mouse button.
type pointer struct {
	lastX, lastY int
	at           time.Time
	dragged      bool
}

// viewModel adapts terminal input and output to a viewer.Viewer. Every
// viewer call happens inside Update.
type viewModel struct {
	v    *viewer.Viewer
	vp   *termViewport
	surf *termSurface
	loc  *termLocation

	logger   *log.Logger
	frameLog *rate.Sometimes

	down *pointer
}

// newViewModel opens the viewer on l. link is the initial fragment; rows
// includes the status bar line.
func newViewModel(l layout.Result, set captions.Set, cfg viewer.Config, link string, clock viewer.Clock, now func() time.Time, logger *log.Logger, cols, rows int) *viewModel {
	m := &viewModel{
		vp:       newTermViewport(max(cols, 1), max(rows-1, 1), now),
		surf:     &termSurface{},
		loc:      &termLocation{fragment: link},
		logger:   logger,
		frameLog: &rate.Sometimes{Interval: time.Second},
	}
	m.v = viewer.New(l, m.vp, m.surf, m.loc, clock, set, cfg)
	m.v.Open()
	return m
}

func (m *viewModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.vp.items)+1)
	for i := range m.vp.items {
		cmds = append(cmds, func() tea.Msg { return loadedMsg{index: i} })
	}
	cmds = append(cmds, tick())
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.resize(msg.Width, msg.Height-1)
		w, h := m.vp.PixelSize()
		m.v.Resize(int(w), int(h), 1)
	case loadedMsg:
		if msg.index >= 0 && msg.index < len(m.vp.items) {
			m.v.ItemLoaded(msg.index, m.vp.items[msg.index])
		}
		m.v.ViewportChanged()
	case timerMsg:
		msg.fn()
		m.v.ViewportChanged()
	case tickMsg:
		if m.vp.Animating() {
			m.frameLog.Do(func() {
				m.logger.Debug("frame", "bounds", m.vp.Bounds(true), "fragment", m.loc.Fragment())
			})
		}
		m.v.ViewportChanged()
		return m, tick()
	case tea.KeyMsg:
		if quit := m.key(msg); quit {
			return m, tea.Quit
		}
		m.v.ViewportChanged()
	case tea.MouseMsg:
		m.mouse(msg)
		m.v.ViewportChanged()
	}
	return m, nil
}

// key applies a key press and reports whether the program should quit.
func (m *viewModel) key(msg tea.KeyMsg) bool {
	w, h := m.vp.PixelSize()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return true
	case "left", "h":
		m.v.Key(viewer.KeyLeft)
	case "right", "l":
		m.v.Key(viewer.KeyRight)
	case "up", "k":
		m.v.Key(viewer.KeyUp)
	case "down", "j":
		m.v.Key(viewer.KeyDown)
	case "t", " ":
		m.v.Key(viewer.KeyTour)
	case "0", "home":
		m.v.Key(viewer.KeyHome)
	case "+", "=":
		m.v.Wheel()
		m.vp.zoom(zoomStep, w/2, h/2)
	case "-", "_":
		m.v.Wheel()
		m.vp.zoom(1/zoomStep, w/2, h/2)
	}
	return false
}

func (m *viewModel) mouse(msg tea.MouseMsg) {
	// Aim at the centre of the cell.
	px := float64(msg.X*cellW + cellW/2)
	py := float64(msg.Y*cellH + cellH/2)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.v.Wheel()
		m.vp.zoom(zoomStep, px, py)
	case msg.Button == tea.MouseButtonWheelDown:
		m.v.Wheel()
		m.vp.zoom(1/zoomStep, px, py)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.Y >= m.vp.rows {
			return
		}
		m.v.PointerDown()
		m.down = &pointer{lastX: msg.X, lastY: msg.Y, at: m.vp.now()}
	case msg.Action == tea.MouseActionMotion && m.down != nil:
		dx, dy := msg.X-m.down.lastX, msg.Y-m.down.lastY
		if dx == 0 && dy == 0 {
			return
		}
		m.down.dragged = true
		m.down.lastX, m.down.lastY = msg.X, msg.Y
		m.vp.pan(float64(dx*cellW), float64(dy*cellH))
	case msg.Action == tea.MouseActionRelease && m.down != nil:
		quick := !m.down.dragged && m.vp.now().Sub(m.down.at) < clickTime
		m.down = nil
		m.v.Click(px, py, quick)
	}
}

// =============================================================================
// Rendering
// =============================================================================

// Cell styles. Values >= 0 index tileStyles.
const (
	cellPlain    = -1
	cellFeatured = -2
	cellLabel    = -3
	cellLabelDim = -4
)

var tileStyles = func() []lipgloss.Style {
	out := make([]lipgloss.Style, len(tileColors))
	for i, c := range tileColors {
		out[i] = lipgloss.NewStyle().Background(c)
	}
	return out
}()

func cellStyle(k int) lipgloss.Style {
	switch k {
	case cellFeatured:
		return styleFeatured
	case cellLabel:
		return styleLabel
	case cellLabelDim:
		return styleLabelDim
	case cellPlain:
		return lipgloss.NewStyle()
	}
	return tileStyles[k%len(tileStyles)]
}

type cell struct {
	ch    rune
	style int
}

func (m *viewModel) View() string {
	cols, rows := m.vp.cols, m.vp.rows
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' ', style: cellPlain}
		}
	}

	featured, hasFeatured := m.v.Navigator().Featured()
	for i, it := range m.vp.items {
		if it.opacity <= 0 {
			continue
		}
		style := i % len(tileStyles)
		if hasFeatured && i == featured {
			style = cellFeatured
		}
		m.fillRect(grid, it.rect(), style)
	}

	for _, t := range m.surf.texts {
		style := cellLabel
		if t.alpha < 0.5 {
			style = cellLabelDim
		}
		runes := []rune(t.text)
		y := int(t.y / cellH)
		x0 := int(math.Round(t.x/cellW)) - len(runes)/2
		if y < 0 || y >= rows {
			continue
		}
		for j, r := range runes {
			if x := x0 + j; x >= 0 && x < cols {
				grid[y][x] = cell{ch: r, style: style}
			}
		}
	}

	var b strings.Builder
	for _, line := range grid {
		writeRow(&b, line)
		b.WriteByte('\n')
	}
	b.WriteString(m.statusBar(cols))
	return b.String()
}

// fillRect paints the cells covered by r in layout units.
func (m *viewModel) fillRect(grid [][]cell, r layout.Rect, style int) {
	x0, y0 := m.vp.PixelFromPoint(r.X, r.Y, true)
	x1, y1 := m.vp.PixelFromPoint(r.Right(), r.Bottom(), true)
	c0, c1 := int(math.Floor(x0/cellW)), int(math.Ceil(x1/cellW))
	r0, r1 := int(math.Floor(y0/cellH)), int(math.Ceil(y1/cellH))
	for y := max(r0, 0); y < min(r1, len(grid)); y++ {
		for x := max(c0, 0); x < min(c1, len(grid[y])); x++ {
			grid[y][x] = cell{ch: ' ', style: style}
		}
	}
}

// writeRow renders runs of equally styled cells together.
func writeRow(b *strings.Builder, line []cell) {
	for start := 0; start < len(line); {
		end := start
		var run []rune
		for end < len(line) && line[end].style == line[start].style {
			run = append(run, line[end].ch)
			end++
		}
		b.WriteString(cellStyle(line[start].style).Render(string(run)))
		start = end
	}
}

func (m *viewModel) statusBar(cols int) string {
	left := " " + appName
	if !m.v.Revealed() {
		left += "  loading…"
	} else if key := m.loc.Fragment(); key != "" {
		left += "  " + styleFragment.Render("#"+key)
	}
	if t := m.v.Tour(); t.Running() {
		left += fmt.Sprintf("  tour %d/%d", t.Index()+1, m.v.Frame().Len())
	}
	help := "←→↑↓ move · click zoom · t tour · 0 home · +/- zoom · q quit "
	gap := cols - lipgloss.Width(left) - lipgloss.Width(help)
	line := left
	if gap > 0 {
		line += strings.Repeat(" ", gap) + help
	}
	return styleStatusBar.Width(cols).MaxWidth(cols).Render(line)
}
