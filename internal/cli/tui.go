package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bricklayer/pkg/geom"
	"github.com/matzehuels/bricklayer/pkg/plan"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Wall cell styles. Laid bricks are dark, bricks still to lay are light and
// the envelope of the current stride is shaded behind them.
var (
	cellLaid     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cellLast     = lipgloss.NewStyle().Foreground(colorCyan)
	cellTodo     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	cellEnvelope = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	defaultTick   = 150 * time.Millisecond
	defaultWidth  = 80
	defaultHeight = 24
	chromeLines   = 5 // title, status, blank, blank, help
	cellAspect    = 2 // terminal cells are about twice as tall as wide
)

type tickMsg time.Time

// WallModel is the bubbletea model that steps through the laying order.
type WallModel struct {
	spec   wall.Spec
	layout *geom.Layout
	in     plan.Instructions
	order  map[geom.Position]int // position to laying index

	Laid    int
	Total   int
	Playing bool
	Tick    time.Duration
	Width   int
	Height  int
}

// NewWallModel creates a model with nothing laid and playback paused.
func NewWallModel(s wall.Spec, p wall.Pattern, in plan.Instructions) WallModel {
	order := make(map[geom.Position]int, in.Count())
	for _, st := range in {
		for _, pos := range st.Steps {
			order[pos] = len(order)
		}
	}
	return WallModel{
		spec:   s,
		layout: geom.NewLayout(s, p),
		in:     in,
		order:  order,
		Total:  in.Count(),
		Tick:   defaultTick,
		Width:  defaultWidth,
		Height: defaultHeight,
	}
}

func (m WallModel) Init() tea.Cmd {
	return nil
}

func (m WallModel) tick() tea.Cmd {
	return tea.Tick(m.Tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m WallModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "space", "p":
			m.Playing = !m.Playing
			if m.Playing {
				if m.Laid == m.Total {
					m.Laid = 0
				}
				return m, m.tick()
			}
		case "right", "l", "enter":
			m.Playing = false
			m.Laid = min(m.Laid+1, m.Total)
		case "left", "h", "backspace":
			m.Playing = false
			m.Laid = max(m.Laid-1, 0)
		case "]":
			m.Playing = false
			m.Laid = m.nextStrideEnd()
		case "[":
			m.Playing = false
			m.Laid = m.prevStrideEnd()
		case "home", "g":
			m.Playing = false
			m.Laid = 0
		case "end", "G":
			m.Playing = false
			m.Laid = m.Total
		}
	case tickMsg:
		if !m.Playing {
			return m, nil
		}
		m.Laid = min(m.Laid+1, m.Total)
		if m.Laid == m.Total {
			m.Playing = false
			return m, nil
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	}
	return m, nil
}

// strideEnds returns the cumulative brick count at the end of each stride.
func (m WallModel) strideEnds() []int {
	ends := make([]int, len(m.in))
	n := 0
	for i, st := range m.in {
		n += len(st.Steps)
		ends[i] = n
	}
	return ends
}

func (m WallModel) nextStrideEnd() int {
	for _, e := range m.strideEnds() {
		if e > m.Laid {
			return e
		}
	}
	return m.Total
}

func (m WallModel) prevStrideEnd() int {
	ends := m.strideEnds()
	for i := len(ends) - 1; i >= 0; i-- {
		if ends[i] < m.Laid {
			return ends[i]
		}
	}
	return 0
}

// Stride returns the 1-based number of the stride the cursor belongs to.
func (m WallModel) Stride() int {
	if len(m.in) == 0 {
		return 0
	}
	return m.in.StrideAt(m.Laid) + 1
}

func (m WallModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s bond · %gx%g", m.spec.Bond, m.spec.Width, m.spec.Height)))
	b.WriteString("\n")
	state := "paused"
	if m.Playing {
		state = "playing"
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("brick %d/%d  stride %d/%d  %s", m.Laid, m.Total, m.Stride(), len(m.in), state)))
	b.WriteString("\n\n")
	b.WriteString(m.renderWall())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render("space play/pause  ←/→ brick  [/] stride  q quit"))

	return b.String()
}

// renderWall samples the wall at one point per terminal cell.
func (m WallModel) renderWall() string {
	cols, rows := m.gridSize()
	if cols <= 0 || rows <= 0 {
		return StyleWarning.Render("window too small")
	}
	sx := m.spec.Width / float64(cols)
	sy := m.spec.Height / float64(rows)

	env, hasEnv := m.envelope()
	var b strings.Builder
	for r := range rows {
		y := m.spec.Height - (float64(r)+0.5)*sy
		for c := range cols {
			x := (float64(c) + 0.5) * sx
			style, ch := m.cell(x, y)
			if hasEnv && inside(env, x, y) {
				style = style.Inherit(cellEnvelope)
			}
			b.WriteString(style.Render(ch))
		}
		if r < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// gridSize fits the wall into the window while keeping its proportions.
func (m WallModel) gridSize() (cols, rows int) {
	cols = m.Width - 2
	maxRows := m.Height - chromeLines
	if cols <= 0 || maxRows <= 0 || m.spec.Width <= 0 {
		return 0, 0
	}
	rows = int(math.Round(float64(cols) * m.spec.Height / m.spec.Width / cellAspect))
	if rows > maxRows {
		rows = maxRows
		cols = int(math.Round(float64(rows) * cellAspect * m.spec.Width / m.spec.Height))
	}
	return cols, max(rows, 1)
}

// cell returns the style and glyph for the wall point (x, y).
func (m WallModel) cell(x, y float64) (lipgloss.Style, string) {
	for i := range m.layout.Courses() {
		for j, r := range m.layout.Course(i) {
			if !inside(r, x, y) {
				continue
			}
			idx, ok := m.order[geom.Position{Column: j, Course: i}]
			switch {
			case ok && idx == m.Laid-1:
				return cellLast, "█"
			case ok && idx < m.Laid:
				return cellLaid, "█"
			}
			return cellTodo, "░"
		}
	}
	return lipgloss.NewStyle(), " "
}

func (m WallModel) envelope() (geom.Rect, bool) {
	if len(m.in) == 0 {
		return geom.Rect{}, false
	}
	o := m.in[m.in.StrideAt(m.Laid)].Envelope
	return geom.Rect{X: o.X, Y: o.Y, W: m.spec.Envelope.Length, H: m.spec.Envelope.Height}, true
}

func inside(r geom.Rect, x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Top()
}
