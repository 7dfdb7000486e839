package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/sim"
)

const (
	historyCapacity = 300

	// screen offset of the canvas, matching the canvas style padding
	canvasLeft = 2
	canvasTop  = 1
)

type TickMsg time.Time

type Options struct {
	TPS   int
	Theme string
	Seed  int64
}

// Model drives a sim.Layer from the terminal: ticks come from tea.Tick, the
// pointer from mouse motion and the viewport from the window size.
type Model struct {
	layer    *sim.Layer
	canvas   *Canvas
	tps      int
	seed     int64
	running  bool
	showHelp bool
	theme    int
	styles   styles
	history  []float64
	last     field.Stats
}

// NewModel wraps a layer whose surface is canvas.
func NewModel(layer *sim.Layer, canvas *Canvas, opts Options) Model {
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	theme := themeIndex(opts.Theme)
	return Model{
		layer:   layer,
		canvas:  canvas,
		tps:     opts.TPS,
		seed:    opts.Seed,
		running: true,
		theme:   theme,
		styles:  newStyles(Themes[theme]),
		history: make([]float64, 0, historyCapacity),
		last:    layer.Stats(),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.tps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.layer.Close()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(Themes[m.theme])
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		x, y := cellToPointer(msg.X, msg.Y)
		m.layer.MovePointer(x, y)
	case TickMsg:
		if m.layer.Closed() {
			return m, nil
		}
		m.step()
		return m, m.tick()
	}
	return m, nil
}

// cellToPointer maps a terminal cell to the sub-pixel at its centre.
func cellToPointer(x, y int) (float64, float64) {
	return float64((x-canvasLeft)*2 + 1), float64((y-canvasTop)*4 + 2)
}

func (m *Model) resize(w, h int) {
	cols := w - panelWidth - 2*canvasLeft - 2
	rows := h - 2*canvasTop
	if cols < 8 {
		cols = 8
	}
	if rows < 4 {
		rows = 4
	}
	m.layer.Resize(cols*2, rows*4)
	_ = m.layer.Redraw()
	slog.Debug("terminal resized", "cols", cols, "rows", rows)
}

func (m *Model) step() {
	if !m.running {
		return
	}
	if err := m.layer.Frame(); err != nil {
		return
	}
	m.last = m.layer.Stats()
	m.history = append(m.history, m.last.MeanOffset)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) reset() {
	if err := m.layer.Reset(m.seed); err != nil {
		return
	}
	_ = m.layer.Redraw()
	m.history = m.history[:0]
	m.last = m.layer.Stats()
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.styles
	canvasView := st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.header.Render("DRIFTFIELD") + "\n")
	if m.running {
		s.WriteString(st.live.Render("LIVE") + "\n\n")
	} else {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(panelWidth-10), asciigraph.Caption("mean offset"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", m.last.Tick))
	row("Particles", fmt.Sprintf("%d", m.last.Particles))
	row("Pointer", pointerLabel(m.layer.Pointer(), m.layer.Bounds()))
	row("Mean off", fmt.Sprintf("%.2f", m.last.MeanOffset))
	row("Peak off", fmt.Sprintf("%.2f", m.last.MaxOffset))

	frac := 0.0
	if m.last.Particles > 0 {
		frac = float64(m.last.Disturbed) / float64(m.last.Particles)
	}
	row("Disturbed", fmt.Sprintf("%s %d", ProgressBar(frac, 10), m.last.Disturbed))
	row("Theme", Themes[m.theme].Name)

	if m.showHelp {
		s.WriteString("\n" + st.header.Render("KEYS") + "\n" + st.value.Render(helpText))
	} else {
		s.WriteString(st.help.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\nT:Theme  ?:Help"))
	}

	// help lives in the panel so the canvas keeps its screen offset
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
}

const helpText = `Mouse    disturb the field
Space    pause/resume
R        respawn particles
T        cycle themes
?        hide this help
Q / Esc  quit`

func pointerLabel(p field.Vec2, b field.Bounds) string {
	if !b.Contains(p) {
		return "offscreen"
	}
	return fmt.Sprintf("%.0f, %.0f", p.X, p.Y)
}

// Run opens the alt screen and blocks until the user quits.
func Run(layer *sim.Layer, canvas *Canvas, opts Options) error {
	p := tea.NewProgram(NewModel(layer, canvas, opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
