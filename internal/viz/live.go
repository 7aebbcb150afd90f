package viz

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sandsim/internal/command"
	"github.com/san-kum/sandsim/internal/config"
	"github.com/san-kum/sandsim/internal/control"
	"github.com/san-kum/sandsim/internal/dynamo"
	"github.com/san-kum/sandsim/internal/metrics"
	"github.com/san-kum/sandsim/internal/sim"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	minCols         = 20
	minRows         = 8
	historyCapacity = 300
	consoleHistory  = 50
)

type TickMsg time.Time

// Model is the live sandbox: a world driven at a fixed rate, a pointer drag
// latch and a one-line console.
type Model struct {
	world  *sim.World
	scene  *config.Config
	dt     float64
	logger *log.Logger

	drag   *control.Drag
	energy *metrics.KineticEnergy
	hist   []float64

	canvas *Canvas
	vp     Viewport
	theme  Theme
	styles Styles

	running  bool
	showHelp bool

	params   []string
	initial  map[string]float64
	selected int

	console  bool
	input    string
	history  []string
	histAt   int
	status   string
	statusOK bool
}

// NewModel wraps a world built from scene. The scene is replayed on reset.
func NewModel(w *sim.World, scene *config.Config, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tn := w.Tunables()
	initial := make(map[string]float64)
	for _, name := range tn.Names() {
		initial[name], _ = tn.Get(name)
	}

	m := Model{
		world:    w,
		scene:    scene,
		dt:       scene.Dt,
		logger:   logger,
		drag:     control.NewDrag(),
		energy:   metrics.NewKineticEnergy(),
		hist:     make([]float64, 0, historyCapacity),
		running:  true,
		params:   tn.Names(),
		initial:  initial,
		status:   "press : for the console, ? for help",
		statusOK: true,
	}
	m.setTheme(Themes[0])
	m.resize(defaultCols, defaultRows)
	return m
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.styles = NewStyles(t)
}

func (m *Model) resize(cols, rows int) {
	cols, rows = max(cols, minCols), max(rows, minRows)
	m.canvas = NewCanvas(cols, rows)
	width, height := m.world.Bounds()
	m.vp = Fit(width, height, cols, rows)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// canvas border takes two cells each way
		m.resize(msg.Width-statsWidth-5, msg.Height-3)
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		if m.console {
			m.consoleKey(msg)
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "s":
			if !m.running {
				m.step()
			}
		case "tab":
			m.selected = (m.selected + 1) % len(m.params)
		case "shift+tab":
			m.selected = (m.selected + len(m.params) - 1) % len(m.params)
		case "up", "k":
			m.adjustParam(1)
		case "down", "j":
			m.adjustParam(-1)
		case ":":
			m.console, m.input, m.histAt = true, "", len(m.history)
		case "t":
			m.setTheme(NextTheme(m.theme.Name))
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// step advances the world one frame with the current drag target.
func (m *Model) step() {
	m.world.Tick(m.dt, m.drag.Target())
	m.energy.Observe(m.world.Frame())
	m.hist = append(m.hist, m.energy.Sample())
	if len(m.hist) > historyCapacity {
		m.hist = m.hist[1:]
	}
	if err := m.world.Validate(); err != nil {
		m.running = false
		m.setStatus(fmt.Sprintf("paused: %v", err), false)
		m.logger.Error("invalid state", "step", m.world.Step(), "err", err)
	}
}

// mouse maps terminal cells inside the canvas border to world positions.
// Left button drags, right button spawns a circle.
func (m *Model) mouse(msg tea.MouseMsg) {
	pos := m.vp.CellToWorld(msg.X-1, msg.Y-1)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if id, ok := m.drag.Press(m.world, pos); ok {
				m.logger.Debug("drag", "body", id, "pos", pos)
			}
		case tea.MouseButtonRight:
			id := m.world.Spawn(0, m.world.NextColor(), pos)
			m.logger.Debug("spawn", "body", id, "pos", pos)
		}
	case tea.MouseActionMotion:
		m.drag.Move(pos)
	case tea.MouseActionRelease:
		m.drag.Release(m.world)
	}
}

func (m *Model) consoleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.console = false
	case tea.KeyEnter:
		m.console = false
		m.exec(m.input)
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyUp:
		if m.histAt > 0 {
			m.histAt--
			m.input = m.history[m.histAt]
		}
	case tea.KeyDown:
		if m.histAt < len(m.history)-1 {
			m.histAt++
			m.input = m.history[m.histAt]
		} else {
			m.histAt, m.input = len(m.history), ""
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
}

// exec runs one console line against the world.
func (m *Model) exec(line string) {
	cmd, err := command.Parse(line)
	if err != nil {
		m.setStatus(err.Error(), false)
		m.logger.Warn("console", "line", line, "err", err)
		return
	}
	if cmd == nil {
		return
	}

	m.history = append(m.history, cmd.String())
	if len(m.history) > consoleHistory {
		m.history = m.history[1:]
	}

	out, err := cmd.Apply(m.world)
	if err != nil {
		m.setStatus(err.Error(), false)
		m.logger.Warn("console", "cmd", cmd.String(), "err", err)
		return
	}
	if _, ok := cmd.(command.Reset); ok {
		m.drag.Release(m.world)
		m.hist = m.hist[:0]
	}
	m.setStatus(out, true)
	m.logger.Info("console", "cmd", cmd.String(), "result", out)
}

func (m *Model) setStatus(s string, ok bool) {
	m.status, m.statusOK = s, ok
}

// adjustParam nudges the selected tunable by 10% of its magnitude, with a
// floor so zero values can move.
func (m *Model) adjustParam(dir float64) {
	tn := m.world.Tunables()
	name := m.params[m.selected]
	v, err := tn.Get(name)
	if err != nil {
		return
	}
	step := math.Max(math.Abs(v)*0.1, 0.01*math.Max(math.Abs(m.initial[name]), 1e-3))
	if err := tn.Set(name, v+dir*step); err != nil {
		m.setStatus(err.Error(), false)
	}
}

// reset reloads the scene with the tunables as they were at start.
func (m *Model) reset() {
	m.drag.Release(m.world)
	m.world.Reset()
	tn := m.world.Tunables()
	for name, v := range m.initial {
		_ = tn.Set(name, v)
	}
	m.energy.Reset()
	m.hist = m.hist[:0]
	if err := m.scene.Build(m.world); err != nil {
		m.setStatus(err.Error(), false)
		m.logger.Error("scene reload failed", "err", err)
		return
	}
	m.running = true
	m.setStatus("reset", true)
}

// draw renders walls, links and bodies onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()

	width, height := m.world.Bounds()
	x0, y0 := m.vp.ToScreen(dynamo.V(0, 0))
	x1, y1 := m.vp.ToScreen(dynamo.V(width-1, height-1))
	m.canvas.DrawLine(x0, y0, x1, y0, m.theme.Wall)
	m.canvas.DrawLine(x1, y0, x1, y1, m.theme.Wall)
	m.canvas.DrawLine(x1, y1, x0, y1, m.theme.Wall)
	m.canvas.DrawLine(x0, y1, x0, y0, m.theme.Wall)

	bodies := m.world.Bodies()
	line := func(a, b int, ink dynamo.Color) {
		if a < 0 || b < 0 || a >= len(bodies) || b >= len(bodies) {
			return
		}
		ax, ay := m.vp.ToScreen(bodies[a].Pos)
		bx, by := m.vp.ToScreen(bodies[b].Pos)
		m.canvas.DrawLine(ax, ay, bx, by, ink)
	}
	for _, l := range m.world.Links() {
		line(l.A, l.B, m.theme.Spring)
	}
	for _, l := range m.world.StaticLinks() {
		line(l.A, l.B, m.theme.Rigid)
	}

	for i := range bodies {
		x, y := m.vp.ToScreen(bodies[i].Pos)
		ink := bodies[i].Color
		if bodies[i].Dragged {
			ink = m.theme.Rigid
		}
		m.canvas.DrawCircle(x, y, m.vp.Length(bodies[i].Radius), ink)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	st := m.styles
	canvasView := st.Canvas.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(st.Header.Render("SANDSIM") + "\n")
	if m.running {
		s.WriteString(st.Running.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(st.Paused.Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.Label.Render(label) + st.Value.Render(value) + "\n")
	}
	row("Bodies", fmt.Sprintf("%d", m.world.Len()))
	row("Links", fmt.Sprintf("%d / %d", len(m.world.Links()), len(m.world.StaticLinks())))
	row("Contacts", fmt.Sprintf("%d", m.world.Pairs()/2))
	row("Step", fmt.Sprintf("%d", m.world.Step()))
	row("Time", fmt.Sprintf("%.2f", m.world.Time()))
	row("Energy", formatValue(m.energy.Sample()))

	if len(m.hist) > 1 {
		chart := asciigraph.Plot(m.hist, asciigraph.Height(4), asciigraph.Width(statsWidth-18), asciigraph.Caption("kinetic energy"))
		s.WriteString(st.Graph.Render(chart) + "\n")
	}

	s.WriteString("\nTUNABLES\n")
	tn := m.world.Tunables()
	for i, name := range m.params {
		v, _ := tn.Get(name)
		line := fmt.Sprintf("%-9s %s %s", name, ParamBar(v, m.initial[name], 8), formatValue(v))
		if i == m.selected {
			s.WriteString(st.Active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.Label.UnsetWidth().Render(line) + "\n")
		}
	}

	s.WriteString(st.Help.Render("SP:Pause S:Step R:Reset Q:Quit\nTab:Param ↑↓:Tune T:Theme\n:Console ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.Stats.Render(s.String()))

	var bottom string
	switch {
	case m.console:
		bottom = st.Prompt.Render(":") + m.input + "█"
	case m.statusOK:
		bottom = st.Value.Render(m.status)
	default:
		bottom = st.Error.Render(m.status)
	}

	view := mainView + "\n" + bottom
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

const helpText = `
  mouse left    drag the nearest body
  mouse right   spawn a circle
  space         pause / resume
  s             single step while paused
  r             reload the scene
  tab / ↑ ↓     select and tune a parameter
  :             console, e.g. ":rope 400 40 200 10"
  t             cycle themes
  q             quit
`
