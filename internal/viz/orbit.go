package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/frame"
	"github.com/san-kum/orbitlab/internal/logging"
	"github.com/san-kum/orbitlab/internal/metrics"
	"github.com/san-kum/orbitlab/internal/scene"
)

// OrbitModel hosts an orbital scene: every TickMsg fires the frame queue
// once, and keys drive the scene's start, pause and reset.
type OrbitModel struct {
	params   scene.OrbitalParams
	fps      int
	canvas   *Canvas
	queue    *frame.Queue
	orbital  *scene.Orbital
	drift    *metrics.EnergyDrift
	survival *metrics.Survival
	theme    Theme
	showHelp bool
}

func NewOrbitModel(cfg *config.Config, params scene.OrbitalParams, log logging.Logger) OrbitModel {
	canvas := NewCanvas(defaultCols, defaultRows)
	queue := frame.NewQueue(frame.SystemClock{})
	orbital := scene.NewOrbital(cfg.Orbital, queue, canvas, scene.WithLogger(log))
	drift := metrics.NewEnergyDrift(metrics.DefaultHistory)
	survival := metrics.NewSurvival()
	orbital.AddObserver(metrics.Set{drift, survival})

	return OrbitModel{
		params:   params,
		fps:      cfg.View.FPS,
		canvas:   canvas,
		queue:    queue,
		orbital:  orbital,
		drift:    drift,
		survival: survival,
		theme:    GetTheme(cfg.View.Theme),
	}
}

// Scene exposes the hosted orbital scene.
func (m OrbitModel) Scene() *scene.Orbital { return m.orbital }

func (m OrbitModel) Init() tea.Cmd {
	m.orbital.Start(m.params)
	return tick(m.fps)
}

func (m OrbitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.orbital.Reset()
			return m, tea.Quit
		case " ", "p":
			m.orbital.TogglePause()
		case "s":
			m.orbital.Start(m.params)
		case "r":
			m.orbital.Reset()
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.canvas.Resize(canvasCells(msg.Width, msg.Height))
	case TickMsg:
		m.queue.Tick()
		return m, tick(m.fps)
	}
	return m, nil
}

func (m OrbitModel) View() string {
	st := m.theme.Styles()
	snap := m.orbital.Snapshot()

	var s strings.Builder
	s.WriteString(st.Title.Render(GradientText("ORBITLAB · ORBIT", colorful.Color{R: 1, G: 0.82, B: 0.48}, colorful.Color{R: 0.5, G: 0.75, B: 1})) + "\n")
	s.WriteString(stateBadge(st, snap.State) + "\n\n")

	s.WriteString(Row(st, "Sim time", fmt.Sprintf("%.1fs", snap.Time)))
	s.WriteString(Row(st, "Survival", fmt.Sprintf("%.0f%%", 100*m.survival.Value())))
	s.WriteString(Row(st, "Max drift", fmt.Sprintf("%.3e", m.drift.Value())))
	if h := m.drift.History(); len(h) > 1 {
		chart := asciigraph.Plot(h, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("energy drift"))
		s.WriteString(st.Graph.Render(chart) + "\n")
	}

	s.WriteString("\n")
	for _, line := range strings.Split(m.orbital.Status(), " · ") {
		s.WriteString(st.Value.Render(line) + "\n")
	}

	s.WriteString(st.Hint.Render(Separator(30, st) + "\nS:Start SP:Pause R:Reset\nT:Theme ?:Help Q:Quit"))
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.Render()), st.Panel.Render(s.String()))
	if m.showHelp {
		return orbitHelp + "\n" + main
	}
	return main
}

func stateBadge(st Styles, s scene.State) string {
	switch s {
	case scene.Running:
		return st.Running.Render("● RUNNING")
	case scene.Paused:
		return st.Paused.Render("❚❚ PAUSED")
	}
	return st.Stopped.Render("■ STOPPED")
}

const orbitHelp = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  S        - Start (rebuild bodies)   ║
║  Space/P  - Pause/Resume             ║
║  R        - Reset                    ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
