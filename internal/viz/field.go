package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/frame"
	"github.com/san-kum/orbitlab/internal/logging"
	"github.com/san-kum/orbitlab/internal/physics"
	"github.com/san-kum/orbitlab/internal/render"
	"github.com/san-kum/orbitlab/internal/scene"
)

const profileSamples = 40

// FieldModel hosts a magnetic scene. A left click places the compass and a
// shift+left click places the probe.
type FieldModel struct {
	cfg      config.MagneticConfig
	fps      int
	canvas   *Canvas
	queue    *frame.Queue
	magnetic *scene.Magnetic
	theme    Theme
	showHelp bool
}

func NewFieldModel(cfg *config.Config, log logging.Logger) FieldModel {
	canvas := NewCanvas(defaultCols, defaultRows)
	queue := frame.NewQueue(frame.SystemClock{})
	return FieldModel{
		cfg:      cfg.Magnetic,
		fps:      cfg.View.FPS,
		canvas:   canvas,
		queue:    queue,
		magnetic: scene.NewMagnetic(cfg.Magnetic, queue, canvas, scene.WithLogger(log)),
		theme:    GetTheme(cfg.View.Theme),
	}
}

// Scene exposes the hosted magnetic scene.
func (m FieldModel) Scene() *scene.Magnetic { return m.magnetic }

func (m FieldModel) Init() tea.Cmd {
	m.magnetic.Start()
	return tick(m.fps)
}

func (m FieldModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.magnetic.Stop()
			return m, tea.Quit
		case "+", "=", "up", "k":
			m.magnetic.SetStrength(m.magnetic.Field().Strength + m.cfg.StrengthStep)
		case "-", "_", "down", "j":
			m.magnetic.SetStrength(m.magnetic.Field().Strength - m.cfg.StrengthStep)
		case "d":
			m.magnetic.ReverseDirection()
		case "s":
			m.magnetic.Start()
		case "x":
			m.magnetic.Stop()
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			p := PixelAt(msg.X-canvasOffsetX, msg.Y-canvasOffsetY)
			m.magnetic.Click(p.X, p.Y, msg.Shift)
		}
	case tea.WindowSizeMsg:
		m.canvas.Resize(canvasCells(msg.Width, msg.Height))
	case TickMsg:
		m.queue.Tick()
		return m, tick(m.fps)
	}
	return m, nil
}

func (m FieldModel) View() string {
	st := m.theme.Styles()
	f := m.magnetic.Field()

	var s strings.Builder
	s.WriteString(st.Title.Render(GradientText("ORBITLAB · FIELD", colorful.Color{G: 1, B: 0.8}, colorful.Color{R: 0.1, G: 0.2, B: 0.5})) + "\n")
	if m.magnetic.IsRunning() {
		s.WriteString(st.Running.Render("● LIVE") + "\n\n")
	} else {
		s.WriteString(st.Stopped.Render("■ STOPPED") + "\n\n")
	}

	maxStrength := float64(f.MaxLines) / math.Max(f.LinesPerUnit, 1e-9)
	s.WriteString(Row(st, "Strength", fmt.Sprintf("%.2f", f.Strength)))
	s.WriteString(st.Label.Render("") + ProgressBar(f.Strength/maxStrength, 20, st) + "\n")
	s.WriteString(Row(st, "Direction", f.Direction.Glyph()+" "+f.Direction.String()))
	s.WriteString(Row(st, "Lines", fmt.Sprintf("%d", f.LineCount())))
	if c, ok := m.magnetic.Compass(); ok {
		s.WriteString(Row(st, "Compass", fmt.Sprintf("(%.0f, %.0f)", c.X, c.Y)))
	}
	if p, ok := m.magnetic.Probe(); ok {
		s.WriteString(Row(st, "Probe", fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y)))
	}

	if profile := strengthProfile(f, render.HalfExtent(m.canvas)); len(profile) > 1 {
		chart := asciigraph.Plot(profile, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("S(r)"))
		s.WriteString(st.Graph.Render(chart) + "\n")
	}
	s.WriteString("\n" + st.Value.Render(m.magnetic.Status()) + "\n")

	s.WriteString(st.Hint.Render(Separator(30, st) + "\n+/-:Strength D:Direction\nS:Start X:Stop T:Theme Q:Quit"))
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.Render()), st.Panel.Render(s.String()))
	if m.showHelp {
		return fieldHelp + "\n" + main
	}
	return main
}

// strengthProfile samples S(r) from the exclusion radius out to extent.
func strengthProfile(f physics.Field, extent float64) []float64 {
	readings := f.Profile(f.Radii(extent, profileSamples))
	out := make([]float64, 0, len(readings))
	for _, r := range readings {
		if !r.Infinite {
			out = append(out, r.Value)
		}
	}
	return out
}

const fieldHelp = `
╔══════════════════════════════════════╗
║           FIELD CONTROLS             ║
╠══════════════════════════════════════╣
║  Click        - Place compass        ║
║  Shift+Click  - Place probe          ║
║  +/-          - Current strength     ║
║  D            - Reverse direction    ║
║  S / X        - Start / Stop         ║
║  T            - Cycle themes         ║
║  Q            - Quit                 ║
╚══════════════════════════════════════╝`
