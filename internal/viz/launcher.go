package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/logging"
	"github.com/san-kum/orbitlab/internal/scene"
)

var sceneInfo = map[string]string{
	"orbit": "planets around one attractor",
	"field": "field around a straight wire",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

type input struct {
	label, value string
}

// Launcher picks a scene, collects its free-text inputs and then hosts the
// scene's model until esc returns to the menu.
type Launcher struct {
	cfg           *config.Config
	log           logging.Logger
	state, cursor int
	scenes        []string
	selected      string
	inputs        []input
	inputCursor   int
	editing       bool
	editBuf       string
	width, height int
	active        tea.Model
}

func NewLauncher(cfg *config.Config, log logging.Logger) *Launcher {
	return &Launcher{
		cfg:    cfg,
		log:    log,
		state:  stateMenu,
		scenes: []string{"orbit", "field"},
	}
}

func (m *Launcher) Init() tea.Cmd { return nil }

func (m *Launcher) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch m.state {
		case stateMenu:
			return m.menuKey(msg)
		case stateConfig:
			return m.configKey(msg)
		case stateSim:
			if msg.String() == "esc" {
				m.leave()
				return m, nil
			}
		}
	}
	if m.state == stateSim && m.active != nil {
		var cmd tea.Cmd
		m.active, cmd = m.active.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Launcher) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenes)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.scenes[m.cursor]
		m.state, m.inputCursor = stateConfig, 0
		m.inputs = m.inputsFor(m.selected)
	}
	return m, nil
}

func (m *Launcher) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.Type {
		case tea.KeyEnter:
			m.inputs[m.inputCursor].value = m.editBuf
			m.editing, m.editBuf = false, ""
		case tea.KeyEsc:
			m.editing, m.editBuf = false, ""
		case tea.KeyBackspace:
			if r := []rune(m.editBuf); len(r) > 0 {
				m.editBuf = string(r[:len(r)-1])
			}
		case tea.KeySpace:
			m.editBuf += " "
		case tea.KeyRunes:
			m.editBuf += string(msg.Runes)
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.inputCursor > 0 {
			m.inputCursor--
		}
	case "down", "j":
		if m.inputCursor < len(m.inputs)-1 {
			m.inputCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, m.inputs[m.inputCursor].value
	case "s":
		return m, m.start()
	}
	return m, nil
}

func (m *Launcher) inputsFor(name string) []input {
	switch name {
	case "orbit":
		in := []input{{label: m.cfg.Orbital.Sun.Name, value: "Original"}}
		for _, b := range m.cfg.Orbital.Bodies {
			in = append(in, input{label: b.Name, value: "Original"})
		}
		return in
	case "field":
		return []input{
			{label: "Strength", value: "Original"},
			{label: "Direction", value: "counter-clockwise"},
		}
	}
	return nil
}

// Value returns the text currently entered for label.
func (m *Launcher) Value(label string) string {
	for _, in := range m.inputs {
		if in.label == label {
			return in.value
		}
	}
	return ""
}

func (m *Launcher) start() tea.Cmd {
	switch m.selected {
	case "orbit":
		bodies := make(map[string]string, len(m.inputs))
		for _, in := range m.inputs[1:] {
			bodies[in.label] = in.value
		}
		params := scene.ParseOrbitalParams(m.cfg.Orbital, m.inputs[0].value, bodies)
		m.active = NewOrbitModel(m.cfg, params, m.log)
	case "field":
		fm := NewFieldModel(m.cfg, m.log)
		fm.Scene().SetStrength(scene.ParseMass(m.Value("Strength"), m.cfg.Magnetic.DefaultStrength))
		fm.Scene().SetDirection(scene.ParseDirection(m.Value("Direction")))
		m.active = fm
	default:
		return nil
	}
	m.state = stateSim
	if m.width > 0 {
		m.active, _ = m.active.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}
	return m.active.Init()
}

// leave stops the hosted scene and returns to the menu. Its tick chain dies
// because ticks are no longer forwarded.
func (m *Launcher) leave() {
	switch a := m.active.(type) {
	case OrbitModel:
		a.Scene().Reset()
	case FieldModel:
		a.Scene().Stop()
	}
	m.active = nil
	m.state = stateMenu
}

func (m *Launcher) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		if m.active != nil {
			return m.active.View()
		}
	}
	return ""
}

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuAccent   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

func keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(menuKeyStyle.Render(pairs[i]) + menuInactive.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m *Launcher) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("ORBITLAB") + "\n    " + menuSub.Render("gravity and field visualizer") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.scenes {
		desc := sceneInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-10s", name)), menuAccent.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuInactive.Render(fmt.Sprintf("  %-10s", name)), menuInactive.Render(desc)))
		}
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m *Launcher) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(m.selected)) + "\n    " + menuSub.Render(sceneInfo[m.selected]) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, in := range m.inputs {
		val := in.value
		if m.editing && i == m.inputCursor {
			val = m.editBuf + "_"
		}
		if i == m.inputCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-10s", in.label)), menuAccent.Bold(true).Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuInactive.Render(fmt.Sprintf("  %-10s", in.label)), menuInactive.Render(val)))
		}
	}
	b.WriteString("\n    " + menuSub.Render(`masses: "Original", "0.5 times" or a number`) + "\n")
	b.WriteString("\n    " + keyHints("j/k", "select", "enter", "edit", "s", "start", "esc", "back") + "\n")
	return b.String()
}
