package viz

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type TickMsg time.Time

const (
	defaultCols = 80
	defaultRows = 24
	panelWidth  = 50
)

func tick(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// canvasCells fits the canvas beside the side panel in a terminal of the
// given size.
func canvasCells(termW, termH int) (int, int) {
	w := termW - panelWidth - 2*canvasOffsetX
	h := termH - 2*canvasOffsetY
	if w < 20 {
		w = 20
	}
	if h < 10 {
		h = 10
	}
	return w, h
}

// Run starts m full screen with mouse reporting.
func Run(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
