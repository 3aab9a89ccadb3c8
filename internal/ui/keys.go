package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText(zoomed bool) string {
	s := "drag zoom"
	if zoomed {
		s += "  r/click reset"
	} else {
		s += "  r reset"
	}
	return s + "  space play  s save  q quit"
}
