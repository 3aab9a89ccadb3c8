package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/spectr/internal/playback"
	"github.com/olivier-w/spectr/internal/view"
)

type generationDoneMsg struct {
	done view.Completion
}

type imageSavedMsg struct {
	destName string
	err      error
}

type playerReadyMsg struct {
	player *playback.Player
	err    error
}

type statusExpiredMsg struct{}

// waitForCompletion blocks until the next generation finishes. It is
// re-armed after every generationDoneMsg so exactly one waiter exists.
func waitForCompletion(c *view.Controller) tea.Cmd {
	return func() tea.Msg {
		return generationDoneMsg{done: <-c.Completions()}
	}
}

func expireStatusCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return statusExpiredMsg{}
	})
}
