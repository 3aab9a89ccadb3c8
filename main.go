package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/spectr/internal/engine"
	"github.com/olivier-w/spectr/internal/source"
	"github.com/olivier-w/spectr/internal/ui"
	"github.com/olivier-w/spectr/internal/view"
)

// Rendered spectrogram size in pixels. The terminal view downsamples this;
// the PNG export writes it as-is.
const (
	spectrogramWidth  = 1024
	spectrogramHeight = 512
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: spectr <audiofile>\nSupported formats: %s\n", source.SupportedExtsList())
		os.Exit(1)
	}

	src, err := source.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctrl := view.New(engine.Engine{}, spectrogramWidth, spectrogramHeight)
	model := ui.New(ctrl, src)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
