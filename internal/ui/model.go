package ui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/spectr/internal/playback"
	"github.com/olivier-w/spectr/internal/source"
	"github.com/olivier-w/spectr/internal/util"
	"github.com/olivier-w/spectr/internal/view"
)

// Image area placement within the terminal: 2-cell left margin, 5 header
// rows above, 5 rows of labels/status/help below.
const (
	imgLeft   = 2
	imgTop    = 5
	imgBottom = 5
)

// Model is the Bubbletea model for the spectr TUI. It owns the presentation
// only; all spectrogram state lives in the controller.
type Model struct {
	ctrl     *view.Controller
	srcPath  string
	title    string
	renderer *imageRenderer
	spinner  spinner.Model

	width  int
	height int

	player        *playback.Player
	openingPlayer bool

	selecting  bool
	selX0      int
	selY0      int
	selX1      int
	selY1      int

	saving    bool
	statusMsg string
	quitting  bool
}

// New creates the model and starts loading the source. Must be called
// before the program runs, from the same goroutine.
func New(ctrl *view.Controller, src *source.Source) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	ctrl.Load(src)

	return Model{
		ctrl:     ctrl,
		srcPath:  src.Path(),
		title:    src.Title(),
		renderer: newImageRenderer(),
		spinner:  s,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForCompletion(m.ctrl), tea.SetWindowTitle(m.title+" — spectr"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.ctrl.State().Phase == view.PhaseLoading {
			return m, cmd
		}
		return m, nil

	case generationDoneMsg:
		m.ctrl.Apply(msg.done)
		cmds := []tea.Cmd{waitForCompletion(m.ctrl)}
		if m.ctrl.State().Phase == view.PhaseLoading {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case imageSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Save failed: %v", msg.err)
		} else {
			m.statusMsg = fmt.Sprintf("Saved to %s", msg.destName)
		}
		return m, expireStatusCmd()

	case playerReadyMsg:
		m.openingPlayer = false
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Playback unavailable: %v", msg.err)
			return m, expireStatusCmd()
		}
		m.player = msg.player
		m.player.Toggle()
		return m, nil

	case statusExpiredMsg:
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		if m.player != nil {
			m.player.Close()
		}
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}
	switch msg.String() {
	case "r":
		m.ctrl.ResetZoom()
		if m.ctrl.State().Phase == view.PhaseLoading {
			return m, m.spinner.Tick
		}
		return m, nil

	case " ":
		if m.player != nil {
			m.player.Toggle()
			return m, nil
		}
		if m.openingPlayer || m.ctrl.Source() == nil {
			return m, nil
		}
		m.openingPlayer = true
		src := m.ctrl.Source()
		return m, func() tea.Msg {
			pcm, err := src.PCM()
			if err != nil {
				return playerReadyMsg{err: err}
			}
			p, err := playback.New(pcm)
			return playerReadyMsg{player: p, err: err}
		}

	case "s":
		disp := m.ctrl.State().Displayed
		if disp == nil || m.saving {
			return m, nil
		}
		m.saving = true
		m.statusMsg = "Saving..."
		img, srcPath := disp.Image, m.srcPath
		return m, func() tea.Msg {
			destName, err := savePNG(img, srcPath)
			return imageSavedMsg{destName: destName, err: err}
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	w, h := m.imageArea()
	x := clampInt(msg.X-imgLeft, 0, w-1)
	y := clampInt(msg.Y-imgTop, 0, h-1)

	switch {
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.selecting = true
		m.selX0, m.selY0 = x, y
		m.selX1, m.selY1 = x, y

	case msg.Action == tea.MouseActionMotion && m.selecting:
		m.selX1, m.selY1 = x, y

	case msg.Action == tea.MouseActionRelease && m.selecting:
		m.selecting = false
		m.selX1, m.selY1 = x, y
		return m.finishSelection()
	}
	return m, nil
}

// finishSelection turns the completed drag into a zoom, or a reset for a
// small click, using the displayed result's visible ranges.
func (m Model) finishSelection() (tea.Model, tea.Cmd) {
	disp := m.ctrl.State().Displayed
	if disp == nil {
		return m, nil
	}
	if isResetClick(m.selX1-m.selX0, m.selY1-m.selY0) {
		m.ctrl.ResetZoom()
		if m.ctrl.State().Phase == view.PhaseLoading {
			return m, m.spinner.Tick
		}
		return m, nil
	}

	w, h := m.imageArea()
	tr, fr := mapSelection(m.selX0, m.selY0, m.selX1, m.selY1, w, h, disp.Time, disp.Freq)
	m.ctrl.Zoom(tr, fr)
	return m, m.spinner.Tick
}

// imageArea returns the terminal cell size of the spectrogram viewport.
func (m Model) imageArea() (w, h int) {
	w = m.width - imgLeft*2
	if w < 16 {
		w = 16
	}
	h = m.height - imgTop - imgBottom
	if h < 4 {
		h = 4
	}
	return w, h
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.imageArea()
	st := m.ctrl.State()
	indent := strings.Repeat(" ", imgLeft)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(indent + headerStyle.Render("spectr") + "\n")
	b.WriteString("\n")
	b.WriteString(indent + titleStyle.Render(m.title) + "\n")

	disp := st.Displayed
	if disp != nil {
		b.WriteString(indent + axisStyle.Render(util.FormatFrequency(disp.Freq.Hi)) + "\n")
		for _, row := range m.renderer.render(disp.Image, w, h) {
			b.WriteString(indent + row + "\n")
		}
		b.WriteString(indent + axisStyle.Render(util.FormatFrequency(disp.Freq.Lo)) + "\n")
		b.WriteString(indent + m.timeAxis(disp.Time.Lo, disp.Time.Hi, w) + "\n")
	} else {
		b.WriteString("\n")
		for range h {
			b.WriteString("\n")
		}
		b.WriteString("\n\n")
	}

	b.WriteString("\n")
	b.WriteString(indent + m.statusLine(st) + "\n")
	b.WriteString(indent + helpStyle.Render(helpText(st.Zoomed)) + "\n")
	return b.String()
}

// timeAxis renders the left and right edge timestamps of the visible range.
func (m Model) timeAxis(lo, hi float64, width int) string {
	left := util.FormatTimestamp(lo)
	right := util.FormatTimestamp(hi)
	gap := width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return axisStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) statusLine(st view.State) string {
	if m.statusMsg != "" {
		return statusStyle.Render(m.statusMsg)
	}
	if m.selecting {
		disp := st.Displayed
		if disp != nil {
			w, h := m.imageArea()
			tr, fr := mapSelection(m.selX0, m.selY0, m.selX1, m.selY1, w, h, disp.Time, disp.Freq)
			return statusStyle.Render(fmt.Sprintf("select %s – %s   %s – %s",
				util.FormatTimestamp(tr.Lo), util.FormatTimestamp(tr.Hi),
				util.FormatFrequency(fr.Lo), util.FormatFrequency(fr.Hi)))
		}
	}
	switch st.Phase {
	case view.PhaseLoading:
		return statusStyle.Render(m.spinner.View() + " Generating spectrogram…")
	case view.PhaseError:
		return errorStyle.Render(fmt.Sprintf("Error: %v", st.Err))
	case view.PhaseDisplaying:
		status := "full view"
		if st.Zoomed {
			status = "zoomed"
		}
		playState := ""
		if m.player != nil && m.player.Playing() {
			playState = "  ▶ playing"
		}
		return statusStyle.Render(status + playState)
	default:
		return statusStyle.Render("no file loaded")
	}
}

// savePNG writes the image next to the source file and returns the
// destination filename.
func savePNG(img image.Image, srcPath string) (string, error) {
	dest := strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".spectrogram.png"
	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return "", err
	}
	return dest, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
