package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/scene"
)

const (
	panelWidth = 30
	rotStep    = 0.1
)

// Source produces fresh snapshots. *scene.Builder satisfies it.
type Source interface {
	Refresh(ctx context.Context) (*scene.Snapshot, error)
}

type ViewerOptions struct {
	Evaluator field.Evaluator
	Extent    float64
	Spacing   float64
	Theme     string
}

type snapshotMsg struct {
	snap *scene.Snapshot
	err  error
}

// Viewer is the interactive Bubble Tea model. It holds at most one snapshot
// and swaps it whole when a refresh lands.
type Viewer struct {
	src     Source
	opts    ViewerOptions
	snap    *scene.Snapshot
	err     error
	cam     *Camera
	layers  Layers
	theme   int
	loading bool
	width   int
	height  int
}

func NewViewer(src Source, opts ViewerOptions) Viewer {
	if opts.Spacing <= 0 {
		opts.Spacing = 1
	}
	return Viewer{
		src:     src,
		opts:    opts,
		cam:     NewCamera(opts.Extent),
		layers:  AllLayers(),
		theme:   themeIndex(opts.Theme),
		loading: true,
		width:   100,
		height:  30,
	}
}

func (v Viewer) Init() tea.Cmd { return v.refresh() }

func (v Viewer) refresh() tea.Cmd {
	src := v.src
	return func() tea.Msg {
		snap, err := src.Refresh(context.Background())
		return snapshotMsg{snap: snap, err: err}
	}
}

// Snapshot returns the snapshot currently on screen, if any.
func (v Viewer) Snapshot() *scene.Snapshot { return v.snap }

func (v Viewer) Err() error { return v.err }

func (v Viewer) Layers() Layers { return v.layers }

func (v Viewer) Theme() Theme { return Themes[v.theme] }

func (v Viewer) Camera() Camera { return *v.cam }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
	case snapshotMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.snap = msg.snap
		}
	}
	return v, nil
}

func (v Viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// the camera is shared between copies of the model, so mutate a clone
	cam := *v.cam
	v.cam = &cam

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return v, tea.Quit
	case "left":
		v.cam.RotateY(-rotStep)
	case "right":
		v.cam.RotateY(rotStep)
	case "up":
		v.cam.RotateX(-rotStep)
	case "down":
		v.cam.RotateX(rotStep)
	case "+", "=":
		v.cam.ZoomIn()
	case "-", "_":
		v.cam.ZoomOut()
	case "0":
		v.cam.Reset()
	case "l":
		v.layers.Lines = !v.layers.Lines
	case "g":
		v.layers.Grid = !v.layers.Grid
	case "c":
		v.layers.Charges = !v.layers.Charges
	case "t":
		v.theme = (v.theme + 1) % len(Themes)
	case "r":
		if !v.loading {
			v.loading = true
			return v, v.refresh()
		}
	}
	return v, nil
}

func (v Viewer) View() string {
	theme := v.Theme()
	canvasW := max(v.width-panelWidth-6, 10)
	canvasH := max(v.height-3, 5)

	c := NewCanvas(canvasW, canvasH)
	DrawSnapshot(c, v.cam, v.snap, v.layers, theme, v.opts.Spacing)

	view := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(strings.TrimRight(c.String(), "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, view, v.sidebar(theme)) + "\n" + v.hints(theme)
}

func (v Viewer) sidebar(theme Theme) string {
	muted := lipgloss.NewStyle().Foreground(theme.Muted)
	var parts []string

	switch {
	case v.err != nil:
		parts = append(parts, BoxWithTitle("ERROR", lipgloss.NewStyle().Foreground(theme.Error).Render(v.err.Error()), panelWidth, theme))
	case v.snap == nil:
		parts = append(parts, muted.Render(" computing..."))
	}

	if v.snap != nil {
		parts = append(parts, SummaryPanel(v.snap.Summary, theme, panelWidth))
		parts = append(parts, ChargePanel(v.snap.Charges, theme, panelWidth))

		origin := v.opts.Evaluator.Potential(field.Vec3{}, v.snap.Charges)
		stats := fmt.Sprintf("lines   %d\nsamples %d\nV(0)    %.2e\nzoom    %.2fx\ntheme   %s",
			len(v.snap.Lines), len(v.snap.Samples), origin, v.cam.Zoom, theme.Name)
		parts = append(parts, BoxWithTitle("VIEW", muted.Render(stats), panelWidth, theme))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v Viewer) hints(theme Theme) string {
	key := lipgloss.NewStyle().Foreground(theme.Title).Bold(true)
	txt := lipgloss.NewStyle().Foreground(theme.Muted)
	pairs := [][2]string{
		{"arrows", "rotate"}, {"+/-", "zoom"}, {"l", "lines"}, {"g", "grid"},
		{"c", "charges"}, {"t", "theme"}, {"r", "refresh"}, {"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(" ")
	for _, p := range pairs {
		b.WriteString(key.Render(p[0]) + txt.Render(" "+p[1]+"  "))
	}
	return b.String()
}

// RunViewer starts the full-screen viewer and blocks until the user quits.
func RunViewer(src Source, opts ViewerOptions) error {
	_, err := tea.NewProgram(NewViewer(src, opts), tea.WithAltScreen()).Run()
	return err
}
