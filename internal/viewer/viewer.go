// Package viewer is a Bubbletea program that shows a canvas in the
// terminal, two pixel rows per character cell.
package viewer

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wesen/tinyraster/pkg/canvas"
	"github.com/wesen/tinyraster/pkg/raster"
)

const panStep = 4

type keyMap struct {
	Quit  key.Binding
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Flip  key.Binding
	Reset key.Binding
}

var keys = keyMap{
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "pan")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "pan")),
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "pan")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "pan")),
	Flip:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flip")),
	Reset: key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset")),
}

var titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffc8")).Bold(true)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))

// Model is the viewer state. The image is never modified.
type Model struct {
	Width, Height int // terminal size
	OffX, OffY    int // top-left pixel of the visible window
	Flipped       bool

	title string
	img   *canvas.Image
	bg    raster.Color
}

// New creates a viewer for img. Transparent pixels are shown as bg.
// When flipped is set the image is displayed with row 0 at the bottom.
func New(title string, img *canvas.Image, bg raster.Color, flipped bool) Model {
	return Model{title: title, img: img, bg: bg, Flipped: flipped}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.clamp()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.OffY -= panStep
		case key.Matches(msg, keys.Down):
			m.OffY += panStep
		case key.Matches(msg, keys.Left):
			m.OffX -= panStep
		case key.Matches(msg, keys.Right):
			m.OffX += panStep
		case key.Matches(msg, keys.Flip):
			m.Flipped = !m.Flipped
		case key.Matches(msg, keys.Reset):
			m.OffX, m.OffY = 0, 0
		}
		m.clamp()
	}
	return m, nil
}

// viewport returns the visible window size in pixels.
func (m Model) viewport() (w, h int) {
	return max(m.Width, 0), max(m.Height-2, 0) * 2
}

// clamp keeps the window inside the image.
func (m *Model) clamp() {
	w, h := m.viewport()
	m.OffX = min(max(m.OffX, 0), max(m.img.W-w, 0))
	m.OffY = min(max(m.OffY, 0), max(m.img.H-h, 0))
}

// window copies the visible part of the image into a new canvas.
func (m Model) window() *canvas.Image {
	w, h := m.viewport()
	w = min(w, m.img.W-m.OffX)
	h = min(h, m.img.H-m.OffY)
	win := canvas.New(w, h)
	for y := 0; y < win.H; y++ {
		sy := m.OffY + y
		if m.Flipped {
			sy = m.img.H - 1 - sy
		}
		for x := 0; x < win.W; x++ {
			win.SetPixel(x, y, m.img.Get(m.OffX+x, sy))
		}
	}
	return win
}

// Render draws the whole screen as a string.
func (m Model) Render() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}
	title := titleStyle.Render(fmt.Sprintf("%s  %dx%d", m.title, m.img.W, m.img.H))
	footer := footerStyle.Render(fmt.Sprintf("offset %d,%d  flipped=%v  ←↑↓→ pan · f flip · 0 reset · q quit",
		m.OffX, m.OffY, m.Flipped))
	return lipgloss.JoinVertical(lipgloss.Left, title, m.window().Render(m.bg), footer)
}

// View implements tea.Model.
func (m Model) View() tea.View {
	return tea.NewView(m.Render())
}
