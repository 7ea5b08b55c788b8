package viewer

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/tinyraster/pkg/canvas"
	"github.com/wesen/tinyraster/pkg/raster"
)

func testImage() *canvas.Image {
	m := canvas.New(100, 100)
	raster.Line(m, 13, 20, 80, 40, raster.White())
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	vm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return vm
}

func TestRenderBeforeSize(t *testing.T) {
	m := New("demo", testImage(), raster.Black(), false)
	if got := m.Render(); got != "" {
		t.Fatalf("expected empty render before WindowSizeMsg, got %q", got)
	}
}

func TestRenderWindow(t *testing.T) {
	m := New("demo", testImage(), raster.Black(), false)
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})

	out := m.Render()
	lines := strings.Split(out, "\n")
	// title + 10 canvas rows + footer
	if len(lines) != 12 {
		t.Fatalf("expected 12 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "demo") || !strings.Contains(lines[0], "100x100") {
		t.Errorf("title line missing name or size: %q", lines[0])
	}
	if n := strings.Count(out, "▀"); n != 40*10 {
		t.Errorf("expected %d half blocks, got %d", 40*10, n)
	}
}

func TestPanClamps(t *testing.T) {
	m := New("demo", testImage(), raster.Black(), false)
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})

	m = update(t, m, tea.KeyPressMsg{Code: tea.KeyLeft})
	m = update(t, m, tea.KeyPressMsg{Code: tea.KeyUp})
	if m.OffX != 0 || m.OffY != 0 {
		t.Fatalf("panning past the origin: offset %d,%d", m.OffX, m.OffY)
	}

	for i := 0; i < 100; i++ {
		m = update(t, m, tea.KeyPressMsg{Code: tea.KeyRight})
		m = update(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	}
	// 40 columns and 20 pixel rows visible on a 100×100 image.
	if m.OffX != 60 || m.OffY != 80 {
		t.Fatalf("expected offset clamped to 60,80, got %d,%d", m.OffX, m.OffY)
	}

	m = update(t, m, tea.KeyPressMsg{Code: '0', Text: "0"})
	if m.OffX != 0 || m.OffY != 0 {
		t.Fatalf("reset: expected 0,0, got %d,%d", m.OffX, m.OffY)
	}
}

func TestFlipWindow(t *testing.T) {
	img := canvas.New(4, 4)
	img.SetPixel(0, 0, raster.Red())
	m := New("flip", img, raster.Black(), false)
	m = update(t, m, tea.WindowSizeMsg{Width: 10, Height: 10})

	if got := m.window().Get(0, 0); got != raster.Red() {
		t.Fatalf("unflipped: expected red at top-left, got %v", got)
	}
	m = update(t, m, tea.KeyPressMsg{Code: 'f', Text: "f"})
	if !m.Flipped {
		t.Fatal("f should toggle Flipped")
	}
	win := m.window()
	if got := win.Get(0, 3); got != raster.Red() {
		t.Fatalf("flipped: expected red at bottom-left, got %v", got)
	}
	if img.Get(0, 0) != raster.Red() {
		t.Fatal("viewer must not modify the image")
	}
}

func TestQuit(t *testing.T) {
	m := New("demo", testImage(), raster.Black(), false)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", cmd())
	}
}
