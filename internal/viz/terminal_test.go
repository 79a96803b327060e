package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/horyzen/internal/geodesic"
)

func TestTermModel_Update(t *testing.T) {
	frames := make(chan struct{}, 1)
	opts := TerminalOptions{PhotonSphere: true, Trail: 2}
	opts.defaults()
	m := newTermModel(2, opts, frames)

	m.Update(pointsMsg([]geodesic.Point{{X: 5}, {Y: 5}}))
	if len(m.points) != 2 {
		t.Errorf("expected 2 points, got %d", len(m.points))
	}

	m.Update(trailsMsg([][]geodesic.Point{
		{{X: 3}, {X: 4}, {X: 5}},
		{{Y: 5}},
		{{Z: 9}},
	}))
	if len(m.trails[0]) != 3 || m.trails[0][2].X != 5 {
		t.Errorf("trail 0 not replaced: %v", m.trails[0])
	}
	if len(m.trails[1]) != 1 {
		t.Errorf("trail 1 not replaced: %v", m.trails[1])
	}
	if len(m.trails) != 2 {
		t.Errorf("extra trails should be ignored, got %d", len(m.trails))
	}

	_, cmd := m.Update(frameMsg(time.Now()))
	if cmd == nil {
		t.Error("frame should schedule the next tick")
	}
	select {
	case <-frames:
	default:
		t.Error("frame was not signalled")
	}
	// a second frame with nobody reading must not block
	m.Update(frameMsg(time.Now()))
	m.Update(frameMsg(time.Now()))

	zoom := m.cam.Zoom
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if m.cam.Zoom <= zoom {
		t.Error("+ should zoom in")
	}

	view := m.View()
	if !strings.Contains(view, "Black Hole Geodesics") {
		t.Error("view is missing the title")
	}
}

func TestTermModel_Quit(t *testing.T) {
	opts := TerminalOptions{}
	opts.defaults()
	m := newTermModel(1, opts, make(chan struct{}, 1))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestCamera_ProjectCentre(t *testing.T) {
	cam := NewCamera()
	x, y, _, ok := cam.Project(Vec3{}, 100, 60, 10)
	if !ok || x != 50 || y != 30 {
		t.Errorf("origin should land at centre, got (%d,%d,%v)", x, y, ok)
	}
}

func TestCanvas_Render(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Mark(0, 0, 1)
	if c.Grid[0][0] != brailleBlank|0x1 {
		t.Errorf("unexpected cell %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != brailleBlank {
		t.Errorf("second cell should be blank")
	}
	if lines := strings.Count(c.String(), "\n"); lines != 1 {
		t.Errorf("expected 1 line, got %d", lines)
	}
}
