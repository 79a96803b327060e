package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/horyzen/internal/geodesic"
)

type TerminalOptions struct {
	Title string
	// Width and Height are in canvas cells.
	Width, Height int
	// Span is the number of world units that fit the shorter screen side.
	Span          float64
	FrameInterval time.Duration
	PhotonSphere  bool
	Mass          float64
	// Trail is the number of buffer rows drawn behind each marker.
	Trail int
}

var _ TrailScene = (*TerminalScene)(nil)

func (o *TerminalOptions) defaults() {
	if o.Title == "" {
		o.Title = "Black Hole Geodesics"
	}
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Height <= 0 {
		o.Height = 24
	}
	if o.Span <= 0 {
		o.Span = 60
	}
	if o.FrameInterval <= 0 {
		o.FrameInterval = time.Second / 60
	}
	if o.Mass <= 0 {
		o.Mass = 1
	}
	if o.Trail <= 0 {
		o.Trail = 400
	}
}

// TerminalScene renders the replay with bubbletea. Frames are paced by
// tea.Tick in the program goroutine; Frame blocks until the next one.
type TerminalScene struct {
	program *tea.Program
	trail   int
	frames  chan struct{}
	done    chan struct{}
	last    time.Time
	runErr  error
}

// NewTerminalScene starts the terminal program for n trajectories.
func NewTerminalScene(n int, opts TerminalOptions, teaOpts ...tea.ProgramOption) *TerminalScene {
	opts.defaults()
	s := &TerminalScene{
		trail:  opts.Trail,
		frames: make(chan struct{}, 1),
		done:   make(chan struct{}),
		last:   time.Now(),
	}
	s.program = tea.NewProgram(newTermModel(n, opts, s.frames), teaOpts...)
	go func() {
		_, s.runErr = s.program.Run()
		close(s.done)
	}()
	return s
}

func (s *TerminalScene) SetPoints(pts []geodesic.Point) {
	s.program.Send(pointsMsg(append([]geodesic.Point(nil), pts...)))
}

func (s *TerminalScene) TrailLength() int { return s.trail }

func (s *TerminalScene) SetTrails(trails [][]geodesic.Point) {
	s.program.Send(trailsMsg(trails))
}

func (s *TerminalScene) Frame() (time.Duration, bool) {
	select {
	case <-s.frames:
	case <-s.done:
		return 0, false
	}
	now := time.Now()
	d := now.Sub(s.last)
	s.last = now
	return d, true
}

func (s *TerminalScene) Close() error {
	s.program.Quit()
	<-s.done
	return s.runErr
}

type frameMsg time.Time

type pointsMsg []geodesic.Point

type trailsMsg [][]geodesic.Point

type termModel struct {
	opts   TerminalOptions
	cam    *Camera
	canvas *Canvas
	styles []lipgloss.Style
	axes   *Wireframe
	photon *Wireframe

	points []geodesic.Point
	trails [][]Vec3
	frames chan<- struct{}
	count  int
}

func newTermModel(n int, opts TerminalOptions, frames chan<- struct{}) *termModel {
	m := &termModel{
		opts:   opts,
		cam:    NewCamera(),
		canvas: NewCanvas(opts.Width, opts.Height),
		styles: append(trajectoryStyles(n), photonTint),
		axes:   AxesWireframe(10),
		trails: make([][]Vec3, n),
		frames: frames,
	}
	if opts.PhotonSphere {
		m.photon = SphereWireframe(3*opts.Mass, 6)
	}
	return m
}

func (m *termModel) tick() tea.Cmd {
	return tea.Tick(m.opts.FrameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *termModel) Init() tea.Cmd {
	return m.tick()
}

func (m *termModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.cam.Orbit(-0.1)
		case "right", "l":
			m.cam.Orbit(0.1)
		case "up", "k":
			m.cam.Tilt(0.1)
		case "down", "j":
			m.cam.Tilt(-0.1)
		case "+", "=":
			m.cam.ZoomIn()
		case "-", "_":
			m.cam.ZoomOut()
		}
	case tea.WindowSizeMsg:
		w, h := msg.Width-4, msg.Height-6
		if w > 10 && h > 5 {
			m.canvas = NewCanvas(w, h)
		}
	case pointsMsg:
		m.points = msg
	case trailsMsg:
		for i, trail := range msg {
			if i >= len(m.trails) {
				break
			}
			vs := make([]Vec3, len(trail))
			for j, p := range trail {
				vs[j] = FromPoint(p)
			}
			m.trails[i] = vs
		}
	case frameMsg:
		m.count++
		select {
		case m.frames <- struct{}{}:
		default:
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *termModel) draw() {
	c := m.canvas
	c.Clear()
	pw, ph := c.Width*2, c.Height*4

	Render3D(c, m.axes, m.cam, m.opts.Span, 0)
	if m.photon != nil {
		Render3D(c, m.photon, m.cam, m.opts.Span, len(m.styles))
	}

	for i, trail := range m.trails {
		tag := i + 1
		for j := 1; j < len(trail); j++ {
			x0, y0, _, v0 := m.cam.Project(trail[j-1], pw, ph, m.opts.Span)
			x1, y1, _, v1 := m.cam.Project(trail[j], pw, ph, m.opts.Span)
			if v0 && v1 {
				c.DrawLine(x0, y0, x1, y1, tag)
			}
		}
	}
	for i, p := range m.points {
		x, y, _, ok := m.cam.Project(FromPoint(p), pw, ph, m.opts.Span)
		if !ok {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				c.Mark(x+dx, y+dy, i+1)
			}
		}
	}
}

func (m *termModel) View() string {
	m.draw()

	stats := fmt.Sprintf("%s %s   %s %s   %s %s",
		labelStyle.Render("trajectories"), valueStyle.Render(fmt.Sprint(len(m.trails))),
		labelStyle.Render("frame"), valueStyle.Render(fmt.Sprint(m.count)),
		labelStyle.Render("zoom"), valueStyle.Render(fmt.Sprintf("%.2f", m.cam.Zoom)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(m.opts.Title),
		sceneStyle.Render(m.canvas.Render(axesStyle, m.styles)),
		stats,
		keyHint.Render("←/→ orbit  ↑/↓ tilt  +/- zoom  q quit"),
	)
}
