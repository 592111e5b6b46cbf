package viz

import (
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sympend/internal/physics"
)

const (
	canvasWidth  = 60
	canvasHeight = 26
	trailLength  = 150
	graphWindow  = 300
	minInterval  = time.Millisecond
)

type TickMsg time.Time

// Model replays a trajectory one sample per tick.
type Model struct {
	title  string
	tr     *physics.Trajectory
	params physics.Params
	trace  physics.CartesianTrace
	energy []float64
	limit  int

	frame    int
	running  bool
	showHelp bool

	canvas   *Canvas
	view     Viewport
	interval time.Duration

	gifPath   string
	recording bool
	frames    []*image.Paletted
	err       error
}

// NewModel prepares a replay of tr. Samples from the first non-finite one
// onward are never shown.
func NewModel(tr *physics.Trajectory, p physics.Params, title string) Model {
	limit := tr.FirstNonFinite()
	if limit < 0 {
		limit = tr.Len()
	}
	interval := time.Duration(tr.Dt * float64(time.Second))
	if interval < minInterval {
		interval = minInterval
	}
	canvas := NewCanvas(canvasWidth, canvasHeight)

	return Model{
		title:    title,
		tr:       tr,
		params:   p,
		trace:    physics.CoordinateTransform(tr, p),
		energy:   tr.Energies(p),
		limit:    limit,
		running:  limit > 1,
		canvas:   canvas,
		view:     FitViewport(canvas, p.Reach()),
		interval: interval,
		gifPath:  "sympend.gif",
	}
}

// WithGIFPath sets where a recording is written when it is stopped.
func (m Model) WithGIFPath(path string) Model {
	m.gifPath = path
	return m
}

// Frame is the index of the sample on screen.
func (m Model) Frame() int { return m.frame }

func (m Model) Running() bool { return m.running }

// Err returns the last error hit while saving a recording.
func (m Model) Err() error { return m.err }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stopRecording()
			return m, tea.Quit
		case " ":
			if m.frame >= m.limit-1 {
				m.frame = 0
			}
			m.running = !m.running
		case "r":
			m.frame = 0
		case "[":
			m.running = false
			m.seek(-1)
		case "]":
			m.running = false
			m.seek(1)
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.frames = m.frames[:0]
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.seek(1)
			if m.frame >= m.limit-1 {
				m.running = false
			}
		}
		if m.recording {
			m.draw()
			m.frames = append(m.frames, CaptureFrame(m.canvas))
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) seek(delta int) {
	m.frame = max(0, min(m.frame+delta, m.limit-1))
}

func (m *Model) stopRecording() {
	if !m.recording {
		return
	}
	m.recording = false
	if len(m.frames) == 0 {
		return
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		m.err = err
		return
	}
	delay := int(m.interval / (10 * time.Millisecond))
	if err := WriteGIF(f, m.frames, delay); err != nil {
		m.err = err
	}
	if err := f.Close(); err != nil && m.err == nil {
		m.err = err
	}
	m.frames = nil
}

// draw renders the arms at the current frame plus the trail of the outer bob.
func (m *Model) draw() {
	m.canvas.Clear()
	if m.limit == 0 {
		return
	}
	i := m.frame

	for k := max(0, i-trailLength); k < i; k++ {
		x, y := m.view.Project(m.trace.X2[k], m.trace.Y2[k])
		m.canvas.Set(x, y)
	}

	px, py := m.view.Project(0, 0)
	x1, y1 := m.view.Project(m.trace.X1[i], m.trace.Y1[i])
	x2, y2 := m.view.Project(m.trace.X2[i], m.trace.Y2[i])
	m.canvas.DrawLine(px, py, x1, y1)
	m.canvas.DrawLine(x1, y1, x2, y2)
	m.canvas.DrawBlob(px, py, 0)
	m.canvas.DrawBlob(x1, y1, 1)
	m.canvas.DrawBlob(x2, y2, 1)
}

func (m Model) status() string {
	switch {
	case m.recording:
		return StatusStopped.Render("● REC")
	case m.running:
		return StatusRunning.Render("RUNNING")
	case m.limit > 0 && m.frame >= m.limit-1:
		if m.limit < m.tr.Len() {
			return StatusStopped.Render("DIVERGED")
		}
		return StatusStopped.Render("FINISHED")
	default:
		return StatusPaused.Render("PAUSED")
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")
	s.WriteString(fmt.Sprintf("Time = %.1f seconds\n", m.tr.Time(m.frame)))
	if m.limit > 1 {
		s.WriteString(ProgressBar(float64(m.frame)/float64(m.limit-1), 30) + "\n\n")
	}

	if m.limit > 0 {
		i := m.frame
		s.WriteString(labelStyle.Render("Angle 1") + valueStyle.Render(fmt.Sprintf("%+.3f rad", m.tr.Angle1[i])) + "\n")
		s.WriteString(labelStyle.Render("Angle 2") + valueStyle.Render(fmt.Sprintf("%+.3f rad", m.tr.Angle2[i])) + "\n")
		s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4f", m.energy[i])) + "\n")
		s.WriteString(labelStyle.Render("ΔE") + valueStyle.Render(fmt.Sprintf("%+.2e", m.energy[i]-m.energy[0])) + "\n")

		window := m.energy[max(0, i+1-graphWindow) : i+1]
		if len(window) > 1 {
			chart := asciigraph.Plot(window, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("Energy"))
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Restart Q:Quit\n[ ]:Step G:Record ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume replay      ║
║  [        - Step back one sample     ║
║  ]        - Step forward one sample  ║
║  R        - Restart                  ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
