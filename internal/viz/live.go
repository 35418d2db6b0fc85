package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/PixelsForGlory/lsystem"
	"github.com/PixelsForGlory/lsystem/internal/config"
	"github.com/PixelsForGlory/lsystem/turtle"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives the live derivation view: it grows the system one
// generation per tick while running and renders the traced geometry next
// to a stats panel.
type Model struct {
	name   string
	cfg    *config.Config
	sys    *lsystem.LSystem[*turtle.Turtle]
	canvas *Canvas
	seed   int64

	running     bool
	maxGen      int
	sizeHistory []float64
	lastErr     error
}

// NewModel assembles the live view for a named configuration. Growth
// pauses automatically once the configured generation count is reached.
func NewModel(name string, cfg *config.Config, seed int64) (Model, error) {
	sys, err := cfg.Alphabet().System(cfg.Axiom, cfg.GrammarRules(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return Model{}, err
	}
	return Model{
		name:        name,
		cfg:         cfg,
		sys:         sys,
		canvas:      NewCanvas(width, height),
		seed:        seed,
		running:     true,
		maxGen:      cfg.Generations,
		sizeHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and grows the derivation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			m.grow()
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && m.sys.Generation() < m.maxGen {
			m.grow()
		}
		return m, tea.Tick(time.Second/2, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) grow() {
	if err := m.sys.Step(); err != nil {
		m.lastErr = err
		m.running = false
		return
	}
	m.sizeHistory = append(m.sizeHistory, float64(m.sys.Derivation().Count()))
	if len(m.sizeHistory) > historyCapacity {
		m.sizeHistory = m.sizeHistory[1:]
	}
}

// reset rebuilds the system from the axiom with the original seed, so a
// stochastic run replays identically.
func (m *Model) reset() {
	sys, err := m.cfg.Alphabet().System(m.cfg.Axiom, m.cfg.GrammarRules(), rand.New(rand.NewSource(m.seed)))
	if err != nil {
		m.lastErr = err
		return
	}
	m.sys = sys
	m.sizeHistory = m.sizeHistory[:0]
	m.lastErr = nil
	m.running = true
}

// View renders the TUI interface.
func (m Model) View() string {
	m.canvas.Clear()
	segs := turtle.Trace(m.sys.Derivation(), turtle.New())
	m.canvas.DrawSegments(segs)
	canvasView := canvasStyle.Render(m.canvas.String())

	status := "GROWING"
	if m.sys.Generation() >= m.maxGen {
		status = "DONE"
	} else if !m.running {
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(status + "\n\n")

	if len(m.sizeHistory) > 1 {
		chart := asciigraph.Plot(m.sizeHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Modules"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Generation") + valueStyle.Render(fmt.Sprintf("%d / %d", m.sys.Generation(), m.maxGen)) + "\n")
	s.WriteString(labelStyle.Render("Modules") + valueStyle.Render(fmt.Sprintf("%d", m.sys.Derivation().Count())) + "\n")
	s.WriteString(labelStyle.Render("Segments") + valueStyle.Render(fmt.Sprintf("%d", len(segs))) + "\n")
	s.WriteString(labelStyle.Render("Angle") + valueStyle.Render(fmt.Sprintf("%g°", m.cfg.Angle)) + "\n")
	s.WriteString(labelStyle.Render("Seed") + valueStyle.Render(fmt.Sprintf("%d", m.seed)) + "\n")
	if m.lastErr != nil {
		s.WriteString("\n" + errorStyle.Render(m.lastErr.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause N:Step R:Replay Q:Quit"))
	statsView := statsStyle.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
