package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cglsim/internal/cgl"
	"github.com/san-kum/cglsim/internal/metrics"
	"github.com/san-kum/cglsim/internal/render"
)

const (
	maxCanvasCells  = 64
	historyCapacity = 600
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	canvasStyle = lipgloss.NewStyle().Padding(0, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

var shadeRamp = []rune(" .:-=+*#%@")

type TickMsg time.Time

// Model steps the field at the frame rate and draws it as shaded runes.
type Model struct {
	sys           cgl.System
	integrator    cgl.Integrator
	field         cgl.Field
	initial       cgl.Field
	t, dt         float64
	fps           int
	stepsPerFrame int
	running       bool
	quantity      render.Quantity
	history       []float64
}

func NewModel(sys cgl.System, integ cgl.Integrator, f0 cgl.Field, dt float64, fps int) Model {
	if fps < 1 {
		fps = 30
	}
	return Model{
		sys:           sys,
		integrator:    integ,
		field:         f0.Clone(),
		initial:       f0.Clone(),
		dt:            dt,
		fps:           fps,
		stepsPerFrame: 2,
		running:       true,
		quantity:      render.QuantityReal,
		history:       make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.field = m.initial.Clone()
			m.t = 0
			m.history = m.history[:0]
		case "m":
			switch m.quantity {
			case render.QuantityReal:
				m.quantity = render.QuantityAmplitude
			case render.QuantityAmplitude:
				m.quantity = render.QuantityPhase
			default:
				m.quantity = render.QuantityReal
			}
		}
		return m, nil

	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.field = m.integrator.Step(m.sys, m.field, m.t, m.dt)
				m.t += m.dt
			}
			m.history = append(m.history, metrics.FrameIntensity(m.field))
			if len(m.history) > historyCapacity {
				m.history = m.history[len(m.history)-historyCapacity:]
			}
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("cglsim live — complex Ginzburg-Landau"))
	b.WriteString("\n")

	canvas := canvasStyle.Render(m.renderField())
	stats := statsStyle.Render(m.renderStats())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvas, stats))

	if len(m.history) > 8 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(70),
			asciigraph.Caption("mean |A|^2"),
		)
		b.WriteString("\n")
		b.WriteString(graphStyle.Render(graph))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause · r reset · m view (real/amplitude/phase) · q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderField() string {
	grid, err := render.Extract(m.field, m.quantity)
	if err != nil {
		return err.Error()
	}
	n := len(grid)

	stride := 1
	for n/stride > maxCanvasCells {
		stride++
	}

	lo, hi := grid[0][0], grid[0][0]
	for i := range grid {
		for j := range grid[i] {
			if grid[i][j] < lo {
				lo = grid[i][j]
			}
			if grid[i][j] > hi {
				hi = grid[i][j]
			}
		}
	}
	span := hi - lo
	if span < 1e-12 {
		span = 1e-12
	}

	var b strings.Builder
	// One rune per column, every other row: terminal cells are roughly
	// twice as tall as wide.
	for i := 0; i < n; i += stride * 2 {
		for j := 0; j < n; j += stride {
			v := (grid[i][j] - lo) / span
			idx := int(v * float64(len(shadeRamp)-1))
			if idx < 0 {
				idx = 0
			}
			if idx >= len(shadeRamp) {
				idx = len(shadeRamp) - 1
			}
			b.WriteRune(shadeRamp[idx])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStats() string {
	status := "running"
	if !m.running {
		status = "paused"
	}

	rows := []struct{ label, value string }{
		{"status", status},
		{"view", string(m.quantity)},
		{"t", fmt.Sprintf("%.2f", m.t)},
		{"dt", fmt.Sprintf("%.4f", m.dt)},
		{"mean |A|^2", fmt.Sprintf("%.5f", metrics.FrameIntensity(m.field))},
		{"max |A|", fmt.Sprintf("%.5f", metrics.FrameMaxAmplitude(m.field))},
	}

	if cfg, ok := m.sys.(cgl.Configurable); ok {
		for _, name := range []string{"alpha", "beta"} {
			if v, exists := cfg.GetParams()[name]; exists {
				rows = append(rows, struct{ label, value string }{name, fmt.Sprintf("%.3f", v)})
			}
		}
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(valueStyle.Render(row.value))
		b.WriteString("\n")
	}
	return b.String()
}
