package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Sample is the outcome of one refresh cycle.
type Sample struct {
	T        float64
	Cost     float64
	Terminal float64
	Steps    int
	Err      error
}

// Source advances the scenario one cycle, re-runs the cost update, and
// reports the fresh value. The second return is false once the scenario
// is exhausted.
type Source func() (Sample, bool)

// Model drives the live cost monitor.
type Model struct {
	source    Source
	scenario  string
	history   []float64
	last      Sample
	running   bool
	done      bool
	frameRate int
}

func NewModel(scenario string, frameRate int, source Source) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	return Model{
		source:    source,
		scenario:  scenario,
		history:   make([]float64, 0, historyCapacity),
		running:   true,
		frameRate: frameRate,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && !m.done {
			s, ok := m.source()
			if !ok {
				m.done = true
			} else {
				m.last = s
				m.history = append(m.history, s.Cost)
				if len(m.history) > historyCapacity {
					m.history = m.history[1:]
				}
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scenario)+" COST") + "\n")

	status := "RUNNING"
	if m.done {
		status = "DONE"
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("J1 per refresh"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("Horizon end") + valueStyle.Render(fmt.Sprintf("%.2fs", m.last.T)) + "\n")
	s.WriteString(labelStyle.Render("Cost J1") + valueStyle.Render(fmt.Sprintf("%.6f", m.last.Cost)) + "\n")
	s.WriteString(labelStyle.Render("Terminal") + valueStyle.Render(fmt.Sprintf("%.6f", m.last.Terminal)) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.last.Steps)) + "\n")
	if m.last.Err != nil {
		s.WriteString(labelStyle.Render("Error") + errStyle.Render(m.last.Err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("space: pause  q: quit"))
	return s.String()
}

// Run starts the live monitor and blocks until it exits.
func Run(scenario string, frameRate int, source Source) error {
	p := tea.NewProgram(NewModel(scenario, frameRate, source))
	_, err := p.Run()
	return err
}
