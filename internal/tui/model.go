package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bagextract/internal/batch"
)

// Model renders a running batch. It reads updates until the final one (or
// until the channel closes) and calls cancel when the user asks to stop.
type Model struct {
	updates   <-chan batch.Update
	cancel    func()
	subtitle  string
	started   time.Time
	width     int
	last      batch.Update
	canceling bool
	quitting  bool
}

type doneMsg struct{}

type updateMsg batch.Update

func NewModel(subtitle string, updates <-chan batch.Update, cancel func()) Model {
	return Model{
		updates:  updates,
		cancel:   cancel,
		subtitle: subtitle,
		started:  time.Now(),
		last:     batch.Update{Message: "Starting conversion..."},
	}
}

// Last returns the most recent update seen.
func (m Model) Last() batch.Update { return m.last }

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.last = batch.Update(msg)
		if m.last.Done {
			m.quitting = true
			return m, tea.Quit
		}
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if !m.canceling {
				m.canceling = true
				if m.cancel != nil {
					m.cancel()
				}
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-20)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	bar := renderBar(barWidth, float64(m.last.Percent)/100)
	elapsed := time.Since(m.started).Round(time.Second)

	files := fmt.Sprintf("File: %d/%d", m.last.Index, m.last.Total)
	if m.last.Total == 0 {
		files = "File: -"
	}

	help := dimStyle.Render("q: cancel")
	if m.canceling {
		help = warnStyle.Render("Canceling, waiting for the converter to stop...")
	}

	lines := []string{
		titleStyle.Render("bagextract") + "  " + dimStyle.Render(m.subtitle),
		labelStyle.Render(files) + dimStyle.Render(fmt.Sprintf("  failed:%d", m.last.Failed)),
		barStyle.Render(bar) + " " + labelStyle.Render(fmt.Sprintf("%d%% complete", m.last.Percent)),
		labelStyle.Render(m.last.Message),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		help,
	}

	return strings.Join(lines, "\n")
}

func listenForUpdates(updates <-chan batch.Update) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
	warnStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
)
