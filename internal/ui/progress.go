package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"esdata/internal/driver"
)

const labelWidth = 10

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	pendingStyle = lipgloss.NewStyle().Faint(true)
)

type progressModel struct {
	title  string
	events <-chan driver.Event
	board  *board
	spin   spinner.Model
	bar    progress.Model
	width  int
	closed bool
}

type (
	eventMsg  driver.Event
	closedMsg struct{}
)

// NewProgressModel returns a Bubble Tea model that draws the files of a
// folder read. It quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	spin := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(activeStyle))
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 60
	return &progressModel{
		title:  title,
		events: events,
		board:  newBoard(files),
		spin:   spin,
		bar:    bar,
		width:  80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next)
}

// next waits for the following event.
func (m *progressModel) next() tea.Msg {
	ev, ok := <-m.events
	if !ok {
		return closedMsg{}
	}
	return eventMsg(ev)
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		if m.board.apply(driver.Event(msg)) {
			cmd = m.bar.SetPercent(m.board.fraction())
		}
		return m, tea.Batch(cmd, m.next)
	case closedMsg:
		m.closed = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 20)
		m.bar.Width = max(m.width-labelWidth-4, 10)
	case spinner.TickMsg:
		if !m.closed {
			m.spin, cmd = m.spin.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

func (m *progressModel) View() string {
	if len(m.board.rows) == 0 {
		return ""
	}
	var b strings.Builder

	head := m.title
	if m.board.stage != "" {
		head += " · " + m.board.stage
	}
	if m.closed {
		head = "done: " + head
	} else {
		head = m.spin.View() + " " + head
	}
	b.WriteString(headerStyle.Render(head))
	b.WriteString("\n\n")

	nameWidth := max(m.width-labelWidth-4, 20)
	for _, r := range m.board.rows {
		label := fmt.Sprintf("%*s", labelWidth, r.label)
		fmt.Fprintf(&b, "  %s %s\n", labelStyle(r.label).Render(label), truncate(r.path, nameWidth))
	}

	b.WriteByte('\n')
	if m.closed {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func labelStyle(label string) lipgloss.Style {
	switch label {
	case "done":
		return doneStyle
	case "error":
		return failedStyle
	case "queued":
		return pendingStyle
	default:
		return activeStyle
	}
}
