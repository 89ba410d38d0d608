// Package ui renders the interactive progress view of `risp check`.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"risp/internal/driver"
)

const statusWidth = 12

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// stageWeight is how far along a file in that stage counts toward the bar.
var stageWeight = map[driver.Stage]float64{
	driver.StageLoad:  0.1,
	driver.StageCache: 0.3,
	driver.StageParse: 0.5,
}

var workingLabel = map[driver.Stage]string{
	driver.StageLoad:  "loading",
	driver.StageCache: "cache",
	driver.StageParse: "parsing",
}

type fileItem struct {
	path   string
	status string
	stage  driver.Stage
	final  bool
	failed bool
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	items   []fileItem
	byPath  map[string]int
	width   int
	done    bool
}

type (
	eventMsg driver.Event
	doneMsg  struct{}
)

// NewProgressModel shows one row per file and an overall bar. It quits once
// events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(activeStyle)),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		items:   make([]fileItem, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.items[i] = fileItem{path: f, status: "queued"}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width, m.bar.Width = msg.Width, msg.Width-4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	if m.done {
		b.WriteString(titleStyle.Render("done: " + m.title))
	} else {
		b.WriteString(titleStyle.Render(m.spinner.View() + " " + m.title))
	}
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-4, 20)
	for _, it := range m.items {
		status := it.style().Render(fmt.Sprintf("%*s", statusWidth, it.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(it.path, nameWidth))
	}
	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	it := &m.items[i]
	switch ev.Status {
	case driver.StatusQueued:
		it.status = "queued"
	case driver.StatusWorking:
		label, known := workingLabel[ev.Stage]
		if !known {
			return nil
		}
		it.status = label
	case driver.StatusDone, driver.StatusError:
		it.final, it.failed = true, ev.Status == driver.StatusError
		it.status = "done"
		if it.failed {
			it.status = "error"
		}
	default:
		return nil
	}
	it.stage = ev.Stage
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range m.items {
		if it.final {
			sum++
		} else {
			sum += stageWeight[it.stage]
		}
	}
	return sum / float64(len(m.items))
}

func (it fileItem) style() lipgloss.Style {
	switch {
	case it.failed:
		return failStyle
	case it.final:
		return okStyle
	case it.status == "queued":
		return idleStyle
	}
	return activeStyle
}

// truncate shortens value to width terminal cells, ending in "..." when
// there is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
