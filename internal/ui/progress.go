package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pinecheck/internal/driver"
)

// maxVisibleRows ограничивает список файлов; остальные сворачиваются в одну строку
const maxVisibleRows = 20

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	cleanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// fileRow is the analysis state of one script.
type fileRow struct {
	path     string
	stage    driver.Stage
	finished bool
	failed   bool // файл не удалось прочитать
	errors   int
	warnings int
	elapsed  time.Duration
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	width   int

	finished int
	errors   int
	warnings int
	done     bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model listing every script with its
// analysis state and diagnostic counts. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = activeStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	rows := make([]fileRow, len(files))
	byPath := make(map[string]int, len(files))
	for i, file := range files {
		rows[i] = fileRow{path: file, stage: driver.StageLoad}
		byPath[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    rows,
		byPath:  byPath,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
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
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next ждёт следующее событие драйвера; закрытый канал завершает модель
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	idx, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[idx]
	if row.finished {
		return nil
	}
	row.stage = ev.Stage
	if ev.Status == driver.StatusDone || ev.Status == driver.StatusError {
		row.finished = true
		row.failed = ev.Err != nil
		row.errors = ev.Errors
		row.warnings = ev.Warnings
		row.elapsed = ev.Elapsed
		m.finished++
		m.errors += ev.Errors
		m.warnings += ev.Warnings
	}
	return m.bar.SetPercent(m.fraction())
}

// fraction weighs unfinished files by how far they got.
func (m *progressModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 1
	}
	total := 0.0
	for _, row := range m.rows {
		switch {
		case row.finished:
			total++
		case row.stage == driver.StageCacheHit:
			total += 0.9
		case row.stage == driver.StageAnalyze:
			total += 0.6
		case row.stage == driver.StageParse:
			total += 0.3
		}
	}
	return total / float64(len(m.rows))
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder

	header := fmt.Sprintf("%s [%d/%d]", m.title, m.finished, len(m.rows))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}
	b.WriteString(headerStyle.Render(header))
	if counts := countsLabel(m.errors, m.warnings); counts != "" {
		b.WriteString("  ")
		b.WriteString(severityStyle(m.errors, m.warnings).Render(counts))
	}
	b.WriteString("\n\n")

	const statusWidth, resultWidth = 10, 24
	nameWidth := max(m.width-statusWidth-resultWidth-6, 20)
	for _, row := range m.visibleRows() {
		status := rowStatus(row)
		fmt.Fprintf(&b, "  %s %s %s\n",
			statusStyle(status).Render(fmt.Sprintf("%-*s", statusWidth, status)),
			runewidth.FillRight(truncate(row.path, nameWidth), nameWidth),
			mutedStyle.Render(rowResult(row)),
		)
	}
	if hidden := len(m.rows) - maxVisibleRows; hidden > 0 {
		fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(fmt.Sprintf("... and %d more", hidden)))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// visibleRows показывает сначала файлы в работе и с проблемами, затем остальные
func (m *progressModel) visibleRows() []fileRow {
	if len(m.rows) <= maxVisibleRows {
		return m.rows
	}
	out := make([]fileRow, 0, maxVisibleRows)
	pick := func(keep func(fileRow) bool) {
		for _, row := range m.rows {
			if len(out) == maxVisibleRows {
				return
			}
			if keep(row) {
				out = append(out, row)
			}
		}
	}
	pick(func(r fileRow) bool { return !r.finished && r.stage != driver.StageLoad })
	pick(func(r fileRow) bool { return r.finished && (r.failed || r.errors > 0 || r.warnings > 0) })
	pick(func(r fileRow) bool { return r.stage == driver.StageLoad && !r.finished })
	pick(func(r fileRow) bool { return r.finished && !r.failed && r.errors == 0 && r.warnings == 0 })
	return out
}

// rowStatus is the one-word state shown next to a file.
func rowStatus(row fileRow) string {
	if !row.finished {
		switch row.stage {
		case driver.StageParse:
			return "parsing"
		case driver.StageAnalyze:
			return "analyzing"
		case driver.StageCacheHit:
			return "cached"
		}
		return "queued"
	}
	switch {
	case row.failed:
		return "unreadable"
	case row.errors > 0:
		return "errors"
	case row.warnings > 0:
		return "warnings"
	case row.stage == driver.StageCacheHit:
		return "cached"
	}
	return "clean"
}

func rowResult(row fileRow) string {
	if !row.finished || row.failed {
		return ""
	}
	counts := countsLabel(row.errors, row.warnings)
	if counts == "" {
		counts = "no problems"
	}
	if row.elapsed > 0 {
		counts += fmt.Sprintf(" (%s)", row.elapsed.Round(time.Millisecond))
	}
	return counts
}

// countsLabel renders "2 errors, 1 warning"; zero counts are left out.
func countsLabel(errors, warnings int) string {
	var parts []string
	if errors > 0 {
		parts = append(parts, plural(errors, "error"))
	}
	if warnings > 0 {
		parts = append(parts, plural(warnings, "warning"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func severityStyle(errors, warnings int) lipgloss.Style {
	switch {
	case errors > 0:
		return errorStyle
	case warnings > 0:
		return warningStyle
	}
	return cleanStyle
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "clean", "cached":
		return cleanStyle
	case "errors", "unreadable":
		return errorStyle
	case "warnings":
		return warningStyle
	case "parsing", "analyzing":
		return activeStyle
	}
	return mutedStyle
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
