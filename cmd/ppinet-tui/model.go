package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/ppinet/pkg/algorithms"
	"github.com/dd0wney/ppinet/pkg/interactions"
	"github.com/dd0wney/ppinet/pkg/network"
	"github.com/dd0wney/ppinet/pkg/pipeline"
	"github.com/dd0wney/ppinet/pkg/report"
)

type view int

const (
	formView view = iota
	tableView
	networkView
	rankingView
	viewCount
)

var viewNames = [viewCount]string{"Analyze", "Centrality", "Network", "Top Proteins"}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "fetch data"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "prev database"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next database"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev metric"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next metric"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Quit},
	}
}

// analysisMsg carries the outcome of a background analysis
type analysisMsg struct {
	report  *pipeline.Report
	err     error
	request pipeline.Request
	elapsed time.Duration
}

type model struct {
	ctx          context.Context
	analyzer     *pipeline.Analyzer
	currentView  view
	proteinInput textinput.Model
	sources      []interactions.Source
	sourceIdx    int
	resultTable  table.Model
	spinner      spinner.Model
	help         help.Model
	keys         keyMap
	width        int
	height       int
	running      bool
	report       *pipeline.Report
	rankMetric   int
	message      string
	messageErr   bool
}

func initialModel(ctx context.Context, analyzer *pipeline.Analyzer, protein string, source interactions.Source) model {
	ti := textinput.New()
	ti.Placeholder = "BRCA1"
	ti.CharLimit = 64
	ti.Width = 30
	ti.SetValue(protein)
	ti.Focus()

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(8),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorAccent).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorText).
		Background(colorAccent).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		ctx:          ctx,
		analyzer:     analyzer,
		currentView:  formView,
		proteinInput: ti,
		sources:      interactions.AllSources,
		resultTable:  t,
		spinner:      sp,
		help:         help.New(),
		keys:         keys,
	}
	for i, s := range m.sources {
		if s == source {
			m.sourceIdx = i
		}
	}
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) selectedSource() interactions.Source {
	return m.sources[m.sourceIdx]
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case analysisMsg:
		m.running = false
		m.applyResult(msg)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.setView((m.currentView + 1) % viewCount)
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.setView((m.currentView + viewCount - 1) % viewCount)
			return m, nil

		case m.currentView == formView && key.Matches(msg, m.keys.Enter):
			return m, m.startAnalysis()

		case m.currentView == formView && key.Matches(msg, m.keys.Up):
			m.sourceIdx = (m.sourceIdx + len(m.sources) - 1) % len(m.sources)
			return m, nil

		case m.currentView == formView && key.Matches(msg, m.keys.Down):
			m.sourceIdx = (m.sourceIdx + 1) % len(m.sources)
			return m, nil

		case m.currentView == rankingView && key.Matches(msg, m.keys.Left):
			m.rankMetric = (m.rankMetric + len(algorithms.AllMetrics) - 1) % len(algorithms.AllMetrics)
			return m, nil

		case m.currentView == rankingView && key.Matches(msg, m.keys.Right):
			m.rankMetric = (m.rankMetric + 1) % len(algorithms.AllMetrics)
			return m, nil
		}
	}

	// Update focused component
	switch m.currentView {
	case formView:
		m.proteinInput, cmd = m.proteinInput.Update(msg)
		cmds = append(cmds, cmd)
	case tableView:
		m.resultTable, cmd = m.resultTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) setView(v view) {
	m.currentView = v
	if v == formView {
		m.proteinInput.Focus()
	} else {
		m.proteinInput.Blur()
	}
}

// startAnalysis validates the form and returns the command that runs the
// analysis off the UI goroutine
func (m *model) startAnalysis() tea.Cmd {
	if m.running {
		return nil
	}
	protein := strings.TrimSpace(m.proteinInput.Value())
	if protein == "" {
		m.message = "Please enter a protein ID"
		m.messageErr = true
		return nil
	}

	req := pipeline.Request{ProteinID: protein, Source: m.selectedSource().String()}
	m.running = true
	m.message = fmt.Sprintf("Fetching %s interactions for %s...", req.Source, protein)
	m.messageErr = false

	analyzer, ctx := m.analyzer, m.ctx
	run := func() tea.Msg {
		start := time.Now()
		rep, err := analyzer.Analyze(ctx, req)
		return analysisMsg{report: rep, err: err, request: req, elapsed: time.Since(start)}
	}
	return tea.Batch(m.spinner.Tick, run)
}

func (m *model) applyResult(msg analysisMsg) {
	if msg.err != nil {
		m.messageErr = true
		if errors.Is(msg.err, network.ErrEmptyNetwork) {
			m.message = fmt.Sprintf("No data found for %s in %s.", msg.request.ProteinID, msg.request.Source)
		} else {
			m.message = fmt.Sprintf("Error: %v", msg.err)
		}
		return
	}

	m.report = msg.report
	m.updateResultTable()
	m.messageErr = false
	m.message = fmt.Sprintf("Analyzed %d proteins and %d interactions in %s",
		msg.report.Statistics.NodeCount, msg.report.Statistics.EdgeCount, msg.elapsed.Round(time.Millisecond))
	if msg.report.Failed() {
		m.message += fmt.Sprintf(" (%d metrics failed)", len(msg.report.MetricErrors))
	}
	m.setView(tableView)
}

// updateResultTable loads the report into the table: one row per metric,
// one column per protein
func (m *model) updateResultTable() {
	header, rows := report.Rows(m.report, report.TableOptions{})

	columns := make([]table.Column, len(header))
	for i, title := range header {
		width := len(title)
		for _, row := range rows {
			width = max(width, len(row[i]))
		}
		columns[i] = table.Column{Title: title, Width: width + 1}
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	m.resultTable.SetRows(nil)
	m.resultTable.SetColumns(columns)
	m.resultTable.SetRows(tableRows)
}
