package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/ppinet/pkg/algorithms"
	"github.com/dd0wney/ppinet/pkg/report"
)

const barWidth = 40

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Protein-Protein Interaction Network Analyzer"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case formView:
		s.WriteString(m.renderForm())
	case tableView:
		s.WriteString(m.renderTable())
	case networkView:
		s.WriteString(m.renderNetwork())
	case rankingView:
		s.WriteString(m.renderRanking())
	}

	if m.running {
		s.WriteString("\n\n  ")
		s.WriteString(m.spinner.View())
		s.WriteString(" " + m.message)
	} else if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	rendered := make([]string, 0, len(viewNames))
	for i, name := range viewNames {
		if view(i) == m.currentView {
			rendered = append(rendered, activeTabStyle.Render(name))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m model) renderForm() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Fetch Interactions"))
	s.WriteString("\n\n")
	s.WriteString("Enter Protein ID (e.g., BRCA1):\n\n")
	s.WriteString(m.proteinInput.View())
	s.WriteString("\n\nSelect Database:\n\n")

	for i, source := range m.sources {
		if i == m.sourceIdx {
			s.WriteString(selectedSourceStyle.Render("● " + source.String()))
		} else {
			s.WriteString(sourceStyle.Render("○ " + source.String()))
		}
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("↑/↓ choose database • enter fetch data"))
	return contentStyle.Render(s.String())
}

func (m model) renderTable() string {
	if m.report == nil {
		return contentStyle.Render(helpStyle.Render("No analysis yet\n\nFetch a protein from the Analyze view!"))
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("Centrality Measures"))
	s.WriteString("\n\n")
	s.WriteString(report.Summary(m.report))
	s.WriteString("\n")
	s.WriteString(m.resultTable.View())
	s.WriteString("\n\n")
	s.WriteString(report.Legend())
	return contentStyle.Render(s.String())
}

func (m model) renderNetwork() string {
	if m.report == nil || m.report.Graph == nil {
		return contentStyle.Render(helpStyle.Render("No network to show"))
	}

	g := m.report.Graph
	var s strings.Builder
	s.WriteString(fmt.Sprintf("Network with %d proteins and %d interactions\n\n", g.NumberOfNodes(), g.NumberOfEdges()))

	for _, id := range g.SortedNodes() {
		marker := "○"
		if id == m.report.ProteinID {
			marker = "◉"
		}
		s.WriteString(fmt.Sprintf("%s %s (degree %d)\n", marker, id, g.Degree(id)))
		for _, n := range g.Neighbors(id) {
			if n > id || n == id {
				s.WriteString(fmt.Sprintf("  └─ %s\n", n))
			}
		}
	}

	return contentStyle.Render(headerStyle.Render("Interaction Network") + "\n\n" + boxStyle.Render(strings.TrimRight(s.String(), "\n")))
}

func (m model) renderRanking() string {
	if m.report == nil || m.report.Result == nil {
		return contentStyle.Render(helpStyle.Render("No scores to rank"))
	}

	metric := algorithms.AllMetrics[m.rankMetric]
	var s strings.Builder
	s.WriteString(headerStyle.Render("Top Proteins: " + string(metric)))
	s.WriteString("\n\n")

	if err := m.report.Result.Err(metric); err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error computing %s: %v", metric, err)))
		return contentStyle.Render(s.String())
	}

	top := m.report.Result.Top(metric, 10)
	maxScore := 0.0
	for _, n := range top {
		maxScore = max(maxScore, n.Score)
	}
	for i, n := range top {
		width := 0
		if maxScore > 0 {
			width = int(n.Score / maxScore * barWidth)
		}
		s.WriteString(fmt.Sprintf("  %2d. %-12s %.4f %s\n", i+1, n.Node, n.Score, barStyle.Render(strings.Repeat("█", width))))
	}
	s.WriteString(helpStyle.Render("←/→ change metric"))
	return contentStyle.Render(s.String())
}
