package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("fraudgen dataset browser: " + m.data.Dir))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case dashboardView:
		s.WriteString(m.renderDashboard())
	case transactionsView:
		s.WriteString(m.renderTransactions())
	case nodesView:
		s.WriteString(m.renderNodes())
	case corridorsView:
		s.WriteString(m.renderCorridors())
	}

	if m.message != "" {
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

func (m Model) renderTabs() string {
	rendered := make([]string, 0, len(tabNames))
	for i, tab := range tabNames {
		if view(i) == m.currentView {
			rendered = append(rendered, activeTabStyle.Render(tab))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderDashboard() string {
	st := m.data.Stats

	stats := fmt.Sprintf(`Dataset
━━━━━━━━━━━━━━━
Transactions: %d
Fraudulent:   %d (%.2f%%)
Nodes:        %d
Edges:        %d
Max out/in:   %d / %d
Countries:    %s`,
		len(m.data.Transactions),
		m.data.FraudCount(), 100*st.FraudShare(),
		len(m.data.Nodes),
		st.Edges,
		st.MaxOutDegree, st.MaxInDegree,
		strings.Join(st.Countries, " "),
	)

	run := "Run\n━━━━━━━━━━━━━━━\nno manifest"
	if mf := m.data.Manifest; mf != nil {
		integrity := "verified"
		if len(m.data.Warnings) > 0 {
			integrity = "FAILED"
		}
		run = fmt.Sprintf(`Run
━━━━━━━━━━━━━━━
ID:          %s
Created:     %s
Seed:        %d
Accounts:    %d
Fraud ratio: %.2f
Compression: %s
Checksums:   %s`,
			mf.RunID,
			mf.CreatedAt.Format("2006-01-02 15:04:05"),
			mf.Seed,
			mf.Accounts,
			mf.FraudRatio,
			mf.Compression,
			integrity,
		)
	}

	return contentStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Top, statsBoxStyle.Render(stats), statsBoxStyle.Render(run)),
	)
}

func (m Model) renderTransactions() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Transactions"))
	s.WriteString("\n\n")

	if m.filterInput.Focused() {
		s.WriteString("Filter: ")
		s.WriteString(m.filterInput.View())
		s.WriteString("\n\n")
	} else if m.filter != "" {
		s.WriteString(fmt.Sprintf("Filter: %s (esc to clear)\n\n", m.filter))
	}

	s.WriteString(m.txTable.View())
	return contentStyle.Render(s.String())
}

func (m Model) renderNodes() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Accounts"))
	s.WriteString("\n\n")
	s.WriteString(m.nodeTable.View())

	return contentStyle.Render(s.String())
}

func (m Model) renderCorridors() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Fraud Corridors"))
	s.WriteString("\n\n")

	if len(m.data.Corridors) == 0 {
		s.WriteString(helpStyle.Render("no fraudulent transactions"))
		return contentStyle.Render(s.String())
	}

	top := m.data.Corridors[0].Count
	for _, c := range m.data.Corridors {
		bar := strings.Repeat("█", max(1, c.Count*30/top))
		s.WriteString(fmt.Sprintf("  %s -> %s %6d %s\n", c.Source, c.Destination, c.Count, bar))
	}

	return contentStyle.Render(s.String())
}
