package browse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/cluso-fraudgen/pkg/dataset"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	dashboardView view = iota
	transactionsView
	nodesView
	corridorsView
	viewCount
)

var tabNames = [viewCount]string{"Dashboard", "Transactions", "Nodes", "Corridors"}

// Model is the bubbletea model of the browser.
type Model struct {
	data        *Dataset
	currentView view
	filterInput textinput.Model
	filter      string
	txTable     table.Model
	nodeTable   table.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int
	message     string
	messageErr  bool
}

// New returns a model over a loaded dataset.
func New(data *Dataset) Model {
	ti := textinput.New()
	ti.Placeholder = "account, country or \"fraud\""
	ti.CharLimit = 32
	ti.Width = 40

	m := Model{
		data:        data,
		currentView: dashboardView,
		filterInput: ti,
		txTable: newTable([]table.Column{
			{Title: "ID", Width: 8},
			{Title: "Source", Width: 8},
			{Title: "Dest", Width: 8},
			{Title: "Timestamp", Width: 19},
			{Title: "Amount", Width: 10},
			{Title: "From", Width: 4},
			{Title: "To", Width: 4},
			{Title: "Fraud", Width: 5},
			{Title: "Freq", Width: 4},
		}),
		nodeTable: newTable([]table.Column{
			{Title: "Account", Width: 10},
			{Title: "Country", Width: 8},
			{Title: "Out", Width: 6},
			{Title: "In", Width: 6},
		}),
		help: help.New(),
		keys: keys,
	}
	m.txTable.SetRows(transactionRows(data.Transactions))
	m.nodeTable.SetRows(nodeRows(data))
	if len(data.Warnings) > 0 {
		m.message = strings.Join(data.Warnings, "; ")
		m.messageErr = true
	}
	return m
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if h := msg.Height - 14; h > 3 {
			m.txTable.SetHeight(h)
			m.nodeTable.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		if m.filterInput.Focused() {
			return m.updateFilter(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.currentView = (m.currentView + viewCount - 1) % viewCount
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			m.currentView = transactionsView
			m.filterInput.SetValue(m.filter)
			return m, m.filterInput.Focus()

		case key.Matches(msg, m.keys.Cancel):
			m.applyFilter("")
			return m, nil
		}
	}

	switch m.currentView {
	case transactionsView:
		m.txTable, cmd = m.txTable.Update(msg)
	case nodesView:
		m.nodeTable, cmd = m.nodeTable.Update(msg)
	}
	return m, cmd
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Enter):
		m.filterInput.Blur()
		m.applyFilter(m.filterInput.Value())
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) applyFilter(filter string) {
	m.filter = strings.TrimSpace(filter)
	txs := FilterTransactions(m.data.Transactions, m.filter)
	m.txTable.SetRows(transactionRows(txs))
	m.txTable.GotoTop()

	if m.filter == "" {
		m.message = ""
		m.messageErr = false
		return
	}
	m.message = fmt.Sprintf("filter %q: %d of %d transactions", m.filter, len(txs), len(m.data.Transactions))
	m.messageErr = len(txs) == 0
}

// FilterTransactions keeps the rows matching term. An account ID or a country
// code matches either endpoint; "fraud" and "legit" match the label. Matching
// ignores case and an empty term keeps everything.
func FilterTransactions(txs []dataset.Transaction, term string) []dataset.Transaction {
	term = strings.ToUpper(strings.TrimSpace(term))
	if term == "" {
		return txs
	}

	out := make([]dataset.Transaction, 0)
	for _, tx := range txs {
		var ok bool
		switch term {
		case "FRAUD":
			ok = tx.Fraudulent()
		case "LEGIT":
			ok = !tx.Fraudulent()
		default:
			ok = tx.Source == term || tx.Destination == term ||
				tx.SourceCountry == term || tx.DestinationCountry == term ||
				tx.ID == term
		}
		if ok {
			out = append(out, tx)
		}
	}
	return out
}

func transactionRows(txs []dataset.Transaction) []table.Row {
	rows := make([]table.Row, len(txs))
	for i, tx := range txs {
		rows[i] = table.Row(tx.Record())
	}
	return rows
}

func nodeRows(data *Dataset) []table.Row {
	out := make(map[string]int)
	in := make(map[string]int)
	for _, e := range data.Edges {
		out[e.Src]++
		in[e.Dst]++
	}
	rows := make([]table.Row, len(data.Nodes))
	for i, n := range data.Nodes {
		rows[i] = table.Row{n.AccountID, n.Country, strconv.Itoa(out[n.AccountID]), strconv.Itoa(in[n.AccountID])}
	}
	return rows
}
