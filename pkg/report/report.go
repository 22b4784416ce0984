// Package report renders a human-readable run summary for the terminal.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dd0wney/cluso-fraudgen/pkg/dataset"
	"github.com/dd0wney/cluso-fraudgen/pkg/pipeline"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Corridor counts fraudulent rows for one country pair.
type Corridor struct {
	Source      string
	Destination string
	Count       int
}

// FraudCorridors counts fraudulent transactions per country pair, most
// frequent first and ties broken by pair name.
func FraudCorridors(txs []dataset.Transaction) []Corridor {
	counts := make(map[[2]string]int)
	for _, tx := range txs {
		if tx.Fraudulent() {
			counts[[2]string{tx.SourceCountry, tx.DestinationCountry}]++
		}
	}
	out := make([]Corridor, 0, len(counts))
	for pair, n := range counts {
		out = append(out, Corridor{Source: pair[0], Destination: pair[1], Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Destination < out[j].Destination
	})
	return out
}

// Render returns the run summary followed by the fraud corridor table.
func Render(res *pipeline.Result) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("fraudgen run " + res.RunID))
	s.WriteString("\n")
	s.WriteString(newTable("Metric", "Value").Rows(summaryRows(res)...).Render())
	s.WriteString("\n")

	corridors := FraudCorridors(res.Transactions)
	if len(corridors) == 0 {
		s.WriteString("no fraudulent transactions\n")
		return s.String()
	}
	rows := make([][]string, 0, len(corridors))
	for _, c := range corridors {
		rows = append(rows, []string{c.Source + " -> " + c.Destination, strconv.Itoa(c.Count)})
	}
	s.WriteString(newTable("Fraud corridor", "Transactions").Rows(rows...).Render())
	s.WriteString("\n")
	return s.String()
}

func summaryRows(res *pipeline.Result) [][]string {
	st := res.Stats
	rows := [][]string{
		{"Seed", strconv.FormatUint(res.Seed, 10)},
		{"Accounts", strconv.Itoa(len(res.Accounts))},
		{"Transactions", strconv.Itoa(len(res.Transactions))},
		{"Fraudulent", fmt.Sprintf("%d (%.2f%%)", res.FraudCount, 100*st.FraudShare())},
		{"Graph nodes", strconv.Itoa(st.Nodes)},
		{"Graph edges", strconv.Itoa(st.Edges)},
		{"Max out/in degree", fmt.Sprintf("%d / %d", st.MaxOutDegree, st.MaxInDegree)},
		{"Node countries", strings.Join(st.Countries, " ")},
	}
	if res.ManifestPath != "" {
		rows = append(rows, []string{"Manifest", res.ManifestPath})
	}
	if res.Duration > 0 {
		rows = append(rows, []string{"Duration", res.Duration.String()})
	}
	return rows
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
