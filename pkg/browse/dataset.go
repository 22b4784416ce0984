// Package browse is an interactive terminal viewer for a generated output
// directory.
package browse

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dd0wney/cluso-fraudgen/pkg/dataset"
	"github.com/dd0wney/cluso-fraudgen/pkg/graph"
	"github.com/dd0wney/cluso-fraudgen/pkg/report"
	"github.com/dd0wney/cluso-fraudgen/pkg/sink"
)

// ErrTableNotFound is returned when the transaction table is absent from the
// directory in both plain and compressed form.
var ErrTableNotFound = errors.New("table not found")

// Dataset is an output directory loaded back into memory. The graph is
// re-projected from the transaction table so the two can be compared.
type Dataset struct {
	Dir          string
	Transactions []dataset.Transaction
	Nodes        []dataset.Node
	Edges        []dataset.Edge
	Stats        graph.Stats
	Corridors    []report.Corridor

	// Manifest is nil when the run did not write one.
	Manifest *sink.Manifest
	// Warnings lists checksum failures and projection mismatches.
	Warnings []string
}

// Load reads the transaction and node tables from dir.
func Load(dir string) (*Dataset, error) {
	txPath, err := locate(dir, dataset.TransactionsTable)
	if err != nil {
		return nil, err
	}
	records, err := sink.ReadCSV(txPath)
	if err != nil {
		return nil, err
	}
	txs, err := dataset.ParseTransactions(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(txPath), err)
	}

	edges, projected := graph.Project(txs)
	ds := &Dataset{
		Dir:          dir,
		Transactions: txs,
		Nodes:        projected,
		Edges:        edges,
		Stats:        graph.Summarize(edges, projected),
		Corridors:    report.FraudCorridors(txs),
	}

	if nodePath, err := locate(dir, dataset.NodesTable); err == nil {
		nodes, err := readNodes(nodePath)
		if err != nil {
			return nil, err
		}
		if !sameNodes(nodes, projected) {
			ds.Warnings = append(ds.Warnings, fmt.Sprintf("%s does not match the projected node table", filepath.Base(nodePath)))
		}
		ds.Nodes = nodes
	}

	manifestPath := filepath.Join(dir, sink.ManifestFile)
	if _, err := os.Stat(manifestPath); err == nil {
		m, err := sink.ReadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		ds.Manifest = m
		if err := m.Verify(dir); err != nil {
			ds.Warnings = append(ds.Warnings, err.Error())
		}
	}

	return ds, nil
}

// FraudCount returns the number of fraud-labelled transactions.
func (d *Dataset) FraudCount() int {
	return d.Stats.FraudEdges
}

func locate(dir, table string) (string, error) {
	for _, compressed := range []bool{false, true} {
		path := filepath.Join(dir, sink.FileName(table, compressed))
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrTableNotFound, table, dir)
}

func readNodes(path string) ([]dataset.Node, error) {
	records, err := sink.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		records = records[1:]
	}
	nodes := make([]dataset.Node, 0, len(records))
	for i, rec := range records {
		n, err := dataset.ParseNode(rec)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filepath.Base(path), i+1, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func sameNodes(a, b []dataset.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
