// Package graph derives the edge list and node list that graph-based fraud
// models consume from the flat transaction table.
package graph

import (
	"github.com/dd0wney/cluso-fraudgen/pkg/dataset"
)

// Project returns one edge per transaction in transaction order, and one node
// per distinct account in order of first appearance. A node keeps the country
// it was first seen under: the source country when first seen as a source, the
// destination country when first seen as a destination. Later rows never
// overwrite it, even if the account shows up under a different code.
func Project(txs []dataset.Transaction) ([]dataset.Edge, []dataset.Node) {
	edges := make([]dataset.Edge, len(txs))
	nodes := newNodeIndex(len(txs))

	for i, tx := range txs {
		edges[i] = dataset.Edge{
			Src:    tx.Source,
			Dst:    tx.Destination,
			Time:   tx.Timestamp,
			Amount: tx.Amount,
			Label:  tx.IsFraud,
		}
		nodes.insertIfAbsent(tx.Source, tx.SourceCountry)
		nodes.insertIfAbsent(tx.Destination, tx.DestinationCountry)
	}

	return edges, nodes.list
}

// nodeIndex is an insertion-ordered set of nodes keyed by account id.
type nodeIndex struct {
	seen map[string]struct{}
	list []dataset.Node
}

func newNodeIndex(capacity int) *nodeIndex {
	return &nodeIndex{
		seen: make(map[string]struct{}, capacity),
		list: make([]dataset.Node, 0, capacity),
	}
}

func (n *nodeIndex) insertIfAbsent(account, country string) {
	if _, ok := n.seen[account]; ok {
		return
	}
	n.seen[account] = struct{}{}
	n.list = append(n.list, dataset.Node{AccountID: account, Country: country})
}
