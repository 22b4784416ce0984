package graph

import (
	"sort"

	"github.com/dd0wney/cluso-fraudgen/pkg/dataset"
)

// Stats summarizes a projected graph.
type Stats struct {
	Nodes        int
	Edges        int
	FraudEdges   int
	MaxOutDegree int
	MaxInDegree  int
	// Countries lists the distinct node countries, sorted.
	Countries []string
	// SelfLoops counts edges whose endpoints coincide; always zero for sampler output.
	SelfLoops int
}

// FraudShare returns the fraction of edges carrying the fraud label.
func (s Stats) FraudShare() float64 {
	if s.Edges == 0 {
		return 0
	}
	return float64(s.FraudEdges) / float64(s.Edges)
}

// Summarize computes degree and label statistics over a projection.
func Summarize(edges []dataset.Edge, nodes []dataset.Node) Stats {
	stats := Stats{Nodes: len(nodes), Edges: len(edges)}

	out := make(map[string]int)
	in := make(map[string]int)
	for _, e := range edges {
		out[e.Src]++
		in[e.Dst]++
		if e.Label == 1 {
			stats.FraudEdges++
		}
		if e.Src == e.Dst {
			stats.SelfLoops++
		}
	}
	for _, d := range out {
		stats.MaxOutDegree = max(stats.MaxOutDegree, d)
	}
	for _, d := range in {
		stats.MaxInDegree = max(stats.MaxInDegree, d)
	}

	countries := make(map[string]struct{})
	for _, n := range nodes {
		countries[n.Country] = struct{}{}
	}
	stats.Countries = make([]string, 0, len(countries))
	for c := range countries {
		stats.Countries = append(stats.Countries, c)
	}
	sort.Strings(stats.Countries)

	return stats
}
