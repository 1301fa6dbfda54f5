package engine

import "sort"

// Node is a compatibility graph vertex: one candidate Offering plus the
// subject id needed for the same-subject exclusion rule.
type Node struct {
	SubjectID  int
	OfferingID int
	Offering   Offering
}

// CompatibilityGraph is an undirected, simple graph over candidate Offerings.
// Adjacency is stored as a dense bitset per node (candidate counts are bounded
// by subjects x offerings-per-subject in a single request, per the spec).
type CompatibilityGraph struct {
	Nodes []Node
	adj   []bitset
}

// BuildGraph assembles nodes from the grouped candidates (sorted by subject
// name then offering id, for deterministic node ids) and connects every pair
// of distinct-subject, non-conflicting offerings.
func BuildGraph(bySubject map[string][]Offering) *CompatibilityGraph {
	var nodes []Node
	subjectNames := make([]string, 0, len(bySubject))
	for name := range bySubject {
		subjectNames = append(subjectNames, name)
	}
	sort.Strings(subjectNames)

	for _, name := range subjectNames {
		offs := append([]Offering(nil), bySubject[name]...)
		sort.Slice(offs, func(i, j int) bool { return offs[i].ID < offs[j].ID })
		for _, off := range offs {
			nodes = append(nodes, Node{SubjectID: off.Subject.ID, OfferingID: off.ID, Offering: off})
		}
	}

	g := &CompatibilityGraph{Nodes: nodes, adj: make([]bitset, len(nodes))}
	for i := range nodes {
		g.adj[i] = newBitset(len(nodes))
	}

	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if nodes[i].SubjectID == nodes[j].SubjectID {
				continue
			}
			if OfferingsConflict(nodes[i].Offering, nodes[j].Offering) {
				continue
			}
			g.adj[i].set(j)
			g.adj[j].set(i)
		}
	}

	return g
}

// Neighbors returns the adjacency bitset for node i.
func (g *CompatibilityGraph) Neighbors(i int) bitset {
	return g.adj[i]
}

// N returns the number of nodes in the graph.
func (g *CompatibilityGraph) N() int {
	return len(g.Nodes)
}
