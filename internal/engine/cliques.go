package engine

import "context"

// CliqueResult is one maximal clique as a sorted list of node indices.
type CliqueResult []int

// EnumerateCliques runs Bron-Kerbosch with pivoting over g, reporting every
// maximal clique whose size is >= floor. P is always iterated in ascending
// node-id order so results are reproducible across runs, per the
// determinism requirement. Enumeration stops once cap cliques have been
// reported or ctx is done; truncated reports that value via the bool return.
func EnumerateCliques(ctx context.Context, g *CompatibilityGraph, floor, cap int) ([]CliqueResult, bool) {
	n := g.N()
	if n == 0 {
		return nil, false
	}

	all := newBitset(n)
	for i := 0; i < n; i++ {
		all.set(i)
	}

	e := &enumerator{g: g, floor: floor, cap: cap, ctx: ctx}
	e.recurse(nil, all, newBitset(n))
	return e.results, e.truncated
}

type enumerator struct {
	g         *CompatibilityGraph
	floor     int
	cap       int
	ctx       context.Context
	results   []CliqueResult
	truncated bool
}

func (e *enumerator) recurse(r []int, p, x bitset) {
	if e.truncated {
		return
	}
	select {
	case <-e.ctx.Done():
		e.truncated = true
		return
	default:
	}

	if p.isEmpty() && x.isEmpty() {
		if len(r) >= e.floor {
			clique := append(CliqueResult(nil), r...)
			e.results = append(e.results, clique)
			if e.cap > 0 && len(e.results) >= e.cap {
				e.truncated = true
			}
		}
		return
	}

	pivot := choosePivot(p, x, e.g)
	pivotNeighbors := e.g.Neighbors(pivot)

	candidates := p
	for _, v := range p.members() {
		if pivotNeighbors.has(v) {
			continue
		}
		neighbors := e.g.Neighbors(v)
		newP := candidates.and(neighbors)
		newX := x.and(neighbors)

		e.recurse(append(r, v), newP, newX)
		if e.truncated {
			return
		}

		next := make(bitset, len(candidates))
		copy(next, candidates)
		next[v/64] &^= 1 << uint(v%64)
		candidates = next

		nextX := make(bitset, len(x))
		copy(nextX, x)
		nextX.set(v)
		x = nextX
	}
}

// choosePivot selects the vertex in P union X with the highest degree,
// breaking ties by lowest node id, for a deterministic and reasonably
// effective pivot rule.
func choosePivot(p, x bitset, g *CompatibilityGraph) int {
	best := -1
	bestDegree := -1
	for _, v := range append(p.members(), x.members()...) {
		degree := countNeighbors(g.Neighbors(v))
		if degree > bestDegree || (degree == bestDegree && (best == -1 || v < best)) {
			best = v
			bestDegree = degree
		}
	}
	return best
}

func countNeighbors(b bitset) int {
	count := 0
	for _, word := range b {
		for word != 0 {
			word &= word - 1
			count++
		}
	}
	return count
}
