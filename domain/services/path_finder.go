package services

import (
	"container/heap"
	"sort"
	"strings"

	"kgraph/domain/config"
	"kgraph/domain/core/aggregates"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// Criterion selects what a path optimization minimizes or maximizes
type Criterion string

const (
	CriterionShortest      Criterion = "shortest"
	CriterionFewestHops    Criterion = "fewest-hops"
	CriterionHighestWeight Criterion = "highest-weight"
)

// ParseCriterion validates a caller-supplied criterion string
func ParseCriterion(s string) (Criterion, error) {
	switch Criterion(s) {
	case CriterionShortest, CriterionFewestHops, CriterionHighestWeight:
		return Criterion(s), nil
	}
	return "", pkgerrors.NewInvalidCriterionError(s)
}

// Path is an ordered traversal between two graph points with an aggregate
// cost. Paths are computed on demand and never persisted.
type Path struct {
	Nodes []*entities.Node
	Edges []*entities.Edge
	Cost  float64
}

// Hops returns the number of edges traversed
func (p *Path) Hops() int {
	return len(p.Edges)
}

// EdgeTypes returns the types traversed, in order
func (p *Path) EdgeTypes() []entities.EdgeType {
	types := make([]entities.EdgeType, len(p.Edges))
	for i, edge := range p.Edges {
		types[i] = edge.Type()
	}
	return types
}

// key returns the lexicographic identity of the node sequence, the final
// tie-break that keeps path output deterministic
func (p *Path) key() string {
	ids := make([]string, len(p.Nodes))
	for i, node := range p.Nodes {
		ids[i] = node.ID().String()
	}
	return strings.Join(ids, "/")
}

// lessPath orders paths by cost, then fewest hops, then lexicographic node
// id sequence
func lessPath(a, b *Path) bool {
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}
	if len(a.Edges) != len(b.Edges) {
		return len(a.Edges) < len(b.Edges)
	}
	return a.key() < b.key()
}

// PathFinder computes traversable paths over an assembled graph view. All
// methods are pure functions of the view; the finder holds only policy, read
// as a fresh snapshot per call so configuration reloads apply between calls
// without racing in-flight searches.
type PathFinder struct {
	rt *config.Runtime
}

// NewPathFinder creates a path finder with the given domain policy
func NewPathFinder(cfg *config.DomainConfig) *PathFinder {
	return NewPathFinderFromRuntime(config.NewRuntime(cfg))
}

// NewPathFinderFromRuntime creates a path finder that follows the runtime's
// active configuration snapshot
func NewPathFinderFromRuntime(rt *config.Runtime) *PathFinder {
	return &PathFinder{rt: rt}
}

// ShortestPath returns the minimum-cost path from start to goal, restricted
// to the given edge types (all types when none given). Weights are
// non-negative by construction, so Dijkstra applies; zero-weight edges are
// free transitions and do not affect correctness.
func (f *PathFinder) ShortestPath(g *aggregates.GraphView, startID, goalID valueobjects.NodeID, types ...entities.EdgeType) (*Path, error) {
	return f.dijkstra(g, startID, goalID, types, func(e *entities.Edge) float64 { return e.Weight() })
}

// FewestHops returns the path with the minimum number of edges from start to
// goal, ignoring weights
func (f *PathFinder) FewestHops(g *aggregates.GraphView, startID, goalID valueobjects.NodeID, types ...entities.EdgeType) (*Path, error) {
	// The search minimizes hops; the returned aggregate cost is still the
	// real weight sum.
	return f.dijkstra(g, startID, goalID, types, func(*entities.Edge) float64 { return 1 })
}

// AllPaths enumerates every simple path from start to goal up to maxDepth
// edges, ordered by ascending cost. Enumeration is bounded both by depth and
// by the configured result cap to prevent combinatorial blowup.
func (f *PathFinder) AllPaths(g *aggregates.GraphView, startID, goalID valueobjects.NodeID, maxDepth int, types ...entities.EdgeType) ([]*Path, error) {
	start, err := g.Node(startID)
	if err != nil {
		return nil, err
	}
	if _, err := g.Node(goalID); err != nil {
		return nil, err
	}
	cfg := f.rt.Current()
	if maxDepth <= 0 {
		maxDepth = cfg.DefaultMaxDepth
	}
	if maxDepth > cfg.MaxPathDepth {
		maxDepth = cfg.MaxPathDepth
	}

	var paths []*Path
	onPath := map[valueobjects.NodeID]bool{startID: true}

	var walk func(current valueobjects.NodeID, nodes []*entities.Node, edges []*entities.Edge, cost float64)
	walk = func(current valueobjects.NodeID, nodes []*entities.Node, edges []*entities.Edge, cost float64) {
		if len(paths) >= cfg.MaxPathResults {
			return
		}
		if current.Equals(goalID) {
			paths = append(paths, &Path{
				Nodes: append([]*entities.Node{}, nodes...),
				Edges: append([]*entities.Edge{}, edges...),
				Cost:  cost,
			})
			return
		}
		if len(edges) >= maxDepth {
			return
		}

		for _, edge := range g.OutEdges(current, types...) {
			next := edge.TargetID()
			if onPath[next] {
				continue
			}
			nextNode, nodeErr := g.Node(next)
			if nodeErr != nil {
				continue
			}
			onPath[next] = true
			walk(next, append(nodes, nextNode), append(edges, edge), cost+edge.Weight())
			onPath[next] = false
		}
	}

	walk(startID, []*entities.Node{start}, nil, 0)

	sort.Slice(paths, func(a, b int) bool {
		return lessPath(paths[a], paths[b])
	})

	return paths, nil
}

// Optimize returns the best path from start to goal under the given
// criterion. Ties are broken by fewest hops, then lexicographic node ids.
func (f *PathFinder) Optimize(g *aggregates.GraphView, startID, goalID valueobjects.NodeID, criterion Criterion) (*Path, error) {
	switch criterion {
	case CriterionShortest:
		return f.ShortestPath(g, startID, goalID)
	case CriterionFewestHops:
		return f.FewestHops(g, startID, goalID)
	case CriterionHighestWeight:
		return f.highestWeight(g, startID, goalID)
	}
	return nil, pkgerrors.NewInvalidCriterionError(string(criterion))
}

// highestWeight maximizes the aggregate weight, a proxy for richest content.
// Maximization over graphs with cycles is unbounded, so candidates come from
// the bounded simple-path enumeration.
func (f *PathFinder) highestWeight(g *aggregates.GraphView, startID, goalID valueobjects.NodeID) (*Path, error) {
	candidates, err := f.AllPaths(g, startID, goalID, f.rt.Current().MaxPathDepth)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, pkgerrors.NewPathNotFoundError(startID.String(), goalID.String())
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.Cost > best.Cost {
			best = candidate
			continue
		}
		if candidate.Cost == best.Cost {
			if len(candidate.Edges) < len(best.Edges) ||
				(len(candidate.Edges) == len(best.Edges) && candidate.key() < best.key()) {
				best = candidate
			}
		}
	}
	return best, nil
}

type searchItem struct {
	nodeID valueobjects.NodeID
	cost   float64
	hops   int
	nodes  []*entities.Node
	edges  []*entities.Edge
}

type searchQueue []*searchItem

func (q searchQueue) Len() int { return len(q) }

func (q searchQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	if q[i].hops != q[j].hops {
		return q[i].hops < q[j].hops
	}
	return pathKey(q[i].nodes) < pathKey(q[j].nodes)
}

func (q searchQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *searchQueue) Push(x interface{}) { *q = append(*q, x.(*searchItem)) }

func (q *searchQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

func pathKey(nodes []*entities.Node) string {
	ids := make([]string, len(nodes))
	for i, node := range nodes {
		ids[i] = node.ID().String()
	}
	return strings.Join(ids, "/")
}

// dijkstra runs a uniform-cost search with a pluggable edge cost function.
// The first settlement of a node is optimal under the (cost, hops, lex)
// ordering because each component is monotone under path extension.
func (f *PathFinder) dijkstra(g *aggregates.GraphView, startID, goalID valueobjects.NodeID, types []entities.EdgeType, costOf func(*entities.Edge) float64) (*Path, error) {
	start, err := g.Node(startID)
	if err != nil {
		return nil, err
	}
	if _, err := g.Node(goalID); err != nil {
		return nil, err
	}

	if startID.Equals(goalID) {
		return &Path{Nodes: []*entities.Node{start}, Cost: 0}, nil
	}

	settled := make(map[valueobjects.NodeID]bool)
	queue := &searchQueue{{
		nodeID: startID,
		nodes:  []*entities.Node{start},
	}}
	heap.Init(queue)

	for queue.Len() > 0 {
		item := heap.Pop(queue).(*searchItem)
		if settled[item.nodeID] {
			continue
		}
		settled[item.nodeID] = true

		if item.nodeID.Equals(goalID) {
			cost := 0.0
			for _, edge := range item.edges {
				cost += edge.Weight()
			}
			return &Path{Nodes: item.nodes, Edges: item.edges, Cost: cost}, nil
		}

		for _, edge := range g.OutEdges(item.nodeID, types...) {
			next := edge.TargetID()
			if settled[next] {
				continue
			}
			nextNode, nodeErr := g.Node(next)
			if nodeErr != nil {
				continue
			}
			heap.Push(queue, &searchItem{
				nodeID: next,
				cost:   item.cost + costOf(edge),
				hops:   item.hops + 1,
				nodes:  append(append([]*entities.Node{}, item.nodes...), nextNode),
				edges:  append(append([]*entities.Edge{}, item.edges...), edge),
			})
		}
	}

	return nil, pkgerrors.NewPathNotFoundError(startID.String(), goalID.String())
}
