package aggregates

import (
	"sort"

	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// GraphView is an immutable in-memory assembly of the stored graph, built on
// demand for a single call. Nodes and edges live in flat arenas and adjacency
// is computed through integer indices into the edge arena, so the structure
// holds no cyclic object references even for cyclic graphs.
//
// A view reflects the store at assembly time; concurrent mutation by another
// caller is not observed mid-traversal.
type GraphView struct {
	nodes     []*entities.Node
	edges     []*entities.Edge
	nodeIndex map[valueobjects.NodeID]int

	// adjacency: per node index, indices into the edge arena, ordered by
	// edge creation time then edge id so traversal output is deterministic
	out [][]int
	in  [][]int
}

// NewGraphView assembles a view from stored nodes and edges. Edges referencing
// unknown endpoints fail assembly: the store should never hand them out.
func NewGraphView(nodes []*entities.Node, edges []*entities.Edge) (*GraphView, error) {
	g := &GraphView{
		nodes:     nodes,
		edges:     edges,
		nodeIndex: make(map[valueobjects.NodeID]int, len(nodes)),
		out:       make([][]int, len(nodes)),
		in:        make([][]int, len(nodes)),
	}

	for i, node := range nodes {
		if node == nil {
			return nil, pkgerrors.NewValidationError("graph view cannot contain nil nodes")
		}
		if _, exists := g.nodeIndex[node.ID()]; exists {
			return nil, pkgerrors.NewValidationError("duplicate node ID in graph view: " + node.ID().String())
		}
		g.nodeIndex[node.ID()] = i
	}

	for ei, edge := range edges {
		if edge == nil {
			return nil, pkgerrors.NewValidationError("graph view cannot contain nil edges")
		}
		si, ok := g.nodeIndex[edge.SourceID()]
		if !ok {
			return nil, pkgerrors.NewValidationError("edge references non-existent source node: " + edge.SourceID().String())
		}
		ti, ok := g.nodeIndex[edge.TargetID()]
		if !ok {
			return nil, pkgerrors.NewValidationError("edge references non-existent target node: " + edge.TargetID().String())
		}
		g.out[si] = append(g.out[si], ei)
		g.in[ti] = append(g.in[ti], ei)
	}

	for i := range g.out {
		g.sortAdjacency(g.out[i])
		g.sortAdjacency(g.in[i])
	}

	return g, nil
}

func (g *GraphView) sortAdjacency(indices []int) {
	sort.SliceStable(indices, func(a, b int) bool {
		ea, eb := g.edges[indices[a]], g.edges[indices[b]]
		if !ea.CreatedAt().Equal(eb.CreatedAt()) {
			return ea.CreatedAt().Before(eb.CreatedAt())
		}
		return ea.ID().String() < eb.ID().String()
	})
}

// NodeCount returns how many nodes the view holds
func (g *GraphView) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns how many edges the view holds
func (g *GraphView) EdgeCount() int {
	return len(g.edges)
}

// HasNode checks if a node exists in the view
func (g *GraphView) HasNode(id valueobjects.NodeID) bool {
	_, ok := g.nodeIndex[id]
	return ok
}

// Node retrieves a node by ID
func (g *GraphView) Node(id valueobjects.NodeID) (*entities.Node, error) {
	i, ok := g.nodeIndex[id]
	if !ok {
		return nil, pkgerrors.NewNodeNotFoundError(id.String())
	}
	return g.nodes[i], nil
}

// Nodes returns all nodes ordered by id for deterministic iteration
func (g *GraphView) Nodes() []*entities.Node {
	nodes := make([]*entities.Node, len(g.nodes))
	copy(nodes, g.nodes)
	sort.Slice(nodes, func(a, b int) bool {
		return nodes[a].ID().String() < nodes[b].ID().String()
	})
	return nodes
}

// Edges returns all edges in arena order
func (g *GraphView) Edges() []*entities.Edge {
	edges := make([]*entities.Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// OutEdges returns the edges leaving a node, optionally filtered by type,
// in edge-creation order
func (g *GraphView) OutEdges(id valueobjects.NodeID, types ...entities.EdgeType) []*entities.Edge {
	i, ok := g.nodeIndex[id]
	if !ok {
		return nil
	}
	return g.collectEdges(g.out[i], types)
}

// InEdges returns the edges arriving at a node, optionally filtered by type,
// in edge-creation order
func (g *GraphView) InEdges(id valueobjects.NodeID, types ...entities.EdgeType) []*entities.Edge {
	i, ok := g.nodeIndex[id]
	if !ok {
		return nil
	}
	return g.collectEdges(g.in[i], types)
}

func (g *GraphView) collectEdges(indices []int, types []entities.EdgeType) []*entities.Edge {
	edges := make([]*entities.Edge, 0, len(indices))
	for _, ei := range indices {
		edge := g.edges[ei]
		if len(types) > 0 && !containsType(types, edge.Type()) {
			continue
		}
		edges = append(edges, edge)
	}
	return edges
}

// Neighbors returns the nodes adjacent to a node in the given direction,
// optionally filtered by edge type, in edge-creation order
func (g *GraphView) Neighbors(id valueobjects.NodeID, direction entities.Direction, types ...entities.EdgeType) ([]*entities.Node, error) {
	i, ok := g.nodeIndex[id]
	if !ok {
		return nil, pkgerrors.NewNodeNotFoundError(id.String())
	}

	seen := make(map[valueobjects.NodeID]bool)
	neighbors := []*entities.Node{}

	appendNeighbor := func(nodeID valueobjects.NodeID) {
		if seen[nodeID] {
			return
		}
		seen[nodeID] = true
		neighbors = append(neighbors, g.nodes[g.nodeIndex[nodeID]])
	}

	if direction == entities.DirectionOutgoing || direction == entities.DirectionBoth {
		for _, edge := range g.collectEdges(g.out[i], types) {
			appendNeighbor(edge.TargetID())
		}
	}
	if direction == entities.DirectionIncoming || direction == entities.DirectionBoth {
		for _, edge := range g.collectEdges(g.in[i], types) {
			appendNeighbor(edge.SourceID())
		}
	}

	return neighbors, nil
}

// Prerequisites returns the incoming prerequisite edges of a node in
// edge-creation order. This is the derived prerequisite rule input.
func (g *GraphView) Prerequisites(id valueobjects.NodeID) []*entities.Edge {
	return g.InEdges(id, entities.EdgeTypePrerequisite)
}

// WouldCreatePrerequisiteCycle reports whether adding a prerequisite edge
// source->target would close a cycle. A cycle exists exactly when the source
// is already reachable from the target over prerequisite edges; detection is
// an iterative DFS from the target restricted to that edge type.
func (g *GraphView) WouldCreatePrerequisiteCycle(sourceID, targetID valueobjects.NodeID) bool {
	if sourceID.Equals(targetID) {
		return true
	}
	ti, ok := g.nodeIndex[targetID]
	if !ok {
		return false
	}
	if _, ok := g.nodeIndex[sourceID]; !ok {
		return false
	}

	visited := make(map[int]bool)
	stack := []int{ti}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[current] {
			continue
		}
		visited[current] = true

		for _, ei := range g.out[current] {
			edge := g.edges[ei]
			if !edge.IsPrerequisite() {
				continue
			}
			next := g.nodeIndex[edge.TargetID()]
			if edge.TargetID().Equals(sourceID) {
				return true
			}
			if !visited[next] {
				stack = append(stack, next)
			}
		}
	}

	return false
}

// Validate ensures view invariants: every edge endpoint resolves to a node
func (g *GraphView) Validate() error {
	for _, edge := range g.edges {
		if _, ok := g.nodeIndex[edge.SourceID()]; !ok {
			return pkgerrors.NewValidationError("edge references non-existent source node")
		}
		if _, ok := g.nodeIndex[edge.TargetID()]; !ok {
			return pkgerrors.NewValidationError("edge references non-existent target node")
		}
	}
	return nil
}

func containsType(types []entities.EdgeType, t entities.EdgeType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
