package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"kgraph/application/ports"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// GraphStore is an in-memory implementation of the graph store port, used in
// tests and local development. The RWMutex closes the concurrent
// create-duplicate race the external-store adapters close with conditional
// writes: uniqueness is checked under the write lock.
type GraphStore struct {
	mu            sync.RWMutex
	caseSensitive bool

	nodes map[valueobjects.NodeID]*entities.Node
	edges map[valueobjects.EdgeID]*entities.Edge

	// uniqueness index: node type + normalized label -> node id
	labels map[labelKey]valueobjects.NodeID

	// insertion counter keeps ListNodes/ListEdges deterministic
	nodeOrder []valueobjects.NodeID
	edgeOrder []valueobjects.EdgeID
}

type labelKey struct {
	nodeType entities.NodeType
	label    string
}

// NewGraphStore creates an empty in-memory graph store. The case sensitivity
// flag must match the domain's uniqueness policy so the store-level index
// agrees with the service-level duplicate check.
func NewGraphStore(caseSensitiveLabels bool) *GraphStore {
	return &GraphStore{
		nodes:         make(map[valueobjects.NodeID]*entities.Node),
		edges:         make(map[valueobjects.EdgeID]*entities.Edge),
		labels:        make(map[labelKey]valueobjects.NodeID),
		caseSensitive: caseSensitiveLabels,
	}
}

var _ ports.GraphStore = (*GraphStore)(nil)

// InsertNode stores a new node, enforcing the uniqueness key
func (s *GraphStore) InsertNode(_ context.Context, node *entities.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nodes[node.ID()]; exists {
		return pkgerrors.NewConflictError("node already exists: " + node.ID().String())
	}

	key := labelKey{nodeType: node.Type(), label: s.normalize(node.Label())}
	if _, exists := s.labels[key]; exists {
		return pkgerrors.NewDuplicateNodeError(string(node.Type()), node.Label())
	}

	s.nodes[node.ID()] = node
	s.labels[key] = node.ID()
	s.nodeOrder = append(s.nodeOrder, node.ID())
	return nil
}

// FetchNode retrieves a node by ID
func (s *GraphStore) FetchNode(_ context.Context, id valueobjects.NodeID) (*entities.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.nodes[id]
	if !ok {
		return nil, pkgerrors.NewNodeNotFoundError(id.String())
	}
	return node, nil
}

// UpdateNode replaces a stored node, keeping the uniqueness index current
func (s *GraphStore) UpdateNode(_ context.Context, node *entities.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.nodes[node.ID()]
	if !ok {
		return pkgerrors.NewNodeNotFoundError(node.ID().String())
	}

	oldKey := labelKey{nodeType: old.Type(), label: s.normalize(old.Label())}
	newKey := labelKey{nodeType: node.Type(), label: s.normalize(node.Label())}
	if oldKey != newKey {
		if owner, exists := s.labels[newKey]; exists && !owner.Equals(node.ID()) {
			return pkgerrors.NewDuplicateNodeError(string(node.Type()), node.Label())
		}
		delete(s.labels, oldKey)
		s.labels[newKey] = node.ID()
	}

	s.nodes[node.ID()] = node
	return nil
}

// DeleteNode removes a node
func (s *GraphStore) DeleteNode(_ context.Context, id valueobjects.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[id]
	if !ok {
		return pkgerrors.NewNodeNotFoundError(id.String())
	}

	delete(s.labels, labelKey{nodeType: node.Type(), label: s.normalize(node.Label())})
	delete(s.nodes, id)
	s.nodeOrder = removeNodeID(s.nodeOrder, id)
	return nil
}

// ListNodes returns all nodes in insertion order
func (s *GraphStore) ListNodes(_ context.Context) ([]*entities.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]*entities.Node, 0, len(s.nodeOrder))
	for _, id := range s.nodeOrder {
		nodes = append(nodes, s.nodes[id])
	}
	return nodes, nil
}

// CountNodes reports the number of stored nodes
func (s *GraphStore) CountNodes(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes), nil
}

// CountEdges reports the number of stored edges
func (s *GraphStore) CountEdges(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges), nil
}

// FindNodeByTypeAndLabel looks up a node by its uniqueness key
func (s *GraphStore) FindNodeByTypeAndLabel(_ context.Context, nodeType entities.NodeType, label string) (*entities.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.labels[labelKey{nodeType: nodeType, label: s.normalize(label)}]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("node")
	}
	return s.nodes[id], nil
}

// InsertEdge stores a new edge. Endpoint existence is re-checked so the
// store never hands out orphaned edges.
func (s *GraphStore) InsertEdge(_ context.Context, edge *entities.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.edges[edge.ID()]; exists {
		return pkgerrors.NewConflictError("edge already exists: " + edge.ID().String())
	}
	if _, ok := s.nodes[edge.SourceID()]; !ok {
		return pkgerrors.NewNodeNotFoundError(edge.SourceID().String())
	}
	if _, ok := s.nodes[edge.TargetID()]; !ok {
		return pkgerrors.NewNodeNotFoundError(edge.TargetID().String())
	}

	s.edges[edge.ID()] = edge
	s.edgeOrder = append(s.edgeOrder, edge.ID())
	return nil
}

// FetchEdge retrieves an edge by ID
func (s *GraphStore) FetchEdge(_ context.Context, id valueobjects.EdgeID) (*entities.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edge, ok := s.edges[id]
	if !ok {
		return nil, pkgerrors.NewEdgeNotFoundError(id.String())
	}
	return edge, nil
}

// DeleteEdge removes an edge
func (s *GraphStore) DeleteEdge(_ context.Context, id valueobjects.EdgeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.edges[id]; !ok {
		return pkgerrors.NewEdgeNotFoundError(id.String())
	}
	delete(s.edges, id)
	s.edgeOrder = removeEdgeID(s.edgeOrder, id)
	return nil
}

// ListEdges returns all edges in insertion order
func (s *GraphStore) ListEdges(_ context.Context) ([]*entities.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges := make([]*entities.Edge, 0, len(s.edgeOrder))
	for _, id := range s.edgeOrder {
		edges = append(edges, s.edges[id])
	}
	return edges, nil
}

// FetchEdgesByNode returns the edges incident to a node in the given
// direction, in edge-creation order
func (s *GraphStore) FetchEdgesByNode(_ context.Context, id valueobjects.NodeID, direction entities.Direction) ([]*entities.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges := []*entities.Edge{}
	for _, edgeID := range s.edgeOrder {
		edge := s.edges[edgeID]
		outgoing := edge.SourceID().Equals(id)
		incoming := edge.TargetID().Equals(id)

		switch direction {
		case entities.DirectionOutgoing:
			if outgoing {
				edges = append(edges, edge)
			}
		case entities.DirectionIncoming:
			if incoming {
				edges = append(edges, edge)
			}
		case entities.DirectionBoth:
			if outgoing || incoming {
				edges = append(edges, edge)
			}
		}
	}

	sort.SliceStable(edges, func(a, b int) bool {
		if !edges[a].CreatedAt().Equal(edges[b].CreatedAt()) {
			return edges[a].CreatedAt().Before(edges[b].CreatedAt())
		}
		return edges[a].ID().String() < edges[b].ID().String()
	})
	return edges, nil
}

// DeleteEdgesByNode removes every edge incident to a node
func (s *GraphStore) DeleteEdgesByNode(_ context.Context, id valueobjects.NodeID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	remaining := s.edgeOrder[:0]
	for _, edgeID := range s.edgeOrder {
		edge := s.edges[edgeID]
		if edge.SourceID().Equals(id) || edge.TargetID().Equals(id) {
			delete(s.edges, edgeID)
			removed++
			continue
		}
		remaining = append(remaining, edgeID)
	}
	s.edgeOrder = remaining
	return removed, nil
}

func (s *GraphStore) normalize(label string) string {
	label = strings.TrimSpace(label)
	if s.caseSensitive {
		return label
	}
	return strings.ToLower(label)
}

func removeNodeID(ids []valueobjects.NodeID, id valueobjects.NodeID) []valueobjects.NodeID {
	out := ids[:0]
	for _, candidate := range ids {
		if !candidate.Equals(id) {
			out = append(out, candidate)
		}
	}
	return out
}

func removeEdgeID(ids []valueobjects.EdgeID, id valueobjects.EdgeID) []valueobjects.EdgeID {
	out := ids[:0]
	for _, candidate := range ids {
		if !candidate.Equals(id) {
			out = append(out, candidate)
		}
	}
	return out
}
