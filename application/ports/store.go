package ports

import (
	"context"

	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	"kgraph/domain/events"
)

// GraphStore is the port for graph persistence. This is the store adapter
// contract in hexagonal terms: the domain never sees the implementation.
// Every method returns a STORE-typed error on infrastructure failure; the
// core surfaces those unretried.
type GraphStore interface {
	// Node operations
	InsertNode(ctx context.Context, node *entities.Node) error
	FetchNode(ctx context.Context, id valueobjects.NodeID) (*entities.Node, error)
	UpdateNode(ctx context.Context, node *entities.Node) error
	DeleteNode(ctx context.Context, id valueobjects.NodeID) error
	ListNodes(ctx context.Context) ([]*entities.Node, error)

	// FindNodeByTypeAndLabel looks up a node by its uniqueness key. The label
	// key is already normalized per the configured uniqueness policy. Returns
	// a NOT_FOUND error when no such node exists.
	FindNodeByTypeAndLabel(ctx context.Context, nodeType entities.NodeType, labelKey string) (*entities.Node, error)

	// CountNodes and CountEdges report graph size for capacity enforcement.
	CountNodes(ctx context.Context) (int, error)
	CountEdges(ctx context.Context) (int, error)

	// Edge operations
	InsertEdge(ctx context.Context, edge *entities.Edge) error
	FetchEdge(ctx context.Context, id valueobjects.EdgeID) (*entities.Edge, error)
	DeleteEdge(ctx context.Context, id valueobjects.EdgeID) error
	ListEdges(ctx context.Context) ([]*entities.Edge, error)

	// FetchEdgesByNode returns the edges incident to a node in the given
	// direction, in edge-creation order.
	FetchEdgesByNode(ctx context.Context, id valueobjects.NodeID, direction entities.Direction) ([]*entities.Edge, error)

	// DeleteEdgesByNode removes every edge incident to a node and reports how
	// many were removed. Used by the node-delete cascade.
	DeleteEdgesByNode(ctx context.Context, id valueobjects.NodeID) (int, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
