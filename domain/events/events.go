package events

import (
	"time"

	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
)

// SourceService identifies this service as the event source
const SourceService = "kgraph"

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Node events

// NodeCreated is raised when a new node is created
type NodeCreated struct {
	BaseEvent
	NodeID   valueobjects.NodeID `json:"node_id"`
	NodeType string              `json:"node_type"`
	Label    string              `json:"label"`
}

// NewNodeCreated creates a NodeCreated event
func NewNodeCreated(node *entities.Node) NodeCreated {
	return NodeCreated{
		BaseEvent: BaseEvent{
			AggregateID: node.ID().String(),
			EventType:   "node.created",
			Timestamp:   node.CreatedAt(),
			Version:     1,
		},
		NodeID:   node.ID(),
		NodeType: string(node.Type()),
		Label:    node.Label(),
	}
}

// NodeDeleted is raised when a node is removed along with its incident edges
type NodeDeleted struct {
	BaseEvent
	NodeID       valueobjects.NodeID `json:"node_id"`
	EdgesRemoved int                 `json:"edges_removed"`
}

// NewNodeDeleted creates a NodeDeleted event
func NewNodeDeleted(nodeID valueobjects.NodeID, edgesRemoved int, timestamp time.Time) NodeDeleted {
	return NodeDeleted{
		BaseEvent: BaseEvent{
			AggregateID: nodeID.String(),
			EventType:   "node.deleted",
			Timestamp:   timestamp,
			Version:     1,
		},
		NodeID:       nodeID,
		EdgesRemoved: edgesRemoved,
	}
}

// Edge events

// EdgeCreated is raised when two nodes are connected
type EdgeCreated struct {
	BaseEvent
	EdgeID   valueobjects.EdgeID `json:"edge_id"`
	SourceID valueobjects.NodeID `json:"source_id"`
	TargetID valueobjects.NodeID `json:"target_id"`
	EdgeType string              `json:"edge_type"`
	Weight   float64             `json:"weight"`
}

// NewEdgeCreated creates an EdgeCreated event
func NewEdgeCreated(edge *entities.Edge) EdgeCreated {
	return EdgeCreated{
		BaseEvent: BaseEvent{
			AggregateID: edge.ID().String(),
			EventType:   "edge.created",
			Timestamp:   edge.CreatedAt(),
			Version:     1,
		},
		EdgeID:   edge.ID(),
		SourceID: edge.SourceID(),
		TargetID: edge.TargetID(),
		EdgeType: string(edge.Type()),
		Weight:   edge.Weight(),
	}
}

// EdgeDeleted is raised when an edge is removed
type EdgeDeleted struct {
	BaseEvent
	EdgeID valueobjects.EdgeID `json:"edge_id"`
}

// NewEdgeDeleted creates an EdgeDeleted event
func NewEdgeDeleted(edgeID valueobjects.EdgeID, timestamp time.Time) EdgeDeleted {
	return EdgeDeleted{
		BaseEvent: BaseEvent{
			AggregateID: edgeID.String(),
			EventType:   "edge.deleted",
			Timestamp:   timestamp,
			Version:     1,
		},
		EdgeID: edgeID,
	}
}
