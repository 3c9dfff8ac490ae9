package entities

import (
	"time"

	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// EdgeType defines the type of relationship between two nodes. Traversal
// always follows edge direction as stored.
type EdgeType string

const (
	EdgeTypePrerequisite EdgeType = "prerequisite"
	EdgeTypeRelated      EdgeType = "related"
	EdgeTypePartOf       EdgeType = "part_of"
	EdgeTypeLeadsTo      EdgeType = "leads_to"
)

// ValidEdgeType reports whether t is a member of the closed edge type enum
func ValidEdgeType(t EdgeType) bool {
	switch t {
	case EdgeTypePrerequisite, EdgeTypeRelated, EdgeTypePartOf, EdgeTypeLeadsTo:
		return true
	}
	return false
}

// AllEdgeTypes returns every traversable edge type
func AllEdgeTypes() []EdgeType {
	return []EdgeType{EdgeTypePrerequisite, EdgeTypeRelated, EdgeTypePartOf, EdgeTypeLeadsTo}
}

// Direction selects which incident edges of a node to consider
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
	DirectionBoth     Direction = "both"
)

// ValidDirection reports whether d is a member of the direction enum
func ValidDirection(d Direction) bool {
	return d == DirectionIncoming || d == DirectionOutgoing || d == DirectionBoth
}

// Edge is a directed, typed, weighted relationship between two nodes. The
// weight is the traversal cost used by path finding; zero is legal (a free
// transition), negative weights are rejected at construction.
type Edge struct {
	id        valueobjects.EdgeID
	sourceID  valueobjects.NodeID
	targetID  valueobjects.NodeID
	edgeType  EdgeType
	weight    float64
	createdAt time.Time
}

// DefaultEdgeWeight is applied when the caller does not supply a weight
const DefaultEdgeWeight = 1.0

// NewEdge creates a new edge with validation. Endpoint existence is checked
// by the graph service, not here: an entity cannot see the rest of the graph.
func NewEdge(sourceID, targetID valueobjects.NodeID, edgeType EdgeType, weight float64) (*Edge, error) {
	if sourceID.IsZero() || targetID.IsZero() {
		return nil, pkgerrors.NewValidationError("edge endpoints are required")
	}
	if sourceID.Equals(targetID) {
		return nil, pkgerrors.NewValidationError("self-loops are not allowed")
	}
	if !ValidEdgeType(edgeType) {
		return nil, pkgerrors.NewValidationError("invalid edge type: " + string(edgeType))
	}
	if weight < 0 {
		return nil, pkgerrors.NewValidationError("edge weight cannot be negative")
	}

	return &Edge{
		id:        valueobjects.NewEdgeID(),
		sourceID:  sourceID,
		targetID:  targetID,
		edgeType:  edgeType,
		weight:    weight,
		createdAt: time.Now(),
	}, nil
}

// ReconstructEdge reconstructs an edge from repository data
func ReconstructEdge(
	id valueobjects.EdgeID,
	sourceID, targetID valueobjects.NodeID,
	edgeType EdgeType,
	weight float64,
	createdAt time.Time,
) (*Edge, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("edge ID is required")
	}
	if sourceID.IsZero() || targetID.IsZero() {
		return nil, pkgerrors.NewValidationError("edge endpoints are required")
	}
	if !ValidEdgeType(edgeType) {
		return nil, pkgerrors.NewValidationError("invalid edge type: " + string(edgeType))
	}
	if weight < 0 {
		return nil, pkgerrors.NewValidationError("edge weight cannot be negative")
	}

	return &Edge{
		id:        id,
		sourceID:  sourceID,
		targetID:  targetID,
		edgeType:  edgeType,
		weight:    weight,
		createdAt: createdAt,
	}, nil
}

// ID returns the edge's unique identifier
func (e *Edge) ID() valueobjects.EdgeID {
	return e.id
}

// SourceID returns the source node's identifier
func (e *Edge) SourceID() valueobjects.NodeID {
	return e.sourceID
}

// TargetID returns the target node's identifier
func (e *Edge) TargetID() valueobjects.NodeID {
	return e.targetID
}

// Type returns the edge's relationship type
func (e *Edge) Type() EdgeType {
	return e.edgeType
}

// Weight returns the edge's traversal cost
func (e *Edge) Weight() float64 {
	return e.weight
}

// CreatedAt returns when the edge was created
func (e *Edge) CreatedAt() time.Time {
	return e.createdAt
}

// IsPrerequisite reports whether the edge gates its target behind its source
func (e *Edge) IsPrerequisite() bool {
	return e.edgeType == EdgeTypePrerequisite
}
