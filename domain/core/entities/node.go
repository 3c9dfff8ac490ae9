package entities

import (
	"strings"
	"time"

	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

// NodeType classifies a vertex in the knowledge graph. The enum is closed:
// unknown types are rejected at construction.
type NodeType string

const (
	NodeTypeCourse  NodeType = "course"
	NodeTypeSkill   NodeType = "skill"
	NodeTypeTopic   NodeType = "topic"
	NodeTypeConcept NodeType = "concept"
)

// ValidNodeType reports whether t is a member of the closed node type enum
func ValidNodeType(t NodeType) bool {
	switch t {
	case NodeTypeCourse, NodeTypeSkill, NodeTypeTopic, NodeTypeConcept:
		return true
	}
	return false
}

// RequirementType expresses how a node's prerequisite rule combines its
// prerequisite edges: all of them must be satisfied, or any one of them.
type RequirementType string

const (
	RequirementAll RequirementType = "all"
	RequirementAny RequirementType = "any"
)

// ValidRequirementType reports whether r is a member of the requirement enum
func ValidRequirementType(r RequirementType) bool {
	return r == RequirementAll || r == RequirementAny
}

// Node is the main entity representing a course, skill, topic or concept
// vertex. The type is immutable after creation; metadata is an opaque
// consumer-defined bag that the core stores but never interprets.
type Node struct {
	id          valueobjects.NodeID
	nodeType    NodeType
	label       string
	metadata    map[string]interface{}
	requirement RequirementType
	createdAt   time.Time
	updatedAt   time.Time
	version     int
}

// NewNode creates a new node with full business rule validation
func NewNode(nodeType NodeType, label string, metadata map[string]interface{}) (*Node, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, pkgerrors.NewValidationError("label cannot be empty")
	}
	if !ValidNodeType(nodeType) {
		return nil, pkgerrors.NewValidationError("invalid node type: " + string(nodeType))
	}

	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	now := time.Now()
	return &Node{
		id:          valueobjects.NewNodeID(),
		nodeType:    nodeType,
		label:       label,
		metadata:    metadata,
		requirement: RequirementAll,
		createdAt:   now,
		updatedAt:   now,
		version:     1,
	}, nil
}

// ReconstructNode reconstructs a node from repository data with preserved
// timestamps
func ReconstructNode(
	id valueobjects.NodeID,
	nodeType NodeType,
	label string,
	metadata map[string]interface{},
	requirement RequirementType,
	createdAt, updatedAt time.Time,
) (*Node, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("node ID is required")
	}
	if !ValidNodeType(nodeType) {
		return nil, pkgerrors.NewValidationError("invalid node type: " + string(nodeType))
	}
	if !ValidRequirementType(requirement) {
		requirement = RequirementAll
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Node{
		id:          id,
		nodeType:    nodeType,
		label:       label,
		metadata:    metadata,
		requirement: requirement,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		version:     1,
	}, nil
}

// ID returns the node's unique identifier
func (n *Node) ID() valueobjects.NodeID {
	return n.id
}

// Type returns the node's type. There is no setter: type is immutable.
func (n *Node) Type() NodeType {
	return n.nodeType
}

// Label returns the node's label
func (n *Node) Label() string {
	return n.label
}

// Requirement returns how prerequisite edges to this node combine
func (n *Node) Requirement() RequirementType {
	return n.requirement
}

// Metadata returns a copy of the node's metadata bag
func (n *Node) Metadata() map[string]interface{} {
	md := make(map[string]interface{}, len(n.metadata))
	for k, v := range n.metadata {
		md[k] = v
	}
	return md
}

// Version returns the node's version for optimistic locking
func (n *Node) Version() int {
	return n.version
}

// CreatedAt returns when the node was created
func (n *Node) CreatedAt() time.Time {
	return n.createdAt
}

// UpdatedAt returns when the node was last updated
func (n *Node) UpdatedAt() time.Time {
	return n.updatedAt
}

// Rename updates the node's label with validation
func (n *Node) Rename(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return pkgerrors.NewValidationError("label cannot be empty")
	}
	if label == n.label {
		return nil
	}

	n.label = label
	n.updatedAt = time.Now()
	n.version++
	return nil
}

// SetRequirement changes how the node's prerequisite rule combines edges
func (n *Node) SetRequirement(requirement RequirementType) error {
	if !ValidRequirementType(requirement) {
		return pkgerrors.NewValidationError("invalid requirement type: " + string(requirement))
	}
	if requirement == n.requirement {
		return nil
	}

	n.requirement = requirement
	n.updatedAt = time.Now()
	n.version++
	return nil
}

// SetMetadata replaces the node's metadata bag
func (n *Node) SetMetadata(metadata map[string]interface{}) {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	n.metadata = metadata
	n.updatedAt = time.Now()
	n.version++
}

// MatchesLabel reports whether the node's label equals the given label under
// the configured uniqueness policy
func (n *Node) MatchesLabel(label string, caseSensitive bool) bool {
	label = strings.TrimSpace(label)
	if caseSensitive {
		return n.label == label
	}
	return strings.EqualFold(n.label, label)
}
