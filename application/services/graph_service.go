package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kgraph/application/ports"
	"kgraph/domain/config"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	"kgraph/domain/events"
	pkgerrors "kgraph/pkg/errors"

	"go.uber.org/zap"
)

// GraphService is the authoritative entry point for graph mutations and
// structural queries. It enforces duplicate, referential-integrity and
// acyclicity invariants before anything reaches the store; a rejected
// mutation leaves the stored graph untouched.
type GraphService struct {
	store     ports.GraphStore
	loader    *GraphLoader
	publisher ports.EventPublisher
	cfg       *config.DomainConfig
	logger    *zap.Logger
}

// NewGraphService creates a new graph service
func NewGraphService(
	store ports.GraphStore,
	loader *GraphLoader,
	publisher ports.EventPublisher,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *GraphService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &GraphService{
		store:     store,
		loader:    loader,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

// DefaultEdgeWeight is the weight applied when a caller omits one
func (s *GraphService) DefaultEdgeWeight() float64 {
	return s.cfg.DefaultEdgeWeight
}

// labelKey normalizes a label into the uniqueness key for duplicate
// detection, per the configured case sensitivity policy
func (s *GraphService) labelKey(label string) string {
	label = strings.TrimSpace(label)
	if s.cfg.CaseSensitiveLabels {
		return label
	}
	return strings.ToLower(label)
}

// CreateNode creates a node after checking the duplicate policy: a node is
// equivalent to an existing one when type and normalized label match.
//
// Known gap: the check-then-insert is not atomic across callers unless the
// store enforces the uniqueness key itself; the bundled adapters do.
func (s *GraphService) CreateNode(
	ctx context.Context,
	nodeType entities.NodeType,
	label string,
	metadata map[string]interface{},
	requirement entities.RequirementType,
) (*entities.Node, error) {
	node, err := entities.NewNode(nodeType, label, metadata)
	if err != nil {
		return nil, err
	}
	if requirement != "" {
		if err := node.SetRequirement(requirement); err != nil {
			return nil, err
		}
	}

	count, err := s.store.CountNodes(ctx)
	if err != nil {
		return nil, err
	}
	if count >= s.cfg.MaxNodes {
		return nil, pkgerrors.NewValidationError(
			fmt.Sprintf("graph is at its node capacity of %d", s.cfg.MaxNodes))
	}

	existing, err := s.store.FindNodeByTypeAndLabel(ctx, nodeType, s.labelKey(label))
	if err != nil && !pkgerrors.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, pkgerrors.NewDuplicateNodeError(string(nodeType), label)
	}

	if err := s.store.InsertNode(ctx, node); err != nil {
		return nil, err
	}

	s.logger.Info("Created node",
		zap.String("nodeID", node.ID().String()),
		zap.String("type", string(node.Type())),
		zap.String("label", node.Label()),
	)

	s.publish(ctx, events.NewNodeCreated(node))
	return node, nil
}

// GetNode retrieves a node by ID
func (s *GraphService) GetNode(ctx context.Context, id valueobjects.NodeID) (*entities.Node, error) {
	return s.store.FetchNode(ctx, id)
}

// UpdateNode renames a node, replaces its metadata or changes its
// requirement mode. Node type is immutable and cannot be updated.
func (s *GraphService) UpdateNode(
	ctx context.Context,
	id valueobjects.NodeID,
	label *string,
	metadata map[string]interface{},
	requirement *entities.RequirementType,
) (*entities.Node, error) {
	node, err := s.store.FetchNode(ctx, id)
	if err != nil {
		return nil, err
	}

	if label != nil && !node.MatchesLabel(*label, s.cfg.CaseSensitiveLabels) {
		existing, findErr := s.store.FindNodeByTypeAndLabel(ctx, node.Type(), s.labelKey(*label))
		if findErr != nil && !pkgerrors.IsNotFound(findErr) {
			return nil, findErr
		}
		if existing != nil && !existing.ID().Equals(id) {
			return nil, pkgerrors.NewDuplicateNodeError(string(node.Type()), *label)
		}
		if err := node.Rename(*label); err != nil {
			return nil, err
		}
	}
	if metadata != nil {
		node.SetMetadata(metadata)
	}
	if requirement != nil {
		if err := node.SetRequirement(*requirement); err != nil {
			return nil, err
		}
	}

	if err := s.store.UpdateNode(ctx, node); err != nil {
		return nil, err
	}
	return node, nil
}

// DeleteNode removes a node. The delete cascades to every incident edge
// before the node row goes, so no orphaned edges survive a partial failure.
func (s *GraphService) DeleteNode(ctx context.Context, id valueobjects.NodeID) error {
	if _, err := s.store.FetchNode(ctx, id); err != nil {
		return err
	}

	removed, err := s.store.DeleteEdgesByNode(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteNode(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Deleted node",
		zap.String("nodeID", id.String()),
		zap.Int("edgesRemoved", removed),
	)

	s.publish(ctx, events.NewNodeDeleted(id, removed, time.Now()))
	return nil
}

// CreateEdge connects two existing nodes. Self-loops and negative weights
// are rejected outright; a prerequisite edge that would close a cycle is
// rejected with no partial mutation, detected by DFS from the target back to
// the source over prerequisite edges.
func (s *GraphService) CreateEdge(
	ctx context.Context,
	sourceID, targetID valueobjects.NodeID,
	edgeType entities.EdgeType,
	weight float64,
) (*entities.Edge, error) {
	if weight < s.cfg.MinEdgeWeight {
		return nil, pkgerrors.NewValidationError(
			fmt.Sprintf("edge weight must be at least %g", s.cfg.MinEdgeWeight))
	}
	edge, err := entities.NewEdge(sourceID, targetID, edgeType, weight)
	if err != nil {
		return nil, err
	}

	count, err := s.store.CountEdges(ctx)
	if err != nil {
		return nil, err
	}
	if count >= s.cfg.MaxEdges {
		return nil, pkgerrors.NewValidationError(
			fmt.Sprintf("graph is at its edge capacity of %d", s.cfg.MaxEdges))
	}

	if _, err := s.store.FetchNode(ctx, sourceID); err != nil {
		return nil, err
	}
	if _, err := s.store.FetchNode(ctx, targetID); err != nil {
		return nil, err
	}

	if edge.IsPrerequisite() {
		view, err := s.loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		if view.WouldCreatePrerequisiteCycle(sourceID, targetID) {
			return nil, pkgerrors.NewCycleDetectedError(sourceID.String(), targetID.String())
		}
	}

	if err := s.store.InsertEdge(ctx, edge); err != nil {
		return nil, err
	}

	s.logger.Info("Created edge",
		zap.String("edgeID", edge.ID().String()),
		zap.String("sourceID", sourceID.String()),
		zap.String("targetID", targetID.String()),
		zap.String("type", string(edgeType)),
		zap.Float64("weight", weight),
	)

	s.publish(ctx, events.NewEdgeCreated(edge))
	return edge, nil
}

// ListNodes returns every node in creation order
func (s *GraphService) ListNodes(ctx context.Context) ([]*entities.Node, error) {
	return s.store.ListNodes(ctx)
}

// ListEdges returns every edge in creation order
func (s *GraphService) ListEdges(ctx context.Context) ([]*entities.Edge, error) {
	return s.store.ListEdges(ctx)
}

// GetEdge retrieves an edge by ID
func (s *GraphService) GetEdge(ctx context.Context, id valueobjects.EdgeID) (*entities.Edge, error) {
	return s.store.FetchEdge(ctx, id)
}

// DeleteEdge removes an edge
func (s *GraphService) DeleteEdge(ctx context.Context, id valueobjects.EdgeID) error {
	if _, err := s.store.FetchEdge(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteEdge(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.NewEdgeDeleted(id, time.Now()))
	return nil
}

// GetNeighbors returns the nodes adjacent to a node in the given direction,
// optionally restricted to one edge type, in edge-creation order
func (s *GraphService) GetNeighbors(
	ctx context.Context,
	id valueobjects.NodeID,
	edgeType entities.EdgeType,
	direction entities.Direction,
) ([]*entities.Node, error) {
	if !entities.ValidDirection(direction) {
		return nil, pkgerrors.NewValidationError("invalid direction: " + string(direction))
	}
	if edgeType != "" && !entities.ValidEdgeType(edgeType) {
		return nil, pkgerrors.NewValidationError("invalid edge type: " + string(edgeType))
	}

	if _, err := s.store.FetchNode(ctx, id); err != nil {
		return nil, err
	}

	edges, err := s.store.FetchEdgesByNode(ctx, id, direction)
	if err != nil {
		return nil, err
	}

	seen := make(map[valueobjects.NodeID]bool)
	neighbors := []*entities.Node{}
	for _, edge := range edges {
		if edgeType != "" && edge.Type() != edgeType {
			continue
		}

		neighborID := edge.TargetID()
		if neighborID.Equals(id) {
			neighborID = edge.SourceID()
		}
		if seen[neighborID] {
			continue
		}
		seen[neighborID] = true

		neighbor, err := s.store.FetchNode(ctx, neighborID)
		if err != nil {
			return nil, err
		}
		neighbors = append(neighbors, neighbor)
	}

	return neighbors, nil
}

// publish sends a domain event; failures are logged, never fatal to the
// completed mutation
func (s *GraphService) publish(ctx context.Context, event events.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish domain event",
			zap.Error(err),
			zap.String("eventType", event.GetEventType()),
		)
	}
}
