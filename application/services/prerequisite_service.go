package services

import (
	"context"
	"time"

	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	domainservices "kgraph/domain/services"
	"kgraph/pkg/observability"

	"go.uber.org/zap"
)

// PrerequisiteService answers gating queries: whether a completed set
// unlocks a node, what the full prerequisite chain looks like, and what a
// student can take next. Stateless between calls.
type PrerequisiteService struct {
	loader  *GraphLoader
	checker *domainservices.PrerequisiteChecker
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewPrerequisiteService creates a new prerequisite service
func NewPrerequisiteService(
	loader *GraphLoader,
	checker *domainservices.PrerequisiteChecker,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *PrerequisiteService {
	return &PrerequisiteService{
		loader:  loader,
		checker: checker,
		metrics: metrics,
		logger:  logger,
	}
}

// CheckPrerequisites decides whether the completed set satisfies the node's
// prerequisite rule
func (s *PrerequisiteService) CheckPrerequisites(
	ctx context.Context,
	nodeID valueobjects.NodeID,
	completed domainservices.CompletedSet,
) (*domainservices.CheckResult, error) {
	start := time.Now()

	view, err := s.loader.Load(ctx)
	if err != nil {
		s.record(ctx, "CheckPrerequisites", start, err)
		return nil, err
	}

	result, err := s.checker.Check(view, nodeID, completed)
	s.record(ctx, "CheckPrerequisites", start, err)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Checked prerequisites",
		zap.String("nodeID", nodeID.String()),
		zap.Bool("satisfied", result.Satisfied),
		zap.Int("missing", len(result.Missing)),
	)
	return result, nil
}

// GetPrerequisiteChain returns the transitive prerequisite closure of a node
// in topological order, dependencies first
func (s *PrerequisiteService) GetPrerequisiteChain(
	ctx context.Context,
	nodeID valueobjects.NodeID,
) ([]*entities.Node, error) {
	start := time.Now()

	view, err := s.loader.Load(ctx)
	if err != nil {
		s.record(ctx, "GetPrerequisiteChain", start, err)
		return nil, err
	}

	chain, err := s.checker.Chain(view, nodeID)
	s.record(ctx, "GetPrerequisiteChain", start, err)
	return chain, err
}

// SuggestNextNodes returns the immediately unlockable nodes for a completed
// set
func (s *PrerequisiteService) SuggestNextNodes(
	ctx context.Context,
	completed domainservices.CompletedSet,
) ([]*entities.Node, error) {
	start := time.Now()

	view, err := s.loader.Load(ctx)
	if err != nil {
		s.record(ctx, "SuggestNextNodes", start, err)
		return nil, err
	}

	suggestions, err := s.checker.SuggestNext(view, completed)
	s.record(ctx, "SuggestNextNodes", start, err)
	return suggestions, err
}

func (s *PrerequisiteService) record(ctx context.Context, operation string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.RecordOperation(ctx, operation, time.Since(start), err)
	}
}
