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

// PathService answers path queries. Each call assembles a fresh graph view
// and runs the bounded domain algorithms over it; nothing blocks longer than
// the store reads plus the traversal itself.
type PathService struct {
	loader  *GraphLoader
	finder  *domainservices.PathFinder
	metrics *observability.Metrics
	tracer  *observability.Tracer
	logger  *zap.Logger
}

// NewPathService creates a new path service
func NewPathService(
	loader *GraphLoader,
	finder *domainservices.PathFinder,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *PathService {
	return &PathService{
		loader:  loader,
		finder:  finder,
		metrics: metrics,
		tracer:  tracer,
		logger:  logger,
	}
}

// FindShortestPath returns the minimum-cost path between two nodes,
// restricted to the given edge types (all types when none given)
func (s *PathService) FindShortestPath(
	ctx context.Context,
	startID, goalID valueobjects.NodeID,
	edgeTypes ...entities.EdgeType,
) (*domainservices.Path, error) {
	var path *domainservices.Path

	err := s.traced(ctx, "FindShortestPath", func(ctx context.Context) error {
		view, err := s.loader.Load(ctx)
		if err != nil {
			return err
		}
		path, err = s.finder.ShortestPath(view, startID, goalID, edgeTypes...)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Computed shortest path",
		zap.String("startID", startID.String()),
		zap.String("goalID", goalID.String()),
		zap.Float64("cost", path.Cost),
		zap.Int("hops", path.Hops()),
	)
	return path, nil
}

// FindAllPaths enumerates simple paths between two nodes up to maxDepth
// edges, ordered by ascending cost
func (s *PathService) FindAllPaths(
	ctx context.Context,
	startID, goalID valueobjects.NodeID,
	maxDepth int,
) ([]*domainservices.Path, error) {
	var paths []*domainservices.Path

	err := s.traced(ctx, "FindAllPaths", func(ctx context.Context) error {
		view, err := s.loader.Load(ctx)
		if err != nil {
			return err
		}
		paths, err = s.finder.AllPaths(view, startID, goalID, maxDepth)
		return err
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// OptimizePath returns the best path under a named criterion
func (s *PathService) OptimizePath(
	ctx context.Context,
	startID, goalID valueobjects.NodeID,
	criterion string,
) (*domainservices.Path, error) {
	parsed, err := domainservices.ParseCriterion(criterion)
	if err != nil {
		return nil, err
	}

	var path *domainservices.Path
	err = s.traced(ctx, "OptimizePath", func(ctx context.Context) error {
		view, err := s.loader.Load(ctx)
		if err != nil {
			return err
		}
		path, err = s.finder.Optimize(view, startID, goalID, parsed)
		return err
	})
	if err != nil {
		return nil, err
	}
	return path, nil
}

// traced wraps an operation with tracing and latency metrics when they are
// configured
func (s *PathService) traced(ctx context.Context, operation string, fn func(context.Context) error) error {
	start := time.Now()

	var err error
	if s.tracer != nil {
		err = s.tracer.TraceFunction(ctx, operation, fn)
	} else {
		err = fn(ctx)
	}

	if s.metrics != nil {
		s.metrics.RecordOperation(ctx, operation, time.Since(start), err)
	}
	return err
}
