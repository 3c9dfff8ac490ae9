package services

import (
	"context"

	"kgraph/application/ports"
	"kgraph/domain/core/aggregates"
	"kgraph/pkg/observability"

	"go.uber.org/zap"
)

// GraphLoader assembles an in-memory graph view from the store. Assembly is
// two sequential reads (nodes, then edges); there is no caching layer, so
// every query reflects the latest committed state the store hands out. A
// view built here is consistent only to the extent the store's isolation
// provides.
type GraphLoader struct {
	store   ports.GraphStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewGraphLoader creates a new graph loader
func NewGraphLoader(store ports.GraphStore, metrics *observability.Metrics, logger *zap.Logger) *GraphLoader {
	return &GraphLoader{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Load fetches the full graph and assembles a traversable view
func (l *GraphLoader) Load(ctx context.Context) (*aggregates.GraphView, error) {
	nodes, err := l.store.ListNodes(ctx)
	if err != nil {
		return nil, err
	}

	edges, err := l.store.ListEdges(ctx)
	if err != nil {
		return nil, err
	}

	view, err := aggregates.NewGraphView(nodes, edges)
	if err != nil {
		l.logger.Error("Failed to assemble graph view",
			zap.Error(err),
			zap.Int("nodeCount", len(nodes)),
			zap.Int("edgeCount", len(edges)),
		)
		return nil, err
	}

	l.logger.Debug("Assembled graph view",
		zap.Int("nodeCount", view.NodeCount()),
		zap.Int("edgeCount", view.EdgeCount()),
	)
	if l.metrics != nil {
		l.metrics.RecordGraphSize(ctx, view.NodeCount(), view.EdgeCount())
	}

	return view, nil
}
