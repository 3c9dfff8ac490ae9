package services_test

import (
	"sync"
	"testing"
	"time"

	"kgraph/domain/config"
	"kgraph/domain/core/aggregates"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	"kgraph/domain/services"
	pkgerrors "kgraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newNode(t *testing.T, label string) *entities.Node {
	t.Helper()
	node, err := entities.NewNode(entities.NodeTypeCourse, label, nil)
	require.NoError(t, err)
	return node
}

func newEdge(t *testing.T, source, target *entities.Node, edgeType entities.EdgeType, weight float64, seq int) *entities.Edge {
	t.Helper()
	edge, err := entities.ReconstructEdge(
		valueobjects.NewEdgeID(),
		source.ID(), target.ID(),
		edgeType, weight,
		epoch.Add(time.Duration(seq)*time.Second),
	)
	require.NoError(t, err)
	return edge
}

func newView(t *testing.T, nodes []*entities.Node, edges []*entities.Edge) *aggregates.GraphView {
	t.Helper()
	view, err := aggregates.NewGraphView(nodes, edges)
	require.NoError(t, err)
	return view
}

// diamond builds:
//
//	A -> B (1) -> D (1)     total 2, 2 hops
//	A -> C (5) -> D (5)     total 10, 2 hops
//	A -> D (3)              total 3, 1 hop
func diamond(t *testing.T) (*aggregates.GraphView, *entities.Node, *entities.Node) {
	t.Helper()
	a := newNode(t, "A")
	b := newNode(t, "B")
	c := newNode(t, "C")
	d := newNode(t, "D")

	edges := []*entities.Edge{
		newEdge(t, a, b, entities.EdgeTypeLeadsTo, 1, 0),
		newEdge(t, b, d, entities.EdgeTypeLeadsTo, 1, 1),
		newEdge(t, a, c, entities.EdgeTypeLeadsTo, 5, 2),
		newEdge(t, c, d, entities.EdgeTypeLeadsTo, 5, 3),
		newEdge(t, a, d, entities.EdgeTypeLeadsTo, 3, 4),
	}
	return newView(t, []*entities.Node{a, b, c, d}, edges), a, d
}

func pathLabels(p *services.Path) []string {
	labels := make([]string, len(p.Nodes))
	for i, node := range p.Nodes {
		labels[i] = node.Label()
	}
	return labels
}

func TestPathFinder_ShortestPath(t *testing.T) {
	view, a, d := diamond(t)
	finder := services.NewPathFinder(nil)

	path, err := finder.ShortestPath(view, a.ID(), d.ID())

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D"}, pathLabels(path))
	assert.Equal(t, 2.0, path.Cost)
	assert.Equal(t, 2, path.Hops())
}

func TestPathFinder_FewestHops(t *testing.T) {
	view, a, d := diamond(t)
	finder := services.NewPathFinder(nil)

	path, err := finder.FewestHops(view, a.ID(), d.ID())

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "D"}, pathLabels(path))
	assert.Equal(t, 1, path.Hops())
	assert.Equal(t, 3.0, path.Cost, "reported cost is the real weight sum")
}

func TestPathFinder_ShortestPath_StartEqualsGoal(t *testing.T) {
	view, a, _ := diamond(t)
	finder := services.NewPathFinder(nil)

	path, err := finder.ShortestPath(view, a.ID(), a.ID())

	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, pathLabels(path))
	assert.Equal(t, 0.0, path.Cost)
	assert.Equal(t, 0, path.Hops())
}

func TestPathFinder_ShortestPath_UnknownEndpointsFail(t *testing.T) {
	view, a, _ := diamond(t)
	finder := services.NewPathFinder(nil)

	_, err := finder.ShortestPath(view, valueobjects.NewNodeID(), a.ID())
	assert.True(t, pkgerrors.IsNotFound(err))

	_, err = finder.ShortestPath(view, a.ID(), valueobjects.NewNodeID())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestPathFinder_ShortestPath_Disconnected(t *testing.T) {
	a := newNode(t, "A")
	b := newNode(t, "B")
	view := newView(t, []*entities.Node{a, b}, nil)
	finder := services.NewPathFinder(nil)

	path, err := finder.ShortestPath(view, a.ID(), b.ID())

	assert.Nil(t, path)
	require.Error(t, err)
	appErr := pkgerrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodePathNotFound, appErr.Code)
}

func TestPathFinder_ShortestPath_DirectionMatters(t *testing.T) {
	a := newNode(t, "A")
	b := newNode(t, "B")
	view := newView(t, []*entities.Node{a, b}, []*entities.Edge{
		newEdge(t, a, b, entities.EdgeTypeLeadsTo, 1, 0),
	})
	finder := services.NewPathFinder(nil)

	_, err := finder.ShortestPath(view, b.ID(), a.ID())

	require.Error(t, err)
	appErr := pkgerrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodePathNotFound, appErr.Code)
}

func TestPathFinder_ShortestPath_EdgeTypeFilter(t *testing.T) {
	a := newNode(t, "A")
	b := newNode(t, "B")
	c := newNode(t, "C")
	// cheap route uses a related edge, prerequisite-only route is longer
	view := newView(t, []*entities.Node{a, b, c}, []*entities.Edge{
		newEdge(t, a, c, entities.EdgeTypeRelated, 1, 0),
		newEdge(t, a, b, entities.EdgeTypePrerequisite, 2, 1),
		newEdge(t, b, c, entities.EdgeTypePrerequisite, 2, 2),
	})
	finder := services.NewPathFinder(nil)

	unrestricted, err := finder.ShortestPath(view, a.ID(), c.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, pathLabels(unrestricted))

	restricted, err := finder.ShortestPath(view, a.ID(), c.ID(), entities.EdgeTypePrerequisite)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, pathLabels(restricted))
	assert.Equal(t, 4.0, restricted.Cost)
}

func TestPathFinder_ShortestPath_ZeroWeightEdges(t *testing.T) {
	a := newNode(t, "A")
	b := newNode(t, "B")
	c := newNode(t, "C")
	view := newView(t, []*entities.Node{a, b, c}, []*entities.Edge{
		newEdge(t, a, b, entities.EdgeTypeLeadsTo, 0, 0),
		newEdge(t, b, c, entities.EdgeTypeLeadsTo, 0, 1),
		newEdge(t, a, c, entities.EdgeTypeLeadsTo, 1, 2),
	})
	finder := services.NewPathFinder(nil)

	path, err := finder.ShortestPath(view, a.ID(), c.ID())

	require.NoError(t, err)
	assert.Equal(t, 0.0, path.Cost)
	assert.Equal(t, []string{"A", "B", "C"}, pathLabels(path))
}

func TestPathFinder_AllPaths(t *testing.T) {
	view, a, d := diamond(t)
	finder := services.NewPathFinder(nil)

	paths, err := finder.AllPaths(view, a.ID(), d.ID(), 0)

	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, []string{"A", "B", "D"}, pathLabels(paths[0]), "ascending cost order")
	assert.Equal(t, []string{"A", "D"}, pathLabels(paths[1]))
	assert.Equal(t, []string{"A", "C", "D"}, pathLabels(paths[2]))
	assert.Equal(t, 2.0, paths[0].Cost)
	assert.Equal(t, 3.0, paths[1].Cost)
	assert.Equal(t, 10.0, paths[2].Cost)
}

func TestPathFinder_AllPaths_DepthBound(t *testing.T) {
	view, a, d := diamond(t)
	finder := services.NewPathFinder(nil)

	paths, err := finder.AllPaths(view, a.ID(), d.ID(), 1)

	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"A", "D"}, pathLabels(paths[0]))
}

func TestPathFinder_AllPaths_SkipsCycles(t *testing.T) {
	a := newNode(t, "A")
	b := newNode(t, "B")
	c := newNode(t, "C")
	// B -> A back edge must not produce non-simple paths
	view := newView(t, []*entities.Node{a, b, c}, []*entities.Edge{
		newEdge(t, a, b, entities.EdgeTypeLeadsTo, 1, 0),
		newEdge(t, b, a, entities.EdgeTypeLeadsTo, 1, 1),
		newEdge(t, b, c, entities.EdgeTypeLeadsTo, 1, 2),
	})
	finder := services.NewPathFinder(nil)

	paths, err := finder.AllPaths(view, a.ID(), c.ID(), 0)

	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"A", "B", "C"}, pathLabels(paths[0]))
}

func TestPathFinder_AllPaths_ResultCap(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.MaxPathResults = 2
	finder := services.NewPathFinder(cfg)

	view, a, d := diamond(t)
	paths, err := finder.AllPaths(view, a.ID(), d.ID(), 0)

	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestPathFinder_AllPaths_NoRouteIsEmptyNotError(t *testing.T) {
	a := newNode(t, "A")
	b := newNode(t, "B")
	view := newView(t, []*entities.Node{a, b}, nil)
	finder := services.NewPathFinder(nil)

	paths, err := finder.AllPaths(view, a.ID(), b.ID(), 0)

	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestPathFinder_Optimize(t *testing.T) {
	view, a, d := diamond(t)
	finder := services.NewPathFinder(nil)

	tests := []struct {
		criterion services.Criterion
		want      []string
	}{
		{services.CriterionShortest, []string{"A", "B", "D"}},
		{services.CriterionFewestHops, []string{"A", "D"}},
		{services.CriterionHighestWeight, []string{"A", "C", "D"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.criterion), func(t *testing.T) {
			path, err := finder.Optimize(view, a.ID(), d.ID(), tt.criterion)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pathLabels(path))
		})
	}
}

func TestPathFinder_Optimize_UnknownCriterion(t *testing.T) {
	view, a, d := diamond(t)
	finder := services.NewPathFinder(nil)

	_, err := finder.Optimize(view, a.ID(), d.ID(), services.Criterion("scenic"))

	require.Error(t, err)
	appErr := pkgerrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeInvalidCriterion, appErr.Code)
}

func TestParseCriterion(t *testing.T) {
	for _, valid := range []string{"shortest", "fewest-hops", "highest-weight"} {
		criterion, err := services.ParseCriterion(valid)
		require.NoError(t, err)
		assert.Equal(t, services.Criterion(valid), criterion)
	}

	_, err := services.ParseCriterion("scenic")
	assert.Error(t, err)
}

func TestPathFinder_ShortestPath_MatchesExhaustiveEnumeration(t *testing.T) {
	// Arrange
	view, a, d := diamond(t)
	finder := services.NewPathFinder(nil)

	// Act
	shortest, err := finder.ShortestPath(view, a.ID(), d.ID())
	require.NoError(t, err)
	all, err := finder.AllPaths(view, a.ID(), d.ID(), 0)
	require.NoError(t, err)

	// Assert: the search result agrees with the minimum over every route.
	require.NotEmpty(t, all)
	assert.Equal(t, all[0].Cost, shortest.Cost)
	assert.Equal(t, pathLabels(all[0]), pathLabels(shortest))
	for _, candidate := range all {
		assert.GreaterOrEqual(t, candidate.Cost, shortest.Cost)
	}
}

func TestPathFinder_AllPaths_ReloadedLimitsApply(t *testing.T) {
	// Arrange
	view, a, d := diamond(t)
	rt := config.NewRuntime(config.DefaultDomainConfig())
	finder := services.NewPathFinderFromRuntime(rt)

	before, err := finder.AllPaths(view, a.ID(), d.ID(), 0)
	require.NoError(t, err)
	require.Len(t, before, 3)

	// Act: tighten the default depth the way a config reload does.
	rt.Update(func(cfg config.DomainConfig) config.DomainConfig {
		cfg.DefaultMaxDepth = 1
		return cfg
	})
	after, err := finder.AllPaths(view, a.ID(), d.ID(), 0)

	// Assert
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, []string{"A", "D"}, pathLabels(after[0]))
}

func TestPathFinder_AllPaths_ConcurrentWithReloads(t *testing.T) {
	// Searches keep running while the runtime swaps snapshots underneath.
	view, a, d := diamond(t)
	rt := config.NewRuntime(config.DefaultDomainConfig())
	finder := services.NewPathFinderFromRuntime(rt)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			depth := 1 + i%10
			rt.Update(func(cfg config.DomainConfig) config.DomainConfig {
				cfg.MaxPathDepth = depth
				cfg.DefaultMaxDepth = depth
				return cfg
			})
		}
		close(stop)
	}()

	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				paths, err := finder.AllPaths(view, a.ID(), d.ID(), 0)
				assert.NoError(t, err)
				// Depth 1 still admits the direct edge, so a route always exists.
				assert.NotEmpty(t, paths)
			}
		}()
	}

	wg.Wait()
}
