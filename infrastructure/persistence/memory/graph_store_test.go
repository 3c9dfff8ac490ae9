package memory_test

import (
	"context"
	"testing"

	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	"kgraph/infrastructure/persistence/memory"
	pkgerrors "kgraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeNode(t *testing.T, store *memory.GraphStore, nodeType entities.NodeType, label string) *entities.Node {
	t.Helper()
	node, err := entities.NewNode(nodeType, label, nil)
	require.NoError(t, err)
	require.NoError(t, store.InsertNode(context.Background(), node))
	return node
}

func storeEdge(t *testing.T, store *memory.GraphStore, source, target *entities.Node, edgeType entities.EdgeType) *entities.Edge {
	t.Helper()
	edge, err := entities.NewEdge(source.ID(), target.ID(), edgeType, 1)
	require.NoError(t, err)
	require.NoError(t, store.InsertEdge(context.Background(), edge))
	return edge
}

func TestGraphStore_InsertAndFetchNode(t *testing.T) {
	store := memory.NewGraphStore(false)
	node := storeNode(t, store, entities.NodeTypeCourse, "Calculus I")

	fetched, err := store.FetchNode(context.Background(), node.ID())

	require.NoError(t, err)
	assert.True(t, fetched.ID().Equals(node.ID()))

	_, err = store.FetchNode(context.Background(), valueobjects.NewNodeID())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGraphStore_InsertNode_UniquenessIndex(t *testing.T) {
	store := memory.NewGraphStore(false)
	storeNode(t, store, entities.NodeTypeCourse, "Calculus I")

	dup, err := entities.NewNode(entities.NodeTypeCourse, "CALCULUS I", nil)
	require.NoError(t, err)
	err = store.InsertNode(context.Background(), dup)

	require.Error(t, err)
	appErr := pkgerrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDuplicateNode, appErr.Code)

	// same label under a different type is a different key
	other, err := entities.NewNode(entities.NodeTypeSkill, "Calculus I", nil)
	require.NoError(t, err)
	assert.NoError(t, store.InsertNode(context.Background(), other))
}

func TestGraphStore_InsertNode_CaseSensitiveIndex(t *testing.T) {
	store := memory.NewGraphStore(true)
	storeNode(t, store, entities.NodeTypeCourse, "Calculus I")

	distinct, err := entities.NewNode(entities.NodeTypeCourse, "calculus i", nil)
	require.NoError(t, err)

	assert.NoError(t, store.InsertNode(context.Background(), distinct))
}

func TestGraphStore_FindNodeByTypeAndLabel(t *testing.T) {
	store := memory.NewGraphStore(false)
	node := storeNode(t, store, entities.NodeTypeCourse, "Calculus I")

	found, err := store.FindNodeByTypeAndLabel(context.Background(), entities.NodeTypeCourse, " calculus i ")
	require.NoError(t, err)
	assert.True(t, found.ID().Equals(node.ID()))

	_, err = store.FindNodeByTypeAndLabel(context.Background(), entities.NodeTypeSkill, "Calculus I")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGraphStore_UpdateNode_ReindexesLabel(t *testing.T) {
	store := memory.NewGraphStore(false)
	node := storeNode(t, store, entities.NodeTypeCourse, "Calculus I")

	require.NoError(t, node.Rename("Calculus II"))
	require.NoError(t, store.UpdateNode(context.Background(), node))

	// old key is free again, new key resolves
	_, err := store.FindNodeByTypeAndLabel(context.Background(), entities.NodeTypeCourse, "Calculus I")
	assert.True(t, pkgerrors.IsNotFound(err))

	found, err := store.FindNodeByTypeAndLabel(context.Background(), entities.NodeTypeCourse, "Calculus II")
	require.NoError(t, err)
	assert.True(t, found.ID().Equals(node.ID()))
}

func TestGraphStore_UpdateNode_RenameOntoTakenKeyRejected(t *testing.T) {
	store := memory.NewGraphStore(false)
	storeNode(t, store, entities.NodeTypeCourse, "Calculus I")
	node := storeNode(t, store, entities.NodeTypeCourse, "Calculus II")

	require.NoError(t, node.Rename("calculus i"))
	err := store.UpdateNode(context.Background(), node)

	require.Error(t, err)
	appErr := pkgerrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDuplicateNode, appErr.Code)
}

func TestGraphStore_DeleteNode_FreesLabelKey(t *testing.T) {
	store := memory.NewGraphStore(false)
	node := storeNode(t, store, entities.NodeTypeCourse, "Calculus I")

	require.NoError(t, store.DeleteNode(context.Background(), node.ID()))

	_, err := store.FetchNode(context.Background(), node.ID())
	assert.True(t, pkgerrors.IsNotFound(err))

	// the uniqueness key is released by the delete
	again, err := entities.NewNode(entities.NodeTypeCourse, "Calculus I", nil)
	require.NoError(t, err)
	assert.NoError(t, store.InsertNode(context.Background(), again))
}

func TestGraphStore_ListNodes_InsertionOrder(t *testing.T) {
	store := memory.NewGraphStore(false)
	a := storeNode(t, store, entities.NodeTypeCourse, "A")
	b := storeNode(t, store, entities.NodeTypeCourse, "B")
	c := storeNode(t, store, entities.NodeTypeCourse, "C")

	require.NoError(t, store.DeleteNode(context.Background(), b.ID()))

	nodes, err := store.ListNodes(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.True(t, nodes[0].ID().Equals(a.ID()))
	assert.True(t, nodes[1].ID().Equals(c.ID()))
}

func TestGraphStore_InsertEdge_RequiresEndpoints(t *testing.T) {
	store := memory.NewGraphStore(false)
	a := storeNode(t, store, entities.NodeTypeCourse, "A")

	edge, err := entities.NewEdge(a.ID(), valueobjects.NewNodeID(), entities.EdgeTypeRelated, 1)
	require.NoError(t, err)

	err = store.InsertEdge(context.Background(), edge)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGraphStore_FetchEdgesByNode(t *testing.T) {
	store := memory.NewGraphStore(false)
	a := storeNode(t, store, entities.NodeTypeCourse, "A")
	b := storeNode(t, store, entities.NodeTypeCourse, "B")
	c := storeNode(t, store, entities.NodeTypeCourse, "C")

	out := storeEdge(t, store, a, b, entities.EdgeTypePrerequisite)
	in := storeEdge(t, store, c, a, entities.EdgeTypeRelated)
	storeEdge(t, store, b, c, entities.EdgeTypeLeadsTo)

	outgoing, err := store.FetchEdgesByNode(context.Background(), a.ID(), entities.DirectionOutgoing)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.True(t, outgoing[0].ID().Equals(out.ID()))

	incoming, err := store.FetchEdgesByNode(context.Background(), a.ID(), entities.DirectionIncoming)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.True(t, incoming[0].ID().Equals(in.ID()))

	both, err := store.FetchEdgesByNode(context.Background(), a.ID(), entities.DirectionBoth)
	require.NoError(t, err)
	require.Len(t, both, 2)
	assert.True(t, both[0].ID().Equals(out.ID()), "creation order")
	assert.True(t, both[1].ID().Equals(in.ID()))
}

func TestGraphStore_DeleteEdgesByNode(t *testing.T) {
	store := memory.NewGraphStore(false)
	a := storeNode(t, store, entities.NodeTypeCourse, "A")
	b := storeNode(t, store, entities.NodeTypeCourse, "B")
	c := storeNode(t, store, entities.NodeTypeCourse, "C")

	storeEdge(t, store, a, b, entities.EdgeTypePrerequisite)
	storeEdge(t, store, c, a, entities.EdgeTypeRelated)
	survivor := storeEdge(t, store, b, c, entities.EdgeTypeLeadsTo)

	removed, err := store.DeleteEdgesByNode(context.Background(), a.ID())

	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	edges, err := store.ListEdges(context.Background())
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.True(t, edges[0].ID().Equals(survivor.ID()))
}

func TestGraphStore_DeleteEdge(t *testing.T) {
	store := memory.NewGraphStore(false)
	a := storeNode(t, store, entities.NodeTypeCourse, "A")
	b := storeNode(t, store, entities.NodeTypeCourse, "B")
	edge := storeEdge(t, store, a, b, entities.EdgeTypeRelated)

	require.NoError(t, store.DeleteEdge(context.Background(), edge.ID()))

	_, err := store.FetchEdge(context.Background(), edge.ID())
	assert.True(t, pkgerrors.IsNotFound(err))

	err = store.DeleteEdge(context.Background(), edge.ID())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGraphStore_Counts(t *testing.T) {
	store := memory.NewGraphStore(false)

	count, err := store.CountNodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	a := storeNode(t, store, entities.NodeTypeCourse, "A")
	b := storeNode(t, store, entities.NodeTypeCourse, "B")
	storeEdge(t, store, a, b, entities.EdgeTypeRelated)

	count, err = store.CountNodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = store.CountEdges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, store.DeleteNode(context.Background(), b.ID()))
	count, err = store.CountNodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
