package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"kgraph/application/ports"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// GraphStore implements the graph store port on a single DynamoDB table.
//
// Key layout:
//
//	Node:         PK=NODE#<id>              SK=METADATA
//	Label marker: PK=LABEL#<type>#<label>   SK=UNIQ
//	Edge:         PK=EDGE#<id>              SK=METADATA
//	              GSI1PK=OUT#<sourceID>     GSI1SK=EDGE#<createdAt>#<id>
//	              GSI2PK=IN#<targetID>      GSI2SK=EDGE#<createdAt>#<id>
//
// The label marker item turns the type+label uniqueness rule into a
// conditional write, so concurrent creates cannot both succeed. Edge
// queries by node use the two GSIs; the sort key encodes creation time
// so results come back in insertion order.
type GraphStore struct {
	client        *dynamodb.Client
	tableName     string
	gsi1Name      string
	gsi2Name      string
	caseSensitive bool
	logger        *zap.Logger
}

// NewGraphStore creates a DynamoDB-backed graph store. The case sensitivity
// flag must match the domain's uniqueness policy so the label marker items
// agree with the service-level duplicate check.
func NewGraphStore(client *dynamodb.Client, tableName, gsi1Name, gsi2Name string, caseSensitiveLabels bool, logger *zap.Logger) *GraphStore {
	return &GraphStore{
		client:        client,
		tableName:     tableName,
		gsi1Name:      gsi1Name,
		gsi2Name:      gsi2Name,
		caseSensitive: caseSensitiveLabels,
		logger:        logger,
	}
}

func (s *GraphStore) normalize(label string) string {
	label = strings.TrimSpace(label)
	if s.caseSensitive {
		return label
	}
	return strings.ToLower(label)
}

var _ ports.GraphStore = (*GraphStore)(nil)

type nodeItem struct {
	PK          string                 `dynamodbav:"PK"`
	SK          string                 `dynamodbav:"SK"`
	EntityType  string                 `dynamodbav:"EntityType"`
	NodeID      string                 `dynamodbav:"NodeID"`
	NodeType    string                 `dynamodbav:"NodeType"`
	Label       string                 `dynamodbav:"Label"`
	Requirement string                 `dynamodbav:"Requirement"`
	Metadata    map[string]interface{} `dynamodbav:"Metadata,omitempty"`
	CreatedAt   string                 `dynamodbav:"CreatedAt"`
	UpdatedAt   string                 `dynamodbav:"UpdatedAt"`
}

type labelItem struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	NodeID string `dynamodbav:"NodeID"`
}

type edgeItem struct {
	PK         string  `dynamodbav:"PK"`
	SK         string  `dynamodbav:"SK"`
	GSI1PK     string  `dynamodbav:"GSI1PK"`
	GSI1SK     string  `dynamodbav:"GSI1SK"`
	GSI2PK     string  `dynamodbav:"GSI2PK"`
	GSI2SK     string  `dynamodbav:"GSI2SK"`
	EntityType string  `dynamodbav:"EntityType"`
	EdgeID     string  `dynamodbav:"EdgeID"`
	SourceID   string  `dynamodbav:"SourceID"`
	TargetID   string  `dynamodbav:"TargetID"`
	EdgeType   string  `dynamodbav:"EdgeType"`
	Weight     float64 `dynamodbav:"Weight"`
	CreatedAt  string  `dynamodbav:"CreatedAt"`
}

func nodePK(id valueobjects.NodeID) string { return "NODE#" + id.String() }
func edgePK(id valueobjects.EdgeID) string { return "EDGE#" + id.String() }

func labelPK(nodeType entities.NodeType, labelKey string) string {
	return fmt.Sprintf("LABEL#%s#%s", nodeType, labelKey)
}

// edgeSortKey encodes creation time so GSI queries return edges in
// insertion order. Nanosecond precision breaks most ties; the edge ID
// breaks the rest.
func edgeSortKey(edge *entities.Edge) string {
	return fmt.Sprintf("EDGE#%s#%s", edge.CreatedAt().UTC().Format(time.RFC3339Nano), edge.ID().String())
}

func (s *GraphStore) InsertNode(ctx context.Context, node *entities.Node) error {
	item, err := attributevalue.MarshalMap(toNodeItem(node))
	if err != nil {
		return pkgerrors.NewStoreError("insert node", err)
	}
	marker, err := attributevalue.MarshalMap(labelItem{
		PK:     labelPK(node.Type(), s.normalize(node.Label())),
		SK:     "UNIQ",
		NodeID: node.ID().String(),
	})
	if err != nil {
		return pkgerrors.NewStoreError("insert node", err)
	}

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(s.tableName),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
			{Put: &types.Put{
				TableName:           aws.String(s.tableName),
				Item:                marker,
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
		},
	})
	if err != nil {
		if isConditionalFailure(err) {
			return pkgerrors.NewDuplicateNodeError(string(node.Type()), node.Label())
		}
		s.logger.Error("failed to insert node",
			zap.Error(err),
			zap.String("nodeID", node.ID().String()),
		)
		return pkgerrors.NewStoreError("insert node", err)
	}
	return nil
}

func (s *GraphStore) FetchNode(ctx context.Context, id valueobjects.NodeID) (*entities.Node, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: nodePK(id)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewStoreError("fetch node", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNodeNotFoundError(id.String())
	}

	var item nodeItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewStoreError("fetch node", err)
	}
	return fromNodeItem(item)
}

func (s *GraphStore) UpdateNode(ctx context.Context, node *entities.Node) error {
	// Read the stored copy so a rename can move the label marker.
	old, err := s.FetchNode(ctx, node.ID())
	if err != nil {
		return err
	}
	oldLabelKey := s.normalize(old.Label())
	newLabelKey := s.normalize(node.Label())

	item, err := attributevalue.MarshalMap(toNodeItem(node))
	if err != nil {
		return pkgerrors.NewStoreError("update node", err)
	}

	writes := []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:           aws.String(s.tableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_exists(PK)"),
		}},
	}
	if oldLabelKey != newLabelKey {
		marker, merr := attributevalue.MarshalMap(labelItem{
			PK:     labelPK(node.Type(), newLabelKey),
			SK:     "UNIQ",
			NodeID: node.ID().String(),
		})
		if merr != nil {
			return pkgerrors.NewStoreError("update node", merr)
		}
		writes = append(writes,
			types.TransactWriteItem{Put: &types.Put{
				TableName:           aws.String(s.tableName),
				Item:                marker,
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
			types.TransactWriteItem{Delete: &types.Delete{
				TableName: aws.String(s.tableName),
				Key: map[string]types.AttributeValue{
					"PK": &types.AttributeValueMemberS{Value: labelPK(node.Type(), oldLabelKey)},
					"SK": &types.AttributeValueMemberS{Value: "UNIQ"},
				},
			}},
		)
	}

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes})
	if err != nil {
		if isConditionalFailure(err) {
			if oldLabelKey != newLabelKey {
				return pkgerrors.NewDuplicateNodeError(string(node.Type()), node.Label())
			}
			return pkgerrors.NewNodeNotFoundError(node.ID().String())
		}
		return pkgerrors.NewStoreError("update node", err)
	}
	return nil
}

func (s *GraphStore) DeleteNode(ctx context.Context, id valueobjects.NodeID) error {
	node, err := s.FetchNode(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Delete: &types.Delete{
				TableName: aws.String(s.tableName),
				Key: map[string]types.AttributeValue{
					"PK": &types.AttributeValueMemberS{Value: nodePK(id)},
					"SK": &types.AttributeValueMemberS{Value: "METADATA"},
				},
				ConditionExpression: aws.String("attribute_exists(PK)"),
			}},
			{Delete: &types.Delete{
				TableName: aws.String(s.tableName),
				Key: map[string]types.AttributeValue{
					"PK": &types.AttributeValueMemberS{Value: labelPK(node.Type(), s.normalize(node.Label()))},
					"SK": &types.AttributeValueMemberS{Value: "UNIQ"},
				},
			}},
		},
	})
	if err != nil {
		if isConditionalFailure(err) {
			return pkgerrors.NewNodeNotFoundError(id.String())
		}
		return pkgerrors.NewStoreError("delete node", err)
	}
	return nil
}

func (s *GraphStore) ListNodes(ctx context.Context) ([]*entities.Node, error) {
	items, err := s.scanByEntityType(ctx, "NODE")
	if err != nil {
		return nil, pkgerrors.NewStoreError("list nodes", err)
	}

	nodes := make([]*entities.Node, 0, len(items))
	for _, raw := range items {
		var item nodeItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, pkgerrors.NewStoreError("list nodes", err)
		}
		node, err := fromNodeItem(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if !nodes[i].CreatedAt().Equal(nodes[j].CreatedAt()) {
			return nodes[i].CreatedAt().Before(nodes[j].CreatedAt())
		}
		return nodes[i].ID().String() < nodes[j].ID().String()
	})
	return nodes, nil
}

func (s *GraphStore) CountNodes(ctx context.Context) (int, error) {
	count, err := s.countByEntityType(ctx, "NODE")
	if err != nil {
		return 0, pkgerrors.NewStoreError("count nodes", err)
	}
	return count, nil
}

func (s *GraphStore) CountEdges(ctx context.Context) (int, error) {
	count, err := s.countByEntityType(ctx, "EDGE")
	if err != nil {
		return 0, pkgerrors.NewStoreError("count edges", err)
	}
	return count, nil
}

func (s *GraphStore) FindNodeByTypeAndLabel(ctx context.Context, nodeType entities.NodeType, labelKey string) (*entities.Node, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: labelPK(nodeType, s.normalize(labelKey))},
			"SK": &types.AttributeValueMemberS{Value: "UNIQ"},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewStoreError("find node by label", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNodeNotFoundError(fmt.Sprintf("%s/%s", nodeType, labelKey))
	}

	var marker labelItem
	if err := attributevalue.UnmarshalMap(result.Item, &marker); err != nil {
		return nil, pkgerrors.NewStoreError("find node by label", err)
	}
	id, err := valueobjects.NewNodeIDFromString(marker.NodeID)
	if err != nil {
		return nil, pkgerrors.NewStoreError("find node by label", err)
	}
	return s.FetchNode(ctx, id)
}

func (s *GraphStore) InsertEdge(ctx context.Context, edge *entities.Edge) error {
	item, err := attributevalue.MarshalMap(toEdgeItem(edge))
	if err != nil {
		return pkgerrors.NewStoreError("insert edge", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		if isConditionalFailure(err) {
			return pkgerrors.NewConflictError(fmt.Sprintf("edge %s already exists", edge.ID()))
		}
		s.logger.Error("failed to insert edge",
			zap.Error(err),
			zap.String("edgeID", edge.ID().String()),
		)
		return pkgerrors.NewStoreError("insert edge", err)
	}
	return nil
}

func (s *GraphStore) FetchEdge(ctx context.Context, id valueobjects.EdgeID) (*entities.Edge, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: edgePK(id)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewStoreError("fetch edge", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewEdgeNotFoundError(id.String())
	}

	var item edgeItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewStoreError("fetch edge", err)
	}
	return fromEdgeItem(item)
}

func (s *GraphStore) DeleteEdge(ctx context.Context, id valueobjects.EdgeID) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: edgePK(id)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		if isConditionalFailure(err) {
			return pkgerrors.NewEdgeNotFoundError(id.String())
		}
		return pkgerrors.NewStoreError("delete edge", err)
	}
	return nil
}

func (s *GraphStore) ListEdges(ctx context.Context) ([]*entities.Edge, error) {
	items, err := s.scanByEntityType(ctx, "EDGE")
	if err != nil {
		return nil, pkgerrors.NewStoreError("list edges", err)
	}

	edges := make([]*entities.Edge, 0, len(items))
	for _, raw := range items {
		var item edgeItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, pkgerrors.NewStoreError("list edges", err)
		}
		edge, err := fromEdgeItem(item)
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	sortEdges(edges)
	return edges, nil
}

func (s *GraphStore) FetchEdgesByNode(ctx context.Context, id valueobjects.NodeID, direction entities.Direction) ([]*entities.Edge, error) {
	var edges []*entities.Edge

	if direction == entities.DirectionOutgoing || direction == entities.DirectionBoth {
		out, err := s.queryEdges(ctx, s.gsi1Name, "GSI1PK", "OUT#"+id.String())
		if err != nil {
			return nil, err
		}
		edges = append(edges, out...)
	}
	if direction == entities.DirectionIncoming || direction == entities.DirectionBoth {
		in, err := s.queryEdges(ctx, s.gsi2Name, "GSI2PK", "IN#"+id.String())
		if err != nil {
			return nil, err
		}
		edges = append(edges, in...)
	}

	// A self-loop-free graph cannot return the same edge twice here, but
	// both-direction queries still need a single creation-ordered list.
	if direction == entities.DirectionBoth {
		sortEdges(edges)
	}
	return edges, nil
}

func (s *GraphStore) DeleteEdgesByNode(ctx context.Context, id valueobjects.NodeID) (int, error) {
	edges, err := s.FetchEdgesByNode(ctx, id, entities.DirectionBoth)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, edge := range edges {
		if err := s.DeleteEdge(ctx, edge.ID()); err != nil {
			if pkgerrors.IsNotFound(err) {
				continue
			}
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func (s *GraphStore) queryEdges(ctx context.Context, indexName, keyAttr, keyValue string) ([]*entities.Edge, error) {
	keyEx := expression.Key(keyAttr).Equal(expression.Value(keyValue))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, pkgerrors.NewStoreError("query edges", err)
	}

	var edges []*entities.Edge
	var lastKey map[string]types.AttributeValue
	for {
		result, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(s.tableName),
			IndexName:                 aws.String(indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, pkgerrors.NewStoreError("query edges", err)
		}
		for _, raw := range result.Items {
			var item edgeItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, pkgerrors.NewStoreError("query edges", err)
			}
			edge, err := fromEdgeItem(item)
			if err != nil {
				return nil, err
			}
			edges = append(edges, edge)
		}
		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}
	return edges, nil
}

func (s *GraphStore) scanByEntityType(ctx context.Context, entityType string) ([]map[string]types.AttributeValue, error) {
	filter := expression.Name("EntityType").Equal(expression.Value(entityType))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, err
	}

	var items []map[string]types.AttributeValue
	var lastKey map[string]types.AttributeValue
	for {
		result, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(s.tableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}
	return items, nil
}

// countByEntityType runs a COUNT scan so capacity checks never page full
// items across the wire.
func (s *GraphStore) countByEntityType(ctx context.Context, entityType string) (int, error) {
	filter := expression.Name("EntityType").Equal(expression.Value(entityType))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return 0, err
	}

	count := 0
	var lastKey map[string]types.AttributeValue
	for {
		result, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(s.tableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			Select:                    types.SelectCount,
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return 0, err
		}
		count += int(result.Count)
		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}
	return count, nil
}

func toNodeItem(node *entities.Node) nodeItem {
	return nodeItem{
		PK:          nodePK(node.ID()),
		SK:          "METADATA",
		EntityType:  "NODE",
		NodeID:      node.ID().String(),
		NodeType:    string(node.Type()),
		Label:       node.Label(),
		Requirement: string(node.Requirement()),
		Metadata:    node.Metadata(),
		CreatedAt:   node.CreatedAt().UTC().Format(time.RFC3339Nano),
		UpdatedAt:   node.UpdatedAt().UTC().Format(time.RFC3339Nano),
	}
}

func fromNodeItem(item nodeItem) (*entities.Node, error) {
	id, err := valueobjects.NewNodeIDFromString(item.NodeID)
	if err != nil {
		return nil, pkgerrors.NewStoreError("decode node", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, pkgerrors.NewStoreError("decode node", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	if err != nil {
		return nil, pkgerrors.NewStoreError("decode node", err)
	}
	node, err := entities.ReconstructNode(
		id,
		entities.NodeType(item.NodeType),
		item.Label,
		item.Metadata,
		entities.RequirementType(item.Requirement),
		createdAt,
		updatedAt,
	)
	if err != nil {
		return nil, pkgerrors.NewStoreError("decode node", err)
	}
	return node, nil
}

func toEdgeItem(edge *entities.Edge) edgeItem {
	sk := edgeSortKey(edge)
	return edgeItem{
		PK:         edgePK(edge.ID()),
		SK:         "METADATA",
		GSI1PK:     "OUT#" + edge.SourceID().String(),
		GSI1SK:     sk,
		GSI2PK:     "IN#" + edge.TargetID().String(),
		GSI2SK:     sk,
		EntityType: "EDGE",
		EdgeID:     edge.ID().String(),
		SourceID:   edge.SourceID().String(),
		TargetID:   edge.TargetID().String(),
		EdgeType:   string(edge.Type()),
		Weight:     edge.Weight(),
		CreatedAt:  edge.CreatedAt().UTC().Format(time.RFC3339Nano),
	}
}

func fromEdgeItem(item edgeItem) (*entities.Edge, error) {
	id, err := valueobjects.NewEdgeIDFromString(item.EdgeID)
	if err != nil {
		return nil, pkgerrors.NewStoreError("decode edge", err)
	}
	sourceID, err := valueobjects.NewNodeIDFromString(item.SourceID)
	if err != nil {
		return nil, pkgerrors.NewStoreError("decode edge", err)
	}
	targetID, err := valueobjects.NewNodeIDFromString(item.TargetID)
	if err != nil {
		return nil, pkgerrors.NewStoreError("decode edge", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, pkgerrors.NewStoreError("decode edge", err)
	}
	edge, err := entities.ReconstructEdge(
		id,
		sourceID,
		targetID,
		entities.EdgeType(item.EdgeType),
		item.Weight,
		createdAt,
	)
	if err != nil {
		return nil, pkgerrors.NewStoreError("decode edge", err)
	}
	return edge, nil
}

func sortEdges(edges []*entities.Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if !edges[i].CreatedAt().Equal(edges[j].CreatedAt()) {
			return edges[i].CreatedAt().Before(edges[j].CreatedAt())
		}
		return edges[i].ID().String() < edges[j].ID().String()
	})
}

// isConditionalFailure reports whether err is a failed conditional write,
// either directly or as a cancellation reason inside a transaction.
func isConditionalFailure(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for _, reason := range tce.CancellationReasons {
			if reason.Code != nil && strings.Contains(*reason.Code, "ConditionalCheckFailed") {
				return true
			}
		}
	}
	return false
}
