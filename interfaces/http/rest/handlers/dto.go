package handlers

import (
	"time"

	"kgraph/domain/core/entities"
	domainservices "kgraph/domain/services"
)

// NodeResponse is the wire form of a node.
type NodeResponse struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	Label       string                 `json:"label"`
	Requirement string                 `json:"requirement"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
}

// EdgeResponse is the wire form of an edge.
type EdgeResponse struct {
	ID        string  `json:"id"`
	SourceID  string  `json:"sourceId"`
	TargetID  string  `json:"targetId"`
	Type      string  `json:"type"`
	Weight    float64 `json:"weight"`
	CreatedAt string  `json:"createdAt"`
}

// PathResponse is the wire form of a path through the graph.
type PathResponse struct {
	Nodes []NodeResponse `json:"nodes"`
	Edges []EdgeResponse `json:"edges"`
	Cost  float64        `json:"cost"`
	Hops  int            `json:"hops"`
}

func toNodeResponse(node *entities.Node) NodeResponse {
	return NodeResponse{
		ID:          node.ID().String(),
		Type:        string(node.Type()),
		Label:       node.Label(),
		Requirement: string(node.Requirement()),
		Metadata:    node.Metadata(),
		CreatedAt:   node.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:   node.UpdatedAt().UTC().Format(time.RFC3339),
	}
}

func toNodeResponses(nodes []*entities.Node) []NodeResponse {
	out := make([]NodeResponse, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, toNodeResponse(node))
	}
	return out
}

func toEdgeResponse(edge *entities.Edge) EdgeResponse {
	return EdgeResponse{
		ID:        edge.ID().String(),
		SourceID:  edge.SourceID().String(),
		TargetID:  edge.TargetID().String(),
		Type:      string(edge.Type()),
		Weight:    edge.Weight(),
		CreatedAt: edge.CreatedAt().UTC().Format(time.RFC3339),
	}
}

func toEdgeResponses(edges []*entities.Edge) []EdgeResponse {
	out := make([]EdgeResponse, 0, len(edges))
	for _, edge := range edges {
		out = append(out, toEdgeResponse(edge))
	}
	return out
}

func toPathResponse(path *domainservices.Path) PathResponse {
	return PathResponse{
		Nodes: toNodeResponses(path.Nodes),
		Edges: toEdgeResponses(path.Edges),
		Cost:  path.Cost,
		Hops:  path.Hops(),
	}
}

func toPathResponses(paths []*domainservices.Path) []PathResponse {
	out := make([]PathResponse, 0, len(paths))
	for _, path := range paths {
		out = append(out, toPathResponse(path))
	}
	return out
}
