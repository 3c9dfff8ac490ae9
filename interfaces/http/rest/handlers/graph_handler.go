package handlers

import (
	"net/http"

	"kgraph/application/services"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	"kgraph/pkg/common"
	"kgraph/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// GraphHandler handles node and edge HTTP requests
type GraphHandler struct {
	graphService *services.GraphService
	logger       *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(graphService *services.GraphService, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		graphService: graphService,
		logger:       logger,
	}
}

// CreateNodeRequest represents the request body for creating a node
type CreateNodeRequest struct {
	Type        string                 `json:"type" validate:"required,oneof=course skill topic concept"`
	Label       string                 `json:"label" validate:"required,min=1,max=200"`
	Requirement string                 `json:"requirement,omitempty" validate:"omitempty,oneof=all any"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// UpdateNodeRequest represents the request body for updating a node
type UpdateNodeRequest struct {
	Label       *string                `json:"label,omitempty" validate:"omitempty,min=1,max=200"`
	Requirement *string                `json:"requirement,omitempty" validate:"omitempty,oneof=all any"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// CreateEdgeRequest represents the request body for creating an edge
type CreateEdgeRequest struct {
	SourceID string   `json:"sourceId" validate:"required,uuid"`
	TargetID string   `json:"targetId" validate:"required,uuid"`
	Type     string   `json:"type" validate:"required,oneof=prerequisite related part_of leads_to"`
	Weight   *float64 `json:"weight,omitempty" validate:"omitempty,gte=0"`
}

// CreateNode handles POST /nodes
func (h *GraphHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	node, err := h.graphService.CreateNode(
		r.Context(),
		entities.NodeType(req.Type),
		req.Label,
		req.Metadata,
		entities.RequirementType(req.Requirement),
	)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, toNodeResponse(node))
}

// GetNode handles GET /nodes/{nodeID}
func (h *GraphHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	id, ok := h.nodeID(w, r, "nodeID")
	if !ok {
		return
	}

	node, err := h.graphService.GetNode(r.Context(), id)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toNodeResponse(node))
}

// UpdateNode handles PUT /nodes/{nodeID}
func (h *GraphHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	id, ok := h.nodeID(w, r, "nodeID")
	if !ok {
		return
	}

	var req UpdateNodeRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	var requirement *entities.RequirementType
	if req.Requirement != nil {
		rt := entities.RequirementType(*req.Requirement)
		requirement = &rt
	}

	node, err := h.graphService.UpdateNode(r.Context(), id, req.Label, req.Metadata, requirement)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toNodeResponse(node))
}

// DeleteNode handles DELETE /nodes/{nodeID}
func (h *GraphHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	id, ok := h.nodeID(w, r, "nodeID")
	if !ok {
		return
	}

	if err := h.graphService.DeleteNode(r.Context(), id); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "node deleted"})
}

// ListNodes handles GET /nodes
func (h *GraphHandler) ListNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.graphService.ListNodes(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toNodeResponses(nodes))
}

// GetNeighbors handles GET /nodes/{nodeID}/neighbors
func (h *GraphHandler) GetNeighbors(w http.ResponseWriter, r *http.Request) {
	id, ok := h.nodeID(w, r, "nodeID")
	if !ok {
		return
	}

	direction := entities.Direction(r.URL.Query().Get("direction"))
	if direction == "" {
		direction = entities.DirectionBoth
	}
	edgeType := entities.EdgeType(r.URL.Query().Get("type"))

	neighbors, err := h.graphService.GetNeighbors(r.Context(), id, edgeType, direction)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toNodeResponses(neighbors))
}

// CreateEdge handles POST /edges
func (h *GraphHandler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var req CreateEdgeRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sourceID, err := valueobjects.NewNodeIDFromString(req.SourceID)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	targetID, err := valueobjects.NewNodeIDFromString(req.TargetID)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	weight := h.graphService.DefaultEdgeWeight()
	if req.Weight != nil {
		weight = *req.Weight
	}

	edge, err := h.graphService.CreateEdge(r.Context(), sourceID, targetID, entities.EdgeType(req.Type), weight)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, toEdgeResponse(edge))
}

// GetEdge handles GET /edges/{edgeID}
func (h *GraphHandler) GetEdge(w http.ResponseWriter, r *http.Request) {
	id, err := valueobjects.NewEdgeIDFromString(chi.URLParam(r, "edgeID"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	edge, err := h.graphService.GetEdge(r.Context(), id)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toEdgeResponse(edge))
}

// DeleteEdge handles DELETE /edges/{edgeID}
func (h *GraphHandler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	id, err := valueobjects.NewEdgeIDFromString(chi.URLParam(r, "edgeID"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.graphService.DeleteEdge(r.Context(), id); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "edge deleted"})
}

// ListEdges handles GET /edges
func (h *GraphHandler) ListEdges(w http.ResponseWriter, r *http.Request) {
	edges, err := h.graphService.ListEdges(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toEdgeResponses(edges))
}

func (h *GraphHandler) nodeID(w http.ResponseWriter, r *http.Request, param string) (valueobjects.NodeID, bool) {
	id, err := valueobjects.NewNodeIDFromString(chi.URLParam(r, param))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return valueobjects.NodeID{}, false
	}
	return id, true
}
