package handlers

import (
	"net/http"
	"strconv"

	"kgraph/application/services"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	"kgraph/pkg/common"

	"go.uber.org/zap"
)

// PathHandler handles path-finding HTTP requests
type PathHandler struct {
	pathService *services.PathService
	logger      *zap.Logger
}

// NewPathHandler creates a new path handler
func NewPathHandler(pathService *services.PathService, logger *zap.Logger) *PathHandler {
	return &PathHandler{
		pathService: pathService,
		logger:      logger,
	}
}

// FindShortestPath handles GET /paths/shortest?start=...&goal=...&types=...
func (h *PathHandler) FindShortestPath(w http.ResponseWriter, r *http.Request) {
	startID, goalID, ok := h.endpoints(w, r)
	if !ok {
		return
	}

	edgeTypes, ok := h.edgeTypes(w, r)
	if !ok {
		return
	}

	path, err := h.pathService.FindShortestPath(r.Context(), startID, goalID, edgeTypes...)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toPathResponse(path))
}

// FindAllPaths handles GET /paths/all?start=...&goal=...&maxDepth=...
func (h *PathHandler) FindAllPaths(w http.ResponseWriter, r *http.Request) {
	startID, goalID, ok := h.endpoints(w, r)
	if !ok {
		return
	}

	maxDepth := 0
	if raw := r.URL.Query().Get("maxDepth"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "maxDepth must be a non-negative integer")
			return
		}
		maxDepth = parsed
	}

	paths, err := h.pathService.FindAllPaths(r.Context(), startID, goalID, maxDepth)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toPathResponses(paths))
}

// OptimizePath handles GET /paths/optimize?start=...&goal=...&criterion=...
func (h *PathHandler) OptimizePath(w http.ResponseWriter, r *http.Request) {
	startID, goalID, ok := h.endpoints(w, r)
	if !ok {
		return
	}

	criterion := r.URL.Query().Get("criterion")
	if criterion == "" {
		criterion = "shortest"
	}

	path, err := h.pathService.OptimizePath(r.Context(), startID, goalID, criterion)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toPathResponse(path))
}

func (h *PathHandler) endpoints(w http.ResponseWriter, r *http.Request) (valueobjects.NodeID, valueobjects.NodeID, bool) {
	startID, err := valueobjects.NewNodeIDFromString(r.URL.Query().Get("start"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "start: "+err.Error())
		return valueobjects.NodeID{}, valueobjects.NodeID{}, false
	}
	goalID, err := valueobjects.NewNodeIDFromString(r.URL.Query().Get("goal"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "goal: "+err.Error())
		return valueobjects.NodeID{}, valueobjects.NodeID{}, false
	}
	return startID, goalID, true
}

// edgeTypes parses the repeatable "types" query parameter.
func (h *PathHandler) edgeTypes(w http.ResponseWriter, r *http.Request) ([]entities.EdgeType, bool) {
	var edgeTypes []entities.EdgeType
	for _, raw := range r.URL.Query()["types"] {
		edgeType := entities.EdgeType(raw)
		if !entities.ValidEdgeType(edgeType) {
			common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid edge type: "+raw)
			return nil, false
		}
		edgeTypes = append(edgeTypes, edgeType)
	}
	return edgeTypes, true
}
