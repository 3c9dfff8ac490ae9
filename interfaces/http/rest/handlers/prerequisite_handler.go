package handlers

import (
	"net/http"

	"kgraph/application/services"
	"kgraph/domain/core/valueobjects"
	domainservices "kgraph/domain/services"
	"kgraph/pkg/common"
	"kgraph/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PrerequisiteHandler handles prerequisite HTTP requests
type PrerequisiteHandler struct {
	prereqService *services.PrerequisiteService
	logger        *zap.Logger
}

// NewPrerequisiteHandler creates a new prerequisite handler
func NewPrerequisiteHandler(prereqService *services.PrerequisiteService, logger *zap.Logger) *PrerequisiteHandler {
	return &PrerequisiteHandler{
		prereqService: prereqService,
		logger:        logger,
	}
}

// CheckPrerequisitesRequest carries the learner's completed node IDs.
type CheckPrerequisitesRequest struct {
	Completed []string `json:"completed" validate:"omitempty,dive,uuid"`
}

// CheckPrerequisitesResponse reports satisfaction and what is missing.
type CheckPrerequisitesResponse struct {
	Satisfied bool           `json:"satisfied"`
	Missing   []NodeResponse `json:"missing"`
}

// CheckPrerequisites handles POST /nodes/{nodeID}/prerequisites/check
func (h *PrerequisiteHandler) CheckPrerequisites(w http.ResponseWriter, r *http.Request) {
	nodeID, err := valueobjects.NewNodeIDFromString(chi.URLParam(r, "nodeID"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	var req CheckPrerequisitesRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	completed, err := h.completedSet(req.Completed)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.prereqService.CheckPrerequisites(r.Context(), nodeID, completed)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, CheckPrerequisitesResponse{
		Satisfied: result.Satisfied,
		Missing:   toNodeResponses(result.Missing),
	})
}

// GetPrerequisiteChain handles GET /nodes/{nodeID}/prerequisites/chain
func (h *PrerequisiteHandler) GetPrerequisiteChain(w http.ResponseWriter, r *http.Request) {
	nodeID, err := valueobjects.NewNodeIDFromString(chi.URLParam(r, "nodeID"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	chain, err := h.prereqService.GetPrerequisiteChain(r.Context(), nodeID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toNodeResponses(chain))
}

// SuggestNext handles POST /prerequisites/suggest
func (h *PrerequisiteHandler) SuggestNext(w http.ResponseWriter, r *http.Request) {
	var req CheckPrerequisitesRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	completed, err := h.completedSet(req.Completed)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	suggestions, err := h.prereqService.SuggestNextNodes(r.Context(), completed)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toNodeResponses(suggestions))
}

func (h *PrerequisiteHandler) completedSet(ids []string) (domainservices.CompletedSet, error) {
	completed := domainservices.NewCompletedSet()
	for _, raw := range ids {
		id, err := valueobjects.NewNodeIDFromString(raw)
		if err != nil {
			return nil, err
		}
		completed[id] = true
	}
	return completed, nil
}
