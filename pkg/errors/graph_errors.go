package errors

import (
	"fmt"
	"net/http"
)

// Error codes surfaced to the API layer. The HTTP mapping follows the
// taxonomy: 404 for not-found, 409 for duplicate/cycle, 400 for invalid
// criteria, 502 for store failures.
const (
	CodeNodeNotFound     = "NODE_NOT_FOUND"
	CodeEdgeNotFound     = "EDGE_NOT_FOUND"
	CodeDuplicateNode    = "DUPLICATE_NODE"
	CodeCycleDetected    = "CYCLE_DETECTED"
	CodePathNotFound     = "PATH_NOT_FOUND"
	CodeInvalidCriterion = "INVALID_CRITERION"
	CodeStoreError       = "STORE_ERROR"
)

// NewNodeNotFoundError creates a typed error for a missing node
func NewNodeNotFoundError(nodeID string) *AppError {
	err := NewNotFoundError("node")
	err.Code = CodeNodeNotFound
	err.Details = map[string]interface{}{"nodeId": nodeID}
	return err
}

// NewEdgeNotFoundError creates a typed error for a missing edge
func NewEdgeNotFoundError(edgeID string) *AppError {
	err := NewNotFoundError("edge")
	err.Code = CodeEdgeNotFound
	err.Details = map[string]interface{}{"edgeId": edgeID}
	return err
}

// NewDuplicateNodeError creates a typed error for an equivalent existing node
func NewDuplicateNodeError(nodeType, label string) *AppError {
	err := NewConflictError(fmt.Sprintf("node of type '%s' with label '%s' already exists", nodeType, label))
	err.Code = CodeDuplicateNode
	return err
}

// NewCycleDetectedError creates a typed error for a prerequisite cycle
func NewCycleDetectedError(sourceID, targetID string) *AppError {
	return &AppError{
		Type:       ErrorTypeCycle,
		Message:    "prerequisite edge would create a cycle",
		Code:       CodeCycleDetected,
		Details:    map[string]interface{}{"sourceId": sourceID, "targetId": targetID},
		HTTPStatus: http.StatusConflict,
		StackTrace: captureStackTrace(),
	}
}

// NewStoredCycleError creates a typed error for a cycle found in stored data.
// Edge creation blocks cycles, so hitting this means the stored graph is corrupt.
func NewStoredCycleError(nodeID string) *AppError {
	return &AppError{
		Type:       ErrorTypeCycle,
		Message:    "stored prerequisite graph contains a cycle",
		Code:       CodeCycleDetected,
		Details:    map[string]interface{}{"nodeId": nodeID},
		HTTPStatus: http.StatusConflict,
		StackTrace: captureStackTrace(),
	}
}

// NewPathNotFoundError creates a typed error for an unreachable goal node
func NewPathNotFoundError(startID, goalID string) *AppError {
	err := NewNotFoundError("path")
	err.Code = CodePathNotFound
	err.Details = map[string]interface{}{"startId": startID, "goalId": goalID}
	return err
}

// NewInvalidCriterionError creates a typed error for an unrecognized
// optimization criterion
func NewInvalidCriterionError(criterion string) *AppError {
	err := NewValidationError(fmt.Sprintf("unrecognized optimization criterion '%s'", criterion))
	err.Code = CodeInvalidCriterion
	return err
}

// NewStoreError wraps a store adapter failure. Store errors are fatal per
// call: they are surfaced to the caller unretried.
func NewStoreError(operation string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeStore,
		Message:    fmt.Sprintf("store operation '%s' failed", operation),
		Code:       CodeStoreError,
		Cause:      cause,
		HTTPStatus: http.StatusBadGateway,
		StackTrace: captureStackTrace(),
	}
}

// IsCycle checks if an error is a cycle detection error
func IsCycle(err error) bool {
	return IsType(err, ErrorTypeCycle)
}

// IsStore checks if an error is a store error
func IsStore(err error) bool {
	return IsType(err, ErrorTypeStore)
}
