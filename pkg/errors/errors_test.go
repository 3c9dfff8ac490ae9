package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := NewValidationError("label cannot be empty")
	assert.Equal(t, "VALIDATION: label cannot be empty", err.Error())

	wrapped := NewInternalError("query failed").WithCause(errors.New("connection reset"))
	assert.Contains(t, wrapped.Error(), "query failed")
	assert.Contains(t, wrapped.Error(), "connection reset")
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewStoreError("InsertNode", cause)

	assert.ErrorIs(t, err, cause)
}

func TestGetAppError_ThroughWrapping(t *testing.T) {
	inner := NewNodeNotFoundError("abc")
	wrapped := fmt.Errorf("handling request: %w", inner)

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, CodeNodeNotFound, appErr.Code)

	assert.Nil(t, GetAppError(errors.New("plain")))
	assert.Nil(t, GetAppError(nil))
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", NewNodeNotFoundError("abc"), IsNotFound},
		{"conflict", NewDuplicateNodeError("course", "Calculus I"), IsConflict},
		{"validation", NewValidationError("bad input"), IsValidation},
		{"cycle", NewCycleDetectedError("a", "b"), IsCycle},
		{"store", NewStoreError("Scan", errors.New("throttled")), IsStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, tt.check(errors.New("plain")))
			assert.False(t, tt.check(nil))
		})
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{NewNodeNotFoundError("abc"), http.StatusNotFound},
		{NewEdgeNotFoundError("abc"), http.StatusNotFound},
		{NewPathNotFoundError("a", "b"), http.StatusNotFound},
		{NewDuplicateNodeError("course", "X"), http.StatusConflict},
		{NewCycleDetectedError("a", "b"), http.StatusConflict},
		{NewStoredCycleError("a"), http.StatusConflict},
		{NewInvalidCriterionError("scenic"), http.StatusBadRequest},
		{NewValidationError("bad"), http.StatusBadRequest},
		{NewUnauthorizedError(""), http.StatusUnauthorized},
		{NewStoreError("Query", errors.New("boom")), http.StatusBadGateway},
		{NewInternalError("boom"), http.StatusInternalServerError},
		{NewTimeoutError("Load"), http.StatusRequestTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code+"/"+string(tt.err.Type), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, CodeDuplicateNode, NewDuplicateNodeError("course", "X").Code)
	assert.Equal(t, CodeCycleDetected, NewStoredCycleError("a").Code)
	assert.Equal(t, CodeInvalidCriterion, NewInvalidCriterionError("x").Code)
	assert.Equal(t, CodePathNotFound, NewPathNotFoundError("a", "b").Code)
}

func TestWithHelpers(t *testing.T) {
	err := NewValidationError("bad").
		WithCode("CUSTOM").
		WithDetails(map[string]interface{}{"field": "label"})

	assert.Equal(t, "CUSTOM", err.Code)
	assert.Equal(t, "label", err.Details["field"])
	assert.NotEmpty(t, err.StackTrace)
}
