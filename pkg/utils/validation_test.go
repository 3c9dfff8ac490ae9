package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Type   string   `validate:"required,oneof=course skill"`
	Label  string   `validate:"required,min=1,max=10"`
	Weight float64  `validate:"gte=0"`
	IDs    []string `validate:"omitempty,dive,uuid"`
}

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(sampleRequest{
		Type:   "course",
		Label:  "Calculus",
		Weight: 1,
		IDs:    []string{"b2c3d1e0-1b2a-4c3d-8e9f-0a1b2c3d4e5f"},
	})

	assert.NoError(t, err)
}

func TestValidateStruct_Messages(t *testing.T) {
	tests := []struct {
		name string
		req  sampleRequest
		want string
	}{
		{
			name: "missing required",
			req:  sampleRequest{Type: "course"},
			want: "label is required",
		},
		{
			name: "bad enum",
			req:  sampleRequest{Type: "lesson", Label: "X"},
			want: "type must be one of: course skill",
		},
		{
			name: "too long",
			req:  sampleRequest{Type: "course", Label: "this label is far too long"},
			want: "label must be at most 10 characters",
		},
		{
			name: "negative weight",
			req:  sampleRequest{Type: "course", Label: "X", Weight: -1},
			want: "weight must be at least 0",
		},
		{
			name: "bad uuid",
			req:  sampleRequest{Type: "course", Label: "X", IDs: []string{"nope"}},
			want: "must be a valid UUID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
