package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_HTTPStatus_MapsKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", NotFound("project not found"), http.StatusNotFound},
		{"access denied", AccessDenied("no access"), http.StatusForbidden},
		{"validation", Validation("name is required"), http.StatusBadRequest},
		{"invariant", InvariantViolation("last admin"), http.StatusConflict},
		{"wrapped", fmt.Errorf("failed to remove member: %w", InvariantViolation("x")), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func Test_Is_WorksThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", AccessDenied("You don't have access to this workspace"))

	assert.True(t, Is(err, KindAccessDenied))
	assert.False(t, Is(err, KindNotFound))
	assert.Equal(t, "outer: You don't have access to this workspace", err.Error())
}
