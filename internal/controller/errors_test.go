package controller

import (
	"fmt"
	"testing"
	"time"

	"coworking/internal/api"
	"coworking/internal/auth"

	"github.com/stretchr/testify/assert"
)

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)

func TestUserMessage(t *testing.T) {
	ve := &ValidationError{}
	ve.add("roomType", "is required")
	ve.add("pricePerHour", "must be a number")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", ve, "Please correct the form: pricePerHour: must be a number; roomType: is required"},
		{"server body", &api.ServerError{StatusCode: 400, Body: "Bad room"}, "Bad room"},
		{"server no body", &api.ServerError{StatusCode: 502}, "The server rejected the request (status 502)"},
		{"wrapped network", fmt.Errorf("x: %w", &api.NetworkError{Op: "list", Err: errBoom}), "Could not reach the server, please try again"},
		{"no credential", fmt.Errorf("create_room: %w", auth.ErrNoCredential), "You must be signed in to do this"},
		{"expired", auth.ErrCredentialExpired, "Your session has expired, please sign in again"},
		{"closed", ErrFlowClosed, "The booking window was closed"},
		{"other", errBoom, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	var nilErr *ValidationError
	assert.False(t, nilErr.HasErrors())
	assert.Equal(t, "validation failed", (&ValidationError{}).Error())

	ve := &ValidationError{}
	ve.add("date", "is required")
	assert.True(t, ve.HasErrors())
	assert.Equal(t, "validation failed: date: is required", ve.Error())
}
