package controller

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"coworking/internal/api"
	"coworking/internal/auth"
)

var (
	// ErrInvalidTransition is returned when an action is not allowed in the
	// current state of the booking flow.
	ErrInvalidTransition = errors.New("controller: action not allowed in current state")
	// ErrFlowClosed is returned when the booking modal was closed while a
	// call was in flight; the call's result has been discarded.
	ErrFlowClosed = errors.New("controller: booking flow closed")
	// ErrNotConfirmed is returned when the operator declined a confirmation.
	ErrNotConfirmed = errors.New("controller: action not confirmed")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	return "validation failed: " + v.summary()
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

func (v *ValidationError) summary() string {
	fields := make([]string, 0, len(v.FieldErrors))
	for f := range v.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + v.FieldErrors[f]
	}
	return strings.Join(parts, "; ")
}

// UserMessage converts err into text fit for the operator.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	var se *api.ServerError
	var ne *api.NetworkError
	switch {
	case errors.As(err, &ve):
		return "Please correct the form: " + ve.summary()
	case errors.As(err, &se):
		if se.Body != "" {
			return se.Body
		}
		return fmt.Sprintf("The server rejected the request (status %d)", se.StatusCode)
	case errors.As(err, &ne):
		return "Could not reach the server, please try again"
	case errors.Is(err, auth.ErrCredentialExpired):
		return "Your session has expired, please sign in again"
	case errors.Is(err, auth.ErrNoCredential):
		return "You must be signed in to do this"
	case errors.Is(err, ErrFlowClosed):
		return "The booking window was closed"
	}
	return err.Error()
}
