package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eurachacha/achacha-api/internal/domain/sharing"
	"github.com/eurachacha/achacha-api/internal/service/auth"
	"github.com/eurachacha/achacha-api/internal/service/sharebox"
	"github.com/eurachacha/achacha-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "authentication error",
			err:            auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrapped authentication error",
			err:            fmt.Errorf("failed to authenticate: %w", auth.ErrExpiredToken),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "ownership error",
			err:            sharing.ErrNotShareBoxOwner,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "participation error",
			err:            sharebox.ErrNotParticipant,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "closed box error",
			err:            sharebox.ErrParticipationClosed,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "not found error",
			err:            store.ErrShareBoxNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "wrapped service error",
			err:            sharebox.NewServiceError("share_gifticon", "could not load gifticon", store.ErrGifticonNotFound),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "already shared conflict",
			err:            sharing.ErrGifticonAlreadyShared,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "not shared conflict",
			err:            sharing.ErrGifticonNotShared,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "duplicate email conflict",
			err:            store.ErrEmailExists,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid name",
			err:            sharing.ErrInvalidShareBoxName,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown error",
			err:            errors.New("some internal failure"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{
			name:        "nil error",
			err:         nil,
			expectedMsg: "An unexpected error occurred",
		},
		{
			name:        "not a participant",
			err:         sharebox.ErrNotParticipant,
			expectedMsg: "You are not a participant of this share box",
		},
		{
			name:        "wrapped not found",
			err:         fmt.Errorf("load: %w", store.ErrGifticonNotFound),
			expectedMsg: "Gifticon not found",
		},
		{
			name:        "invalid credentials",
			err:         auth.ErrInvalidCredentials,
			expectedMsg: "Invalid credentials",
		},
		{
			name:        "unknown error never leaks its message",
			err:         errors.New("pq: duplicate key value violates unique constraint"),
			expectedMsg: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedMsg, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag")
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
