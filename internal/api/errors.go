package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/eurachacha/achacha-api/internal/api/shared"
	"github.com/eurachacha/achacha-api/internal/domain"
	"github.com/eurachacha/achacha-api/internal/domain/sharing"
	"github.com/eurachacha/achacha-api/internal/service/auth"
	"github.com/eurachacha/achacha-api/internal/service/sharebox"
	"github.com/eurachacha/achacha-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, sharebox.ErrNotParticipant),
		errors.Is(err, sharebox.ErrGifticonNotOwned),
		errors.Is(err, sharebox.ErrParticipationClosed),
		errors.Is(err, sharing.ErrNotShareBoxOwner):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrShareBoxNotFound),
		errors.Is(err, store.ErrGifticonNotFound),
		errors.Is(err, store.ErrParticipationNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, sharebox.ErrAlreadyParticipant),
		errors.Is(err, sharing.ErrGifticonAlreadyShared),
		errors.Is(err, sharing.ErrGifticonNotShared):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, sharing.ErrInvalidShareBoxName),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	// Authorization errors
	case errors.Is(err, sharing.ErrNotShareBoxOwner):
		return "Only the share box owner can do this"

	case errors.Is(err, sharebox.ErrNotParticipant):
		return "You are not a participant of this share box"

	case errors.Is(err, sharebox.ErrGifticonNotOwned):
		return "You do not own this gifticon"

	case errors.Is(err, sharebox.ErrParticipationClosed):
		return "This share box is closed for participation"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrShareBoxNotFound):
		return "Share box not found"

	case errors.Is(err, store.ErrGifticonNotFound):
		return "Gifticon not found"

	case errors.Is(err, store.ErrParticipationNotFound):
		return "Participation not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, sharebox.ErrAlreadyParticipant):
		return "You already participate in this share box"

	case errors.Is(err, sharing.ErrGifticonAlreadyShared):
		return "Gifticon is already shared"

	case errors.Is(err, sharing.ErrGifticonNotShared):
		return "Gifticon is not shared in this share box"

	// Bad request errors
	case errors.Is(err, sharing.ErrInvalidShareBoxName):
		return "Invalid share box name"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps an error to its status code and safe message and writes
// the response, logging the underlying error with redaction. The fallback
// message is used when no specific safe message applies.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if message == "An unexpected error occurred" {
		// Validation errors carry their own field-level message.
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			status = http.StatusBadRequest
			message = validationErr.Field + " " + validationErr.Message
		} else if fallbackMessage != "" {
			message = fallbackMessage
		}
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format:
	// "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
