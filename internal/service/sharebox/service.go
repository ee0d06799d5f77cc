// Package sharebox provides the application service for share box
// membership and gifticon sharing. It orchestrates the domain rule
// services and repositories, running multi-step mutations inside
// database transactions.
package sharebox

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/eurachacha/achacha-api/internal/domain"
)

// ShareBoxService provides operations for managing share boxes, their
// participants, and the gifticons shared into them.
type ShareBoxService interface {
	// CreateShareBox creates a new share box owned by the given user and
	// registers the owner as its first participant.
	//
	// Returns:
	//   - (*domain.ShareBox, nil): The created box, including its invite code
	//   - (nil, sharing.ErrInvalidShareBoxName): If the name is blank or too long
	//   - (nil, error): Any other error, typically from the database
	CreateShareBox(ctx context.Context, userID uuid.UUID, name string) (*domain.ShareBox, error)

	// JoinShareBox adds the user to the share box identified by the invite code.
	//
	// Returns:
	//   - (*domain.ShareBox, nil): The joined box
	//   - (nil, store.ErrShareBoxNotFound): If no box has the invite code
	//   - (nil, ErrParticipationClosed): If the box is not accepting participants
	//   - (nil, ErrAlreadyParticipant): If the user already participates
	JoinShareBox(ctx context.Context, userID uuid.UUID, inviteCode string) (*domain.ShareBox, error)

	// GetShareBoxSettings returns the box's settings, including the invite
	// code. Only participants may read settings.
	//
	// Returns:
	//   - (nil, store.ErrShareBoxNotFound): If the box does not exist
	//   - (nil, ErrNotParticipant): If the user does not participate in the box
	GetShareBoxSettings(ctx context.Context, userID, shareBoxID uuid.UUID) (*domain.ShareBox, error)

	// UpdateShareBoxName renames the share box. Owner only.
	// The ownership check runs before the name is validated, so a non-owner
	// submitting a bad name still gets the ownership error.
	//
	// Returns:
	//   - store.ErrShareBoxNotFound: If the box does not exist
	//   - sharing.ErrNotShareBoxOwner: If the user is not the owner
	//   - sharing.ErrInvalidShareBoxName: If the new name is blank or too long
	UpdateShareBoxName(ctx context.Context, userID, shareBoxID uuid.UUID, name string) error

	// UpdateParticipationSetting opens or closes the box for new participants.
	// Owner only. Existing participants are unaffected.
	//
	// Returns:
	//   - store.ErrShareBoxNotFound: If the box does not exist
	//   - sharing.ErrNotShareBoxOwner: If the user is not the owner
	UpdateParticipationSetting(ctx context.Context, userID, shareBoxID uuid.UUID, allow bool) error

	// GetParticipants returns the users participating in the share box,
	// in join order so the owner comes first. Only participants may list.
	//
	// Returns:
	//   - (nil, store.ErrShareBoxNotFound): If the box does not exist
	//   - (nil, ErrNotParticipant): If the user does not participate in the box
	GetParticipants(ctx context.Context, userID, shareBoxID uuid.UUID) ([]*domain.User, error)

	// GetShareBoxGifticons returns the gifticons currently shared in the box,
	// soonest expiry first. Only participants may list.
	//
	// Returns:
	//   - (nil, store.ErrShareBoxNotFound): If the box does not exist
	//   - (nil, ErrNotParticipant): If the user does not participate in the box
	GetShareBoxGifticons(ctx context.Context, userID, shareBoxID uuid.UUID) ([]*domain.Gifticon, error)

	// ShareGifticon shares one of the user's gifticons into the box.
	// The user must participate in the box, own the gifticon, and the
	// gifticon must not already be shared anywhere.
	//
	// Returns:
	//   - store.ErrShareBoxNotFound: If the box does not exist
	//   - ErrNotParticipant: If the user does not participate in the box
	//   - store.ErrGifticonNotFound: If the gifticon does not exist
	//   - ErrGifticonNotOwned: If the gifticon belongs to another user
	//   - sharing.ErrGifticonAlreadyShared: If the gifticon is already shared
	ShareGifticon(ctx context.Context, userID, shareBoxID, gifticonID uuid.UUID) error

	// UnshareGifticon removes one of the user's gifticons from the box.
	// The gifticon must currently be shared in this box; a gifticon shared
	// elsewhere or not at all is rejected.
	//
	// Returns:
	//   - store.ErrShareBoxNotFound: If the box does not exist
	//   - ErrNotParticipant: If the user does not participate in the box
	//   - store.ErrGifticonNotFound: If the gifticon does not exist
	//   - ErrGifticonNotOwned: If the gifticon belongs to another user
	//   - sharing.ErrGifticonNotShared: If it is not shared in this box
	UnshareGifticon(ctx context.Context, userID, shareBoxID, gifticonID uuid.UUID) error

	// LeaveShareBox removes the user from the share box.
	//
	// When the owner leaves, the box is dissolved: every shared gifticon in
	// the box is unshared, all participations are removed, and the box is
	// deleted. When a regular participant leaves, only their own unused
	// gifticons are unshared (used ones stay behind as history) and their
	// participation is removed. Either way the whole operation runs in a
	// single transaction.
	//
	// Returns:
	//   - store.ErrShareBoxNotFound: If the box does not exist
	//   - ErrNotParticipant: If the user does not participate in the box
	LeaveShareBox(ctx context.Context, userID, shareBoxID uuid.UUID) error
}

// Common error types for ShareBoxService
var (
	// ErrNotParticipant indicates the user does not participate in the share box.
	ErrNotParticipant = errors.New("unauthorized access: user does not participate in share box")

	// ErrGifticonNotOwned indicates the gifticon belongs to another user.
	ErrGifticonNotOwned = errors.New("unauthorized access: gifticon not owned by user")

	// ErrParticipationClosed indicates the share box is not accepting new participants.
	ErrParticipationClosed = errors.New("share box is closed for participation")

	// ErrAlreadyParticipant indicates the user already participates in the share box.
	ErrAlreadyParticipant = errors.New("user already participates in share box")
)

// ServiceError wraps errors from the share box service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "share_gifticon", "leave_share_box")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError for the given operation.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
