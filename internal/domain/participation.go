package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Participation-specific validation errors
var (
	// ErrParticipationIDEmpty is returned when a participation ID is empty or nil.
	ErrParticipationIDEmpty = errors.New("participation ID cannot be empty")

	// ErrParticipationUserIDEmpty is returned when a participation's user ID is empty or nil.
	ErrParticipationUserIDEmpty = errors.New("participation user ID cannot be empty")

	// ErrParticipationShareBoxIDEmpty is returned when a participation's share box ID is empty or nil.
	ErrParticipationShareBoxIDEmpty = errors.New("participation share box ID cannot be empty")
)

// Participation is the join record linking one user to one share box.
// At most one active participation exists per (user, share box) pair; the
// storage layer enforces this with a unique constraint.
type Participation struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ShareBoxID uuid.UUID `json:"sharebox_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewParticipation creates a new Participation linking the user to the box.
// Returns an error if validation fails.
func NewParticipation(userID, shareBoxID uuid.UUID) (*Participation, error) {
	p := &Participation{
		ID:         uuid.New(),
		UserID:     userID,
		ShareBoxID: shareBoxID,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the Participation has valid data.
// Returns an error if any field fails validation.
func (p *Participation) Validate() error {
	if p.ID == uuid.Nil {
		return ErrParticipationIDEmpty
	}

	if p.UserID == uuid.Nil {
		return ErrParticipationUserIDEmpty
	}

	if p.ShareBoxID == uuid.Nil {
		return ErrParticipationShareBoxIDEmpty
	}

	return nil
}
