package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// GifticonType distinguishes fixed-amount certificates (coffee-shop balance
// cards) from fixed-item certificates (a single product voucher).
type GifticonType string

const (
	// GifticonTypeAmount is a certificate carrying a monetary balance.
	GifticonTypeAmount GifticonType = "amount"

	// GifticonTypeProduct is a certificate for a specific product.
	GifticonTypeProduct GifticonType = "product"
)

// Gifticon-specific validation errors
var (
	// ErrGifticonIDEmpty is returned when a gifticon ID is empty or nil.
	ErrGifticonIDEmpty = errors.New("gifticon ID cannot be empty")

	// ErrGifticonUserIDEmpty is returned when a gifticon's owner ID is empty or nil.
	ErrGifticonUserIDEmpty = errors.New("gifticon user ID cannot be empty")

	// ErrGifticonNameEmpty is returned when a gifticon's name is empty.
	ErrGifticonNameEmpty = errors.New("gifticon name cannot be empty")

	// ErrGifticonAmountInvalid is returned when an amount-typed gifticon has a
	// non-positive original amount or a remaining amount outside [0, original].
	ErrGifticonAmountInvalid = errors.New("gifticon amount is invalid")
)

// Gifticon represents a gift certificate owned by exactly one user.
// Ownership never transfers; sharing into a box only grants co-participants
// access while the nullable ShareBoxID reference is set.
type Gifticon struct {
	ID              uuid.UUID    `json:"id"`
	UserID          uuid.UUID    `json:"user_id"`
	Name            string       `json:"name"`
	Type            GifticonType `json:"type"`
	OriginalAmount  int          `json:"original_amount"`
	RemainingAmount int          `json:"remaining_amount"`
	ShareBoxID      *uuid.UUID   `json:"sharebox_id,omitempty"`
	UsedAt          *time.Time   `json:"used_at,omitempty"`
	ExpiresAt       time.Time    `json:"expires_at"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// NewGifticon creates a new Gifticon owned by the given user.
// Amount-typed gifticons start with their full balance remaining.
// Returns an error if validation fails.
func NewGifticon(
	userID uuid.UUID,
	name string,
	gifticonType GifticonType,
	originalAmount int,
	expiresAt time.Time,
) (*Gifticon, error) {
	g := &Gifticon{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		Type:            gifticonType,
		OriginalAmount:  originalAmount,
		RemainingAmount: originalAmount,
		ExpiresAt:       expiresAt,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// Validate checks if the Gifticon has valid data.
// Returns an error if any field fails validation.
func (g *Gifticon) Validate() error {
	if g.ID == uuid.Nil {
		return ErrGifticonIDEmpty
	}

	if g.UserID == uuid.Nil {
		return ErrGifticonUserIDEmpty
	}

	if g.Name == "" {
		return ErrGifticonNameEmpty
	}

	switch g.Type {
	case GifticonTypeAmount:
		if g.OriginalAmount <= 0 {
			return ErrGifticonAmountInvalid
		}
		if g.RemainingAmount < 0 || g.RemainingAmount > g.OriginalAmount {
			return ErrGifticonAmountInvalid
		}
	case GifticonTypeProduct:
		// Product gifticons carry no balance.
	default:
		return ErrInvalidGifticonType
	}

	return nil
}

// IsShared reports whether the gifticon is currently shared into a box.
func (g *Gifticon) IsShared() bool {
	return g.ShareBoxID != nil
}

// IsSharedIn reports whether the gifticon is currently shared into the given box.
func (g *Gifticon) IsSharedIn(shareBoxID uuid.UUID) bool {
	return g.ShareBoxID != nil && *g.ShareBoxID == shareBoxID
}

// Available reports whether the gifticon can still be used or claimed.
func (g *Gifticon) Available() bool {
	return g.UsedAt == nil
}

// ShareTo sets the shared-into reference to the given box and updates the
// UpdatedAt timestamp. Callers must run the sharing rules first; this is a
// plain state transition.
func (g *Gifticon) ShareTo(shareBoxID uuid.UUID) {
	id := shareBoxID
	g.ShareBoxID = &id
	g.UpdatedAt = time.Now().UTC()
}

// Unshare clears the shared-into reference and updates the UpdatedAt timestamp.
func (g *Gifticon) Unshare() {
	g.ShareBoxID = nil
	g.UpdatedAt = time.Now().UTC()
}
