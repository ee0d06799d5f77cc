package domain

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ShareBoxNameMaxLength is the maximum number of characters (runes, so
// multi-byte names count correctly) allowed in a share box name.
const ShareBoxNameMaxLength = 10

// inviteCodeLength is the length of generated invite codes.
const inviteCodeLength = 10

// inviteCodeAlphabet deliberately excludes easily-confused characters (0/O, 1/I/L)
// since invite codes are read aloud and typed by hand.
const inviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// ShareBox-specific validation errors
var (
	// ErrShareBoxIDEmpty is returned when a share box ID is empty or nil.
	ErrShareBoxIDEmpty = errors.New("share box ID cannot be empty")

	// ErrShareBoxOwnerIDEmpty is returned when a share box's owner ID is empty or nil.
	ErrShareBoxOwnerIDEmpty = errors.New("share box owner ID cannot be empty")

	// ErrShareBoxNameEmpty is returned when a share box name is blank.
	ErrShareBoxNameEmpty = errors.New("share box name cannot be blank")

	// ErrShareBoxNameTooLong is returned when a share box name exceeds the length bound.
	ErrShareBoxNameTooLong = fmt.Errorf(
		"share box name cannot exceed %d characters", ShareBoxNameMaxLength)

	// ErrShareBoxInviteCodeEmpty is returned when a share box has no invite code.
	ErrShareBoxInviteCodeEmpty = errors.New("share box invite code cannot be empty")
)

// ShareBox represents a shared container that participants pool gifticons into.
// The owner is the user who created the box; ownership is never reassigned.
type ShareBox struct {
	ID                 uuid.UUID `json:"id"`
	OwnerID            uuid.UUID `json:"owner_id"`
	Name               string    `json:"name"`
	AllowParticipation bool      `json:"allow_participation"`
	InviteCode         string    `json:"invite_code"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewShareBox creates a new ShareBox owned by the given user.
// It generates a new UUID for the box ID and a random invite code, opens the
// box for participation, and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewShareBox(ownerID uuid.UUID, name string) (*ShareBox, error) {
	code, err := generateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	box := &ShareBox{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		Name:               name,
		AllowParticipation: true,
		InviteCode:         code,
		CreatedAt:          time.Now().UTC(),
		UpdatedAt:          time.Now().UTC(),
	}

	if err := box.Validate(); err != nil {
		return nil, err
	}

	return box, nil
}

// Validate checks if the ShareBox has valid data.
// Returns an error if any field fails validation.
func (b *ShareBox) Validate() error {
	if b.ID == uuid.Nil {
		return ErrShareBoxIDEmpty
	}

	if b.OwnerID == uuid.Nil {
		return ErrShareBoxOwnerIDEmpty
	}

	if err := ValidateShareBoxName(b.Name); err != nil {
		return err
	}

	if b.InviteCode == "" {
		return ErrShareBoxInviteCodeEmpty
	}

	return nil
}

// ValidateShareBoxName checks the name bound shared by creation and rename:
// non-blank after trimming, at most ShareBoxNameMaxLength runes.
func ValidateShareBoxName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrShareBoxNameEmpty
	}
	if utf8.RuneCountInString(name) > ShareBoxNameMaxLength {
		return ErrShareBoxNameTooLong
	}
	return nil
}

// UpdateName changes the box name and updates the UpdatedAt timestamp.
// Returns an error if the new name is invalid; the box is left unchanged.
func (b *ShareBox) UpdateName(name string) error {
	if err := ValidateShareBoxName(name); err != nil {
		return err
	}
	b.Name = name
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateAllowParticipation toggles whether new participants may join via the
// invite code and updates the UpdatedAt timestamp.
func (b *ShareBox) UpdateAllowParticipation(allow bool) {
	b.AllowParticipation = allow
	b.UpdatedAt = time.Now().UTC()
}

// generateInviteCode produces a random invite code from the restricted alphabet.
func generateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(buf), nil
}
