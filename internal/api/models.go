package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/eurachacha/achacha-api/internal/domain"
)

// RegisterRequest represents the payload for user registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest represents the payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents the response for successful authentication
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    string    `json:"expires_at,omitempty"`
}

// RefreshTokenRequest represents the payload for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CreateShareBoxRequest represents the payload for creating a share box
type CreateShareBoxRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// JoinShareBoxRequest represents the payload for joining a share box by
// invite code
type JoinShareBoxRequest struct {
	InviteCode string `json:"invite_code" validate:"required"`
}

// UpdateShareBoxNameRequest represents the payload for renaming a share box
type UpdateShareBoxNameRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// UpdateParticipationSettingRequest represents the payload for opening or
// closing a share box for new participants
type UpdateParticipationSettingRequest struct {
	AllowParticipation *bool `json:"allow_participation" validate:"required"`
}

// ShareBoxResponse represents a share box as seen by a participant
type ShareBoxResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	AllowParticipation bool      `json:"allow_participation"`
	InviteCode         string    `json:"invite_code"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewShareBoxResponse converts a domain share box to its API representation.
func NewShareBoxResponse(box *domain.ShareBox) ShareBoxResponse {
	return ShareBoxResponse{
		ID:                 box.ID,
		Name:               box.Name,
		AllowParticipation: box.AllowParticipation,
		InviteCode:         box.InviteCode,
		CreatedAt:          box.CreatedAt,
	}
}

// ParticipantResponse represents one participant of a share box
type ParticipantResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// NewParticipantListResponse converts domain users to their API representation,
// preserving order.
func NewParticipantListResponse(users []*domain.User) []ParticipantResponse {
	out := make([]ParticipantResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ParticipantResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		})
	}
	return out
}

// GifticonResponse represents a gifticon shared into a share box
type GifticonResponse struct {
	ID              uuid.UUID  `json:"id"`
	OwnerID         uuid.UUID  `json:"owner_id"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	OriginalAmount  int        `json:"original_amount,omitempty"`
	RemainingAmount int        `json:"remaining_amount,omitempty"`
	UsedAt          *time.Time `json:"used_at,omitempty"`
	ExpiresAt       time.Time  `json:"expires_at"`
}

// NewGifticonListResponse converts domain gifticons to their API
// representation, preserving order.
func NewGifticonListResponse(gifticons []*domain.Gifticon) []GifticonResponse {
	out := make([]GifticonResponse, 0, len(gifticons))
	for _, g := range gifticons {
		out = append(out, GifticonResponse{
			ID:              g.ID,
			OwnerID:         g.UserID,
			Name:            g.Name,
			Type:            string(g.Type),
			OriginalAmount:  g.OriginalAmount,
			RemainingAmount: g.RemainingAmount,
			UsedAt:          g.UsedAt,
			ExpiresAt:       g.ExpiresAt,
		})
	}
	return out
}
