package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/eurachacha/achacha-api/internal/domain"
)

// MockShareBoxService implements sharebox.ShareBoxService for testing
type MockShareBoxService struct {
	// Function fields for customizable behavior
	CreateShareBoxFn             func(ctx context.Context, userID uuid.UUID, name string) (*domain.ShareBox, error)
	JoinShareBoxFn               func(ctx context.Context, userID uuid.UUID, inviteCode string) (*domain.ShareBox, error)
	GetShareBoxSettingsFn        func(ctx context.Context, userID, shareBoxID uuid.UUID) (*domain.ShareBox, error)
	UpdateShareBoxNameFn         func(ctx context.Context, userID, shareBoxID uuid.UUID, name string) error
	UpdateParticipationSettingFn func(ctx context.Context, userID, shareBoxID uuid.UUID, allow bool) error
	GetParticipantsFn            func(ctx context.Context, userID, shareBoxID uuid.UUID) ([]*domain.User, error)
	GetShareBoxGifticonsFn       func(ctx context.Context, userID, shareBoxID uuid.UUID) ([]*domain.Gifticon, error)
	ShareGifticonFn              func(ctx context.Context, userID, shareBoxID, gifticonID uuid.UUID) error
	UnshareGifticonFn            func(ctx context.Context, userID, shareBoxID, gifticonID uuid.UUID) error
	LeaveShareBoxFn              func(ctx context.Context, userID, shareBoxID uuid.UUID) error

	// Default values used when functions aren't explicitly defined
	Box       *domain.ShareBox
	Users     []*domain.User
	Gifticons []*domain.Gifticon
	Err       error
}

// CreateShareBox implements the sharebox.ShareBoxService interface
func (m *MockShareBoxService) CreateShareBox(
	ctx context.Context,
	userID uuid.UUID,
	name string,
) (*domain.ShareBox, error) {
	if m.CreateShareBoxFn != nil {
		return m.CreateShareBoxFn(ctx, userID, name)
	}
	return m.Box, m.Err
}

// JoinShareBox implements the sharebox.ShareBoxService interface
func (m *MockShareBoxService) JoinShareBox(
	ctx context.Context,
	userID uuid.UUID,
	inviteCode string,
) (*domain.ShareBox, error) {
	if m.JoinShareBoxFn != nil {
		return m.JoinShareBoxFn(ctx, userID, inviteCode)
	}
	return m.Box, m.Err
}

// GetShareBoxSettings implements the sharebox.ShareBoxService interface
func (m *MockShareBoxService) GetShareBoxSettings(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
) (*domain.ShareBox, error) {
	if m.GetShareBoxSettingsFn != nil {
		return m.GetShareBoxSettingsFn(ctx, userID, shareBoxID)
	}
	return m.Box, m.Err
}

// UpdateShareBoxName implements the sharebox.ShareBoxService interface
func (m *MockShareBoxService) UpdateShareBoxName(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
	name string,
) error {
	if m.UpdateShareBoxNameFn != nil {
		return m.UpdateShareBoxNameFn(ctx, userID, shareBoxID, name)
	}
	return m.Err
}

// UpdateParticipationSetting implements the sharebox.ShareBoxService interface
func (m *MockShareBoxService) UpdateParticipationSetting(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
	allow bool,
) error {
	if m.UpdateParticipationSettingFn != nil {
		return m.UpdateParticipationSettingFn(ctx, userID, shareBoxID, allow)
	}
	return m.Err
}

// GetParticipants implements the sharebox.ShareBoxService interface
func (m *MockShareBoxService) GetParticipants(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
) ([]*domain.User, error) {
	if m.GetParticipantsFn != nil {
		return m.GetParticipantsFn(ctx, userID, shareBoxID)
	}
	return m.Users, m.Err
}

// GetShareBoxGifticons implements the sharebox.ShareBoxService interface
func (m *MockShareBoxService) GetShareBoxGifticons(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
) ([]*domain.Gifticon, error) {
	if m.GetShareBoxGifticonsFn != nil {
		return m.GetShareBoxGifticonsFn(ctx, userID, shareBoxID)
	}
	return m.Gifticons, m.Err
}

// ShareGifticon implements the sharebox.ShareBoxService interface
func (m *MockShareBoxService) ShareGifticon(
	ctx context.Context,
	userID, shareBoxID, gifticonID uuid.UUID,
) error {
	if m.ShareGifticonFn != nil {
		return m.ShareGifticonFn(ctx, userID, shareBoxID, gifticonID)
	}
	return m.Err
}

// UnshareGifticon implements the sharebox.ShareBoxService interface
func (m *MockShareBoxService) UnshareGifticon(
	ctx context.Context,
	userID, shareBoxID, gifticonID uuid.UUID,
) error {
	if m.UnshareGifticonFn != nil {
		return m.UnshareGifticonFn(ctx, userID, shareBoxID, gifticonID)
	}
	return m.Err
}

// LeaveShareBox implements the sharebox.ShareBoxService interface
func (m *MockShareBoxService) LeaveShareBox(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
) error {
	if m.LeaveShareBoxFn != nil {
		return m.LeaveShareBoxFn(ctx, userID, shareBoxID)
	}
	return m.Err
}
