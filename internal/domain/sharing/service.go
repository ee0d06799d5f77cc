// Package sharing holds the stateless rule-checkers for share box ownership
// and gifticon sharing. The services here operate on already-loaded entities
// and perform no I/O; orchestration and persistence live in the service layer.
package sharing

import (
	"errors"

	"github.com/google/uuid"

	"github.com/eurachacha/achacha-api/internal/domain"
)

// Common errors
var (
	// ErrNotShareBoxOwner indicates the acting user is not the box's owner,
	// for an owner-only operation.
	ErrNotShareBoxOwner = errors.New("unauthorized access: user is not the share box owner")

	// ErrInvalidShareBoxName indicates a candidate name is blank or exceeds
	// the length bound.
	ErrInvalidShareBoxName = errors.New("invalid share box name")

	// ErrGifticonAlreadyShared indicates the gifticon already has a non-nil
	// shared-into reference.
	ErrGifticonAlreadyShared = errors.New("gifticon is already shared")

	// ErrGifticonNotShared indicates the gifticon is not currently shared
	// into the specified share box.
	ErrGifticonNotShared = errors.New("gifticon is not shared in this share box")

	// ErrNilShareBox is returned when a rule is invoked with a nil box.
	ErrNilShareBox = errors.New("share box cannot be nil")

	// ErrNilGifticon is returned when a rule is invoked with a nil gifticon.
	ErrNilGifticon = errors.New("gifticon cannot be nil")
)

// BoxService defines the ownership and naming rules for share boxes.
type BoxService interface {
	// ValidateOwner fails with ErrNotShareBoxOwner unless userID owns the box.
	ValidateOwner(box *domain.ShareBox, userID uuid.UUID) error

	// IsOwner is the non-failing predicate form of ValidateOwner, used where
	// owner and participant both lead to valid but different outcomes.
	IsOwner(box *domain.ShareBox, userID uuid.UUID) bool

	// ValidateName fails with ErrInvalidShareBoxName if the candidate name is
	// blank or longer than the bound. Transport-layer validation is a separate
	// concern and is not relied upon here.
	ValidateName(name string) error
}

// GifticonService defines the access and state rules for sharing gifticons.
type GifticonService interface {
	// HasAccess reports whether the requesting user owns the gifticon.
	// It exists so call sites read declaratively; it is not a general ACL check.
	HasAccess(requestingUserID, ownerUserID uuid.UUID) bool

	// ValidateSharable fails with ErrGifticonAlreadyShared if the gifticon
	// already has a shared-into reference. Further rules (usability, expiry)
	// hook in here.
	ValidateSharable(g *domain.Gifticon) error

	// ValidateSharedIn fails with ErrGifticonNotShared unless the gifticon's
	// shared-into reference equals shareBoxID. This covers both "not shared at
	// all" and "shared into a different box".
	ValidateSharedIn(g *domain.Gifticon, shareBoxID uuid.UUID) error
}

// defaultBoxService is the standard implementation of the BoxService interface.
type defaultBoxService struct{}

// NewBoxService creates the standard share box rule service.
func NewBoxService() BoxService {
	return &defaultBoxService{}
}

// ValidateOwner implements BoxService.ValidateOwner.
func (s *defaultBoxService) ValidateOwner(box *domain.ShareBox, userID uuid.UUID) error {
	if box == nil {
		return ErrNilShareBox
	}
	if box.OwnerID != userID {
		return ErrNotShareBoxOwner
	}
	return nil
}

// IsOwner implements BoxService.IsOwner.
func (s *defaultBoxService) IsOwner(box *domain.ShareBox, userID uuid.UUID) bool {
	return box != nil && box.OwnerID == userID
}

// ValidateName implements BoxService.ValidateName.
func (s *defaultBoxService) ValidateName(name string) error {
	if err := domain.ValidateShareBoxName(name); err != nil {
		return ErrInvalidShareBoxName
	}
	return nil
}

// defaultGifticonService is the standard implementation of the GifticonService interface.
type defaultGifticonService struct{}

// NewGifticonService creates the standard gifticon rule service.
func NewGifticonService() GifticonService {
	return &defaultGifticonService{}
}

// HasAccess implements GifticonService.HasAccess.
func (s *defaultGifticonService) HasAccess(requestingUserID, ownerUserID uuid.UUID) bool {
	return requestingUserID == ownerUserID
}

// ValidateSharable implements GifticonService.ValidateSharable.
func (s *defaultGifticonService) ValidateSharable(g *domain.Gifticon) error {
	if g == nil {
		return ErrNilGifticon
	}
	if g.IsShared() {
		return ErrGifticonAlreadyShared
	}
	return nil
}

// ValidateSharedIn implements GifticonService.ValidateSharedIn.
func (s *defaultGifticonService) ValidateSharedIn(g *domain.Gifticon, shareBoxID uuid.UUID) error {
	if g == nil {
		return ErrNilGifticon
	}
	if !g.IsSharedIn(shareBoxID) {
		return ErrGifticonNotShared
	}
	return nil
}
