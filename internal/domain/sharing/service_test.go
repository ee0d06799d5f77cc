package sharing

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eurachacha/achacha-api/internal/domain"
)

func newBox(t *testing.T, ownerID uuid.UUID) *domain.ShareBox {
	t.Helper()
	box, err := domain.NewShareBox(ownerID, "Lunch crew")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return box
}

func newGifticon(t *testing.T, ownerID uuid.UUID) *domain.Gifticon {
	t.Helper()
	g, err := domain.NewGifticon(ownerID, "Americano", domain.GifticonTypeProduct, 0,
		time.Now().UTC().AddDate(0, 3, 0))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return g
}

func TestBoxServiceValidateOwner(t *testing.T) {
	svc := NewBoxService()
	ownerID := uuid.New()
	box := newBox(t, ownerID)

	if err := svc.ValidateOwner(box, ownerID); err != nil {
		t.Errorf("Expected no error for the owner, got %v", err)
	}

	if err := svc.ValidateOwner(box, uuid.New()); !errors.Is(err, ErrNotShareBoxOwner) {
		t.Errorf("Expected error %v, got %v", ErrNotShareBoxOwner, err)
	}

	if err := svc.ValidateOwner(nil, ownerID); !errors.Is(err, ErrNilShareBox) {
		t.Errorf("Expected error %v, got %v", ErrNilShareBox, err)
	}
}

func TestBoxServiceIsOwner(t *testing.T) {
	svc := NewBoxService()
	ownerID := uuid.New()
	box := newBox(t, ownerID)

	if !svc.IsOwner(box, ownerID) {
		t.Error("Expected owner to be recognized")
	}
	if svc.IsOwner(box, uuid.New()) {
		t.Error("Expected non-owner to be rejected")
	}
	if svc.IsOwner(nil, ownerID) {
		t.Error("Expected nil box to be rejected")
	}
}

func TestBoxServiceValidateName(t *testing.T) {
	svc := NewBoxService()

	if err := svc.ValidateName("Lunch crew"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := svc.ValidateName(""); !errors.Is(err, ErrInvalidShareBoxName) {
		t.Errorf("Expected error %v, got %v", ErrInvalidShareBoxName, err)
	}
	if err := svc.ValidateName("far too long a name"); !errors.Is(err, ErrInvalidShareBoxName) {
		t.Errorf("Expected error %v, got %v", ErrInvalidShareBoxName, err)
	}
}

func TestGifticonServiceHasAccess(t *testing.T) {
	svc := NewGifticonService()
	ownerID := uuid.New()

	if !svc.HasAccess(ownerID, ownerID) {
		t.Error("Expected the owner to have access")
	}
	if svc.HasAccess(uuid.New(), ownerID) {
		t.Error("Expected another user to be denied")
	}
}

func TestGifticonServiceValidateSharable(t *testing.T) {
	svc := NewGifticonService()
	g := newGifticon(t, uuid.New())

	if err := svc.ValidateSharable(g); err != nil {
		t.Errorf("Expected no error for an unshared gifticon, got %v", err)
	}

	g.ShareTo(uuid.New())
	if err := svc.ValidateSharable(g); !errors.Is(err, ErrGifticonAlreadyShared) {
		t.Errorf("Expected error %v, got %v", ErrGifticonAlreadyShared, err)
	}

	if err := svc.ValidateSharable(nil); !errors.Is(err, ErrNilGifticon) {
		t.Errorf("Expected error %v, got %v", ErrNilGifticon, err)
	}
}

func TestGifticonServiceValidateSharedIn(t *testing.T) {
	svc := NewGifticonService()
	boxID := uuid.New()
	g := newGifticon(t, uuid.New())

	// Not shared at all
	if err := svc.ValidateSharedIn(g, boxID); !errors.Is(err, ErrGifticonNotShared) {
		t.Errorf("Expected error %v, got %v", ErrGifticonNotShared, err)
	}

	// Shared into a different box
	g.ShareTo(uuid.New())
	if err := svc.ValidateSharedIn(g, boxID); !errors.Is(err, ErrGifticonNotShared) {
		t.Errorf("Expected error %v, got %v", ErrGifticonNotShared, err)
	}

	// Shared into the target box
	g.ShareTo(boxID)
	if err := svc.ValidateSharedIn(g, boxID); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if err := svc.ValidateSharedIn(nil, boxID); !errors.Is(err, ErrNilGifticon) {
		t.Errorf("Expected error %v, got %v", ErrNilGifticon, err)
	}
}
