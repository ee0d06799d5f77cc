package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewGifticon(t *testing.T) {
	userID := uuid.New()
	expiresAt := time.Now().UTC().AddDate(0, 3, 0)

	t.Run("amount gifticon", func(t *testing.T) {
		g, err := NewGifticon(userID, "Coffee balance", GifticonTypeAmount, 10000, expiresAt)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if g.ID == uuid.Nil {
			t.Error("Expected non-nil UUID, got nil UUID")
		}
		if g.RemainingAmount != g.OriginalAmount {
			t.Errorf("Expected remaining amount %d, got %d", g.OriginalAmount, g.RemainingAmount)
		}
		if g.IsShared() {
			t.Error("Expected new gifticon to be unshared")
		}
		if !g.Available() {
			t.Error("Expected new gifticon to be available")
		}
	})

	t.Run("product gifticon", func(t *testing.T) {
		g, err := NewGifticon(userID, "Americano", GifticonTypeProduct, 0, expiresAt)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if g.Type != GifticonTypeProduct {
			t.Errorf("Expected type %q, got %q", GifticonTypeProduct, g.Type)
		}
	})

	t.Run("amount gifticon requires positive amount", func(t *testing.T) {
		_, err := NewGifticon(userID, "Coffee balance", GifticonTypeAmount, 0, expiresAt)
		if !errors.Is(err, ErrGifticonAmountInvalid) {
			t.Errorf("Expected error %v, got %v", ErrGifticonAmountInvalid, err)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewGifticon(userID, "Mystery", GifticonType("voucher"), 0, expiresAt)
		if !errors.Is(err, ErrInvalidGifticonType) {
			t.Errorf("Expected error %v, got %v", ErrInvalidGifticonType, err)
		}
	})

	t.Run("missing owner", func(t *testing.T) {
		_, err := NewGifticon(uuid.Nil, "Americano", GifticonTypeProduct, 0, expiresAt)
		if !errors.Is(err, ErrGifticonUserIDEmpty) {
			t.Errorf("Expected error %v, got %v", ErrGifticonUserIDEmpty, err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := NewGifticon(userID, "", GifticonTypeProduct, 0, expiresAt)
		if !errors.Is(err, ErrGifticonNameEmpty) {
			t.Errorf("Expected error %v, got %v", ErrGifticonNameEmpty, err)
		}
	})
}

func TestGifticonValidateAmountBounds(t *testing.T) {
	g, err := NewGifticon(uuid.New(), "Coffee balance", GifticonTypeAmount, 10000,
		time.Now().UTC().AddDate(0, 3, 0))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	g.RemainingAmount = 10001
	if err := g.Validate(); !errors.Is(err, ErrGifticonAmountInvalid) {
		t.Errorf("Expected error %v, got %v", ErrGifticonAmountInvalid, err)
	}

	g.RemainingAmount = -1
	if err := g.Validate(); !errors.Is(err, ErrGifticonAmountInvalid) {
		t.Errorf("Expected error %v, got %v", ErrGifticonAmountInvalid, err)
	}

	g.RemainingAmount = 0
	if err := g.Validate(); err != nil {
		t.Errorf("Expected no error for fully spent balance, got %v", err)
	}
}

func TestGifticonSharingTransitions(t *testing.T) {
	g, err := NewGifticon(uuid.New(), "Americano", GifticonTypeProduct, 0,
		time.Now().UTC().AddDate(0, 3, 0))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	boxID := uuid.New()
	otherBoxID := uuid.New()

	g.ShareTo(boxID)
	if !g.IsShared() {
		t.Error("Expected gifticon to be shared")
	}
	if !g.IsSharedIn(boxID) {
		t.Error("Expected gifticon to be shared in the target box")
	}
	if g.IsSharedIn(otherBoxID) {
		t.Error("Expected gifticon not to be shared in another box")
	}

	g.Unshare()
	if g.IsShared() {
		t.Error("Expected gifticon to be unshared")
	}
	if g.ShareBoxID != nil {
		t.Error("Expected nil share box reference after unshare")
	}
}

func TestGifticonAvailable(t *testing.T) {
	g, err := NewGifticon(uuid.New(), "Americano", GifticonTypeProduct, 0,
		time.Now().UTC().AddDate(0, 3, 0))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !g.Available() {
		t.Error("Expected unused gifticon to be available")
	}

	usedAt := time.Now().UTC()
	g.UsedAt = &usedAt
	if g.Available() {
		t.Error("Expected used gifticon to be unavailable")
	}
}
