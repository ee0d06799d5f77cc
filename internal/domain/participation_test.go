package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewParticipation(t *testing.T) {
	userID := uuid.New()
	shareBoxID := uuid.New()

	p, err := NewParticipation(userID, shareBoxID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if p.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if p.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, p.UserID)
	}
	if p.ShareBoxID != shareBoxID {
		t.Errorf("Expected share box ID %s, got %s", shareBoxID, p.ShareBoxID)
	}
	if p.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	_, err = NewParticipation(uuid.Nil, shareBoxID)
	if !errors.Is(err, ErrParticipationUserIDEmpty) {
		t.Errorf("Expected error %v, got %v", ErrParticipationUserIDEmpty, err)
	}

	_, err = NewParticipation(userID, uuid.Nil)
	if !errors.Is(err, ErrParticipationShareBoxIDEmpty) {
		t.Errorf("Expected error %v, got %v", ErrParticipationShareBoxIDEmpty, err)
	}
}
