package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewShareBox(t *testing.T) {
	ownerID := uuid.New()

	box, err := NewShareBox(ownerID, "Lunch crew")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if box.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if box.OwnerID != ownerID {
		t.Errorf("Expected owner ID %s, got %s", ownerID, box.OwnerID)
	}

	if !box.AllowParticipation {
		t.Error("Expected new box to allow participation")
	}

	if len(box.InviteCode) != inviteCodeLength {
		t.Errorf("Expected invite code of length %d, got %d", inviteCodeLength, len(box.InviteCode))
	}

	for _, c := range box.InviteCode {
		if !strings.ContainsRune(inviteCodeAlphabet, c) {
			t.Errorf("Invite code contains character %q outside the allowed alphabet", c)
		}
	}

	if box.CreatedAt.IsZero() || box.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Owner ID is required
	_, err = NewShareBox(uuid.Nil, "Lunch crew")
	if !errors.Is(err, ErrShareBoxOwnerIDEmpty) {
		t.Errorf("Expected error %v, got %v", ErrShareBoxOwnerIDEmpty, err)
	}
}

func TestValidateShareBoxName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid name", "Lunch crew", nil},
		{"single character", "a", nil},
		{"exactly ten runes", "abcdefghij", nil},
		{"ten multi-byte runes", "가나다라마바사아자차", nil},
		{"empty", "", ErrShareBoxNameEmpty},
		{"whitespace only", "   ", ErrShareBoxNameEmpty},
		{"eleven runes", "abcdefghijk", ErrShareBoxNameTooLong},
		{"eleven multi-byte runes", "가나다라마바사아자차카", ErrShareBoxNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShareBoxName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateShareBoxName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestShareBoxUpdateName(t *testing.T) {
	box, err := NewShareBox(uuid.New(), "Old name")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := box.UpdateName("New name"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if box.Name != "New name" {
		t.Errorf("Expected name %q, got %q", "New name", box.Name)
	}

	// Invalid names leave the box unchanged
	if err := box.UpdateName(""); !errors.Is(err, ErrShareBoxNameEmpty) {
		t.Errorf("Expected error %v, got %v", ErrShareBoxNameEmpty, err)
	}
	if box.Name != "New name" {
		t.Errorf("Expected name to remain %q, got %q", "New name", box.Name)
	}
}

func TestShareBoxUpdateAllowParticipation(t *testing.T) {
	box, err := NewShareBox(uuid.New(), "Lunch crew")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	box.UpdateAllowParticipation(false)
	if box.AllowParticipation {
		t.Error("Expected participation to be closed")
	}

	box.UpdateAllowParticipation(true)
	if !box.AllowParticipation {
		t.Error("Expected participation to be open")
	}
}

func TestShareBoxValidate(t *testing.T) {
	valid, err := NewShareBox(uuid.New(), "Lunch crew")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	box := *valid
	box.ID = uuid.Nil
	if err := box.Validate(); !errors.Is(err, ErrShareBoxIDEmpty) {
		t.Errorf("Expected error %v, got %v", ErrShareBoxIDEmpty, err)
	}

	box = *valid
	box.InviteCode = ""
	if err := box.Validate(); !errors.Is(err, ErrShareBoxInviteCodeEmpty) {
		t.Errorf("Expected error %v, got %v", ErrShareBoxInviteCodeEmpty, err)
	}
}
