package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/eurachacha/achacha-api/internal/domain"
)

// ShareBoxStore defines the interface for share box data persistence.
type ShareBoxStore interface {
	// Create saves a new share box to the store.
	// Returns ErrInviteCodeExists if the invite code collides with an
	// existing box; callers may regenerate the code and retry.
	Create(ctx context.Context, box *domain.ShareBox) error

	// GetByID retrieves a share box by its unique ID.
	// Returns ErrShareBoxNotFound if the share box does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ShareBox, error)

	// GetByInviteCode retrieves a share box by its invite code.
	// Returns ErrShareBoxNotFound if no box has the given code.
	GetByInviteCode(ctx context.Context, inviteCode string) (*domain.ShareBox, error)

	// Exists reports whether a share box with the given ID exists.
	// Cheaper than GetByID when the caller only needs an existence check.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Update modifies an existing share box's mutable fields
	// (name and participation setting).
	// Returns ErrShareBoxNotFound if the share box does not exist.
	Update(ctx context.Context, box *domain.ShareBox) error

	// Delete removes a share box from the store by its ID.
	// Returns ErrShareBoxNotFound if the share box does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ShareBoxStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) ShareBoxStore
}
