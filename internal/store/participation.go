package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/eurachacha/achacha-api/internal/domain"
)

// ParticipationStore defines the interface for share box membership persistence.
type ParticipationStore interface {
	// Create saves a new participation record.
	// Returns ErrParticipationExists if the user already participates
	// in the share box.
	Create(ctx context.Context, participation *domain.Participation) error

	// Exists reports whether the given user participates in the given share box.
	Exists(ctx context.Context, userID, shareBoxID uuid.UUID) (bool, error)

	// ListByShareBox retrieves all participations for a share box,
	// ordered by join time ascending so the owner comes first.
	ListByShareBox(ctx context.Context, shareBoxID uuid.UUID) ([]*domain.Participation, error)

	// Delete removes the participation of a user in a share box.
	// Returns ErrParticipationNotFound if no such participation exists.
	Delete(ctx context.Context, userID, shareBoxID uuid.UUID) error

	// DeleteAllByShareBox removes every participation for the given share box.
	// Used when a share box is deleted. Returns the number of rows removed.
	DeleteAllByShareBox(ctx context.Context, shareBoxID uuid.UUID) (int64, error)

	// WithTx returns a new ParticipationStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) ParticipationStore
}
