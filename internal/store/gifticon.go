package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/eurachacha/achacha-api/internal/domain"
)

// GifticonStore defines the interface for gifticon data persistence.
type GifticonStore interface {
	// Create saves a new gifticon to the store.
	Create(ctx context.Context, gifticon *domain.Gifticon) error

	// GetByID retrieves a gifticon by its unique ID.
	// Returns ErrGifticonNotFound if the gifticon does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Gifticon, error)

	// Update modifies an existing gifticon, including its sharing state.
	// Returns ErrGifticonNotFound if the gifticon does not exist.
	Update(ctx context.Context, gifticon *domain.Gifticon) error

	// ListByShareBox retrieves all gifticons currently shared in the given
	// share box, ordered by expiry date ascending.
	ListByShareBox(ctx context.Context, shareBoxID uuid.UUID) ([]*domain.Gifticon, error)

	// UnshareAllByShareBox clears the share box reference from every gifticon
	// shared in the given box, regardless of owner or usage state.
	// Used when a share box is deleted. Returns the number of gifticons unshared.
	UnshareAllByShareBox(ctx context.Context, shareBoxID uuid.UUID) (int64, error)

	// UnshareAvailableByUserAndShareBox clears the share box reference from
	// the given user's unused gifticons in the given box. Used gifticons stay
	// shared so that remaining participants keep their usage history.
	// Returns the number of gifticons unshared.
	UnshareAvailableByUserAndShareBox(ctx context.Context, userID, shareBoxID uuid.UUID) (int64, error)

	// WithTx returns a new GifticonStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) GifticonStore
}
