package sharebox

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/eurachacha/achacha-api/internal/domain"
	"github.com/eurachacha/achacha-api/internal/store"
)

// ShareBoxRepository defines the interface for repositories that can provide
// share box data and support transactions.
type ShareBoxRepository interface {
	// Create saves a new share box.
	Create(ctx context.Context, box *domain.ShareBox) error

	// GetByID retrieves a share box by its unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ShareBox, error)

	// GetByInviteCode retrieves a share box by its invite code.
	GetByInviteCode(ctx context.Context, inviteCode string) (*domain.ShareBox, error)

	// Exists reports whether a share box with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Update modifies a share box's mutable fields.
	Update(ctx context.Context, box *domain.ShareBox) error

	// Delete removes a share box by its ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ShareBoxRepository

	// DB returns the underlying database connection.
	DB() *sql.DB
}

// ParticipationRepository defines the interface for repositories that can
// provide share box membership data and support transactions.
type ParticipationRepository interface {
	// Create saves a new participation record.
	Create(ctx context.Context, participation *domain.Participation) error

	// Exists reports whether the user participates in the share box.
	Exists(ctx context.Context, userID, shareBoxID uuid.UUID) (bool, error)

	// ListByShareBox retrieves all participations for a share box in join order.
	ListByShareBox(ctx context.Context, shareBoxID uuid.UUID) ([]*domain.Participation, error)

	// Delete removes the participation of a user in a share box.
	Delete(ctx context.Context, userID, shareBoxID uuid.UUID) error

	// DeleteAllByShareBox removes every participation for the share box.
	DeleteAllByShareBox(ctx context.Context, shareBoxID uuid.UUID) (int64, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ParticipationRepository
}

// GifticonRepository defines the interface for repositories that can provide
// gifticon data and support transactions.
type GifticonRepository interface {
	// GetByID retrieves a gifticon by its unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Gifticon, error)

	// Update saves changes to an existing gifticon.
	Update(ctx context.Context, gifticon *domain.Gifticon) error

	// ListByShareBox retrieves all gifticons shared in the share box.
	ListByShareBox(ctx context.Context, shareBoxID uuid.UUID) ([]*domain.Gifticon, error)

	// UnshareAllByShareBox unshares every gifticon in the share box.
	UnshareAllByShareBox(ctx context.Context, shareBoxID uuid.UUID) (int64, error)

	// UnshareAvailableByUserAndShareBox unshares the user's unused gifticons
	// in the share box.
	UnshareAvailableByUserAndShareBox(ctx context.Context, userID, shareBoxID uuid.UUID) (int64, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) GifticonRepository
}

// UserRepository defines the read-only user lookups the service needs when
// resolving participants.
type UserRepository interface {
	// GetByID retrieves a user by their unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// NewShareBoxRepositoryAdapter creates a new adapter that allows a
// store.ShareBoxStore to be used where a ShareBoxRepository is expected.
func NewShareBoxRepositoryAdapter(boxStore store.ShareBoxStore, db *sql.DB) ShareBoxRepository {
	return &shareBoxRepositoryAdapter{
		boxStore: boxStore,
		db:       db,
	}
}

// shareBoxRepositoryAdapter adapts a store.ShareBoxStore to the ShareBoxRepository interface
type shareBoxRepositoryAdapter struct {
	boxStore store.ShareBoxStore
	db       *sql.DB
}

func (a *shareBoxRepositoryAdapter) Create(ctx context.Context, box *domain.ShareBox) error {
	return a.boxStore.Create(ctx, box)
}

func (a *shareBoxRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.ShareBox, error) {
	return a.boxStore.GetByID(ctx, id)
}

func (a *shareBoxRepositoryAdapter) GetByInviteCode(
	ctx context.Context,
	inviteCode string,
) (*domain.ShareBox, error) {
	return a.boxStore.GetByInviteCode(ctx, inviteCode)
}

func (a *shareBoxRepositoryAdapter) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return a.boxStore.Exists(ctx, id)
}

func (a *shareBoxRepositoryAdapter) Update(ctx context.Context, box *domain.ShareBox) error {
	return a.boxStore.Update(ctx, box)
}

func (a *shareBoxRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	return a.boxStore.Delete(ctx, id)
}

func (a *shareBoxRepositoryAdapter) WithTx(tx *sql.Tx) ShareBoxRepository {
	return &shareBoxRepositoryAdapter{
		boxStore: a.boxStore.WithTx(tx),
		db:       a.db,
	}
}

func (a *shareBoxRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewParticipationRepositoryAdapter creates a new adapter that allows a
// store.ParticipationStore to be used where a ParticipationRepository is expected.
func NewParticipationRepositoryAdapter(participationStore store.ParticipationStore) ParticipationRepository {
	return &participationRepositoryAdapter{
		participationStore: participationStore,
	}
}

// participationRepositoryAdapter adapts a store.ParticipationStore to the
// ParticipationRepository interface
type participationRepositoryAdapter struct {
	participationStore store.ParticipationStore
}

func (a *participationRepositoryAdapter) Create(
	ctx context.Context,
	participation *domain.Participation,
) error {
	return a.participationStore.Create(ctx, participation)
}

func (a *participationRepositoryAdapter) Exists(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
) (bool, error) {
	return a.participationStore.Exists(ctx, userID, shareBoxID)
}

func (a *participationRepositoryAdapter) ListByShareBox(
	ctx context.Context,
	shareBoxID uuid.UUID,
) ([]*domain.Participation, error) {
	return a.participationStore.ListByShareBox(ctx, shareBoxID)
}

func (a *participationRepositoryAdapter) Delete(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
) error {
	return a.participationStore.Delete(ctx, userID, shareBoxID)
}

func (a *participationRepositoryAdapter) DeleteAllByShareBox(
	ctx context.Context,
	shareBoxID uuid.UUID,
) (int64, error) {
	return a.participationStore.DeleteAllByShareBox(ctx, shareBoxID)
}

func (a *participationRepositoryAdapter) WithTx(tx *sql.Tx) ParticipationRepository {
	return &participationRepositoryAdapter{
		participationStore: a.participationStore.WithTx(tx),
	}
}

// NewGifticonRepositoryAdapter creates a new adapter that allows a
// store.GifticonStore to be used where a GifticonRepository is expected.
func NewGifticonRepositoryAdapter(gifticonStore store.GifticonStore) GifticonRepository {
	return &gifticonRepositoryAdapter{
		gifticonStore: gifticonStore,
	}
}

// gifticonRepositoryAdapter adapts a store.GifticonStore to the GifticonRepository interface
type gifticonRepositoryAdapter struct {
	gifticonStore store.GifticonStore
}

func (a *gifticonRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Gifticon, error) {
	return a.gifticonStore.GetByID(ctx, id)
}

func (a *gifticonRepositoryAdapter) Update(ctx context.Context, gifticon *domain.Gifticon) error {
	return a.gifticonStore.Update(ctx, gifticon)
}

func (a *gifticonRepositoryAdapter) ListByShareBox(
	ctx context.Context,
	shareBoxID uuid.UUID,
) ([]*domain.Gifticon, error) {
	return a.gifticonStore.ListByShareBox(ctx, shareBoxID)
}

func (a *gifticonRepositoryAdapter) UnshareAllByShareBox(
	ctx context.Context,
	shareBoxID uuid.UUID,
) (int64, error) {
	return a.gifticonStore.UnshareAllByShareBox(ctx, shareBoxID)
}

func (a *gifticonRepositoryAdapter) UnshareAvailableByUserAndShareBox(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
) (int64, error) {
	return a.gifticonStore.UnshareAvailableByUserAndShareBox(ctx, userID, shareBoxID)
}

func (a *gifticonRepositoryAdapter) WithTx(tx *sql.Tx) GifticonRepository {
	return &gifticonRepositoryAdapter{
		gifticonStore: a.gifticonStore.WithTx(tx),
	}
}

// NewUserRepositoryAdapter creates a new adapter that allows a
// store.UserStore to be used where a UserRepository is expected.
func NewUserRepositoryAdapter(userStore store.UserStore) UserRepository {
	return &userRepositoryAdapter{
		userStore: userStore,
	}
}

// userRepositoryAdapter adapts a store.UserStore to the UserRepository interface
type userRepositoryAdapter struct {
	userStore store.UserStore
}

func (a *userRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return a.userStore.GetByID(ctx, id)
}
