package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/eurachacha/achacha-api/internal/domain"
	"github.com/eurachacha/achacha-api/internal/platform/logger"
	"github.com/eurachacha/achacha-api/internal/store"
)

// PostgresGifticonStore implements the store.GifticonStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGifticonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGifticonStore creates a new PostgreSQL implementation of the GifticonStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresGifticonStore(db store.DBTX, logger *slog.Logger) *PostgresGifticonStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGifticonStore{
		db:     db,
		logger: logger.With(slog.String("component", "gifticon_store")),
	}
}

// Ensure PostgresGifticonStore implements store.GifticonStore interface
var _ store.GifticonStore = (*PostgresGifticonStore)(nil)

// Create implements store.GifticonStore.Create
// It saves a new gifticon to the database.
// Returns store.ErrInvalidEntity if the owner does not exist (foreign key violation).
func (s *PostgresGifticonStore) Create(ctx context.Context, gifticon *domain.Gifticon) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := gifticon.Validate(); err != nil {
		log.Warn("gifticon validation failed during create",
			slog.String("error", err.Error()),
			slog.String("gifticon_id", gifticon.ID.String()))
		return err
	}

	query := `
		INSERT INTO gifticons (
			id, user_id, name, type, original_amount, remaining_amount,
			sharebox_id, used_at, expires_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		gifticon.ID,
		gifticon.UserID,
		gifticon.Name,
		gifticon.Type,
		gifticon.OriginalAmount,
		gifticon.RemainingAmount,
		gifticon.ShareBoxID,
		gifticon.UsedAt,
		gifticon.ExpiresAt,
		gifticon.CreatedAt,
		gifticon.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during gifticon creation",
				slog.String("gifticon_id", gifticon.ID.String()),
				slog.String("user_id", gifticon.UserID.String()))
			return MapError(err)
		}

		log.Error("failed to create gifticon",
			slog.String("error", err.Error()),
			slog.String("gifticon_id", gifticon.ID.String()))
		return MapError(err)
	}

	log.Info("gifticon created successfully",
		slog.String("gifticon_id", gifticon.ID.String()),
		slog.String("user_id", gifticon.UserID.String()),
		slog.String("type", string(gifticon.Type)))
	return nil
}

// GetByID implements store.GifticonStore.GetByID
// It retrieves a gifticon by its unique ID.
// Returns store.ErrGifticonNotFound if the gifticon does not exist.
func (s *PostgresGifticonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Gifticon, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, type, original_amount, remaining_amount,
			sharebox_id, used_at, expires_at, created_at, updated_at
		FROM gifticons
		WHERE id = $1
	`

	var g domain.Gifticon
	var gifticonType string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&g.ID,
		&g.UserID,
		&g.Name,
		&gifticonType,
		&g.OriginalAmount,
		&g.RemainingAmount,
		&g.ShareBoxID,
		&g.UsedAt,
		&g.ExpiresAt,
		&g.CreatedAt,
		&g.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("gifticon not found", slog.String("gifticon_id", id.String()))
			return nil, store.ErrGifticonNotFound
		}
		log.Error("failed to get gifticon by ID",
			slog.String("error", err.Error()),
			slog.String("gifticon_id", id.String()))
		return nil, MapError(err)
	}

	g.Type = domain.GifticonType(gifticonType)

	return &g, nil
}

// Update implements store.GifticonStore.Update
// It saves changes to an existing gifticon, including its sharing state.
// Returns store.ErrGifticonNotFound if the gifticon does not exist.
func (s *PostgresGifticonStore) Update(ctx context.Context, gifticon *domain.Gifticon) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := gifticon.Validate(); err != nil {
		log.Warn("gifticon validation failed during update",
			slog.String("error", err.Error()),
			slog.String("gifticon_id", gifticon.ID.String()))
		return err
	}

	query := `
		UPDATE gifticons
		SET name = $1, remaining_amount = $2, sharebox_id = $3,
			used_at = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		gifticon.Name,
		gifticon.RemainingAmount,
		gifticon.ShareBoxID,
		gifticon.UsedAt,
		gifticon.UpdatedAt,
		gifticon.ID,
	)
	if err != nil {
		log.Error("failed to update gifticon",
			slog.String("error", err.Error()),
			slog.String("gifticon_id", gifticon.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "gifticon"); err != nil {
		log.Debug("gifticon not found for update",
			slog.String("gifticon_id", gifticon.ID.String()))
		return store.ErrGifticonNotFound
	}

	log.Info("gifticon updated successfully",
		slog.String("gifticon_id", gifticon.ID.String()))
	return nil
}

// ListByShareBox implements store.GifticonStore.ListByShareBox
// It retrieves all gifticons shared in the given share box,
// soonest expiry first.
// Returns an empty slice if no gifticons are shared in the box.
func (s *PostgresGifticonStore) ListByShareBox(
	ctx context.Context,
	shareBoxID uuid.UUID,
) ([]*domain.Gifticon, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, type, original_amount, remaining_amount,
			sharebox_id, used_at, expires_at, created_at, updated_at
		FROM gifticons
		WHERE sharebox_id = $1
		ORDER BY expires_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, shareBoxID)
	if err != nil {
		log.Error("failed to query gifticons by share box",
			slog.String("error", err.Error()),
			slog.String("sharebox_id", shareBoxID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var gifticons []*domain.Gifticon
	for rows.Next() {
		var g domain.Gifticon
		var gifticonType string

		err := rows.Scan(
			&g.ID,
			&g.UserID,
			&g.Name,
			&gifticonType,
			&g.OriginalAmount,
			&g.RemainingAmount,
			&g.ShareBoxID,
			&g.UsedAt,
			&g.ExpiresAt,
			&g.CreatedAt,
			&g.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan gifticon row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		g.Type = domain.GifticonType(gifticonType)
		gifticons = append(gifticons, &g)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	// Return empty slice instead of nil if no gifticons found
	if gifticons == nil {
		gifticons = []*domain.Gifticon{}
	}

	return gifticons, nil
}

// UnshareAllByShareBox implements store.GifticonStore.UnshareAllByShareBox
// It clears the share box reference from every gifticon shared in the box.
// Returns the number of gifticons unshared; zero is not an error.
func (s *PostgresGifticonStore) UnshareAllByShareBox(
	ctx context.Context,
	shareBoxID uuid.UUID,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE gifticons
		SET sharebox_id = NULL, updated_at = NOW()
		WHERE sharebox_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, shareBoxID)
	if err != nil {
		log.Error("failed to unshare gifticons by share box",
			slog.String("error", err.Error()),
			slog.String("sharebox_id", shareBoxID.String()))
		return 0, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info("gifticons unshared by share box",
		slog.String("sharebox_id", shareBoxID.String()),
		slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}

// UnshareAvailableByUserAndShareBox implements
// store.GifticonStore.UnshareAvailableByUserAndShareBox
// It clears the share box reference from the user's unused gifticons in the
// box. Used gifticons keep their share box reference so the box retains its
// usage history.
// Returns the number of gifticons unshared; zero is not an error.
func (s *PostgresGifticonStore) UnshareAvailableByUserAndShareBox(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE gifticons
		SET sharebox_id = NULL, updated_at = NOW()
		WHERE user_id = $1 AND sharebox_id = $2 AND used_at IS NULL
	`

	result, err := s.db.ExecContext(ctx, query, userID, shareBoxID)
	if err != nil {
		log.Error("failed to unshare available gifticons",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("sharebox_id", shareBoxID.String()))
		return 0, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info("available gifticons unshared",
		slog.String("user_id", userID.String()),
		slog.String("sharebox_id", shareBoxID.String()),
		slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}

// WithTx implements store.GifticonStore.WithTx
// It returns a new GifticonStore that uses the provided transaction.
func (s *PostgresGifticonStore) WithTx(tx *sql.Tx) store.GifticonStore {
	return &PostgresGifticonStore{
		db:     tx,
		logger: s.logger,
	}
}
