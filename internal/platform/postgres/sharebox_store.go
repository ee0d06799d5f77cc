package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/eurachacha/achacha-api/internal/domain"
	"github.com/eurachacha/achacha-api/internal/platform/logger"
	"github.com/eurachacha/achacha-api/internal/store"
)

// PostgresShareBoxStore implements the store.ShareBoxStore interface
// using a PostgreSQL database as the storage backend.
type PostgresShareBoxStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresShareBoxStore creates a new PostgreSQL implementation of the ShareBoxStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresShareBoxStore(db store.DBTX, logger *slog.Logger) *PostgresShareBoxStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresShareBoxStore{
		db:     db,
		logger: logger.With(slog.String("component", "sharebox_store")),
	}
}

// Ensure PostgresShareBoxStore implements store.ShareBoxStore interface
var _ store.ShareBoxStore = (*PostgresShareBoxStore)(nil)

// Create implements store.ShareBoxStore.Create
// It saves a new share box to the database.
// Returns store.ErrInviteCodeExists if the invite code is already taken.
// Returns store.ErrInvalidEntity if the owner does not exist (foreign key violation).
func (s *PostgresShareBoxStore) Create(ctx context.Context, box *domain.ShareBox) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := box.Validate(); err != nil {
		log.Warn("share box validation failed during create",
			slog.String("error", err.Error()),
			slog.String("sharebox_id", box.ID.String()))
		return err
	}

	query := `
		INSERT INTO shareboxes (id, owner_id, name, allow_participation, invite_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		box.ID,
		box.OwnerID,
		box.Name,
		box.AllowParticipation,
		box.InviteCode,
		box.CreatedAt,
		box.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("invite code collision during share box creation",
				slog.String("sharebox_id", box.ID.String()))
			return MapUniqueViolation(err, store.ErrInviteCodeExists)
		}
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during share box creation",
				slog.String("sharebox_id", box.ID.String()),
				slog.String("owner_id", box.OwnerID.String()))
			return MapError(err)
		}

		log.Error("failed to create share box",
			slog.String("error", err.Error()),
			slog.String("sharebox_id", box.ID.String()))
		return MapError(err)
	}

	log.Info("share box created successfully",
		slog.String("sharebox_id", box.ID.String()),
		slog.String("owner_id", box.OwnerID.String()))
	return nil
}

// GetByID implements store.ShareBoxStore.GetByID
// It retrieves a share box by its unique ID.
// Returns store.ErrShareBoxNotFound if the share box does not exist.
func (s *PostgresShareBoxStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ShareBox, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, name, allow_participation, invite_code, created_at, updated_at
		FROM shareboxes
		WHERE id = $1
	`

	box, err := s.scanShareBox(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("share box not found", slog.String("sharebox_id", id.String()))
			return nil, store.ErrShareBoxNotFound
		}
		log.Error("failed to get share box by ID",
			slog.String("error", err.Error()),
			slog.String("sharebox_id", id.String()))
		return nil, MapError(err)
	}

	return box, nil
}

// GetByInviteCode implements store.ShareBoxStore.GetByInviteCode
// It retrieves a share box by its invite code.
// Returns store.ErrShareBoxNotFound if no box has the given code.
func (s *PostgresShareBoxStore) GetByInviteCode(ctx context.Context, inviteCode string) (*domain.ShareBox, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, name, allow_participation, invite_code, created_at, updated_at
		FROM shareboxes
		WHERE invite_code = $1
	`

	box, err := s.scanShareBox(s.db.QueryRowContext(ctx, query, inviteCode))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("share box not found by invite code")
			return nil, store.ErrShareBoxNotFound
		}
		log.Error("failed to get share box by invite code",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return box, nil
}

// Exists implements store.ShareBoxStore.Exists
// It reports whether a share box with the given ID exists without
// loading the full row.
func (s *PostgresShareBoxStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS(SELECT 1 FROM shareboxes WHERE id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		log.Error("failed to check share box existence",
			slog.String("error", err.Error()),
			slog.String("sharebox_id", id.String()))
		return false, MapError(err)
	}

	return exists, nil
}

// Update implements store.ShareBoxStore.Update
// It modifies a share box's name and participation setting.
// Returns store.ErrShareBoxNotFound if the share box does not exist.
func (s *PostgresShareBoxStore) Update(ctx context.Context, box *domain.ShareBox) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := box.Validate(); err != nil {
		log.Warn("share box validation failed during update",
			slog.String("error", err.Error()),
			slog.String("sharebox_id", box.ID.String()))
		return err
	}

	query := `
		UPDATE shareboxes
		SET name = $1, allow_participation = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		box.Name,
		box.AllowParticipation,
		box.UpdatedAt,
		box.ID,
	)
	if err != nil {
		log.Error("failed to update share box",
			slog.String("error", err.Error()),
			slog.String("sharebox_id", box.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "share box"); err != nil {
		log.Debug("share box not found for update",
			slog.String("sharebox_id", box.ID.String()))
		return store.ErrShareBoxNotFound
	}

	log.Info("share box updated successfully",
		slog.String("sharebox_id", box.ID.String()))
	return nil
}

// Delete implements store.ShareBoxStore.Delete
// It removes a share box from the database by its ID.
// Returns store.ErrShareBoxNotFound if the share box does not exist.
func (s *PostgresShareBoxStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM shareboxes WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete share box",
			slog.String("error", err.Error()),
			slog.String("sharebox_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "share box"); err != nil {
		log.Debug("share box not found for delete",
			slog.String("sharebox_id", id.String()))
		return store.ErrShareBoxNotFound
	}

	log.Info("share box deleted successfully",
		slog.String("sharebox_id", id.String()))
	return nil
}

// WithTx implements store.ShareBoxStore.WithTx
// It returns a new ShareBoxStore that uses the provided transaction.
func (s *PostgresShareBoxStore) WithTx(tx *sql.Tx) store.ShareBoxStore {
	return &PostgresShareBoxStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanShareBox scans a single share box row.
func (s *PostgresShareBoxStore) scanShareBox(row *sql.Row) (*domain.ShareBox, error) {
	var box domain.ShareBox
	err := row.Scan(
		&box.ID,
		&box.OwnerID,
		&box.Name,
		&box.AllowParticipation,
		&box.InviteCode,
		&box.CreatedAt,
		&box.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &box, nil
}
