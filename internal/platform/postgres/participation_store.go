package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/eurachacha/achacha-api/internal/domain"
	"github.com/eurachacha/achacha-api/internal/platform/logger"
	"github.com/eurachacha/achacha-api/internal/store"
)

// PostgresParticipationStore implements the store.ParticipationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresParticipationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresParticipationStore creates a new PostgreSQL implementation of the
// ParticipationStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresParticipationStore(db store.DBTX, logger *slog.Logger) *PostgresParticipationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresParticipationStore{
		db:     db,
		logger: logger.With(slog.String("component", "participation_store")),
	}
}

// Ensure PostgresParticipationStore implements store.ParticipationStore interface
var _ store.ParticipationStore = (*PostgresParticipationStore)(nil)

// Create implements store.ParticipationStore.Create
// It saves a new participation record.
// Returns store.ErrParticipationExists if the user already participates in the share box.
// Returns store.ErrInvalidEntity if the user or share box does not exist.
func (s *PostgresParticipationStore) Create(ctx context.Context, participation *domain.Participation) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := participation.Validate(); err != nil {
		log.Warn("participation validation failed during create",
			slog.String("error", err.Error()),
			slog.String("participation_id", participation.ID.String()))
		return err
	}

	query := `
		INSERT INTO participations (id, user_id, sharebox_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		participation.ID,
		participation.UserID,
		participation.ShareBoxID,
		participation.CreatedAt,
		participation.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate participation",
				slog.String("user_id", participation.UserID.String()),
				slog.String("sharebox_id", participation.ShareBoxID.String()))
			return MapUniqueViolation(err, store.ErrParticipationExists)
		}
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during participation creation",
				slog.String("user_id", participation.UserID.String()),
				slog.String("sharebox_id", participation.ShareBoxID.String()))
			return MapError(err)
		}

		log.Error("failed to create participation",
			slog.String("error", err.Error()),
			slog.String("participation_id", participation.ID.String()))
		return MapError(err)
	}

	log.Info("participation created successfully",
		slog.String("user_id", participation.UserID.String()),
		slog.String("sharebox_id", participation.ShareBoxID.String()))
	return nil
}

// Exists implements store.ParticipationStore.Exists
// It reports whether the given user participates in the given share box.
func (s *PostgresParticipationStore) Exists(ctx context.Context, userID, shareBoxID uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM participations
			WHERE user_id = $1 AND sharebox_id = $2
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, userID, shareBoxID).Scan(&exists); err != nil {
		log.Error("failed to check participation",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("sharebox_id", shareBoxID.String()))
		return false, MapError(err)
	}

	return exists, nil
}

// ListByShareBox implements store.ParticipationStore.ListByShareBox
// It retrieves all participations for a share box ordered by join time,
// so the owner's participation comes first.
// Returns an empty slice if the share box has no participants.
func (s *PostgresParticipationStore) ListByShareBox(
	ctx context.Context,
	shareBoxID uuid.UUID,
) ([]*domain.Participation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, sharebox_id, created_at, updated_at
		FROM participations
		WHERE sharebox_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, shareBoxID)
	if err != nil {
		log.Error("failed to query participations by share box",
			slog.String("error", err.Error()),
			slog.String("sharebox_id", shareBoxID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var participations []*domain.Participation
	for rows.Next() {
		var p domain.Participation
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.ShareBoxID,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan participation row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		participations = append(participations, &p)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	// Return empty slice instead of nil if no participations found
	if participations == nil {
		participations = []*domain.Participation{}
	}

	return participations, nil
}

// Delete implements store.ParticipationStore.Delete
// It removes the participation of a user in a share box.
// Returns store.ErrParticipationNotFound if no such participation exists.
func (s *PostgresParticipationStore) Delete(ctx context.Context, userID, shareBoxID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM participations
		WHERE user_id = $1 AND sharebox_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, userID, shareBoxID)
	if err != nil {
		log.Error("failed to delete participation",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("sharebox_id", shareBoxID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "participation"); err != nil {
		log.Debug("participation not found for delete",
			slog.String("user_id", userID.String()),
			slog.String("sharebox_id", shareBoxID.String()))
		return store.ErrParticipationNotFound
	}

	log.Info("participation deleted successfully",
		slog.String("user_id", userID.String()),
		slog.String("sharebox_id", shareBoxID.String()))
	return nil
}

// DeleteAllByShareBox implements store.ParticipationStore.DeleteAllByShareBox
// It removes every participation for the given share box and returns the
// number of rows removed. Deleting zero rows is not an error.
func (s *PostgresParticipationStore) DeleteAllByShareBox(
	ctx context.Context,
	shareBoxID uuid.UUID,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM participations WHERE sharebox_id = $1`

	result, err := s.db.ExecContext(ctx, query, shareBoxID)
	if err != nil {
		log.Error("failed to delete participations by share box",
			slog.String("error", err.Error()),
			slog.String("sharebox_id", shareBoxID.String()))
		return 0, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info("participations deleted by share box",
		slog.String("sharebox_id", shareBoxID.String()),
		slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}

// WithTx implements store.ParticipationStore.WithTx
// It returns a new ParticipationStore that uses the provided transaction.
func (s *PostgresParticipationStore) WithTx(tx *sql.Tx) store.ParticipationStore {
	return &PostgresParticipationStore{
		db:     tx,
		logger: s.logger,
	}
}
