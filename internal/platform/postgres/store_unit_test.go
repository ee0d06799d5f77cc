package postgres

import (
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestUserStoreWithTx tests the WithTx method for the user store
func TestUserStoreWithTx(t *testing.T) {
	db := &sql.DB{}
	userStore := NewPostgresUserStore(db, slog.Default())

	tx := &sql.Tx{}

	result := userStore.WithTx(tx)
	assert.NotNil(t, result)

	txStore, ok := result.(*PostgresUserStore)
	assert.True(t, ok, "WithTx should return a PostgresUserStore instance")
	assert.Equal(t, tx, txStore.db, "WithTx store should use the provided transaction")
	assert.Equal(t, userStore.logger, txStore.logger, "WithTx store should preserve the logger")
}

// TestShareBoxStoreWithTx tests the WithTx method for the share box store
func TestShareBoxStoreWithTx(t *testing.T) {
	db := &sql.DB{}
	boxStore := NewPostgresShareBoxStore(db, slog.Default())

	tx := &sql.Tx{}

	result := boxStore.WithTx(tx)
	assert.NotNil(t, result)

	txStore, ok := result.(*PostgresShareBoxStore)
	assert.True(t, ok, "WithTx should return a PostgresShareBoxStore instance")
	assert.Equal(t, tx, txStore.db, "WithTx store should use the provided transaction")
	assert.Equal(t, boxStore.logger, txStore.logger, "WithTx store should preserve the logger")
}

// TestGifticonStoreWithTx tests the WithTx method for the gifticon store
func TestGifticonStoreWithTx(t *testing.T) {
	db := &sql.DB{}
	gifticonStore := NewPostgresGifticonStore(db, slog.Default())

	tx := &sql.Tx{}

	result := gifticonStore.WithTx(tx)
	assert.NotNil(t, result)

	txStore, ok := result.(*PostgresGifticonStore)
	assert.True(t, ok, "WithTx should return a PostgresGifticonStore instance")
	assert.Equal(t, tx, txStore.db, "WithTx store should use the provided transaction")
	assert.Equal(t, gifticonStore.logger, txStore.logger, "WithTx store should preserve the logger")
}

// TestParticipationStoreWithTx tests the WithTx method for the participation store
func TestParticipationStoreWithTx(t *testing.T) {
	db := &sql.DB{}
	participationStore := NewPostgresParticipationStore(db, slog.Default())

	tx := &sql.Tx{}

	result := participationStore.WithTx(tx)
	assert.NotNil(t, result)

	txStore, ok := result.(*PostgresParticipationStore)
	assert.True(t, ok, "WithTx should return a PostgresParticipationStore instance")
	assert.Equal(t, tx, txStore.db, "WithTx store should use the provided transaction")
	assert.Equal(t, participationStore.logger, txStore.logger, "WithTx store should preserve the logger")
}

// TestNewStorePanicsOnNilDB verifies the constructors reject a nil connection.
func TestNewStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresUserStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresShareBoxStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresGifticonStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresParticipationStore(nil, nil) })
}
