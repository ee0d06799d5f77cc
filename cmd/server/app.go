package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/eurachacha/achacha-api/internal/config"
	"github.com/eurachacha/achacha-api/internal/domain/sharing"
	"github.com/eurachacha/achacha-api/internal/platform/logger"
	"github.com/eurachacha/achacha-api/internal/platform/postgres"
	"github.com/eurachacha/achacha-api/internal/service/auth"
	"github.com/eurachacha/achacha-api/internal/service/sharebox"
	"github.com/eurachacha/achacha-api/internal/store"
)

// application bundles the configuration and wired services that the HTTP
// server needs.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	shareBoxService  sharebox.ShareBoxService
}

// newApplication loads configuration, sets up logging, connects to the
// database, runs migrations, and wires the service graph.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := openDatabase(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, log); err != nil {
		closeDatabase(db, log)
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeDatabase(db, log)
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, log)
	boxStore := postgres.NewPostgresShareBoxStore(db, log)
	participationStore := postgres.NewPostgresParticipationStore(db, log)
	gifticonStore := postgres.NewPostgresGifticonStore(db, log)

	shareBoxService := sharebox.NewShareBoxService(
		sharebox.NewShareBoxRepositoryAdapter(boxStore, db),
		sharebox.NewParticipationRepositoryAdapter(participationStore),
		sharebox.NewGifticonRepositoryAdapter(gifticonStore),
		sharebox.NewUserRepositoryAdapter(userStore),
		sharing.NewBoxService(),
		sharing.NewGifticonService(),
		log,
	)

	return &application{
		config:           cfg,
		logger:           log,
		db:               db,
		userStore:        userStore,
		jwtService:       jwtService,
		passwordHasher:   auth.NewBcryptHasher(0),
		passwordVerifier: auth.NewBcryptVerifier(),
		shareBoxService:  shareBoxService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}

func openDatabase(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func closeDatabase(db *sql.DB, log *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Error("failed to close database connection", "error", err)
	}
}
