// Package postgres implements the storage.Backend interface on PostgreSQL.
// The connection is opened in Init unless one is injected, and the GORM
// backend does the writing.
package postgres

import (
	"fmt"

	"github.com/lineup-tools/nadeconv/internal/config"
	"github.com/lineup-tools/nadeconv/internal/database"
	gormstorage "github.com/lineup-tools/nadeconv/internal/storage/gorm"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies holds all dependencies for the PostgreSQL storage backend.
type Dependencies struct {
	DB     *gorm.DB // optional; opened from Config when nil
	Config config.DatabaseConfig
	Logger zerolog.Logger
}

// Backend implements storage.Backend on a PostgreSQL connection.
type Backend struct {
	*gormstorage.Backend
	deps Dependencies
}

// New creates a new PostgreSQL storage backend. No connection is made until Init.
func New(deps Dependencies) *Backend {
	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{DB: deps.DB, Logger: deps.Logger}),
		deps:    deps,
	}
}

// Init connects to the server if needed and migrates the schema.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		db, err := database.OpenPostgres(b.deps.Config)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		b.deps.DB = db
		b.Backend = gormstorage.New(gormstorage.Dependencies{DB: db, Logger: b.deps.Logger})
	}

	if err := b.Backend.Init(); err != nil {
		return fmt.Errorf("failed to setup DB: %w", err)
	}
	b.deps.Logger.Info().
		Str("host", b.deps.Config.Host).
		Str("port", b.deps.Config.Port).
		Str("database", b.deps.Config.Database).
		Msg("Connected to PostgreSQL")
	return nil
}

// Close finishes the run and closes the connection pool.
func (b *Backend) Close() error {
	if err := b.Backend.Close(); err != nil {
		return err
	}
	if b.deps.DB == nil {
		return nil
	}
	sqlDB, err := b.deps.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}
