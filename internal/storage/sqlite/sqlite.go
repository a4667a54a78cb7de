// Package sqlitestorage implements the storage.Backend interface on a SQLite
// file. It wraps the GORM backend and only adds opening and closing the file.
package sqlitestorage

import (
	"fmt"

	"github.com/lineup-tools/nadeconv/internal/database"
	gormstorage "github.com/lineup-tools/nadeconv/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// Config holds configuration for the SQLite storage backend.
type Config struct {
	Path string // database file; empty means in-memory
}

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	cfg Config
	log zerolog.Logger
}

// New opens the SQLite database and creates the backend.
func New(cfg Config, log zerolog.Logger) (*Backend, error) {
	db, err := database.OpenSqlite(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite DB: %w", err)
	}

	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{DB: db, Logger: log}),
		cfg:     cfg,
		log:     log,
	}, nil
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if err := b.Backend.Init(); err != nil {
		return err
	}
	if b.cfg.Path != "" {
		b.log.Info().Str("path", b.cfg.Path).Msg("Using local SQLite DB")
	} else {
		b.log.Info().Msg("Using in-memory SQLite DB")
	}
	return nil
}

// Close finishes the run and closes the database file.
func (b *Backend) Close() error {
	if err := b.Backend.Close(); err != nil {
		return err
	}
	sqlDB, err := b.DB().DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}
