package main

import (
	"fmt"

	"github.com/lineup-tools/nadeconv/internal/config"
	"github.com/lineup-tools/nadeconv/internal/storage"
	filestorage "github.com/lineup-tools/nadeconv/internal/storage/file"
	pgstorage "github.com/lineup-tools/nadeconv/internal/storage/postgres"
	sqlitestorage "github.com/lineup-tools/nadeconv/internal/storage/sqlite"
	"github.com/lineup-tools/nadeconv/pkg/core"
	"github.com/rs/zerolog"
)

// createBackend returns the file backend, fanned out to the run database
// when db.enabled is set.
func createBackend(log zerolog.Logger) (storage.Backend, error) {
	outCfg := config.GetOutputConfig()
	dirs := make(map[core.Format]string, len(core.Formats))
	for _, f := range core.Formats {
		dirs[f] = config.OutputDir(string(f))
	}
	backends := storage.Multi{filestorage.New(filestorage.Config{
		OutputDirs: dirs,
		Indent:     outCfg.Indent,
		Compress:   outCfg.Compress,
	}, log)}

	dbCfg := config.GetDatabaseConfig()
	if !dbCfg.Enabled {
		return backends, nil
	}

	switch dbCfg.Type {
	case "postgres":
		log.Info().Msg("Postgres storage backend initialized")
		backends = append(backends, pgstorage.New(pgstorage.Dependencies{
			Config: dbCfg,
			Logger: log,
		}))

	case "sqlite":
		backend, err := sqlitestorage.New(sqlitestorage.Config{Path: dbCfg.Path}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite backend: %w", err)
		}
		log.Info().Msg("SQLite storage backend initialized")
		backends = append(backends, backend)

	default:
		return nil, fmt.Errorf("unknown database type: %s", dbCfg.Type)
	}
	return backends, nil
}
