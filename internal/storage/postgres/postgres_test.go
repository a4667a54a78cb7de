package postgres

import (
	"testing"

	"github.com/lineup-tools/nadeconv/internal/config"
	"github.com/lineup-tools/nadeconv/internal/database"
	"github.com/lineup-tools/nadeconv/internal/model"
	"github.com/lineup-tools/nadeconv/internal/storage"
	"github.com/lineup-tools/nadeconv/pkg/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface check
var _ storage.Backend = (*Backend)(nil)

func TestNew(t *testing.T) {
	b := New(Dependencies{Logger: zerolog.Nop()})
	require.NotNil(t, b)
	assert.Nil(t, b.DB())
}

func TestInit_Unreachable(t *testing.T) {
	b := New(Dependencies{
		Config: config.DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     "1", // nothing listens here
			Username: "postgres",
			Password: "postgres",
			Database: "nadeconv",
		},
		Logger: zerolog.Nop(),
	})

	err := b.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to postgres")
}

func TestStartRun_BeforeInit(t *testing.T) {
	b := New(Dependencies{Logger: zerolog.Nop()})
	assert.Error(t, b.StartRun(&core.Run{Source: "x.json"}))
	assert.NoError(t, b.Close())
}

func TestInjectedDB(t *testing.T) {
	// any GORM dialect works once injected; SQLite keeps the test self-contained
	db, err := database.OpenSqlite("")
	require.NoError(t, err)

	b := New(Dependencies{DB: db, Logger: zerolog.Nop()})
	require.NoError(t, b.Init())

	run := &core.Run{Source: "lineups.yaml"}
	require.NoError(t, b.StartRun(run))
	require.NoError(t, b.RecordLineups("de_mirage", []core.Lineup{{From: "T", To: "Window", Weapon: "weapon_smokegrenade"}}))
	require.NoError(t, b.Flush())

	var count int64
	require.NoError(t, db.Model(&model.Lineup{}).Where("run_id = ?", run.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, b.Close())
}
