// Package gormstorage implements the storage.Backend interface on any GORM
// database. Source lineups are queued and written in batches on Flush or
// Close; documents and rejections are written immediately.
package gormstorage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lineup-tools/nadeconv/internal/database"
	"github.com/lineup-tools/nadeconv/internal/model"
	"github.com/lineup-tools/nadeconv/internal/model/convert"
	"github.com/lineup-tools/nadeconv/internal/queue"
	"github.com/lineup-tools/nadeconv/pkg/core"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ErrNoRun is returned when recording before StartRun
var ErrNoRun = errors.New("no run started")

const defaultBatchSize = 500

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB        *gorm.DB
	Logger    zerolog.Logger
	BatchSize int
}

// Backend implements storage.Backend using GORM.
type Backend struct {
	deps    Dependencies
	lineups *queue.Queue[model.Lineup]

	mu  sync.Mutex
	run *model.Run
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.BatchSize <= 0 {
		deps.BatchSize = defaultBatchSize
	}
	return &Backend{
		deps:    deps,
		lineups: queue.New[model.Lineup](),
	}
}

// DB returns the underlying database handle
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return errors.New("gorm backend has no database")
	}
	return database.Migrate(b.deps.DB, b.deps.Logger)
}

// Close writes queued lineups and marks the run finished.
func (b *Backend) Close() error {
	if err := b.Flush(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.run == nil {
		return nil
	}
	b.run.FinishedAt.Time = time.Now()
	b.run.FinishedAt.Valid = true
	if err := b.deps.DB.Save(b.run).Error; err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	b.deps.Logger.Info().Uint("run", b.run.ID).Msg("Run finished")
	b.run = nil
	return nil
}

// StartRun inserts the run and assigns its ID.
func (b *Backend) StartRun(run *core.Run) error {
	if b.deps.DB == nil {
		return errors.New("gorm backend has no database")
	}
	row := &model.Run{
		Source:    run.Source,
		StartedAt: run.StartedAt,
		Maps:      run.Maps,
		Lineups:   run.Lineups,
	}
	if row.StartedAt.IsZero() {
		row.StartedAt = time.Now()
	}
	if err := b.deps.DB.Create(row).Error; err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	b.mu.Lock()
	b.run = row
	b.mu.Unlock()

	run.ID = row.ID
	b.deps.Logger.Debug().Uint("run", row.ID).Str("source", run.Source).Msg("Run started")
	return nil
}

func (b *Backend) runID() (uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.run == nil {
		return 0, ErrNoRun
	}
	return b.run.ID, nil
}

// RecordLineups queues the lineups of mapName. The queue is flushed once it
// holds a full batch.
func (b *Backend) RecordLineups(mapName string, lineups []core.Lineup) error {
	runID, err := b.runID()
	if err != nil {
		return err
	}
	rows := make([]model.Lineup, len(lineups))
	for i, l := range lineups {
		rows[i] = convert.CoreToLineup(runID, mapName, l)
	}
	b.lineups.Push(rows...)
	if b.lineups.Len() >= b.deps.BatchSize {
		return b.Flush()
	}
	return nil
}

// Flush writes every queued lineup.
func (b *Backend) Flush() error {
	rows := b.lineups.Drain()
	if len(rows) == 0 {
		return nil
	}
	start := time.Now()
	if err := b.deps.DB.CreateInBatches(rows, b.deps.BatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert lineups: %w", err)
	}
	b.deps.Logger.Debug().Int("lineups", len(rows)).Dur("duration", time.Since(start)).Msg("Lineups written")
	return nil
}

// WriteDocument inserts doc with its body as JSON.
func (b *Backend) WriteDocument(format core.Format, doc core.Document) error {
	runID, err := b.runID()
	if err != nil {
		return err
	}
	row, err := convert.CoreToDocument(runID, format, doc)
	if err != nil {
		return err
	}
	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// RecordRejections inserts one row per rejection message.
func (b *Backend) RecordRejections(format core.Format, t core.Tally) error {
	runID, err := b.runID()
	if err != nil {
		return err
	}
	rows := convert.TallyToRejections(runID, format, t)
	if len(rows) == 0 {
		return nil
	}
	if err := b.deps.DB.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert rejections: %w", err)
	}
	return nil
}

// LoadCollection reads the lineups stored for a run back into a collection.
// Lineups keep their insertion order within each map.
func (b *Backend) LoadCollection(runID uint) (core.Collection, error) {
	var rows []model.Lineup
	if err := b.deps.DB.Where("run_id = ?", runID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load lineups: %w", err)
	}
	c := core.Collection{}
	for _, row := range rows {
		c[row.Map] = append(c[row.Map], convert.LineupToCore(row))
	}
	return c, nil
}
