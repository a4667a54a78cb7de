package storage

import (
	"errors"

	"github.com/lineup-tools/nadeconv/pkg/core"
)

// Backend is the interface all storage implementations must satisfy.
// Methods may be called from several goroutines once StartRun has returned.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// StartRun registers a conversion run. Backends that persist runs assign run.ID.
	StartRun(run *core.Run) error

	// RecordLineups stores the parsed source lineups of one map
	RecordLineups(mapName string, lineups []core.Lineup) error

	// WriteDocument stores one output document of a format
	WriteDocument(format core.Format, doc core.Document) error

	// RecordRejections stores the rejection tally of a format
	RecordRejections(format core.Format, t core.Tally) error
}

// Exporter is an optional interface for backends that write documents to
// files, reporting where they went.
type Exporter interface {
	ExportedPaths() []string
}

// Loader is an optional interface for backends that can read back the source
// lineups of an earlier run.
type Loader interface {
	LoadCollection(runID uint) (core.Collection, error)
}

// ErrNoLoader is returned when no backend can load stored runs
var ErrNoLoader = errors.New("no storage backend can load stored runs")

// Multi fans every call out to several backends. All backends are called
// even when one fails; the errors are joined.
type Multi []Backend

func (m Multi) each(fn func(Backend) error) error {
	var errs []error
	for _, b := range m {
		if err := fn(b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Init() error {
	return m.each(func(b Backend) error { return b.Init() })
}

func (m Multi) Close() error {
	return m.each(func(b Backend) error { return b.Close() })
}

// StartRun passes the same run to every backend, so the last backend that
// assigns an ID wins.
func (m Multi) StartRun(run *core.Run) error {
	return m.each(func(b Backend) error { return b.StartRun(run) })
}

func (m Multi) RecordLineups(mapName string, lineups []core.Lineup) error {
	return m.each(func(b Backend) error { return b.RecordLineups(mapName, lineups) })
}

func (m Multi) WriteDocument(format core.Format, doc core.Document) error {
	return m.each(func(b Backend) error { return b.WriteDocument(format, doc) })
}

func (m Multi) RecordRejections(format core.Format, t core.Tally) error {
	return m.each(func(b Backend) error { return b.RecordRejections(format, t) })
}

// ExportedPaths collects the paths of every member implementing Exporter
func (m Multi) ExportedPaths() []string {
	var paths []string
	for _, b := range m {
		if e, ok := b.(Exporter); ok {
			paths = append(paths, e.ExportedPaths()...)
		}
	}
	return paths
}

// LoadCollection loads from the first member implementing Loader
func (m Multi) LoadCollection(runID uint) (core.Collection, error) {
	for _, b := range m {
		if l, ok := b.(Loader); ok {
			return l.LoadCollection(runID)
		}
	}
	return nil, ErrNoLoader
}
