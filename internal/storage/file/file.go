// Package filestorage implements the storage.Backend interface by writing
// output documents as JSON files below one directory per format.
// Runs, source lineups and rejections are not persisted.
package filestorage

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lineup-tools/nadeconv/pkg/core"
	"github.com/rs/zerolog"
)

// Config holds settings for the file backend.
type Config struct {
	OutputDirs map[core.Format]string
	Indent     int  // spaces per level; 0 writes compact JSON
	Compress   bool // gzip documents and add ".gz"
}

// Backend writes documents to disk.
type Backend struct {
	cfg Config
	log zerolog.Logger

	mu    sync.Mutex
	paths []string
}

// New creates a new file backend.
func New(cfg Config, log zerolog.Logger) *Backend {
	return &Backend{cfg: cfg, log: log}
}

// Init checks that every format has an output directory.
func (b *Backend) Init() error {
	for _, format := range core.Formats {
		if b.cfg.OutputDirs[format] == "" {
			return fmt.Errorf("no output directory for %s", format)
		}
	}
	return nil
}

func (b *Backend) Close() error { return nil }

func (b *Backend) StartRun(*core.Run) error { return nil }

func (b *Backend) RecordLineups(string, []core.Lineup) error { return nil }

func (b *Backend) RecordRejections(core.Format, core.Tally) error { return nil }

// DocumentPath returns where doc of format is written
func (b *Backend) DocumentPath(format core.Format, doc core.Document) string {
	path := filepath.Join(b.cfg.OutputDirs[format], filepath.FromSlash(doc.Path))
	if b.cfg.Compress {
		path += ".gz"
	}
	return path
}

// WriteDocument writes doc, creating parent directories and replacing any
// existing file.
func (b *Backend) WriteDocument(format core.Format, doc core.Document) error {
	path := b.DocumentPath(format, doc)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := b.writeBody(f, doc.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	b.mu.Lock()
	b.paths = append(b.paths, path)
	b.mu.Unlock()

	b.log.Debug().Str("format", string(format)).Str("path", path).Int("lineups", doc.Count).Msg("Document written")
	return nil
}

// writeBody encodes body to w, compressing when configured, and closes w.
// A failed close is reported like a failed write.
func (b *Backend) writeBody(w io.WriteCloser, body any) error {
	if !b.cfg.Compress {
		return errors.Join(b.encode(w, body), w.Close())
	}
	gzWriter := gzip.NewWriter(w)
	err := b.encode(gzWriter, body)
	if err == nil {
		err = gzWriter.Close()
	}
	return errors.Join(err, w.Close())
}

func (b *Backend) encode(w io.Writer, body any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if b.cfg.Indent > 0 {
		encoder.SetIndent("", strings.Repeat(" ", b.cfg.Indent))
	}
	return encoder.Encode(body)
}

// ExportedPaths returns the files written so far, in write order.
func (b *Backend) ExportedPaths() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.paths...)
}
