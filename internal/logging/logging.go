package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir, appName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", appName, sessionStart.Format("20060102_150405")),
	)
}

// ParseLevel converts a config log level to a zerolog.Level. Unknown values map to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Manager owns the process logger and the sinks it writes to.
type Manager struct {
	logger  zerolog.Logger
	console io.Writer
	graylog *gelf.Writer
	ready   bool
}

// NewManager creates a Manager writing human-readable output to console.
// A nil console means os.Stdout.
func NewManager(console io.Writer) *Manager {
	if console == nil {
		console = os.Stdout
	}
	return &Manager{console: console}
}

// Setup builds the logger. Console output is colored, file output (if file is
// not nil) is the same format without colors, and every event is additionally
// shipped to the Graylog writer when one was attached with ConnectGraylog.
func (m *Manager) Setup(file io.Writer, level string) {
	lvl := ParseLevel(level)

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        m.console,
			TimeFormat: time.RFC3339,
		},
	}
	if file != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}
	if m.graylog != nil {
		writers = append(writers, m.graylog)
	}

	m.logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().Timestamp().Logger()
	m.ready = true

	m.logger.Info().Str("loglevel", lvl.String()).Msg("Logging set up")
}

// ConnectGraylog opens a GELF writer to address. It must be called before
// Setup to take effect.
func (m *Manager) ConnectGraylog(address string) error {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return fmt.Errorf("connecting to graylog at %s: %w", address, err)
	}
	m.graylog = w
	return nil
}

// Logger returns the configured logger, or a no-op logger before Setup.
func (m *Manager) Logger() zerolog.Logger {
	if !m.ready {
		return zerolog.Nop()
	}
	return m.logger
}

// Close releases the Graylog connection if one is open.
func (m *Manager) Close() error {
	if m.graylog == nil {
		return nil
	}
	err := m.graylog.Close()
	m.graylog = nil
	return err
}
