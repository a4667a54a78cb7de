package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lineup-tools/nadeconv/internal/config"
	"github.com/lineup-tools/nadeconv/internal/influx"
	"github.com/lineup-tools/nadeconv/internal/logging"
	intOtel "github.com/lineup-tools/nadeconv/internal/otel"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// module defs - set at build time via ldflags
var (
	Version   string = "0.0.1"
	BuildDate string = "unknown"

	AppName string = "nadeconv"
)

// app holds everything set up before a subcommand runs and torn down after.
type app struct {
	configDir string
	logLevel  string
	input     string
	runID     uint

	console io.Writer
	started time.Time

	logManager *logging.Manager
	logFile    *os.File
	log        zerolog.Logger

	otel        *intOtel.Provider
	metricsFile *os.File
	influx      *influx.Manager
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(console io.Writer) *cobra.Command {
	a := &app{console: console}

	root := &cobra.Command{
		Use:     AppName,
		Short:   "Convert grenade lineups to the Mono, Primordial and Kidua formats",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildDate),
		Long: `nadeconv reads a lineup document keyed by map name (JSON or YAML) and
writes it out in one or more target formats. Lineups a format cannot
represent are dropped and counted by reason.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
	}
	root.SetOut(console)

	root.PersistentFlags().StringVar(&a.configDir, "config", ".", "directory containing "+config.FileName)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&a.input, "input", "i", "", "source lineup document")
	root.PersistentFlags().UintVar(&a.runID, "run", 0, "convert the lineups stored for an earlier run instead of --input (needs db.enabled)")

	root.AddCommand(
		newConvertCmd(a, "mono", "Convert to the Mono format", convertMono),
		newConvertCmd(a, "prim", "Convert to the Primordial format", convertPrimordial),
		newConvertCmd(a, "kidua", "Convert to the Kidua format", convertKidua),
		newConvertCmd(a, "all", "Convert to every format", convertAll),
	)
	return root
}

// setup loads the config and brings up logging, metrics and InfluxDB.
func (a *app) setup(ctx context.Context) error {
	a.started = time.Now()

	configErr := config.Load(a.configDir)
	if a.logLevel != "" {
		viper.Set("logLevel", a.logLevel)
	}

	logsDir := viper.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs dir: %w", err)
	}
	logPath := logging.LogFilePath(logsDir, AppName, a.started)
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	a.logFile = f

	a.logManager = logging.NewManager(a.console)
	if viper.GetBool("graylog.enabled") {
		if err := a.logManager.ConnectGraylog(viper.GetString("graylog.address")); err != nil {
			fmt.Fprintf(os.Stderr, "Graylog disabled: %v\n", err)
		}
	}
	a.logManager.Setup(a.logFile, viper.GetString("logLevel"))
	a.log = a.logManager.Logger()

	if configErr != nil {
		a.log.Warn().Err(configErr).Msg("Failed to load config, using defaults!")
	} else {
		a.log.Info().Str("path", viper.ConfigFileUsed()).Msg("Loaded config")
	}
	a.log.Debug().Str("version", Version).Str("build", BuildDate).Str("logFile", logPath).Msg("Starting")

	if err := a.setupOTel(ctx); err != nil {
		// the subcommand will not run, so nothing else closes the log file
		return errors.Join(err, a.teardown(ctx))
	}
	a.setupInflux(ctx)
	return nil
}

func (a *app) setupOTel(ctx context.Context) error {
	cfg := config.GetOTelConfig()
	otelCfg := intOtel.Config{
		Enabled:        cfg.Enabled,
		ServiceName:    cfg.ServiceName,
		ExportInterval: cfg.ExportInterval,
		Endpoint:       cfg.Endpoint,
	}
	if cfg.Enabled && cfg.OutputPath != "" {
		f, err := os.OpenFile(cfg.OutputPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("failed to open metrics file: %w", err)
		}
		a.metricsFile = f
		otelCfg.MetricWriter = f
	}

	p, err := intOtel.New(ctx, otelCfg)
	if err != nil {
		return fmt.Errorf("failed to set up OpenTelemetry: %w", err)
	}
	a.otel = p
	if p.Enabled() {
		a.log.Info().Str("metrics", cfg.OutputPath).Str("traces", cfg.Endpoint).Msg("OpenTelemetry enabled")
	}
	return nil
}

// setupInflux connects to InfluxDB when enabled. Failures only cost the
// statistics, so they are logged and the run goes on.
func (a *app) setupInflux(ctx context.Context) {
	backupPath := viper.GetString("influx.backupPath")
	if backupPath == "" {
		backupPath = filepath.Join(viper.GetString("logsDir"),
			fmt.Sprintf("%s.influx.%s.lp.gz", AppName, a.started.Format("20060102_150405")))
	}

	m := influx.NewManager(a.log, backupPath)
	err := m.Connect(ctx)
	switch {
	case errors.Is(err, influx.ErrDisabled):
		return
	case err != nil:
		a.log.Warn().Err(err).Msg("InfluxDB unavailable, statistics will not be written")
		return
	}
	a.influx = m
}

// teardown flushes and closes everything setup opened. It runs after every
// subcommand, whether it failed or not, and after a failed setup. Closed
// resources are cleared, so calling it twice is safe.
func (a *app) teardown(ctx context.Context) error {
	var errs []error
	if a.influx != nil {
		errs = append(errs, a.influx.Close())
		a.influx = nil
	}
	if a.otel != nil {
		errs = append(errs, a.otel.Shutdown(ctx))
		a.otel = nil
	}
	if a.metricsFile != nil {
		errs = append(errs, a.metricsFile.Close())
		a.metricsFile = nil
	}
	if a.logManager != nil {
		a.log.Debug().Dur("elapsed", time.Since(a.started)).Msg("Shutting down")
		errs = append(errs, a.logManager.Close())
		a.logManager = nil
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
		a.logFile = nil
	}
	return errors.Join(errs...)
}
