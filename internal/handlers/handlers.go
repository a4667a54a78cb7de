package handlers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lineup-tools/nadeconv/internal/export/kidua"
	"github.com/lineup-tools/nadeconv/internal/export/mono"
	"github.com/lineup-tools/nadeconv/internal/export/primordial"
	"github.com/lineup-tools/nadeconv/internal/influx"
	"github.com/lineup-tools/nadeconv/internal/storage"
	"github.com/lineup-tools/nadeconv/internal/util"
	"github.com/lineup-tools/nadeconv/pkg/core"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/lineup-tools/nadeconv/internal/handlers"

// ErrNoRun is returned when converting before StartRun
var ErrNoRun = errors.New("no run started")

// RunContext holds the current run
type RunContext struct {
	mu  sync.RWMutex
	Run *core.Run
}

// NewRunContext creates an empty RunContext
func NewRunContext() *RunContext {
	return &RunContext{}
}

// GetRun returns the current run, or nil before StartRun
func (rc *RunContext) GetRun() *core.Run {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.Run
}

// SetRun sets the current run
func (rc *RunContext) SetRun(run *core.Run) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.Run = run
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Backend storage.Backend
	Logger  zerolog.Logger
	Influx  *influx.Manager // optional
	Mono    mono.Options
	Kidua   kidua.Options
}

// Service converts collections to the target formats and records the results
// in the storage backend.
type Service struct {
	deps Dependencies
	ctx  *RunContext

	converted metric.Int64Counter
	rejected  metric.Int64Counter
	tracer    trace.Tracer
}

// NewService creates a new handler service. Instruments come from the global
// meter and tracer providers.
func NewService(deps Dependencies, ctx *RunContext) (*Service, error) {
	m := otel.Meter(instrumentationName)

	converted, err := m.Int64Counter("lineups.converted",
		metric.WithDescription("Lineups written to a target format"),
	)
	if err != nil {
		return nil, fmt.Errorf("create lineups.converted counter: %w", err)
	}
	rejected, err := m.Int64Counter("lineups.rejected",
		metric.WithDescription("Lineups a target format could not represent"),
	)
	if err != nil {
		return nil, fmt.Errorf("create lineups.rejected counter: %w", err)
	}

	return &Service{
		deps:      deps,
		ctx:       ctx,
		converted: converted,
		rejected:  rejected,
		tracer:    otel.Tracer(instrumentationName),
	}, nil
}

// StartRun registers a run for source and stores its source lineups.
func (s *Service) StartRun(source string, c core.Collection) (*core.Run, error) {
	run := &core.Run{
		Source:    source,
		StartedAt: time.Now().UTC(),
		Maps:      len(c),
		Lineups:   c.Total(),
	}
	if err := s.deps.Backend.StartRun(run); err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}
	for _, mapName := range c.Maps() {
		if err := s.deps.Backend.RecordLineups(mapName, c[mapName]); err != nil {
			return nil, fmt.Errorf("failed to record lineups of %s: %w", mapName, err)
		}
	}
	s.ctx.SetRun(run)

	s.deps.Logger.Info().
		Uint("run", run.ID).
		Str("source", source).
		Int("maps", run.Maps).
		Int("lineups", run.Lineups).
		Msg("Run started")
	return run, nil
}

// ConvertMono builds and records the Mono export of c
func (s *Service) ConvertMono(ctx context.Context, c core.Collection) (core.Conversion, error) {
	return s.convert(ctx, core.FormatMono, func() core.Conversion {
		return mono.Build(c, s.deps.Mono)
	})
}

// ConvertPrimordial builds and records the Primordial export of c
func (s *Service) ConvertPrimordial(ctx context.Context, c core.Collection) (core.Conversion, error) {
	return s.convert(ctx, core.FormatPrimordial, func() core.Conversion {
		return primordial.Build(c)
	})
}

// ConvertKidua builds and records the Kidua export of c
func (s *Service) ConvertKidua(ctx context.Context, c core.Collection) (core.Conversion, error) {
	return s.convert(ctx, core.FormatKidua, func() core.Conversion {
		return kidua.Build(c, s.deps.Kidua)
	})
}

func (s *Service) convert(ctx context.Context, format core.Format, build func() core.Conversion) (core.Conversion, error) {
	if s.ctx.GetRun() == nil {
		return core.Conversion{}, ErrNoRun
	}

	ctx, span := s.tracer.Start(ctx, "convert."+string(format),
		trace.WithAttributes(attribute.String("format", string(format))),
	)
	defer span.End()

	conv := build()
	span.SetAttributes(
		attribute.Int("lineups.converted", conv.Total),
		attribute.Int("lineups.rejected", conv.Rejections.Total()),
		attribute.Int("documents", len(conv.Documents)),
	)

	if err := s.record(ctx, conv); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return conv, err
	}
	return conv, nil
}

// record writes the documents and rejection tally of conv and reports it to
// the logger, the metrics and InfluxDB.
func (s *Service) record(ctx context.Context, conv core.Conversion) error {
	log := s.deps.Logger.With().Str("format", string(conv.Format)).Logger()
	formatAttr := attribute.String("format", string(conv.Format))

	for _, f := range conv.Failures {
		log.Debug().Str("map", f.Map).Str("to", f.Lineup.To).Err(f.Err).Msg("Lineup rejected")
		s.rejected.Add(ctx, 1, metric.WithAttributes(formatAttr, attribute.String("reason", reasonOf(f.Err))))
	}

	for _, mapName := range util.SortedKeys(conv.PerMap) {
		n := conv.PerMap[mapName]
		log.Info().Str("map", mapName).Int("nades", n).Msg("Converted map")
		s.converted.Add(ctx, int64(n), metric.WithAttributes(formatAttr, attribute.String("map", mapName)))
	}

	var errs []error
	for _, doc := range conv.Documents {
		if err := s.deps.Backend.WriteDocument(conv.Format, doc); err != nil {
			errs = append(errs, fmt.Errorf("failed to write %s: %w", doc.Path, err))
		}
	}
	if err := s.deps.Backend.RecordRejections(conv.Format, conv.Rejections); err != nil {
		errs = append(errs, fmt.Errorf("failed to record rejections: %w", err))
	}

	if s.deps.Influx != nil {
		if err := s.deps.Influx.WriteConversion(conv, time.Now()); err != nil {
			// statistics are best effort
			log.Warn().Err(err).Msg("Failed to write conversion statistics")
		}
	}

	log.Info().
		Int("total", conv.Total).
		Int("skipped", conv.Skipped).
		Int("rejected", conv.Rejections.Total()).
		Int("documents", len(conv.Documents)).
		Msg("Conversion finished")

	return errors.Join(errs...)
}

// reasonOf returns the reason text of a rejection without its detail, keeping
// metric attributes low-cardinality.
func reasonOf(err error) string {
	var r *core.Rejection
	if errors.As(err, &r) {
		return r.Reason.String()
	}
	return core.ReasonUnknown.String()
}
