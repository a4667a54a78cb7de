package dispatcher

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lineup-tools/nadeconv/pkg/core"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// testLogger implements Logger for testing
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) log(level, msg string, keysAndValues []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("%s: %s %v", level, msg, keysAndValues))
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) { l.log("DEBUG", msg, keysAndValues) }
func (l *testLogger) Info(msg string, keysAndValues ...any)  { l.log("INFO", msg, keysAndValues) }
func (l *testLogger) Warn(msg string, keysAndValues ...any)  { l.log("WARN", msg, keysAndValues) }
func (l *testLogger) Error(msg string, keysAndValues ...any) { l.log("ERROR", msg, keysAndValues) }

func (l *testLogger) has(prefix string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, msg := range l.messages {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *testLogger) {
	logger := &testLogger{}

	d, err := New(logger)
	if err != nil {
		t.Fatalf("failed to create dispatcher: %v", err)
	}

	return d, logger
}

func testCollection() core.Collection {
	return core.Collection{"de_dust2": {{From: "A", To: "B", Weapon: "weapon_hegrenade"}}}
}

func TestDispatcher_Handler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var got Event
	d.Register("mono", func(_ context.Context, e Event) (any, error) {
		got = e
		return "result", nil
	})

	result, err := d.Dispatch(context.Background(), Event{Command: "mono", Collection: testCollection()})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result != "result" {
		t.Errorf("expected 'result', got %v", result)
	}
	if got.Collection.Total() != 1 {
		t.Errorf("expected collection with 1 lineup, got %d", got.Collection.Total())
	}
	if got.Timestamp.IsZero() {
		t.Error("expected dispatch to stamp the event")
	}
}

func TestDispatcher_KeepsTimestamp(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	var got time.Time
	d.Register("kidua", func(_ context.Context, e Event) (any, error) {
		got = e.Timestamp
		return nil, nil
	})
	_, _ = d.Dispatch(context.Background(), Event{Command: "kidua", Timestamp: ts})

	if !got.Equal(ts) {
		t.Errorf("expected %v, got %v", ts, got)
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), Event{Command: "unknown"})

	if err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestDispatcher_LoggedHandler(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register("mono", func(_ context.Context, e Event) (any, error) {
		return "ok", nil
	}, Logged())

	_, _ = d.Dispatch(context.Background(), Event{Command: "mono", Collection: testCollection()})

	logger.mu.Lock()
	n := len(logger.messages)
	logger.mu.Unlock()

	if n != 2 {
		t.Errorf("expected 2 log messages, got %d", n)
	}
	if logger.has("WARN") {
		t.Error("unexpected warning for non-empty collection")
	}
}

func TestDispatcher_LoggedHandlerEmptyCollection(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register("mono", func(_ context.Context, e Event) (any, error) {
		return "ok", nil
	}, Logged())

	_, _ = d.Dispatch(context.Background(), Event{Command: "mono", Collection: core.Collection{}})

	if !logger.has("WARN: event has no lineups") {
		t.Error("expected warning for empty collection")
	}
}

func TestDispatcher_LoggedHandlerError(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register("prim", func(_ context.Context, e Event) (any, error) {
		return nil, fmt.Errorf("test error")
	}, Logged())

	_, err := d.Dispatch(context.Background(), Event{Command: "prim", Collection: testCollection()})
	if err == nil {
		t.Fatal("expected handler error")
	}

	if !logger.has("ERROR") {
		t.Error("expected error log message")
	}
}

func TestDispatcher_HasHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register("mono", func(context.Context, Event) (any, error) { return nil, nil })

	if !d.HasHandler("mono") {
		t.Error("expected handler to exist")
	}

	if d.HasHandler("kidua") {
		t.Error("expected handler to not exist")
	}
}

func TestDispatcher_Commands(t *testing.T) {
	d, _ := newTestDispatcher(t)
	noop := func(context.Context, Event) (any, error) { return nil, nil }

	d.Register("primordial", noop)
	d.Register("kidua", noop)
	d.Register("mono", noop)

	got := strings.Join(d.Commands(), ",")
	if got != "kidua,mono,primordial" {
		t.Errorf("unexpected commands: %s", got)
	}
}

func TestDispatcher_ConcurrentDispatch(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var mu sync.Mutex
	seen := map[string]int{}
	handler := func(_ context.Context, e Event) (any, error) {
		mu.Lock()
		seen[e.Command]++
		mu.Unlock()
		return nil, nil
	}
	for _, cmd := range []string{"mono", "primordial", "kidua"} {
		d.Register(cmd, handler, Logged())
	}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(cmd string) {
			defer wg.Done()
			_, _ = d.Dispatch(context.Background(), Event{Command: cmd, Collection: testCollection()})
		}([]string{"mono", "primordial", "kidua"}[i%3])
	}
	wg.Wait()

	for _, cmd := range []string{"mono", "primordial", "kidua"} {
		if seen[cmd] != 10 {
			t.Errorf("expected 10 events for %s, got %d", cmd, seen[cmd])
		}
	}
}

func TestDispatcher_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	t.Cleanup(func() {
		otel.SetMeterProvider(prev)
		_ = provider.Shutdown(context.Background())
	})

	d, _ := newTestDispatcher(t)
	d.Register("ok", func(context.Context, Event) (any, error) { return nil, nil })
	d.Register("bad", func(context.Context, Event) (any, error) { return nil, fmt.Errorf("boom") })

	_, _ = d.Dispatch(context.Background(), Event{Command: "ok"})
	_, _ = d.Dispatch(context.Background(), Event{Command: "ok"})
	_, _ = d.Dispatch(context.Background(), Event{Command: "bad"})

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if data, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}

	if sums["dispatcher.events.processed"] != 2 {
		t.Errorf("expected 2 processed, got %d", sums["dispatcher.events.processed"])
	}
	if sums["dispatcher.events.failed"] != 1 {
		t.Errorf("expected 1 failed, got %d", sums["dispatcher.events.failed"])
	}
}
