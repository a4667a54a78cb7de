package worker

import (
	"context"
	"fmt"

	"github.com/lineup-tools/nadeconv/internal/dispatcher"
	"github.com/lineup-tools/nadeconv/pkg/core"
	"golang.org/x/sync/errgroup"
)

// RegisterHandlers registers one handler per target format with the dispatcher.
func (m *Manager) RegisterHandlers(d *dispatcher.Dispatcher) {
	d.Register(CommandMono, m.handle(m.deps.Converter.ConvertMono), dispatcher.Logged())
	d.Register(CommandPrimordial, m.handle(m.deps.Converter.ConvertPrimordial), dispatcher.Logged())
	d.Register(CommandKidua, m.handle(m.deps.Converter.ConvertKidua), dispatcher.Logged())
}

func (m *Manager) handle(convert func(context.Context, core.Collection) (core.Conversion, error)) dispatcher.HandlerFunc {
	return func(ctx context.Context, e dispatcher.Event) (any, error) {
		conv, err := convert(ctx, e.Collection)
		return conv, err
	}
}

// Run dispatches every command concurrently for c and returns the conversions
// in command order. Formats share nothing mutable, so the first failure
// cancels the rest.
func (m *Manager) Run(ctx context.Context, d *dispatcher.Dispatcher, commands []string, c core.Collection) ([]core.Conversion, error) {
	results := make([]core.Conversion, len(commands))

	g, ctx := errgroup.WithContext(ctx)
	for i, cmd := range commands {
		i, cmd := i, cmd
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := d.Dispatch(ctx, dispatcher.Event{Command: cmd, Collection: c})
			if err != nil {
				return fmt.Errorf("%s: %w", cmd, err)
			}
			conv, ok := res.(core.Conversion)
			if !ok {
				return fmt.Errorf("%s: unexpected result %T", cmd, res)
			}
			results[i] = conv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	m.deps.Logger.Debug().Strs("commands", commands).Msg("All conversions finished")
	return results, nil
}
