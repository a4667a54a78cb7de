package worker

import (
	"context"

	"github.com/lineup-tools/nadeconv/pkg/core"
	"github.com/rs/zerolog"
)

// Commands understood by the dispatcher, one per target format
const (
	CommandMono       = "mono"
	CommandPrimordial = "primordial"
	CommandKidua      = "kidua"
)

// AllCommands lists every command in output order
var AllCommands = []string{CommandMono, CommandPrimordial, CommandKidua}

// Converter turns a collection into one target format and records the result
type Converter interface {
	ConvertMono(ctx context.Context, c core.Collection) (core.Conversion, error)
	ConvertPrimordial(ctx context.Context, c core.Collection) (core.Conversion, error)
	ConvertKidua(ctx context.Context, c core.Collection) (core.Conversion, error)
}

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	Converter Converter
	Logger    zerolog.Logger
}

// Manager runs conversions through the dispatcher
type Manager struct {
	deps Dependencies
}

// NewManager creates a new worker manager
func NewManager(deps Dependencies) *Manager {
	return &Manager{deps: deps}
}
