package parser

import (
	"encoding/json"
	"math"

	"github.com/lineup-tools/nadeconv/internal/util"
	"github.com/lineup-tools/nadeconv/pkg/core"
)

// tickTolerance is how far run and delay may stray from a whole tick count.
const tickTolerance = 1e-7

// ParseLineup validates one source entry and builds a core.Lineup from it.
// The entry is a decoded JSON/YAML value; anything that is not an object is rejected
// as having no name. Rules are applied in order and the first failure is returned
// as a *core.Rejection.
func ParseLineup(entry any) (core.Lineup, error) {
	var l core.Lineup

	// name: [from, to]
	name := field(entry, "name")
	from, ok := asString(index(name, 0))
	if !ok {
		return core.Lineup{}, core.ErrNoFrom
	}
	to, ok := asString(index(name, 1))
	if !ok {
		return core.Lineup{}, core.ErrNoTo
	}
	l.From, l.To = from, to

	l.Description, _ = asString(field(entry, "description"))

	if l.Weapon, ok = asString(field(entry, "weapon")); !ok {
		return core.Lineup{}, core.ErrNoWeapon
	}

	// position: [x, y, z]
	position := field(entry, "position")
	if l.Position.X, ok = asFloat(index(position, 0)); !ok {
		return core.Lineup{}, core.ErrNoX
	}
	if l.Position.Y, ok = asFloat(index(position, 1)); !ok {
		return core.Lineup{}, core.ErrNoY
	}
	if l.Position.Z, ok = asFloat(index(position, 2)); !ok {
		return core.Lineup{}, core.ErrNoZ
	}

	// viewangles: [pitch, yaw], yaw is checked first
	viewangles := field(entry, "viewangles")
	if l.Yaw, ok = asFloat(index(viewangles, 1)); !ok {
		return core.Lineup{}, core.ErrNoYaw
	}
	if l.Pitch, ok = asFloat(index(viewangles, 0)); !ok {
		return core.Lineup{}, core.ErrNoPitch
	}

	l.Duck = boolOr(field(entry, "duck"), false)

	// every grenade setting is optional, as is the object itself
	grenade := field(entry, "grenade")
	l.Strength = floatOr(field(grenade, "strength"), 1.0)
	l.Jump = boolOr(field(grenade, "jump"), false)

	run, err := parseTicks(field(grenade, "run"), core.ErrRunNotInteger, core.ErrRunNegative, core.ErrRunTooLarge)
	if err != nil {
		return core.Lineup{}, err
	}
	l.Run = run

	l.RunYaw = floatOr(field(grenade, "run_yaw"), 0)
	l.RunSpeed = boolOr(field(grenade, "run_speed"), false)
	l.RecoveryYaw = floatOr(field(grenade, "recovery_yaw"), l.RunYaw-180)
	l.RecoveryJump = boolOr(field(grenade, "recovery_jump"), false)

	delay, err := parseTicks(field(grenade, "delay"), core.ErrDelayNotInteger, core.ErrDelayNegative, core.ErrDelayTooLarge)
	if err != nil {
		return core.Lineup{}, err
	}
	l.Delay = delay

	return l, nil
}

// parseTicks reads an optional tick count. Missing values default to zero.
// Values must be whole within tickTolerance, non-negative and at most core.MaxTicks;
// they are rejected, never rounded beyond that tolerance.
func parseTicks(v any, notInteger, negative, tooLarge *core.Rejection) (core.Ticks, error) {
	f := floatOr(v, 0)
	// also catches NaN and ±Inf
	if !util.NearInteger(f, tickTolerance) {
		return 0, notInteger
	}
	if f < 0 {
		return 0, negative
	}
	if math.Round(f) > float64(core.MaxTicks) {
		return 0, tooLarge
	}
	return core.Ticks(math.Round(f)), nil
}

// field returns obj[key], or nil when obj is not an object or has no such key.
func field(obj any, key string) any {
	switch m := obj.(type) {
	case map[string]any:
		return m[key]
	case map[any]any:
		return m[key]
	}
	return nil
}

// index returns arr[i], or nil when arr is not a sequence or is too short.
func index(arr any, i int) any {
	s, ok := arr.([]any)
	if !ok || i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asFloat accepts every numeric representation the JSON and YAML decoders produce.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func floatOr(v any, def float64) float64 {
	if f, ok := asFloat(v); ok {
		return f
	}
	return def
}

func boolOr(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}
