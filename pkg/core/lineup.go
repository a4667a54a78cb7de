package core

import (
	"slices"
)

// Lineup is one documented grenade throw.
// Lineups are plain values: they are never modified after the parser builds them,
// and two lineups with equal fields are interchangeable.
type Lineup struct {
	From        string
	To          string
	Weapon      string // console name, e.g. "weapon_smokegrenade"
	Position    Position3D
	Yaw         float64
	Pitch       float64
	Description string
	Duck        bool // fully crouched at throw time

	Strength     float64 // throw power in [0,1]; 1 = left click, 0.5 = both, 0 = right
	Jump         bool    // jumpthrow at the end of the run
	Run          Ticks   // approach duration
	RunYaw       float64 // movement direction during the run, relative to Yaw
	RunSpeed     bool    // walk (hold speed key) during the run
	RecoveryYaw  float64 // movement direction after the throw, relative to Yaw
	RecoveryJump bool
	Delay        Ticks // hold before releasing
}

// DisplayName returns the destination label, followed by the description in parentheses
// when one is set.
func (l Lineup) DisplayName() string {
	if l.Description == "" {
		return l.To
	}
	return l.To + " (" + l.Description + ")"
}

// Collection holds validated lineups grouped by map name.
type Collection map[string][]Lineup

// Total returns the number of lineups across all maps
func (c Collection) Total() int {
	total := 0
	for _, lineups := range c {
		total += len(lineups)
	}
	return total
}

// Dedup removes exact duplicates, keeping the first occurrence of each lineup.
// The input slice is not modified.
func Dedup(lineups []Lineup) []Lineup {
	seen := make(map[Lineup]struct{}, len(lineups))
	out := make([]Lineup, 0, len(lineups))
	for _, l := range lineups {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Maps returns the map names in lexical order
func (c Collection) Maps() []string {
	var keys []string
	for k := range c {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
