// Package primordial builds per-map nade files for the primordial playback tool.
// It only accepts running throws; each map gets its own document with lineups
// keyed by dense string indices.
package primordial

import "github.com/lineup-tools/nadeconv/pkg/core"

// Angle is the view angle at release
type Angle struct {
	X float64 `json:"x"` // pitch
	Y float64 `json:"y"` // yaw
}

// Availability flags the grenade category. Exactly one flag is set.
type Availability struct {
	Fire      bool `json:"fire"`
	Explosive bool `json:"explosive"`
	Smoke     bool `json:"smoke"`
	Flash     bool `json:"flash"`
}

// Nade is one lineup in primordial format
type Nade struct {
	Angle               Angle           `json:"angle"`
	Availability        Availability    `json:"availability"`
	DelayThrowTicks     core.Ticks      `json:"delay throw ticks"`
	JumpThrow           bool            `json:"jump throw"`
	JumpThrowDelayTicks core.Ticks      `json:"jump throw delay ticks"`
	Name                string          `json:"name"`
	Pos                 core.Position3D `json:"pos"`
	RunDirection        float64         `json:"run direction"`
	RunTicks            core.Ticks      `json:"run ticks"`
	ThrowStrength       float64         `json:"throw strength"`
}

// Export is the body of a single map document: index -> nade.
// Indices are assigned after filtering, so they are contiguous from "0".
type Export map[string]Nade
