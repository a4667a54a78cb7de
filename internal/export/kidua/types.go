// Package kidua builds lineup lists for the kidua playback tool, which only
// replays instant throws.
package kidua

import "github.com/lineup-tools/nadeconv/pkg/core"

// View is the view angle at release. Z is always zero.
type View struct {
	X float64 `json:"x"` // pitch
	Y float64 `json:"y"` // yaw
	Z float64 `json:"z"`
}

// Nade is one lineup in kidua format
type Nade struct {
	Spot   string          `json:"spot"`
	Origin core.Position3D `json:"origin"`
	View   View            `json:"view"`
	Nade   int             `json:"nade"` // weapon code, see WeaponCode
}

// Export is the root JSON structure of a kidua document
type Export struct {
	Lineups []Nade `json:"lineups"`
}
