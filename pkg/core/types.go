package core

import "math"

// TickRate is the number of game ticks per second that run and delay counts are expressed in.
const TickRate = 64

// Position3D represents a world coordinate in game units
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Ticks is a non-negative tick count at TickRate
type Ticks uint64

// MaxTicks caps a single run or delay count, so Run+Delay always fits in Ticks.
const MaxTicks Ticks = math.MaxUint32

// Seconds converts the tick count to seconds
func (t Ticks) Seconds() float64 {
	return float64(t) / TickRate
}
