package core

import "time"

// Run describes one conversion of a source document.
// ID is assigned by storage backends that persist runs.
type Run struct {
	ID        uint
	Source    string
	StartedAt time.Time
	Maps      int
	Lineups   int
}
