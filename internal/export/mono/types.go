// Package mono contains the compact "mono" playback format.
// Documents are grouped by map, then by weapon short code.
package mono

// Nade is one lineup in mono format
type Nade struct {
	N     string  `json:"n"` // display name
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	St    int     `json:"st"`  // strength, 0..2
	Tr    float64 `json:"tr"`  // run time in seconds
	Jtt   float64 `json:"jtt"` // delay before release in seconds
	Rt    float64 `json:"rt"`  // recovery time in seconds
	M     string  `json:"m"`   // movement: direction code + j (jump) + d (duck)
	R     string  `json:"r"`   // recovery: direction code + j (jump)
}

// Export is the root JSON structure: map name -> weapon short code -> nades
type Export map[string]map[string][]Nade
