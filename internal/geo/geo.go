package geo

import (
	"math"

	"github.com/lineup-tools/nadeconv/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// NormalizeYaw folds an angle in degrees into [0, 360).
func NormalizeYaw(yaw float64) float64 {
	yaw = math.Mod(yaw, 360)
	if yaw < 0 {
		yaw += 360
	}
	// -1e-15 + 360 rounds up to 360
	if yaw >= 360 {
		yaw -= 360
	}
	return yaw
}

// PointFromPosition converts a core.Position3D to an XYZ geom.Point.
// Game units are stored as-is; there is no spatial reference to convert from.
func PointFromPosition(p core.Position3D) geom.Point {
	return geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: p.X, Y: p.Y},
			Z:    p.Z,
			Type: geom.DimXYZ,
		},
	)
}

// PositionFromPoint converts a geom.Point back to a core.Position3D.
// Empty points yield the zero position.
func PositionFromPoint(p geom.Point) core.Position3D {
	coord, ok := p.Coordinates()
	if !ok {
		return core.Position3D{}
	}
	return core.Position3D{X: coord.XY.X, Y: coord.XY.Y, Z: coord.Z}
}
