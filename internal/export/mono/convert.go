package mono

import (
	"github.com/lineup-tools/nadeconv/internal/util"
	"github.com/lineup-tools/nadeconv/pkg/core"
)

// runYawTolerance is how far run_yaw may stray from a whole degree.
const runYawTolerance = 1e-6

// weaponCodes maps the weapons mono supports to its short codes.
// Lineups for any other weapon are skipped without being counted as rejections.
var weaponCodes = map[string]string{
	"weapon_molotov":   "fire",
	"weapon_hegrenade": "he",
}

// directions maps whole yaw offsets to movement direction codes.
// Only these exact angles can be played back.
var directions = map[int]string{
	0:    "f",
	90:   "r",
	180:  "b",
	-90:  "l",
	-180: "b",
}

// WeaponCode returns the mono short code for a weapon console name.
func WeaponCode(weapon string) (string, bool) {
	code, ok := weaponCodes[weapon]
	return code, ok
}

func direction(yaw float64) (string, error) {
	dir, ok := directions[int(yaw)]
	if !ok {
		return "", core.Reject(core.ReasonUnknownDirection, yaw)
	}
	return dir, nil
}

// Convert maps a lineup to mono format. It does not check the weapon; see WeaponCode.
func Convert(l core.Lineup) (Nade, error) {
	if l.RunSpeed {
		return Nade{}, core.ErrRunSpeed
	}
	if !util.NearInteger(l.RunYaw, runYawTolerance) {
		return Nade{}, core.Reject(core.ReasonRunYawNotInteger, l.RunYaw)
	}

	run, err := direction(l.RunYaw)
	if err != nil {
		return Nade{}, err
	}
	recovery, err := direction(l.RecoveryYaw)
	if err != nil {
		return Nade{}, err
	}

	m := run
	if l.Jump {
		m += "j"
	}
	if l.Duck {
		m += "d"
	}
	r := recovery
	if l.RecoveryJump {
		r += "j"
	}

	rt := 0.5
	if r == "f" {
		rt = 0
	}

	return Nade{
		N:     l.DisplayName(),
		X:     l.Position.X,
		Y:     l.Position.Y,
		Z:     l.Position.Z,
		Yaw:   l.Yaw,
		Pitch: l.Pitch,
		St:    int(l.Strength * 2),
		Tr:    l.Run.Seconds(),
		Jtt:   l.Delay.Seconds(),
		Rt:    rt,
		M:     m,
		R:     r,
	}, nil
}
