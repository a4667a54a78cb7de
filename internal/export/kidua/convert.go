package kidua

import (
	"slices"

	"github.com/lineup-tools/nadeconv/pkg/core"
)

// weapons is ordered: the index of a weapon is its code
var weapons = []string{
	"weapon_flashbang",
	"weapon_hegrenade",
	"weapon_smokegrenade",
	"weapon_molotov",
}

// WeaponCode returns the numeric kidua code for a weapon console name
func WeaponCode(weapon string) (int, error) {
	code := slices.Index(weapons, weapon)
	if code < 0 {
		return 0, core.Reject(core.ReasonUnsupportedWeapon, weapon)
	}
	return code, nil
}

// Convert maps a lineup to kidua format
func Convert(l core.Lineup) (Nade, error) {
	if l.Run != 0 {
		return Nade{}, core.ErrRun
	}
	if l.Delay != 0 {
		return Nade{}, core.ErrDelay
	}
	code, err := WeaponCode(l.Weapon)
	if err != nil {
		return Nade{}, err
	}
	return Nade{
		Spot:   l.DisplayName(),
		Origin: l.Position,
		View:   View{X: l.Pitch, Y: l.Yaw},
		Nade:   code,
	}, nil
}
