package primordial

import (
	"github.com/lineup-tools/nadeconv/internal/geo"
	"github.com/lineup-tools/nadeconv/pkg/core"
)

// availability maps a weapon console name to its category flags
func availability(weapon string) (Availability, error) {
	switch weapon {
	case "weapon_molotov", "weapon_incgrenade":
		return Availability{Fire: true}, nil
	case "weapon_hegrenade":
		return Availability{Explosive: true}, nil
	case "weapon_smokegrenade":
		return Availability{Smoke: true}, nil
	case "weapon_flashbang":
		return Availability{Flash: true}, nil
	}
	return Availability{}, core.Reject(core.ReasonUnknownWeapon, weapon)
}

// throwDelay is the tick at which the grenade leaves the hand, counted from
// the start of the run.
func throwDelay(l core.Lineup) core.Ticks {
	if l.Delay == 0 {
		return l.Run
	}
	return l.Run + l.Delay - 1
}

// Convert maps a lineup to primordial format
func Convert(l core.Lineup) (Nade, error) {
	if l.Run == 0 {
		return Nade{}, core.ErrNotRunning
	}
	if l.RunSpeed {
		return Nade{}, core.ErrRunSpeed
	}
	if l.Jump && l.Delay == 0 {
		return Nade{}, core.ErrJumpWithoutDelay
	}
	if l.Duck {
		return Nade{}, core.ErrDuck
	}
	avail, err := availability(l.Weapon)
	if err != nil {
		return Nade{}, err
	}

	return Nade{
		Angle:               Angle{X: l.Pitch, Y: l.Yaw},
		Availability:        avail,
		DelayThrowTicks:     throwDelay(l),
		JumpThrow:           l.Jump,
		JumpThrowDelayTicks: l.Run,
		Name:                l.DisplayName(),
		Pos:                 l.Position,
		RunDirection:        geo.NormalizeYaw(l.Yaw + l.RunYaw),
		RunTicks:            l.Run,
		ThrowStrength:       l.Strength * 100,
	}, nil
}
