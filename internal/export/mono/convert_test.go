package mono

import (
	"encoding/json"
	"testing"

	"github.com/lineup-tools/nadeconv/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseLineup() core.Lineup {
	return core.Lineup{
		From:        "A",
		To:          "B",
		Weapon:      "weapon_hegrenade",
		Position:    core.Position3D{X: 0, Y: 0, Z: 0},
		Yaw:         90,
		Pitch:       0,
		Strength:    1.0,
		RecoveryYaw: -180,
	}
}

func TestConvert_Instant(t *testing.T) {
	nade, err := Convert(baseLineup())
	require.NoError(t, err)

	assert.Equal(t, Nade{
		N:   "B",
		Yaw: 90,
		St:  2,
		Tr:  0,
		Jtt: 0,
		Rt:  0.5,
		M:   "f",
		R:   "b",
	}, nade)
}

func TestConvert_RunningRight(t *testing.T) {
	l := baseLineup()
	l.Run = 64
	l.RunYaw = 90
	l.RecoveryYaw = l.RunYaw - 180

	nade, err := Convert(l)
	require.NoError(t, err)

	assert.Equal(t, "r", nade.M)
	assert.Equal(t, "l", nade.R)
	assert.Equal(t, 1.0, nade.Tr)
	assert.Equal(t, 0.0, nade.Jtt)
	assert.Equal(t, 0.5, nade.Rt)
}

func TestConvert_Fields(t *testing.T) {
	l := core.Lineup{
		To:           "Window",
		Description:  "one-way",
		Weapon:       "weapon_molotov",
		Position:     core.Position3D{X: 1.5, Y: -2.5, Z: 3},
		Yaw:          -136.25,
		Pitch:        -1.5,
		Duck:         true,
		Strength:     0.5,
		Jump:         true,
		Run:          12,
		RunYaw:       -90,
		RecoveryYaw:  0,
		RecoveryJump: true,
		Delay:        32,
	}

	nade, err := Convert(l)
	require.NoError(t, err)

	assert.Equal(t, Nade{
		N:     "Window (one-way)",
		X:     1.5,
		Y:     -2.5,
		Z:     3,
		Yaw:   -136.25,
		Pitch: -1.5,
		St:    1,
		Tr:    12.0 / 64,
		Jtt:   0.5,
		Rt:    0.5, // "fj" is not a plain forward recovery
		M:     "ljd",
		R:     "fj",
	}, nade)
}

func TestConvert_ForwardRecoveryHasNoRecoveryTime(t *testing.T) {
	l := baseLineup()
	l.RunYaw = 180
	l.RecoveryYaw = 0

	nade, err := Convert(l)
	require.NoError(t, err)
	assert.Equal(t, "b", nade.M)
	assert.Equal(t, "f", nade.R)
	assert.Equal(t, 0.0, nade.Rt)
}

func TestConvert_Strength(t *testing.T) {
	tests := []struct {
		strength float64
		want     int
	}{
		{1.0, 2},
		{0.5, 1},
		{0.0, 0},
		{0.75, 1},
		{0.25, 0},
	}
	for _, tt := range tests {
		l := baseLineup()
		l.Strength = tt.strength
		nade, err := Convert(l)
		require.NoError(t, err)
		assert.Equal(t, tt.want, nade.St, "strength %v", tt.strength)
	}
}

func TestConvert_Directions(t *testing.T) {
	tests := []struct {
		yaw  float64
		want string
	}{
		{0, "f"},
		{90, "r"},
		{180, "b"},
		{-90, "l"},
		{-180, "b"},
	}
	for _, tt := range tests {
		l := baseLineup()
		l.RunYaw = tt.yaw
		l.RecoveryYaw = 0
		nade, err := Convert(l)
		require.NoError(t, err)
		assert.Equal(t, tt.want, nade.M, "run yaw %v", tt.yaw)
	}
}

func TestConvert_RecoveryYawIsTruncated(t *testing.T) {
	l := baseLineup()
	l.RecoveryYaw = 90.7

	nade, err := Convert(l)
	require.NoError(t, err)
	assert.Equal(t, "r", nade.R)
}

func TestConvert_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(l *core.Lineup)
		want    error
		message string
	}{
		{
			name:    "run speed",
			modify:  func(l *core.Lineup) { l.RunSpeed = true },
			want:    core.ErrRunSpeed,
			message: "run speed is not supported",
		},
		{
			name:    "non-integer run yaw",
			modify:  func(l *core.Lineup) { l.RunYaw = 90.5 },
			want:    core.ErrRunYawNotInteger,
			message: "run yaw is non-integer: 90.5",
		},
		{
			name:    "unknown run direction",
			modify:  func(l *core.Lineup) { l.RunYaw = 45; l.RecoveryYaw = -135 },
			want:    core.ErrUnknownDirection,
			message: "unknown run direction: 45",
		},
		{
			name:    "unknown recovery direction",
			modify:  func(l *core.Lineup) { l.RecoveryYaw = 270 },
			want:    core.ErrUnknownDirection,
			message: "unknown run direction: 270",
		},
		{
			name:    "run speed checked first",
			modify:  func(l *core.Lineup) { l.RunSpeed = true; l.RunYaw = 45.5 },
			want:    core.ErrRunSpeed,
			message: "run speed is not supported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := baseLineup()
			tt.modify(&l)
			_, err := Convert(l)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestConvert_Deterministic(t *testing.T) {
	a := baseLineup()
	a.Description = "same"
	a.Run = 20
	b := a

	na, err := Convert(a)
	require.NoError(t, err)
	nb, err := Convert(b)
	require.NoError(t, err)

	ja, err := json.Marshal(na)
	require.NoError(t, err)
	jb, err := json.Marshal(nb)
	require.NoError(t, err)
	assert.Equal(t, ja, jb)
}

func TestWeaponCode(t *testing.T) {
	code, ok := WeaponCode("weapon_molotov")
	assert.True(t, ok)
	assert.Equal(t, "fire", code)

	code, ok = WeaponCode("weapon_hegrenade")
	assert.True(t, ok)
	assert.Equal(t, "he", code)

	for _, w := range []string{"weapon_smokegrenade", "weapon_flashbang", "weapon_incgrenade", "weapon_decoy", ""} {
		_, ok := WeaponCode(w)
		assert.False(t, ok, w)
	}
}
