package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRejection_Error(t *testing.T) {
	assert.Equal(t, "no from", ErrNoFrom.Error())
	assert.Equal(t, "unknown run direction: 45", Reject(ReasonUnknownDirection, 45.0).Error())
	assert.Equal(t, "unknown run direction: -90.5", Reject(ReasonUnknownDirection, -90.5).Error())
	assert.Equal(t, "unsupported weapon: weapon_decoy", Reject(ReasonUnsupportedWeapon, "weapon_decoy").Error())
	assert.Equal(t, "unsupported weapon: ", Reject(ReasonUnsupportedWeapon, "").Error())
	assert.Equal(t, "unknown weapon: ", Reject(ReasonUnknownWeapon, "").Error())
	assert.Equal(t, "run is too large", ErrRunTooLarge.Error())
}

func TestRejection_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Reject(ReasonUnknownWeapon, "weapon_decoy"))

	assert.True(t, errors.Is(err, ErrUnknownWeapon))
	assert.False(t, errors.Is(err, ErrUnsupportedWeapon))
	assert.False(t, errors.Is(err, errors.New("unknown weapon")))

	var rej *Rejection
	assert.True(t, errors.As(err, &rej))
	assert.Equal(t, ReasonUnknownWeapon, rej.Reason)
	assert.True(t, errors.Is(Reject(ReasonUnsupportedWeapon, ""), ErrUnsupportedWeapon))
	assert.Equal(t, "weapon_decoy", rej.Detail)
}

func TestReason_String(t *testing.T) {
	for r := ReasonUnknown; r <= ReasonUnsupportedWeapon; r++ {
		assert.NotContains(t, r.String(), "Reason(", "reason %d has no text", int(r))
	}
	assert.Equal(t, "Reason(999)", Reason(999).String())
}

func TestTally(t *testing.T) {
	tally := Tally{}
	tally.Add(ErrRun)
	tally.Add(ErrRun)
	tally.Add(Reject(ReasonUnsupportedWeapon, "weapon_decoy"))
	tally.Add(ErrDelay)

	other := Tally{"delay is not supported": 2, "no from": 1}
	tally.Merge(other)

	assert.Equal(t, Tally{
		"run is not supported":             2,
		"delay is not supported":           3,
		"unsupported weapon: weapon_decoy": 1,
		"no from":                          1,
	}, tally)
	assert.Equal(t, 7, tally.Total())
	assert.Equal(t,
		"delay is not supported: 3\n"+
			"run is not supported: 2\n"+
			"no from: 1\n"+
			"unsupported weapon: weapon_decoy: 1\n",
		tally.String())
	assert.Equal(t, []string{
		"delay is not supported",
		"run is not supported",
		"no from",
		"unsupported weapon: weapon_decoy",
	}, tally.Messages())
	assert.Empty(t, Tally{}.Messages())
	assert.Equal(t, "", Tally{}.String())
}
