package core

import (
	"fmt"
	"slices"
	"strings"
)

// Reason enumerates why a source entry was dropped or a lineup could not be
// emitted in a target format.
type Reason int

const (
	ReasonUnknown Reason = iota

	// parse tier
	ReasonNoFrom
	ReasonNoTo
	ReasonNoWeapon
	ReasonNoX
	ReasonNoY
	ReasonNoZ
	ReasonNoPitch
	ReasonNoYaw
	ReasonRunNotInteger
	ReasonRunNegative
	ReasonDelayNotInteger
	ReasonDelayNegative
	ReasonRunTooLarge
	ReasonDelayTooLarge

	// mapping tier
	ReasonRunSpeed
	ReasonRunYawNotInteger
	ReasonUnknownDirection
	ReasonNotRunning
	ReasonJumpWithoutDelay
	ReasonDuck
	ReasonUnknownWeapon
	ReasonRun
	ReasonDelay
	ReasonUnsupportedWeapon
)

var reasonText = map[Reason]string{
	ReasonUnknown:           "unknown reason",
	ReasonNoFrom:            "no from",
	ReasonNoTo:              "no to",
	ReasonNoWeapon:          "no weapon",
	ReasonNoX:               "no x",
	ReasonNoY:               "no y",
	ReasonNoZ:               "no z",
	ReasonNoPitch:           "no pitch",
	ReasonNoYaw:             "no yaw",
	ReasonRunNotInteger:     "run is not an integer",
	ReasonRunNegative:       "run is negative",
	ReasonDelayNotInteger:   "delay is not an integer",
	ReasonDelayNegative:     "delay is negative",
	ReasonRunTooLarge:       "run is too large",
	ReasonDelayTooLarge:     "delay is too large",
	ReasonRunSpeed:          "run speed is not supported",
	ReasonRunYawNotInteger:  "run yaw is non-integer",
	ReasonUnknownDirection:  "unknown run direction",
	ReasonNotRunning:        "nades not thrown while running are unsupported",
	ReasonJumpWithoutDelay:  "jumping without delay unsupported",
	ReasonDuck:              "ducking is unsupported",
	ReasonUnknownWeapon:     "unknown weapon",
	ReasonRun:               "run is not supported",
	ReasonDelay:             "delay is not supported",
	ReasonUnsupportedWeapon: "unsupported weapon",
}

func (r Reason) String() string {
	if s, ok := reasonText[r]; ok {
		return s
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Rejection is the error returned when a lineup is dropped.
// Detail carries the offending value where one exists (an angle, a weapon name).
type Rejection struct {
	Reason Reason
	Detail string

	detailed bool
}

// Reject builds a Rejection carrying the given detail. The detail is always
// rendered, so an empty weapon name still reads "unsupported weapon: ".
func Reject(reason Reason, detail any) *Rejection {
	return &Rejection{Reason: reason, Detail: fmt.Sprint(detail), detailed: true}
}

func (r *Rejection) Error() string {
	if !r.detailed && r.Detail == "" {
		return r.Reason.String()
	}
	return r.Reason.String() + ": " + r.Detail
}

// Is reports whether target is a Rejection with the same reason. Details are ignored,
// so errors.Is(err, ErrUnknownDirection) matches any direction.
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.Reason == r.Reason
}

var (
	ErrNoFrom            = &Rejection{Reason: ReasonNoFrom}
	ErrNoTo              = &Rejection{Reason: ReasonNoTo}
	ErrNoWeapon          = &Rejection{Reason: ReasonNoWeapon}
	ErrNoX               = &Rejection{Reason: ReasonNoX}
	ErrNoY               = &Rejection{Reason: ReasonNoY}
	ErrNoZ               = &Rejection{Reason: ReasonNoZ}
	ErrNoPitch           = &Rejection{Reason: ReasonNoPitch}
	ErrNoYaw             = &Rejection{Reason: ReasonNoYaw}
	ErrRunNotInteger     = &Rejection{Reason: ReasonRunNotInteger}
	ErrRunNegative       = &Rejection{Reason: ReasonRunNegative}
	ErrDelayNotInteger   = &Rejection{Reason: ReasonDelayNotInteger}
	ErrDelayNegative     = &Rejection{Reason: ReasonDelayNegative}
	ErrRunTooLarge       = &Rejection{Reason: ReasonRunTooLarge}
	ErrDelayTooLarge     = &Rejection{Reason: ReasonDelayTooLarge}
	ErrRunSpeed          = &Rejection{Reason: ReasonRunSpeed}
	ErrRunYawNotInteger  = &Rejection{Reason: ReasonRunYawNotInteger}
	ErrUnknownDirection  = &Rejection{Reason: ReasonUnknownDirection}
	ErrNotRunning        = &Rejection{Reason: ReasonNotRunning}
	ErrJumpWithoutDelay  = &Rejection{Reason: ReasonJumpWithoutDelay}
	ErrDuck              = &Rejection{Reason: ReasonDuck}
	ErrUnknownWeapon     = &Rejection{Reason: ReasonUnknownWeapon}
	ErrRun               = &Rejection{Reason: ReasonRun}
	ErrDelay             = &Rejection{Reason: ReasonDelay}
	ErrUnsupportedWeapon = &Rejection{Reason: ReasonUnsupportedWeapon}
)

// Tally counts rejections by message
type Tally map[string]int

// Add records one occurrence of err
func (t Tally) Add(err error) {
	t[err.Error()]++
}

// Merge adds every count from other into t
func (t Tally) Merge(other Tally) {
	for msg, n := range other {
		t[msg] += n
	}
}

// Total returns the number of recorded rejections
func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// Messages returns the recorded messages, most frequent first and then by name.
func (t Tally) Messages() []string {
	msgs := make([]string, 0, len(t))
	for msg := range t {
		msgs = append(msgs, msg)
	}
	slices.SortFunc(msgs, func(a, b string) int {
		if t[a] != t[b] {
			return t[b] - t[a]
		}
		return strings.Compare(a, b)
	})
	return msgs
}

// String renders the tally one "message: count" per line, most frequent first.
func (t Tally) String() string {
	var b strings.Builder
	for _, msg := range t.Messages() {
		fmt.Fprintf(&b, "%s: %d\n", msg, t[msg])
	}
	return b.String()
}
