package models

import (
	"errors"
	"strings"
)

// ErrLayoverInfeasible means the layover no longer permits leaving the
// airport when re-checked at booking time.
var ErrLayoverInfeasible = errors.New("layover is no longer feasible")

// UnavailableSelectionError reports the selected experiences that
// failed their booking-time re-check. One failure rejects the whole
// booking; callers are told exactly which selections failed.
type UnavailableSelectionError struct {
	ExperienceIDs []string
	Selected      int
}

func (e *UnavailableSelectionError) Error() string {
	if e.AllFailed() {
		return "no selected experience is bookable: " + strings.Join(e.ExperienceIDs, ", ")
	}
	return "experiences no longer available: " + strings.Join(e.ExperienceIDs, ", ")
}

// AllFailed distinguishes "nothing bookable" from partial
// unavailability; both reject the booking.
func (e *UnavailableSelectionError) AllFailed() bool {
	return len(e.ExperienceIDs) >= e.Selected
}
