package feasibility

import (
	"github.com/tripweaver/layover-engine/internal/models"
	"github.com/tripweaver/layover-engine/internal/transit"
)

// MinLayoverMinutes is the hard policy floor: below this the traveler
// cannot clear immigration, transit, and return with buffer.
const MinLayoverMinutes = 120

// modePreference ranks transit modes best-first; the first one the
// airport actually offers wins.
var modePreference = []models.TransitMode{
	models.TransitRail,
	models.TransitTaxi,
	models.TransitShuttle,
}

// Evaluate decides whether a layover window permits leaving the
// airport, how many city minutes remain after round-trip transit, and
// by which mode. Deterministic: identical inputs always yield the
// identical result.
func Evaluate(window models.TimingWindow, est transit.Estimate) models.FeasibilityResult {
	if window.DurationMinutes < MinLayoverMinutes {
		return models.FeasibilityResult{
			CanLeaveAirport:      false,
			AvailableCityMinutes: 0,
			TransitMode:          models.TransitNone,
		}
	}

	available := window.DurationMinutes - 2*est.OneWayMinutes
	if available < 0 {
		available = 0
	}

	return models.FeasibilityResult{
		CanLeaveAirport:      true,
		AvailableCityMinutes: available,
		TransitMode:          selectMode(est.Modes),
	}
}

func selectMode(available []models.TransitMode) models.TransitMode {
	for _, preferred := range modePreference {
		for _, mode := range available {
			if mode == preferred {
				return mode
			}
		}
	}
	return models.TransitNone
}
