package transit

import (
	"strings"

	"github.com/tripweaver/layover-engine/internal/models"
)

// Estimate is the one-way airport-to-city transit estimate used by the
// feasibility evaluator. Modes are listed in preference order.
type Estimate struct {
	OneWayMinutes int
	Modes         []models.TransitMode
}

// DefaultOneWayMinutes is the conservative estimate applied to
// airports missing from the table.
const DefaultOneWayMinutes = 40

var airportEstimates = map[string]Estimate{
	// Major hubs with rail links
	"SIN": {OneWayMinutes: 25, Modes: []models.TransitMode{models.TransitRail, models.TransitTaxi, models.TransitShuttle}},
	"AMS": {OneWayMinutes: 20, Modes: []models.TransitMode{models.TransitRail, models.TransitTaxi}},
	"FRA": {OneWayMinutes: 15, Modes: []models.TransitMode{models.TransitRail, models.TransitTaxi}},
	"ZRH": {OneWayMinutes: 12, Modes: []models.TransitMode{models.TransitRail, models.TransitTaxi}},
	"HKG": {OneWayMinutes: 25, Modes: []models.TransitMode{models.TransitRail, models.TransitTaxi, models.TransitShuttle}},
	"NRT": {OneWayMinutes: 55, Modes: []models.TransitMode{models.TransitRail, models.TransitTaxi}},
	"ICN": {OneWayMinutes: 45, Modes: []models.TransitMode{models.TransitRail, models.TransitTaxi, models.TransitShuttle}},
	"IST": {OneWayMinutes: 40, Modes: []models.TransitMode{models.TransitRail, models.TransitTaxi, models.TransitShuttle}},
	"DOH": {OneWayMinutes: 20, Modes: []models.TransitMode{models.TransitRail, models.TransitTaxi}},
	"CPH": {OneWayMinutes: 15, Modes: []models.TransitMode{models.TransitRail, models.TransitTaxi}},

	// Taxi/shuttle only
	"DXB": {OneWayMinutes: 20, Modes: []models.TransitMode{models.TransitTaxi, models.TransitShuttle}},
	"CGK": {OneWayMinutes: 45, Modes: []models.TransitMode{models.TransitRail, models.TransitTaxi}},
	"KUL": {OneWayMinutes: 35, Modes: []models.TransitMode{models.TransitRail, models.TransitTaxi}},
	"BKK": {OneWayMinutes: 35, Modes: []models.TransitMode{models.TransitRail, models.TransitTaxi, models.TransitShuttle}},
	"DPS": {OneWayMinutes: 30, Modes: []models.TransitMode{models.TransitTaxi, models.TransitShuttle}},
	"AUH": {OneWayMinutes: 30, Modes: []models.TransitMode{models.TransitTaxi, models.TransitShuttle}},
	"CAI": {OneWayMinutes: 45, Modes: []models.TransitMode{models.TransitTaxi, models.TransitShuttle}},
	"JED": {OneWayMinutes: 40, Modes: []models.TransitMode{models.TransitTaxi}},
}

// Lookup returns the transit estimate for an airport. Unknown airports
// get the conservative default with taxi as the only mode.
func Lookup(code string) Estimate {
	code = strings.ToUpper(code)
	if est, ok := airportEstimates[code]; ok {
		return est
	}
	return Estimate{
		OneWayMinutes: DefaultOneWayMinutes,
		Modes:         []models.TransitMode{models.TransitTaxi},
	}
}
