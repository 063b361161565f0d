package dataset

// Column names of the international departures report.
const (
	ColDate         = "data_dte"
	ColOrigin       = "usg_apt"
	ColDestination  = "fg_apt"
	ColAirline      = "carrier"
	ColCarrierGroup = "carriergroup"
	ColType         = "type"
	ColScheduled    = "Scheduled"
	ColCharter      = "Charter"
	ColTotal        = "Total"
)

// Columns lists the required columns in the order records are decoded.
var Columns = []string{
	ColDate,
	ColOrigin,
	ColDestination,
	ColAirline,
	ColCarrierGroup,
	ColType,
	ColScheduled,
	ColCharter,
	ColTotal,
}
