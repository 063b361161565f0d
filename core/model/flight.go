package model

import "time"

// FlightRecord is one row of the departures dataset.
type FlightRecord struct {
	Date         time.Time // calendar day, UTC midnight
	Origin       string
	Destination  string
	Airline      string
	CarrierGroup string
	FlightType   string
	Scheduled    bool
	Charter      bool
	Total        int
}

// FilterCriteria holds optional equality constraints. Empty strings and nil
// pointers mean the field is not constrained.
type FilterCriteria struct {
	Origin       string `json:"origin,omitempty"`
	Destination  string `json:"destination,omitempty"`
	Airline      string `json:"airline,omitempty"`
	CarrierGroup string `json:"carriergroup,omitempty"`
	FlightType   string `json:"flight_type,omitempty"`
	Scheduled    *bool  `json:"scheduled,omitempty"`
	Charter      *bool  `json:"charter,omitempty"`
}

// IsEmpty reports whether no constraint is set.
func (c FilterCriteria) IsEmpty() bool {
	return c.Origin == "" && c.Destination == "" && c.Airline == "" &&
		c.CarrierGroup == "" && c.FlightType == "" && c.Scheduled == nil && c.Charter == nil
}

// Tags returns the active constraints keyed by their dataset field name.
func (c FilterCriteria) Tags() map[string]string {
	tags := make(map[string]string)
	if c.Origin != "" {
		tags["origin"] = c.Origin
	}
	if c.Destination != "" {
		tags["destination"] = c.Destination
	}
	if c.Airline != "" {
		tags["airline"] = c.Airline
	}
	if c.CarrierGroup != "" {
		tags["carriergroup"] = c.CarrierGroup
	}
	if c.FlightType != "" {
		tags["flight_type"] = c.FlightType
	}
	if c.Scheduled != nil {
		tags["scheduled"] = flag(*c.Scheduled)
	}
	if c.Charter != nil {
		tags["charter"] = flag(*c.Charter)
	}
	return tags
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Bool returns a pointer to b. It is a convenience for building criteria.
func Bool(b bool) *bool { return &b }
