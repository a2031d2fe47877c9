package dtos

// depArrField addresses one optional leaf of a FlightRecord
type depArrField struct {
	Name string
	Ref  func(r *FlightRecord) **string
}

// depArrPrecedence lists the fields a departure/arrival record may override
// on a flight-plan record. Every other field of the flight plan is kept.
var depArrPrecedence = []depArrField{
	{"departure.actualTimeOfDeparture", func(r *FlightRecord) **string { return &r.Departure.ActualTimeOfDeparture }},
	{"arrival.actualTimeOfArrival", func(r *FlightRecord) **string { return &r.Arrival.ActualTimeOfArrival }},
	{"departure.departureAerodrome", func(r *FlightRecord) **string { return &r.Departure.DepartureAerodrome }},
	{"arrival.destinationAerodrome", func(r *FlightRecord) **string { return &r.Arrival.DestinationAerodrome }},
}

// DepArrOverrideFields names the fields MergeDepArr may take from the
// departure/arrival record, in precedence-table order.
func DepArrOverrideFields() []string {
	names := make([]string, len(depArrPrecedence))
	for i, f := range depArrPrecedence {
		names[i] = f.Name
	}
	return names
}

// MergeDepArr returns a copy of plan with the departure/arrival record's
// values applied. A value only wins when it is present and non-empty.
// Neither input is modified.
func MergeDepArr(plan, depArr *FlightRecord) *FlightRecord {
	if plan == nil {
		return nil
	}
	merged := *plan
	if depArr == nil {
		return &merged
	}

	for _, f := range depArrPrecedence {
		if v := *f.Ref(depArr); present(v) {
			s := *v
			*f.Ref(&merged) = &s
		}
	}
	return &merged
}

func present(p *string) bool {
	return p != nil && *p != ""
}
