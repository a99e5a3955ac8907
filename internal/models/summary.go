package models

// Summary is the aggregate view the dashboard shows. It is derived from the
// full record set on every fetch and never persisted.
type Summary struct {
	TotalResponses int `json:"totalResponses"`
	Confirmed      int `json:"confirmed"`
	Declined       int `json:"declined"`
	Maybe          int `json:"maybe"`
	TotalGuests    int `json:"totalGuests"`
}

// ComputeSummary counts responses per attendance value. Only confirmed
// guests contribute to TotalGuests: the respondent plus their additional
// guests.
func ComputeSummary(rsvps []RSVP) Summary {
	var s Summary
	s.TotalResponses = len(rsvps)
	for _, r := range rsvps {
		switch r.Attending {
		case AttendanceYes:
			s.Confirmed++
			s.TotalGuests += 1 + r.NumberOfGuests
		case AttendanceNo:
			s.Declined++
		case AttendanceMaybe:
			s.Maybe++
		}
	}
	return s
}
