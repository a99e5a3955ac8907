package models

import "testing"

func TestComputeSummary(t *testing.T) {
	rsvps := []RSVP{
		{RSVPFields: RSVPFields{Attending: AttendanceYes, NumberOfGuests: 2}},
		{RSVPFields: RSVPFields{Attending: AttendanceNo}},
		{RSVPFields: RSVPFields{Attending: AttendanceMaybe}},
		{RSVPFields: RSVPFields{Attending: AttendanceYes, NumberOfGuests: 0}},
	}

	s := ComputeSummary(rsvps)

	if s.TotalResponses != 4 {
		t.Errorf("expected 4 responses, got %d", s.TotalResponses)
	}
	if s.Confirmed != 2 {
		t.Errorf("expected 2 confirmed, got %d", s.Confirmed)
	}
	if s.Declined != 1 {
		t.Errorf("expected 1 declined, got %d", s.Declined)
	}
	if s.Maybe != 1 {
		t.Errorf("expected 1 maybe, got %d", s.Maybe)
	}
	// (1+2) for the first confirmation, (1+0) for the second.
	if s.TotalGuests != 4 {
		t.Errorf("expected 4 total guests, got %d", s.TotalGuests)
	}
}

func TestComputeSummaryEmpty(t *testing.T) {
	s := ComputeSummary(nil)
	if s != (Summary{}) {
		t.Errorf("expected all zeros for empty set, got %+v", s)
	}
}

func TestComputeSummaryIgnoresGuestsOfNonConfirmed(t *testing.T) {
	rsvps := []RSVP{
		{RSVPFields: RSVPFields{Attending: AttendanceNo, NumberOfGuests: 5}},
		{RSVPFields: RSVPFields{Attending: AttendanceMaybe, NumberOfGuests: 3}},
	}
	if got := ComputeSummary(rsvps).TotalGuests; got != 0 {
		t.Errorf("expected 0 total guests, got %d", got)
	}
}
