package models

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Attendance is the guest's answer to the invitation.
type Attendance string

const (
	AttendanceYes   Attendance = "yes"
	AttendanceNo    Attendance = "no"
	AttendanceMaybe Attendance = "maybe"
)

// Valid reports whether a is one of the three accepted answers.
func (a Attendance) Valid() bool {
	switch a {
	case AttendanceYes, AttendanceNo, AttendanceMaybe:
		return true
	}
	return false
}

// MaxAdditionalGuests is the cap on extra guests a single RSVP may bring.
const MaxAdditionalGuests = 5

// GuestCount accepts whatever the form sends for the guest-count field:
// a number, a numeric string, null, or garbage. Anything that is not a
// number decodes to zero. Submissions are never rejected over this field;
// callers clamp the final value with Clamped.
type GuestCount int

func (g *GuestCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*g = 0
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*g = 0
		return nil
	}
	*g = GuestCount(int(f))
	return nil
}

// Schema keeps the generated OpenAPI schema permissive so that coercion in
// UnmarshalJSON runs instead of request validation rejecting the value.
func (g GuestCount) Schema(r huma.Registry) *huma.Schema {
	return &huma.Schema{
		Description: "Number of additional guests, coerced to an integer and clamped to 0-5",
	}
}

// Clamped returns the count forced into [0, MaxAdditionalGuests].
func (g GuestCount) Clamped() int {
	if g < 0 {
		return 0
	}
	if g > MaxAdditionalGuests {
		return MaxAdditionalGuests
	}
	return int(g)
}

// RSVPFields are the mutable fields of an RSVP, shared by the create and
// update request bodies, the stores and the notifiers.
type RSVPFields struct {
	GuestName           string     `json:"guestName"`
	Attending           Attendance `json:"attending"`
	NumberOfGuests      int        `json:"numberOfGuests"`
	AdditionalGuests    string     `json:"additionalGuests"`
	DietaryRestrictions string     `json:"dietaryRestrictions"`
}

// Normalize trims the free-text fields and clamps the guest count. Stores
// apply it on every write so the persisted invariants hold no matter what
// the caller passed.
func (f *RSVPFields) Normalize() {
	f.GuestName = strings.TrimSpace(f.GuestName)
	f.AdditionalGuests = strings.TrimSpace(f.AdditionalGuests)
	f.DietaryRestrictions = strings.TrimSpace(f.DietaryRestrictions)
	f.NumberOfGuests = GuestCount(f.NumberOfGuests).Clamped()
}

// RSVP is one guest's response. ID and CreatedAt are assigned at creation
// and never change afterwards.
type RSVP struct {
	ID         string `json:"id" gorm:"primaryKey"`
	RSVPFields `gorm:"embedded"`
	CreatedAt  time.Time `json:"createdAt"`
}
