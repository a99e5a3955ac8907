package storage

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mayaandrob/invite-api/internal/models"
)

func TestRowMappingRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		rsvp models.RSVP
	}{
		{
			name: "all fields",
			rsvp: models.RSVP{
				ID: "a1b2",
				RSVPFields: models.RSVPFields{
					GuestName:           "Maya Cohen",
					Attending:           models.AttendanceYes,
					NumberOfGuests:      3,
					AdditionalGuests:    "Rob, Dana, Avi",
					DietaryRestrictions: "gluten free",
				},
				CreatedAt: time.Date(2026, 6, 13, 18, 30, 0, 0, time.UTC),
			},
		},
		{
			name: "empty optional text",
			rsvp: models.RSVP{
				ID: "c3d4",
				RSVPFields: models.RSVPFields{
					GuestName: "Noa",
					Attending: models.AttendanceMaybe,
				},
				CreatedAt: time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC),
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.rsvp, rsvpFromRow(rowFromRSVP(tc.rsvp)))
		})
	}
}

func TestRowMappingNullTextReadsAsEmpty(t *testing.T) {
	// Rows written before the NOT NULL defaults may carry NULL in the
	// optional text columns; they must map to empty strings, not a marker.
	row := rsvpRow{
		ID:                  "e5f6",
		GuestName:           "Lior",
		Attending:           "no",
		NumberOfGuests:      0,
		AdditionalGuests:    sql.NullString{},
		DietaryRestrictions: sql.NullString{},
		CreatedAt:           time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
	}

	rsvp := rsvpFromRow(row)
	assert.Equal(t, "", rsvp.AdditionalGuests)
	assert.Equal(t, "", rsvp.DietaryRestrictions)
	assert.Equal(t, models.AttendanceNo, rsvp.Attending)
}
