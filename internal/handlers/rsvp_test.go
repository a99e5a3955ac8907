package handlers

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"

	"github.com/mayaandrob/invite-api/internal/models"
	"github.com/mayaandrob/invite-api/internal/storage"
)

func newTestHandler(t *testing.T) *RSVPHandler {
	t.Helper()
	// Fresh in-memory collection per test.
	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	provider := storage.ProviderFunc(func(ctx context.Context) (storage.Store, error) {
		return store, nil
	})
	return NewRSVPHandler(provider, nil, zerolog.Nop())
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}
	se, ok := err.(huma.StatusError)
	if !ok {
		t.Fatalf("expected status error, got %T: %v", err, err)
	}
	if se.GetStatus() != want {
		t.Fatalf("expected status %d, got %d (%v)", want, se.GetStatus(), err)
	}
}

func createRSVP(t *testing.T, h *RSVPHandler, body RSVPBody) models.RSVP {
	t.Helper()
	resp, err := h.HandleCreate(context.Background(), &CreateRSVPInput{Body: body})
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}
	return resp.Body
}

func TestHandleCreate(t *testing.T) {
	h := newTestHandler(t)

	created := createRSVP(t, h, RSVPBody{
		GuestName:           "  Maya Cohen ",
		Attending:           "yes",
		NumberOfGuests:      2,
		AdditionalGuests:    "Rob",
		DietaryRestrictions: "vegan",
	})

	if created.ID == "" {
		t.Error("expected an identifier to be assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}
	if created.GuestName != "Maya Cohen" {
		t.Errorf("expected trimmed guest name, got %q", created.GuestName)
	}
	if created.NumberOfGuests != 2 {
		t.Errorf("expected 2 guests, got %d", created.NumberOfGuests)
	}

	list, err := h.HandleList(context.Background(), &ListRSVPsInput{})
	if err != nil {
		t.Fatalf("HandleList returned error: %v", err)
	}
	if len(list.Body) != 1 {
		t.Fatalf("expected 1 rsvp, got %d", len(list.Body))
	}
}

func TestHandleCreateClampsGuestCount(t *testing.T) {
	h := newTestHandler(t)

	cases := []struct {
		in   models.GuestCount
		want int
	}{
		{-3, 0},
		{99, 5},
		{4, 4},
	}
	for _, tc := range cases {
		created := createRSVP(t, h, RSVPBody{
			GuestName:      "Guest",
			Attending:      "yes",
			NumberOfGuests: tc.in,
		})
		if created.NumberOfGuests != tc.want {
			t.Errorf("input %d: expected %d, got %d", tc.in, tc.want, created.NumberOfGuests)
		}
	}
}

func TestHandleCreateRejectsBadInput(t *testing.T) {
	h := newTestHandler(t)

	cases := []struct {
		name string
		body RSVPBody
	}{
		{"empty name", RSVPBody{GuestName: "", Attending: "yes"}},
		{"whitespace name", RSVPBody{GuestName: "   ", Attending: "yes"}},
		{"missing attending", RSVPBody{GuestName: "Maya"}},
		{"bad attending", RSVPBody{GuestName: "Maya", Attending: "definitely"}},
		{"uppercase attending", RSVPBody{GuestName: "Maya", Attending: "YES"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.HandleCreate(context.Background(), &CreateRSVPInput{Body: tc.body})
			assertStatus(t, err, 400)
		})
	}

	list, err := h.HandleList(context.Background(), &ListRSVPsInput{})
	if err != nil {
		t.Fatalf("HandleList returned error: %v", err)
	}
	if len(list.Body) != 0 {
		t.Errorf("rejected creates must not persist anything, got %d records", len(list.Body))
	}
}

func TestHandleCreateAssignsUniqueIDs(t *testing.T) {
	h := newTestHandler(t)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		created := createRSVP(t, h, RSVPBody{GuestName: "Guest", Attending: "maybe"})
		if seen[created.ID] {
			t.Fatalf("duplicate identifier %q", created.ID)
		}
		seen[created.ID] = true
	}

	list, err := h.HandleList(context.Background(), &ListRSVPsInput{})
	if err != nil {
		t.Fatalf("HandleList returned error: %v", err)
	}
	if len(list.Body) != 10 {
		t.Errorf("expected 10 rsvps, got %d", len(list.Body))
	}
}

func TestHandleUpdate(t *testing.T) {
	h := newTestHandler(t)

	created := createRSVP(t, h, RSVPBody{
		GuestName:      "Maya",
		Attending:      "maybe",
		NumberOfGuests: 1,
	})

	resp, err := h.HandleUpdate(context.Background(), &UpdateRSVPInput{
		ID: created.ID,
		Body: RSVPBody{
			GuestName:           "Maya Cohen",
			Attending:           "yes",
			NumberOfGuests:      3,
			DietaryRestrictions: "kosher",
		},
	})
	if err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}

	if resp.Body.ID != created.ID {
		t.Error("identifier must not change on update")
	}
	if !resp.Body.CreatedAt.Equal(created.CreatedAt) {
		t.Error("created timestamp must not change on update")
	}
	if resp.Body.GuestName != "Maya Cohen" || resp.Body.Attending != models.AttendanceYes {
		t.Errorf("unexpected updated record: %+v", resp.Body)
	}
	if resp.Body.AdditionalGuests != "" {
		t.Error("update replaces all mutable fields, additionalGuests should be cleared")
	}
}

func TestHandleUpdateErrors(t *testing.T) {
	h := newTestHandler(t)
	created := createRSVP(t, h, RSVPBody{GuestName: "Maya", Attending: "yes"})

	_, err := h.HandleUpdate(context.Background(), &UpdateRSVPInput{
		ID:   "",
		Body: RSVPBody{GuestName: "Maya", Attending: "yes"},
	})
	assertStatus(t, err, 400)

	_, err = h.HandleUpdate(context.Background(), &UpdateRSVPInput{
		ID:   created.ID,
		Body: RSVPBody{GuestName: "  ", Attending: "yes"},
	})
	assertStatus(t, err, 400)

	_, err = h.HandleUpdate(context.Background(), &UpdateRSVPInput{
		ID:   "does-not-exist",
		Body: RSVPBody{GuestName: "Maya", Attending: "yes"},
	})
	assertStatus(t, err, 404)
}

func TestHandleDelete(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	created := createRSVP(t, h, RSVPBody{GuestName: "Maya", Attending: "yes"})
	other := createRSVP(t, h, RSVPBody{GuestName: "Noa", Attending: "no"})

	resp, err := h.HandleDelete(ctx, &DeleteRSVPInput{ID: created.ID})
	if err != nil {
		t.Fatalf("HandleDelete returned error: %v", err)
	}
	if !resp.Body.OK {
		t.Error("expected ok response")
	}

	list, err := h.HandleList(ctx, &ListRSVPsInput{})
	if err != nil {
		t.Fatalf("HandleList returned error: %v", err)
	}
	if len(list.Body) != 1 || list.Body[0].ID != other.ID {
		t.Errorf("expected only the other record to remain, got %+v", list.Body)
	}

	// Second delete of the same identifier is a clean not-found.
	_, err = h.HandleDelete(ctx, &DeleteRSVPInput{ID: created.ID})
	assertStatus(t, err, 404)

	_, err = h.HandleDelete(ctx, &DeleteRSVPInput{ID: ""})
	assertStatus(t, err, 400)

	list, err = h.HandleList(ctx, &ListRSVPsInput{})
	if err != nil {
		t.Fatalf("HandleList returned error: %v", err)
	}
	if len(list.Body) != 1 {
		t.Errorf("failed deletes must not alter the collection, got %d records", len(list.Body))
	}
}

func TestHandleDeleteUnknownID(t *testing.T) {
	h := newTestHandler(t)
	createRSVP(t, h, RSVPBody{GuestName: "Maya", Attending: "yes"})

	_, err := h.HandleDelete(context.Background(), &DeleteRSVPInput{ID: "unknown"})
	assertStatus(t, err, 404)

	list, err := h.HandleList(context.Background(), &ListRSVPsInput{})
	if err != nil {
		t.Fatalf("HandleList returned error: %v", err)
	}
	if len(list.Body) != 1 {
		t.Errorf("expected collection size unchanged, got %d", len(list.Body))
	}
}
