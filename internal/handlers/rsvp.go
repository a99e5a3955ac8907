package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"

	"github.com/mayaandrob/invite-api/internal/models"
	"github.com/mayaandrob/invite-api/internal/notifier"
	"github.com/mayaandrob/invite-api/internal/storage"
)

const notifyTimeout = 10 * time.Second

type RSVPHandler struct {
	stores   storage.Provider
	notifier notifier.Notifier
	log      zerolog.Logger
}

// NewRSVPHandler wires the collection endpoint. notifier may be nil, in
// which case submissions are persisted without telling the hosts.
func NewRSVPHandler(stores storage.Provider, n notifier.Notifier, log zerolog.Logger) *RSVPHandler {
	return &RSVPHandler{stores: stores, notifier: n, log: log}
}

// RSVPBody is the wire shape of the mutable fields. Everything is optional
// at the schema level; guest name and attendance are checked in the
// handlers so the client gets a 400 with a message it can show, and the
// guest count is coerced rather than validated.
type RSVPBody struct {
	GuestName           string            `json:"guestName,omitempty" doc:"Name of the responding guest"`
	Attending           string            `json:"attending,omitempty" doc:"One of yes, no or maybe"`
	NumberOfGuests      models.GuestCount `json:"numberOfGuests,omitempty"`
	AdditionalGuests    string            `json:"additionalGuests,omitempty" doc:"Names of additional guests"`
	DietaryRestrictions string            `json:"dietaryRestrictions,omitempty"`
}

// validate rejects a bad guest name or attendance value and returns the
// normalized fields otherwise.
func (b RSVPBody) validate() (models.RSVPFields, error) {
	if strings.TrimSpace(b.GuestName) == "" {
		return models.RSVPFields{}, huma.Error400BadRequest("Guest name is required")
	}
	attending := models.Attendance(b.Attending)
	if !attending.Valid() {
		return models.RSVPFields{}, huma.Error400BadRequest("Invalid attending value")
	}
	fields := models.RSVPFields{
		GuestName:           b.GuestName,
		Attending:           attending,
		NumberOfGuests:      b.NumberOfGuests.Clamped(),
		AdditionalGuests:    b.AdditionalGuests,
		DietaryRestrictions: b.DietaryRestrictions,
	}
	fields.Normalize()
	return fields, nil
}

type ListRSVPsInput struct{}

type ListRSVPsOutput struct {
	Body []models.RSVP
}

func (h *RSVPHandler) HandleList(ctx context.Context, input *ListRSVPsInput) (*ListRSVPsOutput, error) {
	store, err := h.stores.Store(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("storage backend unavailable")
		return nil, huma.Error500InternalServerError("Failed to load RSVPs")
	}
	rsvps, err := store.ListRSVPs(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list rsvps")
		return nil, huma.Error500InternalServerError("Failed to load RSVPs")
	}
	return &ListRSVPsOutput{Body: rsvps}, nil
}

type CreateRSVPInput struct {
	Body RSVPBody
}

type RSVPOutput struct {
	Body models.RSVP
}

func (h *RSVPHandler) HandleCreate(ctx context.Context, input *CreateRSVPInput) (*RSVPOutput, error) {
	fields, err := input.Body.validate()
	if err != nil {
		return nil, err
	}

	store, err := h.stores.Store(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("storage backend unavailable")
		return nil, huma.Error500InternalServerError("Failed to save RSVP")
	}
	rsvp, err := store.CreateRSVP(ctx, fields)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create rsvp")
		return nil, huma.Error500InternalServerError("Failed to save RSVP")
	}

	// The record is durable at this point. Notification runs detached from
	// the request: its failure is logged and never reported to the guest.
	if h.notifier != nil {
		go func(fields models.RSVPFields) {
			nctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			if err := h.notifier.NotifyRSVP(nctx, fields); err != nil {
				h.log.Error().Err(err).Str("guest", fields.GuestName).Msg("rsvp notification failed")
			}
		}(rsvp.RSVPFields)
	}

	return &RSVPOutput{Body: *rsvp}, nil
}

type UpdateRSVPInput struct {
	ID   string `query:"id" doc:"Identifier of the RSVP to update"`
	Body RSVPBody
}

func (h *RSVPHandler) HandleUpdate(ctx context.Context, input *UpdateRSVPInput) (*RSVPOutput, error) {
	if input.ID == "" {
		return nil, huma.Error400BadRequest("id is required")
	}
	fields, err := input.Body.validate()
	if err != nil {
		return nil, err
	}

	store, err := h.stores.Store(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("storage backend unavailable")
		return nil, huma.Error500InternalServerError("Failed to save RSVP")
	}
	rsvp, err := store.UpdateRSVP(ctx, input.ID, fields)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, huma.Error404NotFound("RSVP not found")
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", input.ID).Msg("failed to update rsvp")
		return nil, huma.Error500InternalServerError("Failed to save RSVP")
	}
	return &RSVPOutput{Body: *rsvp}, nil
}

type DeleteRSVPInput struct {
	ID string `query:"id" doc:"Identifier of the RSVP to delete"`
}

type DeleteRSVPOutput struct {
	Body struct {
		OK bool `json:"ok"`
	}
}

func (h *RSVPHandler) HandleDelete(ctx context.Context, input *DeleteRSVPInput) (*DeleteRSVPOutput, error) {
	if input.ID == "" {
		return nil, huma.Error400BadRequest("id is required")
	}

	store, err := h.stores.Store(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("storage backend unavailable")
		return nil, huma.Error500InternalServerError("Failed to delete RSVP")
	}
	err = store.DeleteRSVP(ctx, input.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, huma.Error404NotFound("RSVP not found")
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", input.ID).Msg("failed to delete rsvp")
		return nil, huma.Error500InternalServerError("Failed to delete RSVP")
	}

	res := &DeleteRSVPOutput{}
	res.Body.OK = true
	return res, nil
}
