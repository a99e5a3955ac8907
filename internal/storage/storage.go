// Package storage persists the RSVP collection behind a single interface
// with interchangeable backends: a JSON document on local disk, a hosted
// Postgres table and a local SQLite database.
package storage

import (
	"context"
	"errors"

	"github.com/mayaandrob/invite-api/internal/models"
)

// ErrNotFound is returned when the requested RSVP does not exist.
var ErrNotFound = errors.New("rsvp not found")

// Store is the contract every backend satisfies identically.
type Store interface {
	ListRSVPs(ctx context.Context) ([]models.RSVP, error)
	CreateRSVP(ctx context.Context, fields models.RSVPFields) (*models.RSVP, error)
	UpdateRSVP(ctx context.Context, id string, fields models.RSVPFields) (*models.RSVP, error)
	DeleteRSVP(ctx context.Context, id string) error
}

// Provider yields the Store that should serve a request.
type Provider interface {
	Store(ctx context.Context) (Store, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (Store, error)

func (f ProviderFunc) Store(ctx context.Context) (Store, error) {
	return f(ctx)
}
