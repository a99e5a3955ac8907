// Package notifier tells the event hosts about new RSVPs. Notifications are
// best effort: a failure is logged and never rolls back the already
// persisted record or the submitter's success response.
package notifier

import (
	"context"
	"errors"

	"github.com/mayaandrob/invite-api/internal/models"
)

type Notifier interface {
	NotifyRSVP(ctx context.Context, fields models.RSVPFields) error
}

// Multi fans one notification out to every configured channel.
type Multi []Notifier

func (m Multi) NotifyRSVP(ctx context.Context, fields models.RSVPFields) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyRSVP(ctx, fields); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
