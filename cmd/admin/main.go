// Command admin is the host's terminal dashboard. Without flags it polls
// the server every three seconds and redraws the RSVP table plus the
// derived summary. The -delete and -update flags run a single mutation and
// exit.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/mayaandrob/invite-api/internal/config"
	"github.com/mayaandrob/invite-api/internal/dashboard"
	"github.com/mayaandrob/invite-api/internal/models"
)

func main() {
	deleteID := flag.String("delete", "", "delete the RSVP with this id and exit")
	updateID := flag.String("update", "", "update the RSVP with this id and exit")
	name := flag.String("name", "", "guest name (with -update)")
	attending := flag.String("attending", "yes", "yes, no or maybe (with -update)")
	guests := flag.Int("guests", 0, "number of additional guests (with -update)")
	additional := flag.String("additional", "", "names of additional guests (with -update)")
	dietary := flag.String("dietary", "", "dietary notes (with -update)")
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Str("component", "admin").Logger()
	cfg := config.LoadConfig()
	client := dashboard.NewClient(cfg.AdminBaseURL, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *deleteID != "":
		snap, err := client.Delete(ctx, *deleteID)
		if err != nil {
			log.Fatal().Err(err).Msg("delete failed")
		}
		render(snap)

	case *updateID != "":
		snap, err := client.Update(ctx, *updateID, models.RSVPFields{
			GuestName:           *name,
			Attending:           models.Attendance(*attending),
			NumberOfGuests:      *guests,
			AdditionalGuests:    *additional,
			DietaryRestrictions: *dietary,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("update failed")
		}
		render(snap)

	default:
		client.Watch(ctx, func(snap dashboard.Snapshot) {
			if snap.Err != nil {
				log.Error().Err(snap.Err).Msg("refresh failed")
				return
			}
			render(snap)
		})
	}
}

func render(snap dashboard.Snapshot) {
	fmt.Printf("\nresponses=%d confirmed=%d declined=%d maybe=%d guests=%d\n",
		snap.Summary.TotalResponses, snap.Summary.Confirmed,
		snap.Summary.Declined, snap.Summary.Maybe, snap.Summary.TotalGuests)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGUEST\tATTENDING\t+GUESTS\tDIETARY\tCREATED")
	for _, r := range snap.RSVPs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.GuestName, r.Attending, r.NumberOfGuests,
			r.DietaryRestrictions, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}
