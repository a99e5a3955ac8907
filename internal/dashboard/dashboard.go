// Package dashboard is the admin view's client side: it polls the
// collection endpoint on a fixed interval, recomputes the summary from each
// fetch and reconciles local state optimistically after mutations.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mayaandrob/invite-api/internal/models"
)

// PollInterval is the fixed refresh period of the admin view.
const PollInterval = 3 * time.Second

// Snapshot is one observation of the collection. Summary is always derived
// from RSVPs, never fetched on its own. Err carries a fetch failure while
// RSVPs and Summary keep the last good state.
type Snapshot struct {
	RSVPs   []models.RSVP
	Summary models.Summary
	Err     error
}

// Client talks to the collection endpoint and mirrors the records locally.
type Client struct {
	baseURL  string
	http     *http.Client
	log      zerolog.Logger
	interval time.Duration

	mu    sync.Mutex
	rsvps []models.RSVP
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		log:      log,
		interval: PollInterval,
	}
}

func (c *Client) snapshotLocked() Snapshot {
	rsvps := make([]models.RSVP, len(c.rsvps))
	copy(rsvps, c.rsvps)
	return Snapshot{RSVPs: rsvps, Summary: models.ComputeSummary(rsvps)}
}

// Refresh fetches the full list and replaces local state with it.
func (c *Client) Refresh(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/rsvp", nil)
	if err != nil {
		return Snapshot{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load RSVPs: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("failed to load RSVPs: %s", serverMessage(resp))
	}

	var rsvps []models.RSVP
	if err := json.NewDecoder(resp.Body).Decode(&rsvps); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode RSVPs: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.rsvps = rsvps
	return c.snapshotLocked(), nil
}

// Watch fetches once immediately, then on every tick until ctx is
// cancelled. Failed polls surface through Snapshot.Err without discarding
// the previous state; the next successful poll reconciles everything.
func (c *Client) Watch(ctx context.Context, fn func(Snapshot)) {
	deliver := func() {
		snap, err := c.Refresh(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.log.Error().Err(err).Msg("failed to refresh rsvps")
			c.mu.Lock()
			snap = c.snapshotLocked()
			c.mu.Unlock()
			snap.Err = err
		}
		fn(snap)
	}

	deliver()
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deliver()
		}
	}
}

// Delete removes one record and optimistically drops it from local state on
// success, without waiting for the next poll. On failure local state is
// untouched and the server's message is returned.
func (c *Client) Delete(ctx context.Context, id string) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/api/rsvp?id="+url.QueryEscape(id), nil)
	if err != nil {
		return Snapshot{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to delete RSVP: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("failed to delete RSVP: %s", serverMessage(resp))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.rsvps[:0:0]
	for _, r := range c.rsvps {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	c.rsvps = kept
	return c.snapshotLocked(), nil
}

// Update replaces one record's mutable fields, then re-fetches the entire
// list rather than patching local state. Simplicity over latency.
func (c *Client) Update(ctx context.Context, id string, fields models.RSVPFields) (Snapshot, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return Snapshot{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		c.baseURL+"/api/rsvp?id="+url.QueryEscape(id), bytes.NewReader(body))
	if err != nil {
		return Snapshot{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to update RSVP: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("failed to update RSVP: %s", serverMessage(resp))
	}
	io.Copy(io.Discard, resp.Body)

	return c.Refresh(ctx)
}

// serverMessage extracts the human readable detail from a structured error
// response, falling back to the HTTP status.
func serverMessage(resp *http.Response) string {
	var body struct {
		Detail string `json:"detail"`
		Title  string `json:"title"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Title != "" {
			return body.Title
		}
	}
	return resp.Status
}
