package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mayaandrob/invite-api/internal/config"
	"github.com/mayaandrob/invite-api/internal/models"
)

const emailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSNotifier sends the RSVP details to the hosts through the EmailJS
// transactional email API.
type EmailJSNotifier struct {
	serviceID  string
	templateID string
	publicKey  string
	toEmail    string
	fromName   string

	endpoint string
	client   *http.Client
}

// NewEmailJSNotifier returns an error when the service, template or public
// key is missing; the caller then runs without email notification.
func NewEmailJSNotifier(cfg *config.Config) (*EmailJSNotifier, error) {
	if cfg.EmailJSServiceID == "" || cfg.EmailJSTemplateID == "" || cfg.EmailJSPublicKey == "" {
		return nil, fmt.Errorf("emailjs is not configured: set EMAILJS_SERVICE_ID, EMAILJS_TEMPLATE_ID and EMAILJS_PUBLIC_KEY")
	}
	return &EmailJSNotifier{
		serviceID:  cfg.EmailJSServiceID,
		templateID: cfg.EmailJSTemplateID,
		publicKey:  cfg.EmailJSPublicKey,
		toEmail:    cfg.EmailJSToEmail,
		fromName:   cfg.EmailJSFromName,
		endpoint:   emailJSEndpoint,
		client:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (n *EmailJSNotifier) NotifyRSVP(ctx context.Context, fields models.RSVPFields) error {
	params := map[string]string{
		"guestName":           fields.GuestName,
		"attending":           string(fields.Attending),
		"numberOfGuests":      strconv.Itoa(fields.NumberOfGuests),
		"additionalGuests":    orNone(fields.AdditionalGuests),
		"dietaryRestrictions": orNone(fields.DietaryRestrictions),
	}
	if n.fromName != "" {
		params["from_name"] = n.fromName
	}
	if n.toEmail != "" {
		params["to_email"] = joinRecipients(n.toEmail)
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:      n.serviceID,
		TemplateID:     n.templateID,
		UserID:         n.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs responded with %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// joinRecipients normalizes a comma separated recipient list.
func joinRecipients(raw string) string {
	parts := strings.Split(raw, ",")
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ",")
}
