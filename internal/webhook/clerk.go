// Package webhook processes identity-change deliveries from Clerk, keeping
// stored account emails in sync.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	svix "github.com/svix/svix-webhooks/go"

	"github.com/Aditya-myst/hookflow/internal/domain"
)

// ErrInvalidSignature is returned when the svix signature check fails; the
// delivery must be rejected with HTTP 400.
var ErrInvalidSignature = errors.New("invalid webhook signature")

type clerkEvent struct {
	Type string `json:"type"`
	Data struct {
		ID                    string `json:"id"`
		PrimaryEmailAddressID string `json:"primary_email_address_id"`
		EmailAddresses        []struct {
			ID           string `json:"id"`
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// Processor verifies and applies Clerk user events.
type Processor struct {
	wh       *svix.Webhook
	accounts domain.AccountRepository
	logger   zerolog.Logger
}

// NewProcessor builds a processor for the given signing secret (the
// "whsec_..." value from the Clerk dashboard).
func NewProcessor(secret string, accounts domain.AccountRepository, logger zerolog.Logger) (*Processor, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("init webhook verifier: %w", err)
	}
	return &Processor{wh: wh, accounts: accounts, logger: logger}, nil
}

// Process verifies the signature over the raw body and svix headers, then
// syncs the account email for user.created and user.updated events. Other
// event types are acknowledged without action. Plan and credits are never
// touched from webhook data.
func (p *Processor) Process(ctx context.Context, body []byte, headers http.Header) error {
	if err := p.wh.Verify(body, headers); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	var evt clerkEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	p.logger.Info().Str("type", evt.Type).Msg("webhook received")

	if evt.Type != "user.created" && evt.Type != "user.updated" {
		return nil
	}
	if evt.Data.ID == "" {
		return errors.New("event missing user id")
	}

	email := primaryEmail(evt)
	if err := p.accounts.UpdateEmail(ctx, evt.Data.ID, email); err != nil {
		// Sync failures are logged, not surfaced: Clerk retries failed
		// deliveries and a 5xx storm helps nobody.
		p.logger.Error().Err(err).Str("user_id", evt.Data.ID).Msg("failed to sync user email")
	}
	return nil
}

// primaryEmail picks the address matching primary_email_address_id, falling
// back to the first listed address.
func primaryEmail(evt clerkEvent) string {
	for _, e := range evt.Data.EmailAddresses {
		if e.ID == evt.Data.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(evt.Data.EmailAddresses) > 0 {
		return evt.Data.EmailAddresses[0].EmailAddress
	}
	return ""
}
