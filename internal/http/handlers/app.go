package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Aditya-myst/hookflow/internal/domain"
	"github.com/Aditya-myst/hookflow/internal/ledger"
	"github.com/Aditya-myst/hookflow/internal/middleware"
	"github.com/Aditya-myst/hookflow/internal/orchestrator"
)

// QuotaLedger gates generation requests.
type QuotaLedger interface {
	CheckAndDebit(ctx context.Context, identity ledger.Identity, now time.Time) ledger.Decision
}

// Generator produces normalized record sequences for the two templates.
type Generator interface {
	GenerateHooks(ctx context.Context, p orchestrator.HookParams) ([]json.RawMessage, error)
	GenerateCaptions(ctx context.Context, p orchestrator.CaptionParams) ([]json.RawMessage, error)
}

// PaymentVerifier resolves an order id to its payment status.
type PaymentVerifier interface {
	OrderStatus(ctx context.Context, orderID string) (string, error)
}

// WebhookProcessor verifies and applies an identity-change delivery.
type WebhookProcessor interface {
	Process(ctx context.Context, body []byte, headers http.Header) error
}

// App is the handler container. All collaborators are injected so tests can
// substitute fakes; nothing here is process-global.
type App struct {
	Logger   zerolog.Logger
	Accounts domain.AccountRepository
	Usage    domain.UsageRepository
	Ledger   QuotaLedger
	Gen      Generator
	Payments PaymentVerifier
	Webhooks WebhookProcessor
	Now      func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) identity(r *http.Request) (ledger.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok || id.UserID == "" {
		return ledger.Identity{}, false
	}
	return ledger.Identity{UserID: id.UserID, Email: id.Email}, true
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"error": msg})
}
