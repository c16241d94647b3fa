package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rs/zerolog"

	"github.com/Aditya-myst/hookflow/internal/domain"
	"github.com/Aditya-myst/hookflow/internal/ledger"
	"github.com/Aditya-myst/hookflow/internal/middleware"
	"github.com/Aditya-myst/hookflow/internal/orchestrator"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

var errDummy = errors.New("boom")

type fakeLedger struct {
	decision    ledger.Decision
	gotIdentity ledger.Identity
	calls       int
}

func (f *fakeLedger) CheckAndDebit(ctx context.Context, identity ledger.Identity, now time.Time) ledger.Decision {
	f.gotIdentity = identity
	f.calls++
	return f.decision
}

type fakeGenerator struct {
	records []json.RawMessage
	err     error
	calls   int
}

func (f *fakeGenerator) GenerateHooks(ctx context.Context, p orchestrator.HookParams) ([]json.RawMessage, error) {
	f.calls++
	return f.records, f.err
}

func (f *fakeGenerator) GenerateCaptions(ctx context.Context, p orchestrator.CaptionParams) ([]json.RawMessage, error) {
	f.calls++
	return f.records, f.err
}

type fakeAccounts struct {
	account    *domain.Account
	getErr     error
	upserts    int
	resets     int
	upgrades   int
	gotPlan    domain.Plan
	gotCredits int
}

func (f *fakeAccounts) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.account == nil {
		return nil, domain.ErrNotFound
	}
	copied := *f.account
	return &copied, nil
}

func (f *fakeAccounts) Upsert(ctx context.Context, account *domain.Account) error {
	f.upserts++
	copied := *account
	f.account = &copied
	return nil
}

func (f *fakeAccounts) UpdateEmail(ctx context.Context, userID, email string) error {
	return nil
}

func (f *fakeAccounts) ResetCredits(ctx context.Context, userID, today string) error {
	f.resets++
	f.account.Credits = domain.DailyAllowance
	f.account.LastResetDate = today
	return nil
}

func (f *fakeAccounts) DebitCredit(ctx context.Context, userID string) (int, bool, error) {
	return 0, false, nil
}

func (f *fakeAccounts) Upgrade(ctx context.Context, userID string, plan domain.Plan, credits int) error {
	f.upgrades++
	f.gotPlan = plan
	f.gotCredits = credits
	return nil
}

type fakeUsage struct {
	events  []domain.UsageEvent
	inserts []domain.UsageEvent
}

func (f *fakeUsage) Insert(ctx context.Context, event *domain.UsageEvent) error {
	f.inserts = append(f.inserts, *event)
	return nil
}

func (f *fakeUsage) ListRecent(ctx context.Context, userID string, limit int) ([]domain.UsageEvent, error) {
	return f.events, nil
}

type fakePayments struct {
	status   string
	err      error
	gotOrder string
}

func (f *fakePayments) OrderStatus(ctx context.Context, orderID string) (string, error) {
	f.gotOrder = orderID
	return f.status, f.err
}

type fakeWebhooks struct {
	err     error
	gotBody []byte
}

func (f *fakeWebhooks) Process(ctx context.Context, body []byte, headers http.Header) error {
	f.gotBody = body
	return f.err
}

func newTestApp() *App {
	return &App{
		Logger: zerolog.Nop(),
		Now:    func() time.Time { return testNow },
	}
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := middleware.ContextWithIdentity(req.Context(), middleware.Identity{
		UserID: "user_123",
		Email:  "user@example.com",
	})
	return req.WithContext(ctx)
}

func decodeBody(t interface{ Fatalf(string, ...any) }, rr *httptest.ResponseRecorder, v any) {
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
