package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Aditya-myst/hookflow/internal/domain"
)

type dashboardResponse struct {
	Stats struct {
		Plan    string `json:"plan"`
		Credits int    `json:"credits"`
	} `json:"stats"`
	History []map[string]any `json:"history"`
}

func TestDashboardReturnsStoredStats(t *testing.T) {
	accounts := &fakeAccounts{account: &domain.Account{
		UserID:        "user_123",
		Plan:          domain.PlanPro,
		Credits:       domain.UnlimitedCredits,
		LastResetDate: "2020-01-01",
	}}
	usage := &fakeUsage{events: []domain.UsageEvent{
		{Template: "hooks", Success: true, LatencyMS: 850, CreatedAt: testNow.Add(-time.Hour)},
	}}

	app := newTestApp()
	app.Accounts = accounts
	app.Usage = usage

	rr := httptest.NewRecorder()
	app.Dashboard(rr, authedRequest("GET", "/api/user/dashboard"))

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	var resp dashboardResponse
	decodeBody(t, rr, &resp)
	if resp.Stats.Plan != "pro" {
		t.Fatalf("plan = %q, want pro", resp.Stats.Plan)
	}
	if len(resp.History) != 1 || resp.History[0]["template"] != "hooks" {
		t.Fatalf("history = %v", resp.History)
	}
	if accounts.resets != 0 {
		t.Fatal("pro account must not be reset on dashboard load")
	}
}

func TestDashboardResetsStaleFreeAccount(t *testing.T) {
	accounts := &fakeAccounts{account: &domain.Account{
		UserID:        "user_123",
		Plan:          domain.PlanFree,
		Credits:       0,
		LastResetDate: "2025-06-14",
	}}

	app := newTestApp()
	app.Accounts = accounts
	app.Usage = &fakeUsage{}

	rr := httptest.NewRecorder()
	app.Dashboard(rr, authedRequest("GET", "/api/user/dashboard"))

	var resp dashboardResponse
	decodeBody(t, rr, &resp)
	if resp.Stats.Credits != domain.DailyAllowance {
		t.Fatalf("credits = %d, want %d after reset", resp.Stats.Credits, domain.DailyAllowance)
	}
	if accounts.resets != 1 {
		t.Fatalf("resets = %d, want 1", accounts.resets)
	}
}

func TestDashboardClampsLegacyBalance(t *testing.T) {
	accounts := &fakeAccounts{account: &domain.Account{
		UserID:        "user_123",
		Plan:          domain.PlanFree,
		Credits:       5,
		LastResetDate: testNow.Format("2006-01-02"),
	}}

	app := newTestApp()
	app.Accounts = accounts
	app.Usage = &fakeUsage{}

	rr := httptest.NewRecorder()
	app.Dashboard(rr, authedRequest("GET", "/api/user/dashboard"))

	var resp dashboardResponse
	decodeBody(t, rr, &resp)
	if resp.Stats.Credits != domain.DailyAllowance {
		t.Fatalf("credits = %d, want clamp to %d", resp.Stats.Credits, domain.DailyAllowance)
	}
}

func TestDashboardCreatesMissingAccount(t *testing.T) {
	accounts := &fakeAccounts{}

	app := newTestApp()
	app.Accounts = accounts
	app.Usage = &fakeUsage{}

	rr := httptest.NewRecorder()
	app.Dashboard(rr, authedRequest("GET", "/api/user/dashboard"))

	var resp dashboardResponse
	decodeBody(t, rr, &resp)
	if resp.Stats.Plan != "free" || resp.Stats.Credits != domain.DailyAllowance {
		t.Fatalf("stats = %+v, want free plan defaults", resp.Stats)
	}
	if accounts.upserts != 1 {
		t.Fatalf("upserts = %d, want 1", accounts.upserts)
	}
}
