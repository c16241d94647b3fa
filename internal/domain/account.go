package domain

import "time"

// Plan enumerates billing plans.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

const (
	// DailyAllowance is the number of generations a free account gets per
	// calendar day.
	DailyAllowance = 3

	// UnlimitedCredits is the sentinel balance stored for pro accounts.
	UnlimitedCredits = 999999
)

// Account is the per-user quota record. UserID is the stable subject
// identifier from the identity provider; email is display-only and kept in
// sync best-effort via webhooks.
type Account struct {
	UserID        string
	Email         string
	Plan          Plan
	Credits       int
	LastResetDate string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsFree reports whether the account is on the daily-limited plan. Unknown
// plan values are metered, not unlimited: a corrupt row can cost a user their
// daily allowance but can never grant unmetered generation.
func (a Account) IsFree() bool {
	return a.Plan != PlanPro
}

// NewAccount returns the record created for a caller seen for the first time.
func NewAccount(userID, email, today string) *Account {
	return &Account{
		UserID:        userID,
		Email:         email,
		Plan:          PlanFree,
		Credits:       DailyAllowance,
		LastResetDate: today,
	}
}

// UsageEvent records a single gated generation for dashboard history.
type UsageEvent struct {
	ID        string
	UserID    string
	Template  string
	Success   bool
	LatencyMS int
	CreatedAt time.Time
}

// HookExample is a curated hook used to seed generation prompts.
type HookExample struct {
	Text      string
	Structure string
}
