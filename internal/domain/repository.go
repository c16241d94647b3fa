package domain

import "context"

// AccountRepository defines access methods for quota accounts. Every method
// must be safe for concurrent use; DebitCredit is the single mutation that
// needs row-level atomicity.
type AccountRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Account, error)
	Upsert(ctx context.Context, account *Account) error
	UpdateEmail(ctx context.Context, userID, email string) error
	ResetCredits(ctx context.Context, userID, today string) error
	// DebitCredit decrements the balance by one only while it is positive and
	// returns the remaining credits. Returns debited=false when the balance
	// was already zero or the row does not exist.
	DebitCredit(ctx context.Context, userID string) (remaining int, debited bool, err error)
	Upgrade(ctx context.Context, userID string, plan Plan, credits int) error
}

// HookTemplateRepository retrieves curated hook examples used to seed
// generation prompts.
type HookTemplateRepository interface {
	ListByTrigger(ctx context.Context, trigger string, limit int) ([]HookExample, error)
}

// UsageRepository records gated generations for dashboard history.
type UsageRepository interface {
	Insert(ctx context.Context, event *UsageEvent) error
	ListRecent(ctx context.Context, userID string, limit int) ([]UsageEvent, error)
}
