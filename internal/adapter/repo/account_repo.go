package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Aditya-myst/hookflow/internal/domain"
)

// AccountRepositoryPG implements domain.AccountRepository backed by PostgreSQL.
type AccountRepositoryPG struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepositoryPG {
	return &AccountRepositoryPG{db: db}
}

const accountColumns = `user_id, email, plan, credits, last_reset_date, created_at, updated_at`

// GetByUserID fetches an account by its identity-provider subject.
func (r *AccountRepositoryPG) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM users WHERE user_id = $1`, userID)
	return scanAccount(row)
}

// Upsert inserts the account or refreshes its email when the row exists.
func (r *AccountRepositoryPG) Upsert(ctx context.Context, account *domain.Account) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO users (user_id, email, plan, credits, last_reset_date)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO UPDATE
SET email = EXCLUDED.email,
    updated_at = NOW();
`, account.UserID, account.Email, account.Plan, account.Credits, account.LastResetDate)
	return err
}

// UpdateEmail syncs the display email without touching plan or credits,
// creating the row with free-tier defaults when the user is unknown.
func (r *AccountRepositoryPG) UpdateEmail(ctx context.Context, userID, email string) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO users (user_id, email)
VALUES ($1, $2)
ON CONFLICT (user_id) DO UPDATE
SET email = EXCLUDED.email,
    updated_at = NOW();
`, userID, email)
	return err
}

// ResetCredits replenishes the daily allowance and stamps the reset date.
func (r *AccountRepositoryPG) ResetCredits(ctx context.Context, userID, today string) error {
	_, err := r.db.Exec(ctx, `
UPDATE users
SET credits = $2, last_reset_date = $3, updated_at = NOW()
WHERE user_id = $1;
`, userID, domain.DailyAllowance, today)
	return err
}

// DebitCredit performs the atomic conditional decrement. The WHERE guard
// makes two racing requests at balance 1 serialize on the row: one debits,
// the other sees no affected row and is rejected.
func (r *AccountRepositoryPG) DebitCredit(ctx context.Context, userID string) (int, bool, error) {
	row := r.db.QueryRow(ctx, `
UPDATE users
SET credits = credits - 1, updated_at = NOW()
WHERE user_id = $1 AND credits > 0
RETURNING credits;
`, userID)

	var remaining int
	if err := row.Scan(&remaining); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return remaining, true, nil
}

// Upgrade moves the account onto a new plan with the given balance.
func (r *AccountRepositoryPG) Upgrade(ctx context.Context, userID string, plan domain.Plan, credits int) error {
	_, err := r.db.Exec(ctx, `
UPDATE users
SET plan = $2, credits = $3, updated_at = NOW()
WHERE user_id = $1;
`, userID, plan, credits)
	return err
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.UserID, &a.Email, &a.Plan, &a.Credits, &a.LastResetDate, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
