// Package ledger tracks per-user daily generation credits.
//
// Free accounts get domain.DailyAllowance credits per calendar day,
// replenished lazily: every check carries its own "is it a new day yet" test,
// so no scheduled reset job is needed. Days are measured in the server's
// local timezone via now.Format("2006-01-02").
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Aditya-myst/hookflow/internal/domain"
)

// Identity carries the authenticated caller attributes the ledger needs to
// lazily create missing accounts.
type Identity struct {
	UserID string
	Email  string
}

// Decision is the outcome of a quota check.
type Decision struct {
	Allowed bool
	Plan    domain.Plan
	Credits int
}

// Ledger gates and debits generation requests against stored accounts.
type Ledger struct {
	accounts domain.AccountRepository
	logger   zerolog.Logger
}

func New(accounts domain.AccountRepository, logger zerolog.Logger) *Ledger {
	return &Ledger{accounts: accounts, logger: logger}
}

// CheckAndDebit applies the daily quota rules for the caller and, for free
// accounts, consumes one credit via an atomic conditional decrement.
//
// Storage failures never block generation: bookkeeping errors are logged and
// the request proceeds with default quota state. Availability of the
// generation path is prioritized over perfect metering accuracy.
func (l *Ledger) CheckAndDebit(ctx context.Context, identity Identity, now time.Time) Decision {
	today := now.Format("2006-01-02")

	acct, err := l.accounts.GetByUserID(ctx, identity.UserID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		acct = domain.NewAccount(identity.UserID, identity.Email, today)
		if err := l.accounts.Upsert(ctx, acct); err != nil {
			l.logger.Error().Err(err).Str("user_id", identity.UserID).Msg("initial account sync failed")
			return Decision{Allowed: true, Plan: domain.PlanFree, Credits: domain.DailyAllowance}
		}
	case err != nil:
		l.logger.Error().Err(err).Str("user_id", identity.UserID).Msg("account read failed, assuming default quota")
		return Decision{Allowed: true, Plan: domain.PlanFree, Credits: domain.DailyAllowance}
	}

	if !acct.IsFree() {
		return Decision{Allowed: true, Plan: acct.Plan, Credits: acct.Credits}
	}

	// Lazy daily reset. The credits > DailyAllowance clamp self-heals legacy
	// rows written under a larger allowance.
	if acct.LastResetDate != today || acct.Credits > domain.DailyAllowance {
		if err := l.accounts.ResetCredits(ctx, identity.UserID, today); err != nil {
			// The stored row still holds yesterday's balance, so the
			// conditional debit below would consult stale state and could
			// reject a caller whose allowance should have replenished. Skip
			// it and proceed with the post-reset best guess.
			l.logger.Error().Err(err).Str("user_id", identity.UserID).Msg("daily reset failed")
			return Decision{Allowed: true, Plan: domain.PlanFree, Credits: domain.DailyAllowance - 1}
		}
		l.logger.Debug().Str("user_id", identity.UserID).Msg("daily credits reset")
		acct.Credits = domain.DailyAllowance
		acct.LastResetDate = today
	}

	remaining, debited, err := l.accounts.DebitCredit(ctx, identity.UserID)
	if err != nil {
		l.logger.Error().Err(err).Str("user_id", identity.UserID).Msg("credit debit failed")
		return Decision{Allowed: true, Plan: domain.PlanFree, Credits: acct.Credits - 1}
	}
	if !debited {
		return Decision{Allowed: false, Plan: domain.PlanFree, Credits: 0}
	}
	return Decision{Allowed: true, Plan: domain.PlanFree, Credits: remaining}
}
