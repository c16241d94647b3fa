package handlers

import (
	"errors"
	"net/http"

	"github.com/Aditya-myst/hookflow/internal/domain"
)

// Dashboard handles GET /api/user/dashboard: a read-only quota/plan view plus
// recent generation history. Reading the dashboard applies the same lazy
// daily reset as the generation path so the displayed balance is current.
func (a *App) Dashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.identity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	today := a.now().Format("2006-01-02")
	plan := domain.PlanFree
	credits := domain.DailyAllowance

	acct, err := a.Accounts.GetByUserID(r.Context(), identity.UserID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if err := a.Accounts.Upsert(r.Context(), domain.NewAccount(identity.UserID, identity.Email, today)); err != nil {
			a.Logger.Warn().Err(err).Str("user_id", identity.UserID).Msg("dashboard account create failed")
		}
	case err != nil:
		a.Logger.Error().Err(err).Str("user_id", identity.UserID).Msg("dashboard account read failed")
	default:
		plan = acct.Plan
		credits = acct.Credits
		if acct.IsFree() && (acct.LastResetDate != today || acct.Credits > domain.DailyAllowance) {
			if err := a.Accounts.ResetCredits(r.Context(), identity.UserID, today); err != nil {
				a.Logger.Warn().Err(err).Str("user_id", identity.UserID).Msg("dashboard credit sync failed")
			} else {
				credits = domain.DailyAllowance
			}
		}
	}

	history := make([]map[string]any, 0)
	if a.Usage != nil {
		events, err := a.Usage.ListRecent(r.Context(), identity.UserID, 20)
		if err != nil {
			a.Logger.Warn().Err(err).Msg("dashboard history fetch failed")
		}
		for _, ev := range events {
			history = append(history, map[string]any{
				"template":   ev.Template,
				"success":    ev.Success,
				"latency_ms": ev.LatencyMS,
				"created_at": ev.CreatedAt,
			})
		}
	}

	a.json(w, http.StatusOK, map[string]any{
		"stats": map[string]any{
			"plan":    plan,
			"credits": credits,
		},
		"history": history,
	})
}
