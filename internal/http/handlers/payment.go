package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Aditya-myst/hookflow/internal/domain"
	"github.com/Aditya-myst/hookflow/internal/paypal"
)

type verifyPaymentRequest struct {
	OrderID string `json:"orderID"`
}

// VerifyPayment handles POST /api/verify-payment: confirms the PayPal order
// and upgrades the caller to the pro plan.
func (a *App) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.identity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" {
		a.error(w, http.StatusBadRequest, "Missing orderID")
		return
	}

	if a.Payments == nil {
		a.error(w, http.StatusInternalServerError, "Payment system not configured")
		return
	}

	status, err := a.Payments.OrderStatus(r.Context(), req.OrderID)
	if err != nil {
		a.Logger.Error().Err(err).Str("order_id", req.OrderID).Msg("payment verification failed")
		a.error(w, http.StatusInternalServerError, "Payment verification failed")
		return
	}

	if !paypal.IsPaid(status) {
		a.error(w, http.StatusBadRequest, "Payment status: "+status)
		return
	}

	if err := a.Accounts.Upgrade(r.Context(), identity.UserID, domain.PlanPro, domain.UnlimitedCredits); err != nil {
		a.Logger.Error().Err(err).Str("user_id", identity.UserID).Msg("plan upgrade failed")
		a.error(w, http.StatusInternalServerError, "Failed to upgrade plan")
		return
	}

	a.json(w, http.StatusOK, map[string]string{"status": "success", "plan": "pro"})
}
