package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Aditya-myst/hookflow/internal/webhook"
)

// ClerkWebhook handles POST /api/webhooks/clerk. Signature verification
// gates everything; an unverifiable delivery is rejected with 400.
func (a *App) ClerkWebhook(w http.ResponseWriter, r *http.Request) {
	if a.Webhooks == nil {
		a.error(w, http.StatusInternalServerError, "Webhook secret not configured")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		a.error(w, http.StatusBadRequest, "unreadable body")
		return
	}

	if err := a.Webhooks.Process(r.Context(), body, r.Header); err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			a.error(w, http.StatusBadRequest, "Invalid signature")
			return
		}
		a.error(w, http.StatusBadRequest, "Verification failed: "+err.Error())
		return
	}

	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
