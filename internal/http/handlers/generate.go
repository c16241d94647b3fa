package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Aditya-myst/hookflow/internal/domain"
	"github.com/Aditya-myst/hookflow/internal/ledger"
	"github.com/Aditya-myst/hookflow/internal/orchestrator"
)

const quotaExceededMsg = "Daily limit reached (3/3). Upgrade to Pro for unlimited generation."

// HooksGenerate handles GET /api/hooks/generate.
func (a *App) HooksGenerate(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.identity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	q := r.URL.Query()
	params := orchestrator.HookParams{
		Topic:      q.Get("topic"),
		Tone:       q.Get("tone"),
		Niche:      q.Get("niche"),
		Goal:       q.Get("goal"),
		Platform:   q.Get("platform"),
		Psychology: q.Get("psychology"),
	}
	for name, value := range map[string]string{
		"topic": params.Topic, "tone": params.Tone, "niche": params.Niche,
		"goal": params.Goal, "platform": params.Platform, "psychology": params.Psychology,
	} {
		if value == "" {
			a.error(w, http.StatusBadRequest, "missing required parameter: "+name)
			return
		}
	}

	a.generate(w, r, identity, orchestrator.TemplateHooks, func(ctx context.Context) ([]json.RawMessage, error) {
		return a.Gen.GenerateHooks(ctx, params)
	})
}

// CaptionsGenerate handles GET /api/captions/generate.
func (a *App) CaptionsGenerate(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.identity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	q := r.URL.Query()
	params := orchestrator.CaptionParams{
		Topic:    q.Get("topic"),
		Platform: q.Get("platform"),
		Tone:     q.Get("tone"),
	}
	for name, value := range map[string]string{
		"topic": params.Topic, "platform": params.Platform, "tone": params.Tone,
	} {
		if value == "" {
			a.error(w, http.StatusBadRequest, "missing required parameter: "+name)
			return
		}
	}

	a.generate(w, r, identity, orchestrator.TemplateCaptions, func(ctx context.Context) ([]json.RawMessage, error) {
		return a.Gen.GenerateCaptions(ctx, params)
	})
}

// generate runs the quota gate, the generation call and usage bookkeeping
// shared by both templates.
func (a *App) generate(w http.ResponseWriter, r *http.Request, identity ledger.Identity, template string, run func(context.Context) ([]json.RawMessage, error)) {
	decision := a.Ledger.CheckAndDebit(r.Context(), identity, a.now())
	if !decision.Allowed {
		a.error(w, http.StatusPaymentRequired, quotaExceededMsg)
		return
	}

	start := time.Now()
	records, err := run(r.Context())
	a.recordUsage(r.Context(), identity.UserID, template, err == nil, time.Since(start))
	if err != nil {
		a.generationError(w, err)
		return
	}
	a.json(w, http.StatusOK, records)
}

func (a *App) generationError(w http.ResponseWriter, err error) {
	var genErr *domain.GenerationError
	if errors.As(err, &genErr) {
		switch {
		case genErr.RateLimited:
			a.error(w, http.StatusTooManyRequests, "AI Service Quota Exceeded. Please try again in a minute.")
		case genErr.Err == nil:
			a.error(w, http.StatusInternalServerError, "AI service returned empty response. Please try a different topic.")
		default:
			a.Logger.Error().Err(genErr.Err).Msg("generation failed")
			a.error(w, http.StatusInternalServerError, "AI Generation failed")
		}
		return
	}

	var malformed *domain.MalformedOutputError
	if errors.As(err, &malformed) {
		a.Logger.Error().Str("raw", malformed.Raw).Msg("model output was not valid JSON")
		a.json(w, http.StatusInternalServerError, map[string]string{
			"error": "AI response was not valid JSON",
			"raw":   malformed.Raw,
		})
		return
	}

	a.Logger.Error().Err(err).Msg("generation endpoint error")
	a.error(w, http.StatusInternalServerError, err.Error())
}

func (a *App) recordUsage(ctx context.Context, userID, template string, success bool, latency time.Duration) {
	if a.Usage == nil {
		return
	}
	event := &domain.UsageEvent{
		UserID:    userID,
		Template:  template,
		Success:   success,
		LatencyMS: int(latency.Milliseconds()),
	}
	if err := a.Usage.Insert(ctx, event); err != nil {
		a.Logger.Warn().Err(err).Msg("usage event insert failed")
	}
}
