// Package orchestrator composes prompts, invokes the generation service and
// normalizes its output into structured records.
package orchestrator

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/Aditya-myst/hookflow/internal/domain"
	"github.com/Aditya-myst/hookflow/internal/normalize"
)

// Completer is the opaque generation function: prompt in, free-form text out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Orchestrator turns template requests into normalized record sequences.
type Orchestrator struct {
	completer Completer
	templates domain.HookTemplateRepository
	logger    zerolog.Logger
}

func New(completer Completer, templates domain.HookTemplateRepository, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{completer: completer, templates: templates, logger: logger}
}

// GenerateHooks renders the hook template seeded with stored examples for the
// requested psychology trigger and returns the normalized records. Example
// retrieval is best-effort: any failure falls back to a generic structure
// hint rather than aborting generation.
func (o *Orchestrator) GenerateHooks(ctx context.Context, p HookParams) ([]json.RawMessage, error) {
	examples := fallbackExamples
	if o.templates != nil {
		stored, err := o.templates.ListByTrigger(ctx, p.Psychology, 3)
		if err != nil {
			o.logger.Warn().Err(err).Msg("hook template fetch failed, using fallback")
		} else {
			examples = renderExamples(stored)
		}
	}
	return o.generate(ctx, buildHookPrompt(p, examples))
}

// GenerateCaptions renders the caption template and returns the normalized
// records.
func (o *Orchestrator) GenerateCaptions(ctx context.Context, p CaptionParams) ([]json.RawMessage, error) {
	return o.generate(ctx, buildCaptionPrompt(p))
}

func (o *Orchestrator) generate(ctx context.Context, prompt string) ([]json.RawMessage, error) {
	raw, err := o.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	o.logger.Debug().Str("preview", preview(raw)).Msg("model raw output")
	return normalize.Parse(raw)
}

func preview(s string) string {
	const max = 100
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
