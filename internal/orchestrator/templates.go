package orchestrator

import (
	"fmt"
	"strings"

	"github.com/Aditya-myst/hookflow/internal/domain"
)

// Template identifiers, also recorded on usage events.
const (
	TemplateHooks    = "hooks"
	TemplateCaptions = "captions"
)

// HookParams are the caller-supplied inputs for the hook template. Values are
// substituted into the prompt verbatim; the model prompt is an accepted trust
// boundary.
type HookParams struct {
	Topic      string
	Tone       string
	Niche      string
	Goal       string
	Platform   string
	Psychology string
}

// CaptionParams are the caller-supplied inputs for the caption template.
type CaptionParams struct {
	Topic    string
	Platform string
	Tone     string
}

const fallbackExamples = "Standard viral hooks structure."

func renderExamples(examples []domain.HookExample) string {
	if len(examples) == 0 {
		return fallbackExamples
	}
	sb := &strings.Builder{}
	for i, ex := range examples {
		fmt.Fprintf(sb, "Example %d: %s\n", i+1, ex.Text)
	}
	return sb.String()
}

func buildHookPrompt(p HookParams, examples string) string {
	sb := &strings.Builder{}
	sb.WriteString("Act as a World-Class Viral Content Creator.\n")
	fmt.Fprintf(sb, "Your goal is to generate 10 unique, high-performing video hooks for %s.\n", p.Platform)
	fmt.Fprintf(sb, "Topic: %s\n", p.Topic)
	fmt.Fprintf(sb, "Tone: %s\n", p.Tone)
	fmt.Fprintf(sb, "Niche: %s\n", p.Niche)
	fmt.Fprintf(sb, "Strategy: %s\n", p.Psychology)
	fmt.Fprintf(sb, "Target Goal: %s\n\n", p.Goal)
	sb.WriteString(examples)
	sb.WriteString("\n\nREQUIREMENTS:\n")
	sb.WriteString("1. \"hook\": A punchy, scroll-stopping opening line (under 15 words).\n")
	sb.WriteString("2. \"caption\": A short, engaging caption for the post.\n")
	fmt.Fprintf(sb, "3. \"strategy_leak\": A 1-sentence explanation of why this hook works based on %s.\n\n", p.Psychology)
	sb.WriteString("Strict JSON format:\n")
	sb.WriteString("[\n  {\n    \"hook\": \"...\",\n    \"caption\": \"...\",\n    \"strategy_leak\": \"...\"\n  }\n]\n\n")
	sb.WriteString("CRITICAL: Provide 10 distinct variations. DO NOT return empty strings.")
	return sb.String()
}

func buildCaptionPrompt(p CaptionParams) string {
	sb := &strings.Builder{}
	sb.WriteString("Act as a professional social media manager.\n")
	fmt.Fprintf(sb, "Generate 5 engaging captions for %s about: %s.\n", p.Platform, p.Topic)
	fmt.Fprintf(sb, "Tone: %s.\n\n", p.Tone)
	sb.WriteString("OUTPUT REQUIREMENTS:\n")
	fmt.Fprintf(sb, "- Format for %s (use line breaks/emojis).\n", p.Platform)
	sb.WriteString("- Include 3-5 relevant hashtags.\n")
	sb.WriteString("- Return ONLY a valid JSON array.\n")
	sb.WriteString("- NO Markdown blocks. NO intro text.\n\n")
	sb.WriteString("JSON FORMAT:\n")
	sb.WriteString("[\n    {\n        \"id\": \"1\",\n        \"text\": \"Caption text...\",\n        \"hashtags\": [\"tag1\", \"tag2\"]\n    }\n]")
	return sb.String()
}
