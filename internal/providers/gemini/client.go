// Package gemini wraps the Google Gemini SDK behind the narrow completion
// contract the orchestrator consumes.
package gemini

import (
	"context"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Aditya-myst/hookflow/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client invokes the Gemini generate-content API with content filtering
// disabled for all harm categories. Marketing copy trips the default filters
// constantly; over-blocking benign output is worse for this service than
// passing it through.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{client: client, model: model, timeout: timeout}, nil
}

// Complete sends the prompt and returns the raw model text. Failures come
// back as *domain.GenerationError; provider quota exhaustion is flagged as
// rate limited so callers can advise backoff instead of reporting an outage.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SafetySettings: safetyOff(),
	})
	if err != nil {
		return "", classify(err)
	}

	text := result.Text()
	if text == "" {
		return "", &domain.GenerationError{}
	}
	return text, nil
}

func safetyOff() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, category := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}
	return settings
}

// classify maps provider errors onto the caller-visible taxonomy. The quota
// substring match mirrors how the provider words its rate-limit errors.
func classify(err error) error {
	rateLimited := strings.Contains(strings.ToLower(err.Error()), "quota")
	return &domain.GenerationError{RateLimited: rateLimited, Err: err}
}
