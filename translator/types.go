package translator

import (
	"context"

	"github.com/Dteebaba/Survey-Agent/plan"
	"github.com/Dteebaba/Survey-Agent/profile"
)

// ============================================================================
// TRANSLATOR — AI boundary for natural language → Plan
// ============================================================================
// The Translator is the ONLY component that calls an external AI service.
// It receives profile metadata + the user's request, returns a Plan.
// It NEVER sees raw data. Only column names, types, sample values, and
// the request. The returned Plan is untrusted until the validator accepts it.
// ============================================================================

// Translator turns natural-language requests into Plans.
// Implementations: OpenAI (v1), local LLM (future).
type Translator interface {
	// CreatePlan converts a natural-language request into a Plan,
	// using the profile as the catalog of available columns.
	CreatePlan(ctx context.Context, request string, prof *profile.Profile) (*plan.Plan, error)

	// SummarizeProfile asks the model for a short prose description of
	// what the dataset appears to contain. Advisory only.
	SummarizeProfile(ctx context.Context, prof *profile.Profile) (string, error)
}

// Config holds translator configuration.
type Config struct {
	APIKey   string // AI provider API key
	Model    string // model name (e.g. "gpt-4.1-mini")
	Endpoint string // API endpoint override (empty = default)
}

// DefaultOpenAIConfig returns a Config with OpenAI defaults.
func DefaultOpenAIConfig(apiKey string) Config {
	return Config{
		APIKey:   apiKey,
		Model:    "gpt-4.1-mini",
		Endpoint: "https://api.openai.com/v1/chat/completions",
	}
}
