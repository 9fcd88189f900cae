package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Dteebaba/Survey-Agent/plan"
	"github.com/Dteebaba/Survey-Agent/profile"
)

// ============================================================================
// OPENAI TRANSLATOR — Calls the OpenAI chat completions API
// ============================================================================
// Plan requests run at temperature 0 with a JSON response format, so the
// reply is a single JSON object with no surrounding prose. Summaries are
// plain text.
//
// This is the ONLY file that makes external API calls.
// ============================================================================

// OpenAITranslator implements Translator using the OpenAI API.
type OpenAITranslator struct {
	config Config
	client *http.Client
}

// NewOpenAI creates a new OpenAI translator.
func NewOpenAI(cfg Config) *OpenAITranslator {
	if cfg.Model == "" {
		cfg.Model = "gpt-4.1-mini"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://api.openai.com/v1/chat/completions"
	}

	return &OpenAITranslator{
		config: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreatePlan converts a natural-language request into a Plan.
func (t *OpenAITranslator) CreatePlan(ctx context.Context, request string, prof *profile.Profile) (*plan.Plan, error) {
	log.Printf("🔄 Translator: request=\"%s\" columns=%d rows=%d",
		truncate(request, 80), prof.ColumnCount, prof.RowCount)

	payload, err := userPayload(request, prof)
	if err != nil {
		return nil, err
	}

	response, err := t.call(ctx, PlanSystemPrompt(), payload, true)
	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	p, err := ParsePlan(response)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Translator: sheet=%q filters=%d groups=%d normalize=%d",
		p.SheetName, len(p.Filters), len(p.Groups), len(p.Normalize))

	return p, nil
}

// SummarizeProfile asks the model to describe the dataset in prose.
func (t *OpenAITranslator) SummarizeProfile(ctx context.Context, prof *profile.Profile) (string, error) {
	payload, err := json.Marshal(map[string]any{"profile": prof})
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile: %w", err)
	}

	response, err := t.call(ctx, SummarySystemPrompt(), string(payload), false)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	return strings.TrimSpace(response), nil
}

func userPayload(request string, prof *profile.Profile) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"profile":      prof,
		"user_request": request,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile: %w", err)
	}
	return string(payload), nil
}

// ============================================================================
// OPENAI API CALL
// ============================================================================

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatRequest is the chat completions request body.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

// chatResponse is the chat completions response body.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// call sends one system+user exchange and returns the reply text.
func (t *OpenAITranslator) call(ctx context.Context, system, user string, jsonMode bool) (string, error) {
	reqBody := chatRequest{
		Model: t.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	if jsonMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.config.Endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.config.APIKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai API returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse openai response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("openai error (%s): %s", chatResp.Error.Type, chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ============================================================================
// HELPERS
// ============================================================================

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
