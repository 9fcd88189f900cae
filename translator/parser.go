package translator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Dteebaba/Survey-Agent/plan"
)

// ============================================================================
// RESPONSE PARSER — Extracts a Plan from the AI response
// ============================================================================
// JSON mode keeps prose out of the reply, but models still occasionally wrap
// output in markdown fences, so the parser strips them before unmarshalling.
// Semantic checks are the validator's job; this only handles shape.
// ============================================================================

// ParsePlan extracts a Plan from the AI's JSON response.
func ParsePlan(response string) (*plan.Plan, error) {
	cleaned := stripFences(response)

	var p plan.Plan
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan response: %w (response: %.200s)", err, cleaned)
	}

	if p.SheetName == "" {
		p.SheetName = plan.DefaultSheetName
	}
	return &p, nil
}

// stripFences removes a surrounding markdown code block, if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
