package translator

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dteebaba/Survey-Agent/profile"
)

// ============================================================================
// PROMPT BUILDERS — Profile-driven AI prompt generation
// ============================================================================
// Prompts are generated from the dataset profile rather than hardcoded to
// one dataset: column names, inferred types, and sample values are listed so
// the model can only reference what actually exists. The validator rejects
// anything it invents anyway.
//
// Total data sent to the AI: profile metadata plus the request. Never rows.
// ============================================================================

// PlanSystemPrompt is the system prompt for plan creation.
func PlanSystemPrompt() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf(`You are a data planning assistant for tabular survey and contracting datasets.

CURRENT DATE: %s

You will receive a JSON object with:
- "profile": dataset metadata (row count, columns with name/type/samples)
- "user_request": a natural-language instruction describing the output the user wants

YOUR ROLE:
Translate the request into a structured plan that a local engine will execute.
You are a PLANNER ONLY — do NOT compute or invent any values. The engine does all row processing.

`, time.Now().Format("2006-01-02")))

	b.WriteString(`COLUMN TYPES AND OPERATORS:
- "date" and "numeric" columns support: equals, range (inclusive "min"/"max", either side may be omitted), is_null
- "numeric" columns additionally support: in (list of numbers as strings)
- "categorical", "identifier", and "free_text" columns support: equals, in, contains, is_null
- equals, in, and contains are case-insensitive on text columns
- dates are written "yyyy-mm-dd"
- filters within one sheet are AND-combined; there is no OR

RESPONSE FORMAT — return ONLY valid JSON in this structure:

{
  "filters": [
    {"column": "PostedDate", "op": "range", "min": "2024-02-01", "max": "2024-02-15"},
    {"column": "Type", "op": "equals", "value": "Solicitation"}
  ],
  "columns": ["NoticeId", "Title", "Type", "PostedDate"],
  "sheetName": "Filtered",
  "limit": 0,
  "groups": [
    {
      "name": "By NAICS",
      "filters": [],
      "groupBy": "NaicsCode",
      "aggregates": [{"column": "", "func": "count", "as": "count"}],
      "sort": {"column": "count", "descending": true}
    }
  ],
  "normalize": [
    {"column": "TypeOfSetAside", "as": "SetAsideBucket", "preset": "set_aside"}
  ],
  "explanation": "Short natural language explanation of how the output is filtered and structured."
}

RULES:
- Every top-level field must exist; use "" / [] / 0 when not needed.
- Only reference column names present in profile.columns. Do NOT invent columns.
- "columns" lists the main sheet's output columns in order; [] means all columns.
- Each entry in "groups" adds one extra sheet. Grouped sheets set "groupBy" and
  "aggregates" (func is one of count, sum, mean, min, max); sum and mean need a
  numeric column; min and max accept numeric or date columns.
- Use "normalize" with preset "set_aside" or "opportunity_type" when the request
  filters on messy set-aside or notice-type text; then filter on the "as" column.
- "explanation" is shown to the user. Keep it to one or two sentences.
- Return JSON only, no extra text.
`)

	return b.String()
}

// SummarySystemPrompt is the system prompt for dataset summaries.
func SummarySystemPrompt() string {
	return `You are an expert analyst for tabular survey and federal contracting datasets.

You will receive a JSON object named "profile" with row/column counts and, per
column: name, inferred type (date, numeric, categorical, identifier, free_text),
sample values, null count, and distinct count.

Your job:
1. Explain in clear, simple language what this dataset appears to represent.
2. Highlight the most important columns and what they seem to mean.
3. Point out likely date, type, set-aside, and NAICS columns when present.
4. Mention potential issues (many missing values, ambiguous columns).

Output 2-5 short paragraphs of plain text. Bullet points are fine.
Do NOT output code or JSON.`
}

// DescribeProfile renders a compact plain-text view of a profile, used by
// the CLI when no API key is configured.
func DescribeProfile(prof *profile.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d rows, %d columns\n", prof.RowCount, prof.ColumnCount)
	for _, c := range prof.Columns {
		fmt.Fprintf(&b, "- %s (%s)", c.Name, c.Type)
		if len(c.Samples) > 0 {
			n := len(c.Samples)
			if n > 3 {
				n = 3
			}
			fmt.Fprintf(&b, " e.g. %s", strings.Join(c.Samples[:n], ", "))
		}
		if c.NullCount > 0 {
			fmt.Fprintf(&b, " [%d null]", c.NullCount)
		}
		b.WriteString("\n")
	}
	return b.String()
}
