package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dteebaba/Survey-Agent/plan"
	"github.com/Dteebaba/Survey-Agent/profile"
)

// ============================================================================
// OPENAI TRANSLATOR TESTS
// ============================================================================
// The API is stubbed with httptest; no network calls.
// ============================================================================

func testProfile() *profile.Profile {
	p := &profile.Profile{RowCount: 3, ColumnCount: 0}
	p = p.WithColumn(profile.ColumnProfile{Name: "Type", Type: profile.TypeCategorical, Samples: []string{"Solicitation"}})
	p = p.WithColumn(profile.ColumnProfile{Name: "PostedDate", Type: profile.TypeDate})
	return p
}

func chatReply(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(b)
}

func TestCreatePlan(t *testing.T) {
	planJSON := `{"filters":[{"column":"Type","op":"equals","value":"Solicitation"}],"columns":["Type"],"sheetName":"Sols","explanation":"Solicitations only."}`

	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(chatReply(planJSON)))
	}))
	defer srv.Close()

	tr := NewOpenAI(Config{APIKey: "test-key", Endpoint: srv.URL})
	p, err := tr.CreatePlan(context.Background(), "solicitations only", testProfile())
	require.NoError(t, err)

	assert.Equal(t, "Sols", p.SheetName)
	require.Len(t, p.Filters, 1)
	assert.Equal(t, plan.OpEquals, p.Filters[0].Op)

	// Request shape: json mode, temperature 0, profile in the user payload
	assert.Equal(t, "gpt-4.1-mini", captured.Model)
	assert.Zero(t, captured.Temperature)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[1].Content, `"PostedDate"`)
	assert.Contains(t, captured.Messages[1].Content, "solicitations only")
}

func TestCreatePlanAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	tr := NewOpenAI(Config{APIKey: "k", Endpoint: srv.URL})
	_, err := tr.CreatePlan(context.Background(), "anything", testProfile())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCreatePlanContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := NewOpenAI(Config{APIKey: "k", Endpoint: srv.URL})
	_, err := tr.CreatePlan(ctx, "anything", testProfile())
	require.Error(t, err)
}

func TestSummarizeProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// Summaries are prose: no JSON response format
		assert.Nil(t, req.ResponseFormat)
		w.Write([]byte(chatReply("  This looks like federal contract notices.\n")))
	}))
	defer srv.Close()

	tr := NewOpenAI(Config{APIKey: "k", Endpoint: srv.URL})
	summary, err := tr.SummarizeProfile(context.Background(), testProfile())
	require.NoError(t, err)
	assert.Equal(t, "This looks like federal contract notices.", summary)
}

func TestDefaults(t *testing.T) {
	tr := NewOpenAI(Config{APIKey: "k"})
	assert.Equal(t, "gpt-4.1-mini", tr.config.Model)
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", tr.config.Endpoint)
}
