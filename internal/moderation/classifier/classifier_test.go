package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"saludos/internal/logger"
	"saludos/internal/moderation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.NewZapLoggerForDev()
	require.NoError(t, err)
	return log
}

func jsonServer(t *testing.T, status int, body any, inspect func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inspect != nil {
			inspect(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPerspectiveThresholds(t *testing.T) {
	var got perspectiveRequest
	srv := jsonServer(t, http.StatusOK, map[string]any{
		"attributeScores": map[string]any{
			"TOXICITY":        map[string]any{"summaryScore": map[string]any{"value": 0.82}},
			"SEVERE_TOXICITY": map[string]any{"summaryScore": map[string]any{"value": 0.1}},
			"THREAT":          map[string]any{"summaryScore": map[string]any{"value": 0.99}},
		},
	}, func(r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})

	c := NewPerspective("secret", srv.URL, srv.Client(), testLogger(t))
	result, err := c.Classify(context.Background(), "texto")
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"toxicity"}, result.Categories)
	assert.InDelta(t, 0.99, result.Scores["threat"], 0.0001)
	assert.Equal(t, "texto", got.Comment.Text)
	assert.Equal(t, []string{"es"}, got.Languages)
	assert.Len(t, got.RequestedAttributes, 6)
}

func TestPerspectiveBelowThresholds(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, map[string]any{
		"attributeScores": map[string]any{
			"TOXICITY": map[string]any{"summaryScore": map[string]any{"value": 0.7}},
		},
	}, nil)

	c := NewPerspective("secret", srv.URL, srv.Client(), testLogger(t))
	result, err := c.Classify(context.Background(), "texto")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
}

func TestOpenAIModeration(t *testing.T) {
	tests := []struct {
		name       string
		flagged    bool
		categories map[string]bool
		scores     map[string]float64
		wantValid  bool
		wantCats   []string
	}{
		{
			name:      "clean",
			scores:    map[string]float64{"hate": 0.01, "self-harm": 0.02},
			wantValid: true,
		},
		{
			name:      "score over threshold",
			scores:    map[string]float64{"harassment": 0.41, "self-harm": 0.31},
			wantValid: false,
			wantCats:  []string{"harassment", "self_harm"},
		},
		{
			name:       "flagged below thresholds",
			flagged:    true,
			categories: map[string]bool{"violence/graphic": true, "hate": false},
			scores:     map[string]float64{"violence/graphic": 0.2},
			wantValid:  false,
			wantCats:   []string{"violence_graphic"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jsonServer(t, http.StatusOK, map[string]any{
				"results": []map[string]any{{
					"flagged":         tt.flagged,
					"categories":      tt.categories,
					"category_scores": tt.scores,
				}},
			}, func(r *http.Request) {
				assert.Equal(t, "/moderations", r.URL.Path)
				assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
			})

			c := NewOpenAIModeration("key", srv.URL, "", srv.Client(), testLogger(t))
			result, err := c.Classify(context.Background(), "texto")
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.IsValid)
			assert.Equal(t, tt.wantCats, result.Categories)
		})
	}
}

func TestOpenAIChatVerdict(t *testing.T) {
	verdict := `{"isValid": false, "reason": "lenguaje vulgar", "categories": ["profanity"], "confidence": 0.9}`
	srv := jsonServer(t, http.StatusOK, map[string]any{
		"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": verdict}}},
	}, func(r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultOpenAIChatModel, req.Model)
		assert.Equal(t, "json_object", req.ResponseFormat["type"])
	})

	c := NewOpenAIChat("key", srv.URL, "", srv.Client(), testLogger(t))
	result, err := c.Classify(context.Background(), "texto")
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	assert.Equal(t, "lenguaje vulgar", result.Reason)
	assert.Equal(t, []string{"profanity"}, result.Categories)
	assert.InDelta(t, 0.9, result.Scores["confidence"], 0.0001)
}

func TestOpenAIChatMalformedVerdict(t *testing.T) {
	for _, content := range []string{"no es json", `{"reason": "sin veredicto"}`, ""} {
		srv := jsonServer(t, http.StatusOK, map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": content}}},
		}, nil)

		c := NewOpenAIChat("key", srv.URL, "", srv.Client(), testLogger(t))
		_, err := c.Classify(context.Background(), "texto")
		assert.Error(t, err, content)
	}
}

func TestBackendsReturnErrorOnNon2xx(t *testing.T) {
	srv := jsonServer(t, http.StatusInternalServerError, map[string]any{"error": "boom"}, nil)
	log := testLogger(t)

	backends := []moderation.Classifier{
		NewPerspective("k", srv.URL, srv.Client(), log),
		NewOpenAIChat("k", srv.URL, "", srv.Client(), log),
		NewOpenAIModeration("k", srv.URL, "", srv.Client(), log),
	}
	for _, c := range backends {
		_, err := c.Classify(context.Background(), "texto")
		require.Error(t, err, c.Name())
		assert.Contains(t, err.Error(), "http 500", c.Name())
	}
}

func TestBackendsWithoutKeyAreNotConfigured(t *testing.T) {
	log := testLogger(t)
	backends := []moderation.Classifier{
		NewPerspective("", "", nil, log),
		NewOpenAIChat("", "", "", nil, log),
		NewOpenAIModeration("", "", "", nil, log),
	}
	for _, c := range backends {
		_, err := c.Classify(context.Background(), "texto")
		assert.True(t, errors.Is(err, moderation.ErrNotConfigured), c.Name())
	}
}

func TestEngineFailsOpenOnServerError(t *testing.T) {
	srv := jsonServer(t, http.StatusServiceUnavailable, map[string]any{}, nil)
	log := testLogger(t)

	engine := moderation.NewEngine(nil, NewPerspective("k", srv.URL, srv.Client(), log), 0, log)
	result := engine.ValidateContent(context.Background(), "Una bicicleta roja")

	assert.True(t, result.IsValid)
}

func TestNew(t *testing.T) {
	log := testLogger(t)

	c, err := New(Config{Backend: BackendNone}, log)
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = New(Config{Backend: BackendOpenAIChat}, log)
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = New(Config{Backend: BackendPerspective, PerspectiveAPIKey: "k"}, log)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, BackendPerspective, c.Name())

	c, err = New(Config{Backend: BackendOpenAIModeration, OpenAIAPIKey: "k"}, log)
	require.NoError(t, err)
	assert.Equal(t, BackendOpenAIModeration, c.Name())

	_, err = New(Config{Backend: "bard"}, log)
	assert.Error(t, err)
}
