package classifier

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"saludos/internal/logger"
	"saludos/internal/moderation"
)

const DefaultOpenAIModerationModel = "omni-moderation-latest"

var openAIModerationThresholds = map[string]float64{
	"hate":       0.3,
	"harassment": 0.4,
	"violence":   0.4,
	"sexual":     0.3,
	"self_harm":  0.3,
}

type openAIModeration struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	policy  *moderation.ThresholdPolicy
	logger  logger.Logger
}

// NewOpenAIModeration creates a classifier backed by the OpenAI moderation
// endpoint. The text is rejected when the backend flags it or any category
// score exceeds its threshold.
func NewOpenAIModeration(apiKey, baseURL, model string, client *http.Client, log logger.Logger) moderation.Classifier {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIModerationModel
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &openAIModeration{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  client,
		policy:  moderation.MustThresholdPolicy(openAIModerationThresholds),
		logger:  log.With(logger.String("component", "openai_moderation_classifier")),
	}
}

func (o *openAIModeration) Name() string { return BackendOpenAIModeration }

type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Flagged        bool               `json:"flagged"`
		Categories     map[string]bool    `json:"categories"`
		CategoryScores map[string]float64 `json:"category_scores"`
	} `json:"results"`
}

func (o *openAIModeration) Classify(ctx context.Context, text string) (moderation.Result, error) {
	if o.apiKey == "" {
		return moderation.Result{}, moderation.ErrNotConfigured
	}

	var resp moderationResponse
	err := postJSON(ctx, o.client, o.baseURL+"/moderations",
		map[string]string{"Authorization": "Bearer " + o.apiKey},
		moderationRequest{Model: o.model, Input: text}, &resp)
	if err != nil {
		return moderation.Result{}, fmt.Errorf("openai moderation: %w", err)
	}
	if len(resp.Results) == 0 {
		return moderation.Result{}, fmt.Errorf("openai moderation: empty results")
	}

	first := resp.Results[0]
	scores := make(map[string]float64, len(first.CategoryScores))
	for category, score := range first.CategoryScores {
		scores[categoryKey(category)] = score
	}

	violations, err := o.policy.Violations(scores)
	if err != nil {
		return moderation.Result{}, fmt.Errorf("openai moderation: %w", err)
	}

	if first.Flagged && len(violations) == 0 {
		for category, flagged := range first.Categories {
			if flagged {
				violations = append(violations, categoryKey(category))
			}
		}
		sort.Strings(violations)
	}

	o.logger.Debug("moderation scores",
		logger.Bool("flagged", first.Flagged),
		logger.Any("scores", scores))
	return moderation.Result{
		IsValid:    !first.Flagged && len(violations) == 0,
		Categories: violations,
		Scores:     scores,
	}, nil
}

// categoryKey turns "harassment/threatening" into "harassment_threatening".
func categoryKey(category string) string {
	return strings.NewReplacer("/", "_", "-", "_").Replace(strings.ToLower(category))
}
