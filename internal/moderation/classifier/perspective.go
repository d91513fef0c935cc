package classifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"saludos/internal/logger"
	"saludos/internal/moderation"
)

const DefaultPerspectiveURL = "https://commentanalyzer.googleapis.com/v1alpha1/comments:analyze"

// perspectiveAttributes are requested on every call. Only those with a
// threshold can reject; the rest are logged with the scores.
var perspectiveAttributes = []string{
	"TOXICITY", "SEVERE_TOXICITY", "IDENTITY_ATTACK", "INSULT", "PROFANITY", "THREAT",
}

var perspectiveThresholds = map[string]float64{
	"toxicity":        0.7,
	"severe_toxicity": 0.5,
	"insult":          0.7,
	"profanity":       0.7,
}

type perspective struct {
	apiKey string
	url    string
	client *http.Client
	policy *moderation.ThresholdPolicy
	logger logger.Logger
}

// NewPerspective creates a classifier backed by the Perspective comment
// analyzer. An empty apiKey yields moderation.ErrNotConfigured on every call.
func NewPerspective(apiKey, endpoint string, client *http.Client, log logger.Logger) moderation.Classifier {
	if endpoint == "" {
		endpoint = DefaultPerspectiveURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &perspective{
		apiKey: apiKey,
		url:    endpoint,
		client: client,
		policy: moderation.MustThresholdPolicy(perspectiveThresholds),
		logger: log.With(logger.String("component", "perspective_classifier")),
	}
}

func (p *perspective) Name() string { return BackendPerspective }

type perspectiveRequest struct {
	Comment             perspectiveComment  `json:"comment"`
	RequestedAttributes map[string]struct{} `json:"requestedAttributes"`
	Languages           []string            `json:"languages"`
}

type perspectiveComment struct {
	Text string `json:"text"`
}

type perspectiveResponse struct {
	AttributeScores map[string]struct {
		SummaryScore struct {
			Value float64 `json:"value"`
		} `json:"summaryScore"`
	} `json:"attributeScores"`
}

func (p *perspective) Classify(ctx context.Context, text string) (moderation.Result, error) {
	if p.apiKey == "" {
		return moderation.Result{}, moderation.ErrNotConfigured
	}

	req := perspectiveRequest{
		Comment:             perspectiveComment{Text: text},
		RequestedAttributes: make(map[string]struct{}, len(perspectiveAttributes)),
		Languages:           []string{"es"},
	}
	for _, attr := range perspectiveAttributes {
		req.RequestedAttributes[attr] = struct{}{}
	}

	endpoint := p.url + "?key=" + url.QueryEscape(p.apiKey)
	var resp perspectiveResponse
	if err := postJSON(ctx, p.client, endpoint, nil, req, &resp); err != nil {
		return moderation.Result{}, fmt.Errorf("perspective: %w", err)
	}
	if len(resp.AttributeScores) == 0 {
		return moderation.Result{}, fmt.Errorf("perspective: response has no attribute scores")
	}

	scores := make(map[string]float64, len(resp.AttributeScores))
	for attr, score := range resp.AttributeScores {
		scores[strings.ToLower(attr)] = score.SummaryScore.Value
	}

	violations, err := p.policy.Violations(scores)
	if err != nil {
		return moderation.Result{}, fmt.Errorf("perspective: %w", err)
	}

	p.logger.Debug("perspective scores", logger.Any("scores", scores))
	return moderation.Result{
		IsValid:    len(violations) == 0,
		Categories: violations,
		Scores:     scores,
	}, nil
}
