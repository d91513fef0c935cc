package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"saludos/internal/logger"
	"saludos/internal/moderation"
)

const (
	DefaultOpenAIBaseURL   = "https://api.openai.com/v1"
	DefaultOpenAIChatModel = "gpt-4o-mini"
)

const chatSystemPrompt = `Sos un moderador de contenido para una plataforma familiar argentina donde adultos escriben saludos para niños.

Rechazá el texto si contiene:
- insultos, groserías o lenguaje vulgar (incluido lunfardo y variantes escritas con símbolos o números)
- contenido sexual o referencias inapropiadas para niños
- violencia, amenazas o referencias a delitos o drogas
- discriminación, odio o burlas hacia personas o grupos
- temas políticos o religiosos

Aprobá anécdotas familiares, logros, recuerdos y deseos positivos.

Respondé solamente con un objeto JSON con esta forma:
{"isValid": boolean, "reason": string, "categories": [string], "confidence": number}`

type openAIChat struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  logger.Logger
}

// NewOpenAIChat creates a classifier that asks a chat model for a JSON
// verdict.
func NewOpenAIChat(apiKey, baseURL, model string, client *http.Client, log logger.Logger) moderation.Classifier {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIChatModel
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &openAIChat{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  client,
		logger:  log.With(logger.String("component", "openai_chat_classifier")),
	}
}

func (o *openAIChat) Name() string { return BackendOpenAIChat }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatVerdict struct {
	IsValid    *bool    `json:"isValid"`
	Reason     string   `json:"reason"`
	Categories []string `json:"categories"`
	Confidence *float64 `json:"confidence"`
}

func (o *openAIChat) Classify(ctx context.Context, text string) (moderation.Result, error) {
	if o.apiKey == "" {
		return moderation.Result{}, moderation.ErrNotConfigured
	}

	req := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Texto a moderar: %q", text)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0,
		MaxTokens:      300,
	}

	var resp chatResponse
	err := postJSON(ctx, o.client, o.baseURL+"/chat/completions",
		map[string]string{"Authorization": "Bearer " + o.apiKey}, req, &resp)
	if err != nil {
		return moderation.Result{}, fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return moderation.Result{}, fmt.Errorf("openai chat: empty completion")
	}

	var verdict chatVerdict
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &verdict); err != nil {
		return moderation.Result{}, fmt.Errorf("openai chat: malformed verdict: %w", err)
	}
	if verdict.IsValid == nil {
		return moderation.Result{}, fmt.Errorf("openai chat: verdict without isValid")
	}

	o.logger.Debug("chat verdict",
		logger.Bool("is_valid", *verdict.IsValid),
		logger.Any("categories", verdict.Categories))
	result := moderation.Result{
		IsValid:    *verdict.IsValid,
		Reason:     verdict.Reason,
		Categories: verdict.Categories,
	}
	if verdict.Confidence != nil {
		result.Scores = map[string]float64{"confidence": *verdict.Confidence}
	}
	return result, nil
}
