package classifier

import (
	"fmt"
	"net/http"

	"saludos/internal/logger"
	"saludos/internal/moderation"
)

const (
	BackendNone             = "none"
	BackendPerspective      = "perspective"
	BackendOpenAIChat       = "openai-chat"
	BackendOpenAIModeration = "openai-moderation"
)

// Config selects and configures the classifier backend.
type Config struct {
	Backend               string
	PerspectiveAPIKey     string
	PerspectiveURL        string
	OpenAIAPIKey          string
	OpenAIBaseURL         string
	OpenAIChatModel       string
	OpenAIModerationModel string
	HTTPClient            *http.Client
}

// New returns the configured classifier. It returns nil, with no error,
// when the backend is "none" or its credentials are missing; the engine
// then runs the denylist only.
func New(cfg Config, log logger.Logger) (moderation.Classifier, error) {
	log = log.With(logger.String("component", "classifier_factory"))

	switch cfg.Backend {
	case "", BackendNone:
		log.Info("external classifier disabled")
		return nil, nil
	case BackendPerspective:
		if cfg.PerspectiveAPIKey == "" {
			log.Warn("PERSPECTIVE_API_KEY not set, external classifier disabled")
			return nil, nil
		}
		return NewPerspective(cfg.PerspectiveAPIKey, cfg.PerspectiveURL, cfg.HTTPClient, log), nil
	case BackendOpenAIChat:
		if cfg.OpenAIAPIKey == "" {
			log.Warn("OPEN_AI_API_KEY not set, external classifier disabled")
			return nil, nil
		}
		return NewOpenAIChat(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIChatModel, cfg.HTTPClient, log), nil
	case BackendOpenAIModeration:
		if cfg.OpenAIAPIKey == "" {
			log.Warn("OPEN_AI_API_KEY not set, external classifier disabled")
			return nil, nil
		}
		return NewOpenAIModeration(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModerationModel, cfg.HTTPClient, log), nil
	default:
		return nil, fmt.Errorf("unknown moderation backend %q", cfg.Backend)
	}
}
