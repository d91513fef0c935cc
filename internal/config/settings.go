package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Backend names accepted by JOB_STORE_BACKEND / JOB_QUEUE_BACKEND.
const (
	BackendRedis    = "redis"
	BackendDynamoDB = "dynamodb"
	BackendSQS      = "sqs"
)

// Settings is the process configuration, read once at startup.
type Settings struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8090"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	TrustedProxies     []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// Logging. LOG_FILE adds a rotated file next to stdout.
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"14"`

	// Job store and queue
	StoreBackend string        `env:"JOB_STORE_BACKEND" envDefault:"redis"`
	QueueBackend string        `env:"JOB_QUEUE_BACKEND" envDefault:"redis"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	RedisURL     string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisToken   string        `env:"REDIS_TOKEN"`
	JobKeyPrefix string        `env:"JOB_KEY_PREFIX" envDefault:"job:"`
	QueueName    string        `env:"JOB_QUEUE_NAME" envDefault:"video:queue"`
	AWSRegion    string        `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSEndpoint  string        `env:"AWS_ENDPOINT"`
	DynamoTable  string        `env:"DYNAMODB_TABLE" envDefault:"greeting_jobs"`
	SQSQueueURL  string        `env:"SQS_QUEUE_URL"`

	// Moderation
	ModerationBackend     string        `env:"MODERATION_BACKEND" envDefault:"openai-chat"`
	ModerationTimeout     time.Duration `env:"MODERATION_TIMEOUT" envDefault:"4s"`
	PerspectiveAPIKey     string        `env:"PERSPECTIVE_API_KEY"`
	PerspectiveURL        string        `env:"PERSPECTIVE_API_URL" envDefault:"https://commentanalyzer.googleapis.com/v1alpha1/comments:analyze"`
	OpenAIAPIKey          string        `env:"OPEN_AI_API_KEY"`
	OpenAIBaseURL         string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIChatModel       string        `env:"OPENAI_CHAT_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIModerationModel string        `env:"OPENAI_MODERATION_MODEL" envDefault:"omni-moderation-latest"`

	// Submission
	WebhookURL      string        `env:"WORKER_WEBHOOK_URL"`
	WebhookTimeout  time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"3s"`
	ConfirmationURL string        `env:"CONFIRMATION_URL" envDefault:"/confirmacion"`
	FormVariant     string        `env:"FORM_VARIANT" envDefault:"full"`
	StrictNames     bool          `env:"VALIDATION_STRICT_NAMES" envDefault:"false"`
	NarrativeMax    int           `env:"VALIDATION_NARRATIVE_MAX" envDefault:"80"`

	// Reconciler
	ZKServers          []string      `env:"ZK_SERVERS" envSeparator:"," envDefault:"localhost:2181"`
	ZKSessionTimeout   time.Duration `env:"ZK_SESSION_TIMEOUT" envDefault:"30s"`
	ReconcilerSchedule string        `env:"RECONCILER_SCHEDULE" envDefault:"0 */5 * * * *"`
	ReconcilerGrace    time.Duration `env:"RECONCILER_GRACE" envDefault:"10m"`
	ReconcilerRequeue  bool          `env:"RECONCILER_REQUEUE" envDefault:"false"`
	ReconcilerBatch    int           `env:"RECONCILER_BATCH" envDefault:"200"`
	ReconcilerPort     string        `env:"RECONCILER_HTTP_PORT" envDefault:"8091"`
}

// IsProduction reports whether the service runs with production logging.
func (s *Settings) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// LoadSettings reads optional .env files and then the environment.
// Missing env files are ignored; values already set in the environment win.
func LoadSettings(files ...string) (*Settings, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	switch s.StoreBackend {
	case BackendRedis, BackendDynamoDB:
	default:
		return fmt.Errorf("unsupported JOB_STORE_BACKEND %q", s.StoreBackend)
	}
	switch s.QueueBackend {
	case BackendRedis:
	case BackendSQS:
		if s.SQSQueueURL == "" {
			return fmt.Errorf("SQS_QUEUE_URL is required when JOB_QUEUE_BACKEND=sqs")
		}
	default:
		return fmt.Errorf("unsupported JOB_QUEUE_BACKEND %q", s.QueueBackend)
	}
	if s.NarrativeMax < 0 {
		return fmt.Errorf("VALIDATION_NARRATIVE_MAX must not be negative")
	}
	return nil
}
