package moderation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"saludos/internal/logger"

	"golang.org/x/sync/errgroup"
)

const (
	// ReasonDenylist is shown when a field contains a denied word or phrase.
	ReasonDenylist = "El contenido contiene palabras o frases inapropiadas. Por favor, usá un lenguaje respetuoso y evitá temas políticos o religiosos."
	// ReasonClassifier is shown for every classifier rejection, whatever the category.
	ReasonClassifier = "El contenido no es apropiado. Por favor, usá un lenguaje respetuoso y positivo."

	DefaultTimeout = 4 * time.Second
)

// ErrNotConfigured is returned by a classifier that has no credentials.
// The engine treats it as "stage disabled", not as a failure.
var ErrNotConfigured = errors.New("moderation: classifier not configured")

// Result is the verdict for a single piece of text.
type Result struct {
	IsValid    bool               `json:"isValid"`
	Reason     string             `json:"reason,omitempty"`
	Categories []string           `json:"categories,omitempty"`
	Scores     map[string]float64 `json:"scores,omitempty"`
}

// FieldsResult aggregates per-field verdicts. Errors is keyed by field name
// and holds the user-facing reason.
type FieldsResult struct {
	IsValid bool
	Errors  map[string]string
}

// Classifier is an external content classifier.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, text string) (Result, error)
}

// Engine runs the denylist and then the classifier. The classifier is
// best effort: errors, timeouts and panics let the text through.
type Engine struct {
	denylist   *Denylist
	classifier Classifier
	timeout    time.Duration
	logger     logger.Logger
}

// NewEngine creates a moderation engine. A nil classifier disables the
// second stage; a nil denylist uses the built-in list.
func NewEngine(denylist *Denylist, classifier Classifier, timeout time.Duration, log logger.Logger) *Engine {
	if denylist == nil {
		denylist = DefaultDenylist()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{
		denylist:   denylist,
		classifier: classifier,
		timeout:    timeout,
		logger:     log.With(logger.String("component", "moderation_engine")),
	}
}

// ValidateContent moderates a single text.
func (e *Engine) ValidateContent(ctx context.Context, text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{IsValid: true}
	}

	if term, denied := e.denylist.Match(text); denied {
		e.logger.WithContext(ctx).Info("content rejected by denylist",
			logger.String("term", term))
		return Result{IsValid: false, Reason: ReasonDenylist, Categories: []string{"denylist"}}
	}

	if e.classifier == nil {
		return Result{IsValid: true}
	}

	log := e.logger.WithContext(ctx).With(logger.String("classifier", e.classifier.Name()))
	start := time.Now()
	result, err := e.classify(ctx, text)
	if errors.Is(err, ErrNotConfigured) {
		log.Debug("classifier not configured, skipping")
		return Result{IsValid: true}
	}
	if err != nil {
		log.Warn("classifier failed, allowing content",
			logger.Duration("elapsed", time.Since(start)),
			logger.Error(err))
		return Result{IsValid: true}
	}

	if !result.IsValid {
		log.Info("content rejected by classifier",
			logger.Any("categories", result.Categories),
			logger.Any("scores", result.Scores),
			logger.String("classifier_reason", result.Reason))
		return Result{
			IsValid:    false,
			Reason:     ReasonClassifier,
			Categories: result.Categories,
			Scores:     result.Scores,
		}
	}

	log.Debug("content approved", logger.Duration("elapsed", time.Since(start)))
	return Result{IsValid: true, Scores: result.Scores}
}

// ValidateFields moderates every non-empty field concurrently.
func (e *Engine) ValidateFields(ctx context.Context, fields map[string]string) FieldsResult {
	names := make([]string, 0, len(fields))
	for name, text := range fields {
		if strings.TrimSpace(text) == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]Result, len(names))
	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			results[i] = e.ValidateContent(ctx, fields[name])
			return nil
		})
	}
	_ = g.Wait()

	out := FieldsResult{IsValid: true, Errors: map[string]string{}}
	for i, name := range names {
		if results[i].IsValid {
			continue
		}
		out.IsValid = false
		out.Errors[name] = results[i].Reason
	}

	return out
}

type classifyOutcome struct {
	result Result
	err    error
}

// classify bounds the classifier call even when the backend ignores ctx.
func (e *Engine) classify(ctx context.Context, text string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan classifyOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- classifyOutcome{err: fmt.Errorf("classifier panic: %v", r)}
			}
		}()
		result, err := e.classifier.Classify(ctx, text)
		done <- classifyOutcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		return out.result, out.err
	case <-ctx.Done():
		return Result{}, fmt.Errorf("classifier %s: %w", e.classifier.Name(), ctx.Err())
	}
}
