package config

import (
	"context"

	"saludos/commons/routes"
	"saludos/commons/server"
	"saludos/internal/domain"
	"saludos/internal/handler"
	"saludos/internal/logger"
	"saludos/internal/moderation"
	"saludos/internal/moderation/classifier"
	"saludos/internal/notify"
	queue "saludos/internal/queue/iface"
	repository "saludos/internal/repository/iface"
	internalRoutes "saludos/internal/routes"
	"saludos/internal/service"
	"saludos/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// SubmissionModule wires the public submission API
func SubmissionModule() fx.Option {
	return fx.Options(
		fx.Provide(
			ProvideValidator,
			ProvideClassifier,
			ProvideModerationEngine,
			ProvideNotifier,
			ProvideNotifyDispatcher,
			ProvideSubmissionService,
			ProvideStatusService,
			ProvideGreetingHandler,
			ProvideJobHandler,
			ProvideSubmissionHealthHandler,
			ProvideSubmissionRouterConfig,
			ProvideSubmissionServerConfig,
			ProvideSubmissionRouteInitializer,
		),
	)
}

// Service Providers

func ProvideValidator(s *Settings) *validation.Validator {
	return validation.New(validation.Config{
		Variant:      domain.ParseFormVariant(s.FormVariant),
		StrictNames:  s.StrictNames,
		NarrativeMax: s.NarrativeMax,
	})
}

func ProvideClassifier(s *Settings, log logger.Logger) (moderation.Classifier, error) {
	return classifier.New(classifier.Config{
		Backend:               s.ModerationBackend,
		PerspectiveAPIKey:     s.PerspectiveAPIKey,
		PerspectiveURL:        s.PerspectiveURL,
		OpenAIAPIKey:          s.OpenAIAPIKey,
		OpenAIBaseURL:         s.OpenAIBaseURL,
		OpenAIChatModel:       s.OpenAIChatModel,
		OpenAIModerationModel: s.OpenAIModerationModel,
	}, log)
}

func ProvideModerationEngine(c moderation.Classifier, s *Settings, log logger.Logger) *moderation.Engine {
	return moderation.NewEngine(nil, c, s.ModerationTimeout, log)
}

func ProvideNotifier(s *Settings, log logger.Logger) notify.Notifier {
	if s.WebhookURL == "" {
		return notify.NewLogNotifier(log)
	}
	return notify.NewWebhookNotifier(s.WebhookURL, s.WebhookTimeout, log)
}

// ProvideNotifyDispatcher waits for in-flight webhooks on shutdown
func ProvideNotifyDispatcher(lc fx.Lifecycle, n notify.Notifier, s *Settings, log logger.Logger) *notify.Dispatcher {
	d := notify.NewDispatcher(n, s.WebhookTimeout, log)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			done := make(chan struct{})
			go func() {
				d.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				log.Warn("shutdown before pending webhooks finished")
				return nil
			}
		},
	})

	return d
}

func ProvideSubmissionService(
	validator *validation.Validator,
	engine *moderation.Engine,
	jobRepo repository.JobRepository,
	jobQueue queue.JobQueue,
	dispatcher *notify.Dispatcher,
	s *Settings,
	log logger.Logger,
) service.SubmissionService {
	return service.NewSubmissionService(
		validator,
		engine,
		jobRepo,
		jobQueue,
		dispatcher,
		service.SubmissionConfig{
			Variant:      domain.ParseFormVariant(s.FormVariant),
			StoreTimeout: s.StoreTimeout,
		},
		log,
	)
}

func ProvideStatusService(jobRepo repository.JobRepository, s *Settings, log logger.Logger) service.StatusService {
	return service.NewStatusService(jobRepo, s.StoreTimeout, log)
}

// HTTP Providers

func ProvideGreetingHandler(submission service.SubmissionService, s *Settings, log logger.Logger) *handler.GreetingHandler {
	return handler.NewGreetingHandler(submission, s.ConfirmationURL, log)
}

func ProvideJobHandler(status service.StatusService, log logger.Logger) *handler.JobHandler {
	return handler.NewJobHandler(status, log)
}

func ProvideSubmissionHealthHandler(jobQueue queue.JobQueue, log logger.Logger) *handler.HealthHandler {
	return handler.NewHealthHandler(log, "submission", jobQueue, nil)
}

func ProvideSubmissionRouterConfig(s *Settings) routes.RouterConfig {
	return routes.RouterConfig{
		ServiceName:    "submission",
		Version:        "v1",
		TrustedProxies: s.TrustedProxies,
		AllowedOrigins: s.CORSAllowedOrigins,
	}
}

func ProvideSubmissionServerConfig(s *Settings) server.ServerConfig {
	return server.ServerConfig{
		Port: s.HTTPPort,
	}
}

func ProvideSubmissionRouteInitializer(
	healthHandler *handler.HealthHandler,
	greetingHandler *handler.GreetingHandler,
	jobHandler *handler.JobHandler,
) func(*gin.Engine, routes.RouteDependencies) {
	return func(router *gin.Engine, deps routes.RouteDependencies) {
		internalRoutes.InitHealthRoutes(router, healthHandler, deps.Logger)
		internalRoutes.InitGreetingRoutes(router, greetingHandler, deps.Logger)
		internalRoutes.InitJobRoutes(router, jobHandler, deps.Logger)
	}
}
