package config

import (
	"context"
	"fmt"
	"os"

	commonConfig "saludos/commons/config"
	"saludos/commons/routes"
	"saludos/commons/server"
	coordinator "saludos/internal/coordinator/iface"
	"saludos/internal/handler"
	"saludos/internal/logger"
	queue "saludos/internal/queue/iface"
	repository "saludos/internal/repository/iface"
	internalRoutes "saludos/internal/routes"
	"saludos/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// JanitorModule wires the orphan reconciler and its small HTTP surface
func JanitorModule() fx.Option {
	return fx.Options(
		fx.Provide(
			ProvideZooKeeperConfig,
			commonConfig.ProvideZooKeeperCoordinator,
			ProvideReconciler,
			ProvideJanitorHealthHandler,
			ProvideReconcilerHandler,
			ProvideJanitorRouterConfig,
			ProvideJanitorServerConfig,
			ProvideJanitorRouteInitializer,
		),
		fx.Invoke(ManageReconcilerLifecycle),
	)
}

func ProvideZooKeeperConfig(s *Settings) commonConfig.ZooKeeperConfig {
	return commonConfig.ZooKeeperConfig{
		Servers:        s.ZKServers,
		SessionTimeout: s.ZKSessionTimeout,
	}
}

func ProvideReconciler(
	jobRepo repository.JobRepository,
	jobQueue queue.JobQueue,
	coord coordinator.Coordinator,
	s *Settings,
	log logger.Logger,
) *service.Reconciler {
	return service.NewReconciler(jobRepo, jobQueue, coord, service.ReconcilerConfig{
		Schedule:     s.ReconcilerSchedule,
		Grace:        s.ReconcilerGrace,
		Requeue:      s.ReconcilerRequeue,
		Batch:        s.ReconcilerBatch,
		NodeID:       nodeID(),
		StoreTimeout: s.StoreTimeout,
	}, log)
}

func nodeID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "janitor"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}

// HTTP Providers

func ProvideJanitorHealthHandler(jobQueue queue.JobQueue, reconciler *service.Reconciler, log logger.Logger) *handler.HealthHandler {
	return handler.NewHealthHandler(log, "janitor", jobQueue, reconciler)
}

func ProvideReconcilerHandler(reconciler *service.Reconciler, log logger.Logger) *handler.ReconcilerHandler {
	return handler.NewReconcilerHandler(reconciler, log)
}

func ProvideJanitorRouterConfig(s *Settings) routes.RouterConfig {
	return routes.RouterConfig{
		ServiceName:    "janitor",
		Version:        "v1",
		TrustedProxies: s.TrustedProxies,
		AllowedOrigins: s.CORSAllowedOrigins,
	}
}

func ProvideJanitorServerConfig(s *Settings) server.ServerConfig {
	return server.ServerConfig{
		Port: s.ReconcilerPort,
	}
}

func ProvideJanitorRouteInitializer(
	healthHandler *handler.HealthHandler,
	reconcilerHandler *handler.ReconcilerHandler,
) func(*gin.Engine, routes.RouteDependencies) {
	return func(router *gin.Engine, deps routes.RouteDependencies) {
		internalRoutes.InitHealthRoutes(router, healthHandler, deps.Logger)
		internalRoutes.InitReconcilerRoutes(router, reconcilerHandler, deps.Logger)
	}
}

// Lifecycle Management

func ManageReconcilerLifecycle(lc fx.Lifecycle, reconciler *service.Reconciler, srv *server.HTTPServer, log logger.Logger) {
	// Depending on the server keeps it in the graph so its hooks run.
	_ = srv

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting reconciler cron")
			return reconciler.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping reconciler")
			return reconciler.Stop(ctx)
		},
	})
}
