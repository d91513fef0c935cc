package routes

import (
	"net/http"

	"saludos/commons/routes"
	"saludos/internal/dto"
	"saludos/internal/handler"
	"saludos/internal/logger"

	"github.com/gin-gonic/gin"
)

func InitReconcilerRoutes(
	router *gin.Engine,
	reconcilerHandler *handler.ReconcilerHandler,
	log logger.Logger,
) {
	apiV1 := routes.CreateAPIGroup(router, "v1")

	deps := routes.RouteDependencies{
		Logger: log,
	}

	// POST /api/v1/reconciler/sweep - run a sweep now
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.RunSweepRequest, dto.SweepSummary]{
			Path:        "/reconciler/sweep",
			Method:      http.MethodPost,
			ServiceFunc: reconcilerHandler.RunSweepService,
		},
	)
}
