package routes

import (
	"net/http"

	"saludos/commons/routes"
	"saludos/internal/dto"
	"saludos/internal/handler"
	"saludos/internal/logger"

	"github.com/gin-gonic/gin"
)

// InitHealthRoutes registers GET /api/v1/health
func InitHealthRoutes(router *gin.Engine, healthHandler *handler.HealthHandler, log logger.Logger) {
	routes.RegisterRoute(
		routes.CreateAPIGroup(router, "v1"),
		routes.RouteDependencies{Logger: log},
		routes.RouteOptions[dto.HealthCheckRequest, dto.HealthCheckResponse]{
			Path:        "/health",
			Method:      http.MethodGet,
			ServiceFunc: healthHandler.HealthService,
		},
	)
}
