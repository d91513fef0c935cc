package routes

import (
	"encoding/json"
	"net/http"

	"saludos/commons/routes"
	"saludos/internal/dto"
	"saludos/internal/handler"
	"saludos/internal/logger"

	"github.com/gin-gonic/gin"
)

func InitJobRoutes(
	router *gin.Engine,
	jobHandler *handler.JobHandler,
	log logger.Logger,
) {
	apiV1 := routes.CreateAPIGroup(router, "v1")
	legacy := routes.CreateLegacyAPIGroup(router)

	deps := routes.RouteDependencies{
		Logger: log,
	}

	register := func(group gin.IRouter, path string) {
		routes.RegisterRoute(
			group,
			deps,
			routes.RouteOptions[dto.GetJobStatusRequest, json.RawMessage]{
				Path:        path,
				Method:      http.MethodGet,
				ServiceFunc: jobHandler.GetStatusService,
			},
		)
	}

	// GET /api/v1/jobs/status?videoId=
	register(apiV1, "/jobs/status")
	// GET /api/v1/jobs/:id
	register(apiV1, "/jobs/:id")
	// GET /api/generate-video?videoId= for clients of the old endpoint
	register(legacy, "/generate-video")
}
