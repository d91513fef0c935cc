package routes

import (
	"net/http"

	"saludos/commons/routes"
	"saludos/internal/dto"
	"saludos/internal/handler"
	"saludos/internal/logger"

	"github.com/gin-gonic/gin"
)

func InitGreetingRoutes(
	router *gin.Engine,
	greetingHandler *handler.GreetingHandler,
	log logger.Logger,
) {
	apiV1 := routes.CreateAPIGroup(router, "v1")

	deps := routes.RouteDependencies{
		Logger: log,
	}

	// POST /api/v1/greetings - JSON submission
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.SubmitGreetingRequest, dto.SubmitGreetingResponse]{
			Path:        "/greetings",
			Method:      http.MethodPost,
			ServiceFunc: greetingHandler.SubmitService,
		},
	)

	// POST /api/v1/greetings/form - form post, redirects on success
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.SubmitGreetingRequest, dto.SubmitGreetingFormResponse]{
			Path:        "/greetings/form",
			Method:      http.MethodPost,
			ServiceFunc: greetingHandler.SubmitFormService,
		},
	)
}
