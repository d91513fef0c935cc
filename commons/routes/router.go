package routes

import (
	"net/http"

	"saludos/commons/handler"
	"saludos/internal/logger"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	ServiceName string
	Version     string
	// TrustedProxies limits which peers may set X-Forwarded-For. Empty trusts none.
	TrustedProxies []string
	// AllowedOrigins for CORS. Empty allows any origin without credentials.
	AllowedOrigins []string
}

type RouteDependencies struct {
	Logger logger.Logger
}

type RouteOptions[InputDto any, OutputDto any] struct {
	Path        string
	Method      string
	ServiceFunc handler.ServiceFunc[InputDto, OutputDto]
}

var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

func NewRouter(config RouterConfig, deps RouteDependencies) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	if err := r.SetTrustedProxies(config.TrustedProxies); err != nil {
		deps.Logger.Warn("invalid trusted proxies, trusting none", logger.Error(err))
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(
		handler.RequestIDMiddleware(),
		handler.LoggingMiddleware(deps.Logger.With(logger.String("service", config.ServiceName))),
		handler.ErrorHandlingMiddleware(deps.Logger),
		handler.CORSMiddleware(config.AllowedOrigins),
	)

	r.HandleMethodNotAllowed = true
	r.NoRoute(handler.NoRouteHandler())
	r.NoMethod(handler.NoMethodHandler())

	return r
}

func RegisterRoute[InputDto any, OutputDto any](
	group gin.IRouter,
	deps RouteDependencies,
	options RouteOptions[InputDto, OutputDto],
) {
	if !supportedMethods[options.Method] {
		deps.Logger.Error("unsupported HTTP method",
			logger.String("method", options.Method),
			logger.String("path", options.Path))
		return
	}

	handlerDeps := handler.HandlerDependencies{
		Logger: deps.Logger,
	}

	group.Handle(options.Method, options.Path, handler.HandleFunc(handlerDeps, options.ServiceFunc))
}

func CreateAPIGroup(router *gin.Engine, version string) *gin.RouterGroup {
	return router.Group("/api/" + version)
}

// CreateLegacyAPIGroup serves unversioned routes kept for older clients
func CreateLegacyAPIGroup(router *gin.Engine) *gin.RouterGroup {
	return router.Group("/api")
}
