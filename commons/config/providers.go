package config

import (
	"context"
	"time"

	"saludos/commons/routes"
	cache "saludos/internal/cache/iface"
	redisCache "saludos/internal/cache/redis"
	coordinator "saludos/internal/coordinator/iface"
	zkCoordinator "saludos/internal/coordinator/zk"
	"saludos/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// LoggerConfig selects the zap flavour
type LoggerConfig struct {
	Level      string
	Production bool
	// File, when its Path is set, also writes rotated JSON logs to disk
	File logger.FileConfig
}

// AWSConfig points the SDK clients at AWS or at LocalStack when Endpoint is set
type AWSConfig struct {
	Region   string
	Endpoint string
}

type RedisConfig struct {
	URL   string
	Token string
}

type ZooKeeperConfig struct {
	Servers        []string
	SessionTimeout time.Duration
}

// ProvideLogger creates and configures the logger for the application
func ProvideLogger(cfg LoggerConfig) (logger.Logger, error) {
	if cfg.File.Path != "" {
		return logger.NewZapLoggerWithFile(cfg.Level, cfg.File)
	}
	if cfg.Production {
		return logger.NewZapLogger(cfg.Level)
	}
	return logger.NewZapLoggerForDev()
}

// ProvideFxLogger creates the FX event logger using the application logger
func ProvideFxLogger(log logger.Logger) fxevent.Logger {
	zl, ok := log.(*logger.ZapLogger)
	if !ok {
		return fxevent.NopLogger
	}
	return &fxevent.ZapLogger{
		Logger: zl.Logger(),
	}
}

// ProvideRouteDependencies creates route dependencies
func ProvideRouteDependencies(log logger.Logger) routes.RouteDependencies {
	return routes.RouteDependencies{
		Logger: log,
	}
}

// ProvideRouter creates and configures the Gin router with all routes
func ProvideRouter(
	config routes.RouterConfig,
	deps routes.RouteDependencies,
	routeInitializer func(*gin.Engine, routes.RouteDependencies),
) *gin.Engine {
	router := routes.NewRouter(config, deps)
	routeInitializer(router, deps)
	return router
}

// ProvideAWSConfig loads the shared SDK config (credentials chain + region)
func ProvideAWSConfig(cfg AWSConfig) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
	)
}

// ProvideSQSClient provides an SQS client (for LocalStack or AWS)
func ProvideSQSClient(awsCfg aws.Config, cfg AWSConfig) *sqs.Client {
	return sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
}

// ProvideDynamoDBClient provides DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config, cfg AWSConfig) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
}

// ProvideZooKeeperCoordinator provides a ZooKeeper coordinator for distributed coordination
func ProvideZooKeeperCoordinator(lc fx.Lifecycle, cfg ZooKeeperConfig, log logger.Logger) (coordinator.Coordinator, error) {
	coord, err := zkCoordinator.NewZKCoordinator(cfg.Servers, cfg.SessionTimeout, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return coord.Close()
		},
	})

	return coord, nil
}

// ProvideRedisCache provides a Redis cache client
func ProvideRedisCache(lc fx.Lifecycle, cfg RedisConfig, log logger.Logger) (cache.Cache, error) {
	c, err := redisCache.NewRedisCache(cfg.URL, cfg.Token, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.Close()
		},
	})

	return c, nil
}
