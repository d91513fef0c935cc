package config

import (
	commonConfig "saludos/commons/config"
	cache "saludos/internal/cache/iface"
	"saludos/internal/logger"
	queue "saludos/internal/queue/iface"
	redisQueue "saludos/internal/queue/redis"
	sqsQueue "saludos/internal/queue/sqs"
	dynamoRepo "saludos/internal/repository/dynamodb"
	repository "saludos/internal/repository/iface"
	redisRepo "saludos/internal/repository/redis"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/fx"
)

// InfraModule provides logging plus the job store and queue picked by the
// settings. Clients are only dialled when a provider actually needs them.
func InfraModule(s *Settings) fx.Option {
	opts := []fx.Option{
		fx.Supply(s),
		fx.Provide(
			ProvideLoggerConfig,
			ProvideRedisConfig,
			ProvideAWSConfig,
			commonConfig.ProvideLogger,
			commonConfig.ProvideRouteDependencies,
			commonConfig.ProvideRedisCache,
			commonConfig.ProvideAWSConfig,
			commonConfig.ProvideDynamoDBClient,
			commonConfig.ProvideSQSClient,
		),
	}

	switch s.StoreBackend {
	case BackendDynamoDB:
		opts = append(opts, fx.Provide(ProvideDynamoJobRepository))
	default:
		opts = append(opts, fx.Provide(ProvideRedisJobRepository))
	}

	switch s.QueueBackend {
	case BackendSQS:
		opts = append(opts, fx.Provide(ProvideSQSJobQueue))
	default:
		opts = append(opts, fx.Provide(ProvideRedisJobQueue))
	}

	return fx.Options(opts...)
}

func ProvideLoggerConfig(s *Settings) commonConfig.LoggerConfig {
	return commonConfig.LoggerConfig{
		Level:      s.LogLevel,
		Production: s.IsProduction(),
		File: logger.FileConfig{
			Path:       s.LogFile,
			MaxSizeMB:  s.LogMaxSizeMB,
			MaxBackups: s.LogMaxBackups,
			MaxAgeDays: s.LogMaxAgeDays,
			Compress:   true,
		},
	}
}

func ProvideRedisConfig(s *Settings) commonConfig.RedisConfig {
	return commonConfig.RedisConfig{
		URL:   s.RedisURL,
		Token: s.RedisToken,
	}
}

func ProvideAWSConfig(s *Settings) commonConfig.AWSConfig {
	return commonConfig.AWSConfig{
		Region:   s.AWSRegion,
		Endpoint: s.AWSEndpoint,
	}
}

// Repository Providers

func ProvideRedisJobRepository(c cache.Cache, s *Settings, log logger.Logger) repository.JobRepository {
	return redisRepo.NewJobRepository(c, s.JobKeyPrefix, log)
}

func ProvideDynamoJobRepository(client *awsdynamodb.Client, s *Settings, log logger.Logger) repository.JobRepository {
	return dynamoRepo.NewJobRepository(client, s.DynamoTable, log)
}

// Queue Providers

func ProvideRedisJobQueue(c cache.Cache, s *Settings, log logger.Logger) queue.JobQueue {
	return redisQueue.NewRedisQueue(c, s.QueueName, log)
}

func ProvideSQSJobQueue(client *awssqs.Client, s *Settings, log logger.Logger) queue.JobQueue {
	return sqsQueue.NewSQSQueue(client, sqsQueue.QueueConfig{QueueURL: s.SQSQueueURL}, log)
}
