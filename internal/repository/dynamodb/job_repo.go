package dynamodb

import (
	"context"
	"encoding/json"
	"fmt"

	"saludos/internal/domain"
	"saludos/internal/logger"
	"saludos/internal/repository"
	repositoryIface "saludos/internal/repository/iface"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultTableName = "greeting_jobs"
	statusIndex      = "status_index"
)

// dynamoAPI is the subset of *dynamodb.Client the repository uses
type dynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

type jobRepository struct {
	client    dynamoAPI
	tableName string
	logger    logger.Logger
}

// NewJobRepository creates a new DynamoDB job repository
func NewJobRepository(client *dynamodb.Client, tableName string, log logger.Logger) repositoryIface.JobRepository {
	return newJobRepository(client, tableName, log)
}

func newJobRepository(client dynamoAPI, tableName string, log logger.Logger) *jobRepository {
	if tableName == "" {
		tableName = DefaultTableName
	}
	return &jobRepository{
		client:    client,
		tableName: tableName,
		logger:    log.With(logger.String("component", "job_repository"), logger.String("backend", "dynamodb")),
	}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	r.logger.Debug("creating job",
		logger.String("job_id", job.ID))

	item, err := attributevalue.MarshalMap(job)
	if err != nil {
		r.logger.Error("failed to marshal job", logger.Error(err))
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(job_id)"),
	})

	if err != nil {
		if isConditionalCheckFailed(err) {
			r.logger.Warn("job id already taken",
				logger.String("job_id", job.ID))
			return fmt.Errorf("%w: job_id=%s", repository.ErrJobExists, job.ID)
		}
		r.logger.Error("failed to create job", logger.Error(err))
		return fmt.Errorf("failed to create job: %w", err)
	}

	r.logger.Info("job created",
		logger.String("job_id", job.ID))

	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, jobID string) (*domain.Job, error) {
	r.logger.Debug("getting job by ID",
		logger.String("job_id", jobID))

	item, err := r.getItem(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var job domain.Job
	err = attributevalue.UnmarshalMap(item, &job)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}

	return &job, nil
}

func (r *jobRepository) getItem(ctx context.Context, jobID string) (map[string]types.AttributeValue, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"job_id": &types.AttributeValueMemberS{Value: jobID},
		},
	})

	if err != nil {
		r.logger.Error("failed to get job", logger.Error(err))
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("%w: %s", repository.ErrJobNotFound, jobID)
	}

	return result.Item, nil
}

// Attribute names as stored, mapped to the names the worker reads in JSON.
// Attributes missing here keep their stored name.
var jobDocumentNames = map[string]string{
	"job_id":       "videoId",
	"created_at":   "createdAt",
	"updated_at":   "updatedAt",
	"video_url":    "videoUrl",
	"completed_at": "completedAt",
	"failed_at":    "failedAt",
}

var payloadDocumentNames = map[string]string{
	"nombre_nino":         "nombreNino",
	"que_hizo":            "queHizo",
	"recuerdo_especial":   "recuerdoEspecial",
	"pedido_noche_magica": "pedidoNocheMagica",
}

// GetDocument returns the whole stored item as JSON without decoding it into
// a Job, so attributes the worker added survive.
func (r *jobRepository) GetDocument(ctx context.Context, jobID string) (json.RawMessage, error) {
	item, err := r.getItem(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}

	out := renameKeys(doc, jobDocumentNames)
	if payload, ok := out["data"].(map[string]any); ok {
		out["data"] = renameKeys(payload, payloadDocumentNames)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job: %w", err)
	}
	return data, nil
}

func renameKeys(in map[string]any, names map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if renamed, ok := names[k]; ok {
			k = renamed
		}
		out[k] = v
	}
	return out
}

func (r *jobRepository) ListByStatus(ctx context.Context, status domain.JobStatus, limit int) ([]*domain.Job, error) {
	r.logger.Debug("querying jobs by status",
		logger.String("status", string(status)),
		logger.Int("limit", limit))

	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(statusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}

	jobs := make([]*domain.Job, 0)
	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			r.logger.Error("failed to query jobs", logger.Error(err))
			return nil, fmt.Errorf("failed to query jobs: %w", err)
		}

		for _, item := range result.Items {
			var job domain.Job
			if err := attributevalue.UnmarshalMap(item, &job); err != nil {
				r.logger.Warn("failed to unmarshal job", logger.Error(err))
				continue
			}
			jobs = append(jobs, &job)
			if limit > 0 && len(jobs) >= limit {
				return jobs, nil
			}
		}

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	r.logger.Debug("jobs retrieved",
		logger.String("status", string(status)),
		logger.Int("count", len(jobs)))

	return jobs, nil
}
