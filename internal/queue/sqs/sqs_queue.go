// internal/queue/sqs/sqs_queue.go
package sqs

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"saludos/internal/logger"
	queue "saludos/internal/queue/iface"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

const (
	// maxWaitSeconds is the SQS long-polling ceiling
	maxWaitSeconds = 20
	messageGroupID = "greetings"
)

// sqsAPI is the subset of *sqs.Client the queue uses
type sqsAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	GetQueueAttributes(ctx context.Context, params *sqs.GetQueueAttributesInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueAttributesOutput, error)
}

// QueueConfig holds configuration for SQS queue
type QueueConfig struct {
	QueueURL          string
	VisibilityTimeout int32
}

// SQSQueue sends job ids as plain message bodies. Ordering is only strict
// on FIFO queues (URL ending in .fifo), where every message shares one
// group and is deduplicated by job id.
type SQSQueue struct {
	client sqsAPI
	config QueueConfig
	fifo   bool
	logger logger.Logger
}

var _ queue.JobQueue = (*SQSQueue)(nil)

// NewSQSQueue creates a new SQS job queue
func NewSQSQueue(client *sqs.Client, config QueueConfig, log logger.Logger) *SQSQueue {
	return newSQSQueue(client, config, log)
}

func newSQSQueue(client sqsAPI, config QueueConfig, log logger.Logger) *SQSQueue {
	if config.VisibilityTimeout <= 0 {
		config.VisibilityTimeout = 60
	}
	q := &SQSQueue{
		client: client,
		config: config,
		fifo:   strings.HasSuffix(config.QueueURL, ".fifo"),
		logger: log.With(logger.String("component", "sqs_queue")),
	}
	if !q.fifo {
		q.logger.Warn("standard SQS queue does not guarantee ordering",
			logger.String("queue_url", config.QueueURL))
	}
	return q
}

func (q *SQSQueue) Enqueue(ctx context.Context, jobID string) error {
	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.config.QueueURL),
		MessageBody: aws.String(jobID),
	}
	if q.fifo {
		input.MessageGroupId = aws.String(messageGroupID)
		input.MessageDeduplicationId = aws.String(jobID)
	}

	_, err := q.client.SendMessage(ctx, input)
	if err != nil {
		q.logger.Error("failed to send message to SQS",
			logger.String("queue_url", q.config.QueueURL),
			logger.String("job_id", jobID),
			logger.Error(err))
		return fmt.Errorf("failed to send message: %w", err)
	}

	q.logger.Debug("job enqueued",
		logger.String("queue_url", q.config.QueueURL),
		logger.String("job_id", jobID))

	return nil
}

// Dequeue long-polls for one message and deletes it once received
func (q *SQSQueue) Dequeue(ctx context.Context, wait time.Duration) (string, error) {
	waitSeconds := int32(wait / time.Second)
	if waitSeconds > maxWaitSeconds {
		waitSeconds = maxWaitSeconds
	}

	// Timeout should be longer than WaitTimeSeconds to allow long polling to complete
	receiveCtx, cancel := context.WithTimeout(ctx, time.Duration(waitSeconds+5)*time.Second)
	defer cancel()

	result, err := q.client.ReceiveMessage(receiveCtx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.config.QueueURL),
		MaxNumberOfMessages: 1,
		WaitTimeSeconds:     waitSeconds,
		VisibilityTimeout:   q.config.VisibilityTimeout,
	})
	if err != nil {
		return "", fmt.Errorf("failed to receive message: %w", err)
	}
	if len(result.Messages) == 0 {
		return "", queue.ErrEmpty
	}

	msg := result.Messages[0]
	if err := q.deleteMessage(ctx, msg); err != nil {
		return "", err
	}

	return aws.ToString(msg.Body), nil
}

// Len reports the approximate number of visible messages
func (q *SQSQueue) Len(ctx context.Context) (int64, error) {
	out, err := q.client.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
		QueueUrl:       aws.String(q.config.QueueURL),
		AttributeNames: []types.QueueAttributeName{types.QueueAttributeNameApproximateNumberOfMessages},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read queue attributes: %w", err)
	}

	raw := out.Attributes[string(types.QueueAttributeNameApproximateNumberOfMessages)]
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid queue length %q: %w", raw, err)
	}
	return n, nil
}

func (q *SQSQueue) deleteMessage(ctx context.Context, msg types.Message) error {
	_, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.config.QueueURL),
		ReceiptHandle: msg.ReceiptHandle,
	})

	if err != nil {
		q.logger.Error("failed to delete message", logger.Error(err))
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}
