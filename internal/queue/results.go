// Package queue carries plan requests in and finished plans out over SQS.
package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqsTypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"fairweather/internal/recommend"
	"fairweather/internal/types"
)

// Message attribute names set on published results.
const (
	AttrPlanID        = "plan_id"
	AttrCorrelationID = "correlation_id"
)

// maxMessageBytes is the SQS message size limit.
const maxMessageBytes = 256 * 1024

// SQSSender is the subset of the SQS API used to publish.
type SQSSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// ResultMessage is the body published for every finished plan.
type ResultMessage struct {
	CorrelationID string          `json:"correlationId,omitempty"`
	Plan          *recommend.Plan `json:"plan"`
}

// ResultPublisher sends finished plans to the results queue.
type ResultPublisher struct {
	client   SQSSender
	queueURL string
	logger   *slog.Logger
}

// NewResultPublisher creates a publisher for queueURL.
func NewResultPublisher(client SQSSender, queueURL string, logger *slog.Logger) *ResultPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultPublisher{
		client:   client,
		queueURL: queueURL,
		logger:   logger,
	}
}

// Publish sends the plan. correlationID ties the result back to the request
// message and may be empty.
func (p *ResultPublisher) Publish(ctx context.Context, plan *recommend.Plan, correlationID string) error {
	if plan == nil {
		return fmt.Errorf("result publisher: nil plan")
	}

	body, err := json.Marshal(ResultMessage{CorrelationID: correlationID, Plan: plan})
	if err != nil {
		return fmt.Errorf("result publisher: failed to marshal plan %s: %w", plan.ID, err)
	}
	if len(body) > maxMessageBytes {
		return types.NewAppErrorWithDetails(types.ErrCodeUpstreamQueue, "plan exceeds the queue message size limit", nil,
			map[string]any{"plan_id": plan.ID, "bytes": len(body)})
	}

	attrs := map[string]sqsTypes.MessageAttributeValue{
		AttrPlanID: {DataType: aws.String("String"), StringValue: aws.String(plan.ID)},
	}
	if correlationID != "" {
		attrs[AttrCorrelationID] = sqsTypes.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(correlationID),
		}
	}

	out, err := p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:          aws.String(p.queueURL),
		MessageBody:       aws.String(string(body)),
		MessageAttributes: attrs,
	})
	if err != nil {
		return types.NewAppError(types.ErrCodeUpstreamQueue,
			"failed to publish plan", fmt.Errorf("send to %s: %w", p.queueURL, err))
	}

	p.logger.InfoContext(ctx, "plan published",
		"plan_id", plan.ID,
		"correlation_id", correlationID,
		"message_id", aws.ToString(out.MessageId),
		"days", len(plan.Days),
	)
	return nil
}

// DecodePlanRequest strictly decodes a request message body. Unknown fields
// are rejected so schema drift between producer and worker is caught.
func DecodePlanRequest(body string) (recommend.PlanRequest, error) {
	var req recommend.PlanRequest
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return recommend.PlanRequest{}, types.NewAppError(types.ErrCodeValidationInvalidJSON,
			"malformed plan request message", err)
	}
	return req, nil
}
