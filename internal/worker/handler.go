// Package worker is the SQS-driven suggestion worker: each message carries a
// plan request, and the finished plan is published to the results queue.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"fairweather/internal/queue"
	"fairweather/internal/recommend"
	"fairweather/internal/types"
)

// Planner produces a plan for one request.
type Planner interface {
	Plan(ctx context.Context, req recommend.PlanRequest) (*recommend.Plan, error)
}

// Publisher delivers a finished plan.
type Publisher interface {
	Publish(ctx context.Context, plan *recommend.Plan, correlationID string) error
}

// Handler processes SQS batches with partial batch failure reporting.
type Handler struct {
	Planner   Planner
	Publisher Publisher
	Log       *slog.Logger
}

// Handle plans every record in the batch. Records that can never succeed
// (malformed or invalid requests) are logged and dropped; records that fail
// for transient reasons are returned as batch item failures so SQS redelivers
// only those.
func (h *Handler) Handle(ctx context.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, rec := range ev.Records {
		if err := ctx.Err(); err != nil {
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: rec.MessageId})
			continue
		}
		if err := h.handleRecord(ctx, rec); err != nil {
			h.Log.ErrorContext(ctx, "plan message failed, will retry",
				"message_id", rec.MessageId,
				"error", err,
			)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: rec.MessageId})
		}
	}

	h.Log.InfoContext(ctx, "plan batch processed",
		"records", len(ev.Records),
		"failures", len(resp.BatchItemFailures),
	)
	return resp, nil
}

func (h *Handler) handleRecord(ctx context.Context, rec events.SQSMessage) error {
	correlationID := CorrelationID(rec)
	ctx = types.WithRequestID(ctx, correlationID)

	req, err := queue.DecodePlanRequest(rec.Body)
	if err != nil {
		h.drop(ctx, rec, err)
		return nil
	}

	plan, err := h.Planner.Plan(ctx, req)
	if err != nil {
		if isPermanent(err) {
			h.drop(ctx, rec, err)
			return nil
		}
		return err
	}

	return h.Publisher.Publish(ctx, plan, correlationID)
}

func (h *Handler) drop(ctx context.Context, rec events.SQSMessage, err error) {
	h.Log.WarnContext(ctx, "dropping invalid plan message",
		"message_id", rec.MessageId,
		"error", err,
	)
}

// CorrelationID returns the message's correlation_id attribute, falling back
// to the SQS message ID.
func CorrelationID(rec events.SQSMessage) string {
	if attr, ok := rec.MessageAttributes[queue.AttrCorrelationID]; ok && attr.StringValue != nil && *attr.StringValue != "" {
		return *attr.StringValue
	}
	return rec.MessageId
}

// isPermanent reports whether retrying err cannot help.
func isPermanent(err error) bool {
	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return strings.HasPrefix(string(appErr.Code), "validation_")
}
