package mdstockcheck

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"retailos/common/model"
	"retailos/internal/app/domains/entity/etorder"
	"retailos/pkg/logger"
)

// jobTTL seconds an unconsumed stock check job survives in the queue
const jobTTL = 24 * 3600

// Publisher queue side of the lmstfy client
type Publisher interface {
	Publish(queue string, data []byte, ttl, delay uint32) (string, error)
}

// StockCheckModule builds and publishes the post-commit stock_check job.
// A nil publisher turns it into a no-op, which is how the API runs without
// a queue.
type StockCheckModule struct {
	publisher Publisher
	queueName string
}

// NewStockCheckModule creates the module; publisher may be nil
func NewStockCheckModule(publisher Publisher, queueName string) *StockCheckModule {
	return &StockCheckModule{
		publisher: publisher,
		queueName: queueName,
	}
}

// Enabled reports whether jobs actually leave the process
func (m *StockCheckModule) Enabled() bool {
	return m != nil && m.publisher != nil
}

// PublishStockCheck enqueues the remaining stock of every committed line.
// Returns the lmstfy job id, or "" when disabled.
func (m *StockCheckModule) PublishStockCheck(ctx context.Context, order *etorder.Order) (string, error) {
	if !m.Enabled() {
		return "", nil
	}

	data, err := json.Marshal(BuildJob(ctx, order))
	if err != nil {
		return "", fmt.Errorf("marshal stock check job failed: %w", err)
	}

	jobID, err := m.publisher.Publish(m.queueName, data, jobTTL, 0)
	if err != nil {
		return "", fmt.Errorf("publish stock check job failed: %w", err)
	}
	return jobID, nil
}

// BuildJob the job message for order; the request id follows the caller's
// trace id so worker logs line up with the committing request
func BuildJob(ctx context.Context, order *etorder.Order) model.StockCheckJob {
	requestID := logger.TraceID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	lines := make([]model.StockCheckLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, model.StockCheckLine{
			CanonicalName: l.CanonicalName,
			Unit:          l.Unit,
			RemainingQty:  l.Remaining.String(),
			MinStockLevel: l.MinStockLevel.String(),
		})
	}

	return model.StockCheckJob{
		Payload: model.StockCheckPayload{
			Data: model.StockCheckData{
				RequestID:  requestID,
				OrgID:      order.RetailerID,
				ActionType: model.ActionTypeStockCheck,
				ID:         order.ID,
				Data: model.StockCheckBusinessData{
					OrderID:    order.ID,
					RetailerID: order.RetailerID,
					Lines:      lines,
				},
			},
		},
	}
}
