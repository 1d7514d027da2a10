package business

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"retailos/common/entity"
	"retailos/common/model"
	"retailos/pkg/errorutil"
	"retailos/pkg/logger"
)

// AlertStore persists restock alerts
type AlertStore interface {
	SaveAlerts(ctx context.Context, alerts []*entity.RestockAlert) error
}

// Notifier pushes low stock notifications to listeners
type Notifier interface {
	PublishLowStock(ctx context.Context, notification *model.LowStockNotification) error
}

// StockCheckInput one committed order as carried by the stock_check job
type StockCheckInput struct {
	RequestID  string
	OrderID    string
	RetailerID string
	Lines      []model.StockCheckLine
}

// StockCheckResult what the job did
type StockCheckResult struct {
	OrderID  string   `json:"order_id"`
	Checked  int      `json:"checked"`
	Restock  []string `json:"restock"`
	Notified int      `json:"notified"`
}

// RestockService records items a commit left under their min stock level
type RestockService struct {
	alerts   AlertStore
	notifier Notifier
	logger   logger.FormatLogger
	now      func() time.Time
}

// NewRestockService creates the service; notifier may be nil
func NewRestockService(alerts AlertStore, notifier Notifier, log logger.FormatLogger) *RestockService {
	return &RestockService{
		alerts:   alerts,
		notifier: notifier,
		logger:   log,
		now:      time.Now,
	}
}

// Execute writes one alert per line with remaining < min_stock_level, then
// notifies. Malformed quantities are permanent failures; a storage failure is
// retryable. Notification failures are logged only.
func (s *RestockService) Execute(ctx context.Context, input *StockCheckInput) (*StockCheckResult, error) {
	result := &StockCheckResult{OrderID: input.OrderID, Checked: len(input.Lines)}
	now := s.now()

	var alerts []*entity.RestockAlert
	for _, line := range input.Lines {
		remaining, err := decimal.NewFromString(line.RemainingQty)
		if err != nil {
			return result, errorutil.NonRetriableWithDetails("invalid remaining_qty of "+line.CanonicalName, err.Error())
		}
		minLevel, err := decimal.NewFromString(line.MinStockLevel)
		if err != nil {
			return result, errorutil.NonRetriableWithDetails("invalid min_stock_level of "+line.CanonicalName, err.Error())
		}
		if !remaining.LessThan(minLevel) {
			continue
		}

		alerts = append(alerts, &entity.RestockAlert{
			RetailerID:    input.RetailerID,
			OrderID:       input.OrderID,
			CanonicalName: line.CanonicalName,
			Unit:          line.Unit,
			RemainingQty:  remaining,
			MinStockLevel: minLevel,
			CreatedAt:     now,
		})
		result.Restock = append(result.Restock, line.CanonicalName)
	}

	if len(alerts) == 0 {
		return result, nil
	}

	if err := s.alerts.SaveAlerts(ctx, alerts); err != nil {
		return result, errorutil.RetriableWithDetails("save restock alerts failed", err.Error())
	}
	s.logger.Infof(ctx, "Restock alerts recorded: order=%s items=%v", input.OrderID, result.Restock)

	if s.notifier == nil {
		return result, nil
	}
	for _, a := range alerts {
		err := s.notifier.PublishLowStock(ctx, &model.LowStockNotification{
			RetailerID:    a.RetailerID,
			OrderID:       a.OrderID,
			CanonicalName: a.CanonicalName,
			Unit:          a.Unit,
			RemainingQty:  a.RemainingQty.String(),
			MinStockLevel: a.MinStockLevel.String(),
			Timestamp:     now.Unix(),
		})
		if err != nil {
			s.logger.Warnf(ctx, "Publish low stock of %s failed: %v", a.CanonicalName, err)
			continue
		}
		result.Notified++
	}
	return result, nil
}
