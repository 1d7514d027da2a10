package business

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailos/common/entity"
	"retailos/common/model"
	"retailos/pkg/errorutil"
	"retailos/pkg/logger"
)

type memAlerts struct {
	saved []*entity.RestockAlert
	err   error
}

func (m *memAlerts) SaveAlerts(ctx context.Context, alerts []*entity.RestockAlert) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, alerts...)
	return nil
}

type recordingNotifier struct {
	sent []*model.LowStockNotification
	fail map[string]bool
}

func (r *recordingNotifier) PublishLowStock(ctx context.Context, n *model.LowStockNotification) error {
	if r.fail[n.CanonicalName] {
		return errors.New("redis down")
	}
	r.sent = append(r.sent, n)
	return nil
}

func input(lines ...model.StockCheckLine) *StockCheckInput {
	return &StockCheckInput{RequestID: "req-1", OrderID: "ord-1", RetailerID: "shop-1", Lines: lines}
}

func line(name, remaining, min string) model.StockCheckLine {
	return model.StockCheckLine{CanonicalName: name, Unit: "kg", RemainingQty: remaining, MinStockLevel: min}
}

func newService(alerts AlertStore, notifier Notifier) *RestockService {
	svc := NewRestockService(alerts, notifier, logger.NewNop())
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }
	return svc
}

func TestExecuteRecordsOnlyLinesUnderMinimum(t *testing.T) {
	alerts := &memAlerts{}
	notifier := &recordingNotifier{}
	svc := newService(alerts, notifier)

	res, err := svc.Execute(context.Background(), input(
		line("onions", "3", "5"),
		line("rice", "47", "5"),
		line("ghee", "5", "5"),
		line("milk", "0.5", "2"),
	))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Checked)
	assert.Equal(t, []string{"onions", "milk"}, res.Restock)
	assert.Equal(t, 2, res.Notified)
	require.Len(t, alerts.saved, 2)
	assert.Equal(t, "shop-1", alerts.saved[0].RetailerID)
	assert.Equal(t, "3", alerts.saved[0].RemainingQty.String())

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, &model.LowStockNotification{
		RetailerID:    "shop-1",
		OrderID:       "ord-1",
		CanonicalName: "milk",
		Unit:          "kg",
		RemainingQty:  "0.5",
		MinStockLevel: "2",
		Timestamp:     1700000000,
	}, notifier.sent[1])
}

func TestExecuteNothingLow(t *testing.T) {
	alerts := &memAlerts{err: errors.New("must not be called")}
	res, err := newService(alerts, nil).Execute(context.Background(), input(line("rice", "40", "5")))
	require.NoError(t, err)
	assert.Empty(t, res.Restock)
}

func TestExecuteFailureClasses(t *testing.T) {
	_, err := newService(&memAlerts{}, nil).Execute(context.Background(), input(line("rice", "lots", "5")))
	require.Error(t, err)
	assert.False(t, errorutil.IsRetryable(err))

	_, err = newService(&memAlerts{err: errors.New("db gone")}, nil).Execute(context.Background(), input(line("rice", "1", "5")))
	require.Error(t, err)
	assert.True(t, errorutil.IsRetryable(err))
}

func TestExecuteNotifyFailureIsNotFatal(t *testing.T) {
	alerts := &memAlerts{}
	notifier := &recordingNotifier{fail: map[string]bool{"onions": true}}

	res, err := newService(alerts, notifier).Execute(context.Background(), input(line("onions", "1", "5"), line("milk", "1", "2")))
	require.NoError(t, err)
	assert.Len(t, alerts.saved, 2)
	assert.Equal(t, 1, res.Notified)
}
