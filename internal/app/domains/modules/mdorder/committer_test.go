package mdorder

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailos/internal/app/domains/entity/etcatalog"
	"retailos/internal/app/domains/entity/etline"
	"retailos/internal/app/domains/entity/etorder"
	"retailos/internal/app/domains/modules/mdavailability"
	"retailos/internal/app/domains/repo/rpcatalog"
	"retailos/internal/app/infra/persistence/memory"
	"retailos/internal/app/pkg/errorx"
	"retailos/internal/app/pkg/idgen"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seed(t *testing.T, store *memory.Store, name, stock, price, min string) {
	t.Helper()
	item, err := etcatalog.NewItem("shop-1", name, "kg", "staples", d(stock), d(price), d(min))
	require.NoError(t, err)
	require.NoError(t, store.SaveItems(context.Background(), []*etcatalog.Item{item}))
}

func stockOf(t *testing.T, store *memory.Store, name string) *etcatalog.Item {
	t.Helper()
	snap, err := store.GetSnapshot(context.Background(), "shop-1")
	require.NoError(t, err)
	item, ok := snap.Lookup(name)
	require.True(t, ok)
	return item
}

func newCommitter(inv rpcatalog.InventoryRepository) *Committer {
	return NewCommitter(inv, mdavailability.NewPartitioner(2, 3), idgen.NewSnowflakeIDGenerator(1))
}

func request(lines ...CommitLine) CommitRequest {
	return CommitRequest{RetailerID: "shop-1", CustomerID: "cust-1", Lines: lines}
}

func TestCommitRepricesFromCurrentCatalog(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "rice", "50", "60", "5")
	seed(t, store, "onions", "6", "40", "5")
	// price changed after the customer browsed
	seed(t, store, "rice", "50", "62.505", "5")

	order, err := newCommitter(store).Commit(context.Background(), request(
		CommitLine{CanonicalName: "rice", Quantity: d("3")},
		CommitLine{CanonicalName: "onions", Quantity: d("3")},
	))
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Positive(t, order.OrderNo)
	assert.Equal(t, 2, order.ItemsCount())
	assert.Equal(t, "187.52", order.Lines[0].LineTotal.StringFixed(2))
	assert.True(t, order.Total.Equal(d("307.52")))

	sum := decimal.Zero
	for _, l := range order.Lines {
		sum = sum.Add(l.LineTotal)
	}
	assert.True(t, sum.Equal(order.Total))

	assert.True(t, stockOf(t, store, "rice").StockQty.Equal(d("47")))
	assert.True(t, stockOf(t, store, "onions").StockQty.Equal(d("3")))
	require.Len(t, order.LowStockLines(), 1)
	assert.Equal(t, "onions", order.LowStockLines()[0].CanonicalName)
}

func TestCommitEmptyIsRejected(t *testing.T) {
	_, err := newCommitter(memory.NewStore()).Commit(context.Background(), request())
	assert.ErrorIs(t, err, errorx.ErrEmptyCartCommit)
}

func TestCommitMergesRepeatedItem(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "rice", "50", "60", "5")

	order, err := newCommitter(store).Commit(context.Background(), request(
		CommitLine{CanonicalName: "rice", Quantity: d("3")},
		CommitLine{CanonicalName: "Rice", Quantity: d("2")},
	))
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.True(t, order.Lines[0].Quantity.Equal(d("5")))
	assert.True(t, order.Total.Equal(d("300")))
	assert.True(t, stockOf(t, store, "rice").StockQty.Equal(d("45")))
}

func TestCommitRepeatedItemCheckedAgainstTotal(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "rice", "50", "60", "5")

	_, err := newCommitter(store).Commit(context.Background(), request(
		CommitLine{CanonicalName: "rice", Quantity: d("30")},
		CommitLine{CanonicalName: "rice", Quantity: d("30")},
	))
	var conflict *CommitConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Changed, 1)
	assert.True(t, conflict.Changed[0].RequestedQty.Equal(d("60")))
	assert.Equal(t, etline.ReasonInsufficientStock, conflict.Changed[0].Reason)
	assert.True(t, stockOf(t, store, "rice").StockQty.Equal(d("50")))
}

func TestCommitConflictLeavesStockUntouched(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "rice", "50", "60", "5")
	seed(t, store, "milk", "20", "55", "5")

	_, err := newCommitter(store).Commit(context.Background(), request(
		CommitLine{CanonicalName: "rice", Quantity: d("3")},
		CommitLine{CanonicalName: "milk", Quantity: d("25")},
		CommitLine{CanonicalName: "ghee", Quantity: d("1")},
	))

	var conflict *CommitConflictError
	require.ErrorAs(t, err, &conflict)
	assert.ErrorIs(t, err, ErrCommitConflict)
	require.Len(t, conflict.Changed, 2)
	assert.Equal(t, "milk", conflict.Changed[0].CanonicalName)
	assert.True(t, conflict.Changed[0].AvailableQty.Equal(d("20")))
	assert.Equal(t, etline.ReasonInsufficientStock, conflict.Changed[0].Reason)
	assert.Equal(t, "ghee", conflict.Changed[1].CanonicalName)
	assert.Equal(t, etline.ReasonItemRemoved, conflict.Changed[1].Reason)

	assert.True(t, stockOf(t, store, "rice").StockQty.Equal(d("50")))
	assert.Equal(t, int64(1), stockOf(t, store, "rice").Version)
}

func TestConcurrentCommitsForLastStock(t *testing.T) {
	for run := 0; run < 20; run++ {
		store := memory.NewStore()
		seed(t, store, "paneer", "2", "400", "0")
		c := newCommitter(store)

		var wg sync.WaitGroup
		orders := make([]*etorder.Order, 2)
		errs := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				orders[i], errs[i] = c.Commit(context.Background(), request(CommitLine{CanonicalName: "paneer", Quantity: d("2")}))
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for i := 0; i < 2; i++ {
			if errs[i] == nil {
				succeeded++
				assert.NotEmpty(t, orders[i].ID)
				continue
			}
			var conflict *CommitConflictError
			require.ErrorAs(t, errs[i], &conflict)
			require.Len(t, conflict.Changed, 1)
			assert.True(t, conflict.Changed[0].AvailableQty.IsZero())
		}
		assert.Equal(t, 1, succeeded)
		assert.False(t, stockOf(t, store, "paneer").StockQty.IsNegative())
		assert.True(t, stockOf(t, store, "paneer").StockQty.IsZero())
	}
}

// racingInventory bumps the item version right before the first n decrements
type racingInventory struct {
	*memory.Store
	t        *testing.T
	races    int
	attempts int
}

func (r *racingInventory) DecrementAtomic(ctx context.Context, retailerID string, decs []rpcatalog.Decrement, order *etorder.Order) error {
	r.attempts++
	if r.attempts <= r.races {
		item := stockOf(r.t, r.Store, decs[0].CanonicalName)
		require.NoError(r.t, r.Store.SaveItems(ctx, []*etcatalog.Item{item}))
	}
	return r.Store.DecrementAtomic(ctx, retailerID, decs, order)
}

func TestCommitRetriesVersionConflictOnce(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "rice", "50", "60", "5")
	inv := &racingInventory{Store: store, t: t, races: 1}

	order, err := newCommitter(inv).Commit(context.Background(), request(CommitLine{CanonicalName: "rice", Quantity: d("3")}))
	require.NoError(t, err)
	assert.Equal(t, 2, inv.attempts)
	assert.True(t, stockOf(t, store, "rice").StockQty.Equal(d("47")))

	_, err = inv.GetByID(context.Background(), order.ID)
	assert.NoError(t, err)
}

func TestCommitGivesUpAfterOneRetry(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "rice", "50", "60", "5")
	inv := &racingInventory{Store: store, t: t, races: 5}

	_, err := newCommitter(inv).Commit(context.Background(), request(CommitLine{CanonicalName: "rice", Quantity: d("3")}))

	var conflict *CommitConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 2, inv.attempts)
	require.Len(t, conflict.Changed, 1)
	assert.Equal(t, etline.ReasonStockChanged, conflict.Changed[0].Reason)
	assert.Equal(t, etline.Available, conflict.Changed[0].Classification)
	assert.True(t, stockOf(t, store, "rice").StockQty.Equal(d("50")))
}

type failingInventory struct {
	*memory.Store
}

func (failingInventory) DecrementAtomic(context.Context, string, []rpcatalog.Decrement, *etorder.Order) error {
	return errors.New("connection reset")
}

func TestCommitStorageErrorIsNotAConflict(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "rice", "50", "60", "5")

	_, err := newCommitter(failingInventory{store}).Commit(context.Background(), request(CommitLine{CanonicalName: "rice", Quantity: d("3")}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCommitConflict)
	assert.ErrorContains(t, err, "connection reset")
}
