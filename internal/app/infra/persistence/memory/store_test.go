package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailos/internal/app/domains/entity/etcatalog"
	"retailos/internal/app/domains/entity/etcart"
	"retailos/internal/app/domains/entity/etorder"
	"retailos/internal/app/domains/repo/rpcatalog"
	"retailos/internal/app/pkg/errorx"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seeded(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	rice, err := etcatalog.NewItem("shop-1", "Rice", "kg", "grains", d("10"), d("60"), d("2"))
	require.NoError(t, err)
	milk, err := etcatalog.NewItem("shop-1", "Milk", "litre", "dairy", d("5"), d("55"), d("1"))
	require.NoError(t, err)
	require.NoError(t, s.SaveItems(context.Background(), []*etcatalog.Item{rice, milk}))
	return s
}

func order(t *testing.T, id string, created time.Time) *etorder.Order {
	t.Helper()
	o, err := etorder.NewOrder(id, created.Unix(), "shop-1", "cust-1",
		[]*etorder.Line{{CanonicalName: "rice", Quantity: d("1"), LineTotal: d("60")}}, "")
	require.NoError(t, err)
	o.CreatedAt = created
	return o
}

func TestDecrementAtomicAppliesAll(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	err := s.DecrementAtomic(ctx, "shop-1", []rpcatalog.Decrement{
		{CanonicalName: "rice", Quantity: d("4"), ExpectedVersion: 1},
		{CanonicalName: "MILK", Quantity: d("5"), ExpectedVersion: 1},
	}, order(t, "o-1", time.Now()))
	require.NoError(t, err)

	snap, err := s.GetSnapshot(ctx, "shop-1")
	require.NoError(t, err)
	rice, _ := snap.Lookup("rice")
	milk, _ := snap.Lookup("milk")
	assert.True(t, rice.StockQty.Equal(d("6")))
	assert.Equal(t, int64(2), rice.Version)
	assert.True(t, milk.StockQty.IsZero())

	got, err := s.GetByID(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, "o-1", got.ID)
}

func TestDecrementAtomicIsAllOrNothing(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	for _, decs := range [][]rpcatalog.Decrement{
		{{CanonicalName: "rice", Quantity: d("4"), ExpectedVersion: 1}, {CanonicalName: "milk", Quantity: d("6"), ExpectedVersion: 1}},
		{{CanonicalName: "rice", Quantity: d("4"), ExpectedVersion: 1}, {CanonicalName: "milk", Quantity: d("1"), ExpectedVersion: 7}},
		{{CanonicalName: "rice", Quantity: d("4"), ExpectedVersion: 1}, {CanonicalName: "ghee", Quantity: d("1"), ExpectedVersion: 1}},
	} {
		err := s.DecrementAtomic(ctx, "shop-1", decs, order(t, "o-x", time.Now()))
		assert.ErrorIs(t, err, rpcatalog.ErrVersionConflict)
	}

	snap, err := s.GetSnapshot(ctx, "shop-1")
	require.NoError(t, err)
	rice, _ := snap.Lookup("rice")
	assert.True(t, rice.StockQty.Equal(d("10")))
	assert.Equal(t, int64(1), rice.Version)

	_, err = s.GetByID(ctx, "o-x")
	assert.ErrorIs(t, err, errorx.ErrOrderNotFound)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := seeded(t)
	snap, err := s.GetSnapshot(context.Background(), "shop-1")
	require.NoError(t, err)
	rice, _ := snap.Lookup("rice")
	rice.StockQty = d("0")

	again, err := s.GetSnapshot(context.Background(), "shop-1")
	require.NoError(t, err)
	rice, _ = again.Lookup("rice")
	assert.True(t, rice.StockQty.Equal(d("10")))
}

func TestSaveItemsUpsertBumpsVersion(t *testing.T) {
	s := seeded(t)
	rice, err := etcatalog.NewItem("shop-1", "rice", "kg", "grains", d("99"), d("61"), d("2"))
	require.NoError(t, err)
	require.NoError(t, s.SaveItems(context.Background(), []*etcatalog.Item{rice}))

	snap, err := s.GetSnapshot(context.Background(), "shop-1")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len())
	got, _ := snap.Lookup("rice")
	assert.True(t, got.StockQty.Equal(d("99")))
	assert.Equal(t, int64(2), got.Version)
}

func TestListOrdersPaginates(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"o-1", "o-2", "o-3"} {
		require.NoError(t, s.DecrementAtomic(ctx, "shop-1", nil, order(t, id, base.Add(time.Duration(i)*time.Minute))))
	}

	page1, total, err := s.List(ctx, "shop-1", "cust-1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page1, 2)
	assert.Equal(t, "o-3", page1[0].ID)
	assert.Equal(t, "o-2", page1[1].ID)

	page2, _, err := s.List(ctx, "shop-1", "cust-1", 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "o-1", page2[0].ID)

	empty, _, err := s.List(ctx, "shop-1", "cust-1", 5, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCartStoreClones(t *testing.T) {
	store := NewCartStore()
	ctx := context.Background()

	got, err := store.Get(ctx, "cust-1", "shop-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	c, err := etcart.New("cust-1", "shop-1")
	require.NoError(t, err)
	require.NoError(t, c.Upsert(etcart.Line{CanonicalName: "rice", Quantity: d("1")}))
	require.NoError(t, store.Save(ctx, c))
	c.Lines[0].Quantity = d("5")

	got, err = store.Get(ctx, "cust-1", "shop-1")
	require.NoError(t, err)
	assert.True(t, got.Lines[0].Quantity.Equal(d("1")))

	require.NoError(t, store.Delete(ctx, "cust-1", "shop-1"))
	got, err = store.Get(ctx, "cust-1", "shop-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
