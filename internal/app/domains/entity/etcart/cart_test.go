package etcart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailos/internal/app/domains/entity/etline"
)

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newCart(t *testing.T) *Cart {
	t.Helper()
	c, err := New("cust-1", "shop-1")
	require.NoError(t, err)
	return c
}

func TestNewRequiresSession(t *testing.T) {
	_, err := New("", "shop-1")
	assert.ErrorIs(t, err, ErrInvalidSession)

	c := newCart(t)
	assert.Equal(t, StateEmpty, c.State)
	assert.True(t, c.IsEmpty())
}

func TestUpsertReplacesQuantity(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.Upsert(Line{CanonicalName: "rice", Quantity: qty("3"), Unit: "kg"}))
	require.NoError(t, c.Upsert(Line{CanonicalName: "milk", Quantity: qty("1"), Unit: "litre"}))
	require.NoError(t, c.Upsert(Line{CanonicalName: "Rice", Quantity: qty("5"), Unit: "kg"}))

	require.Len(t, c.Lines, 2)
	assert.Equal(t, "Rice", c.Lines[0].CanonicalName)
	assert.True(t, c.Lines[0].Quantity.Equal(qty("5")))
	assert.Equal(t, StateBuilding, c.State)
	assert.Equal(t, int64(3), c.Version)
}

func TestUpsertRejectsBadLine(t *testing.T) {
	c := newCart(t)
	assert.ErrorIs(t, c.Upsert(Line{CanonicalName: "rice", Quantity: decimal.Zero}), ErrInvalidLine)
	assert.ErrorIs(t, c.Upsert(Line{Quantity: qty("1")}), ErrInvalidLine)
	assert.Equal(t, StateEmpty, c.State)
}

func TestSummaryThenRemoveToEmpty(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.Upsert(Line{CanonicalName: "rice", Quantity: qty("3"), Unit: "kg"}))

	require.NoError(t, c.RequestSummary(false))
	assert.Equal(t, StateBuilding, c.State)

	require.NoError(t, c.RequestSummary(true))
	assert.Equal(t, StateAwaitingConfirmation, c.State)

	removed, err := c.Remove("RICE")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, StateEmpty, c.State)
}

func TestRemoveFromAwaitingReturnsToBuilding(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.Upsert(Line{CanonicalName: "rice", Quantity: qty("3")}))
	require.NoError(t, c.Upsert(Line{CanonicalName: "milk", Quantity: qty("1")}))
	require.NoError(t, c.RequestSummary(true))

	removed, err := c.Remove("milk")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, StateBuilding, c.State)

	removed, err = c.Remove("sugar")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAddFromAwaitingReturnsToBuilding(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.Upsert(Line{CanonicalName: "rice", Quantity: qty("3")}))
	require.NoError(t, c.RequestSummary(true))
	require.NoError(t, c.Upsert(Line{CanonicalName: "dal", Quantity: qty("1")}))
	assert.Equal(t, StateBuilding, c.State)
	assert.ErrorIs(t, c.CanConfirm(), ErrInvalidTransition)
}

func TestCommitLifecycle(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.Upsert(Line{CanonicalName: "rice", Quantity: qty("3")}))
	assert.ErrorIs(t, c.MarkCommitted(), ErrInvalidTransition)

	require.NoError(t, c.RequestSummary(true))
	require.NoError(t, c.MarkCommitted())
	assert.Equal(t, StateCommitted, c.State)

	assert.ErrorIs(t, c.Upsert(Line{CanonicalName: "milk", Quantity: qty("1")}), ErrInvalidTransition)
	assert.ErrorIs(t, c.Cancel(), ErrInvalidTransition)
	_, err := c.Remove("rice")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReopenAfterConflict(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.Upsert(Line{CanonicalName: "rice", Quantity: qty("3")}))
	assert.ErrorIs(t, c.Reopen(), ErrInvalidTransition)
	require.NoError(t, c.RequestSummary(true))
	require.NoError(t, c.Reopen())
	assert.Equal(t, StateBuilding, c.State)
}

func TestCancelIsIdempotent(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.Cancel())
	v := c.Version
	require.NoError(t, c.Cancel())
	assert.Equal(t, StateCancelled, c.State)
	assert.Equal(t, v, c.Version)
}

func TestRepriceAndOrderableLines(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.Upsert(Line{CanonicalName: "rice", Quantity: qty("3")}))
	require.NoError(t, c.Upsert(Line{CanonicalName: "milk", Quantity: qty("25")}))

	c.Reprice(&etline.Partition{
		Available: []etline.ResolvedLine{{
			CanonicalName: "rice", UnitPrice: qty("60"), LineTotal: qty("180"),
			StockQty: qty("50"), Classification: etline.Available,
		}},
		Unavailable: []etline.UnavailableLine{{CanonicalName: "milk", AvailableQty: qty("20")}},
	})

	orderable := c.OrderableLines()
	require.Len(t, orderable, 1)
	assert.Equal(t, "rice", orderable[0].CanonicalName)
	assert.True(t, orderable[0].LineTotal.Equal(qty("180")))

	milk, _ := c.Find("milk")
	assert.Equal(t, etline.Unavailable, milk.Classification)
	assert.True(t, milk.AvailableQty.Equal(qty("20")))
}

func TestCloneIsDeep(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.Upsert(Line{CanonicalName: "rice", Quantity: qty("3")}))
	cp := c.Clone()
	cp.Lines[0].Quantity = qty("9")
	assert.True(t, c.Lines[0].Quantity.Equal(qty("3")))
}
