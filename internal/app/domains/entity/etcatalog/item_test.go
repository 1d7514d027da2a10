package etcatalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, name, category string) *Item {
	t.Helper()
	item, err := NewItem("shop-1", name, "kg", category, decimal.NewFromInt(10), decimal.NewFromInt(40), decimal.NewFromInt(2))
	require.NoError(t, err)
	return item
}

func TestNewItemValidation(t *testing.T) {
	ten := decimal.NewFromInt(10)
	tests := []struct {
		name    string
		build   func() (*Item, error)
		wantErr error
	}{
		{"empty retailer", func() (*Item, error) { return NewItem("", "rice", "kg", "", ten, ten, ten) }, ErrInvalidRetailerID},
		{"blank name", func() (*Item, error) { return NewItem("s", " !! ", "kg", "", ten, ten, ten) }, ErrInvalidName},
		{"empty unit", func() (*Item, error) { return NewItem("s", "rice", "", "", ten, ten, ten) }, ErrInvalidUnit},
		{"negative stock", func() (*Item, error) { return NewItem("s", "rice", "kg", "", ten.Neg(), ten, ten) }, ErrNegativeStock},
		{"zero price", func() (*Item, error) { return NewItem("s", "rice", "kg", "", ten, decimal.Zero, ten) }, ErrNonPositivePrice},
		{"negative min", func() (*Item, error) { return NewItem("s", "rice", "kg", "", ten, ten, ten.Neg()) }, ErrNegativeMinStock},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.build()
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSnapshotLookupIgnoresCaseAndAccents(t *testing.T) {
	snap, err := NewSnapshot("shop-1", []*Item{mustItem(t, "Jalapeño", "veg"), mustItem(t, "Rice", "grains")})
	require.NoError(t, err)

	item, ok := snap.Lookup("  JALAPENO ")
	require.True(t, ok)
	assert.Equal(t, "Jalapeño", item.CanonicalName)

	_, ok = snap.Lookup("wheat")
	assert.False(t, ok)
	assert.Equal(t, 2, snap.Len())
}

func TestSnapshotRejectsDuplicates(t *testing.T) {
	_, err := NewSnapshot("shop-1", []*Item{mustItem(t, "Rice", ""), mustItem(t, "RICE", "")})
	assert.ErrorIs(t, err, ErrDuplicateCanonical)
}

func TestSnapshotInCategory(t *testing.T) {
	snap, err := NewSnapshot("shop-1", []*Item{
		mustItem(t, "milk", "dairy"),
		mustItem(t, "curd", "dairy"),
		mustItem(t, "rice", "grains"),
	})
	require.NoError(t, err)

	got := snap.InCategory("dairy", "Milk")
	require.Len(t, got, 1)
	assert.Equal(t, "curd", got[0].CanonicalName)
	assert.Empty(t, snap.InCategory("", "milk"))
}
