package mdquantity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer()
	tests := []struct {
		qty     string
		hint    string
		catalog string
		want    string
	}{
		{"2", "kg", "kg", "2"},
		{"500", "g", "kg", "0.5"},
		{"1.5", "kg", "g", "1500"},
		{"250", "ml", "litre", "0.25"},
		{"2", "litres", "ml", "2000"},
		{"1", "dozen", "piece", "12"},
		{"6", "pcs", "dozen", "0.5"},
		{"3", "", "kg", "3"},
		{"4", "packet", "Packet", "4"},
	}
	for _, tc := range tests {
		t.Run(tc.qty+tc.hint+"->"+tc.catalog, func(t *testing.T) {
			got, err := n.Normalize(d(tc.qty), tc.hint, tc.catalog)
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tc.want)), "got %s want %s", got, tc.want)
		})
	}
}

func TestNormalizeRejectsCrossDimension(t *testing.T) {
	n := NewNormalizer()
	for _, pair := range [][2]string{{"piece", "kg"}, {"kg", "litre"}, {"cup", "kg"}, {"dozen", "ml"}} {
		_, err := n.Normalize(d("1"), pair[0], pair[1])
		var mismatch *UnitMismatchError
		require.ErrorAs(t, err, &mismatch, "%v", pair)
		assert.Equal(t, pair[0], mismatch.From)
		assert.Equal(t, pair[1], mismatch.To)
	}
}

func TestNormalizeRejectsNonPositive(t *testing.T) {
	n := NewNormalizer()
	_, err := n.Normalize(decimal.Zero, "kg", "kg")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = n.Normalize(d("-1"), "kg", "kg")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = n.Normalize(d("0.0000001"), "g", "kg")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestParsePhrase(t *testing.T) {
	tests := []struct {
		in   string
		qty  string
		unit string
		rest string
	}{
		{"2kg rice", "2", "kg", "rice"},
		{"2 kg of basmati rice", "2", "kg", "basmati rice"},
		{"1.5L milk", "1.5", "litre", "milk"},
		{"a dozen eggs", "1", "dozen", "eggs"},
		{"dozen bananas", "1", "dozen", "bananas"},
		{"half kg onions", "0.5", "kg", "onions"},
		{"half a kg onions", "0.5", "kg", "onions"},
		{"1/2 kg sugar", "0.5", "kg", "sugar"},
		{"3 tomatoes", "3", "", "tomatoes"},
		{"rice 2kg", "2", "kg", "rice"},
		{"milk 1 litre", "1", "litre", "milk"},
		{"basmati rice 2", "2", "", "basmati rice"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			p, ok := ParsePhrase(tc.in)
			require.True(t, ok)
			assert.True(t, p.Quantity.Equal(d(tc.qty)), "qty %s", p.Quantity)
			assert.Equal(t, tc.unit, p.Unit)
			assert.Equal(t, tc.rest, p.Rest)
		})
	}
}

func TestParsePhraseWithoutQuantity(t *testing.T) {
	p, ok := ParsePhrase("  Rice! ")
	assert.False(t, ok)
	assert.Equal(t, "rice", p.Rest)

	_, ok = ParsePhrase("")
	assert.False(t, ok)
}
