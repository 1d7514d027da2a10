package mdcommand

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailos/internal/app/domains/entity/etline"
)

func newParser() *Parser {
	return NewParser(DefaultLexicons()...)
}

func TestParseKinds(t *testing.T) {
	p := newParser()
	tests := []struct {
		lang string
		text string
		want Kind
	}{
		{"en", "confirm", KindConfirm},
		{"en", "Yes, place order", KindConfirm},
		{"en", "cancel", KindCancel},
		{"en", "start over", KindCancel},
		{"en", "show cart", KindSummary},
		{"en", "what's the total?", KindSummary},
		{"en", "remove tomatoes", KindRemove},
		{"en", "remov tomatoes", KindRemove},
		{"en", "I don't want the milk", KindRemove},
		{"en", "add 2kg rice", KindAdd},
		{"en", "2kg rice, 1 litre milk", KindAdd},
		{"en", "hello there", KindUnknown},
		{"en", "   ", KindUnknown},
		{"hi", "tamatar hata do", KindRemove},
		{"hi", "टमाटर हटाओ", KindRemove},
		{"hi", "kitna hua", KindSummary},
		{"hi", "पक्का", KindConfirm},
		{"hi", "radd karo", KindCancel},
		{"hi", "do kilo chawal chahiye", KindAdd},
		{"ta", "தக்காளி நீக்கு", KindRemove},
		{"ta", "சரி", KindConfirm},
		{"te", "పాలు వద్దు", KindRemove},
		{"te", "మొత్తం", KindSummary},
		{"fr", "remove rice", KindRemove},
	}
	for _, tc := range tests {
		t.Run(tc.lang+"/"+tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Parse(tc.lang, tc.text).Kind())
		})
	}
}

func TestParseRemoveItems(t *testing.T) {
	p := newParser()

	cmd, ok := p.Parse("en", "please remove the tomatoes and onions from my cart").(RemoveCommand)
	require.True(t, ok)
	require.Len(t, cmd.Items, 2)
	assert.Equal(t, "tomatoes", cmd.Items[0].Phrase)
	assert.Equal(t, "onions", cmd.Items[1].Phrase)
	assert.Equal(t, []string{"tomatoes"}, cmd.Items[0].Names())

	cmd, ok = p.Parse("hi", "tamatar aur pyaz hatao").(RemoveCommand)
	require.True(t, ok)
	require.Len(t, cmd.Items, 2)
	assert.Equal(t, ItemRef{Phrase: "tamatar", Alias: "tomato"}, cmd.Items[0])
	assert.Equal(t, []string{"tomato", "tamatar"}, cmd.Items[0].Names())
	assert.Equal(t, "onion", cmd.Items[1].Alias)

	cmd, ok = p.Parse("ta", "தக்காளி நீக்கு").(RemoveCommand)
	require.True(t, ok)
	require.Len(t, cmd.Items, 1)
	assert.Equal(t, "tomato", cmd.Items[0].Alias)
}

func TestParseRemoveDropsQuantity(t *testing.T) {
	p := newParser()

	cmd, ok := p.Parse("en", "remove 3kg rice").(RemoveCommand)
	require.True(t, ok)
	require.Len(t, cmd.Items, 1)
	assert.Equal(t, "rice", cmd.Items[0].Phrase)

	cmd, ok = p.Parse("en", "remove milk 2 litre and 2 onions").(RemoveCommand)
	require.True(t, ok)
	require.Len(t, cmd.Items, 2)
	assert.Equal(t, "milk", cmd.Items[0].Phrase)
	assert.Equal(t, "onions", cmd.Items[1].Phrase)
}

func TestParseCancelWithItemIsRemove(t *testing.T) {
	cmd, ok := newParser().Parse("en", "cancel the rice").(RemoveCommand)
	require.True(t, ok)
	require.Len(t, cmd.Items, 1)
	assert.Equal(t, "rice", cmd.Items[0].Phrase)
}

func line(name, qty, unit string) etline.RequestedLine {
	return etline.RequestedLine{RawText: name, Quantity: decimal.RequireFromString(qty), UnitHint: unit}
}

func assertLines(t *testing.T, want, got []etline.RequestedLine) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].RawText, got[i].RawText)
		assert.Equal(t, want[i].UnitHint, got[i].UnitHint)
		assert.True(t, want[i].Quantity.Equal(got[i].Quantity), "line %d qty %s", i, got[i].Quantity)
	}
}

func TestParseAddLines(t *testing.T) {
	p := newParser()

	cmd, ok := p.Parse("en", "add 2kg rice, 1.5 litre milk and a dozen eggs").(AddCommand)
	require.True(t, ok)
	assertLines(t, []etline.RequestedLine{
		line("rice", "2", "kg"),
		line("milk", "1.5", "litre"),
		line("eggs", "1", "dozen"),
	}, cmd.Lines)

	cmd, ok = p.Parse("en", "add bread").(AddCommand)
	require.True(t, ok)
	assertLines(t, []etline.RequestedLine{line("bread", "1", "")}, cmd.Lines)

	cmd, ok = p.Parse("en", "500g sugar; 2 kg of onions").(AddCommand)
	require.True(t, ok)
	assertLines(t, []etline.RequestedLine{line("sugar", "500", "g"), line("onions", "2", "kg")}, cmd.Lines)

	cmd, ok = p.Parse("hi", "do kilo chawal chahiye").(AddCommand)
	require.True(t, ok)
	assertLines(t, []etline.RequestedLine{line("rice", "2", "kg")}, cmd.Lines)
}
