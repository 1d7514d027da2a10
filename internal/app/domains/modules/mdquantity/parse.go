package mdquantity

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Parsed quantity and unit read out of a short phrase, plus the leftover words
type Parsed struct {
	Quantity decimal.Decimal
	Unit     string
	Rest     string
}

var numberWords = map[string]decimal.Decimal{
	"a":       decimal.NewFromInt(1),
	"an":      decimal.NewFromInt(1),
	"one":     decimal.NewFromInt(1),
	"two":     decimal.NewFromInt(2),
	"three":   decimal.NewFromInt(3),
	"four":    decimal.NewFromInt(4),
	"five":    decimal.NewFromInt(5),
	"six":     decimal.NewFromInt(6),
	"seven":   decimal.NewFromInt(7),
	"eight":   decimal.NewFromInt(8),
	"nine":    decimal.NewFromInt(9),
	"ten":     decimal.NewFromInt(10),
	"half":    decimal.RequireFromString("0.5"),
	"quarter": decimal.RequireFromString("0.25"),

	// romanised and Devanagari Hindi
	"ek":     decimal.NewFromInt(1),
	"do":     decimal.NewFromInt(2),
	"teen":   decimal.NewFromInt(3),
	"char":   decimal.NewFromInt(4),
	"paanch": decimal.NewFromInt(5),
	"aadha":  decimal.RequireFromString("0.5"),
	"adha":   decimal.RequireFromString("0.5"),
	"dedh":   decimal.RequireFromString("1.5"),
	"dhai":   decimal.RequireFromString("2.5"),
	"एक":     decimal.NewFromInt(1),
	"दो":     decimal.NewFromInt(2),
	"तीन":    decimal.NewFromInt(3),
	"चार":    decimal.NewFromInt(4),
	"पांच":   decimal.NewFromInt(5),
	"आधा":    decimal.RequireFromString("0.5"),
	"डेढ़":   decimal.RequireFromString("1.5"),
}

// ParsePhrase reads "2kg rice", "rice 2 kg", "a dozen eggs" or "half kg onion".
// ok is false when no quantity was found; Rest then holds the whole phrase.
func ParsePhrase(text string) (Parsed, bool) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return Parsed{}, false
	}

	if qty, unit, n := readQuantity(tokens); n > 0 {
		rest := tokens[n:]
		if len(rest) > 0 && rest[0] == "of" {
			rest = rest[1:]
		}
		return Parsed{Quantity: qty, Unit: unit, Rest: strings.Join(rest, " ")}, true
	}

	// trailing form: "rice 2kg", "milk 1 litre", "eggs 6"
	for start := len(tokens) - 2; start < len(tokens); start++ {
		if start < 1 {
			continue
		}
		if qty, unit, n := readQuantity(tokens[start:]); n > 0 && start+n == len(tokens) {
			return Parsed{Quantity: qty, Unit: unit, Rest: strings.Join(tokens[:start], " ")}, true
		}
	}

	return Parsed{Rest: strings.Join(tokens, " ")}, false
}

// readQuantity consumes a leading quantity and optional unit; n is the
// number of tokens used, zero when tokens do not start with a quantity.
func readQuantity(tokens []string) (decimal.Decimal, string, int) {
	first := tokens[0]

	if num, unitPart, ok := splitGlued(first); ok {
		if u, known := LookupUnit(unitPart); known {
			return num, u.Name, 1
		}
		return decimal.Zero, "", 0
	}

	if u, known := LookupUnit(first); known && u.Name == dozen.Name {
		return decimal.NewFromInt(1), dozen.Name, 1
	}

	num, ok := parseNumber(first)
	if !ok {
		return decimal.Zero, "", 0
	}
	n := 1
	// "half a kg"
	if n < len(tokens) && (tokens[n] == "a" || tokens[n] == "an") && n+1 < len(tokens) {
		if _, known := LookupUnit(tokens[n+1]); known {
			n++
		}
	}
	if n < len(tokens) {
		if u, known := LookupUnit(tokens[n]); known {
			return num, u.Name, n + 1
		}
	}
	// a bare article is only a quantity when more words follow
	if (first == "a" || first == "an") && len(tokens) == 1 {
		return decimal.Zero, "", 0
	}
	return num, "", 1
}

func parseNumber(tok string) (decimal.Decimal, bool) {
	if v, ok := numberWords[tok]; ok {
		return v, true
	}
	if num, den, found := strings.Cut(tok, "/"); found {
		a, errA := decimal.NewFromString(num)
		b, errB := decimal.NewFromString(den)
		if errA != nil || errB != nil || b.IsZero() {
			return decimal.Zero, false
		}
		return a.DivRound(b, quantityPlaces), true
	}
	if !startsWithDigit(tok) {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(tok)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// splitGlued splits "2kg" or "1.5l" into its number and unit parts
func splitGlued(tok string) (decimal.Decimal, string, bool) {
	if !startsWithDigit(tok) {
		return decimal.Zero, "", false
	}
	i := strings.IndexFunc(tok, unicode.IsLetter)
	if i <= 0 {
		return decimal.Zero, "", false
	}
	num, err := decimal.NewFromString(tok[:i])
	if err != nil {
		return decimal.Zero, "", false
	}
	return num, tok[i:], true
}

func startsWithDigit(tok string) bool {
	return tok != "" && tok[0] >= '0' && tok[0] <= '9'
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ",;:!?\"'()")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
