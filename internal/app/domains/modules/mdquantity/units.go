package mdquantity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Dimension what a unit measures; conversions never cross dimensions
type Dimension string

const (
	Mass   Dimension = "mass"
	Volume Dimension = "volume"
	Count  Dimension = "count"
)

// Unit a known unit and its factor relative to the dimension base
type Unit struct {
	Name      string
	Dimension Dimension
	Factor    decimal.Decimal
}

var (
	gram  = Unit{Name: "g", Dimension: Mass, Factor: decimal.NewFromInt(1)}
	kilo  = Unit{Name: "kg", Dimension: Mass, Factor: decimal.NewFromInt(1000)}
	milli = Unit{Name: "ml", Dimension: Volume, Factor: decimal.NewFromInt(1)}
	litre = Unit{Name: "litre", Dimension: Volume, Factor: decimal.NewFromInt(1000)}
	piece = Unit{Name: "piece", Dimension: Count, Factor: decimal.NewFromInt(1)}
	dozen = Unit{Name: "dozen", Dimension: Count, Factor: decimal.NewFromInt(12)}
)

var unitAliases = map[string]Unit{
	"g": gram, "gm": gram, "gms": gram, "gram": gram, "grams": gram, "gramme": gram, "grammes": gram,
	"kg": kilo, "kgs": kilo, "kilo": kilo, "kilos": kilo, "kilogram": kilo, "kilograms": kilo,
	"ml": milli, "millilitre": milli, "millilitres": milli, "milliliter": milli, "milliliters": milli,
	"l": litre, "ltr": litre, "ltrs": litre, "litre": litre, "litres": litre, "liter": litre, "liters": litre,
	"piece": piece, "pieces": piece, "pc": piece, "pcs": piece, "nos": piece, "unit": piece, "units": piece, "each": piece,
	"dozen": dozen, "dozens": dozen, "dz": dozen,
	"किलो": kilo, "ग्राम": gram, "लीटर": litre, "दर्जन": dozen, "darjan": dozen,
}

// LookupUnit resolves a unit spelling such as "Kgs" or "litres"
func LookupUnit(name string) (Unit, bool) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSpace(name))]
	return u, ok
}
