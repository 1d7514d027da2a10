package mdquantity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity zero or negative quantity
var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// UnitMismatchError no deterministic conversion between the two units
type UnitMismatchError struct {
	From string
	To   string
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("cannot convert %q to %q", e.From, e.To)
}

// quantityPlaces decimals kept after a unit conversion
const quantityPlaces = 6

// Normalizer converts requested quantities into catalog units
type Normalizer struct{}

// NewNormalizer creates a Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize converts qty expressed in hint into catalogUnit. An empty hint
// means the quantity is already in the catalog unit.
func (n *Normalizer) Normalize(qty decimal.Decimal, hint, catalogUnit string) (decimal.Decimal, error) {
	if !qty.IsPositive() {
		return decimal.Zero, ErrInvalidQuantity
	}
	hint = strings.TrimSpace(hint)
	if hint == "" || strings.EqualFold(hint, catalogUnit) {
		return qty, nil
	}

	from, okFrom := LookupUnit(hint)
	to, okTo := LookupUnit(catalogUnit)
	if !okFrom || !okTo {
		return decimal.Zero, &UnitMismatchError{From: hint, To: catalogUnit}
	}
	if from.Dimension != to.Dimension {
		return decimal.Zero, &UnitMismatchError{From: hint, To: catalogUnit}
	}
	if from.Name == to.Name {
		return qty, nil
	}

	converted := qty.Mul(from.Factor).DivRound(to.Factor, quantityPlaces)
	if !converted.IsPositive() {
		return decimal.Zero, ErrInvalidQuantity
	}
	return converted, nil
}
