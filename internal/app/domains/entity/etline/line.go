package etline

import (
	"github.com/shopspring/decimal"
)

// Classification availability verdict for one line
type Classification string

const (
	Available   Classification = "available"
	LowStock    Classification = "low_stock"
	Unavailable Classification = "unavailable"
)

// Orderable reports whether a line with this verdict may be committed
func (c Classification) Orderable() bool {
	return c == Available || c == LowStock
}

// Reason why a line ended up unavailable
type Reason string

const (
	ReasonInsufficientStock Reason = "insufficient_stock"
	ReasonUnresolvedItem    Reason = "unresolved_item"
	ReasonAmbiguousItem     Reason = "ambiguous_item"
	ReasonUnitMismatch      Reason = "unit_mismatch"
	ReasonInvalidQuantity   Reason = "invalid_quantity"
	ReasonItemRemoved       Reason = "item_removed"
	ReasonStockChanged      Reason = "stock_changed"
)

// RequestedLine one item mention from a user turn, never persisted
type RequestedLine struct {
	RawText  string
	Quantity decimal.Decimal
	UnitHint string
}

// ResolvedLine a catalog item with quantity in the catalog unit and its pricing
type ResolvedLine struct {
	CanonicalName  string
	RequestedName  string
	Unit           string
	Category       string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	LineTotal      decimal.Decimal
	StockQty       decimal.Decimal
	Classification Classification
}

// Candidate a ranked catalog match
type Candidate struct {
	CanonicalName string
	Score         float64
}

// UnavailableLine a line that cannot be ordered right now
type UnavailableLine struct {
	RequestedName string
	CanonicalName string // empty when the item did not resolve
	Quantity      decimal.Decimal
	Unit          string
	AvailableQty  decimal.Decimal
	Reason        Reason
	Detail        string
	Alternatives  []string
}

// Partition disjoint three-way split of a set of lines
type Partition struct {
	Available   []ResolvedLine
	LowStock    []ResolvedLine
	Unavailable []UnavailableLine
}

// Orderable available and low stock lines, in that order
func (p *Partition) Orderable() []ResolvedLine {
	out := make([]ResolvedLine, 0, len(p.Available)+len(p.LowStock))
	out = append(out, p.Available...)
	return append(out, p.LowStock...)
}

// HasOrderable at least one line may be committed
func (p *Partition) HasOrderable() bool {
	return len(p.Available)+len(p.LowStock) > 0
}

// Size total number of lines across the three sets
func (p *Partition) Size() int {
	return len(p.Available) + len(p.LowStock) + len(p.Unavailable)
}

// Total sum of orderable line totals
func (p *Partition) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Available {
		total = total.Add(l.LineTotal)
	}
	for _, l := range p.LowStock {
		total = total.Add(l.LineTotal)
	}
	return total
}
