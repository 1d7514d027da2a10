package mdavailability

import (
	"sort"

	"github.com/shopspring/decimal"

	"retailos/internal/app/domains/entity/etcatalog"
	"retailos/internal/app/domains/entity/etline"
)

// Partitioner classifies resolved lines against a snapshot and prices them.
// It never mutates the snapshot.
type Partitioner struct {
	precision       int32
	maxAlternatives int
}

// NewPartitioner precision is the number of currency decimals
func NewPartitioner(precision int32, maxAlternatives int) *Partitioner {
	return &Partitioner{
		precision:       precision,
		maxAlternatives: maxAlternatives,
	}
}

// Classify applies the precedence unavailable, then low stock, then available
func (p *Partitioner) Classify(qty decimal.Decimal, item *etcatalog.Item) etline.Classification {
	if qty.GreaterThan(item.StockQty) {
		return etline.Unavailable
	}
	if item.StockQty.Sub(qty).LessThan(item.MinStockLevel) {
		return etline.LowStock
	}
	return etline.Available
}

// Price unit price times quantity, rounded half up to the currency precision
func (p *Partitioner) Price(unitPrice, qty decimal.Decimal) decimal.Decimal {
	// Round is half away from zero, which is half up for non-negative amounts
	return unitPrice.Mul(qty).Round(p.precision)
}

// Partition classifies every line against snap. Each input line lands in
// exactly one of the three output sets, in input order. Lines whose item is
// gone from the snapshot are unavailable with reason item_removed.
func (p *Partitioner) Partition(lines []etline.ResolvedLine, snap *etcatalog.Snapshot) etline.Partition {
	var out etline.Partition
	for _, line := range lines {
		item, ok := snap.Lookup(line.CanonicalName)
		if !ok {
			out.Unavailable = append(out.Unavailable, etline.UnavailableLine{
				RequestedName: requestedName(line),
				CanonicalName: line.CanonicalName,
				Quantity:      line.Quantity,
				Unit:          line.Unit,
				AvailableQty:  decimal.Zero,
				Reason:        etline.ReasonItemRemoved,
				Detail:        "item is no longer in the catalog",
			})
			continue
		}

		class := p.Classify(line.Quantity, item)
		if class == etline.Unavailable {
			out.Unavailable = append(out.Unavailable, etline.UnavailableLine{
				RequestedName: requestedName(line),
				CanonicalName: item.CanonicalName,
				Quantity:      line.Quantity,
				Unit:          item.Unit,
				AvailableQty:  item.StockQty,
				Reason:        etline.ReasonInsufficientStock,
				Alternatives:  p.Alternatives(item, line.Quantity, snap),
			})
			continue
		}

		resolved := etline.ResolvedLine{
			CanonicalName:  item.CanonicalName,
			RequestedName:  requestedName(line),
			Unit:           item.Unit,
			Category:       item.Category,
			Quantity:       line.Quantity,
			UnitPrice:      item.UnitPrice,
			LineTotal:      p.Price(item.UnitPrice, line.Quantity),
			StockQty:       item.StockQty,
			Classification: class,
		}
		if class == etline.LowStock {
			out.LowStock = append(out.LowStock, resolved)
		} else {
			out.Available = append(out.Available, resolved)
		}
	}
	return out
}

// Alternatives up to maxAlternatives in-stock items of the same category.
// Items that can cover qty come first, then by name.
func (p *Partitioner) Alternatives(item *etcatalog.Item, qty decimal.Decimal, snap *etcatalog.Snapshot) []string {
	if p.maxAlternatives <= 0 {
		return nil
	}
	var pool []*etcatalog.Item
	for _, other := range snap.InCategory(item.Category, item.CanonicalName) {
		if other.StockQty.IsPositive() {
			pool = append(pool, other)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		ci := !qty.GreaterThan(pool[i].StockQty)
		cj := !qty.GreaterThan(pool[j].StockQty)
		if ci != cj {
			return ci
		}
		return pool[i].Key < pool[j].Key
	})
	if len(pool) > p.maxAlternatives {
		pool = pool[:p.maxAlternatives]
	}
	out := make([]string, 0, len(pool))
	for _, alt := range pool {
		out = append(out, alt.CanonicalName)
	}
	return out
}

func requestedName(line etline.ResolvedLine) string {
	if line.RequestedName != "" {
		return line.RequestedName
	}
	return line.CanonicalName
}
