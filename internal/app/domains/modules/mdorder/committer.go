package mdorder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"retailos/internal/app/domains/entity/etcatalog"
	"retailos/internal/app/domains/entity/etline"
	"retailos/internal/app/domains/entity/etorder"
	"retailos/internal/app/domains/modules/mdavailability"
	"retailos/internal/app/domains/repo/rpcatalog"
	"retailos/internal/app/pkg/errorx"
	"retailos/internal/app/pkg/textnorm"
)

// ErrCommitConflict matches any *CommitConflictError
var ErrCommitConflict = errors.New("stock changed before the order could be committed")

// compare-and-decrement attempts per commit: the first try plus one retry
const maxAttempts = 2

// ChangedLine a cart line that no longer commits as shown
type ChangedLine struct {
	CanonicalName  string
	RequestedQty   decimal.Decimal
	AvailableQty   decimal.Decimal
	Classification etline.Classification
	Reason         etline.Reason
}

// CommitConflictError nothing was written; Changed lists the offending lines
type CommitConflictError struct {
	Changed []ChangedLine
}

func (e *CommitConflictError) Error() string {
	names := make([]string, 0, len(e.Changed))
	for _, c := range e.Changed {
		names = append(names, c.CanonicalName)
	}
	return fmt.Sprintf("%s: %s", ErrCommitConflict.Error(), strings.Join(names, ", "))
}

func (e *CommitConflictError) Is(target error) bool {
	return target == ErrCommitConflict
}

// CommitLine one item to commit, quantity in the catalog unit
type CommitLine struct {
	CanonicalName string
	Quantity      decimal.Decimal
}

// CommitRequest confirmed lines of one cart
type CommitRequest struct {
	RetailerID string
	CustomerID string
	Lines      []CommitLine
	Notes      string
}

// IDGenerator numeric order numbers
type IDGenerator interface {
	NextID() int64
}

// Committer re-validates a confirmed cart against live stock and commits it
type Committer struct {
	inventory   rpcatalog.InventoryRepository
	partitioner *mdavailability.Partitioner
	orderNo     IDGenerator
}

// NewCommitter creates a Committer
func NewCommitter(inventory rpcatalog.InventoryRepository, partitioner *mdavailability.Partitioner, orderNo IDGenerator) *Committer {
	return &Committer{
		inventory:   inventory,
		partitioner: partitioner,
		orderNo:     orderNo,
	}
}

// Commit re-reads the catalog, re-classifies and re-prices every line, then
// decrements stock and stores the order in one atomic step. A version race is
// retried once; anything else that changed returns *CommitConflictError and
// leaves stock untouched.
func (c *Committer) Commit(ctx context.Context, req CommitRequest) (*etorder.Order, error) {
	if len(req.Lines) == 0 {
		return nil, errorx.ErrEmptyCartCommit
	}
	req.Lines = mergeLines(req.Lines)

	var (
		snap *etcatalog.Snapshot
		decs []rpcatalog.Decrement
		err  error
	)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		snap, err = c.inventory.GetSnapshot(ctx, req.RetailerID)
		if err != nil {
			return nil, fmt.Errorf("fetch inventory failed: %w", err)
		}

		partition := c.partitioner.Partition(toResolved(req.Lines), snap)
		if len(partition.Unavailable) > 0 {
			return nil, &CommitConflictError{Changed: unavailableChanges(partition.Unavailable)}
		}

		var order *etorder.Order
		order, decs, err = c.buildOrder(req, partition, snap)
		if err != nil {
			return nil, err
		}

		err = c.inventory.DecrementAtomic(ctx, req.RetailerID, decs, order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, rpcatalog.ErrVersionConflict) {
			return nil, fmt.Errorf("commit order failed: %w", err)
		}
	}

	return nil, c.raceConflict(ctx, req, decs)
}

func (c *Committer) buildOrder(req CommitRequest, partition etline.Partition, snap *etcatalog.Snapshot) (*etorder.Order, []rpcatalog.Decrement, error) {
	orderable := partition.Orderable()
	lines := make([]*etorder.Line, 0, len(orderable))
	decs := make([]rpcatalog.Decrement, 0, len(orderable))
	for _, rl := range orderable {
		item, _ := snap.Lookup(rl.CanonicalName)
		lines = append(lines, &etorder.Line{
			CanonicalName: rl.CanonicalName,
			Unit:          rl.Unit,
			Quantity:      rl.Quantity,
			UnitPrice:     rl.UnitPrice,
			LineTotal:     rl.LineTotal,
			Remaining:     item.StockQty.Sub(rl.Quantity),
			MinStockLevel: item.MinStockLevel,
		})
		decs = append(decs, rpcatalog.Decrement{
			CanonicalName:   item.CanonicalName,
			Quantity:        rl.Quantity,
			ExpectedVersion: item.Version,
		})
	}
	// fixed row order so concurrent commits lock rows the same way
	sort.Slice(decs, func(i, j int) bool {
		return textnorm.Key(decs[i].CanonicalName) < textnorm.Key(decs[j].CanonicalName)
	})

	order, err := etorder.NewOrder(uuid.New().String(), c.orderNo.NextID(), req.RetailerID, req.CustomerID, lines, req.Notes)
	if err != nil {
		return nil, nil, fmt.Errorf("create order entity failed: %w", err)
	}
	return order, decs, nil
}

// raceConflict reports the lines whose version moved under the last attempt
func (c *Committer) raceConflict(ctx context.Context, req CommitRequest, decs []rpcatalog.Decrement) error {
	snap, err := c.inventory.GetSnapshot(ctx, req.RetailerID)
	if err != nil {
		return fmt.Errorf("fetch inventory failed: %w", err)
	}

	partition := c.partitioner.Partition(toResolved(req.Lines), snap)
	if len(partition.Unavailable) > 0 {
		return &CommitConflictError{Changed: unavailableChanges(partition.Unavailable)}
	}

	expected := make(map[string]int64, len(decs))
	for _, d := range decs {
		expected[textnorm.Key(d.CanonicalName)] = d.ExpectedVersion
	}
	var changed []ChangedLine
	for _, rl := range partition.Orderable() {
		item, _ := snap.Lookup(rl.CanonicalName)
		if v, ok := expected[item.Key]; ok && v == item.Version {
			continue
		}
		changed = append(changed, ChangedLine{
			CanonicalName:  rl.CanonicalName,
			RequestedQty:   rl.Quantity,
			AvailableQty:   item.StockQty,
			Classification: rl.Classification,
			Reason:         etline.ReasonStockChanged,
		})
	}
	return &CommitConflictError{Changed: changed}
}

// mergeLines sums lines naming the same item so each item is classified
// and decremented once, against its total quantity
func mergeLines(lines []CommitLine) []CommitLine {
	out := make([]CommitLine, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		key := textnorm.Key(l.CanonicalName)
		if i, ok := index[key]; ok {
			out[i].Quantity = out[i].Quantity.Add(l.Quantity)
			continue
		}
		index[key] = len(out)
		out = append(out, l)
	}
	return out
}

func toResolved(lines []CommitLine) []etline.ResolvedLine {
	out := make([]etline.ResolvedLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, etline.ResolvedLine{CanonicalName: l.CanonicalName, Quantity: l.Quantity})
	}
	return out
}

func unavailableChanges(lines []etline.UnavailableLine) []ChangedLine {
	out := make([]ChangedLine, 0, len(lines))
	for _, u := range lines {
		out = append(out, ChangedLine{
			CanonicalName:  u.CanonicalName,
			RequestedQty:   u.Quantity,
			AvailableQty:   u.AvailableQty,
			Classification: etline.Unavailable,
			Reason:         u.Reason,
		})
	}
	return out
}
