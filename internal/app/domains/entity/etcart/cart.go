package etcart

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"retailos/internal/app/domains/entity/etline"
	"retailos/internal/app/pkg/textnorm"
)

var (
	ErrInvalidSession    = errors.New("customer id and retailer id are required")
	ErrInvalidTransition = errors.New("invalid cart state transition")
	ErrInvalidLine       = errors.New("cart line needs a canonical name and a positive quantity")
)

// State conversation cart state
type State string

const (
	StateEmpty                State = "EMPTY"
	StateBuilding             State = "BUILDING"
	StateAwaitingConfirmation State = "AWAITING_CONFIRMATION"
	StateCommitted            State = "COMMITTED"
	StateCancelled            State = "CANCELLED"
)

// Terminal COMMITTED and CANCELLED accept no further transitions
func (s State) Terminal() bool {
	return s == StateCommitted || s == StateCancelled
}

// Line one cart entry, keyed by canonical name
type Line struct {
	CanonicalName  string                `json:"canonical_name"`
	RequestedName  string                `json:"requested_name"`
	Quantity       decimal.Decimal       `json:"quantity"`
	Unit           string                `json:"unit"`
	UnitPrice      decimal.Decimal       `json:"unit_price"`
	LineTotal      decimal.Decimal       `json:"line_total"`
	AvailableQty   decimal.Decimal       `json:"available_qty"`
	Classification etline.Classification `json:"classification"`
}

// Cart proposed order of one (customer, retailer) conversation
type Cart struct {
	CustomerID string    `json:"customer_id"`
	RetailerID string    `json:"retailer_id"`
	State      State     `json:"state"`
	Lines      []*Line   `json:"lines"`
	Version    int64     `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// New empty cart
func New(customerID, retailerID string) (*Cart, error) {
	if customerID == "" || retailerID == "" {
		return nil, ErrInvalidSession
	}
	now := time.Now()
	return &Cart{
		CustomerID: customerID,
		RetailerID: retailerID,
		State:      StateEmpty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (c *Cart) transitionError(op string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, c.State)
}

func (c *Cart) touch() {
	c.Version++
	c.UpdatedAt = time.Now()
}

// Find returns the line for name, ignoring case and diacritics
func (c *Cart) Find(name string) (*Line, int) {
	key := textnorm.Key(name)
	for i, l := range c.Lines {
		if textnorm.Key(l.CanonicalName) == key {
			return l, i
		}
	}
	return nil, -1
}

// Upsert adds a line or replaces the quantity of the existing line with the
// same canonical name. Allowed from any non-terminal state; leaves BUILDING.
func (c *Cart) Upsert(line Line) error {
	if c.State.Terminal() {
		return c.transitionError("add")
	}
	if line.CanonicalName == "" || !line.Quantity.IsPositive() {
		return ErrInvalidLine
	}
	if existing, _ := c.Find(line.CanonicalName); existing != nil {
		*existing = line
	} else {
		l := line
		c.Lines = append(c.Lines, &l)
	}
	c.State = StateBuilding
	c.touch()
	return nil
}

// Remove drops the line for name. Returns false when nothing matched.
// An emptied cart goes back to EMPTY.
func (c *Cart) Remove(name string) (bool, error) {
	if c.State.Terminal() {
		return false, c.transitionError("remove")
	}
	_, idx := c.Find(name)
	if idx < 0 {
		return false, nil
	}
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
	if len(c.Lines) == 0 {
		c.State = StateEmpty
	} else {
		c.State = StateBuilding
	}
	c.touch()
	return true, nil
}

// Reprice copies the latest classification and pricing onto matching lines
func (c *Cart) Reprice(p *etline.Partition) {
	apply := func(name string, fn func(*Line)) {
		if l, _ := c.Find(name); l != nil {
			fn(l)
		}
	}
	for _, rl := range p.Orderable() {
		rl := rl
		apply(rl.CanonicalName, func(l *Line) {
			l.UnitPrice = rl.UnitPrice
			l.LineTotal = rl.LineTotal
			l.AvailableQty = rl.StockQty
			l.Classification = rl.Classification
		})
	}
	for _, ul := range p.Unavailable {
		if ul.CanonicalName == "" {
			continue
		}
		ul := ul
		apply(ul.CanonicalName, func(l *Line) {
			l.UnitPrice = decimal.Zero
			l.LineTotal = decimal.Zero
			l.AvailableQty = ul.AvailableQty
			l.Classification = etline.Unavailable
		})
	}
}

// RequestSummary moves BUILDING to AWAITING_CONFIRMATION when something is
// orderable. Other non-terminal states are left as they are.
func (c *Cart) RequestSummary(hasOrderable bool) error {
	if c.State.Terminal() {
		return c.transitionError("summary")
	}
	if c.State == StateBuilding && hasOrderable {
		c.State = StateAwaitingConfirmation
		c.touch()
	}
	return nil
}

// CanConfirm only an awaiting cart may be committed
func (c *Cart) CanConfirm() error {
	if c.State != StateAwaitingConfirmation {
		return c.transitionError("confirm")
	}
	return nil
}

// MarkCommitted AWAITING_CONFIRMATION -> COMMITTED
func (c *Cart) MarkCommitted() error {
	if err := c.CanConfirm(); err != nil {
		return err
	}
	c.State = StateCommitted
	c.touch()
	return nil
}

// Reopen AWAITING_CONFIRMATION -> BUILDING after a failed commit
func (c *Cart) Reopen() error {
	if c.State != StateAwaitingConfirmation {
		return c.transitionError("reopen")
	}
	c.State = StateBuilding
	c.touch()
	return nil
}

// Cancel moves any non-terminal cart to CANCELLED; cancelling twice is a no-op
func (c *Cart) Cancel() error {
	switch c.State {
	case StateCancelled:
		return nil
	case StateCommitted:
		return c.transitionError("cancel")
	}
	c.State = StateCancelled
	c.touch()
	return nil
}

// OrderableLines lines last classified available or low stock
func (c *Cart) OrderableLines() []*Line {
	var out []*Line
	for _, l := range c.Lines {
		if l.Classification.Orderable() {
			out = append(out, l)
		}
	}
	return out
}

// IsEmpty no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clone deep copy
func (c *Cart) Clone() *Cart {
	cp := *c
	cp.Lines = make([]*Line, 0, len(c.Lines))
	for _, l := range c.Lines {
		line := *l
		cp.Lines = append(cp.Lines, &line)
	}
	return &cp
}
