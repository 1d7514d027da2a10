package svorder

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"retailos/internal/app/domains/entity/etcart"
	"retailos/internal/app/domains/entity/etorder"
	"retailos/internal/app/domains/modules/mdorder"
	"retailos/internal/app/domains/modules/mdstockcheck"
	"retailos/internal/app/domains/repo/rpcart"
	"retailos/internal/app/domains/repo/rporder"
	"retailos/internal/app/pkg/errorx"
	"retailos/internal/app/pkg/keylock"
	"retailos/pkg/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ConfirmedItem one line the customer confirmed; Quantity is optional and,
// when given, must match the cart
type ConfirmedItem struct {
	Name     string
	Quantity *decimal.Decimal
}

// CheckoutRequest explicit commit of a subset of the cart
type CheckoutRequest struct {
	CustomerID string
	RetailerID string
	Items      []ConfirmedItem
	Notes      string
}

// OrderService commits carts into orders and serves order reads
type OrderService struct {
	locker     *keylock.Locker
	carts      rpcart.CartRepository
	orders     rporder.OrderRepository
	committer  *mdorder.Committer
	stockCheck *mdstockcheck.StockCheckModule
	logger     logger.Logger
}

// NewOrderService creates the service. locker must be the one the
// conversation service uses so turns and checkouts of one cart never overlap.
func NewOrderService(
	locker *keylock.Locker,
	carts rpcart.CartRepository,
	orders rporder.OrderRepository,
	committer *mdorder.Committer,
	stockCheck *mdstockcheck.StockCheckModule,
	logger logger.Logger,
) *OrderService {
	return &OrderService{
		locker:     locker,
		carts:      carts,
		orders:     orders,
		committer:  committer,
		stockCheck: stockCheck,
		logger:     logger,
	}
}

// Checkout commits the confirmed subset of the customer's cart
func (s *OrderService) Checkout(ctx context.Context, req CheckoutRequest) (*etorder.Order, error) {
	unlock := s.locker.Lock(keylock.SessionKey(req.CustomerID, req.RetailerID))
	defer unlock()

	cart, err := s.carts.Get(ctx, req.CustomerID, req.RetailerID)
	if err != nil {
		return nil, fmt.Errorf("load cart failed: %w", err)
	}
	if cart == nil {
		return nil, errorx.ErrCartNotFound
	}
	if len(req.Items) == 0 {
		return nil, errorx.ErrEmptyCartCommit
	}

	lines, err := confirmedLines(cart, req.Items)
	if err != nil {
		return nil, err
	}
	return s.CommitCart(ctx, cart, lines, req.Notes)
}

// CommitCart commits lines of cart. The caller holds the cart's session lock.
// A conflict reopens the cart with the new availability and returns
// *mdorder.CommitConflictError; a success ends the session.
func (s *OrderService) CommitCart(ctx context.Context, cart *etcart.Cart, lines []mdorder.CommitLine, notes string) (*etorder.Order, error) {
	if err := cart.CanConfirm(); err != nil {
		return nil, fmt.Errorf("%w: %v", errorx.ErrInvalidCartState, err)
	}
	if len(lines) == 0 {
		return nil, errorx.ErrEmptyCartCommit
	}

	order, err := s.committer.Commit(ctx, mdorder.CommitRequest{
		RetailerID: cart.RetailerID,
		CustomerID: cart.CustomerID,
		Lines:      lines,
		Notes:      notes,
	})
	if err != nil {
		var conflict *mdorder.CommitConflictError
		if errors.As(err, &conflict) {
			s.reopen(ctx, cart, conflict)
		}
		return nil, err
	}

	if err := cart.MarkCommitted(); err != nil {
		return nil, err
	}
	if err := s.carts.Delete(ctx, cart.CustomerID, cart.RetailerID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear committed cart", "order_id", order.ID, "error", err)
	}

	s.logger.InfoContext(ctx, "Order committed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"items_count", order.ItemsCount(),
		"total", order.Total.String(),
	)

	s.publishStockCheck(ctx, order)
	return order, nil
}

func (s *OrderService) reopen(ctx context.Context, cart *etcart.Cart, conflict *mdorder.CommitConflictError) {
	for _, c := range conflict.Changed {
		if line, _ := cart.Find(c.CanonicalName); line != nil {
			line.AvailableQty = c.AvailableQty
			line.Classification = c.Classification
		}
	}
	if err := cart.Reopen(); err != nil {
		s.logger.WarnContext(ctx, "Cart could not be reopened after conflict", "state", cart.State, "error", err)
		return
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save reopened cart", "error", err)
	}
	s.logger.WarnContext(ctx, "Commit conflict, cart reopened", "changed_lines", len(conflict.Changed))
}

// publishStockCheck never fails the commit
func (s *OrderService) publishStockCheck(ctx context.Context, order *etorder.Order) {
	jobID, err := s.stockCheck.PublishStockCheck(ctx, order)
	if err != nil {
		s.logger.WarnContext(ctx, "Publish stock check job failed", "order_id", order.ID, "error", err)
		return
	}
	if jobID != "" {
		s.logger.InfoContext(ctx, "Stock check job published", "order_id", order.ID, "job_id", jobID)
	}
}

// GetOrder one order by id
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*etorder.Order, error) {
	return s.orders.GetByID(ctx, orderID)
}

// ListOrders newest first; page starts at 1
func (s *OrderService) ListOrders(ctx context.Context, retailerID, customerID string, page, limit int) ([]*etorder.Order, int64, error) {
	page, limit = Paging(page, limit)
	return s.orders.List(ctx, retailerID, customerID, page, limit)
}

// Paging applies the default and maximum page size
func Paging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// confirmedLines maps confirmed items onto orderable cart lines. Every item
// must name a distinct orderable line, with the cart's quantity if one is given.
func confirmedLines(cart *etcart.Cart, items []ConfirmedItem) ([]mdorder.CommitLine, error) {
	seen := make(map[string]bool, len(items))
	lines := make([]mdorder.CommitLine, 0, len(items))
	for _, item := range items {
		line, _ := cart.Find(item.Name)
		if line == nil {
			return nil, fmt.Errorf("%w: %q is not in the cart", errorx.ErrConfirmMismatch, item.Name)
		}
		if !line.Classification.Orderable() {
			return nil, fmt.Errorf("%w: %q is not available", errorx.ErrConfirmMismatch, line.CanonicalName)
		}
		if seen[line.CanonicalName] {
			return nil, fmt.Errorf("%w: %q confirmed twice", errorx.ErrConfirmMismatch, line.CanonicalName)
		}
		if item.Quantity != nil && !item.Quantity.Equal(line.Quantity) {
			return nil, fmt.Errorf("%w: %q quantity %s differs from cart quantity %s",
				errorx.ErrConfirmMismatch, line.CanonicalName, item.Quantity.String(), line.Quantity.String())
		}
		seen[line.CanonicalName] = true
		lines = append(lines, mdorder.CommitLine{CanonicalName: line.CanonicalName, Quantity: line.Quantity})
	}
	return lines, nil
}

// CartCommitLines every orderable line of cart as last shown to the customer
func CartCommitLines(cart *etcart.Cart) []mdorder.CommitLine {
	orderable := cart.OrderableLines()
	lines := make([]mdorder.CommitLine, 0, len(orderable))
	for _, l := range orderable {
		lines = append(lines, mdorder.CommitLine{CanonicalName: l.CanonicalName, Quantity: l.Quantity})
	}
	return lines
}
