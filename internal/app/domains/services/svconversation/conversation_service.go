package svconversation

import (
	"context"
	"errors"
	"fmt"

	"retailos/internal/app/domains/entity/etcart"
	"retailos/internal/app/domains/entity/etcatalog"
	"retailos/internal/app/domains/entity/etline"
	"retailos/internal/app/domains/entity/etorder"
	"retailos/internal/app/domains/modules/mdavailability"
	"retailos/internal/app/domains/modules/mdcommand"
	"retailos/internal/app/domains/modules/mdorder"
	"retailos/internal/app/domains/modules/mdresolve"
	"retailos/internal/app/domains/repo/rpcart"
	"retailos/internal/app/domains/repo/rpcatalog"
	"retailos/internal/app/domains/services/svorder"
	"retailos/internal/app/pkg/errorx"
	"retailos/internal/app/pkg/keylock"
	"retailos/pkg/logger"
)

// Notice codes returned with a turn
const (
	NoticeUnknownCommand   = "unknown_command"
	NoticeNotInCart        = "not_in_cart"
	NoticeCartEmpty        = "cart_empty"
	NoticeNothingOrderable = "nothing_orderable"
	NoticeNotConfirmable   = "not_confirmable"
	NoticeCommitConflict   = "commit_conflict"
	NoticeOrderPlaced      = "order_placed"
	NoticeCancelled        = "cancelled"
)

// TurnRequest one conversation turn. DetectedItems holds the NLP layer's
// extraction; when empty the raw text is parsed locally.
type TurnRequest struct {
	CustomerID    string
	RetailerID    string
	Language      string
	RawText       string
	DetectedItems []etline.RequestedLine
}

// Notice something the presentation layer should tell the customer
type Notice struct {
	Code    string
	Item    string
	Message string
}

// TurnResult cart after the turn and its three-way availability summary.
// Summary.Unavailable also carries this turn's lines that could not be
// resolved; those are never stored in the cart.
type TurnResult struct {
	Command  mdcommand.Kind
	Cart     *etcart.Cart
	Summary  etline.Partition
	Notices  []Notice
	Order    *etorder.Order
	Conflict *mdorder.CommitConflictError
}

func (r *TurnResult) notice(code, item, message string) {
	r.Notices = append(r.Notices, Notice{Code: code, Item: item, Message: message})
}

// ConversationService drives the cart state machine one turn at a time
type ConversationService struct {
	locker    *keylock.Locker
	carts     rpcart.CartRepository
	inventory rpcatalog.InventoryRepository
	evaluator *mdavailability.Evaluator
	resolver  *mdresolve.Resolver
	parser    *mdcommand.Parser
	orders    *svorder.OrderService
	logger    logger.Logger
}

// NewConversationService creates the service
func NewConversationService(
	locker *keylock.Locker,
	carts rpcart.CartRepository,
	inventory rpcatalog.InventoryRepository,
	evaluator *mdavailability.Evaluator,
	resolver *mdresolve.Resolver,
	parser *mdcommand.Parser,
	orders *svorder.OrderService,
	logger logger.Logger,
) *ConversationService {
	return &ConversationService{
		locker:    locker,
		carts:     carts,
		inventory: inventory,
		evaluator: evaluator,
		resolver:  resolver,
		parser:    parser,
		orders:    orders,
		logger:    logger,
	}
}

// HandleTurn applies one turn to the customer's cart. Turns of the same
// (customer, retailer) are processed one after another.
func (s *ConversationService) HandleTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	if req.CustomerID == "" || req.RetailerID == "" {
		return nil, etcart.ErrInvalidSession
	}
	ctx = logger.WithSession(ctx, req.CustomerID, req.RetailerID)

	unlock := s.locker.Lock(keylock.SessionKey(req.CustomerID, req.RetailerID))
	defer unlock()

	cart, err := s.loadCart(ctx, req.CustomerID, req.RetailerID)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, req.RetailerID)
	if err != nil {
		return nil, err
	}

	cmd := s.command(req)
	res := &TurnResult{Command: cmd.Kind(), Cart: cart}
	var rejected []etline.UnavailableLine

	switch c := cmd.(type) {
	case mdcommand.AddCommand:
		if rejected, err = s.add(cart, c.Lines, snap); err != nil {
			return nil, err
		}
	case mdcommand.RemoveCommand:
		if err = s.remove(cart, c.Items, snap, res); err != nil {
			return nil, err
		}
	case mdcommand.ConfirmCommand:
		refresh, err := s.confirm(ctx, cart, res)
		if err != nil {
			return nil, err
		}
		if refresh {
			if snap, err = s.snapshot(ctx, req.RetailerID); err != nil {
				return nil, err
			}
		}
	case mdcommand.CancelCommand:
		if err = cart.Cancel(); err != nil {
			return nil, fmt.Errorf("%w: %v", errorx.ErrInvalidCartState, err)
		}
		res.notice(NoticeCancelled, "", "cart cancelled")
	case mdcommand.UnknownCommand:
		res.notice(NoticeUnknownCommand, c.Text, errorx.ErrUnknownCommand.Error())
	}

	res.Summary = s.reprice(cart, snap)

	if _, ok := cmd.(mdcommand.SummaryCommand); ok {
		s.summarize(cart, &res.Summary, res)
	}

	res.Summary.Unavailable = append(res.Summary.Unavailable, rejected...)

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Turn handled",
		"command", string(res.Command),
		"state", string(cart.State),
		"version", cart.Version,
		"lines", len(cart.Lines),
		"rejected", len(rejected),
	)
	return res, nil
}

// GetCart current cart priced against live stock; no transition is made
func (s *ConversationService) GetCart(ctx context.Context, customerID, retailerID string) (*TurnResult, error) {
	ctx = logger.WithSession(ctx, customerID, retailerID)
	unlock := s.locker.Lock(keylock.SessionKey(customerID, retailerID))
	defer unlock()

	cart, err := s.carts.Get(ctx, customerID, retailerID)
	if err != nil {
		return nil, fmt.Errorf("load cart failed: %w", err)
	}
	if cart == nil {
		return nil, errorx.ErrCartNotFound
	}
	snap, err := s.snapshot(ctx, retailerID)
	if err != nil {
		return nil, err
	}
	return &TurnResult{Command: mdcommand.KindSummary, Cart: cart, Summary: s.reprice(cart, snap)}, nil
}

// CancelCart cancels the customer's cart; cancelling a missing cart succeeds
func (s *ConversationService) CancelCart(ctx context.Context, customerID, retailerID string) (*TurnResult, error) {
	ctx = logger.WithSession(ctx, customerID, retailerID)
	unlock := s.locker.Lock(keylock.SessionKey(customerID, retailerID))
	defer unlock()

	cart, err := s.loadCart(ctx, customerID, retailerID)
	if err != nil {
		return nil, err
	}
	if err := cart.Cancel(); err != nil {
		return nil, fmt.Errorf("%w: %v", errorx.ErrInvalidCartState, err)
	}
	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Cart cancelled", "version", cart.Version)

	res := &TurnResult{Command: mdcommand.KindCancel, Cart: cart}
	res.notice(NoticeCancelled, "", "cart cancelled")
	return res, nil
}

// loadCart the stored cart, or a new one when none is stored
func (s *ConversationService) loadCart(ctx context.Context, customerID, retailerID string) (*etcart.Cart, error) {
	cart, err := s.carts.Get(ctx, customerID, retailerID)
	if err != nil {
		return nil, fmt.Errorf("load cart failed: %w", err)
	}
	if cart != nil && !cart.State.Terminal() {
		return cart, nil
	}
	return etcart.New(customerID, retailerID)
}

func (s *ConversationService) snapshot(ctx context.Context, retailerID string) (*etcatalog.Snapshot, error) {
	snap, err := s.inventory.GetSnapshot(ctx, retailerID)
	if err != nil {
		return nil, fmt.Errorf("fetch inventory failed: %w", err)
	}
	return snap, nil
}

func (s *ConversationService) command(req TurnRequest) mdcommand.Command {
	if len(req.DetectedItems) > 0 {
		return mdcommand.AddCommand{Lines: req.DetectedItems}
	}
	return s.parser.Parse(req.Language, req.RawText)
}

// add upserts every line that resolved; the rest are returned for the summary
func (s *ConversationService) add(cart *etcart.Cart, reqs []etline.RequestedLine, snap *etcatalog.Snapshot) ([]etline.UnavailableLine, error) {
	ev := s.evaluator.ResolveLines(reqs, snap)
	for _, rl := range ev.Resolved {
		err := cart.Upsert(etcart.Line{
			CanonicalName: rl.CanonicalName,
			RequestedName: rl.RequestedName,
			Quantity:      rl.Quantity,
			Unit:          rl.Unit,
		})
		if err != nil {
			return nil, fmt.Errorf("add %q to cart failed: %w", rl.CanonicalName, err)
		}
	}
	return ev.Rejected, nil
}

func (s *ConversationService) remove(cart *etcart.Cart, refs []mdcommand.ItemRef, snap *etcatalog.Snapshot, res *TurnResult) error {
	for _, ref := range refs {
		name, ok := s.findLine(cart, ref, snap)
		if !ok {
			res.notice(NoticeNotInCart, ref.Phrase, "item is not in the cart")
			continue
		}
		if _, err := cart.Remove(name); err != nil {
			return fmt.Errorf("remove %q from cart failed: %w", name, err)
		}
	}
	return nil
}

// findLine exact name or alias first, then the catalog item the phrase
// resolves to, then a fuzzy match against the cart's own lines
func (s *ConversationService) findLine(cart *etcart.Cart, ref mdcommand.ItemRef, snap *etcatalog.Snapshot) (string, bool) {
	for _, name := range ref.Names() {
		if line, _ := cart.Find(name); line != nil {
			return line.CanonicalName, true
		}
	}
	for _, name := range ref.Names() {
		res := s.resolver.Resolve(name, snap)
		if res.Outcome != mdresolve.Matched {
			continue
		}
		if line, _ := cart.Find(res.Item.CanonicalName); line != nil {
			return line.CanonicalName, true
		}
	}

	names := make([]string, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		names = append(names, l.CanonicalName)
	}
	for _, name := range ref.Names() {
		if match, ok := s.resolver.ResolveAmong(name, names); ok {
			return match, true
		}
	}
	return "", false
}

// confirm commits the cart as last shown. refresh is true when stock moved
// and the summary should be rebuilt from a fresh snapshot.
func (s *ConversationService) confirm(ctx context.Context, cart *etcart.Cart, res *TurnResult) (bool, error) {
	order, err := s.orders.CommitCart(ctx, cart, svorder.CartCommitLines(cart), "")
	var conflict *mdorder.CommitConflictError
	switch {
	case err == nil:
		res.Order = order
		res.notice(NoticeOrderPlaced, order.ID, "order placed")
	case errors.As(err, &conflict):
		res.Conflict = conflict
		for _, c := range conflict.Changed {
			res.notice(NoticeCommitConflict, c.CanonicalName, string(c.Reason))
		}
		return true, nil
	case errors.Is(err, errorx.ErrInvalidCartState):
		res.notice(NoticeNotConfirmable, "", "ask for the cart summary before confirming")
	case errors.Is(err, errorx.ErrEmptyCartCommit):
		res.notice(NoticeNothingOrderable, "", err.Error())
	default:
		return false, err
	}
	return false, nil
}

func (s *ConversationService) summarize(cart *etcart.Cart, p *etline.Partition, res *TurnResult) {
	if cart.IsEmpty() {
		res.notice(NoticeCartEmpty, "", "cart is empty")
		return
	}
	if !p.HasOrderable() {
		res.notice(NoticeNothingOrderable, "", "nothing in the cart can be ordered right now")
	}
	// never fails for a non-terminal cart
	_ = cart.RequestSummary(p.HasOrderable())
}

// reprice classifies the stored lines against snap and copies the result
// onto the cart
func (s *ConversationService) reprice(cart *etcart.Cart, snap *etcatalog.Snapshot) etline.Partition {
	lines := make([]etline.ResolvedLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, etline.ResolvedLine{
			CanonicalName: l.CanonicalName,
			RequestedName: l.RequestedName,
			Unit:          l.Unit,
			Quantity:      l.Quantity,
		})
	}
	p := s.evaluator.Partitioner().Partition(lines, snap)
	cart.Reprice(&p)
	return p
}

// persist keeps live carts and forgets finished or empty ones
func (s *ConversationService) persist(ctx context.Context, cart *etcart.Cart) error {
	if cart.State.Terminal() || cart.IsEmpty() {
		if err := s.carts.Delete(ctx, cart.CustomerID, cart.RetailerID); err != nil {
			return fmt.Errorf("delete cart failed: %w", err)
		}
		return nil
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart failed: %w", err)
	}
	return nil
}
