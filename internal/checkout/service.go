package checkout

import (
	"context"
	"sync"

	"eventmart/internal/cart"
	"eventmart/internal/identity"
	"eventmart/internal/logger"
	"eventmart/internal/order"

	"go.uber.org/zap"
)

// Publisher emits the order-placed event after a successful checkout.
// Delivery is best-effort; a publish failure never fails the checkout.
type Publisher interface {
	OrderPlaced(ctx context.Context, orderID string, total int) error
}

// Service converts a non-empty session cart plus a billing form into a
// persisted order and its lines. The store offers no transaction across
// the two writes, so the second failing triggers a compensating delete
// of the first.
type Service interface {
	PlaceOrder(ctx context.Context, ident *identity.Identity, store *cart.Store, form order.Customer) (string, error)
}

type service struct {
	repo order.Repository
	pub  Publisher

	mu       sync.Mutex
	inflight map[string]bool
}

func NewService(repo order.Repository, pub Publisher) Service {
	return &service{
		repo:     repo,
		pub:      pub,
		inflight: make(map[string]bool),
	}
}

func (s *service) PlaceOrder(ctx context.Context, ident *identity.Identity, store *cart.Store, form order.Customer) (string, error) {
	if ident == nil {
		return "", ErrUnauthenticated
	}
	if store == nil || store.Empty() {
		return "", ErrEmptyCart
	}

	if verr := ValidateForm(form); verr != nil {
		return "", verr
	}

	// One checkout at a time per session. A second submit while the
	// first is mid-write would duplicate the order.
	s.mu.Lock()
	if s.inflight[ident.ID] {
		s.mu.Unlock()
		return "", ErrCheckoutInFlight
	}
	s.inflight[ident.ID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, ident.ID)
		s.mu.Unlock()
	}()

	// The write sequence must run to completion, compensation included,
	// even if the initiating request is gone.
	ctx = context.WithoutCancel(ctx)

	log := logger.FromCtx(ctx).With(
		zap.String("method", "PlaceOrder"),
		zap.String("buyer_id", ident.ID),
	)

	lines := store.Lines()
	total := 0
	for _, l := range lines {
		total += l.Price * l.Quantity
	}

	// 1. Order row.
	orderID, err := s.repo.InsertOrder(ctx, &order.Order{
		BuyerID:    ident.ID,
		Status:     order.StatusConfirmed,
		TotalPrice: total,
		Customer:   form,
	})
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return "", err
	}

	log = log.With(zap.String("order_id", orderID))

	// 2. Line batch, priced from the cart snapshots.
	orderLines := make([]order.Line, 0, len(lines))
	for _, l := range lines {
		orderLines = append(orderLines, order.Line{
			OrderID:  orderID,
			EventID:  l.EventID,
			Quantity: l.Quantity,
			Price:    l.Price,
		})
	}

	if err := s.repo.InsertLines(ctx, orderID, orderLines); err != nil {
		log.Error("failed to insert order items", zap.Error(err))

		// 3. Compensating delete so no zero-line order survives. The
		// original insert error stays the reported one either way.
		compErr := s.repo.DeleteOrder(ctx, orderID)
		if compErr != nil {
			log.Error("compensating delete failed", zap.Error(compErr))
		}

		return "", &WriteError{Err: err, CompensationErr: compErr}
	}

	// 4. Success: the cart is spent.
	store.Clear()

	if s.pub != nil {
		if err := s.pub.OrderPlaced(ctx, orderID, total); err != nil {
			log.Warn("failed to publish order placed event", zap.Error(err))
		}
	}

	log.Info("order placed",
		zap.Int("total_price", total),
		zap.Int("line_count", len(orderLines)),
	)

	return orderID, nil
}
