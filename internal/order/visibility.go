package order

import (
	"context"
	"fmt"
	"sort"

	"eventmart/internal/identity"
	"eventmart/internal/logger"

	"go.uber.org/zap"
)

// CatalogSource supplies the event ids a vendor owns. Satisfied by
// catalog.Repository.
type CatalogSource interface {
	IDsByVendor(ctx context.Context, vendorID string) ([]string, error)
}

// Service answers "which orders may this identity see, and with what
// totals". Vendors only ever see their own lines, with the total
// recomputed over that subset; the stored grand total stays private to
// the buyer and admins.
type Service interface {
	ListFor(ctx context.Context, ident *identity.Identity, statusFilter string) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
}

type service struct {
	repo    Repository
	catalog CatalogSource
}

func NewService(repo Repository, catalog CatalogSource) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) ListFor(ctx context.Context, ident *identity.Identity, statusFilter string) ([]*Order, error) {
	if ident == nil {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("method", "ListFor"),
		zap.String("role", string(ident.Role)),
	)

	var (
		orders []*Order
		err    error
	)

	switch ident.Role {
	case identity.RoleAdmin:
		orders, err = s.repo.ListAll(ctx)
	case identity.RoleUser:
		orders, err = s.repo.ListByBuyer(ctx, ident.ID)
	case identity.RoleVendor:
		orders, err = s.vendorOrders(ctx, ident.ID)
	default:
		return nil, ErrUnknownRole
	}

	if err != nil {
		// Partial results are never shown; the whole computation is
		// discarded on any fetch failure.
		log.Error("failed to fetch orders", zap.Error(err))
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	if statusFilter != "" && statusFilter != "all" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Status == Status(statusFilter) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	log.Debug("orders listed", zap.Int("count", len(orders)))

	return orders, nil
}

// vendorOrders narrows step by step: the vendor's own event ids, then the
// distinct orders touching those events, then the full records for
// exactly that order set. Each step depends on the previous one; the
// sequence is not parallelizable. A wholesale join is deliberately
// avoided so other vendors' lines never enter this session's result.
func (s *service) vendorOrders(ctx context.Context, vendorID string) ([]*Order, error) {
	eventIDs, err := s.catalog.IDsByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if len(eventIDs) == 0 {
		return nil, nil
	}

	orderIDs, err := s.repo.OrderIDsByEventIDs(ctx, eventIDs)
	if err != nil {
		return nil, err
	}
	if len(orderIDs) == 0 {
		return nil, nil
	}

	orders, err := s.repo.ListByIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	own := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		own[id] = true
	}

	for _, o := range orders {
		var mine []Line
		revenue := 0
		for _, l := range o.Lines {
			if own[l.EventID] {
				mine = append(mine, l)
				revenue += l.Price * l.Quantity
			}
		}
		o.Lines = mine
		o.TotalPrice = revenue
	}

	return orders, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, orderID, status)
}
