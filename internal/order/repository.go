package order

import (
	"context"
	"database/sql"

	"eventmart/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	InsertOrder(ctx context.Context, o *Order) (string, error)
	InsertLines(ctx context.Context, orderID string, lines []Line) error
	DeleteOrder(ctx context.Context, id string) error
	ListByBuyer(ctx context.Context, buyerID string) ([]*Order, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	OrderIDsByEventIDs(ctx context.Context, eventIDs []string) ([]string, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, buyer_id, status, total_price,
	customer_name, customer_email, customer_phone,
	customer_address, customer_city, customer_state, customer_pincode,
	created_at
`

// InsertOrder writes the order row alone. Line insertion is a separate
// step; the store offers no multi-statement transaction across the two.
func (r *repository) InsertOrder(ctx context.Context, o *Order) (string, error) {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW())
		RETURNING id
	`

	id := uuid.New().String()

	var returned string
	err := r.db.QueryRowContext(ctx, query,
		id, o.BuyerID, o.Status, o.TotalPrice,
		o.Customer.Name, o.Customer.Email, o.Customer.Phone,
		o.Customer.Address, o.Customer.City, o.Customer.State, o.Customer.Pincode,
	).Scan(&returned)
	if err != nil {
		return "", err
	}

	return returned, nil
}

func (r *repository) InsertLines(ctx context.Context, orderID string, lines []Line) error {
	for i := range lines {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, event_id, quantity, price)
			VALUES ($1,$2,$3,$4,$5)
		`,
			uuid.New().String(), orderID, lines[i].EventID,
			lines[i].Quantity, lines[i].Price,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteOrder is the compensating action for a failed line batch. Items
// cascade with the order row.
func (r *repository) DeleteOrder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) ListByBuyer(ctx context.Context, buyerID string) ([]*Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE buyer_id = $1
		ORDER BY created_at DESC
	`
	return r.listOrders(ctx, query, buyerID)
}

func (r *repository) ListByIDs(ctx context.Context, ids []string) ([]*Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = ANY($1)
		ORDER BY created_at DESC
	`
	return r.listOrders(ctx, query, pq.Array(ids))
}

func (r *repository) ListAll(ctx context.Context) ([]*Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
	`
	return r.listOrders(ctx, query)
}

func (r *repository) listOrders(ctx context.Context, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.BuyerID, &o.Status, &o.TotalPrice,
			&o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
			&o.Customer.Address, &o.Customer.City, &o.Customer.State, &o.Customer.Pincode,
			&o.CreatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// attachLines loads all lines for the given orders in one query, joined
// with the referenced event's name and owner.
func (r *repository) attachLines(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	byID := make(map[string]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.event_id, oi.quantity, oi.price,
		       COALESCE(e.name, ''), COALESCE(e.vendor_id, '')
		FROM order_items oi
		LEFT JOIN events e ON e.id = oi.event_id
		WHERE oi.order_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var l Line
		if err := rows.Scan(
			&l.ID, &l.OrderID, &l.EventID, &l.Quantity, &l.Price,
			&l.EventName, &l.VendorID,
		); err != nil {
			return err
		}
		if o, ok := byID[l.OrderID]; ok {
			o.Lines = append(o.Lines, l)
		}
	}

	return rows.Err()
}

func (r *repository) OrderIDsByEventIDs(ctx context.Context, eventIDs []string) ([]string, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT order_id
		FROM order_items
		WHERE event_id = ANY($1)
	`, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// UpdateStatus applies an externally driven transition. Nothing else on an
// order is mutable after creation.
func (r *repository) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
