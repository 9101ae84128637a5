package catalog

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, eventType string) ([]*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	IDsByVendor(ctx context.Context, vendorID string) ([]string, error)
	Create(ctx context.Context, vendorID string, input EventInput) (*Event, error)
	Update(ctx context.Context, id, vendorID string, input EventInput) (*Event, error)
	Delete(ctx context.Context, id, vendorID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const eventColumns = `
	id, vendor_id, name, type, description, price,
	capacity, date, location, image_url, created_at
`

// read queries join the owning vendor's display name; writes return the
// bare row.
const eventReadQuery = `
	SELECT
		e.id, e.vendor_id, COALESCE(u.display_name, ''),
		e.name, e.type, e.description, e.price,
		e.capacity, e.date, e.location, e.image_url, e.created_at
	FROM events e
	LEFT JOIN users u ON u.id = e.vendor_id
`

func scanEvent(row interface{ Scan(...any) error }) (*Event, error) {
	var e Event
	err := row.Scan(
		&e.ID, &e.VendorID, &e.VendorName,
		&e.Name, &e.Type, &e.Description, &e.Price,
		&e.Capacity, &e.Date, &e.Location, &e.ImageURL, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanEventRow(row interface{ Scan(...any) error }) (*Event, error) {
	var e Event
	err := row.Scan(
		&e.ID, &e.VendorID, &e.Name, &e.Type, &e.Description, &e.Price,
		&e.Capacity, &e.Date, &e.Location, &e.ImageURL, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) List(ctx context.Context, eventType string) ([]*Event, error) {
	query := eventReadQuery
	args := []any{}

	if eventType != "" && eventType != "all" {
		query += ` WHERE e.type = $1`
		args = append(args, eventType)
	}

	query += ` ORDER BY e.date ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Event, error) {
	row := r.db.QueryRowContext(ctx, eventReadQuery+` WHERE e.id = $1`, id)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *repository) IDsByVendor(ctx context.Context, vendorID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM events WHERE vendor_id = $1`, vendorID)
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

func (r *repository) Create(ctx context.Context, vendorID string, input EventInput) (*Event, error) {
	query := `
		INSERT INTO events (
			id, vendor_id, name, type, description, price,
			capacity, date, location, image_url
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING ` + eventColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.New().String(), vendorID, input.Name, input.Type, input.Description,
		input.Price, input.Capacity, input.Date, input.Location, input.ImageURL,
	)

	return scanEventRow(row)
}

func (r *repository) Update(ctx context.Context, id, vendorID string, input EventInput) (*Event, error) {
	query := `
		UPDATE events SET
			name = $1, type = $2, description = $3, price = $4,
			capacity = $5, date = $6, location = $7, image_url = $8
		WHERE id = $9 AND vendor_id = $10
		RETURNING ` + eventColumns

	row := r.db.QueryRowContext(ctx, query,
		input.Name, input.Type, input.Description, input.Price,
		input.Capacity, input.Date, input.Location, input.ImageURL,
		id, vendorID,
	)

	e, err := scanEventRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotOwner
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *repository) Delete(ctx context.Context, id, vendorID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM events WHERE id = $1 AND vendor_id = $2`, id, vendorID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotOwner
	}
	return nil
}
