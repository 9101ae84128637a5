package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "buyer_id", "status", "total_price",
		"customer_name", "customer_email", "customer_phone",
		"customer_address", "customer_city", "customer_state", "customer_pincode",
		"created_at",
	})
}

func TestInsertOrder(t *testing.T) {
	o := &Order{
		BuyerID:    "b1",
		Status:     StatusConfirmed,
		TotalPrice: 13000,
		Customer: Customer{
			Name: "Asha Rao", Email: "asha@example.com", Phone: "9876543210",
			Address: "12 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001",
		},
	}

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("INSERT INTO orders").
			WithArgs(sqlmock.AnyArg(), "b1", StatusConfirmed, 13000,
				"Asha Rao", "asha@example.com", "9876543210",
				"12 MG Road", "Bengaluru", "Karnataka", "560001").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("order-1"))

		id, err := repo.InsertOrder(context.Background(), o)

		assert.NoError(t, err)
		assert.Equal(t, "order-1", id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("INSERT INTO orders").
			WillReturnError(errors.New("db down"))

		_, err := repo.InsertOrder(context.Background(), o)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInsertLines(t *testing.T) {
	lines := []Line{
		{OrderID: "order-1", EventID: "e1", Quantity: 2, Price: 5000},
		{OrderID: "order-1", EventID: "e2", Quantity: 1, Price: 3000},
	}

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("INSERT INTO order_items").
			WithArgs(sqlmock.AnyArg(), "order-1", "e1", 2, 5000).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_items").
			WithArgs(sqlmock.AnyArg(), "order-1", "e2", 1, 3000).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.InsertLines(context.Background(), "order-1", lines)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StopsAtFirstFailure", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("INSERT INTO order_items").
			WithArgs(sqlmock.AnyArg(), "order-1", "e1", 2, 5000).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_items").
			WithArgs(sqlmock.AnyArg(), "order-1", "e2", 1, 3000).
			WillReturnError(errors.New("constraint violation"))

		err := repo.InsertLines(context.Background(), "order-1", lines)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("DELETE FROM orders").
			WithArgs("order-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteOrder(context.Background(), "order-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("DELETE FROM orders").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteOrder(context.Background(), "missing")

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestListByBuyer(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM orders").
			WithArgs("b1").
			WillReturnRows(orderRows().AddRow(
				"order-1", "b1", "confirmed", 13000,
				"Asha Rao", "asha@example.com", "9876543210",
				"12 MG Road", "Bengaluru", "Karnataka", "560001",
				created,
			))
		mock.ExpectQuery("SELECT (.+) FROM order_items").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "order_id", "event_id", "quantity", "price", "name", "vendor_id",
			}).
				AddRow("l1", "order-1", "e1", 2, 5000, "Wedding Expo", "v1").
				AddRow("l2", "order-1", "e2", 1, 3000, "Food Carnival", "v2"))

		orders, err := repo.ListByBuyer(context.Background(), "b1")

		assert.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.Equal(t, 13000, orders[0].TotalPrice)
		assert.Len(t, orders[0].Lines, 2)
		assert.Equal(t, "Wedding Expo", orders[0].Lines[0].EventName)
		assert.Equal(t, "v1", orders[0].Lines[0].VendorID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoOrdersSkipsLineQuery", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM orders").
			WithArgs("b1").
			WillReturnRows(orderRows())

		orders, err := repo.ListByBuyer(context.Background(), "b1")

		assert.NoError(t, err)
		assert.Empty(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM orders").
			WithArgs("b1").
			WillReturnError(errors.New("db down"))

		_, err := repo.ListByBuyer(context.Background(), "b1")

		assert.Error(t, err)
	})
}

func TestListByIDs_EmptyShortCircuit(t *testing.T) {
	repo, mock := newMockRepo(t)

	orders, err := repo.ListByIDs(context.Background(), nil)

	assert.NoError(t, err)
	assert.Nil(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderIDsByEventIDs(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT DISTINCT order_id").
			WillReturnRows(sqlmock.NewRows([]string{"order_id"}).
				AddRow("o1").
				AddRow("o2"))

		ids, err := repo.OrderIDsByEventIDs(context.Background(), []string{"e1", "e2"})

		assert.NoError(t, err)
		assert.Equal(t, []string{"o1", "o2"}, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyInputShortCircuit", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		ids, err := repo.OrderIDsByEventIDs(context.Background(), nil)

		assert.NoError(t, err)
		assert.Nil(t, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateStatusQuery(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(StatusCompleted, "order-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(context.Background(), "order-1", StatusCompleted))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(StatusCompleted, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), "missing", StatusCompleted)

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
