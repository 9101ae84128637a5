package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventmart/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertOrder(ctx context.Context, o *Order) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) InsertLines(ctx context.Context, orderID string, lines []Line) error {
	args := m.Called(ctx, orderID, lines)
	return args.Error(0)
}

func (m *MockRepository) DeleteOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*Order, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) ListByIDs(ctx context.Context, ids []string) ([]*Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) ListAll(ctx context.Context) ([]*Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) OrderIDsByEventIDs(ctx context.Context, eventIDs []string) ([]string, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) IDsByVendor(ctx context.Context, vendorID string) ([]string, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func at(day int) time.Time {
	return time.Date(2025, 3, day, 12, 0, 0, 0, time.UTC)
}

func TestListFor_NilIdentity(t *testing.T) {
	svc := NewService(new(MockRepository), new(MockCatalog))

	_, err := svc.ListFor(context.Background(), nil, "")

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestListFor_UnknownRole(t *testing.T) {
	svc := NewService(new(MockRepository), new(MockCatalog))

	_, err := svc.ListFor(context.Background(), &identity.Identity{ID: "x", Role: "superuser"}, "")

	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestListFor_AdminSeesAll(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockCatalog))

	all := []*Order{
		{ID: "o1", BuyerID: "b1", Status: StatusConfirmed, CreatedAt: at(1)},
		{ID: "o2", BuyerID: "b2", Status: StatusCompleted, CreatedAt: at(2)},
	}
	repo.On("ListAll", mock.Anything).Return(all, nil)

	orders, err := svc.ListFor(context.Background(), &identity.Identity{ID: "a1", Role: identity.RoleAdmin}, "")

	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	repo.AssertNotCalled(t, "ListByBuyer", mock.Anything, mock.Anything)
}

func TestListFor_UserSeesOwnOnly(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockCatalog))

	repo.On("ListByBuyer", mock.Anything, "b1").Return([]*Order{
		{ID: "o1", BuyerID: "b1", Status: StatusConfirmed, CreatedAt: at(1)},
	}, nil)

	orders, err := svc.ListFor(context.Background(), &identity.Identity{ID: "b1", Role: identity.RoleUser}, "")

	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "b1", orders[0].BuyerID)
	repo.AssertCalled(t, "ListByBuyer", mock.Anything, "b1")
	repo.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestListFor_VendorScoping(t *testing.T) {
	repo := new(MockRepository)
	catalog := new(MockCatalog)
	svc := NewService(repo, catalog)

	// Vendor V owns e1 and e2. Order o1 mixes V's lines with another
	// vendor's line for e3.
	catalog.On("IDsByVendor", mock.Anything, "vendor-v").Return([]string{"e1", "e2"}, nil)
	repo.On("OrderIDsByEventIDs", mock.Anything, []string{"e1", "e2"}).Return([]string{"o1"}, nil)
	repo.On("ListByIDs", mock.Anything, []string{"o1"}).Return([]*Order{
		{
			ID: "o1", BuyerID: "b1", Status: StatusConfirmed,
			TotalPrice: 13500, CreatedAt: at(1),
			Lines: []Line{
				{ID: "l1", OrderID: "o1", EventID: "e1", VendorID: "vendor-v", Quantity: 2, Price: 5000},
				{ID: "l2", OrderID: "o1", EventID: "e3", VendorID: "vendor-w", Quantity: 1, Price: 3500},
			},
		},
	}, nil)

	orders, err := svc.ListFor(context.Background(), &identity.Identity{ID: "vendor-v", Role: identity.RoleVendor}, "")

	assert.NoError(t, err)
	assert.Len(t, orders, 1)

	o := orders[0]
	assert.Len(t, o.Lines, 1, "foreign lines must be redacted")
	assert.Equal(t, "e1", o.Lines[0].EventID)
	assert.Equal(t, 10000, o.TotalPrice, "total is the vendor's revenue, not the stored grand total")
}

func TestListFor_VendorWithNoEvents(t *testing.T) {
	repo := new(MockRepository)
	catalog := new(MockCatalog)
	svc := NewService(repo, catalog)

	catalog.On("IDsByVendor", mock.Anything, "vendor-v").Return([]string{}, nil)

	orders, err := svc.ListFor(context.Background(), &identity.Identity{ID: "vendor-v", Role: identity.RoleVendor}, "")

	assert.NoError(t, err)
	assert.Empty(t, orders)
	repo.AssertNotCalled(t, "OrderIDsByEventIDs", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "ListByIDs", mock.Anything, mock.Anything)
}

func TestListFor_VendorWithNoMatchingOrders(t *testing.T) {
	repo := new(MockRepository)
	catalog := new(MockCatalog)
	svc := NewService(repo, catalog)

	catalog.On("IDsByVendor", mock.Anything, "vendor-v").Return([]string{"e1"}, nil)
	repo.On("OrderIDsByEventIDs", mock.Anything, []string{"e1"}).Return([]string{}, nil)

	orders, err := svc.ListFor(context.Background(), &identity.Identity{ID: "vendor-v", Role: identity.RoleVendor}, "")

	assert.NoError(t, err)
	assert.Empty(t, orders)
	repo.AssertNotCalled(t, "ListByIDs", mock.Anything, mock.Anything)
}

func TestListFor_StatusFilter(t *testing.T) {
	admin := &identity.Identity{ID: "a1", Role: identity.RoleAdmin}
	all := func() []*Order {
		return []*Order{
			{ID: "o1", Status: StatusConfirmed, CreatedAt: at(1)},
			{ID: "o2", Status: StatusCompleted, CreatedAt: at(2)},
			{ID: "o3", Status: StatusConfirmed, CreatedAt: at(3)},
		}
	}

	t.Run("SpecificStatus", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCatalog))
		repo.On("ListAll", mock.Anything).Return(all(), nil)

		orders, err := svc.ListFor(context.Background(), admin, "confirmed")

		assert.NoError(t, err)
		assert.Len(t, orders, 2)
		for _, o := range orders {
			assert.Equal(t, StatusConfirmed, o.Status)
		}
	})

	t.Run("AllPassesEverything", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCatalog))
		repo.On("ListAll", mock.Anything).Return(all(), nil)

		orders, err := svc.ListFor(context.Background(), admin, "all")

		assert.NoError(t, err)
		assert.Len(t, orders, 3)
	})
}

func TestListFor_SortedNewestFirst(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockCatalog))

	repo.On("ListByBuyer", mock.Anything, "b1").Return([]*Order{
		{ID: "old", Status: StatusConfirmed, CreatedAt: at(1)},
		{ID: "new", Status: StatusConfirmed, CreatedAt: at(9)},
		{ID: "mid", Status: StatusConfirmed, CreatedAt: at(5)},
	}, nil)

	orders, err := svc.ListFor(context.Background(), &identity.Identity{ID: "b1", Role: identity.RoleUser}, "")

	assert.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{orders[0].ID, orders[1].ID, orders[2].ID})
}

func TestListFor_FetchErrorDiscardsEverything(t *testing.T) {
	repo := new(MockRepository)
	catalog := new(MockCatalog)
	svc := NewService(repo, catalog)

	catalog.On("IDsByVendor", mock.Anything, "vendor-v").Return([]string{"e1"}, nil)
	repo.On("OrderIDsByEventIDs", mock.Anything, []string{"e1"}).Return(nil, errors.New("query timeout"))

	orders, err := svc.ListFor(context.Background(), &identity.Identity{ID: "vendor-v", Role: identity.RoleVendor}, "")

	assert.Error(t, err)
	assert.Nil(t, orders)
}

func TestUpdateStatus(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCatalog))
		repo.On("UpdateStatus", mock.Anything, "o1", StatusCompleted).Return(nil)

		assert.NoError(t, svc.UpdateStatus(context.Background(), "o1", StatusCompleted))
		repo.AssertExpectations(t)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCatalog))

		err := svc.UpdateStatus(context.Background(), "o1", Status("shipped"))

		assert.ErrorIs(t, err, ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}
