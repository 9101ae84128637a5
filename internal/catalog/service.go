package catalog

import (
	"context"

	"eventmart/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for the event catalog.
type Service interface {
	ListEvents(ctx context.Context, eventType string) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	VendorEventIDs(ctx context.Context, vendorID string) ([]string, error)
	CreateEvent(ctx context.Context, vendorID string, input EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, id, vendorID string, input EventInput) (*Event, error)
	DeleteEvent(ctx context.Context, id, vendorID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateInput(input EventInput) error {
	if input.Name == "" {
		return ErrMissingName
	}
	if input.Price < 0 {
		return ErrInvalidPrice
	}
	if input.Capacity < 0 {
		return ErrInvalidCapacity
	}
	return nil
}

func (s *service) ListEvents(ctx context.Context, eventType string) ([]*Event, error) {
	return s.repo.List(ctx, eventType)
}

func (s *service) GetEvent(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) VendorEventIDs(ctx context.Context, vendorID string) ([]string, error) {
	return s.repo.IDsByVendor(ctx, vendorID)
}

func (s *service) CreateEvent(ctx context.Context, vendorID string, input EventInput) (*Event, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	e, err := s.repo.Create(ctx, vendorID, input)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create event",
			zap.String("vendor_id", vendorID),
			zap.Error(err),
		)
		return nil, err
	}

	logger.FromCtx(ctx).Info("event created",
		zap.String("event_id", e.ID),
		zap.String("vendor_id", vendorID),
	)

	return e, nil
}

func (s *service) UpdateEvent(ctx context.Context, id, vendorID string, input EventInput) (*Event, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, vendorID, input)
}

func (s *service) DeleteEvent(ctx context.Context, id, vendorID string) error {
	return s.repo.Delete(ctx, id, vendorID)
}
