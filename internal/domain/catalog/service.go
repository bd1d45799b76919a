package catalog

import (
	"context"
	"strings"

	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxDurationMinutes caps a single bookable service at one working day
const MaxDurationMinutes = 12 * 60

// Service is a bookable treatment offered by a business
type Service struct {
	shared.BaseEntity
	BusinessID  uuid.UUID
	Name        string
	Description string
	// Duration in minutes
	Duration int
	Price    decimal.Decimal
	Category string
	IsActive bool
}

// NewService creates an active service
func NewService(businessID uuid.UUID, name string, duration int, price decimal.Decimal) (*Service, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewValidationError("Business ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Service name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("Service name cannot exceed 200 characters")
	}
	if err := validateDuration(duration); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewValidationError("Price cannot be negative")
	}
	return &Service{
		BaseEntity: shared.NewBaseEntity(),
		BusinessID: businessID,
		Name:       name,
		Duration:   duration,
		Price:      price,
		IsActive:   true,
	}, nil
}

// Deactivate hides the service from public listings
func (s *Service) Deactivate() {
	s.IsActive = false
	s.Touch()
}

func validateDuration(duration int) error {
	if duration <= 0 {
		return shared.NewValidationError("Duration must be a positive number of minutes")
	}
	if duration > MaxDurationMinutes {
		return shared.NewValidationError("Duration cannot exceed 720 minutes")
	}
	return nil
}

// ServiceRepository persists services
type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Service, error)
	FindActiveByBusiness(ctx context.Context, businessID uuid.UUID) ([]Service, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Service, int64, error)
	Save(ctx context.Context, s *Service) error
}
