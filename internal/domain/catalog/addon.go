package catalog

import (
	"context"
	"strings"

	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Addon is an optional extra that can be booked with a service
type Addon struct {
	shared.BaseEntity
	ServiceID   uuid.UUID
	BusinessID  uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	// Duration in minutes added to the parent service; may be zero
	Duration int
	IsActive bool
}

// NewAddon creates an active addon attached to a service
func NewAddon(svc *Service, name string, duration int, price decimal.Decimal) (*Addon, error) {
	if svc == nil {
		return nil, shared.NewValidationError("Service is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Addon name is required")
	}
	if duration < 0 || duration > MaxDurationMinutes {
		return nil, shared.NewValidationError("Addon duration is out of range")
	}
	if price.IsNegative() {
		return nil, shared.NewValidationError("Price cannot be negative")
	}
	return &Addon{
		BaseEntity: shared.NewBaseEntity(),
		ServiceID:  svc.ID,
		BusinessID: svc.BusinessID,
		Name:       name,
		Price:      price,
		Duration:   duration,
		IsActive:   true,
	}, nil
}

// AddonRepository persists addons
type AddonRepository interface {
	FindActiveByService(ctx context.Context, businessID, serviceID uuid.UUID) ([]Addon, error)
	Save(ctx context.Context, a *Addon) error
}
