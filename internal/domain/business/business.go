package business

import (
	"context"
	"strings"

	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Business is a tenant of the platform: a salon owned by a single user.
// It is the aggregate root for staff, services, invitations and white-label configuration.
type Business struct {
	shared.BaseEntity
	Name        string
	Description string
	Address     string
	Phone       string
	Email       string
	LogoURL     string
	Category    string
	OwnerID     uuid.UUID
	Plan        billing.Plan
	IsActive    bool
	// WhiteLabel is loaded on demand; nil means not loaded or absent
	WhiteLabel *WhiteLabelConfig
}

// NewBusiness creates an active business on the free plan
func NewBusiness(ownerID uuid.UUID, name string) (*Business, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewValidationError("Owner is required")
	}
	if err := validateBusinessName(name); err != nil {
		return nil, err
	}
	return &Business{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		OwnerID:    ownerID,
		Plan:       billing.PlanFree,
		IsActive:   true,
	}, nil
}

// IsOwnedBy reports whether userID owns the business
func (b *Business) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && b.OwnerID == userID
}

// ToggleActive flips the active flag and returns the new value
func (b *Business) ToggleActive() bool {
	b.IsActive = !b.IsActive
	b.Touch()
	return b.IsActive
}

// SetPlan updates the business's plan
func (b *Business) SetPlan(plan billing.Plan) error {
	if err := billing.ValidatePlan(plan); err != nil {
		return err
	}
	b.Plan = plan
	b.Touch()
	return nil
}

func validateBusinessName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Business name is required")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Business name cannot exceed 200 characters")
	}
	return nil
}

// DiscoverFilter selects businesses for the public discovery listing
type DiscoverFilter struct {
	shared.Filter
	Category string
}

// Repository persists businesses
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Business, error)
	// FindActiveByID returns the business only when it is active
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Business, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Business, error)
	// Discover lists active businesses that have no white-label configuration
	Discover(ctx context.Context, filter DiscoverFilter) ([]Business, int64, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Business, int64, error)
	Save(ctx context.Context, b *Business) error
}
