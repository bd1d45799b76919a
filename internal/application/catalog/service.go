// Package catalog manages the services and addons a business offers.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/glambooking/backend/internal/application/access"
	appbilling "github.com/glambooking/backend/internal/application/billing"
	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/business"
	"github.com/glambooking/backend/internal/domain/catalog"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	errBusinessNotFound = shared.NewNotFoundError("Business not found")
	errServiceNotFound  = shared.NewNotFoundError("Service not found")
)

// Service handles catalog operations
type Service struct {
	services   catalog.ServiceRepository
	addons     catalog.AddonRepository
	businesses business.Repository
	guard      *access.Guard
	gate       *appbilling.Gate
	logger     *zap.Logger
}

// NewService creates a new catalog Service
func NewService(
	services catalog.ServiceRepository,
	addons catalog.AddonRepository,
	businesses business.Repository,
	guard *access.Guard,
	gate *appbilling.Gate,
	logger *zap.Logger,
) *Service {
	return &Service{
		services:   services,
		addons:     addons,
		businesses: businesses,
		guard:      guard,
		gate:       gate,
		logger:     logger,
	}
}

// CreateService adds an active service to the principal's business
func (s *Service) CreateService(ctx context.Context, principal *identity.Principal, req CreateServiceRequest) (*ServiceResponse, error) {
	if strings.TrimSpace(req.Name) == "" || req.Duration == nil || req.Price == nil {
		return nil, shared.NewValidationError("name, duration and price are required")
	}
	b, err := s.guard.SelectBusiness(ctx, principal, req.BusinessID)
	if err != nil {
		return nil, err
	}

	svc, err := catalog.NewService(b.ID, req.Name, *req.Duration, *req.Price)
	if err != nil {
		return nil, err
	}
	svc.Description = strings.TrimSpace(req.Description)
	svc.Category = strings.TrimSpace(req.Category)

	if err := s.services.Save(ctx, svc); err != nil {
		return nil, err
	}
	s.logger.Info("Service created",
		zap.String("business_id", b.ID.String()),
		zap.String("service_id", svc.ID.String()),
	)
	resp := ToServiceResponse(svc)
	return &resp, nil
}

// CreateAddon attaches an addon to a service of a business the principal manages
func (s *Service) CreateAddon(ctx context.Context, principal *identity.Principal, serviceID uuid.UUID, req CreateAddonRequest) (*AddonResponse, error) {
	if !principal.IsAuthenticated() {
		return nil, shared.ErrUnauthenticated
	}
	if req.Price == nil {
		return nil, shared.NewValidationError("price is required")
	}
	svc, err := s.services.FindByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errServiceNotFound
		}
		return nil, err
	}
	if _, err := s.guard.AuthorizeBusiness(ctx, principal, svc.BusinessID); err != nil {
		return nil, err
	}
	if err := s.gate.Require(ctx, svc.BusinessID, billing.FeatureAddons); err != nil {
		return nil, err
	}

	addon, err := catalog.NewAddon(svc, req.Name, req.Duration, *req.Price)
	if err != nil {
		return nil, err
	}
	addon.Description = strings.TrimSpace(req.Description)
	if err := s.addons.Save(ctx, addon); err != nil {
		return nil, err
	}
	resp := ToAddonResponse(addon)
	return &resp, nil
}

// PublicServices lists the active services of an active business
func (s *Service) PublicServices(ctx context.Context, businessID uuid.UUID) ([]ServiceResponse, error) {
	if err := s.requireActiveBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	list, err := s.services.FindActiveByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return ToServiceResponses(list), nil
}

// PublicAddons lists the active addons of a service. A service without addons yields an empty list.
func (s *Service) PublicAddons(ctx context.Context, businessID, serviceID uuid.UUID) ([]AddonResponse, error) {
	if err := s.requireActiveBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	list, err := s.addons.FindActiveByService(ctx, businessID, serviceID)
	if err != nil {
		return nil, err
	}
	out := make([]AddonResponse, len(list))
	for i := range list {
		out[i] = ToAddonResponse(&list[i])
	}
	return out, nil
}

func (s *Service) requireActiveBusiness(ctx context.Context, businessID uuid.UUID) error {
	if _, err := s.businesses.FindActiveByID(ctx, businessID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return errBusinessNotFound
		}
		return err
	}
	return nil
}
