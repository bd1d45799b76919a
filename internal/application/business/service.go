// Package business implements owner and public use cases around a business:
// its profile, discovery listing, white-label configuration and branding uploads.
package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glambooking/backend/internal/application/access"
	appbilling "github.com/glambooking/backend/internal/application/billing"
	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/business"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/domain/tenancy"
	"github.com/glambooking/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	errBusinessNotFound  = shared.NewNotFoundError("Business not found")
	errHostTaken         = shared.NewDomainError(shared.CodeAlreadyExists, "Subdomain or custom domain is already in use")
	errUploadsDisabled   = shared.NewDomainError(shared.CodeInvalidState, "Logo uploads are not available")
	logoExtByContentType = map[string]string{
		"image/png":     ".png",
		"image/jpeg":    ".jpg",
		"image/webp":    ".webp",
		"image/svg+xml": ".svg",
	}
)

// Uploader presigns direct browser uploads
type Uploader interface {
	PresignUpload(ctx context.Context, key, contentType string) (*storage.PresignedUpload, error)
}

// HostInvalidator drops cached tenant resolutions for hostnames
type HostInvalidator interface {
	Invalidate(ctx context.Context, hosts ...string)
}

// Deps are the collaborators of Service. Uploader and Invalidator are optional.
// Classifier supplies the tenant hostnames of a white-label configuration.
type Deps struct {
	Businesses  business.Repository
	WhiteLabels business.WhiteLabelRepository
	Guard       *access.Guard
	Gate        *appbilling.Gate
	Uploader    Uploader
	Invalidator HostInvalidator
	Classifier  *tenancy.Classifier
	Logger      *zap.Logger
}

// Service handles business profile and white-label operations
type Service struct {
	businesses  business.Repository
	whiteLabels business.WhiteLabelRepository
	guard       *access.Guard
	gate        *appbilling.Gate
	uploader    Uploader
	invalidator HostInvalidator
	classifier  *tenancy.Classifier
	now         func() time.Time
	logger      *zap.Logger
}

// NewService creates a new Service
func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	classifier := deps.Classifier
	if classifier == nil {
		classifier = tenancy.NewClassifier("", false)
	}
	return &Service{
		businesses:  deps.Businesses,
		whiteLabels: deps.WhiteLabels,
		guard:       deps.Guard,
		gate:        deps.Gate,
		uploader:    deps.Uploader,
		invalidator: deps.Invalidator,
		classifier:  classifier,
		now:         time.Now,
		logger:      logger,
	}
}

// Info returns the business the principal manages
func (s *Service) Info(ctx context.Context, principal *identity.Principal, businessID *uuid.UUID) (*BusinessResponse, error) {
	b, err := s.guard.SelectBusiness(ctx, principal, businessID)
	if err != nil {
		return nil, err
	}
	resp := ToBusinessResponse(b, s.classifier)
	return &resp, nil
}

// Subscription returns the advisory gate decision for the principal's business
func (s *Service) Subscription(ctx context.Context, principal *identity.Principal, businessID *uuid.UUID) (*appbilling.GateDecision, error) {
	b, err := s.guard.SelectBusiness(ctx, principal, businessID)
	if err != nil {
		return nil, err
	}
	return s.gate.Evaluate(ctx, b.ID, s.now())
}

// Discover lists active businesses that are not served under a white label
func (s *Service) Discover(ctx context.Context, req DiscoverRequest) (*DiscoverResponse, error) {
	filter := business.DiscoverFilter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.PageSize,
			Search:   req.Search,
		}.Normalize(),
		Category: req.Category,
	}

	list, total, err := s.businesses.Discover(ctx, filter)
	if err != nil {
		return nil, err
	}

	caser := cases.Title(language.English)
	out := make([]PublicBusinessResponse, len(list))
	for i := range list {
		out[i] = ToPublicBusinessResponse(&list[i], caser)
	}
	return &DiscoverResponse{
		Businesses: out,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

// PublicBusiness returns an active business with its branding
func (s *Service) PublicBusiness(ctx context.Context, id uuid.UUID) (*PublicBusinessResponse, error) {
	b, err := s.FindActive(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPublicBusinessResponse(b, cases.Title(language.English))
	return &resp, nil
}

// FindActive loads an active business. Missing and inactive businesses are both NOT_FOUND.
func (s *Service) FindActive(ctx context.Context, id uuid.UUID) (*business.Business, error) {
	b, err := s.businesses.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errBusinessNotFound
		}
		return nil, err
	}
	return b, nil
}

// UpdateWhiteLabel creates or changes the white-label configuration of the
// principal's business. A custom domain additionally needs the custom_domain feature.
func (s *Service) UpdateWhiteLabel(ctx context.Context, principal *identity.Principal, req UpdateWhiteLabelRequest) (*WhiteLabelResponse, error) {
	b, err := s.guard.SelectBusiness(ctx, principal, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Require(ctx, b.ID, billing.FeatureWhiteLabel); err != nil {
		return nil, err
	}
	if req.CustomDomain != nil && *req.CustomDomain != "" {
		if err := s.gate.Require(ctx, b.ID, billing.FeatureCustomDomain); err != nil {
			return nil, err
		}
	}

	wl, err := s.whiteLabels.FindByBusinessID(ctx, b.ID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		wl = business.NewWhiteLabelConfig(b.ID)
		wl.IsActive = true
	case err != nil:
		return nil, err
	}
	previousHosts := wl.Hosts(s.classifier)

	if req.Subdomain != nil {
		if err := wl.SetSubdomain(*req.Subdomain); err != nil {
			return nil, err
		}
	}
	if req.CustomDomain != nil {
		if err := wl.SetCustomDomain(*req.CustomDomain, s.classifier); err != nil {
			return nil, err
		}
	}
	if req.Branding != nil {
		if err := wl.SetBranding(*req.Branding); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil && *req.IsActive != wl.IsActive {
		wl.ToggleActive()
	}

	if err := s.whiteLabels.Save(ctx, wl); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, errHostTaken
		}
		return nil, err
	}

	s.invalidate(ctx, append(previousHosts, wl.Hosts(s.classifier)...))
	s.logger.Info("White label updated",
		zap.String("business_id", b.ID.String()),
		zap.Strings("hosts", wl.Hosts(s.classifier)),
		zap.Bool("active", wl.IsActive),
	)

	resp := ToWhiteLabelResponse(wl, s.classifier)
	return &resp, nil
}

// PresignLogo returns a presigned upload URL for a branding logo
func (s *Service) PresignLogo(ctx context.Context, principal *identity.Principal, req LogoUploadRequest) (*storage.PresignedUpload, error) {
	b, err := s.guard.SelectBusiness(ctx, principal, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Require(ctx, b.ID, billing.FeatureWhiteLabel); err != nil {
		return nil, err
	}
	ext, ok := logoExtByContentType[req.ContentType]
	if !ok {
		return nil, shared.NewValidationError("Unsupported content type: " + req.ContentType)
	}
	if s.uploader == nil {
		return nil, errUploadsDisabled
	}

	key := fmt.Sprintf("branding/%s/logo-%s%s", b.ID, uuid.NewString(), ext)
	upload, err := s.uploader.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, err
	}
	return upload, nil
}

func (s *Service) invalidate(ctx context.Context, hosts []string) {
	if s.invalidator == nil || len(hosts) == 0 {
		return
	}
	s.invalidator.Invalidate(ctx, hosts...)
}
