// Package admin implements the super-admin console: platform-wide listings and
// the few state changes an operator may make. Callers are expected to have
// passed the super-admin check.
package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	appbusiness "github.com/glambooking/backend/internal/application/business"
	appcatalog "github.com/glambooking/backend/internal/application/catalog"
	appteam "github.com/glambooking/backend/internal/application/team"
	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/business"
	"github.com/glambooking/backend/internal/domain/catalog"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/domain/support"
	"github.com/glambooking/backend/internal/domain/team"
	"github.com/glambooking/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Deps are the collaborators of Service. Invalidator is optional.
type Deps struct {
	Businesses    business.Repository
	WhiteLabels   business.WhiteLabelRepository
	Users         identity.UserRepository
	Services      catalog.ServiceRepository
	Subscriptions billing.SubscriptionRepository
	Payouts       billing.PayoutRepository
	Tickets       support.TicketRepository
	Invitations   team.InvitationRepository
	Invalidator   appbusiness.HostInvalidator
	Classifier    *tenancy.Classifier
	Logger        *zap.Logger
}

// Service serves the super-admin console
type Service struct {
	deps Deps
	now  func() time.Time
}

// NewService creates a new admin Service
func NewService(deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Classifier == nil {
		deps.Classifier = tenancy.NewClassifier("", false)
	}
	return &Service{deps: deps, now: time.Now}
}

// Businesses lists every business
func (s *Service) Businesses(ctx context.Context, req ListRequest) (*Page[appbusiness.BusinessResponse], error) {
	f := req.filter()
	switch strings.ToLower(req.Status) {
	case "active":
		f.Filters["active"] = true
	case "inactive":
		f.Filters["active"] = false
	}
	list, total, err := s.deps.Businesses.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return newPage(appbusiness.ToBusinessResponses(list, s.deps.Classifier), total, f), nil
}

// ToggleBusiness flips a business's active flag
func (s *Service) ToggleBusiness(ctx context.Context, id uuid.UUID) (*appbusiness.BusinessResponse, error) {
	b, err := s.deps.Businesses.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Business not found")
	}
	active := b.ToggleActive()
	if err := s.deps.Businesses.Save(ctx, b); err != nil {
		return nil, err
	}
	s.deps.Logger.Info("Business toggled", zap.String("business_id", id.String()), zap.Bool("active", active))
	resp := appbusiness.ToBusinessResponse(b, s.deps.Classifier)
	return &resp, nil
}

// Clients lists users with the CLIENT role
func (s *Service) Clients(ctx context.Context, req ListRequest) (*Page[ClientResponse], error) {
	f := req.filter()
	list, total, err := s.deps.Users.FindAll(ctx, identity.UserFilter{Filter: f, Role: identity.RoleClient})
	if err != nil {
		return nil, err
	}
	return newPage(toClientResponses(list), total, f), nil
}

// Payouts lists payouts, optionally by status
func (s *Service) Payouts(ctx context.Context, req ListRequest) (*Page[PayoutResponse], error) {
	f := req.filter()
	if req.Status != "" {
		status := billing.PayoutStatus(strings.ToLower(req.Status))
		if !status.IsValid() {
			return nil, shared.NewValidationError("Invalid payout status: " + req.Status)
		}
		f.Filters["status"] = string(status)
	}
	list, total, err := s.deps.Payouts.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]PayoutResponse, len(list))
	for i := range list {
		out[i] = toPayoutResponse(&list[i])
	}
	return newPage(out, total, f), nil
}

// UpdatePayoutStatus moves a payout to status
func (s *Service) UpdatePayoutStatus(ctx context.Context, id uuid.UUID, status string) (*PayoutResponse, error) {
	p, err := s.deps.Payouts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Payout not found")
	}
	if err := p.TransitionTo(billing.PayoutStatus(strings.ToLower(status)), s.now()); err != nil {
		return nil, err
	}
	if err := s.deps.Payouts.Save(ctx, p); err != nil {
		return nil, err
	}
	s.deps.Logger.Info("Payout status updated", zap.String("payout_id", id.String()), zap.String("status", string(p.Status)))
	resp := toPayoutResponse(p)
	return &resp, nil
}

// Services lists services across all businesses
func (s *Service) Services(ctx context.Context, req ListRequest) (*Page[appcatalog.ServiceResponse], error) {
	f := req.filter()
	list, total, err := s.deps.Services.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return newPage(appcatalog.ToServiceResponses(list), total, f), nil
}

// Subscriptions lists subscriptions
func (s *Service) Subscriptions(ctx context.Context, req ListRequest) (*Page[SubscriptionResponse], error) {
	f := req.filter()
	list, total, err := s.deps.Subscriptions.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]SubscriptionResponse, len(list))
	for i := range list {
		out[i] = toSubscriptionResponse(&list[i], now)
	}
	return newPage(out, total, f), nil
}

// Tickets lists support tickets, optionally by status
func (s *Service) Tickets(ctx context.Context, req ListRequest) (*Page[TicketResponse], error) {
	f := req.filter()
	if req.Status != "" {
		status := support.TicketStatus(strings.ToLower(req.Status))
		if !status.IsValid() {
			return nil, shared.NewValidationError("Invalid ticket status: " + req.Status)
		}
		f.Filters["status"] = string(status)
	}
	list, total, err := s.deps.Tickets.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]TicketResponse, len(list))
	for i := range list {
		out[i] = toTicketResponse(&list[i])
	}
	return newPage(out, total, f), nil
}

// UpdateTicketStatus moves a ticket forward
func (s *Service) UpdateTicketStatus(ctx context.Context, id uuid.UUID, status string) (*TicketResponse, error) {
	t, err := s.deps.Tickets.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Support ticket not found")
	}
	if err := t.TransitionTo(support.TicketStatus(strings.ToLower(status))); err != nil {
		return nil, err
	}
	if err := s.deps.Tickets.Save(ctx, t); err != nil {
		return nil, err
	}
	resp := toTicketResponse(t)
	return &resp, nil
}

// Invitations lists team invitations with their effective state. Only stored
// states can be filtered on.
func (s *Service) Invitations(ctx context.Context, req ListRequest) (*Page[appteam.InvitationResponse], error) {
	f := team.InvitationFilter{Filter: req.filter()}
	if req.Status != "" {
		status := team.InvitationStatus(strings.ToUpper(req.Status))
		switch status {
		case team.InvitationPending, team.InvitationCancelled, team.InvitationCompleted:
			f.Status = status
		default:
			return nil, shared.NewValidationError("Invalid invitation status: " + req.Status)
		}
	}
	list, total, err := s.deps.Invitations.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return newPage(appteam.ToInvitationResponses(list, s.now()), total, f.Filter), nil
}

// WhiteLabels lists white-label configurations
func (s *Service) WhiteLabels(ctx context.Context, req ListRequest) (*Page[appbusiness.WhiteLabelResponse], error) {
	f := req.filter()
	list, total, err := s.deps.WhiteLabels.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]appbusiness.WhiteLabelResponse, len(list))
	for i := range list {
		out[i] = appbusiness.ToWhiteLabelResponse(&list[i], s.deps.Classifier)
	}
	return newPage(out, total, f), nil
}

// ToggleWhiteLabel flips a configuration's active flag and drops its cached resolutions
func (s *Service) ToggleWhiteLabel(ctx context.Context, id uuid.UUID) (*appbusiness.WhiteLabelResponse, error) {
	wl, err := s.deps.WhiteLabels.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "White label not found")
	}
	active := wl.ToggleActive()
	if err := s.deps.WhiteLabels.Save(ctx, wl); err != nil {
		return nil, err
	}
	hosts := wl.Hosts(s.deps.Classifier)
	if s.deps.Invalidator != nil && len(hosts) > 0 {
		s.deps.Invalidator.Invalidate(ctx, hosts...)
	}
	s.deps.Logger.Info("White label toggled",
		zap.String("white_label_id", id.String()),
		zap.Strings("hosts", hosts),
		zap.Bool("active", active),
	)
	resp := appbusiness.ToWhiteLabelResponse(wl, s.deps.Classifier)
	return &resp, nil
}

func notFound(err error, message string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(message)
	}
	return err
}
