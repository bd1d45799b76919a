// Package team implements staff listings and the team invitation lifecycle.
package team

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glambooking/backend/internal/application/access"
	appbilling "github.com/glambooking/backend/internal/application/billing"
	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/business"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/domain/team"
	"github.com/glambooking/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var (
	errBusinessNotFound   = shared.NewNotFoundError("Business not found")
	errInvitationNotFound = shared.NewNotFoundError("Invitation not found")
	errPendingInvitation  = shared.NewDomainError(shared.CodeAlreadyExists, "A pending invitation already exists for this email")
	errWrongRecipient     = shared.NewDomainError(shared.CodeForbidden, "This invitation was sent to a different email address")
)

// Deps are the collaborators of Service
type Deps struct {
	Invitations   team.InvitationRepository
	Staff         team.StaffRepository
	Users         identity.UserRepository
	Businesses    business.Repository
	Guard         *access.Guard
	Gate          *appbilling.Gate
	InvitationTTL time.Duration
	Logger        *zap.Logger
}

// Service handles staff and invitation operations
type Service struct {
	invitations team.InvitationRepository
	staff       team.StaffRepository
	users       identity.UserRepository
	businesses  business.Repository
	guard       *access.Guard
	gate        *appbilling.Gate
	ttl         time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

// NewService creates a new team Service
func NewService(deps Deps) *Service {
	ttl := deps.InvitationTTL
	if ttl <= 0 {
		ttl = team.DefaultInvitationTTL
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		invitations: deps.Invitations,
		staff:       deps.Staff,
		users:       deps.Users,
		businesses:  deps.Businesses,
		guard:       deps.Guard,
		gate:        deps.Gate,
		ttl:         ttl,
		now:         time.Now,
		logger:      logger,
	}
}

// Staff lists the active staff of the principal's business
func (s *Service) Staff(ctx context.Context, principal *identity.Principal, businessID *uuid.UUID) ([]StaffResponse, error) {
	b, err := s.guard.SelectBusiness(ctx, principal, businessID)
	if err != nil {
		return nil, err
	}
	list, err := s.staff.FindActiveByBusiness(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return ToStaffResponses(list), nil
}

// PublicStaff lists the active staff of an active business
func (s *Service) PublicStaff(ctx context.Context, businessID uuid.UUID) ([]PublicStaffResponse, error) {
	if _, err := s.businesses.FindActiveByID(ctx, businessID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errBusinessNotFound
		}
		return nil, err
	}
	list, err := s.staff.FindActiveByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return ToPublicStaffResponses(list), nil
}

// CreateInvitation invites an email address to the principal's business
func (s *Service) CreateInvitation(ctx context.Context, principal *identity.Principal, req CreateInvitationRequest) (*InvitationResponse, error) {
	b, err := s.guard.SelectBusiness(ctx, principal, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Require(ctx, b.ID, billing.FeatureTeamInvitations); err != nil {
		return nil, err
	}

	// allow-listed super-admins may act without a user record
	invitedBy := uuid.Nil
	user, err := s.guard.LookupUser(ctx, principal)
	switch {
	case err == nil:
		invitedBy = user.ID
	case !errors.Is(err, shared.ErrNoProfile):
		return nil, err
	}

	now := s.now()
	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.invitations.FindPendingByBusinessAndEmail(ctx, b.ID, email)
	switch {
	case err == nil && existing.State(now) == team.InvitationPending:
		return nil, errPendingInvitation
	case err != nil && !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	inv, err := team.NewInvitation(b.ID, email, req.Role, s.ttl, invitedBy)
	if err != nil {
		return nil, err
	}
	if err := s.invitations.Save(ctx, inv); err != nil {
		return nil, err
	}
	s.logger.Info("Team invitation created",
		zap.String("business_id", b.ID.String()),
		zap.String("invitation_id", inv.ID.String()),
		zap.Time("expires_at", inv.ExpiresAt),
	)

	resp := ToInvitationResponse(inv, now)
	resp.BusinessName = b.Name
	return &resp, nil
}

// GetInvitation returns a usable invitation. Expired, cancelled and completed
// invitations are GONE whatever their stored status.
func (s *Service) GetInvitation(ctx context.Context, id uuid.UUID) (*InvitationResponse, error) {
	inv, err := s.findInvitation(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := inv.EnsureUsable(now); err != nil {
		return nil, err
	}

	resp := ToInvitationResponse(inv, now)
	if b, err := s.businesses.FindByID(ctx, inv.BusinessID); err == nil {
		resp.BusinessName = b.Name
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return &resp, nil
}

// CancelInvitation cancels an invitation of a business the principal manages
func (s *Service) CancelInvitation(ctx context.Context, principal *identity.Principal, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "team_invitation", "cancel",
		attribute.String(telemetry.AttrInvitationID, id.String()))
	defer span.End()

	inv, _, err := s.guard.AuthorizeInvitation(ctx, principal, id)
	if err != nil {
		return err
	}
	previous := inv.Status
	if err := inv.Cancel(s.now()); err != nil {
		return err
	}
	if previous == inv.Status {
		return nil
	}
	if err := s.invitations.Save(ctx, inv); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	s.logger.Info("Team invitation cancelled",
		zap.String("business_id", inv.BusinessID.String()),
		zap.String("invitation_id", inv.ID.String()),
	)
	return nil
}

// CompleteInvitation accepts an invitation on behalf of the principal. The
// staff record and role are written before the invitation so a failed write
// leaves it pending and retryable.
func (s *Service) CompleteInvitation(ctx context.Context, principal *identity.Principal, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "team_invitation", "complete",
		attribute.String(telemetry.AttrInvitationID, id.String()))
	defer span.End()

	user, err := s.guard.LookupUser(ctx, principal)
	if err != nil {
		return err
	}
	inv, err := s.findInvitation(ctx, id)
	if err != nil {
		return err
	}
	now := s.now()
	if err := inv.EnsureUsable(now); err != nil {
		return err
	}
	if email := recipientEmail(user, principal); email != "" && email != inv.Email {
		return errWrongRecipient
	}

	if err := s.linkStaff(ctx, inv, user); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if user.Role == identity.RoleClient {
		if err := user.PromoteTo(identity.RoleStaff); err != nil {
			return err
		}
		if err := s.users.Save(ctx, user); err != nil {
			return fmt.Errorf("promote user: %w", err)
		}
	}

	if err := inv.Complete(now, user.ID); err != nil {
		return err
	}
	if err := s.invitations.Save(ctx, inv); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	s.logger.Info("Team invitation completed",
		zap.String("business_id", inv.BusinessID.String()),
		zap.String("invitation_id", inv.ID.String()),
		zap.String("user_id", user.ID.String()),
	)
	return nil
}

// linkStaff creates or re-activates the staff record for the invitation's email
func (s *Service) linkStaff(ctx context.Context, inv *team.Invitation, user *identity.User) error {
	member, err := s.staff.FindByBusinessAndEmail(ctx, inv.BusinessID, inv.Email)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		name := user.Name
		if name == "" {
			name = inv.Email
		}
		member, err = team.NewStaff(inv.BusinessID, name, inv.Email, inv.Role)
		if err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		member.Role = inv.Role
	}
	member.LinkUser(user.ID)
	if err := s.staff.Save(ctx, member); err != nil {
		return fmt.Errorf("save staff: %w", err)
	}
	return nil
}

func (s *Service) findInvitation(ctx context.Context, id uuid.UUID) (*team.Invitation, error) {
	inv, err := s.invitations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errInvitationNotFound
		}
		return nil, err
	}
	return inv, nil
}

func recipientEmail(user *identity.User, principal *identity.Principal) string {
	if user.Email != "" {
		return strings.ToLower(user.Email)
	}
	return principal.NormalizedEmail()
}
