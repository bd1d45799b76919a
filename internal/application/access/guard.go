// Package access decides whether a principal may act on a business.
//
// Rules are evaluated in order: super-admin first, then ownership. Sub-resources
// such as invitations are authorized against their owning business, never by id alone.
package access

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/glambooking/backend/internal/domain/business"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/domain/team"
	"github.com/glambooking/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	errNoBusiness       = shared.NewNotFoundError("No business found")
	errBusinessRequired = shared.NewValidationError("businessId is required when you manage more than one business")
)

// SuperAdminResult is the outcome of a super-admin check. Status carries the
// HTTP status callers should reply with when Authorized is false.
type SuperAdminResult struct {
	Authorized bool
	Error      string
	Status     int
}

// Guard is the single authorization policy for tenant-scoped actions
type Guard struct {
	users       identity.UserRepository
	businesses  business.Repository
	invitations team.InvitationRepository
	adminIDs    map[string]struct{}
	adminEmails map[string]struct{}
	logger      *zap.Logger
}

// NewGuard creates a guard with the configured super-admin allow-set
func NewGuard(
	users identity.UserRepository,
	businesses business.Repository,
	invitations team.InvitationRepository,
	admins config.SuperAdminConfig,
	logger *zap.Logger,
) *Guard {
	g := &Guard{
		users:       users,
		businesses:  businesses,
		invitations: invitations,
		adminIDs:    make(map[string]struct{}, len(admins.ExternalIDs)),
		adminEmails: make(map[string]struct{}, len(admins.Emails)),
		logger:      logger,
	}
	for _, id := range admins.ExternalIDs {
		if id = strings.TrimSpace(id); id != "" {
			g.adminIDs[id] = struct{}{}
		}
	}
	for _, email := range admins.Emails {
		if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
			g.adminEmails[email] = struct{}{}
		}
	}
	return g
}

// LookupUser maps the principal to its internal user record. A principal
// without a user record yields NO_PROFILE, not UNAUTHENTICATED.
func (g *Guard) LookupUser(ctx context.Context, principal *identity.Principal) (*identity.User, error) {
	if !principal.IsAuthenticated() {
		return nil, shared.ErrUnauthenticated
	}
	user, err := g.users.FindByExternalID(ctx, principal.ExternalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNoProfile
		}
		return nil, err
	}
	return user, nil
}

func (g *Guard) allowListed(principal *identity.Principal) bool {
	if _, ok := g.adminIDs[principal.ExternalID]; ok {
		return true
	}
	if email := principal.NormalizedEmail(); email != "" {
		_, ok := g.adminEmails[email]
		return ok
	}
	return false
}

// VerifySuperAdmin authenticates the principal and checks the allow-set, then the role flag
func (g *Guard) VerifySuperAdmin(ctx context.Context, principal *identity.Principal) SuperAdminResult {
	if !principal.IsAuthenticated() {
		return SuperAdminResult{Error: "Unauthorized", Status: http.StatusUnauthorized}
	}
	if g.allowListed(principal) {
		return SuperAdminResult{Authorized: true, Status: http.StatusOK}
	}

	user, err := g.users.FindByExternalID(ctx, principal.ExternalID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return SuperAdminResult{Error: "Forbidden", Status: http.StatusForbidden}
	case err != nil:
		g.logger.Error("Super-admin lookup failed", zap.String("principal", principal.ExternalID), zap.Error(err))
		return SuperAdminResult{Error: "Internal server error", Status: http.StatusInternalServerError}
	case user.IsSuperAdmin():
		return SuperAdminResult{Authorized: true, Status: http.StatusOK}
	default:
		return SuperAdminResult{Error: "Forbidden", Status: http.StatusForbidden}
	}
}

// errorFor converts a denied super-admin result into a domain error
func (r SuperAdminResult) errorFor() error {
	switch r.Status {
	case http.StatusUnauthorized:
		return shared.ErrUnauthenticated
	case http.StatusForbidden:
		return shared.ErrForbidden
	default:
		return errors.New("super-admin verification failed")
	}
}

// AuthorizeBusiness allows super-admins and the business owner to manage businessID
func (g *Guard) AuthorizeBusiness(ctx context.Context, principal *identity.Principal, businessID uuid.UUID) (*business.Business, error) {
	if !principal.IsAuthenticated() {
		return nil, shared.ErrUnauthenticated
	}
	b, err := g.businesses.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errNoBusiness
		}
		return nil, err
	}
	if err := g.authorize(ctx, principal, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (g *Guard) authorize(ctx context.Context, principal *identity.Principal, b *business.Business) error {
	if g.allowListed(principal) {
		return nil
	}
	user, err := g.LookupUser(ctx, principal)
	if err != nil {
		return err
	}
	if user.IsSuperAdmin() || b.IsOwnedBy(user.ID) {
		return nil
	}
	g.logger.Info("Business access denied",
		zap.String("principal", principal.ExternalID),
		zap.String("business_id", b.ID.String()),
	)
	return shared.ErrForbidden
}

// AuthorizeInvitation loads an invitation and authorizes the principal against its business
func (g *Guard) AuthorizeInvitation(ctx context.Context, principal *identity.Principal, invitationID uuid.UUID) (*team.Invitation, *business.Business, error) {
	if !principal.IsAuthenticated() {
		return nil, nil, shared.ErrUnauthenticated
	}
	inv, err := g.invitations.FindByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.NewNotFoundError("Invitation not found")
		}
		return nil, nil, err
	}
	b, err := g.AuthorizeBusiness(ctx, principal, inv.BusinessID)
	if err != nil {
		return nil, nil, err
	}
	return inv, b, nil
}

// SelectBusiness picks the business a request acts on. An explicit id is
// authorized; without one the caller must own exactly one business.
func (g *Guard) SelectBusiness(ctx context.Context, principal *identity.Principal, requested *uuid.UUID) (*business.Business, error) {
	if requested != nil && *requested != uuid.Nil {
		return g.AuthorizeBusiness(ctx, principal, *requested)
	}
	user, err := g.LookupUser(ctx, principal)
	if err != nil {
		return nil, err
	}
	owned, err := g.businesses.FindByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	switch len(owned) {
	case 0:
		return nil, errNoBusiness
	case 1:
		return &owned[0], nil
	default:
		return nil, errBusinessRequired
	}
}

// RequireSuperAdmin is VerifySuperAdmin as an error
func (g *Guard) RequireSuperAdmin(ctx context.Context, principal *identity.Principal) error {
	if result := g.VerifySuperAdmin(ctx, principal); !result.Authorized {
		return result.errorFor()
	}
	return nil
}
