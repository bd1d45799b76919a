package team

import (
	"context"
	"strings"
	"time"

	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvitationStatus is the stored lifecycle state of an invitation
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "PENDING"
	InvitationCancelled InvitationStatus = "CANCELLED"
	InvitationCompleted InvitationStatus = "COMPLETED"
	// InvitationExpired is derived from ExpiresAt and never stored
	InvitationExpired InvitationStatus = "EXPIRED"
)

// DefaultInvitationTTL is how long an invitation stays usable
const DefaultInvitationTTL = 7 * 24 * time.Hour

// Invitation asks an email address to join a business's team
type Invitation struct {
	shared.BaseEntity
	BusinessID  uuid.UUID
	Email       string
	Role        string
	Status      InvitationStatus
	ExpiresAt   time.Time
	InvitedBy   uuid.UUID
	CompletedBy *uuid.UUID
}

// NewInvitation creates a pending invitation expiring after ttl
func NewInvitation(businessID uuid.UUID, email, role string, ttl time.Duration, invitedBy uuid.UUID) (*Invitation, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewValidationError("Business ID is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewValidationError("Email is required")
	}
	if err := identity.ValidateEmail(email); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultInvitationTTL
	}
	inv := &Invitation{
		BaseEntity: shared.NewBaseEntity(),
		BusinessID: businessID,
		Email:      email,
		Role:       normalizeRole(role),
		Status:     InvitationPending,
		InvitedBy:  invitedBy,
	}
	inv.ExpiresAt = inv.CreatedAt.Add(ttl)
	return inv, nil
}

// IsExpired reports whether the invitation's expiry has passed
func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// State returns the effective state, treating pending invitations past expiry as expired
func (i *Invitation) State(now time.Time) InvitationStatus {
	if i.Status == InvitationPending && i.IsExpired(now) {
		return InvitationExpired
	}
	return i.Status
}

// EnsureUsable rejects invitations that are expired or no longer pending,
// regardless of what the stored status reads
func (i *Invitation) EnsureUsable(now time.Time) error {
	if i.IsExpired(now) {
		return shared.NewGoneError("Invitation has expired")
	}
	if i.Status != InvitationPending {
		return shared.NewGoneError("Invitation is no longer valid")
	}
	return nil
}

// Cancel moves a pending invitation to CANCELLED. Cancelling an already
// cancelled invitation succeeds without change. Completed or expired
// invitations are rejected and left untouched.
func (i *Invitation) Cancel(now time.Time) error {
	switch {
	case i.Status == InvitationCancelled:
		return nil
	case i.Status == InvitationCompleted:
		return shared.NewGoneError("Invitation has already been completed")
	case i.IsExpired(now):
		return shared.NewGoneError("Invitation has expired")
	}
	i.Status = InvitationCancelled
	i.Touch()
	return nil
}

// Complete marks the invitation accepted by userID
func (i *Invitation) Complete(now time.Time, userID uuid.UUID) error {
	if err := i.EnsureUsable(now); err != nil {
		return err
	}
	if userID == uuid.Nil {
		return shared.NewValidationError("Completing user is required")
	}
	i.Status = InvitationCompleted
	i.CompletedBy = &userID
	i.Touch()
	return nil
}

// InvitationFilter filters invitation listings
type InvitationFilter struct {
	shared.Filter
	BusinessID *uuid.UUID
	Status     InvitationStatus
}

// InvitationRepository persists invitations
type InvitationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invitation, error)
	FindPendingByBusinessAndEmail(ctx context.Context, businessID uuid.UUID, email string) (*Invitation, error)
	FindAll(ctx context.Context, filter InvitationFilter) ([]Invitation, int64, error)
	Save(ctx context.Context, inv *Invitation) error
}
