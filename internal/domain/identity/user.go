package identity

import (
	"context"
	"regexp"
	"strings"

	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role is the platform role of a user
type Role string

const (
	RoleClient     Role = "CLIENT"
	RoleOwner      Role = "OWNER"
	RoleStaff      Role = "STAFF"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// IsValid reports whether the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleOwner, RoleStaff, RoleSuperAdmin:
		return true
	}
	return false
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is the internal record of an identity-provider principal
type User struct {
	shared.BaseEntity
	// ExternalID is the identity provider's stable subject identifier
	ExternalID string
	Email      string
	Name       string
	Role       Role
}

// NewUser creates a client user linked to an external identity
func NewUser(externalID, email, name string) (*User, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, shared.NewValidationError("External identity is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if err := ValidateEmail(email); err != nil {
			return nil, err
		}
	}
	return &User{
		BaseEntity: shared.NewBaseEntity(),
		ExternalID: externalID,
		Email:      email,
		Name:       strings.TrimSpace(name),
		Role:       RoleClient,
	}, nil
}

// IsSuperAdmin reports whether the user carries the super-admin role
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// PromoteTo changes the user's role. Super-admins are never demoted by business flows.
func (u *User) PromoteTo(role Role) error {
	if !role.IsValid() {
		return shared.NewValidationError("Invalid role: " + string(role))
	}
	if u.Role == RoleSuperAdmin {
		return nil
	}
	u.Role = role
	u.Touch()
	return nil
}

// ValidateEmail returns a validation error for malformed addresses
func ValidateEmail(email string) error {
	if len(email) > 254 || !emailRegex.MatchString(email) {
		return shared.NewValidationError("Invalid email address")
	}
	return nil
}

// UserFilter filters user listings
type UserFilter struct {
	shared.Filter
	Role Role
}

// UserRepository persists users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByExternalID(ctx context.Context, externalID string) (*User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]User, int64, error)
	Save(ctx context.Context, u *User) error
}
