package team

import (
	"context"
	"strings"

	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Staff is a team member of exactly one business
type Staff struct {
	shared.BaseEntity
	BusinessID uuid.UUID
	// UserID links the staff member to a platform user once onboarded
	UserID   *uuid.UUID
	Name     string
	Email    string
	Role     string
	Bio      string
	ImageURL string
	IsActive bool
}

// NewStaff creates an active staff member
func NewStaff(businessID uuid.UUID, name, email, role string) (*Staff, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewValidationError("Business ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Staff name is required")
	}
	return &Staff{
		BaseEntity: shared.NewBaseEntity(),
		BusinessID: businessID,
		Name:       name,
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Role:       normalizeRole(role),
		IsActive:   true,
	}, nil
}

// LinkUser attaches the onboarded user and re-activates the member
func (s *Staff) LinkUser(userID uuid.UUID) {
	s.UserID = &userID
	s.IsActive = true
	s.Touch()
}

func normalizeRole(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		return DefaultStaffRole
	}
	return role
}

// DefaultStaffRole is assigned when an invitation does not name a role
const DefaultStaffRole = "STAFF"

// StaffRepository persists staff members
type StaffRepository interface {
	FindActiveByBusiness(ctx context.Context, businessID uuid.UUID) ([]Staff, error)
	FindByBusinessAndEmail(ctx context.Context, businessID uuid.UUID, email string) (*Staff, error)
	Save(ctx context.Context, s *Staff) error
}
