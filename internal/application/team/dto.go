package team

import (
	"time"

	"github.com/glambooking/backend/internal/domain/team"
	"github.com/google/uuid"
)

// CreateInvitationRequest represents a request to invite a team member
type CreateInvitationRequest struct {
	BusinessID *uuid.UUID `json:"businessId"`
	Email      string     `json:"email" binding:"required,email,max=254"`
	Role       string     `json:"role" binding:"max=50"`
}

// InvitationResponse represents an invitation with its effective state
type InvitationResponse struct {
	ID           uuid.UUID  `json:"id"`
	BusinessID   uuid.UUID  `json:"businessId"`
	BusinessName string     `json:"businessName,omitempty"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Status       string     `json:"status"`
	ExpiresAt    time.Time  `json:"expiresAt"`
	InvitedBy    *uuid.UUID `json:"invitedBy,omitempty"`
	CompletedBy  *uuid.UUID `json:"completedBy,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// StaffResponse represents a staff member for the owning business
type StaffResponse struct {
	ID         uuid.UUID  `json:"id"`
	BusinessID uuid.UUID  `json:"businessId"`
	UserID     *uuid.UUID `json:"userId"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Bio        string     `json:"bio"`
	ImageURL   string     `json:"imageUrl"`
	IsActive   bool       `json:"isActive"`
}

// PublicStaffResponse is the customer-facing view of a staff member
type PublicStaffResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	Bio      string    `json:"bio"`
	ImageURL string    `json:"imageUrl"`
}

// ToInvitationResponse converts an invitation, reporting its state at now
func ToInvitationResponse(inv *team.Invitation, now time.Time) InvitationResponse {
	resp := InvitationResponse{
		ID:          inv.ID,
		BusinessID:  inv.BusinessID,
		Email:       inv.Email,
		Role:        inv.Role,
		Status:      string(inv.State(now)),
		ExpiresAt:   inv.ExpiresAt,
		CompletedBy: inv.CompletedBy,
		CreatedAt:   inv.CreatedAt,
	}
	if inv.InvitedBy != uuid.Nil {
		invitedBy := inv.InvitedBy
		resp.InvitedBy = &invitedBy
	}
	return resp
}

// ToInvitationResponses converts a slice of invitations
func ToInvitationResponses(list []team.Invitation, now time.Time) []InvitationResponse {
	out := make([]InvitationResponse, len(list))
	for i := range list {
		out[i] = ToInvitationResponse(&list[i], now)
	}
	return out
}

// ToStaffResponses converts staff for the owning business
func ToStaffResponses(list []team.Staff) []StaffResponse {
	out := make([]StaffResponse, len(list))
	for i, s := range list {
		out[i] = StaffResponse{
			ID:         s.ID,
			BusinessID: s.BusinessID,
			UserID:     s.UserID,
			Name:       s.Name,
			Email:      s.Email,
			Role:       s.Role,
			Bio:        s.Bio,
			ImageURL:   s.ImageURL,
			IsActive:   s.IsActive,
		}
	}
	return out
}

// ToPublicStaffResponses converts staff for public pages
func ToPublicStaffResponses(list []team.Staff) []PublicStaffResponse {
	out := make([]PublicStaffResponse, len(list))
	for i, s := range list {
		out[i] = PublicStaffResponse{
			ID:       s.ID,
			Name:     s.Name,
			Role:     s.Role,
			Bio:      s.Bio,
			ImageURL: s.ImageURL,
		}
	}
	return out
}
