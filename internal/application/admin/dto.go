package admin

import (
	"time"

	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/domain/support"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListRequest is the common query of super-admin listings
type ListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"max=100"`
	Status   string `form:"status" binding:"max=30"`
}

func (r ListRequest) filter() shared.Filter {
	return shared.Filter{
		Page:     r.Page,
		PageSize: r.PageSize,
		Search:   r.Search,
	}.Normalize()
}

// Page is one page of a listing
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

func newPage[T any](items []T, total int64, f shared.Filter) *Page[T] {
	return &Page[T]{Items: items, Total: total, Page: f.Page, PageSize: f.PageSize}
}

// UpdateStatusRequest moves a payout or ticket to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,max=30"`
}

// ClientResponse is a platform user with the CLIENT role
type ClientResponse struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"externalId"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PayoutResponse represents a payout
type PayoutResponse struct {
	ID          uuid.UUID       `json:"id"`
	BusinessID  uuid.UUID       `json:"businessId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	PaidAt      *time.Time      `json:"paidAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// SubscriptionResponse represents a subscription
type SubscriptionResponse struct {
	ID                   uuid.UUID  `json:"id"`
	BusinessID           uuid.UUID  `json:"businessId"`
	Plan                 string     `json:"plan"`
	Status               string     `json:"status"`
	StripeCustomerID     string     `json:"stripeCustomerId"`
	StripeSubscriptionID string     `json:"stripeSubscriptionId"`
	CurrentPeriodEnd     *time.Time `json:"currentPeriodEnd"`
	CancelAtPeriodEnd    bool       `json:"cancelAtPeriodEnd"`
	Entitled             bool       `json:"entitled"`
}

// TicketResponse represents a support ticket
type TicketResponse struct {
	ID         uuid.UUID  `json:"id"`
	BusinessID *uuid.UUID `json:"businessId"`
	UserID     uuid.UUID  `json:"userId"`
	Subject    string     `json:"subject"`
	Message    string     `json:"message"`
	Status     string     `json:"status"`
	Priority   string     `json:"priority"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func toClientResponses(list []identity.User) []ClientResponse {
	out := make([]ClientResponse, len(list))
	for i, u := range list {
		out[i] = ClientResponse{
			ID:         u.ID,
			ExternalID: u.ExternalID,
			Email:      u.Email,
			Name:       u.Name,
			Role:       string(u.Role),
			CreatedAt:  u.CreatedAt,
		}
	}
	return out
}

func toPayoutResponse(p *billing.Payout) PayoutResponse {
	return PayoutResponse{
		ID:          p.ID,
		BusinessID:  p.BusinessID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Status:      string(p.Status),
		PeriodStart: p.PeriodStart,
		PeriodEnd:   p.PeriodEnd,
		PaidAt:      p.PaidAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toSubscriptionResponse(s *billing.Subscription, now time.Time) SubscriptionResponse {
	return SubscriptionResponse{
		ID:                   s.ID,
		BusinessID:           s.BusinessID,
		Plan:                 string(s.Plan),
		Status:               string(s.Status),
		StripeCustomerID:     s.StripeCustomerID,
		StripeSubscriptionID: s.StripeSubscriptionID,
		CurrentPeriodEnd:     s.CurrentPeriodEnd,
		CancelAtPeriodEnd:    s.CancelAtPeriodEnd,
		Entitled:             s.IsEntitled(now),
	}
}

func toTicketResponse(t *support.Ticket) TicketResponse {
	return TicketResponse{
		ID:         t.ID,
		BusinessID: t.BusinessID,
		UserID:     t.UserID,
		Subject:    t.Subject,
		Message:    t.Message,
		Status:     string(t.Status),
		Priority:   string(t.Priority),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
