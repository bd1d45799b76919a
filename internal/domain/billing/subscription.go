package billing

import (
	"context"
	"time"

	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SubscriptionStatus mirrors the billing provider's subscription lifecycle
type SubscriptionStatus string

const (
	StatusActive     SubscriptionStatus = "active"
	StatusTrialing   SubscriptionStatus = "trialing"
	StatusPastDue    SubscriptionStatus = "past_due"
	StatusCanceled   SubscriptionStatus = "canceled"
	StatusIncomplete SubscriptionStatus = "incomplete"
	StatusUnpaid     SubscriptionStatus = "unpaid"
)

// IsValid reports whether the status is known
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusTrialing, StatusPastDue, StatusCanceled, StatusIncomplete, StatusUnpaid:
		return true
	}
	return false
}

// IsGoodStanding reports whether the status entitles the business to its plan
func (s SubscriptionStatus) IsGoodStanding() bool {
	return s == StatusActive || s == StatusTrialing
}

// Subscription is a business's billing subscription
type Subscription struct {
	shared.BaseEntity
	BusinessID           uuid.UUID
	Plan                 Plan
	Status               SubscriptionStatus
	StripeCustomerID     string
	StripeSubscriptionID string
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    bool
}

// NewSubscription creates a subscription for a business
func NewSubscription(businessID uuid.UUID, plan Plan, status SubscriptionStatus) (*Subscription, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewValidationError("Business ID is required")
	}
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, shared.NewValidationError("Invalid subscription status: " + string(status))
	}
	return &Subscription{
		BaseEntity: shared.NewBaseEntity(),
		BusinessID: businessID,
		Plan:       plan,
		Status:     status,
	}, nil
}

// Apply updates the subscription from a billing provider snapshot
func (s *Subscription) Apply(plan Plan, status SubscriptionStatus, periodEnd *time.Time, cancelAtPeriodEnd bool) error {
	if err := ValidatePlan(plan); err != nil {
		return err
	}
	if !status.IsValid() {
		return shared.NewValidationError("Invalid subscription status: " + string(status))
	}
	s.Plan = plan
	s.Status = status
	s.CurrentPeriodEnd = periodEnd
	s.CancelAtPeriodEnd = cancelAtPeriodEnd
	s.Touch()
	return nil
}

// MarkPastDue flags the subscription after a failed payment
func (s *Subscription) MarkPastDue() {
	if s.Status == StatusCanceled {
		return
	}
	s.Status = StatusPastDue
	s.Touch()
}

// IsExpired reports whether the current billing period has ended
func (s *Subscription) IsExpired(now time.Time) bool {
	return s.CurrentPeriodEnd != nil && now.After(*s.CurrentPeriodEnd)
}

// IsEntitled reports whether the subscription unlocks its paid plan at time now
func (s *Subscription) IsEntitled(now time.Time) bool {
	return s.Plan.IsPaid() && s.Status.IsGoodStanding() && !s.IsExpired(now)
}

// SubscriptionRepository persists subscriptions
type SubscriptionRepository interface {
	FindByBusinessID(ctx context.Context, businessID uuid.UUID) (*Subscription, error)
	FindByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*Subscription, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Subscription, int64, error)
	Save(ctx context.Context, sub *Subscription) error
}
