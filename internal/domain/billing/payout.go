package billing

import (
	"context"
	"time"

	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutStatus is the settlement state of a payout
type PayoutStatus string

const (
	PayoutPending    PayoutStatus = "pending"
	PayoutProcessing PayoutStatus = "processing"
	PayoutPaid       PayoutStatus = "paid"
	PayoutFailed     PayoutStatus = "failed"
)

// IsValid reports whether the status is known
func (s PayoutStatus) IsValid() bool {
	switch s {
	case PayoutPending, PayoutProcessing, PayoutPaid, PayoutFailed:
		return true
	}
	return false
}

// Payout is a settlement of booking revenue to a business
type Payout struct {
	shared.BaseEntity
	BusinessID  uuid.UUID
	Amount      decimal.Decimal
	Currency    string
	Status      PayoutStatus
	PeriodStart time.Time
	PeriodEnd   time.Time
	PaidAt      *time.Time
}

// NewPayout creates a pending payout
func NewPayout(businessID uuid.UUID, amount decimal.Decimal, currency string, periodStart, periodEnd time.Time) (*Payout, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewValidationError("Business ID is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewValidationError("Payout amount cannot be negative")
	}
	if currency == "" {
		currency = "GBP"
	}
	if periodEnd.Before(periodStart) {
		return nil, shared.NewValidationError("Payout period end must not precede its start")
	}
	return &Payout{
		BaseEntity:  shared.NewBaseEntity(),
		BusinessID:  businessID,
		Amount:      amount,
		Currency:    currency,
		Status:      PayoutPending,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}, nil
}

// TransitionTo moves the payout to a new status. Paid payouts are final.
func (p *Payout) TransitionTo(status PayoutStatus, now time.Time) error {
	if !status.IsValid() {
		return shared.NewValidationError("Invalid payout status: " + string(status))
	}
	if p.Status == PayoutPaid && status != PayoutPaid {
		return shared.NewDomainError(shared.CodeInvalidState, "Payout has already been paid")
	}
	p.Status = status
	if status == PayoutPaid && p.PaidAt == nil {
		paidAt := now
		p.PaidAt = &paidAt
	}
	p.Touch()
	return nil
}

// PayoutRepository persists payouts
type PayoutRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payout, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payout, int64, error)
	Save(ctx context.Context, payout *Payout) error
}
