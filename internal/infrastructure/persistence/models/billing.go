package models

import (
	"time"

	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubscriptionModel is the persistence model for the Subscription entity
type SubscriptionModel struct {
	BaseModel
	BusinessID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Plan                 string     `gorm:"type:varchar(20);not null"`
	Status               string     `gorm:"type:varchar(20);not null"`
	StripeCustomerID     string     `gorm:"type:varchar(255);index"`
	StripeSubscriptionID string     `gorm:"type:varchar(255);index"`
	CurrentPeriodEnd     *time.Time `gorm:"index"`
	CancelAtPeriodEnd    bool       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToDomain converts the model to a domain Subscription
func (m *SubscriptionModel) ToDomain() *billing.Subscription {
	return &billing.Subscription{
		BaseEntity:           m.BaseModel.ToDomain(),
		BusinessID:           m.BusinessID,
		Plan:                 billing.ParsePlan(m.Plan),
		Status:               billing.SubscriptionStatus(m.Status),
		StripeCustomerID:     m.StripeCustomerID,
		StripeSubscriptionID: m.StripeSubscriptionID,
		CurrentPeriodEnd:     m.CurrentPeriodEnd,
		CancelAtPeriodEnd:    m.CancelAtPeriodEnd,
	}
}

// FromDomain populates the model from a domain Subscription
func (m *SubscriptionModel) FromDomain(s *billing.Subscription) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.BusinessID = s.BusinessID
	m.Plan = string(s.Plan)
	m.Status = string(s.Status)
	m.StripeCustomerID = s.StripeCustomerID
	m.StripeSubscriptionID = s.StripeSubscriptionID
	m.CurrentPeriodEnd = s.CurrentPeriodEnd
	m.CancelAtPeriodEnd = s.CancelAtPeriodEnd
}

// PayoutModel is the persistence model for the Payout entity
type PayoutModel struct {
	BaseModel
	BusinessID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency    string          `gorm:"type:varchar(3);not null"`
	Status      string          `gorm:"type:varchar(20);not null;index"`
	PeriodStart time.Time       `gorm:"not null"`
	PeriodEnd   time.Time       `gorm:"not null"`
	PaidAt      *time.Time
}

// TableName returns the table name for GORM
func (PayoutModel) TableName() string {
	return "payouts"
}

// ToDomain converts the model to a domain Payout
func (m *PayoutModel) ToDomain() *billing.Payout {
	return &billing.Payout{
		BaseEntity:  m.BaseModel.ToDomain(),
		BusinessID:  m.BusinessID,
		Amount:      m.Amount,
		Currency:    m.Currency,
		Status:      billing.PayoutStatus(m.Status),
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		PaidAt:      m.PaidAt,
	}
}

// FromDomain populates the model from a domain Payout
func (m *PayoutModel) FromDomain(p *billing.Payout) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.BusinessID = p.BusinessID
	m.Amount = p.Amount
	m.Currency = p.Currency
	m.Status = string(p.Status)
	m.PeriodStart = p.PeriodStart
	m.PeriodEnd = p.PeriodEnd
	m.PaidAt = p.PaidAt
}
