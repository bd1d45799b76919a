package persistence

import (
	"context"

	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements billing.SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByBusinessID finds the subscription of a business
func (r *GormSubscriptionRepository) FindByBusinessID(ctx context.Context, businessID uuid.UUID) (*billing.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).Where("business_id = ?", businessID).First(&model).Error; err != nil {
		return nil, translateError("find subscription", err)
	}
	return model.ToDomain(), nil
}

// FindByStripeSubscriptionID finds a subscription by its Stripe id
func (r *GormSubscriptionRepository) FindByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*billing.Subscription, error) {
	if stripeSubscriptionID == "" {
		return nil, shared.ErrNotFound
	}
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).Where("stripe_subscription_id = ?", stripeSubscriptionID).First(&model).Error; err != nil {
		return nil, translateError("find subscription by stripe id", err)
	}
	return model.ToDomain(), nil
}

// FindAll lists subscriptions. Supported filters: "status" (string), "plan" (string).
func (r *GormSubscriptionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Subscription, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SubscriptionModel{})
	if status, ok := filter.StringFilter("status"); ok {
		query = query.Where("status = ?", status)
	}
	if plan, ok := filter.StringFilter("plan"); ok {
		query = query.Where("plan = ?", plan)
	}
	query = reusable(query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError("count subscriptions", err)
	}

	var rows []models.SubscriptionModel
	if err := paginate(query.Order("updated_at DESC"), filter).Find(&rows).Error; err != nil {
		return nil, 0, translateError("list subscriptions", err)
	}
	out := make([]billing.Subscription, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a subscription
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *billing.Subscription) error {
	model := &models.SubscriptionModel{}
	model.FromDomain(sub)
	return translateError("save subscription", r.db.WithContext(ctx).Save(model).Error)
}

// GormPayoutRepository implements billing.PayoutRepository using GORM
type GormPayoutRepository struct {
	db *gorm.DB
}

// NewGormPayoutRepository creates a new GormPayoutRepository
func NewGormPayoutRepository(db *gorm.DB) *GormPayoutRepository {
	return &GormPayoutRepository{db: db}
}

// FindByID finds a payout by its ID
func (r *GormPayoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payout, error) {
	var model models.PayoutModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find payout", err)
	}
	return model.ToDomain(), nil
}

// FindAll lists payouts. Supported filters: "status" (string), "business_id" (uuid.UUID).
func (r *GormPayoutRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Payout, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PayoutModel{})
	if status, ok := filter.StringFilter("status"); ok {
		query = query.Where("status = ?", status)
	}
	if businessID, ok := filter.Filters["business_id"].(uuid.UUID); ok {
		query = query.Where("business_id = ?", businessID)
	}
	query = reusable(query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError("count payouts", err)
	}

	var rows []models.PayoutModel
	if err := paginate(query.Order("period_end DESC"), filter).Find(&rows).Error; err != nil {
		return nil, 0, translateError("list payouts", err)
	}
	out := make([]billing.Payout, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a payout
func (r *GormPayoutRepository) Save(ctx context.Context, p *billing.Payout) error {
	model := &models.PayoutModel{}
	model.FromDomain(p)
	return translateError("save payout", r.db.WithContext(ctx).Save(model).Error)
}
