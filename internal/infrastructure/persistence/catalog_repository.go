package persistence

import (
	"context"

	"github.com/glambooking/backend/internal/domain/catalog"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormServiceRepository implements catalog.ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByID finds a service by its ID
func (r *GormServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	var model models.ServiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find service", err)
	}
	return model.ToDomain(), nil
}

// FindActiveByBusiness lists the active services of a business by name
func (r *GormServiceRepository) FindActiveByBusiness(ctx context.Context, businessID uuid.UUID) ([]catalog.Service, error) {
	var rows []models.ServiceModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND is_active = ?", businessID, true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, translateError("list services", err)
	}
	return toServices(rows), nil
}

// FindAll lists services across businesses. Supported filters: "business_id" (uuid.UUID).
func (r *GormServiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Service, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ServiceModel{})
	if businessID, ok := filter.Filters["business_id"].(uuid.UUID); ok {
		query = query.Where("business_id = ?", businessID)
	}
	if filter.Search != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}
	query = reusable(query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError("count services", err)
	}

	var rows []models.ServiceModel
	if err := paginate(query.Order("created_at DESC"), filter).Find(&rows).Error; err != nil {
		return nil, 0, translateError("list services", err)
	}
	return toServices(rows), total, nil
}

// Save creates or updates a service
func (r *GormServiceRepository) Save(ctx context.Context, s *catalog.Service) error {
	model := &models.ServiceModel{}
	model.FromDomain(s)
	return translateError("save service", r.db.WithContext(ctx).Save(model).Error)
}

func toServices(rows []models.ServiceModel) []catalog.Service {
	out := make([]catalog.Service, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// GormAddonRepository implements catalog.AddonRepository using GORM
type GormAddonRepository struct {
	db *gorm.DB
}

// NewGormAddonRepository creates a new GormAddonRepository
func NewGormAddonRepository(db *gorm.DB) *GormAddonRepository {
	return &GormAddonRepository{db: db}
}

// FindActiveByService lists active addons of a service within a business
func (r *GormAddonRepository) FindActiveByService(ctx context.Context, businessID, serviceID uuid.UUID) ([]catalog.Addon, error) {
	var rows []models.AddonModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND service_id = ? AND is_active = ?", businessID, serviceID, true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, translateError("list addons", err)
	}
	out := make([]catalog.Addon, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates an addon
func (r *GormAddonRepository) Save(ctx context.Context, a *catalog.Addon) error {
	model := &models.AddonModel{}
	model.FromDomain(a)
	return translateError("save addon", r.db.WithContext(ctx).Save(model).Error)
}
