package persistence

import (
	"context"

	"github.com/glambooking/backend/internal/domain/business"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBusinessRepository implements business.Repository using GORM
type GormBusinessRepository struct {
	db *gorm.DB
}

// NewGormBusinessRepository creates a new GormBusinessRepository
func NewGormBusinessRepository(db *gorm.DB) *GormBusinessRepository {
	return &GormBusinessRepository{db: db}
}

// FindByID finds a business by its ID, including its white-label configuration
func (r *GormBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*business.Business, error) {
	var model models.BusinessModel
	if err := r.db.WithContext(ctx).Preload("WhiteLabel").First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find business", err)
	}
	return model.ToDomain(), nil
}

// FindActiveByID finds an active business by its ID
func (r *GormBusinessRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*business.Business, error) {
	var model models.BusinessModel
	if err := r.db.WithContext(ctx).
		Preload("WhiteLabel").
		Where("id = ? AND is_active = ?", id, true).
		First(&model).Error; err != nil {
		return nil, translateError("find active business", err)
	}
	return model.ToDomain(), nil
}

// FindByOwner lists the businesses owned by a user, oldest first
func (r *GormBusinessRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]business.Business, error) {
	var rows []models.BusinessModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, translateError("find businesses by owner", err)
	}
	return toBusinesses(rows), nil
}

// Discover lists active businesses that have no white-label configuration of any kind
func (r *GormBusinessRepository) Discover(ctx context.Context, filter business.DiscoverFilter) ([]business.Business, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BusinessModel{}).
		Where("businesses.is_active = ?", true).
		Where("NOT EXISTS (SELECT 1 FROM white_label_configs w WHERE w.business_id = businesses.id)")

	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(`(LOWER(businesses.name) LIKE ? ESCAPE '\' OR LOWER(businesses.description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where("LOWER(businesses.category) = LOWER(?)", filter.Category)
	}

	query = reusable(query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError("count discoverable businesses", err)
	}

	var rows []models.BusinessModel
	if err := paginate(query.Order("businesses.name ASC"), filter.Filter).Find(&rows).Error; err != nil {
		return nil, 0, translateError("discover businesses", err)
	}
	return toBusinesses(rows), total, nil
}

// FindAll lists every business for administration. Supported filters: "active" (bool).
func (r *GormBusinessRepository) FindAll(ctx context.Context, filter shared.Filter) ([]business.Business, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BusinessModel{})
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if active, ok := filter.Filters["active"].(bool); ok {
		query = query.Where("is_active = ?", active)
	}

	query = reusable(query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError("count businesses", err)
	}

	var rows []models.BusinessModel
	if err := paginate(query.Preload("WhiteLabel").Order("created_at DESC"), filter).Find(&rows).Error; err != nil {
		return nil, 0, translateError("list businesses", err)
	}
	return toBusinesses(rows), total, nil
}

// Save creates or updates a business
func (r *GormBusinessRepository) Save(ctx context.Context, b *business.Business) error {
	model := models.BusinessModelFromDomain(b)
	return translateError("save business", r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error)
}

func toBusinesses(rows []models.BusinessModel) []business.Business {
	out := make([]business.Business, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// GormWhiteLabelRepository implements business.WhiteLabelRepository using GORM
type GormWhiteLabelRepository struct {
	db *gorm.DB
}

// NewGormWhiteLabelRepository creates a new GormWhiteLabelRepository
func NewGormWhiteLabelRepository(db *gorm.DB) *GormWhiteLabelRepository {
	return &GormWhiteLabelRepository{db: db}
}

// FindByID finds a configuration by its ID
func (r *GormWhiteLabelRepository) FindByID(ctx context.Context, id uuid.UUID) (*business.WhiteLabelConfig, error) {
	return r.findOne(ctx, "find white label", "id = ?", id)
}

// FindByBusinessID finds the configuration of a business
func (r *GormWhiteLabelRepository) FindByBusinessID(ctx context.Context, businessID uuid.UUID) (*business.WhiteLabelConfig, error) {
	return r.findOne(ctx, "find white label by business", "business_id = ?", businessID)
}

// FindBySubdomain finds a configuration by its subdomain label
func (r *GormWhiteLabelRepository) FindBySubdomain(ctx context.Context, subdomain string) (*business.WhiteLabelConfig, error) {
	if subdomain == "" {
		return nil, shared.ErrNotFound
	}
	return r.findOne(ctx, "find white label by subdomain", "subdomain = ?", subdomain)
}

// FindByCustomDomain finds a configuration by its custom domain
func (r *GormWhiteLabelRepository) FindByCustomDomain(ctx context.Context, domain string) (*business.WhiteLabelConfig, error) {
	if domain == "" {
		return nil, shared.ErrNotFound
	}
	return r.findOne(ctx, "find white label by custom domain", "custom_domain = ?", domain)
}

// FindAll lists configurations for administration
func (r *GormWhiteLabelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]business.WhiteLabelConfig, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.WhiteLabelConfigModel{})
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(`(LOWER(subdomain) LIKE ? ESCAPE '\' OR LOWER(custom_domain) LIKE ? ESCAPE '\' OR LOWER(company_name) LIKE ? ESCAPE '\')`, pattern, pattern, pattern)
	}

	query = reusable(query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError("count white labels", err)
	}

	var rows []models.WhiteLabelConfigModel
	if err := paginate(query.Order("created_at DESC"), filter).Find(&rows).Error; err != nil {
		return nil, 0, translateError("list white labels", err)
	}
	out := make([]business.WhiteLabelConfig, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a configuration. Hostname collisions surface as ErrAlreadyExists.
func (r *GormWhiteLabelRepository) Save(ctx context.Context, w *business.WhiteLabelConfig) error {
	model := &models.WhiteLabelConfigModel{}
	model.FromDomain(w)
	return translateError("save white label", r.db.WithContext(ctx).Save(model).Error)
}

func (r *GormWhiteLabelRepository) findOne(ctx context.Context, op, where string, arg any) (*business.WhiteLabelConfig, error) {
	var model models.WhiteLabelConfigModel
	if err := r.db.WithContext(ctx).Where(where, arg).First(&model).Error; err != nil {
		return nil, translateError(op, err)
	}
	return model.ToDomain(), nil
}
