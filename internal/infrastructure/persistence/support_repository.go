package persistence

import (
	"context"

	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/domain/support"
	"github.com/glambooking/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTicketRepository implements support.TicketRepository using GORM
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// FindByID finds a ticket by its ID
func (r *GormTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*support.Ticket, error) {
	var model models.SupportTicketModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find support ticket", err)
	}
	return model.ToDomain(), nil
}

// FindAll lists tickets. Supported filters: "status" (string), "priority" (string).
func (r *GormTicketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]support.Ticket, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SupportTicketModel{})
	if status, ok := filter.StringFilter("status"); ok {
		query = query.Where("status = ?", status)
	}
	if priority, ok := filter.StringFilter("priority"); ok {
		query = query.Where("priority = ?", priority)
	}
	if filter.Search != "" {
		query = query.Where(`LOWER(subject) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}
	query = reusable(query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError("count support tickets", err)
	}

	var rows []models.SupportTicketModel
	if err := paginate(query.Order("created_at DESC"), filter).Find(&rows).Error; err != nil {
		return nil, 0, translateError("list support tickets", err)
	}
	out := make([]support.Ticket, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a ticket
func (r *GormTicketRepository) Save(ctx context.Context, t *support.Ticket) error {
	model := &models.SupportTicketModel{}
	model.FromDomain(t)
	return translateError("save support ticket", r.db.WithContext(ctx).Save(model).Error)
}
