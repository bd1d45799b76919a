package persistence

import (
	"context"

	"github.com/glambooking/backend/internal/domain/team"
	"github.com/glambooking/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStaffRepository implements team.StaffRepository using GORM
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// FindActiveByBusiness lists active staff of a business by name
func (r *GormStaffRepository) FindActiveByBusiness(ctx context.Context, businessID uuid.UUID) ([]team.Staff, error) {
	var rows []models.StaffModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND is_active = ?", businessID, true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, translateError("list staff", err)
	}
	out := make([]team.Staff, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// FindByBusinessAndEmail finds a staff member of a business by email
func (r *GormStaffRepository) FindByBusinessAndEmail(ctx context.Context, businessID uuid.UUID, email string) (*team.Staff, error) {
	var model models.StaffModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND email = ?", businessID, email).
		First(&model).Error; err != nil {
		return nil, translateError("find staff by email", err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a staff member
func (r *GormStaffRepository) Save(ctx context.Context, s *team.Staff) error {
	model := &models.StaffModel{}
	model.FromDomain(s)
	return translateError("save staff", r.db.WithContext(ctx).Save(model).Error)
}

// GormInvitationRepository implements team.InvitationRepository using GORM
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewGormInvitationRepository creates a new GormInvitationRepository
func NewGormInvitationRepository(db *gorm.DB) *GormInvitationRepository {
	return &GormInvitationRepository{db: db}
}

// FindByID finds an invitation by its ID
func (r *GormInvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*team.Invitation, error) {
	var model models.TeamInvitationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find invitation", err)
	}
	return model.ToDomain(), nil
}

// FindPendingByBusinessAndEmail finds the newest pending invitation for an email in a business
func (r *GormInvitationRepository) FindPendingByBusinessAndEmail(ctx context.Context, businessID uuid.UUID, email string) (*team.Invitation, error) {
	var model models.TeamInvitationModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND email = ? AND status = ?", businessID, email, string(team.InvitationPending)).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		return nil, translateError("find pending invitation", err)
	}
	return model.ToDomain(), nil
}

// FindAll lists invitations, optionally for one business and stored status
func (r *GormInvitationRepository) FindAll(ctx context.Context, filter team.InvitationFilter) ([]team.Invitation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TeamInvitationModel{})
	if filter.BusinessID != nil {
		query = query.Where("business_id = ?", *filter.BusinessID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Search != "" {
		query = query.Where(`LOWER(email) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}
	query = reusable(query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError("count invitations", err)
	}

	var rows []models.TeamInvitationModel
	if err := paginate(query.Order("created_at DESC"), filter.Filter).Find(&rows).Error; err != nil {
		return nil, 0, translateError("list invitations", err)
	}
	out := make([]team.Invitation, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates an invitation
func (r *GormInvitationRepository) Save(ctx context.Context, inv *team.Invitation) error {
	model := &models.TeamInvitationModel{}
	model.FromDomain(inv)
	return translateError("save invitation", r.db.WithContext(ctx).Save(model).Error)
}
