package models

import (
	"time"

	"github.com/glambooking/backend/internal/domain/team"
	"github.com/google/uuid"
)

// StaffModel is the persistence model for the Staff entity
type StaffModel struct {
	BaseModel
	BusinessID uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	Name       string     `gorm:"type:varchar(200);not null"`
	Email      string     `gorm:"type:varchar(254)"`
	Role       string     `gorm:"type:varchar(50);not null"`
	Bio        string     `gorm:"type:text"`
	ImageURL   string     `gorm:"type:varchar(500)"`
	IsActive   bool       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StaffModel) TableName() string {
	return "staff"
}

// ToDomain converts the model to a domain Staff
func (m *StaffModel) ToDomain() *team.Staff {
	return &team.Staff{
		BaseEntity: m.BaseModel.ToDomain(),
		BusinessID: m.BusinessID,
		UserID:     m.UserID,
		Name:       m.Name,
		Email:      m.Email,
		Role:       m.Role,
		Bio:        m.Bio,
		ImageURL:   m.ImageURL,
		IsActive:   m.IsActive,
	}
}

// FromDomain populates the model from a domain Staff
func (m *StaffModel) FromDomain(s *team.Staff) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.BusinessID = s.BusinessID
	m.UserID = s.UserID
	m.Name = s.Name
	m.Email = s.Email
	m.Role = s.Role
	m.Bio = s.Bio
	m.ImageURL = s.ImageURL
	m.IsActive = s.IsActive
}

// TeamInvitationModel is the persistence model for the Invitation entity
type TeamInvitationModel struct {
	BaseModel
	BusinessID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Email       string     `gorm:"type:varchar(254);not null;index"`
	Role        string     `gorm:"type:varchar(50);not null"`
	Status      string     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	ExpiresAt   time.Time  `gorm:"not null"`
	InvitedBy   uuid.UUID  `gorm:"type:uuid"`
	CompletedBy *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (TeamInvitationModel) TableName() string {
	return "team_invitations"
}

// ToDomain converts the model to a domain Invitation
func (m *TeamInvitationModel) ToDomain() *team.Invitation {
	return &team.Invitation{
		BaseEntity:  m.BaseModel.ToDomain(),
		BusinessID:  m.BusinessID,
		Email:       m.Email,
		Role:        m.Role,
		Status:      team.InvitationStatus(m.Status),
		ExpiresAt:   m.ExpiresAt,
		InvitedBy:   m.InvitedBy,
		CompletedBy: m.CompletedBy,
	}
}

// FromDomain populates the model from a domain Invitation
func (m *TeamInvitationModel) FromDomain(i *team.Invitation) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.BusinessID = i.BusinessID
	m.Email = i.Email
	m.Role = i.Role
	m.Status = string(i.Status)
	m.ExpiresAt = i.ExpiresAt
	m.InvitedBy = i.InvitedBy
	m.CompletedBy = i.CompletedBy
}
