package models

import (
	"github.com/glambooking/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceModel is the persistence model for the Service entity
type ServiceModel struct {
	BaseModel
	BusinessID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Duration    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Category    string          `gorm:"type:varchar(100)"`
	IsActive    bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ServiceModel) TableName() string {
	return "services"
}

// ToDomain converts the model to a domain Service
func (m *ServiceModel) ToDomain() *catalog.Service {
	return &catalog.Service{
		BaseEntity:  m.BaseModel.ToDomain(),
		BusinessID:  m.BusinessID,
		Name:        m.Name,
		Description: m.Description,
		Duration:    m.Duration,
		Price:       m.Price,
		Category:    m.Category,
		IsActive:    m.IsActive,
	}
}

// FromDomain populates the model from a domain Service
func (m *ServiceModel) FromDomain(s *catalog.Service) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.BusinessID = s.BusinessID
	m.Name = s.Name
	m.Description = s.Description
	m.Duration = s.Duration
	m.Price = s.Price
	m.Category = s.Category
	m.IsActive = s.IsActive
}

// AddonModel is the persistence model for the Addon entity
type AddonModel struct {
	BaseModel
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	BusinessID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Duration    int             `gorm:"not null;default:0"`
	IsActive    bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AddonModel) TableName() string {
	return "service_addons"
}

// ToDomain converts the model to a domain Addon
func (m *AddonModel) ToDomain() *catalog.Addon {
	return &catalog.Addon{
		BaseEntity:  m.BaseModel.ToDomain(),
		ServiceID:   m.ServiceID,
		BusinessID:  m.BusinessID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Duration:    m.Duration,
		IsActive:    m.IsActive,
	}
}

// FromDomain populates the model from a domain Addon
func (m *AddonModel) FromDomain(a *catalog.Addon) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.ServiceID = a.ServiceID
	m.BusinessID = a.BusinessID
	m.Name = a.Name
	m.Description = a.Description
	m.Price = a.Price
	m.Duration = a.Duration
	m.IsActive = a.IsActive
}
