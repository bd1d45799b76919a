package models

import (
	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/business"
	"github.com/google/uuid"
)

// BusinessModel is the persistence model for the Business aggregate
type BusinessModel struct {
	BaseModel
	Name        string                 `gorm:"type:varchar(200);not null"`
	Description string                 `gorm:"type:text"`
	Address     string                 `gorm:"type:text"`
	Phone       string                 `gorm:"type:varchar(50)"`
	Email       string                 `gorm:"type:varchar(254)"`
	LogoURL     string                 `gorm:"type:varchar(500)"`
	Category    string                 `gorm:"type:varchar(100);index"`
	OwnerID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	Plan        string                 `gorm:"type:varchar(20);not null;default:'free'"`
	IsActive    bool                   `gorm:"not null"`
	WhiteLabel  *WhiteLabelConfigModel `gorm:"foreignKey:BusinessID"`
}

// TableName returns the table name for GORM
func (BusinessModel) TableName() string {
	return "businesses"
}

// ToDomain converts the model to a domain Business
func (m *BusinessModel) ToDomain() *business.Business {
	b := &business.Business{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		Address:     m.Address,
		Phone:       m.Phone,
		Email:       m.Email,
		LogoURL:     m.LogoURL,
		Category:    m.Category,
		OwnerID:     m.OwnerID,
		Plan:        billing.ParsePlan(m.Plan),
		IsActive:    m.IsActive,
	}
	if m.WhiteLabel != nil {
		b.WhiteLabel = m.WhiteLabel.ToDomain()
	}
	return b
}

// FromDomain populates the model from a domain Business. The white-label
// association is persisted through its own repository.
func (m *BusinessModel) FromDomain(b *business.Business) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Name = b.Name
	m.Description = b.Description
	m.Address = b.Address
	m.Phone = b.Phone
	m.Email = b.Email
	m.LogoURL = b.LogoURL
	m.Category = b.Category
	m.OwnerID = b.OwnerID
	m.Plan = string(b.Plan)
	m.IsActive = b.IsActive
}

// BusinessModelFromDomain creates a new model from a domain Business
func BusinessModelFromDomain(b *business.Business) *BusinessModel {
	m := &BusinessModel{}
	m.FromDomain(b)
	return m
}

// WhiteLabelConfigModel is the persistence model for WhiteLabelConfig
type WhiteLabelConfigModel struct {
	BaseModel
	BusinessID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Subdomain      *string   `gorm:"type:varchar(63);uniqueIndex"`
	CustomDomain   *string   `gorm:"type:varchar(253);uniqueIndex"`
	CompanyName    string    `gorm:"type:varchar(200)"`
	PrimaryColor   string    `gorm:"type:varchar(7)"`
	SecondaryColor string    `gorm:"type:varchar(7)"`
	AccentColor    string    `gorm:"type:varchar(7)"`
	LogoURL        string    `gorm:"type:varchar(500)"`
	FaviconURL     string    `gorm:"type:varchar(500)"`
	FontFamily     string    `gorm:"type:varchar(100)"`
	IsActive       bool      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WhiteLabelConfigModel) TableName() string {
	return "white_label_configs"
}

// ToDomain converts the model to a domain WhiteLabelConfig
func (m *WhiteLabelConfigModel) ToDomain() *business.WhiteLabelConfig {
	return &business.WhiteLabelConfig{
		BaseEntity:   m.BaseModel.ToDomain(),
		BusinessID:   m.BusinessID,
		Subdomain:    m.Subdomain,
		CustomDomain: m.CustomDomain,
		Branding: business.Branding{
			CompanyName:    m.CompanyName,
			PrimaryColor:   m.PrimaryColor,
			SecondaryColor: m.SecondaryColor,
			AccentColor:    m.AccentColor,
			LogoURL:        m.LogoURL,
			FaviconURL:     m.FaviconURL,
			FontFamily:     m.FontFamily,
		},
		IsActive: m.IsActive,
	}
}

// FromDomain populates the model from a domain WhiteLabelConfig
func (m *WhiteLabelConfigModel) FromDomain(w *business.WhiteLabelConfig) {
	m.FromDomainBaseEntity(w.BaseEntity)
	m.BusinessID = w.BusinessID
	m.Subdomain = w.Subdomain
	m.CustomDomain = w.CustomDomain
	m.CompanyName = w.Branding.CompanyName
	m.PrimaryColor = w.Branding.PrimaryColor
	m.SecondaryColor = w.Branding.SecondaryColor
	m.AccentColor = w.Branding.AccentColor
	m.LogoURL = w.Branding.LogoURL
	m.FaviconURL = w.Branding.FaviconURL
	m.FontFamily = w.Branding.FontFamily
	m.IsActive = w.IsActive
}
