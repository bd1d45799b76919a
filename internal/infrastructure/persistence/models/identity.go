package models

import "github.com/glambooking/backend/internal/domain/identity"

// UserModel is the persistence model for the User entity
type UserModel struct {
	BaseModel
	ExternalID string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Email      string `gorm:"type:varchar(254);index"`
	Name       string `gorm:"type:varchar(200)"`
	Role       string `gorm:"type:varchar(20);not null;default:'CLIENT'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity: m.BaseModel.ToDomain(),
		ExternalID: m.ExternalID,
		Email:      m.Email,
		Name:       m.Name,
		Role:       identity.Role(m.Role),
	}
}

// FromDomain populates the model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.ExternalID = u.ExternalID
	m.Email = u.Email
	m.Name = u.Name
	m.Role = string(u.Role)
}
