package models

import (
	"github.com/glambooking/backend/internal/domain/support"
	"github.com/google/uuid"
)

// SupportTicketModel is the persistence model for the support Ticket entity
type SupportTicketModel struct {
	BaseModel
	BusinessID *uuid.UUID `gorm:"type:uuid;index"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Subject    string     `gorm:"type:varchar(200);not null"`
	Message    string     `gorm:"type:text;not null"`
	Status     string     `gorm:"type:varchar(20);not null;index"`
	Priority   string     `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (SupportTicketModel) TableName() string {
	return "support_tickets"
}

// ToDomain converts the model to a domain Ticket
func (m *SupportTicketModel) ToDomain() *support.Ticket {
	return &support.Ticket{
		BaseEntity: m.BaseModel.ToDomain(),
		BusinessID: m.BusinessID,
		UserID:     m.UserID,
		Subject:    m.Subject,
		Message:    m.Message,
		Status:     support.TicketStatus(m.Status),
		Priority:   support.TicketPriority(m.Priority),
	}
}

// FromDomain populates the model from a domain Ticket
func (m *SupportTicketModel) FromDomain(t *support.Ticket) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.BusinessID = t.BusinessID
	m.UserID = t.UserID
	m.Subject = t.Subject
	m.Message = t.Message
	m.Status = string(t.Status)
	m.Priority = string(t.Priority)
}
