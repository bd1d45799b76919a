package support

import (
	"context"
	"strings"

	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TicketStatus is the handling state of a support ticket
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

// order of statuses; tickets move forward only
var ticketStatusRank = map[TicketStatus]int{
	TicketOpen:       0,
	TicketInProgress: 1,
	TicketResolved:   2,
	TicketClosed:     3,
}

// IsValid reports whether the status is known
func (s TicketStatus) IsValid() bool {
	_, ok := ticketStatusRank[s]
	return ok
}

// TicketPriority ranks ticket urgency
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityNormal TicketPriority = "normal"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

// Ticket is a support request raised by a user
type Ticket struct {
	shared.BaseEntity
	BusinessID *uuid.UUID
	UserID     uuid.UUID
	Subject    string
	Message    string
	Status     TicketStatus
	Priority   TicketPriority
}

// NewTicket opens a ticket
func NewTicket(userID uuid.UUID, businessID *uuid.UUID, subject, message string, priority TicketPriority) (*Ticket, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, shared.NewValidationError("Subject is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, shared.NewValidationError("Message is required")
	}
	switch priority {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
	case "":
		priority = PriorityNormal
	default:
		return nil, shared.NewValidationError("Invalid priority: " + string(priority))
	}
	return &Ticket{
		BaseEntity: shared.NewBaseEntity(),
		BusinessID: businessID,
		UserID:     userID,
		Subject:    subject,
		Message:    message,
		Status:     TicketOpen,
		Priority:   priority,
	}, nil
}

// TransitionTo moves the ticket forward. Closed tickets cannot change.
func (t *Ticket) TransitionTo(status TicketStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("Invalid ticket status: " + string(status))
	}
	if t.Status == TicketClosed {
		return shared.NewDomainError(shared.CodeInvalidState, "Ticket is closed")
	}
	if ticketStatusRank[status] < ticketStatusRank[t.Status] {
		return shared.NewDomainError(shared.CodeInvalidState, "Ticket cannot move back to "+string(status))
	}
	t.Status = status
	t.Touch()
	return nil
}

// TicketRepository persists support tickets
type TicketRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Ticket, int64, error)
	Save(ctx context.Context, t *Ticket) error
}
