package catalog

import (
	"time"

	"github.com/glambooking/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateServiceRequest represents a request to create a bookable service
type CreateServiceRequest struct {
	BusinessID  *uuid.UUID       `json:"businessId"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=2000"`
	Duration    *int             `json:"duration" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Category    string           `json:"category" binding:"max=100"`
}

// CreateAddonRequest represents a request to attach an addon to a service
type CreateAddonRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=2000"`
	Duration    int              `json:"duration" binding:"min=0"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
}

// ServiceResponse represents a service in API responses
type ServiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	BusinessID  uuid.UUID       `json:"businessId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Duration    int             `json:"duration"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// AddonResponse represents an addon in API responses
type AddonResponse struct {
	ID          uuid.UUID       `json:"id"`
	ServiceID   uuid.UUID       `json:"serviceId"`
	BusinessID  uuid.UUID       `json:"businessId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Duration    int             `json:"duration"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"isActive"`
}

// ToServiceResponse converts a domain service
func ToServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		BusinessID:  s.BusinessID,
		Name:        s.Name,
		Description: s.Description,
		Duration:    s.Duration,
		Price:       s.Price,
		Category:    s.Category,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToServiceResponses converts a slice of domain services
func ToServiceResponses(list []catalog.Service) []ServiceResponse {
	out := make([]ServiceResponse, len(list))
	for i := range list {
		out[i] = ToServiceResponse(&list[i])
	}
	return out
}

// ToAddonResponse converts a domain addon
func ToAddonResponse(a *catalog.Addon) AddonResponse {
	return AddonResponse{
		ID:          a.ID,
		ServiceID:   a.ServiceID,
		BusinessID:  a.BusinessID,
		Name:        a.Name,
		Description: a.Description,
		Duration:    a.Duration,
		Price:       a.Price,
		IsActive:    a.IsActive,
	}
}
