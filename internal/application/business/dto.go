package business

import (
	"time"

	"github.com/glambooking/backend/internal/domain/business"
	"github.com/glambooking/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// BusinessResponse is a business as seen by its owner or a super-admin
type BusinessResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Address     string              `json:"address"`
	Phone       string              `json:"phone"`
	Email       string              `json:"email"`
	LogoURL     string              `json:"logoUrl"`
	Category    string              `json:"category"`
	OwnerID     uuid.UUID           `json:"ownerId"`
	Plan        string              `json:"plan"`
	IsActive    bool                `json:"isActive"`
	WhiteLabel  *WhiteLabelResponse `json:"whiteLabel,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// WhiteLabelResponse is a white-label configuration
type WhiteLabelResponse struct {
	ID           uuid.UUID         `json:"id"`
	BusinessID   uuid.UUID         `json:"businessId"`
	Subdomain    *string           `json:"subdomain"`
	CustomDomain *string           `json:"customDomain"`
	Branding     business.Branding `json:"branding"`
	IsActive     bool              `json:"isActive"`
	Hosts        []string          `json:"hosts"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// PublicBusinessResponse is the customer-facing view of a business
type PublicBusinessResponse struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Address       string             `json:"address"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email"`
	LogoURL       string             `json:"logoUrl"`
	Category      string             `json:"category"`
	CategoryLabel string             `json:"categoryLabel,omitempty"`
	Branding      *business.Branding `json:"branding,omitempty"`
}

// DiscoverRequest is the query of the public discovery listing
type DiscoverRequest struct {
	Search   string `form:"search" binding:"max=100"`
	Category string `form:"category" binding:"max=100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// DiscoverResponse is one page of discoverable businesses
type DiscoverResponse struct {
	Businesses []PublicBusinessResponse `json:"businesses"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"pageSize"`
}

// UpdateWhiteLabelRequest changes a business's white-label configuration.
// Nil fields are left unchanged; empty strings clear a hostname.
type UpdateWhiteLabelRequest struct {
	BusinessID   *uuid.UUID         `json:"businessId"`
	Subdomain    *string            `json:"subdomain" binding:"omitempty,max=63"`
	CustomDomain *string            `json:"customDomain" binding:"omitempty,max=253"`
	Branding     *business.Branding `json:"branding"`
	IsActive     *bool              `json:"isActive"`
}

// LogoUploadRequest asks for a presigned branding logo upload
type LogoUploadRequest struct {
	BusinessID  *uuid.UUID `json:"businessId"`
	ContentType string     `json:"contentType" binding:"required,oneof=image/png image/jpeg image/webp image/svg+xml"`
}

// ToBusinessResponse converts a domain business
func ToBusinessResponse(b *business.Business, hosts *tenancy.Classifier) BusinessResponse {
	resp := BusinessResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Address:     b.Address,
		Phone:       b.Phone,
		Email:       b.Email,
		LogoURL:     b.LogoURL,
		Category:    b.Category,
		OwnerID:     b.OwnerID,
		Plan:        string(b.Plan),
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.WhiteLabel != nil {
		wl := ToWhiteLabelResponse(b.WhiteLabel, hosts)
		resp.WhiteLabel = &wl
	}
	return resp
}

// ToBusinessResponses converts a slice of domain businesses
func ToBusinessResponses(list []business.Business, hosts *tenancy.Classifier) []BusinessResponse {
	out := make([]BusinessResponse, len(list))
	for i := range list {
		out[i] = ToBusinessResponse(&list[i], hosts)
	}
	return out
}

// ToWhiteLabelResponse converts a domain white-label configuration
func ToWhiteLabelResponse(w *business.WhiteLabelConfig, hosts *tenancy.Classifier) WhiteLabelResponse {
	return WhiteLabelResponse{
		ID:           w.ID,
		BusinessID:   w.BusinessID,
		Subdomain:    w.Subdomain,
		CustomDomain: w.CustomDomain,
		Branding:     w.Branding,
		IsActive:     w.IsActive,
		Hosts:        w.Hosts(hosts),
		UpdatedAt:    w.UpdatedAt,
	}
}

// ToPublicBusinessResponse converts a domain business for public pages.
// Branding is exposed only while the white-label configuration is active.
func ToPublicBusinessResponse(b *business.Business, caser cases.Caser) PublicBusinessResponse {
	resp := PublicBusinessResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Address:     b.Address,
		Phone:       b.Phone,
		Email:       b.Email,
		LogoURL:     b.LogoURL,
		Category:    b.Category,
	}
	if b.Category != "" {
		resp.CategoryLabel = caser.String(b.Category)
	}
	if b.WhiteLabel != nil && b.WhiteLabel.IsActive {
		branding := b.WhiteLabel.Branding
		resp.Branding = &branding
	}
	return resp
}
