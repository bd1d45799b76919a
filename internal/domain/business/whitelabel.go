package business

import (
	"context"
	"regexp"
	"strings"

	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/domain/tenancy"
	"github.com/google/uuid"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Branding holds the visual identity served to white-label storefronts
type Branding struct {
	CompanyName    string `json:"companyName,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	AccentColor    string `json:"accentColor,omitempty"`
	LogoURL        string `json:"logoUrl,omitempty"`
	FaviconURL     string `json:"faviconUrl,omitempty"`
	FontFamily     string `json:"fontFamily,omitempty"`
}

// Validate checks color values
func (b Branding) Validate() error {
	for _, c := range []string{b.PrimaryColor, b.SecondaryColor, b.AccentColor} {
		if c != "" && !hexColorRegex.MatchString(c) {
			return shared.NewValidationError("Invalid color value: " + c)
		}
	}
	return nil
}

// WhiteLabelConfig routes a subdomain and/or custom domain to one business
type WhiteLabelConfig struct {
	shared.BaseEntity
	BusinessID   uuid.UUID
	Subdomain    *string
	CustomDomain *string
	Branding     Branding
	IsActive     bool
}

// NewWhiteLabelConfig creates an inactive configuration for a business
func NewWhiteLabelConfig(businessID uuid.UUID) *WhiteLabelConfig {
	return &WhiteLabelConfig{
		BaseEntity: shared.NewBaseEntity(),
		BusinessID: businessID,
	}
}

// SetSubdomain assigns the tenant label; an empty value clears it
func (w *WhiteLabelConfig) SetSubdomain(label string) error {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		w.Subdomain = nil
		w.Touch()
		return nil
	}
	if !tenancy.IsValidSubdomainLabel(label) {
		return shared.NewValidationError("Invalid subdomain: " + label)
	}
	w.Subdomain = &label
	w.Touch()
	return nil
}

// SetCustomDomain assigns the custom domain; an empty value clears it.
// Domains the classifier would route as the primary domain or a subdomain are rejected.
func (w *WhiteLabelConfig) SetCustomDomain(domain string, hosts *tenancy.Classifier) error {
	domain = tenancy.NormalizeHost(domain)
	if domain == "" {
		w.CustomDomain = nil
		w.Touch()
		return nil
	}
	if !hosts.IsValidCustomDomain(domain) {
		return shared.NewValidationError("Invalid custom domain: " + domain)
	}
	w.CustomDomain = &domain
	w.Touch()
	return nil
}

// SetBranding replaces the branding attributes
func (w *WhiteLabelConfig) SetBranding(b Branding) error {
	if err := b.Validate(); err != nil {
		return err
	}
	w.Branding = b
	w.Touch()
	return nil
}

// ToggleActive flips the active flag and returns the new value
func (w *WhiteLabelConfig) ToggleActive() bool {
	w.IsActive = !w.IsActive
	w.Touch()
	return w.IsActive
}

// HasCustomDomain reports whether a custom domain is configured
func (w *WhiteLabelConfig) HasCustomDomain() bool {
	return w.CustomDomain != nil && *w.CustomDomain != ""
}

// Hosts returns the hostnames routed to this configuration
func (w *WhiteLabelConfig) Hosts(classifier *tenancy.Classifier) []string {
	var hosts []string
	if w.Subdomain != nil {
		hosts = append(hosts, classifier.SubdomainHosts(*w.Subdomain)...)
	}
	if w.CustomDomain != nil {
		hosts = append(hosts, *w.CustomDomain)
	}
	return hosts
}

// WhiteLabelRepository persists white-label configurations
type WhiteLabelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WhiteLabelConfig, error)
	FindByBusinessID(ctx context.Context, businessID uuid.UUID) (*WhiteLabelConfig, error)
	FindBySubdomain(ctx context.Context, subdomain string) (*WhiteLabelConfig, error)
	FindByCustomDomain(ctx context.Context, domain string) (*WhiteLabelConfig, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]WhiteLabelConfig, int64, error)
	Save(ctx context.Context, w *WhiteLabelConfig) error
}
