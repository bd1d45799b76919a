package billing

import "github.com/glambooking/backend/internal/domain/shared"

// Plan identifies a subscription plan
type Plan string

const (
	PlanFree       Plan = "free"
	PlanBasic      Plan = "basic"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// IsValid reports whether the plan is known
func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanBasic, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// IsPaid reports whether the plan is a non-free plan
func (p Plan) IsPaid() bool {
	return p.IsValid() && p != PlanFree
}

// ParsePlan parses a plan identifier, falling back to free for unknown or empty values
func ParsePlan(s string) Plan {
	p := Plan(s)
	if !p.IsValid() {
		return PlanFree
	}
	return p
}

// ValidatePlan returns a validation error for an unknown plan
func ValidatePlan(p Plan) error {
	if !p.IsValid() {
		return shared.NewValidationError("Invalid plan: " + string(p))
	}
	return nil
}

// Feature is a premium capability gated by subscription
type Feature string

const (
	FeatureTeamInvitations Feature = "team_invitations"
	FeatureAddons          Feature = "addons"
	FeatureWhiteLabel      Feature = "white_label"
	FeatureAnalytics       Feature = "analytics"
	FeatureCustomDomain    Feature = "custom_domain"
)

// AllFeatures lists every premium feature
func AllFeatures() []Feature {
	return []Feature{
		FeatureTeamInvitations,
		FeatureAddons,
		FeatureWhiteLabel,
		FeatureAnalytics,
		FeatureCustomDomain,
	}
}

// IsValid reports whether the feature is known
func (f Feature) IsValid() bool {
	for _, known := range AllFeatures() {
		if f == known {
			return true
		}
	}
	return false
}

// PlanFeatures returns the premium features unlocked by a plan when its subscription is in good standing
func PlanFeatures(p Plan) []Feature {
	switch p {
	case PlanBasic:
		return []Feature{FeatureTeamInvitations, FeatureAddons}
	case PlanPro:
		return []Feature{FeatureTeamInvitations, FeatureAddons, FeatureWhiteLabel, FeatureAnalytics}
	case PlanEnterprise:
		return AllFeatures()
	default:
		return nil
	}
}

// PlanIncludes reports whether plan p unlocks feature f
func PlanIncludes(p Plan, f Feature) bool {
	for _, feature := range PlanFeatures(p) {
		if feature == f {
			return true
		}
	}
	return false
}
