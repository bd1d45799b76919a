// Package billing decides plan entitlements and applies billing-provider events.
package billing

import (
	"context"
	"errors"
	"time"

	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// GateDecision is the entitlement of a business at a point in time.
// It is advisory for UI overlays; protected actions call Require.
type GateDecision struct {
	BusinessID       uuid.UUID                  `json:"businessId"`
	Plan             billing.Plan               `json:"plan"`
	Status           billing.SubscriptionStatus `json:"status,omitempty"`
	Open             bool                       `json:"open"`
	Features         []billing.Feature          `json:"features"`
	CurrentPeriodEnd *time.Time                 `json:"currentPeriodEnd,omitempty"`
	Reason           string                     `json:"reason,omitempty"`
}

// Allows reports whether the decision unlocks feature f
func (d *GateDecision) Allows(f billing.Feature) bool {
	for _, feature := range d.Features {
		if feature == f {
			return true
		}
	}
	return false
}

// Gate evaluates subscription entitlements
type Gate struct {
	subs   billing.SubscriptionRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewGate creates a gate
func NewGate(subs billing.SubscriptionRepository, logger *zap.Logger) *Gate {
	return &Gate{subs: subs, now: time.Now, logger: logger}
}

// Evaluate returns the decision for businessID at now. A business without a
// subscription is on the free plan with the gate closed.
func (g *Gate) Evaluate(ctx context.Context, businessID uuid.UUID, now time.Time) (*GateDecision, error) {
	decision := &GateDecision{
		BusinessID: businessID,
		Plan:       billing.PlanFree,
		Features:   []billing.Feature{},
	}

	sub, err := g.subs.FindByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			decision.Reason = "No subscription"
			return decision, nil
		}
		return nil, err
	}

	decision.Plan = sub.Plan
	decision.Status = sub.Status
	decision.CurrentPeriodEnd = sub.CurrentPeriodEnd

	switch {
	case !sub.Plan.IsPaid():
		decision.Reason = "Free plan"
	case !sub.Status.IsGoodStanding():
		decision.Reason = "Subscription is " + string(sub.Status)
	case sub.IsExpired(now):
		decision.Reason = "Billing period has ended"
	default:
		decision.Open = true
		decision.Features = append(decision.Features, billing.PlanFeatures(sub.Plan)...)
	}
	return decision, nil
}

// Require fails with SUBSCRIPTION_REQUIRED unless the business is entitled to feature
func (g *Gate) Require(ctx context.Context, businessID uuid.UUID, feature billing.Feature) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "subscription_gate", "require",
		attribute.String(telemetry.AttrBusinessID, businessID.String()),
		attribute.String(telemetry.AttrFeature, string(feature)),
	)
	defer span.End()

	decision, err := g.Evaluate(ctx, businessID, g.now())
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if decision.Allows(feature) {
		return nil
	}
	g.logger.Debug("Feature gated",
		zap.String("business_id", businessID.String()),
		zap.String("feature", string(feature)),
		zap.String("plan", string(decision.Plan)),
		zap.String("reason", decision.Reason),
	)
	if !decision.Open {
		return shared.ErrSubscriptionRequired
	}
	return shared.NewDomainError(shared.CodeSubscriptionRequired,
		"Your plan does not include the "+string(feature)+" feature")
}
