package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/business"
	"github.com/glambooking/backend/internal/domain/shared"
	infra "github.com/glambooking/backend/internal/infrastructure/billing"
	"github.com/glambooking/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// EventParser verifies and decodes webhook deliveries
type EventParser interface {
	Parse(payload []byte, signatureHeader string) (*infra.Event, error)
}

// WebhookResult reports what a delivery did
type WebhookResult struct {
	EventID   string `json:"eventId"`
	EventType string `json:"eventType"`
	Processed bool   `json:"processed"`
	Message   string `json:"message,omitempty"`
}

// WebhookService projects Stripe events onto subscriptions and business plans
type WebhookService struct {
	parser     EventParser
	subs       billing.SubscriptionRepository
	businesses business.Repository
	logger     *zap.Logger
}

// NewWebhookService creates a webhook service
func NewWebhookService(parser EventParser, subs billing.SubscriptionRepository, businesses business.Repository, logger *zap.Logger) *WebhookService {
	return &WebhookService{parser: parser, subs: subs, businesses: businesses, logger: logger}
}

// Process verifies and applies a delivery. Signature failures are validation
// errors. Events that reference unknown businesses are acknowledged unprocessed
// so the provider stops retrying; store failures are returned so it retries.
func (s *WebhookService) Process(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	event, err := s.parser.Parse(payload, signature)
	if err != nil {
		if errors.Is(err, infra.ErrInvalidSignature) {
			s.logger.Warn("Rejected webhook with invalid signature", zap.Error(err))
			return nil, shared.NewValidationError("Invalid webhook signature")
		}
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "stripe_webhook", "process",
		attribute.String(telemetry.AttrEventType, event.Type))
	defer span.End()

	result := &WebhookResult{EventID: event.ID, EventType: event.Type}
	switch event.Kind {
	case infra.EventSubscriptionChanged, infra.EventSubscriptionDeleted:
		err = s.applySubscription(ctx, event.Subscription, result)
	case infra.EventPaymentFailed:
		err = s.applyPaymentFailed(ctx, event.Subscription, result)
	default:
		result.Message = "Event type ignored"
	}
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to apply webhook event",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Processed Stripe webhook",
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type),
		zap.Bool("processed", result.Processed),
	)
	return result, nil
}

func (s *WebhookService) applySubscription(ctx context.Context, snap *infra.SubscriptionSnapshot, result *WebhookResult) error {
	sub, err := s.findSubscription(ctx, snap)
	if err != nil {
		return err
	}

	businessID := snap.BusinessID
	if sub != nil {
		businessID = sub.BusinessID
	}
	if businessID == uuid.Nil {
		return s.skip(result, "Subscription carries no business reference", snap)
	}

	b, err := s.businesses.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.skip(result, "Unknown business", snap)
		}
		return fmt.Errorf("load business: %w", err)
	}

	if sub == nil {
		sub, err = billing.NewSubscription(businessID, snap.Plan, snap.Status)
		if err != nil {
			return err
		}
	}
	if err := sub.Apply(snap.Plan, snap.Status, snap.CurrentPeriodEnd, snap.CancelAtPeriodEnd); err != nil {
		return err
	}
	sub.StripeSubscriptionID = snap.StripeSubscriptionID
	if snap.StripeCustomerID != "" {
		sub.StripeCustomerID = snap.StripeCustomerID
	}
	if err := s.subs.Save(ctx, sub); err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}

	plan := sub.Plan
	if sub.Status == billing.StatusCanceled {
		plan = billing.PlanFree
	}
	if b.Plan != plan {
		if err := b.SetPlan(plan); err != nil {
			return err
		}
		if err := s.businesses.Save(ctx, b); err != nil {
			return fmt.Errorf("save business plan: %w", err)
		}
	}

	result.Processed = true
	result.Message = "Subscription " + string(sub.Status)
	return nil
}

// findSubscription prefers the business reference, then the Stripe id
func (s *WebhookService) findSubscription(ctx context.Context, snap *infra.SubscriptionSnapshot) (*billing.Subscription, error) {
	var (
		sub *billing.Subscription
		err error
	)
	if snap.BusinessID != uuid.Nil {
		sub, err = s.subs.FindByBusinessID(ctx, snap.BusinessID)
	} else {
		sub, err = s.subs.FindByStripeSubscriptionID(ctx, snap.StripeSubscriptionID)
	}
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return sub, err
}

func (s *WebhookService) applyPaymentFailed(ctx context.Context, snap *infra.SubscriptionSnapshot, result *WebhookResult) error {
	sub, err := s.subs.FindByStripeSubscriptionID(ctx, snap.StripeSubscriptionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.skip(result, "Unknown subscription", snap)
		}
		return fmt.Errorf("load subscription: %w", err)
	}
	sub.MarkPastDue()
	if err := s.subs.Save(ctx, sub); err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	result.Processed = true
	result.Message = "Subscription " + string(sub.Status)
	return nil
}

func (s *WebhookService) skip(result *WebhookResult, reason string, snap *infra.SubscriptionSnapshot) error {
	s.logger.Warn("Webhook event not applied",
		zap.String("event_id", result.EventID),
		zap.String("reason", reason),
		zap.String("stripe_subscription_id", snap.StripeSubscriptionID),
		zap.String("business_id", snap.BusinessID.String()),
	)
	result.Message = reason
	return nil
}
