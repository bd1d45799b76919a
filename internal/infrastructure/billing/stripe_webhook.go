// Package billing adapts Stripe webhook deliveries into subscription snapshots.
package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
)

// Metadata keys set on Stripe subscriptions at checkout
const (
	MetadataBusinessID = "business_id"
	MetadataPlan       = "plan"
)

var (
	// ErrNotConfigured is returned when no webhook secret is set
	ErrNotConfigured = errors.New("stripe webhook secret is not configured")
	// ErrInvalidSignature is returned when the payload fails signature verification
	ErrInvalidSignature = errors.New("invalid stripe signature")
)

// EventKind classifies the deliveries the platform acts on
type EventKind string

const (
	EventSubscriptionChanged EventKind = "subscription_changed"
	EventSubscriptionDeleted EventKind = "subscription_deleted"
	EventPaymentFailed       EventKind = "payment_failed"
	EventIgnored             EventKind = "ignored"
)

// SubscriptionSnapshot is the provider's view of a subscription at event time
type SubscriptionSnapshot struct {
	// BusinessID comes from subscription metadata; uuid.Nil when missing or malformed
	BusinessID           uuid.UUID
	StripeSubscriptionID string
	StripeCustomerID     string
	Plan                 domain.Plan
	Status               domain.SubscriptionStatus
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    bool
}

// Event is a verified webhook delivery
type Event struct {
	ID   string
	Type string
	Kind EventKind
	// Subscription is set for subscription events; for payment failures only
	// the Stripe ids are populated
	Subscription *SubscriptionSnapshot
}

// WebhookVerifier checks Stripe-Signature headers and decodes events
type WebhookVerifier struct {
	secret    string
	tolerance time.Duration
}

// NewWebhookVerifier creates a verifier for the configured signing secret
func NewWebhookVerifier(cfg config.StripeConfig) *WebhookVerifier {
	return &WebhookVerifier{
		secret:    cfg.WebhookSecret,
		tolerance: webhook.DefaultTolerance,
	}
}

// Parse verifies the payload signature and decodes the event
func (v *WebhookVerifier) Parse(payload []byte, signatureHeader string) (*Event, error) {
	if v.secret == "" {
		return nil, ErrNotConfigured
	}
	raw, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return decodeEvent(raw)
}

func decodeEvent(raw stripe.Event) (*Event, error) {
	event := &Event{ID: raw.ID, Type: string(raw.Type), Kind: EventIgnored}
	if raw.Data == nil {
		return event, nil
	}

	switch raw.Type {
	case stripe.EventTypeCustomerSubscriptionCreated,
		stripe.EventTypeCustomerSubscriptionUpdated,
		stripe.EventTypeCustomerSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(raw.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription event %s: %w", raw.ID, err)
		}
		event.Subscription = snapshotFromSubscription(&sub)
		event.Kind = EventSubscriptionChanged
		if raw.Type == stripe.EventTypeCustomerSubscriptionDeleted {
			event.Kind = EventSubscriptionDeleted
			event.Subscription.Status = domain.StatusCanceled
		}
	case stripe.EventTypeInvoicePaymentFailed:
		var inv stripe.Invoice
		if err := json.Unmarshal(raw.Data.Raw, &inv); err != nil {
			return nil, fmt.Errorf("decode invoice event %s: %w", raw.ID, err)
		}
		snapshot := &SubscriptionSnapshot{Status: domain.StatusPastDue}
		if inv.Subscription != nil {
			snapshot.StripeSubscriptionID = inv.Subscription.ID
		}
		if inv.Customer != nil {
			snapshot.StripeCustomerID = inv.Customer.ID
		}
		event.Subscription = snapshot
		event.Kind = EventPaymentFailed
	}
	return event, nil
}

func snapshotFromSubscription(sub *stripe.Subscription) *SubscriptionSnapshot {
	snapshot := &SubscriptionSnapshot{
		StripeSubscriptionID: sub.ID,
		Plan:                 planFromSubscription(sub),
		Status:               MapSubscriptionStatus(sub.Status),
		CancelAtPeriodEnd:    sub.CancelAtPeriodEnd,
	}
	if sub.Customer != nil {
		snapshot.StripeCustomerID = sub.Customer.ID
	}
	if id, err := uuid.Parse(sub.Metadata[MetadataBusinessID]); err == nil {
		snapshot.BusinessID = id
	}
	if sub.CurrentPeriodEnd > 0 {
		end := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
		snapshot.CurrentPeriodEnd = &end
	}
	return snapshot
}

// planFromSubscription prefers the plan metadata, then the first price lookup key
func planFromSubscription(sub *stripe.Subscription) domain.Plan {
	if plan, ok := sub.Metadata[MetadataPlan]; ok && plan != "" {
		return domain.ParsePlan(plan)
	}
	if sub.Items != nil {
		for _, item := range sub.Items.Data {
			if item != nil && item.Price != nil && item.Price.LookupKey != "" {
				return domain.ParsePlan(item.Price.LookupKey)
			}
		}
	}
	return domain.PlanFree
}

// MapSubscriptionStatus maps a Stripe subscription status onto the platform's statuses
func MapSubscriptionStatus(status stripe.SubscriptionStatus) domain.SubscriptionStatus {
	switch status {
	case stripe.SubscriptionStatusActive:
		return domain.StatusActive
	case stripe.SubscriptionStatusTrialing:
		return domain.StatusTrialing
	case stripe.SubscriptionStatusPastDue:
		return domain.StatusPastDue
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusIncompleteExpired:
		return domain.StatusCanceled
	case stripe.SubscriptionStatusIncomplete:
		return domain.StatusIncomplete
	case stripe.SubscriptionStatusUnpaid, stripe.SubscriptionStatusPaused:
		return domain.StatusUnpaid
	default:
		return domain.StatusIncomplete
	}
}
