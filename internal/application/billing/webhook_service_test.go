package billing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/shared"
	infra "github.com/glambooking/backend/internal/infrastructure/billing"
	"github.com/glambooking/backend/internal/infrastructure/config"
	"github.com/glambooking/backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"
)

const webhookSecret = "whsec_service_test"

type webhookFixture struct {
	subs       *testutil.MockSubscriptionRepository
	businesses *testutil.MockBusinessRepository
	service    *WebhookService
}

func newWebhookFixture() *webhookFixture {
	f := &webhookFixture{
		subs:       new(testutil.MockSubscriptionRepository),
		businesses: new(testutil.MockBusinessRepository),
	}
	verifier := infra.NewWebhookVerifier(config.StripeConfig{WebhookSecret: webhookSecret})
	f.service = NewWebhookService(verifier, f.subs, f.businesses, zap.NewNop())
	return f
}

func signed(t *testing.T, eventType string, object map[string]any) ([]byte, string) {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"id":     "evt_svc_1",
		"object": "event",
		"type":   eventType,
		"data":   map[string]any{"object": object},
	})
	require.NoError(t, err)
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: webhookSecret, Timestamp: time.Now()})
	return payload, sp.Header
}

func TestWebhookService_CreatesSubscriptionAndSyncsPlan(t *testing.T) {
	f := newWebhookFixture()
	biz := testutil.NewBusiness(t, uuid.New(), "Glam Studio")
	f.businesses.On("FindByID", mock.Anything, biz.ID).Return(biz, nil)
	f.businesses.On("Save", mock.Anything, mock.AnythingOfType("*business.Business")).Return(nil)
	f.subs.On("FindByBusinessID", mock.Anything, biz.ID).Return(nil, shared.ErrNotFound)

	var saved *billing.Subscription
	f.subs.On("Save", mock.Anything, mock.AnythingOfType("*billing.Subscription")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*billing.Subscription) }).
		Return(nil)

	payload, header := signed(t, "customer.subscription.created", map[string]any{
		"id":       "sub_1",
		"object":   "subscription",
		"customer": "cus_1",
		"status":   "active",
		"metadata": map[string]string{"business_id": biz.ID.String(), "plan": "pro"},
	})

	result, err := f.service.Process(context.Background(), payload, header)
	require.NoError(t, err)
	assert.True(t, result.Processed)
	assert.Equal(t, "customer.subscription.created", result.EventType)

	require.NotNil(t, saved)
	assert.Equal(t, biz.ID, saved.BusinessID)
	assert.Equal(t, billing.PlanPro, saved.Plan)
	assert.Equal(t, billing.StatusActive, saved.Status)
	assert.Equal(t, "sub_1", saved.StripeSubscriptionID)
	assert.Equal(t, "cus_1", saved.StripeCustomerID)
	assert.Equal(t, billing.PlanPro, biz.Plan)
}

func TestWebhookService_DeletedDowngradesPlan(t *testing.T) {
	f := newWebhookFixture()
	biz := testutil.NewBusiness(t, uuid.New(), "Glam Studio")
	biz.Plan = billing.PlanPro
	existing, err := billing.NewSubscription(biz.ID, billing.PlanPro, billing.StatusActive)
	require.NoError(t, err)
	existing.StripeSubscriptionID = "sub_2"

	f.subs.On("FindByStripeSubscriptionID", mock.Anything, "sub_2").Return(existing, nil)
	f.subs.On("Save", mock.Anything, existing).Return(nil)
	f.businesses.On("FindByID", mock.Anything, biz.ID).Return(biz, nil)
	f.businesses.On("Save", mock.Anything, biz).Return(nil)

	payload, header := signed(t, "customer.subscription.deleted", map[string]any{
		"id":     "sub_2",
		"object": "subscription",
		"status": "canceled",
	})

	result, err := f.service.Process(context.Background(), payload, header)
	require.NoError(t, err)
	assert.True(t, result.Processed)
	assert.Equal(t, billing.StatusCanceled, existing.Status)
	assert.Equal(t, billing.PlanFree, biz.Plan)
}

func TestWebhookService_PaymentFailed(t *testing.T) {
	f := newWebhookFixture()
	existing, err := billing.NewSubscription(uuid.New(), billing.PlanBasic, billing.StatusActive)
	require.NoError(t, err)
	f.subs.On("FindByStripeSubscriptionID", mock.Anything, "sub_3").Return(existing, nil)
	f.subs.On("Save", mock.Anything, existing).Return(nil)

	payload, header := signed(t, "invoice.payment_failed", map[string]any{
		"id":           "in_3",
		"object":       "invoice",
		"subscription": "sub_3",
	})

	result, err := f.service.Process(context.Background(), payload, header)
	require.NoError(t, err)
	assert.True(t, result.Processed)
	assert.Equal(t, billing.StatusPastDue, existing.Status)
}

func TestWebhookService_UnknownBusinessIsAcknowledged(t *testing.T) {
	f := newWebhookFixture()
	unknown := uuid.New()
	f.subs.On("FindByBusinessID", mock.Anything, unknown).Return(nil, shared.ErrNotFound)
	f.businesses.On("FindByID", mock.Anything, unknown).Return(nil, shared.ErrNotFound)

	payload, header := signed(t, "customer.subscription.updated", map[string]any{
		"id":       "sub_4",
		"object":   "subscription",
		"status":   "active",
		"metadata": map[string]string{"business_id": unknown.String()},
	})

	result, err := f.service.Process(context.Background(), payload, header)
	require.NoError(t, err)
	assert.False(t, result.Processed)
	f.subs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWebhookService_StoreFailureIsReturned(t *testing.T) {
	f := newWebhookFixture()
	f.subs.On("FindByStripeSubscriptionID", mock.Anything, "sub_5").Return(nil, errors.New("db down"))

	payload, header := signed(t, "invoice.payment_failed", map[string]any{
		"id":           "in_5",
		"object":       "invoice",
		"subscription": "sub_5",
	})

	_, err := f.service.Process(context.Background(), payload, header)
	require.Error(t, err)
	var domainErr *shared.DomainError
	assert.False(t, errors.As(err, &domainErr))
}

func TestWebhookService_InvalidSignature(t *testing.T) {
	f := newWebhookFixture()
	payload, _ := signed(t, "customer.subscription.updated", map[string]any{"id": "sub_6"})

	_, err := f.service.Process(context.Background(), payload, "t=123,v1=bad")
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeValidation, domainErr.Code)
}

func TestWebhookService_IgnoredEvent(t *testing.T) {
	f := newWebhookFixture()
	payload, header := signed(t, "checkout.session.completed", map[string]any{"id": "cs_1", "object": "checkout.session"})

	result, err := f.service.Process(context.Background(), payload, header)
	require.NoError(t, err)
	assert.False(t, result.Processed)
	assert.Equal(t, "Event type ignored", result.Message)
}
