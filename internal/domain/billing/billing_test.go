package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFeatures(t *testing.T) {
	assert.Empty(t, PlanFeatures(PlanFree))
	assert.True(t, PlanIncludes(PlanBasic, FeatureTeamInvitations))
	assert.False(t, PlanIncludes(PlanBasic, FeatureWhiteLabel))
	assert.True(t, PlanIncludes(PlanPro, FeatureWhiteLabel))
	assert.False(t, PlanIncludes(PlanPro, FeatureCustomDomain))
	assert.True(t, PlanIncludes(PlanEnterprise, FeatureCustomDomain))
}

func TestParsePlan(t *testing.T) {
	assert.Equal(t, PlanPro, ParsePlan("pro"))
	assert.Equal(t, PlanFree, ParsePlan(""))
	assert.Equal(t, PlanFree, ParsePlan("platinum"))
}

func TestSubscription_IsEntitled(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name      string
		plan      Plan
		status    SubscriptionStatus
		periodEnd *time.Time
		want      bool
	}{
		{"active pro", PlanPro, StatusActive, &future, true},
		{"trialing basic", PlanBasic, StatusTrialing, nil, true},
		{"free plan active", PlanFree, StatusActive, nil, false},
		{"past due", PlanPro, StatusPastDue, &future, false},
		{"canceled", PlanPro, StatusCanceled, &future, false},
		{"period ended", PlanPro, StatusActive, &past, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := NewSubscription(uuid.New(), tt.plan, tt.status)
			require.NoError(t, err)
			sub.CurrentPeriodEnd = tt.periodEnd
			assert.Equal(t, tt.want, sub.IsEntitled(now))
		})
	}
}

func TestSubscription_MarkPastDue(t *testing.T) {
	sub, err := NewSubscription(uuid.New(), PlanPro, StatusActive)
	require.NoError(t, err)
	sub.MarkPastDue()
	assert.Equal(t, StatusPastDue, sub.Status)

	sub.Status = StatusCanceled
	sub.MarkPastDue()
	assert.Equal(t, StatusCanceled, sub.Status)
}

func TestNewSubscription_Validation(t *testing.T) {
	_, err := NewSubscription(uuid.Nil, PlanPro, StatusActive)
	assert.Error(t, err)
	_, err = NewSubscription(uuid.New(), Plan("gold"), StatusActive)
	assert.Error(t, err)
	_, err = NewSubscription(uuid.New(), PlanPro, SubscriptionStatus("weird"))
	assert.Error(t, err)
}

func TestPayout_TransitionTo(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	p, err := NewPayout(uuid.New(), decimal.NewFromInt(120), "", start, end)
	require.NoError(t, err)
	assert.Equal(t, "GBP", p.Currency)
	assert.Equal(t, PayoutPending, p.Status)

	require.NoError(t, p.TransitionTo(PayoutPaid, end))
	require.NotNil(t, p.PaidAt)
	assert.Equal(t, end, *p.PaidAt)

	assert.Error(t, p.TransitionTo(PayoutFailed, end))
	assert.Error(t, p.TransitionTo(PayoutStatus("lost"), end))

	_, err = NewPayout(uuid.New(), decimal.NewFromInt(-1), "GBP", start, end)
	assert.Error(t, err)
}
