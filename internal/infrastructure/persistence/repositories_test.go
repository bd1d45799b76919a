package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/catalog"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/domain/support"
	"github.com/glambooking/backend/internal/domain/team"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	owner, err := identity.NewUser("idp|owner", "owner@example.com", "Olive Owner")
	require.NoError(t, err)
	require.NoError(t, owner.PromoteTo(identity.RoleOwner))
	require.NoError(t, repo.Save(ctx, owner))

	client, err := identity.NewUser("idp|client", "client@example.com", "Cal Client")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, client))

	t.Run("find by external id", func(t *testing.T) {
		found, err := repo.FindByExternalID(ctx, "idp|owner")
		require.NoError(t, err)
		assert.Equal(t, owner.ID, found.ID)
		assert.Equal(t, identity.RoleOwner, found.Role)
	})

	t.Run("unknown external id", func(t *testing.T) {
		_, err := repo.FindByExternalID(ctx, "idp|ghost")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("external id is unique", func(t *testing.T) {
		dup, err := identity.NewUser("idp|owner", "other@example.com", "")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Save(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("list by role", func(t *testing.T) {
		users, total, err := repo.FindAll(ctx, identity.UserFilter{Filter: shared.DefaultFilter(), Role: identity.RoleClient})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, "client@example.com", users[0].Email)
	})
}

func TestGormServiceAndAddonRepositories(t *testing.T) {
	db := newTestDB(t)
	services := NewGormServiceRepository(db)
	addons := NewGormAddonRepository(db)
	ctx := context.Background()
	businessID := uuid.New()

	cut, err := catalog.NewService(businessID, "Cut", 45, decimal.NewFromInt(30))
	require.NoError(t, err)
	require.NoError(t, services.Save(ctx, cut))

	colour, err := catalog.NewService(businessID, "Colour", 90, decimal.RequireFromString("75.50"))
	require.NoError(t, err)
	colour.Deactivate()
	require.NoError(t, services.Save(ctx, colour))

	t.Run("only active services are public", func(t *testing.T) {
		list, err := services.FindActiveByBusiness(ctx, businessID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Cut", list[0].Name)
		assert.True(t, list[0].Price.Equal(decimal.NewFromInt(30)))
	})

	t.Run("admin listing includes inactive", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["business_id"] = businessID
		list, total, err := services.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, list, 2)
	})

	t.Run("addons are scoped by business and service", func(t *testing.T) {
		addon, err := catalog.NewAddon(cut, "Blow dry", 15, decimal.NewFromInt(10))
		require.NoError(t, err)
		require.NoError(t, addons.Save(ctx, addon))

		list, err := addons.FindActiveByService(ctx, businessID, cut.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Blow dry", list[0].Name)

		list, err = addons.FindActiveByService(ctx, uuid.New(), cut.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestGormInvitationRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvitationRepository(db)
	ctx := context.Background()
	businessID := uuid.New()
	inviter := uuid.New()

	pending, err := team.NewInvitation(businessID, "Stylist@Example.com", "", time.Hour, inviter)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, pending))

	cancelled, err := team.NewInvitation(businessID, "old@example.com", "STAFF", time.Hour, inviter)
	require.NoError(t, err)
	require.NoError(t, cancelled.Cancel(time.Now()))
	require.NoError(t, repo.Save(ctx, cancelled))

	elsewhere, err := team.NewInvitation(uuid.New(), "stylist@example.com", "STAFF", time.Hour, inviter)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, elsewhere))

	t.Run("round trip keeps status and expiry", func(t *testing.T) {
		found, err := repo.FindByID(ctx, cancelled.ID)
		require.NoError(t, err)
		assert.Equal(t, team.InvitationCancelled, found.Status)
		assert.WithinDuration(t, cancelled.ExpiresAt, found.ExpiresAt, time.Second)
	})

	t.Run("pending lookup is per business", func(t *testing.T) {
		found, err := repo.FindPendingByBusinessAndEmail(ctx, businessID, "stylist@example.com")
		require.NoError(t, err)
		assert.Equal(t, pending.ID, found.ID)

		_, err = repo.FindPendingByBusinessAndEmail(ctx, businessID, "old@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("list filters by business and status", func(t *testing.T) {
		list, total, err := repo.FindAll(ctx, team.InvitationFilter{
			Filter:     shared.DefaultFilter(),
			BusinessID: &businessID,
			Status:     team.InvitationPending,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, pending.ID, list[0].ID)

		_, total, err = repo.FindAll(ctx, team.InvitationFilter{Filter: shared.DefaultFilter()})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})
}

func TestGormStaffRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStaffRepository(db)
	ctx := context.Background()
	businessID := uuid.New()

	member, err := team.NewStaff(businessID, "Sam", "Sam@Example.com", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, member))

	found, err := repo.FindByBusinessAndEmail(ctx, businessID, "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, team.DefaultStaffRole, found.Role)
	assert.Nil(t, found.UserID)

	userID := uuid.New()
	found.LinkUser(userID)
	require.NoError(t, repo.Save(ctx, found))

	active, err := repo.FindActiveByBusiness(ctx, businessID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.NotNil(t, active[0].UserID)
	assert.Equal(t, userID, *active[0].UserID)
}

func TestGormBillingRepositories(t *testing.T) {
	db := newTestDB(t)
	subs := NewGormSubscriptionRepository(db)
	payouts := NewGormPayoutRepository(db)
	ctx := context.Background()
	businessID := uuid.New()

	sub, err := billing.NewSubscription(businessID, billing.PlanPro, billing.StatusActive)
	require.NoError(t, err)
	sub.StripeSubscriptionID = "sub_123"
	require.NoError(t, subs.Save(ctx, sub))

	t.Run("subscription by business", func(t *testing.T) {
		found, err := subs.FindByBusinessID(ctx, businessID)
		require.NoError(t, err)
		assert.Equal(t, billing.PlanPro, found.Plan)
		assert.Equal(t, "sub_123", found.StripeSubscriptionID)

		_, err = subs.FindByBusinessID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		byStripe, err := subs.FindByStripeSubscriptionID(ctx, "sub_123")
		require.NoError(t, err)
		assert.Equal(t, sub.ID, byStripe.ID)
	})

	t.Run("subscriptions filtered by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = string(billing.StatusPastDue)
		_, total, err := subs.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("payout status persists", func(t *testing.T) {
		start := time.Now().AddDate(0, -1, 0)
		p, err := billing.NewPayout(businessID, decimal.RequireFromString("120.25"), "", start, time.Now())
		require.NoError(t, err)
		require.NoError(t, payouts.Save(ctx, p))
		require.NoError(t, p.TransitionTo(billing.PayoutPaid, time.Now()))
		require.NoError(t, payouts.Save(ctx, p))

		filter := shared.DefaultFilter()
		filter.Filters["status"] = string(billing.PayoutPaid)
		list, total, err := payouts.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, "GBP", list[0].Currency)
		assert.NotNil(t, list[0].PaidAt)
	})
}

func TestGormTicketRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTicketRepository(db)
	ctx := context.Background()

	ticket, err := support.NewTicket(uuid.New(), nil, "Cannot upload logo", "The upload fails", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, ticket))
	require.NoError(t, ticket.TransitionTo(support.TicketInProgress))
	require.NoError(t, repo.Save(ctx, ticket))

	found, err := repo.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, support.TicketInProgress, found.Status)
	assert.Equal(t, support.PriorityNormal, found.Priority)
	assert.Nil(t, found.BusinessID)

	filter := shared.DefaultFilter()
	filter.Search = "logo"
	_, total, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestRepositories_StoreFailures(t *testing.T) {
	t.Run("not found maps to domain error", func(t *testing.T) {
		gormDB, mock, _ := newMockDB(t)
		repo := NewGormUserRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE external_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("idp|ghost", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByExternalID(context.Background(), "idp|ghost")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver errors are wrapped, not masked", func(t *testing.T) {
		gormDB, mock, _ := newMockDB(t)
		repo := NewGormWhiteLabelRepository(gormDB)
		boom := errors.New("connection reset by peer")

		mock.ExpectQuery(`SELECT \* FROM "white_label_configs" WHERE subdomain = \$1`).
			WithArgs("foo", 1).
			WillReturnError(boom)

		_, err := repo.FindBySubdomain(context.Background(), "foo")
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		var domainErr *shared.DomainError
		assert.False(t, errors.As(err, &domainErr))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count failure aborts listing", func(t *testing.T) {
		gormDB, mock, _ := newMockDB(t)
		repo := NewGormBusinessRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "businesses"`).
			WillReturnError(errors.New("timeout"))

		_, _, err := repo.FindAll(context.Background(), shared.DefaultFilter())
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

