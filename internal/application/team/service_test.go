package team

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glambooking/backend/internal/application/access"
	appbilling "github.com/glambooking/backend/internal/application/billing"
	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/business"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/domain/team"
	"github.com/glambooking/backend/internal/infrastructure/config"
	"github.com/glambooking/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	users       *testutil.MockUserRepository
	businesses  *testutil.MockBusinessRepository
	invitations *testutil.MockInvitationRepository
	staff       *testutil.MockStaffRepository
	subs        *testutil.MockSubscriptionRepository
	service     *Service
	owner       *identity.User
	business    *business.Business
	now         time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:       new(testutil.MockUserRepository),
		businesses:  new(testutil.MockBusinessRepository),
		invitations: new(testutil.MockInvitationRepository),
		staff:       new(testutil.MockStaffRepository),
		subs:        new(testutil.MockSubscriptionRepository),
		now:         time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
	}
	f.owner = testutil.NewUser(t, "user_owner", identity.RoleOwner)
	f.business = testutil.NewBusiness(t, f.owner.ID, "Glow Salon")

	guard := access.NewGuard(f.users, f.businesses, f.invitations, config.SuperAdminConfig{}, zap.NewNop())
	f.service = NewService(Deps{
		Invitations:   f.invitations,
		Staff:         f.staff,
		Users:         f.users,
		Businesses:    f.businesses,
		Guard:         guard,
		Gate:          appbilling.NewGate(f.subs, zap.NewNop()),
		InvitationTTL: 48 * time.Hour,
		Logger:        zap.NewNop(),
	})
	f.service.now = func() time.Time { return f.now }

	f.users.On("FindByExternalID", mock.Anything, f.owner.ExternalID).Return(f.owner, nil)
	f.businesses.On("FindByID", mock.Anything, f.business.ID).Return(f.business, nil)
	f.businesses.On("FindByOwner", mock.Anything, f.owner.ID).Return([]business.Business{*f.business}, nil)
	return f
}

func (f *fixture) subscribe(t *testing.T, plan billing.Plan) {
	t.Helper()
	sub, err := billing.NewSubscription(f.business.ID, plan, billing.StatusActive)
	require.NoError(t, err)
	f.subs.On("FindByBusinessID", mock.Anything, f.business.ID).Return(sub, nil)
}

func (f *fixture) invitation(t *testing.T, email string) *team.Invitation {
	t.Helper()
	inv, err := team.NewInvitation(f.business.ID, email, "", 48*time.Hour, f.owner.ID)
	require.NoError(t, err)
	inv.ExpiresAt = f.now.Add(24 * time.Hour)
	f.invitations.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)
	return inv
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected a domain error, got %v", err)
	return domainErr.Code
}

func TestService_CreateInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending invitation", func(t *testing.T) {
		f := newFixture(t)
		f.subscribe(t, billing.PlanBasic)
		f.invitations.On("FindPendingByBusinessAndEmail", mock.Anything, f.business.ID, "new@example.com").
			Return(nil, shared.ErrNotFound)
		f.invitations.On("Save", mock.Anything, mock.AnythingOfType("*team.Invitation")).Return(nil)

		resp, err := f.service.CreateInvitation(ctx, testutil.Principal(f.owner), CreateInvitationRequest{Email: " New@Example.com "})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", resp.Email)
		assert.Equal(t, string(team.InvitationPending), resp.Status)
		assert.Equal(t, team.DefaultStaffRole, resp.Role)
		assert.Equal(t, "Glow Salon", resp.BusinessName)
		require.NotNil(t, resp.InvitedBy)
		assert.Equal(t, f.owner.ID, *resp.InvitedBy)
		assert.WithinDuration(t, time.Now().Add(48*time.Hour), resp.ExpiresAt, time.Minute)
	})

	t.Run("free plan is gated", func(t *testing.T) {
		f := newFixture(t)
		f.subs.On("FindByBusinessID", mock.Anything, f.business.ID).Return(nil, shared.ErrNotFound)

		_, err := f.service.CreateInvitation(ctx, testutil.Principal(f.owner), CreateInvitationRequest{Email: "new@example.com"})
		assert.ErrorIs(t, err, shared.ErrSubscriptionRequired)
		f.invitations.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate pending invitation", func(t *testing.T) {
		f := newFixture(t)
		f.subscribe(t, billing.PlanPro)
		existing := f.invitation(t, "dup@example.com")
		f.invitations.On("FindPendingByBusinessAndEmail", mock.Anything, f.business.ID, "dup@example.com").
			Return(existing, nil)

		_, err := f.service.CreateInvitation(ctx, testutil.Principal(f.owner), CreateInvitationRequest{Email: "dup@example.com"})
		assert.Equal(t, shared.CodeAlreadyExists, domainCode(t, err))
	})

	t.Run("an expired pending invitation does not block a new one", func(t *testing.T) {
		f := newFixture(t)
		f.subscribe(t, billing.PlanPro)
		stale := f.invitation(t, "again@example.com")
		stale.ExpiresAt = f.now.Add(-time.Hour)
		f.invitations.On("FindPendingByBusinessAndEmail", mock.Anything, f.business.ID, "again@example.com").
			Return(stale, nil)
		f.invitations.On("Save", mock.Anything, mock.AnythingOfType("*team.Invitation")).Return(nil)

		resp, err := f.service.CreateInvitation(ctx, testutil.Principal(f.owner), CreateInvitationRequest{Email: "again@example.com"})
		require.NoError(t, err)
		assert.NotEqual(t, stale.ID, resp.ID)
	})
}

func TestService_GetInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("pending", func(t *testing.T) {
		f := newFixture(t)
		inv := f.invitation(t, "staff@example.com")

		resp, err := f.service.GetInvitation(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "Glow Salon", resp.BusinessName)
	})

	t.Run("expired reads as gone even when stored pending", func(t *testing.T) {
		f := newFixture(t)
		inv := f.invitation(t, "staff@example.com")
		inv.ExpiresAt = f.now.Add(-time.Second)

		_, err := f.service.GetInvitation(ctx, inv.ID)
		assert.Equal(t, shared.CodeGone, domainCode(t, err))
	})

	t.Run("cancelled is gone", func(t *testing.T) {
		f := newFixture(t)
		inv := f.invitation(t, "staff@example.com")
		inv.Status = team.InvitationCancelled

		_, err := f.service.GetInvitation(ctx, inv.ID)
		assert.Equal(t, shared.CodeGone, domainCode(t, err))
	})

	t.Run("unknown", func(t *testing.T) {
		f := newFixture(t)
		id := testutil.NewTestUUID("missing-invitation")
		f.invitations.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.GetInvitation(ctx, id)
		assert.Equal(t, shared.CodeNotFound, domainCode(t, err))
	})
}

func TestService_CancelInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels a pending invitation", func(t *testing.T) {
		f := newFixture(t)
		inv := f.invitation(t, "staff@example.com")
		f.invitations.On("Save", mock.Anything, inv).Return(nil)

		require.NoError(t, f.service.CancelInvitation(ctx, testutil.Principal(f.owner), inv.ID))
		assert.Equal(t, team.InvitationCancelled, inv.Status)
		f.invitations.AssertCalled(t, "Save", mock.Anything, inv)
	})

	t.Run("a non-owner is forbidden and nothing changes", func(t *testing.T) {
		f := newFixture(t)
		inv := f.invitation(t, "staff@example.com")
		stranger := testutil.NewUser(t, "user_stranger", identity.RoleOwner)
		f.users.On("FindByExternalID", mock.Anything, stranger.ExternalID).Return(stranger, nil)

		err := f.service.CancelInvitation(ctx, testutil.Principal(stranger), inv.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.Equal(t, team.InvitationPending, inv.Status)
		f.invitations.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("completed invitation is gone and keeps its status", func(t *testing.T) {
		f := newFixture(t)
		inv := f.invitation(t, "staff@example.com")
		inv.Status = team.InvitationCompleted

		err := f.service.CancelInvitation(ctx, testutil.Principal(f.owner), inv.ID)
		assert.Equal(t, shared.CodeGone, domainCode(t, err))
		assert.Equal(t, team.InvitationCompleted, inv.Status)
		f.invitations.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("cancelling twice succeeds without a write", func(t *testing.T) {
		f := newFixture(t)
		inv := f.invitation(t, "staff@example.com")
		inv.Status = team.InvitationCancelled

		require.NoError(t, f.service.CancelInvitation(ctx, testutil.Principal(f.owner), inv.ID))
		f.invitations.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t)
		err := f.service.CancelInvitation(ctx, nil, testutil.NewTestUUID("any"))
		assert.ErrorIs(t, err, shared.ErrUnauthenticated)
	})
}

func TestService_CompleteInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("creates active staff and promotes the client", func(t *testing.T) {
		f := newFixture(t)
		invitee := testutil.NewUser(t, "user_invitee", identity.RoleClient)
		inv := f.invitation(t, invitee.Email)
		f.users.On("FindByExternalID", mock.Anything, invitee.ExternalID).Return(invitee, nil)
		f.users.On("Save", mock.Anything, invitee).Return(nil)
		f.staff.On("FindByBusinessAndEmail", mock.Anything, f.business.ID, invitee.Email).Return(nil, shared.ErrNotFound)

		var saved *team.Staff
		f.staff.On("Save", mock.Anything, mock.AnythingOfType("*team.Staff")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*team.Staff) }).
			Return(nil)
		f.invitations.On("Save", mock.Anything, inv).Return(nil)

		require.NoError(t, f.service.CompleteInvitation(ctx, testutil.Principal(invitee), inv.ID))

		require.NotNil(t, saved)
		assert.True(t, saved.IsActive)
		assert.Equal(t, f.business.ID, saved.BusinessID)
		require.NotNil(t, saved.UserID)
		assert.Equal(t, invitee.ID, *saved.UserID)
		assert.Equal(t, identity.RoleStaff, invitee.Role)
		assert.Equal(t, team.InvitationCompleted, inv.Status)
		require.NotNil(t, inv.CompletedBy)
		assert.Equal(t, invitee.ID, *inv.CompletedBy)
	})

	t.Run("re-activates an existing staff record", func(t *testing.T) {
		f := newFixture(t)
		invitee := testutil.NewUser(t, "user_returning", identity.RoleOwner)
		inv := f.invitation(t, invitee.Email)
		member, err := team.NewStaff(f.business.ID, "Returning", invitee.Email, "STAFF")
		require.NoError(t, err)
		member.IsActive = false

		f.users.On("FindByExternalID", mock.Anything, invitee.ExternalID).Return(invitee, nil)
		f.staff.On("FindByBusinessAndEmail", mock.Anything, f.business.ID, invitee.Email).Return(member, nil)
		f.staff.On("Save", mock.Anything, member).Return(nil)
		f.invitations.On("Save", mock.Anything, inv).Return(nil)

		require.NoError(t, f.service.CompleteInvitation(ctx, testutil.Principal(invitee), inv.ID))
		assert.True(t, member.IsActive)
		assert.Equal(t, identity.RoleOwner, invitee.Role, "owners keep their role")
		f.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("another recipient is forbidden", func(t *testing.T) {
		f := newFixture(t)
		intruder := testutil.NewUser(t, "user_intruder", identity.RoleClient)
		inv := f.invitation(t, "someone.else@example.com")
		f.users.On("FindByExternalID", mock.Anything, intruder.ExternalID).Return(intruder, nil)

		err := f.service.CompleteInvitation(ctx, testutil.Principal(intruder), inv.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.Equal(t, team.InvitationPending, inv.Status)
	})

	t.Run("expired invitation is gone", func(t *testing.T) {
		f := newFixture(t)
		invitee := testutil.NewUser(t, "user_late", identity.RoleClient)
		inv := f.invitation(t, invitee.Email)
		inv.ExpiresAt = f.now.Add(-time.Minute)
		f.users.On("FindByExternalID", mock.Anything, invitee.ExternalID).Return(invitee, nil)

		err := f.service.CompleteInvitation(ctx, testutil.Principal(invitee), inv.ID)
		assert.Equal(t, shared.CodeGone, domainCode(t, err))
		f.staff.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("staff write failure leaves the invitation pending", func(t *testing.T) {
		f := newFixture(t)
		invitee := testutil.NewUser(t, "user_retry", identity.RoleClient)
		inv := f.invitation(t, invitee.Email)
		f.users.On("FindByExternalID", mock.Anything, invitee.ExternalID).Return(invitee, nil)
		f.staff.On("FindByBusinessAndEmail", mock.Anything, f.business.ID, invitee.Email).Return(nil, shared.ErrNotFound)
		f.staff.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

		err := f.service.CompleteInvitation(ctx, testutil.Principal(invitee), inv.ID)
		require.Error(t, err)
		assert.Equal(t, team.InvitationPending, inv.Status)
		f.invitations.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_PublicStaff(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	member, err := team.NewStaff(f.business.ID, "Ava", "ava@example.com", "Stylist")
	require.NoError(t, err)
	f.businesses.On("FindActiveByID", mock.Anything, f.business.ID).Return(f.business, nil)
	f.staff.On("FindActiveByBusiness", mock.Anything, f.business.ID).Return([]team.Staff{*member}, nil)

	list, err := f.service.PublicStaff(ctx, f.business.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ava", list[0].Name)

	missing := testutil.NewTestUUID("inactive-business")
	f.businesses.On("FindActiveByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)
	_, err = f.service.PublicStaff(ctx, missing)
	assert.Equal(t, shared.CodeNotFound, domainCode(t, err))
}
