package testutil

import (
	"context"

	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/business"
	"github.com/glambooking/backend/internal/domain/catalog"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/domain/support"
	"github.com/glambooking/backend/internal/domain/team"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ptrOrNil returns the first mock return value as *T, tolerating an untyped nil
func ptrOrNil[T any](args mock.Arguments) *T {
	if v := args.Get(0); v != nil {
		return v.(*T)
	}
	return nil
}

// sliceOrNil returns the first mock return value as []T, tolerating an untyped nil
func sliceOrNil[T any](args mock.Arguments) []T {
	if v := args.Get(0); v != nil {
		return v.([]T)
	}
	return nil
}

// MockUserRepository is a testify mock for identity.UserRepository
type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[identity.User](args), args.Error(1)
}

func (m *MockUserRepository) FindByExternalID(ctx context.Context, externalID string) (*identity.User, error) {
	args := m.Called(ctx, externalID)
	return ptrOrNil[identity.User](args), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]identity.User, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[identity.User](args), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	return m.Called(ctx, u).Error(0)
}

// MockBusinessRepository is a testify mock for business.Repository
type MockBusinessRepository struct{ mock.Mock }

func (m *MockBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*business.Business, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[business.Business](args), args.Error(1)
}

func (m *MockBusinessRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*business.Business, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[business.Business](args), args.Error(1)
}

func (m *MockBusinessRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]business.Business, error) {
	args := m.Called(ctx, ownerID)
	return sliceOrNil[business.Business](args), args.Error(1)
}

func (m *MockBusinessRepository) Discover(ctx context.Context, filter business.DiscoverFilter) ([]business.Business, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[business.Business](args), args.Get(1).(int64), args.Error(2)
}

func (m *MockBusinessRepository) FindAll(ctx context.Context, filter shared.Filter) ([]business.Business, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[business.Business](args), args.Get(1).(int64), args.Error(2)
}

func (m *MockBusinessRepository) Save(ctx context.Context, b *business.Business) error {
	return m.Called(ctx, b).Error(0)
}

// MockWhiteLabelRepository is a testify mock for business.WhiteLabelRepository
type MockWhiteLabelRepository struct{ mock.Mock }

func (m *MockWhiteLabelRepository) FindByID(ctx context.Context, id uuid.UUID) (*business.WhiteLabelConfig, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[business.WhiteLabelConfig](args), args.Error(1)
}

func (m *MockWhiteLabelRepository) FindByBusinessID(ctx context.Context, businessID uuid.UUID) (*business.WhiteLabelConfig, error) {
	args := m.Called(ctx, businessID)
	return ptrOrNil[business.WhiteLabelConfig](args), args.Error(1)
}

func (m *MockWhiteLabelRepository) FindBySubdomain(ctx context.Context, subdomain string) (*business.WhiteLabelConfig, error) {
	args := m.Called(ctx, subdomain)
	return ptrOrNil[business.WhiteLabelConfig](args), args.Error(1)
}

func (m *MockWhiteLabelRepository) FindByCustomDomain(ctx context.Context, domain string) (*business.WhiteLabelConfig, error) {
	args := m.Called(ctx, domain)
	return ptrOrNil[business.WhiteLabelConfig](args), args.Error(1)
}

func (m *MockWhiteLabelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]business.WhiteLabelConfig, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[business.WhiteLabelConfig](args), args.Get(1).(int64), args.Error(2)
}

func (m *MockWhiteLabelRepository) Save(ctx context.Context, w *business.WhiteLabelConfig) error {
	return m.Called(ctx, w).Error(0)
}

// MockServiceRepository is a testify mock for catalog.ServiceRepository
type MockServiceRepository struct{ mock.Mock }

func (m *MockServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[catalog.Service](args), args.Error(1)
}

func (m *MockServiceRepository) FindActiveByBusiness(ctx context.Context, businessID uuid.UUID) ([]catalog.Service, error) {
	args := m.Called(ctx, businessID)
	return sliceOrNil[catalog.Service](args), args.Error(1)
}

func (m *MockServiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Service, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[catalog.Service](args), args.Get(1).(int64), args.Error(2)
}

func (m *MockServiceRepository) Save(ctx context.Context, s *catalog.Service) error {
	return m.Called(ctx, s).Error(0)
}

// MockAddonRepository is a testify mock for catalog.AddonRepository
type MockAddonRepository struct{ mock.Mock }

func (m *MockAddonRepository) FindActiveByService(ctx context.Context, businessID, serviceID uuid.UUID) ([]catalog.Addon, error) {
	args := m.Called(ctx, businessID, serviceID)
	return sliceOrNil[catalog.Addon](args), args.Error(1)
}

func (m *MockAddonRepository) Save(ctx context.Context, a *catalog.Addon) error {
	return m.Called(ctx, a).Error(0)
}

// MockStaffRepository is a testify mock for team.StaffRepository
type MockStaffRepository struct{ mock.Mock }

func (m *MockStaffRepository) FindActiveByBusiness(ctx context.Context, businessID uuid.UUID) ([]team.Staff, error) {
	args := m.Called(ctx, businessID)
	return sliceOrNil[team.Staff](args), args.Error(1)
}

func (m *MockStaffRepository) FindByBusinessAndEmail(ctx context.Context, businessID uuid.UUID, email string) (*team.Staff, error) {
	args := m.Called(ctx, businessID, email)
	return ptrOrNil[team.Staff](args), args.Error(1)
}

func (m *MockStaffRepository) Save(ctx context.Context, s *team.Staff) error {
	return m.Called(ctx, s).Error(0)
}

// MockInvitationRepository is a testify mock for team.InvitationRepository
type MockInvitationRepository struct{ mock.Mock }

func (m *MockInvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*team.Invitation, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[team.Invitation](args), args.Error(1)
}

func (m *MockInvitationRepository) FindPendingByBusinessAndEmail(ctx context.Context, businessID uuid.UUID, email string) (*team.Invitation, error) {
	args := m.Called(ctx, businessID, email)
	return ptrOrNil[team.Invitation](args), args.Error(1)
}

func (m *MockInvitationRepository) FindAll(ctx context.Context, filter team.InvitationFilter) ([]team.Invitation, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[team.Invitation](args), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvitationRepository) Save(ctx context.Context, inv *team.Invitation) error {
	return m.Called(ctx, inv).Error(0)
}

// MockSubscriptionRepository is a testify mock for billing.SubscriptionRepository
type MockSubscriptionRepository struct{ mock.Mock }

func (m *MockSubscriptionRepository) FindByBusinessID(ctx context.Context, businessID uuid.UUID) (*billing.Subscription, error) {
	args := m.Called(ctx, businessID)
	return ptrOrNil[billing.Subscription](args), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByStripeSubscriptionID(ctx context.Context, id string) (*billing.Subscription, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[billing.Subscription](args), args.Error(1)
}

func (m *MockSubscriptionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Subscription, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[billing.Subscription](args), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, sub *billing.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

// MockPayoutRepository is a testify mock for billing.PayoutRepository
type MockPayoutRepository struct{ mock.Mock }

func (m *MockPayoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payout, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[billing.Payout](args), args.Error(1)
}

func (m *MockPayoutRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Payout, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[billing.Payout](args), args.Get(1).(int64), args.Error(2)
}

func (m *MockPayoutRepository) Save(ctx context.Context, p *billing.Payout) error {
	return m.Called(ctx, p).Error(0)
}

// MockTicketRepository is a testify mock for support.TicketRepository
type MockTicketRepository struct{ mock.Mock }

func (m *MockTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*support.Ticket, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[support.Ticket](args), args.Error(1)
}

func (m *MockTicketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]support.Ticket, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[support.Ticket](args), args.Get(1).(int64), args.Error(2)
}

func (m *MockTicketRepository) Save(ctx context.Context, t *support.Ticket) error {
	return m.Called(ctx, t).Error(0)
}
