//go:build integration

package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glambooking/backend/internal/domain/billing"
	"github.com/glambooking/backend/internal/domain/business"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/domain/team"
	"github.com/glambooking/backend/internal/infrastructure/config"
	"github.com/glambooking/backend/internal/infrastructure/migration"
	"github.com/glambooking/backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newPostgres starts a disposable Postgres, applies the migrations and returns a connection
func newPostgres(t *testing.T) *Database {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("glambooking_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := &config.DatabaseConfig{
		Host:           host,
		Port:           port.Int(),
		User:           "postgres",
		Password:       "postgres",
		DBName:         "glambooking_test",
		SSLMode:        "disable",
		MaxOpenConns:   5,
		MaxIdleConns:   2,
		MigrationsPath: migrationsPath(t),
	}

	m, err := migration.Open(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	db, err := NewDatabase(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func migrationsPath(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for range 5 {
		p := filepath.Join(dir, "migrations")
		if _, err := os.Stat(p); err == nil {
			return p
		}
		dir = filepath.Dir(dir)
	}
	t.Fatal("migrations directory not found")
	return ""
}

func TestPostgresRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping container test in short mode")
	}
	db := newPostgres(t)
	ctx := context.Background()
	require.NoError(t, db.Ping(ctx))

	users := NewGormUserRepository(db.DB)
	businesses := NewGormBusinessRepository(db.DB)
	whiteLabels := NewGormWhiteLabelRepository(db.DB)
	subscriptions := NewGormSubscriptionRepository(db.DB)
	invitations := NewGormInvitationRepository(db.DB)

	owner := testutil.NewUser(t, "user_pg_owner", identity.RoleOwner)
	require.NoError(t, users.Save(ctx, owner))

	plain := testutil.NewBusiness(t, owner.ID, "Plain Salon")
	branded := testutil.NewBusiness(t, owner.ID, "Branded Salon")
	other := testutil.NewBusiness(t, owner.ID, "Other Salon")
	for _, b := range []*business.Business{plain, branded, other} {
		require.NoError(t, businesses.Save(ctx, b))
	}

	t.Run("white label hostnames are unique and case-folded", func(t *testing.T) {
		wl := business.NewWhiteLabelConfig(branded.ID)
		require.NoError(t, wl.SetSubdomain("Branded"))
		require.NoError(t, wl.SetCustomDomain("Book.Branded.Example", testHosts))
		wl.IsActive = true
		require.NoError(t, whiteLabels.Save(ctx, wl))

		got, err := whiteLabels.FindBySubdomain(ctx, "branded")
		require.NoError(t, err)
		assert.Equal(t, branded.ID, got.BusinessID)

		got, err = whiteLabels.FindByCustomDomain(ctx, "book.branded.example")
		require.NoError(t, err)
		assert.Equal(t, branded.ID, got.BusinessID)

		dup := business.NewWhiteLabelConfig(other.ID)
		require.NoError(t, dup.SetSubdomain("branded"))
		assert.ErrorIs(t, whiteLabels.Save(ctx, dup), shared.ErrAlreadyExists)

		err = db.DB.Exec(`INSERT INTO white_label_configs (id, business_id, subdomain) VALUES (?, ?, ?)`,
			uuid.New(), other.ID, "BRANDED").Error
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("discover skips white-labelled businesses", func(t *testing.T) {
		list, total, err := businesses.Discover(ctx, business.DiscoverFilter{Filter: shared.Filter{}.Normalize()})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		for _, b := range list {
			assert.NotEqual(t, branded.ID, b.ID)
		}
	})

	t.Run("subscriptions by stripe id", func(t *testing.T) {
		sub, err := billing.NewSubscription(plain.ID, billing.PlanPro, billing.StatusActive)
		require.NoError(t, err)
		sub.StripeSubscriptionID = "sub_pg_123"
		require.NoError(t, subscriptions.Save(ctx, sub))

		got, err := subscriptions.FindByStripeSubscriptionID(ctx, "sub_pg_123")
		require.NoError(t, err)
		assert.Equal(t, plain.ID, got.BusinessID)
		assert.Equal(t, billing.PlanPro, got.Plan)

		_, err = subscriptions.FindByStripeSubscriptionID(ctx, "sub_missing")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("pending invitation lookup ignores terminal ones", func(t *testing.T) {
		cancelled, err := team.NewInvitation(plain.ID, "stylist@example.com", "stylist", team.DefaultInvitationTTL, owner.ID)
		require.NoError(t, err)
		require.NoError(t, cancelled.Cancel(time.Now()))
		require.NoError(t, invitations.Save(ctx, cancelled))

		pending, err := team.NewInvitation(plain.ID, "stylist@example.com", "stylist", team.DefaultInvitationTTL, owner.ID)
		require.NoError(t, err)
		require.NoError(t, invitations.Save(ctx, pending))

		got, err := invitations.FindPendingByBusinessAndEmail(ctx, plain.ID, "stylist@example.com")
		require.NoError(t, err)
		assert.Equal(t, pending.ID, got.ID)
	})
}
