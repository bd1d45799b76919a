// Package testutil provides shared test helpers: testify repository mocks,
// a sqlmock-backed GORM handle and gin request helpers.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/glambooking/backend/internal/domain/business"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockDB wraps a GORM handle backed by sqlmock with the postgres dialector
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB creates a mock database closed at test cleanup
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	sqlDB, m, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, DriverName: "postgres"}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err, "Failed to open GORM connection")
	t.Cleanup(func() { _ = sqlDB.Close() })

	return &MockDB{DB: db, Mock: m, SqlDB: sqlDB}
}

// ExpectationsWereMet verifies that all expectations were met
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet(), "Unmet database expectations")
}

// NewTestUUID generates a deterministic UUID from seed
func NewTestUUID(seed string) uuid.UUID {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return uuid.NewSHA1(namespace, []byte(seed))
}

// NewUser builds a user with the given external id and role
func NewUser(t *testing.T, externalID string, role identity.Role) *identity.User {
	t.Helper()
	u, err := identity.NewUser(externalID, externalID+"@example.com", "Test "+externalID)
	require.NoError(t, err)
	u.Role = role
	return u
}

// NewBusiness builds an active business owned by ownerID
func NewBusiness(t *testing.T, ownerID uuid.UUID, name string) *business.Business {
	t.Helper()
	b, err := business.NewBusiness(ownerID, name)
	require.NoError(t, err)
	return b
}

// Principal returns the principal for a user
func Principal(u *identity.User) *identity.Principal {
	return &identity.Principal{ExternalID: u.ExternalID, Email: u.Email}
}
