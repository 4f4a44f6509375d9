package service

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/Predaotor/AI-content-Generator/internal/config"
	"github.com/Predaotor/AI-content-Generator/internal/database"
	"github.com/Predaotor/AI-content-Generator/internal/fedauth"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive and shared
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newTestIdentity(t *testing.T, db *gorm.DB, federated FederatedVerifier) *Identity {
	t.Helper()
	return NewIdentity(db, config.JWTConfig{Secret: "test-secret", ExpireMinutes: 30}, federated)
}

// fakeFederated returns fixed claims or an error, standing in for the
// Google verifier.
type fakeFederated struct {
	claims *fedauth.Claims
	err    error
}

func (f *fakeFederated) Verify(token string) (*fedauth.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

// fakeInvoker records calls and returns a canned result or error.
// The counter is atomic so concurrent gate tests stay race-free.
type fakeInvoker struct {
	result string
	err    error
	calls  atomic.Int32
}

func (f *fakeInvoker) Invoke(ctx context.Context, templateType, details string) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}
