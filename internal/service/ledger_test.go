package service

import (
	"context"
	"testing"
	"time"

	"github.com/Predaotor/AI-content-Generator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_GetOrCreate(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	user := models.User{Email: "a@b.com", Username: "a", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	entry, err := ledger.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, entry.TokensUsed)

	// second call returns the same row
	again, err := ledger.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.TokenUsage{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLedger_ResetIfStale(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	user := models.User{Email: "a@b.com", Username: "a", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	yesterday := DayUTC(time.Now().Add(-24 * time.Hour))
	usage := models.TokenUsage{UserID: user.ID, TokensUsed: 900, LastUsed: yesterday}
	require.NoError(t, db.Create(&usage).Error)

	entry, err := ledger.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, ledger.ResetIfStale(ctx, entry, time.Now()))

	assert.Equal(t, 0, entry.TokensUsed)

	var stored models.TokenUsage
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, 0, stored.TokensUsed)
	assert.True(t, DayUTC(stored.LastUsed).Equal(DayUTC(time.Now())))
}

func TestLedger_ResetIfStale_SameDayNoop(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	user := models.User{Email: "a@b.com", Username: "a", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	usage := models.TokenUsage{UserID: user.ID, TokensUsed: 300, LastUsed: DayUTC(time.Now())}
	require.NoError(t, db.Create(&usage).Error)

	entry, err := ledger.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, ledger.ResetIfStale(ctx, entry, time.Now()))

	assert.Equal(t, 300, entry.TokensUsed)
}

func TestLedger_Debit_Boundary(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	user := models.User{Email: "a@b.com", Username: "a", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	usage := models.TokenUsage{UserID: user.ID, TokensUsed: 900, LastUsed: DayUTC(time.Now())}
	require.NoError(t, db.Create(&usage).Error)

	// 900 + 100 == 1000: allowed
	ok, err := ledger.Debit(ctx, user.ID, 100, 1000, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	// 1000 + 100 > 1000: refused, counter untouched
	ok, err = ledger.Debit(ctx, user.ID, 100, 1000, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	var stored models.TokenUsage
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, 1000, stored.TokensUsed)
}

func TestLedger_TokensUsedToday(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	user := models.User{Email: "a@b.com", Username: "a", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	// no row yet
	used, err := ledger.TokensUsedToday(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, used)

	// stale row counts as zero
	usage := models.TokenUsage{UserID: user.ID, TokensUsed: 700, LastUsed: DayUTC(time.Now().Add(-24 * time.Hour))}
	require.NoError(t, db.Create(&usage).Error)

	used, err = ledger.TokensUsedToday(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, used)

	// fresh row reports its counter
	require.NoError(t, db.Model(&models.TokenUsage{}).
		Where("user_id = ?", user.ID).
		Updates(map[string]interface{}{"last_used": DayUTC(time.Now())}).Error)

	used, err = ledger.TokensUsedToday(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 700, used)
}
