package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Predaotor/AI-content-Generator/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger is the data-access layer for per-user daily token usage.
// It carries no quota policy; limits live in the admission gate.
type Ledger struct {
	db *gorm.DB
}

// NewLedger wraps the database handle.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// DayUTC truncates t to its calendar date in UTC, the fixed reference
// for daily resets.
func DayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetOrCreate loads the user's usage row, inserting an empty one if
// absent. The insert goes through ON CONFLICT DO NOTHING against the
// unique index on user_id, so concurrent first requests cannot create
// two rows.
func (l *Ledger) GetOrCreate(ctx context.Context, userID uint) (*models.TokenUsage, error) {
	entry := models.TokenUsage{
		UserID:   userID,
		LastUsed: DayUTC(time.Now()),
	}
	if err := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create usage row: %w", err)
	}

	var out models.TokenUsage
	if err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&out).Error; err != nil {
		return nil, fmt.Errorf("load usage row: %w", err)
	}
	return &out, nil
}

// ResetIfStale zeroes the counter when the stored day differs from
// today. Must run before any quota check or debit in a request.
func (l *Ledger) ResetIfStale(ctx context.Context, entry *models.TokenUsage, today time.Time) error {
	if DayUTC(entry.LastUsed).Equal(DayUTC(today)) {
		return nil
	}
	entry.TokensUsed = 0
	entry.LastUsed = DayUTC(today)
	if err := l.db.WithContext(ctx).Model(&models.TokenUsage{}).
		Where("user_id = ?", entry.UserID).
		Updates(map[string]interface{}{
			"tokens_used": 0,
			"last_used":   entry.LastUsed,
		}).Error; err != nil {
		return fmt.Errorf("reset usage: %w", err)
	}
	return nil
}

// Debit adds amount to the counter only if the result stays within
// limit, in a single conditional UPDATE. Returns false when the quota
// would be exceeded; the row is untouched in that case.
func (l *Ledger) Debit(ctx context.Context, userID uint, amount, limit int, today time.Time) (bool, error) {
	res := l.db.WithContext(ctx).Model(&models.TokenUsage{}).
		Where("user_id = ? AND tokens_used + ? <= ?", userID, amount, limit).
		Updates(map[string]interface{}{
			"tokens_used": gorm.Expr("tokens_used + ?", amount),
			"last_used":   DayUTC(today),
		})
	if res.Error != nil {
		return false, fmt.Errorf("debit usage: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// TokensUsedToday reports the counter for profile display. A row whose
// day has rolled over counts as zero; a missing row counts as zero.
func (l *Ledger) TokensUsedToday(ctx context.Context, userID uint) (int, error) {
	var entry models.TokenUsage
	err := l.db.WithContext(ctx).Where("user_id = ?", userID).First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("load usage row: %w", err)
	}
	if !DayUTC(entry.LastUsed).Equal(DayUTC(time.Now())) {
		return 0, nil
	}
	return entry.TokensUsed, nil
}
