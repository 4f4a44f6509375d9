package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Predaotor/AI-content-Generator/internal/config"
	"github.com/Predaotor/AI-content-Generator/internal/models"
)

// Invoker performs the actual model call. *openai.Client is the
// production implementation.
type Invoker interface {
	Invoke(ctx context.Context, templateType, details string) (string, error)
}

// Gate admits generation requests: it verifies the session token,
// resolves the user, enforces the daily token quota and, only on a
// successful upstream call, debits the ledger.
type Gate struct {
	identity *Identity
	ledger   *Ledger
	invoker  Invoker
	limit    int
	cost     int

	mu        sync.Mutex
	userLocks map[uint]*sync.Mutex
}

// NewGate wires the admission gate. Limits come from configuration, not
// from the size of generated content.
func NewGate(identity *Identity, ledger *Ledger, invoker Invoker, cfg config.QuotaConfig) *Gate {
	limit := cfg.DailyLimit
	if limit <= 0 {
		limit = 1000
	}
	cost := cfg.TokensPerOutput
	if cost <= 0 {
		cost = 100
	}
	return &Gate{
		identity:  identity,
		ledger:    ledger,
		invoker:   invoker,
		limit:     limit,
		cost:      cost,
		userLocks: make(map[uint]*sync.Mutex),
	}
}

// userLock returns the mutex serializing the read-check-debit sequence
// for one user. The map only grows; one mutex per active user is cheap.
func (g *Gate) userLock(userID uint) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	lock, ok := g.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		g.userLocks[userID] = lock
	}
	return lock
}

// AdmitAndGenerate runs the full admission sequence for one generation
// request and returns the generated content.
//
// The per-user lock covers the quota pre-check and the post-success
// debit but is never held across the upstream call; the debit is a
// conditional update that re-validates the quota on its own.
func (g *Gate) AdmitAndGenerate(ctx context.Context, sessionToken, templateType, details string) (string, error) {
	email, err := g.identity.VerifySessionToken(sessionToken)
	if err != nil {
		return "", err
	}

	user, err := g.identity.ResolveUser(ctx, email)
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", ErrUserInactive
	}

	if err := g.checkQuota(ctx, user); err != nil {
		return "", err
	}

	// upstream call runs without any lock held
	content, err := g.invoker.Invoke(ctx, templateType, details)
	if err != nil {
		// failure is free of charge: the ledger was not touched
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if err := g.debit(ctx, user); err != nil {
		return "", err
	}
	return content, nil
}

// checkQuota loads (or lazily creates) the user's ledger row, applies
// the daily reset and refuses the request when the next output would
// exceed the limit. No debit happens here.
func (g *Gate) checkQuota(ctx context.Context, user *models.User) error {
	lock := g.userLock(user.ID)
	lock.Lock()
	defer lock.Unlock()

	entry, err := g.ledger.GetOrCreate(ctx, user.ID)
	if err != nil {
		return err
	}
	if err := g.ledger.ResetIfStale(ctx, entry, time.Now()); err != nil {
		return err
	}
	if entry.TokensUsed+g.cost > g.limit {
		return ErrQuotaExceeded
	}
	return nil
}

// debit charges the cost after a successful generation. The conditional
// update re-checks the limit, so two requests that both passed the
// pre-check cannot jointly overshoot it.
func (g *Gate) debit(ctx context.Context, user *models.User) error {
	lock := g.userLock(user.ID)
	lock.Lock()
	defer lock.Unlock()

	ok, err := g.ledger.Debit(ctx, user.ID, g.cost, g.limit, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrQuotaExceeded
	}
	return nil
}
