package answer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/labdex/internal/domain"
	"github.com/kailas-cloud/labdex/internal/repository/budget"
)

// BudgetAction defines behavior when the token budget is exhausted.
type BudgetAction string

const (
	// BudgetActionWarn logs a warning but lets the request through.
	BudgetActionWarn BudgetAction = "warn"
	// BudgetActionReject fails the request with domain.ErrAnswerQuotaExceeded.
	BudgetActionReject BudgetAction = "reject"
)

// BudgetStore persists token counters per provider and calendar window.
type BudgetStore interface {
	Add(ctx context.Context, provider string, p budget.Period, at time.Time, tokens int64) error
	Used(ctx context.Context, provider string, p budget.Period, at time.Time) (int64, error)
}

// BudgetTracker enforces daily and monthly token caps for one provider.
// Check reads in-memory counters only; Record updates them and writes behind to the store.
type BudgetTracker struct {
	mu           sync.Mutex
	dailyUsed    int64
	monthlyUsed  int64
	dailyLimit   int64
	monthlyLimit int64
	action       BudgetAction
	provider     string
	day          time.Time
	month        time.Time
	now          func() time.Time
	store        BudgetStore
	logger       *zap.Logger
}

// NewBudgetTracker creates a tracker. A zero limit means unlimited.
func NewBudgetTracker(
	provider string, dailyLimit, monthlyLimit int64,
	action BudgetAction, logger *zap.Logger,
) *BudgetTracker {
	b := &BudgetTracker{
		dailyLimit:   dailyLimit,
		monthlyLimit: monthlyLimit,
		action:       action,
		provider:     provider,
		now:          time.Now,
		logger:       logger,
	}
	b.day, b.month = windows(b.now())
	return b
}

// WithClock overrides the time source; counters restart in the new window.
func (b *BudgetTracker) WithClock(now func() time.Time) *BudgetTracker {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
	b.day, b.month = windows(now())
	return b
}

// WithStore attaches persistence and loads the current window's counters.
func (b *BudgetTracker) WithStore(ctx context.Context, store BudgetStore) *BudgetTracker {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.store = store
	now := b.now()
	if v, err := store.Used(ctx, b.provider, budget.Daily, now); err == nil {
		b.dailyUsed = v
	} else {
		b.logger.Warn("Failed to load daily token budget", zap.Error(err))
	}
	if v, err := store.Used(ctx, b.provider, budget.Monthly, now); err == nil {
		b.monthlyUsed = v
	} else {
		b.logger.Warn("Failed to load monthly token budget", zap.Error(err))
	}

	b.logger.Info("Token budget loaded",
		zap.String("provider", b.provider),
		zap.Int64("daily_used", b.dailyUsed),
		zap.Int64("monthly_used", b.monthlyUsed),
	)
	return b
}

// Check reports whether a new request may be sent.
func (b *BudgetTracker) Check(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rollover()

	dailyExceeded := b.dailyLimit > 0 && b.dailyUsed >= b.dailyLimit
	monthlyExceeded := b.monthlyLimit > 0 && b.monthlyUsed >= b.monthlyLimit
	if !dailyExceeded && !monthlyExceeded {
		return nil
	}

	if b.action == BudgetActionReject {
		return domain.ErrAnswerQuotaExceeded
	}

	b.logger.Warn("Token budget exceeded",
		zap.String("provider", b.provider),
		zap.Int64("daily_used", b.dailyUsed),
		zap.Int64("daily_limit", b.dailyLimit),
		zap.Int64("monthly_used", b.monthlyUsed),
		zap.Int64("monthly_limit", b.monthlyLimit),
	)
	return nil
}

// Record adds consumed tokens. Store failures are logged, never returned.
func (b *BudgetTracker) Record(tokens int64) {
	b.mu.Lock()
	b.rollover()
	b.dailyUsed += tokens
	b.monthlyUsed += tokens
	store := b.store
	now := b.now()
	b.mu.Unlock()

	if store == nil {
		return
	}

	// Detached from the request so a cancelled caller still gets its usage counted.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := store.Add(ctx, b.provider, budget.Daily, now, tokens); err != nil {
		b.logger.Warn("Failed to persist daily token budget", zap.Error(err))
	}
	if err := store.Add(ctx, b.provider, budget.Monthly, now, tokens); err != nil {
		b.logger.Warn("Failed to persist monthly token budget", zap.Error(err))
	}
}

// RemainingDaily returns tokens left today (-1 if unlimited).
func (b *BudgetTracker) RemainingDaily() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rollover()
	return remaining(b.dailyLimit, b.dailyUsed)
}

// RemainingMonthly returns tokens left this month (-1 if unlimited).
func (b *BudgetTracker) RemainingMonthly() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rollover()
	return remaining(b.monthlyLimit, b.monthlyUsed)
}

// rollover zeroes counters when the day or month changes. Callers hold mu.
func (b *BudgetTracker) rollover() {
	day, month := windows(b.now())
	if day.After(b.day) {
		b.dailyUsed = 0
		b.day = day
	}
	if month.After(b.month) {
		b.monthlyUsed = 0
		b.month = month
	}
}

func remaining(limit, used int64) int64 {
	if limit == 0 {
		return -1
	}
	return max(0, limit-used)
}

func windows(t time.Time) (day, month time.Time) {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Snapshot is a consistent view of both budget windows.
type Snapshot struct {
	Provider     string
	Day          time.Time
	Month        time.Time
	DailyUsed    int64
	DailyLimit   int64
	MonthlyUsed  int64
	MonthlyLimit int64
}

// Snapshot returns current usage after rolling over stale windows.
func (b *BudgetTracker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rollover()
	return Snapshot{
		Provider:     b.provider,
		Day:          b.day,
		Month:        b.month,
		DailyUsed:    b.dailyUsed,
		DailyLimit:   b.dailyLimit,
		MonthlyUsed:  b.monthlyUsed,
		MonthlyLimit: b.monthlyLimit,
	}
}
