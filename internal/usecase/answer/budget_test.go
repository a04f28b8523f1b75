package answer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/labdex/internal/domain"
	"github.com/kailas-cloud/labdex/internal/repository/budget"
)

type memBudgetStore struct {
	mu     sync.Mutex
	counts map[budget.Period]int64
	addErr error
}

func (m *memBudgetStore) Add(_ context.Context, _ string, p budget.Period, _ time.Time, tokens int64) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[budget.Period]int64{}
	}
	m.counts[p] += tokens
	return nil
}

func (m *memBudgetStore) Used(_ context.Context, _ string, p budget.Period, _ time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[p], nil
}

func TestBudgetTracker_RejectWhenExceeded(t *testing.T) {
	bt := NewBudgetTracker("test", 100, 0, BudgetActionReject, zap.NewNop())
	bt.Record(100)

	if err := bt.Check(context.Background()); !errors.Is(err, domain.ErrAnswerQuotaExceeded) {
		t.Fatalf("expected ErrAnswerQuotaExceeded, got %v", err)
	}
}

func TestBudgetTracker_WarnWhenExceeded(t *testing.T) {
	bt := NewBudgetTracker("test", 100, 0, BudgetActionWarn, zap.NewNop())
	bt.Record(200)

	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error for warn action, got %v", err)
	}
}

func TestBudgetTracker_MonthlyReject(t *testing.T) {
	bt := NewBudgetTracker("test", 0, 500, BudgetActionReject, zap.NewNop())
	bt.Record(500)

	if err := bt.Check(context.Background()); !errors.Is(err, domain.ErrAnswerQuotaExceeded) {
		t.Fatalf("expected ErrAnswerQuotaExceeded for monthly limit, got %v", err)
	}
}

func TestBudgetTracker_Remaining(t *testing.T) {
	bt := NewBudgetTracker("test", 1000, 10000, BudgetActionWarn, zap.NewNop())
	bt.Record(300)

	if got := bt.RemainingDaily(); got != 700 {
		t.Errorf("daily remaining = %d, want 700", got)
	}
	if got := bt.RemainingMonthly(); got != 9700 {
		t.Errorf("monthly remaining = %d, want 9700", got)
	}

	bt.Record(5000)
	if got := bt.RemainingDaily(); got != 0 {
		t.Errorf("overspent daily remaining = %d, want 0", got)
	}
}

func TestBudgetTracker_Unlimited(t *testing.T) {
	bt := NewBudgetTracker("test", 0, 0, BudgetActionReject, zap.NewNop())
	bt.Record(999999999)

	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error for unlimited budget, got %v", err)
	}
	if bt.RemainingDaily() != -1 || bt.RemainingMonthly() != -1 {
		t.Error("expected -1 for unlimited budgets")
	}
}

func TestBudgetTracker_Rollover(t *testing.T) {
	now := time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)
	bt := NewBudgetTracker("test", 100, 1000, BudgetActionReject, zap.NewNop()).
		WithClock(func() time.Time { return now })

	bt.Record(100)
	if err := bt.Check(context.Background()); err == nil {
		t.Fatal("expected daily cap to reject")
	}

	now = now.Add(2 * time.Hour) // 2024-02-01
	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("new day should reset counters: %v", err)
	}
	if got := bt.RemainingMonthly(); got != 1000 {
		t.Errorf("new month remaining = %d, want 1000", got)
	}
}

func TestBudgetTracker_Store(t *testing.T) {
	store := &memBudgetStore{counts: map[budget.Period]int64{budget.Daily: 40, budget.Monthly: 400}}
	bt := NewBudgetTracker("test", 100, 1000, BudgetActionReject, zap.NewNop()).
		WithStore(context.Background(), store)

	if got := bt.RemainingDaily(); got != 60 {
		t.Errorf("loaded daily remaining = %d, want 60", got)
	}

	bt.Record(10)
	if store.counts[budget.Daily] != 50 || store.counts[budget.Monthly] != 410 {
		t.Errorf("persisted counts = %v", store.counts)
	}
}

func TestBudgetTracker_StoreFailureIsLogged(t *testing.T) {
	store := &memBudgetStore{addErr: errors.New("read only")}
	bt := NewBudgetTracker("test", 100, 0, BudgetActionReject, zap.NewNop()).
		WithStore(context.Background(), store)

	bt.Record(30)
	if got := bt.RemainingDaily(); got != 70 {
		t.Errorf("in-memory counter must still advance, remaining = %d", got)
	}
}

func TestBudgetTracker_Concurrent(t *testing.T) {
	bt := NewBudgetTracker("test", 0, 0, BudgetActionWarn, zap.NewNop())

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bt.Record(2)
			_ = bt.Check(context.Background())
		}()
	}
	wg.Wait()

	bt.mu.Lock()
	defer bt.mu.Unlock()
	if bt.dailyUsed != 100 {
		t.Errorf("dailyUsed = %d, want 100", bt.dailyUsed)
	}
}

func TestBudgetTracker_Snapshot(t *testing.T) {
	now := time.Date(2024, 5, 17, 15, 30, 0, 0, time.UTC)
	bt := NewBudgetTracker("groq", 500, 0, BudgetActionWarn, zap.NewNop()).
		WithClock(func() time.Time { return now })
	bt.Record(120)

	want := Snapshot{
		Provider:     "groq",
		Day:          time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC),
		Month:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		DailyUsed:    120,
		DailyLimit:   500,
		MonthlyUsed:  120,
		MonthlyLimit: 0,
	}
	if got := bt.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}
