package analytics

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	dombatch "github.com/kailas-cloud/labdex/internal/domain/batch"
)

type recalcFunc func(ctx context.Context) (dombatch.Summary, error)

func (f recalcFunc) RecalculateAll(ctx context.Context) (dombatch.Summary, error) { return f(ctx) }

func TestNewScheduler_InvalidSpec(t *testing.T) {
	if _, err := NewScheduler("not a cron", nil, zap.NewNop()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestScheduler_Next(t *testing.T) {
	s, err := NewScheduler("0 2 * * *", nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewScheduler() error: %v", err)
	}
	from := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	want := time.Date(2024, 1, 2, 2, 0, 0, 0, time.UTC)
	if got := s.Next(from); !got.Equal(want) {
		t.Errorf("Next() = %v, want %v", got, want)
	}
}

func TestScheduler_RunFiresAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	svc := recalcFunc(func(context.Context) (dombatch.Summary, error) {
		select {
		case fired <- struct{}{}:
		default:
		}
		return dombatch.Summary{}, nil
	})

	// every second
	s, err := NewScheduler("* * * * * * *", svc, zap.NewNop())
	if err != nil {
		t.Fatalf("NewScheduler() error: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler never fired")
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
