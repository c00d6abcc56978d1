package scheduler

import (
	"context"
	"testing"
	"time"

	"spyglass/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                   {}
func (nopLogger) Info(msg string, args ...any)                    {}
func (nopLogger) Warn(msg string, args ...any)                    {}
func (nopLogger) Error(msg string, args ...any)                   {}
func (nopLogger) Fatal(msg string, args ...any)                   {}
func (n nopLogger) With(args ...any) logger.Interface             { return n }
func (n nopLogger) Named(name string) logger.Interface            { return n }
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

type stubAggregator struct{}

func (stubAggregator) AggregateDaily(ctx context.Context) error   { return nil }
func (stubAggregator) AggregateMonthly(ctx context.Context) error { return nil }

func TestNextDailyRunTime(t *testing.T) {
	s := NewMetricsScheduler(stubAggregator{}, nopLogger{})

	next := s.nextDailyRunTime()

	if !next.After(time.Now().Add(-time.Second)) {
		t.Errorf("nextDailyRunTime() = %v, want a future time", next)
	}
	if next.Hour() != 3 || next.Minute() != 0 {
		t.Errorf("nextDailyRunTime() = %v, want 03:00", next)
	}
	if time.Until(next) > 24*time.Hour {
		t.Errorf("nextDailyRunTime() = %v, more than a day away", next)
	}
}

func TestNextMonthlyRunTime(t *testing.T) {
	s := NewMetricsScheduler(stubAggregator{}, nopLogger{})

	next := s.nextMonthlyRunTime()

	if !next.After(time.Now()) {
		t.Errorf("nextMonthlyRunTime() = %v, want a future time", next)
	}
	if next.Day() != 1 {
		t.Errorf("nextMonthlyRunTime() day = %d, want 1", next.Day())
	}
	if next.Hour() != 4 {
		t.Errorf("nextMonthlyRunTime() hour = %d, want 4", next.Hour())
	}
}

func TestMetricsScheduler_StopIsIdempotent(t *testing.T) {
	s := NewMetricsScheduler(stubAggregator{}, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)

	done := make(chan struct{})
	go func() {
		s.Stop()
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop() did not return, goroutines still running")
	}
}
