package logger_test

import (
	"context"
	"testing"

	"github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
)

func TestWithContext_FromContext_RoundTrip(t *testing.T) {
	t.Parallel()

	nop := logger.NewNop()
	ctx := logger.WithContext(context.Background(), nop)

	if got := logger.FromContext(ctx); got != nop {
		t.Errorf("FromContext returned %v, want the stored logger", got)
	}
}

func TestFromContext_FallbackIsSingleton(t *testing.T) {
	t.Parallel()

	a := logger.FromContext(context.Background())
	b := logger.FromContext(context.Background())
	if a == nil || b == nil {
		t.Fatal("expected non-nil fallback logger")
	}
	if a != b {
		t.Error("FromContext returned different fallback instances")
	}

	// warn-level fallback must accept every call without panicking
	a.Debug("debug message")
	a.Warn("message with field", logger.String("key", "value"))
}

func TestWithContext_OverwritesPrevious(t *testing.T) {
	t.Parallel()

	first := mustTestLogger(t)
	second := mustTestLogger(t)

	ctx := logger.WithContext(context.Background(), first)
	ctx = logger.WithContext(ctx, second)

	if logger.FromContext(ctx) != second {
		t.Error("FromContext returned the first logger, want the second")
	}
}

func mustTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	l, err := logger.New(logger.Config{
		Level:       "warn",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return l
}
