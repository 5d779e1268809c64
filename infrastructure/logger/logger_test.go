package logger_test

import (
	"errors"
	"testing"

	"github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWith_AttachesFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.Wrap(zap.New(core)).With(logger.Intent("latest_posts"))

	log.Info("chat reply", logger.UserID("u-1"), logger.Error(errors.New("boom")))

	entries := logs.FilterMessage("chat reply").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["intent"] != "latest_posts" {
		t.Errorf("intent = %v, want latest_posts", fields["intent"])
	}
	if fields["user_id"] != "u-1" {
		t.Errorf("user_id = %v, want u-1", fields["user_id"])
	}
	if fields["error"] != "boom" {
		t.Errorf("error = %v, want boom", fields["error"])
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		cfg   logger.Config
		valid bool
	}{
		{name: "defaults", cfg: logger.Config{}, valid: true},
		{name: "debug console dev", cfg: logger.Config{Level: "debug", Format: "console", Development: true}, valid: true},
		{name: "bad output path", cfg: logger.Config{OutputPaths: []string{"/nonexistent-dir/x/y.log"}}, valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			l, err := logger.New(tc.cfg)
			if tc.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.valid && err == nil {
				t.Fatal("expected error for invalid config")
			}
			if l != nil {
				_ = l.Sync()
			}
		})
	}
}
