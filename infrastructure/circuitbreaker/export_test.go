package circuitbreaker

import "time"

// WithClock overrides the breaker clock in tests.
func WithClock(cfg Config, now func() time.Time) Config {
	cfg.now = now
	return cfg
}
