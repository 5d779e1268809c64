package oracle

import (
	"context"
	"errors"
	"time"

	"github.com/Arhamsiaf65/CityInsights/infrastructure/circuitbreaker"
	"github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	"github.com/Arhamsiaf65/CityInsights/infrastructure/retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Outcome labels recorded per call.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
	OutcomeOpen    = "circuit_open"
)

// Recorder receives call metrics. telemetry.Provider implements it.
type Recorder interface {
	RecordOracleCall(provider, outcome string, d time.Duration)
	SetBreakerState(provider string, state int)
}

// GuardConfig tunes the protections around a Generator.
type GuardConfig struct {
	Provider string
	Timeout  time.Duration
	Retry    retry.Config
	Breaker  circuitbreaker.Config
}

// Guard adds a timeout, a circuit breaker and retries to a Generator.
type Guard struct {
	next     Generator
	cfg      GuardConfig
	breaker  *circuitbreaker.Breaker
	recorder Recorder
	log      logger.Logger
	tracer   trace.Tracer
}

// NewGuard wraps next. recorder may be nil.
func NewGuard(next Generator, cfg GuardConfig, recorder Recorder, log logger.Logger) *Guard {
	g := &Guard{
		next:     next,
		cfg:      cfg,
		recorder: recorder,
		log:      log,
		tracer:   otel.Tracer("github.com/Arhamsiaf65/CityInsights/internal/oracle"),
	}

	if g.cfg.Retry.IsRetryable == nil {
		g.cfg.Retry.IsRetryable = IsRetryable
	}
	breakerCfg := cfg.Breaker
	if breakerCfg.IsFailure == nil {
		breakerCfg.IsFailure = func(err error) bool { return !errors.Is(err, context.Canceled) }
	}
	breakerCfg.OnStateChange = func(from, to circuitbreaker.State) {
		log.Warn("Oracle circuit breaker changed state",
			logger.String("provider", cfg.Provider),
			logger.String("from", from.String()),
			logger.String("to", to.String()))
		if recorder != nil {
			recorder.SetBreakerState(cfg.Provider, int(to))
		}
	}
	g.breaker = circuitbreaker.New(breakerCfg)
	return g
}

// Generate implements Generator.
func (g *Guard) Generate(ctx context.Context, segments []string) (string, error) {
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	ctx, span := g.tracer.Start(ctx, "oracle.Generate",
		trace.WithAttributes(attribute.String("oracle.provider", g.cfg.Provider)))
	defer span.End()

	start := time.Now()
	var out string
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		return retry.Do(ctx, g.cfg.Retry, func(ctx context.Context) error {
			var genErr error
			out, genErr = g.next.Generate(ctx, segments)
			return genErr
		})
	})

	outcome := OutcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, circuitbreaker.ErrOpen):
		outcome = OutcomeOpen
	case errors.Is(err, context.DeadlineExceeded):
		outcome = OutcomeTimeout
	default:
		outcome = OutcomeError
	}
	if g.recorder != nil {
		g.recorder.RecordOracleCall(g.cfg.Provider, outcome, time.Since(start))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return "", err
	}
	return out, nil
}

// State reports the breaker state.
func (g *Guard) State() circuitbreaker.State {
	return g.breaker.State()
}
