package circuitbreaker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Arhamsiaf65/CityInsights/infrastructure/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func fail(context.Context) error { return errBoom }
func ok(context.Context) error { return nil }

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	clk := &clock{t: time.Unix(0, 0)}
	var transitions []string
	b := circuitbreaker.New(circuitbreaker.WithClock(circuitbreaker.Config{
		FailureThreshold: 2,
		Cooldown:         time.Minute,
		OnStateChange: func(from, to circuitbreaker.State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	}, clk.now))

	ctx := context.Background()
	require.ErrorIs(t, b.Execute(ctx, fail), errBoom)
	assert.Equal(t, circuitbreaker.StateClosed, b.State())
	require.ErrorIs(t, b.Execute(ctx, fail), errBoom)
	assert.Equal(t, circuitbreaker.StateOpen, b.State())

	called := false
	err := b.Execute(ctx, func(context.Context) error { called = true; return nil })
	require.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.False(t, called)

	clk.t = clk.t.Add(time.Minute)
	assert.Equal(t, circuitbreaker.StateHalfOpen, b.State())
	require.NoError(t, b.Execute(ctx, ok))
	assert.Equal(t, circuitbreaker.StateClosed, b.State())

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	clk := &clock{t: time.Unix(0, 0)}
	b := circuitbreaker.New(circuitbreaker.WithClock(circuitbreaker.Config{
		FailureThreshold: 1,
		Cooldown:         time.Second,
	}, clk.now))

	ctx := context.Background()
	_ = b.Execute(ctx, fail)
	clk.t = clk.t.Add(time.Second)
	require.ErrorIs(t, b.Execute(ctx, fail), errBoom)
	assert.Equal(t, circuitbreaker.StateOpen, b.State())
}

func TestBreaker_IgnoresNonFailures(t *testing.T) {
	t.Parallel()

	b := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 1,
		IsFailure:        func(err error) bool { return !errors.Is(err, context.Canceled) },
	})

	_ = b.Execute(context.Background(), func(context.Context) error { return context.Canceled })
	assert.Equal(t, circuitbreaker.StateClosed, b.State())
}

func TestBreaker_Reset(t *testing.T) {
	t.Parallel()

	b := circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 1})
	_ = b.Execute(context.Background(), fail)
	require.Equal(t, circuitbreaker.StateOpen, b.State())

	b.Reset()
	assert.Equal(t, circuitbreaker.StateClosed, b.State())
}
