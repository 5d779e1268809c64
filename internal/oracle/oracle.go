// Package oracle adapts hosted language models to the chatbot's
// text-in/text-out oracle.
package oracle

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Arhamsiaf65/CityInsights/infrastructure/retry"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go/v3"
)

// ErrEmptyPrompt is returned when no usable segment was given.
var ErrEmptyPrompt = errors.New("oracle: empty prompt")

// Provider names.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderStatic    = "static"
)

// Generator is implemented by every oracle.
type Generator interface {
	Generate(ctx context.Context, segments []string) (string, error)
}

// Static answers every prompt with an empty reply.
type Static struct{}

// Generate implements Generator.
func (Static) Generate(context.Context, []string) (string, error) {
	return "", nil
}

// splitPrompt uses the first segment as the system prompt and joins the
// rest into the user turn. A single segment becomes the user turn.
func splitPrompt(segments []string) (system, user string, err error) {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	switch len(parts) {
	case 0:
		return "", "", ErrEmptyPrompt
	case 1:
		return "", parts[0], nil
	default:
		return parts[0], strings.Join(parts[1:], "\n\n"), nil
	}
}

// IsRetryable reports rate limiting, provider 5xx and transient network
// errors.
func IsRetryable(err error) bool {
	var aErr *anthropic.Error
	if errors.As(err, &aErr) {
		return retryableStatus(aErr.StatusCode)
	}
	var oErr *openai.Error
	if errors.As(err, &oErr) {
		return retryableStatus(oErr.StatusCode)
	}
	return retry.IsTransient(err)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
