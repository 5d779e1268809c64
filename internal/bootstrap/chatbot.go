package bootstrap

import (
	"github.com/Arhamsiaf65/CityInsights/infrastructure/circuitbreaker"
	infralogger "github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	"github.com/Arhamsiaf65/CityInsights/infrastructure/retry"
	"github.com/Arhamsiaf65/CityInsights/internal/chatbot"
	"github.com/Arhamsiaf65/CityInsights/internal/config"
	"github.com/Arhamsiaf65/CityInsights/internal/oracle"
	"github.com/Arhamsiaf65/CityInsights/internal/telemetry"
)

// SetupOracle builds the configured text generator behind a guard. Without an
// API key the static oracle is used and the chatbot serves its help menu in
// place of generated replies.
func SetupOracle(cfg *config.Config, tel *telemetry.Provider, log infralogger.Logger) chatbot.Oracle {
	oc := cfg.Oracle
	provider := oc.Provider
	if oc.APIKey == "" && provider != oracle.ProviderStatic {
		log.Warn("Oracle API key missing, using static oracle", infralogger.String("provider", provider))
		provider = oracle.ProviderStatic
	}

	var gen oracle.Generator
	switch provider {
	case oracle.ProviderAnthropic:
		gen = oracle.NewAnthropicOracle(oc.APIKey, oc.BaseURL, oc.Model, oc.MaxTokens)
	case oracle.ProviderOpenAI:
		gen = oracle.NewOpenAIOracle(oc.APIKey, oc.BaseURL, oc.Model)
	default:
		return oracle.Static{}
	}

	log.Info("Oracle configured",
		infralogger.String("provider", provider),
		infralogger.String("model", oc.Model),
	)
	return oracle.NewGuard(gen, oracle.GuardConfig{
		Provider: provider,
		Timeout:  oc.Timeout,
		Retry: retry.Config{
			MaxAttempts:  oc.MaxAttempts,
			InitialDelay: oc.RetryDelay,
		},
		Breaker: circuitbreaker.Config{
			FailureThreshold: oc.BreakerThreshold,
			Cooldown:         oc.BreakerCooldown,
		},
	}, tel, log)
}

// SetupChatbot builds the intent router over the store and oracle.
func SetupChatbot(
	cfg *config.Config,
	store interface {
		chatbot.ContentStore
		chatbot.AccountStore
	},
	gen chatbot.Oracle,
	tel *telemetry.Provider,
	log infralogger.Logger,
) *chatbot.Router {
	chatCfg := chatbot.Config{
		ResultLimit:    cfg.Chat.ResultLimit,
		SnippetLength:  cfg.Chat.SnippetLength,
		ExcerptLength:  cfg.Chat.ExcerptLength,
		TopAuthors:     cfg.Chat.TopAuthors,
		OracleTimeout:  cfg.Oracle.Timeout,
		HistoryTurns:   cfg.Chat.HistoryTurns,
		OracleGreeting: !cfg.Chat.StaticGreeting,
		Location:       cfg.Location(),
	}

	return chatbot.NewRouter(store, store, gen, chatCfg, log,
		chatbot.WithTracer(tel.Tracer),
		chatbot.WithIntentObserver(func(intent chatbot.Intent) {
			tel.RecordChatReply(string(intent))
		}),
	)
}
