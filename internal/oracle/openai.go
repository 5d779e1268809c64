package oracle

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIOracle calls the OpenAI Chat Completions API.
type OpenAIOracle struct {
	client *openai.Client
	model  string
}

// NewOpenAIOracle builds a client for apiKey. baseURL may be empty.
func NewOpenAIOracle(apiKey, baseURL, model string) *OpenAIOracle {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIOracle{client: &client, model: model}
}

// Generate implements Generator.
func (o *OpenAIOracle) Generate(ctx context.Context, segments []string) (string, error) {
	system, user, err := splitPrompt(segments)
	if err != nil {
		return "", err
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(user))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completions: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
