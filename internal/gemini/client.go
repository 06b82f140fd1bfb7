// Package gemini analyzes prescription and pill images with the Gemini API,
// reached through its OpenAI-compatible chat-completions endpoint.
package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

	// DefaultModel is the multimodal model used for both analysis flows.
	DefaultModel = "gemini-3-flash-preview"
)

// Client wraps the openai-go SDK pointed at Gemini. It imposes no timeout or
// retry policy of its own; the transport default stands and callers cancel
// by abandoning the context.
type Client struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewClient creates a Gemini client. baseURL and model fall back to the
// defaults when empty.
func NewClient(baseURL, apiKey, model string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrCredentialMissing
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &Client{
		client: &client,
		model:  model,
		logger: logger,
	}, nil
}

// Complete sends a chat completion request requiring a JSON object response.
// An optional temperature overrides the model default.
func (c *Client) Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, temperature ...float64) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}
	if len(temperature) > 0 {
		params.Temperature = openai.Float(temperature[0])
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from Gemini")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in response")
	}

	c.logger.Info("Gemini request completed",
		zap.String("model", c.model),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("request_time", time.Since(start)),
	)

	return content, nil
}
