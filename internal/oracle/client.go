package oracle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Config holds the scoring model connection settings.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
}

// Client is an OpenAI-compatible chat completion Scorer. JSON mode is
// requested and the response is schema-validated before use.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	logger      *slog.Logger
}

// NewClient creates a scoring client from the given configuration.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(apiCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger.With("system", "oracle"),
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Score submits one scoring request and returns the validated response.
func (c *Client) Score(ctx context.Context, req ScoreRequest) (*ScoreResponse, error) {
	start := time.Now()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: buildSystemMessage(req.SystemPrompt),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildUserMessage(req),
			},
		},
	})
	if err != nil {
		return nil, c.mapError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in completion", ErrMalformedResponse)
	}

	result, err := Parse(resp.Choices[0].Message.Content)
	if err != nil {
		c.logger.Error("score response rejected",
			"model", c.model,
			"error", err,
			"elapsed", time.Since(start),
		)
		return nil, err
	}

	c.logger.Info("score completed",
		"model", c.model,
		"score", result.Score,
		"confidence", result.Confidence,
		"elapsed", time.Since(start),
	)
	return result, nil
}

// mapError classifies transport failures. Rate limits, server errors, and
// network failures are retryable; other API rejections are not.
func (c *Client) mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500 {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("oracle request rejected: %w", err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func buildSystemMessage(systemPrompt string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nReturn ONLY JSON matching this schema, with no markdown fences or commentary:\n")
	b.WriteString(responseSchema)
	return b.String()
}

func buildUserMessage(req ScoreRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "POSITION: %s\n\n", req.FormTitle)
	fmt.Fprintf(&b, "REQUIREMENTS:\n%s\n\n", req.Requirements)

	b.WriteString("EVALUATION CATEGORIES:\n")
	for _, cat := range req.Categories {
		fmt.Fprintf(&b, "- %s (weight %d)", cat.Name, cat.Weight)
		if cat.Description != "" {
			fmt.Fprintf(&b, ": %s", cat.Description)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b,
		"\nSCORING THRESHOLDS: auto shortlist at %.0f, further review at %.0f\n\n",
		req.Thresholds.AutoShortlist,
		req.Thresholds.FurtherReview,
	)

	fmt.Fprintf(&b, "RESUME:\n%s\n", req.ResumeText)
	return b.String()
}
