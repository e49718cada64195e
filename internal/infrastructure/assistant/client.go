package assistant

import (
	"context"
	"errors"
	"fmt"

	"puskesmas-frontdesk/config"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// ErrUpstream wraps any failure of the hosted LLM API, including timeouts.
var ErrUpstream = errors.New("assistant upstream failure")

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Client calls an OpenAI-style chat completions endpoint. Model, temperature
// and token limit come from configuration and are fixed per request.
type Client struct {
	http *resty.Client
	cfg  config.AssistantConfig
	log  *logrus.Logger
}

func NewClient(cfg config.AssistantConfig, log *logrus.Logger) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http: http,
		cfg:  cfg,
		log:  log,
	}
}

// Ask forwards the system instruction and user prompt and returns the
// model's free-text answer.
func (c *Client) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	var result chatCompletionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post("/chat/completions")
	if err != nil {
		c.log.Warnf("Assistant request failed: %+v", err)
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if resp.IsError() {
		msg := resp.Status()
		if result.Error != nil {
			msg = result.Error.Message
		}
		c.log.Warnf("Assistant returned error status %d: %s", resp.StatusCode(), msg)
		return "", fmt.Errorf("%w: %s", ErrUpstream, msg)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrUpstream)
	}

	return result.Choices[0].Message.Content, nil
}
