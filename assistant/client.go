package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultAPIURL = "https://api.cerebras.ai/v1/chat/completions"
	DefaultModel  = "llama3.1-8b"

	requestTimeout = 60 * time.Second
)

// ErrNotConfigured is returned when no API key has been set.
var ErrNotConfigured = errors.New("chat backend is not configured")

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ClientOpts struct {
	APIKey string
	APIURL string
	Model  string
}

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	httpClient *resty.Client
	apiKey     string
	apiURL     string
	model      string
}

func NewClient(opts ClientOpts) *Client {
	c := Client{
		apiKey: opts.APIKey,
		apiURL: DefaultAPIURL,
		model:  DefaultModel,
	}
	if opts.APIURL != "" {
		c.apiURL = opts.APIURL
	}
	if opts.Model != "" {
		c.model = opts.Model
	}
	c.httpClient = resty.New().
		SetTimeout(requestTimeout).
		SetHeader("Content-Type", "application/json")

	return &c
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Model returns the default model used when a request doesn't name one.
func (c *Client) Model() string {
	return c.model
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
}

// Complete sends the conversation to the backend and returns the generated
// answer text.
func (c *Client) Complete(ctx context.Context, messages []Message, model string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if model == "" {
		model = c.model
	}

	result := &completionResponse{}
	res, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetBody(completionRequest{
			Model:       model,
			Messages:    messages,
			Temperature: 0.3,
			MaxTokens:   512,
		}).
		SetResult(result).
		Post(c.apiURL)
	if _, err := handleError(res, err); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	choice := result.Choices[0]
	if choice.Message.Content != "" {
		return choice.Message.Content, nil
	}
	return choice.Text, nil
}

// handleError is a generic error handler for failing responses (>399 status
// code). Without this, failing responses would have nil error.
func handleError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return res, err
	}
	if res.IsError() {
		return res, fmt.Errorf("request failed: %s %s (status: %d)", res.Request.Method, res.Request.URL, res.StatusCode())
	}

	return res, nil
}
