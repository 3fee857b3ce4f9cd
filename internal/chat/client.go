package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rvanes/boodschappen/internal/translate"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-3.5-turbo"
)

// DefaultQuestion is the canned prompt behind the "ask for a recipe" button.
const DefaultQuestion = "Wat kan ik koken met tomaat en paprika?"

const suggestPromptFormat = "Geef 3 recepten die ik kan maken met alleen deze ingrediënten: %s."

// ErrMalformedResponse marks a completion payload without any choices.
var ErrMalformedResponse = errors.New("malformed chat response")

// Client sends single-turn chat completion requests. Each call is
// independent: no conversation history, no streaming, no retries.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithBaseURL(u string) Option {
	return func(cl *Client) {
		cl.baseURL = u
	}
}

func WithModel(m string) Option {
	return func(cl *Client) {
		cl.model = m
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Ask sends one user prompt and returns the first choice's text. A non-2xx
// response surfaces the body verbatim as the error text.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("chat client not configured: missing API key")
	}

	body, err := json.Marshal(completionRequest{
		Model:    c.model,
		Messages: []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errText, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat API error: %s", strings.TrimSpace(string(errText)))
	}

	var cr completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	return cr.Choices[0].Message.Content, nil
}

// SuggestFromList asks for recipe ideas based on the current list contents.
// Product names go through the shared translation table so the vocabulary
// matches the recipe search.
func (c *Client) SuggestFromList(ctx context.Context, products []string) (string, error) {
	prompt := fmt.Sprintf(suggestPromptFormat, translate.Products(products))
	return c.Ask(ctx, prompt)
}
