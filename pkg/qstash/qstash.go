package qstash

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
)

type Config struct {
	URL         string        `split_words:"true" default:"https://qstash.upstash.io"`
	Token       string        `split_words:"true"`
	Destination string        `split_words:"true"`
	Timeout     time.Duration `split_words:"true" default:"10s"`
}

// Enabled reports whether publishing is configured at all.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Token) != "" && strings.TrimSpace(c.Destination) != ""
}

type Client struct {
	http        *resty.Client
	destination string
}

var _ contractx.DecisionPublisher = (*Client)(nil)

type publishResponse struct {
	MessageID string `json:"messageId"`
}

type decisionMessage struct {
	RunID    string                `json:"run_id"`
	Decision contractx.MemoryEntry `json:"decision"`
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.URL)
	if baseURL == "" {
		return nil, errors.New("qstash url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, err
	}
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("qstash token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetAuthToken(token).
			SetHeader("Content-Type", "application/json"),
		destination: strings.TrimSpace(cfg.Destination),
	}
	return client, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// Publish enqueues body for delivery to destination (a URL or topic name) and
// returns the QStash message id.
func (c *Client) Publish(ctx context.Context, destination string, body any, headers map[string]string) (string, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return "", errors.New("qstash destination is required")
	}

	var out publishResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(body).
		SetResult(&out).
		Post("/v2/publish/" + destination)
	if err != nil {
		return "", fmt.Errorf("qstash publish: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusAccepted {
		return "", fmt.Errorf("qstash publish: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	return out.MessageID, nil
}

func (c *Client) PublishDecision(ctx context.Context, runID string, entry contractx.MemoryEntry) error {
	_, err := c.Publish(ctx, c.destination, decisionMessage{RunID: runID, Decision: entry}, map[string]string{
		"Upstash-Deduplication-Id": runID,
	})
	return err
}
