package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
)

const (
	defaultUpstashKey    = "supplychain:memory"
	maxResponseSizeBytes = 2 << 20
)

type UpstashConfig struct {
	URL     string
	Token   string
	Timeout time.Duration `default:"10s"`
}

// UpstashOption customizes UpstashRepository.
type UpstashOption func(*UpstashRepository)

func WithKey(key string) UpstashOption {
	return func(r *UpstashRepository) {
		trimmed := strings.TrimSpace(key)
		if trimmed != "" {
			r.key = trimmed
		}
	}
}

func WithHTTPClient(client *http.Client) UpstashOption {
	return func(r *UpstashRepository) {
		if client != nil {
			r.httpClient = client
		}
	}
}

// UpstashRepository stores the whole log under one Upstash Redis key via the REST API.
type UpstashRepository struct {
	baseURL    string
	token      string
	key        string
	httpClient *http.Client
}

type redisRESTResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

func NewUpstashRepository(cfg UpstashConfig, opts ...UpstashOption) (*UpstashRepository, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("upstash redis url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid redis rest url: %w", err)
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("upstash redis token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	repo := &UpstashRepository{
		baseURL: baseURL,
		token:   token,
		key:     defaultUpstashKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(repo)
		}
	}
	return repo, nil
}

func (r *UpstashRepository) ReadAll(ctx context.Context) ([]contractx.MemoryEntry, error) {
	resp, err := r.exec(ctx, []any{"GET", r.key})
	if err != nil {
		return nil, err
	}

	result := bytes.TrimSpace(resp.Result)
	if len(result) == 0 || bytes.Equal(result, []byte("null")) {
		return nil, ErrMemoryNotFound
	}

	var encoded string
	if err := json.Unmarshal(result, &encoded); err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", ErrMemoryCorrupt, err)
	}

	var entries []contractx.MemoryEntry
	if err := json.Unmarshal([]byte(encoded), &entries); err != nil {
		return nil, fmt.Errorf("%w: unmarshal entries: %v", ErrMemoryCorrupt, err)
	}
	return entries, nil
}

func (r *UpstashRepository) WriteAll(ctx context.Context, entries []contractx.MemoryEntry) error {
	if entries == nil {
		entries = []contractx.MemoryEntry{}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal memory log: %w", err)
	}
	_, err = r.exec(ctx, []any{"SET", r.key, string(payload)})
	return err
}

func (r *UpstashRepository) exec(ctx context.Context, command []any) (*redisRESTResponse, error) {
	body, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("marshal redis command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build redis request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute redis request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read redis response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("redis http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed redisRESTResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode redis response: %w", err)
	}
	if parsed.Error != "" {
		return nil, errors.New(parsed.Error)
	}
	return &parsed, nil
}
