package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewUpstashRepositoryValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewUpstashRepository(UpstashConfig{Token: "token"}); err == nil {
		t.Fatal("expected error for empty url")
	}
	if _, err := NewUpstashRepository(UpstashConfig{URL: "https://example.upstash.io"}); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestUpstashRepositoryWriteAllUsesKey(t *testing.T) {
	t.Parallel()

	var gotCommand []any
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotCommand); err != nil {
			t.Errorf("decode command: %v", err)
		}
		fmt.Fprint(w, `{"result":"OK"}`)
	}))
	t.Cleanup(server.Close)

	repo, err := NewUpstashRepository(
		UpstashConfig{URL: server.URL, Token: "token"},
		WithHTTPClient(server.Client()),
		WithKey("test:memory"),
	)
	if err != nil {
		t.Fatalf("NewUpstashRepository() error = %v", err)
	}

	if err := repo.WriteAll(context.Background(), nil); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	if gotAuth != "Bearer token" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if len(gotCommand) != 3 {
		t.Fatalf("unexpected command: %#v", gotCommand)
	}
	if gotCommand[0] != "SET" || gotCommand[1] != "test:memory" || gotCommand[2] != "[]" {
		t.Fatalf("unexpected command: %#v", gotCommand)
	}
}

func TestUpstashRepositoryReadAll(t *testing.T) {
	t.Parallel()

	payload, err := json.Marshal(`[{"timestamp":"2026-01-01 10:00:00","demand":5,"reorder":7,"supplier":"acme","reliability":0.9}]`)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"result":%s}`, payload)
	}))
	t.Cleanup(server.Close)

	repo, err := NewUpstashRepository(UpstashConfig{URL: server.URL, Token: "token"}, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewUpstashRepository() error = %v", err)
	}

	entries, err := repo.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Supplier != "acme" || entries[0].Reliability == nil || *entries[0].Reliability != 0.9 {
		t.Fatalf("unexpected entries: %#v", entries)
	}
}

func TestUpstashRepositoryReadAllNullAndCorrupt(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		body string
		want error
	}{
		"missing key":  {body: `{"result":null}`, want: ErrMemoryNotFound},
		"not a string": {body: `{"result":42}`, want: ErrMemoryCorrupt},
		"broken json":  {body: `{"result":"[{"}`, want: ErrMemoryCorrupt},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tc.body)
			}))
			t.Cleanup(server.Close)

			repo, err := NewUpstashRepository(UpstashConfig{URL: server.URL, Token: "token"}, WithHTTPClient(server.Client()))
			if err != nil {
				t.Fatalf("NewUpstashRepository() error = %v", err)
			}
			_, err = repo.ReadAll(context.Background())
			if !errors.Is(err, tc.want) {
				t.Fatalf("ReadAll() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUpstashRepositoryHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"unauthorized"}`)
	}))
	t.Cleanup(server.Close)

	repo, err := NewUpstashRepository(UpstashConfig{URL: server.URL, Token: "bad"}, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewUpstashRepository() error = %v", err)
	}
	store, err := NewStore(repo)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if recall := store.Load(context.Background()); recall.Status != RecallDegraded {
		t.Fatalf("Load().Status = %s, want degraded", recall.Status)
	}
}
