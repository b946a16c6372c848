package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewProviderClientValidation(t *testing.T) {
	if _, err := NewProviderClient("groq", "key", "model", "", time.Second); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
	if _, err := NewProviderClient(ProviderOpenAI, "", "gpt-4o-mini", "", time.Second); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestCompleteOpenAI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Fatalf("unexpected authorization header: %s", auth)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["model"] != "gpt-4o-mini" {
			t.Fatalf("unexpected model: %v", req["model"])
		}
		if req["temperature"] != 0.1 {
			t.Fatalf("expected temperature 0.1, got %v", req["temperature"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "summary text"}},
			},
		})
	}))
	defer server.Close()

	client, err := NewProviderClient(ProviderOpenAI, "test-key", "gpt-4o-mini", server.URL, 10*time.Second)
	if err != nil {
		t.Fatalf("NewProviderClient failed: %v", err)
	}
	out, err := client.Complete(context.Background(), "you are a summarizer", "summarize")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if out != "summary text" {
		t.Fatalf("unexpected completion: %s", out)
	}
}

func TestCompleteAnthropic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if key := r.Header.Get("x-api-key"); key != "test-key" {
			t.Fatalf("unexpected api key header: %s", key)
		}
		if v := r.Header.Get("anthropic-version"); v == "" {
			t.Fatal("missing anthropic-version header")
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["temperature"] != 0.1 {
			t.Fatalf("expected temperature 0.1, got %v", req["temperature"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{
				{"type": "text", "text": "summary text"},
			},
		})
	}))
	defer server.Close()

	client, err := NewProviderClient(ProviderAnthropic, "test-key", "claude-3-5-haiku-20241022", server.URL, 10*time.Second)
	if err != nil {
		t.Fatalf("NewProviderClient failed: %v", err)
	}
	out, err := client.Complete(context.Background(), "you are a summarizer", "summarize")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if out != "summary text" {
		t.Fatalf("unexpected completion: %s", out)
	}
}

func TestCompleteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewProviderClient(ProviderOpenAI, "test-key", "gpt-4o-mini", server.URL, 10*time.Second)
	if err != nil {
		t.Fatalf("NewProviderClient failed: %v", err)
	}
	if _, err := client.Complete(context.Background(), "", "prompt"); err == nil {
		t.Fatal("expected error for 429 response")
	}
}
