package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOllamaGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["model"] != "llama3.2" {
			t.Fatalf("unexpected model: %v", req["model"])
		}
		if req["stream"] != false {
			t.Fatalf("expected stream=false, got %v", req["stream"])
		}
		opts, ok := req["options"].(map[string]interface{})
		if !ok {
			t.Fatalf("missing options in request: %v", req)
		}
		if opts["temperature"] != 0.1 {
			t.Fatalf("expected temperature 0.1, got %v", opts["temperature"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"response": `{"summary":"ok"}`,
			"done":     true,
		})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3.2", 10*time.Second)
	out, err := client.Generate(context.Background(), "summarize this", json.RawMessage(`"json"`))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != `{"summary":"ok"}` {
		t.Fatalf("unexpected response: %s", out)
	}
}

func TestOllamaGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "missing", 10*time.Second)
	_, err := client.Generate(context.Background(), "prompt", nil)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestOllamaHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3.2", 5*time.Second)
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health failed: %v", err)
	}
}

func TestOllamaHealthDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3.2", 5*time.Second)
	if err := client.Health(context.Background()); err == nil {
		t.Fatal("expected error for unhealthy server")
	}
}
