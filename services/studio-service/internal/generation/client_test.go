package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Type != TypePost || !req.IncludeImage {
			t.Errorf("unexpected request body %+v", req)
		}
		_ = json.NewEncoder(w).Encode(Response{Success: true, Content: "TITLE: x\nCONTENT: y", Image: "data:image/jpeg;base64,AAA="})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", srv.Client())
	resp, err := c.Generate(context.Background(), Request{Prompt: "brows", Type: TypePost, IncludeImage: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Content == "" || resp.Image == "" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestClient_ProxyFailureKeepsRawMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "Failed to generate content",
			"details": "overloaded",
		})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).Generate(context.Background(), Request{Prompt: "x", Type: TypeEmail})
	if err == nil || !IsProxyError(err) {
		t.Fatalf("expected proxy error, got %v", err)
	}
	if err.Error() != "Failed to generate content: overloaded" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestClient_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).Generate(context.Background(), Request{Prompt: "x", Type: TypePost})
	if err == nil || err.Error() != "rate limit exceeded" {
		t.Fatalf("expected raw body as error, got %v", err)
	}
}
