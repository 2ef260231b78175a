// Package generation is the studio-side client of the generation proxy.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/yaelle-pmu/studio/libs/httpx"
)

const (
	TypePost  = "post"
	TypeEmail = "email"
)

type Request struct {
	Prompt       string `json:"prompt"`
	Type         string `json:"type"`
	IncludeImage bool   `json:"includeImage,omitempty"`
}

type Response struct {
	Success   bool   `json:"success"`
	Content   string `json:"content,omitempty"`
	Image     string `json:"image,omitempty"`
	Error     string `json:"error,omitempty"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Error carries the proxy's own error text so it can be shown to the user unchanged.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Generate performs exactly one proxy call; there is no retry.
func (c *Client) Generate(ctx context.Context, req Request) (Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if id := httpx.RequestIDFromContext(ctx); id != "" {
		httpReq.Header.Set(httpx.RequestIDHeader, id)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("generation proxy: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return Response{}, fmt.Errorf("read generation response: %w", err)
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = resp.Status
		}
		return Response{}, &Error{Status: resp.StatusCode, Message: msg}
	}
	if !out.Success || out.Content == "" {
		msg := out.Error
		if msg == "" {
			msg = "Unknown error"
		}
		if out.Details != "" {
			msg += ": " + out.Details
		}
		return Response{}, &Error{Status: resp.StatusCode, Message: msg}
	}
	return out, nil
}

func IsProxyError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
