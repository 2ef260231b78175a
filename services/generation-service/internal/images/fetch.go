package images

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultBaseURL = "https://loremflickr.com/1080/1080"
	maxImageBytes  = 10 << 20
)

type FetcherConfig struct {
	BaseURL     string
	MaxAttempts uint
	// InitialInterval is the first retry delay; it doubles on each attempt.
	InitialInterval time.Duration
}

type Fetcher struct {
	cfg  FetcherConfig
	http *http.Client
}

func NewFetcher(cfg FetcherConfig, httpClient *http.Client) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 500 * time.Millisecond
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Fetcher{cfg: cfg, http: httpClient}
}

// DataURI downloads a photo for category and returns it as data:<mime>;base64,...
// Network errors, 429 and 5xx are retried with exponential backoff; other
// statuses fail immediately.
func (f *Fetcher) DataURI(ctx context.Context, category string) (string, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.cfg.InitialInterval
	b.Multiplier = 2

	return backoff.Retry(ctx, func() (string, error) {
		return f.fetchOnce(ctx, category)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(f.cfg.MaxAttempts))
}

func (f *Fetcher) fetchOnce(ctx context.Context, category string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.BaseURL+"/"+category, nil)
	if err != nil {
		return "", backoff.Permanent(err)
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", fmt.Errorf("image download status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", backoff.Permanent(fmt.Errorf("image download status %d", resp.StatusCode))
	}

	mimeType := "image/jpeg"
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			mimeType = mt
		}
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", backoff.Permanent(fmt.Errorf("unexpected content type %q", mimeType))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.New("empty image body")
	}
	if len(data) > maxImageBytes {
		return "", backoff.Permanent(errors.New("image too large"))
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
