package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/celestecruzzg/IOT-FINAL/models"
)

const defaultFeedURL = "https://moriahmkt.com/iotapp/updated/"

var (
	// ErrUpstreamUnavailable covers network failures and non-2xx responses.
	ErrUpstreamUnavailable = errors.New("feed no disponible")
	// ErrMalformedPayload means the response lacked the sensores/parcelas keys.
	ErrMalformedPayload = errors.New("payload del feed inválido")
)

var feedClient = &http.Client{Timeout: 10 * time.Second}

// FeedURL returns the upstream endpoint, overridable via IOT_API_URL.
func FeedURL() string {
	if url := os.Getenv("IOT_API_URL"); url != "" {
		return url
	}
	return defaultFeedURL
}

// FetchFeed pulls the current snapshot from the upstream feed. It never
// retries and never mutates local state; callers decide what to do on error.
func FetchFeed(ctx context.Context) (*models.FeedSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, FeedURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	resp, err := feedClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var snapshot models.FeedSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if snapshot.Sensores == nil || snapshot.Parcelas == nil {
		return nil, fmt.Errorf("%w: faltan sensores o parcelas", ErrMalformedPayload)
	}
	return &snapshot, nil
}
