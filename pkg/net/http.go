package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	maxIdleConns     = 10
	timeoutInSeconds = 30
)

var reqTransport = &http.Transport{
	MaxIdleConns:          maxIdleConns,
	IdleConnTimeout:       timeoutInSeconds * time.Second,
	ResponseHeaderTimeout: timeoutInSeconds * time.Second,
}

// GetJSON retrieves the URL content with the given client and decodes it
// into the passed target. A nil client gets a default with bounded timeouts.
func GetJSON[T any](ctx context.Context, client *http.Client, url string, target *T) error {
	if client == nil {
		client = &http.Client{
			Timeout:   timeoutInSeconds * time.Second,
			Transport: reqTransport,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating HTTP GET request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("executing HTTP GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding response content: %w", err)
	}
	return nil
}
