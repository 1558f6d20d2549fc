package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lizzyg/pinecone/internal/core"
	"github.com/lizzyg/pinecone/internal/providers/retry"
)

// DefaultTimeout applies when the resolved config carries no HTTP client.
const DefaultTimeout = 60 * time.Second

var defaultClient = &http.Client{Timeout: DefaultTimeout}

// Client returns the HTTP client requests from cfg should go through.
func Client(cfg *core.ResolvedConfig) *http.Client {
	if cfg.HTTPClient != nil {
		return cfg.HTTPClient
	}
	return defaultClient
}

// PostJSON sends body as JSON to cfg.BaseURL+path and decodes the response
// into out. Headers are resolved once per call, before the first attempt;
// header errors are returned unchanged.
func PostJSON(ctx context.Context, cfg *core.ResolvedConfig, path string, body, out any) error {
	headers, err := cfg.Headers()
	if err != nil {
		return err
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s marshal payload: %w", cfg.ProviderID, err)
	}

	url := cfg.BaseURL + path
	hc := Client(cfg)
	return retry.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := hc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
			return retry.FromResponse(resp, string(b), cfg.ProviderID)
		}
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s decode response: %w", cfg.ProviderID, err)
		}
		return nil
	})
}
