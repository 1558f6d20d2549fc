package core

import (
	"log/slog"
	"net/http"

	"github.com/lizzyg/pinecone/internal/telemetry"
)

// HeaderFunc produces the request headers at call time. It may be invoked
// concurrently and must not cache the credential it reads.
type HeaderFunc func() (map[string]string, error)

// ResolvedConfig is the connection configuration shared by every model handle
// created from one provider. It is not modified after construction.
type ResolvedConfig struct {
	ProviderID string
	BaseURL    string
	Headers    HeaderFunc

	// HTTPClient is the caller-supplied transport; nil means the default client.
	HTTPClient *http.Client

	Logger  *slog.Logger
	Metrics *telemetry.Metrics
}

// WithProviderID returns a copy of c stamped with id. Header and transport
// references are shared with c.
func (c *ResolvedConfig) WithProviderID(id string) *ResolvedConfig {
	out := *c
	out.ProviderID = id
	return &out
}

// Log returns the configured logger, or slog.Default at call time.
func (c *ResolvedConfig) Log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// CallParams is a single chat completion request.
type CallParams struct {
	Messages     []Message
	OutputSchema string
	MaxTokens    int
	Temperature  float32
	TopP         float32
}

type Message struct {
	Role    string
	Content string
}

type RawResponse struct {
	Content      string
	FinishReason string
	Usage        Usage
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// EmbeddingResult holds one vector per input value, in input order.
type EmbeddingResult struct {
	Embeddings [][]float64
	Usage      Usage
}
