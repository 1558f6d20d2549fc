package embedding

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	moderr "github.com/lizzyg/pinecone/errors"
	"github.com/lizzyg/pinecone/internal/core"
	"github.com/lizzyg/pinecone/internal/providers/transport"
)

// DefaultMaxEmbeddingsPerCall is used when Settings leaves the limit unset.
const DefaultMaxEmbeddingsPerCall = 96

// maxParallelCalls bounds concurrent requests issued by EmbedMany.
const maxParallelCalls = 4

// Settings are per-model options for embedding handles.
type Settings struct {
	MaxEmbeddingsPerCall  int  `json:"max_embeddings_per_call" koanf:"max_embeddings_per_call"`
	SupportsParallelCalls bool `json:"supports_parallel_calls" koanf:"supports_parallel_calls"`
}

// Model is a text embedding handle bound to one resolved configuration.
type Model struct {
	modelID  string
	settings Settings
	config   *core.ResolvedConfig
}

// New performs no I/O.
func New(modelID string, settings Settings, cfg *core.ResolvedConfig) *Model {
	return &Model{modelID: modelID, settings: settings, config: cfg}
}

func (m *Model) ModelID() string { return m.modelID }

func (m *Model) Settings() Settings { return m.settings }

// Config returns the shared configuration, not a copy.
func (m *Model) Config() *core.ResolvedConfig { return m.config }

func (m *Model) Provider() string { return m.config.ProviderID }

// MaxEmbeddingsPerCall reports the effective per-call limit.
func (m *Model) MaxEmbeddingsPerCall() int {
	if m.settings.MaxEmbeddingsPerCall > 0 {
		return m.settings.MaxEmbeddingsPerCall
	}
	return DefaultMaxEmbeddingsPerCall
}

type embeddingRequest struct {
	Model          string   `json:"model"`
	Input          []string `json:"input"`
	EncodingFormat string   `json:"encoding_format"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

// Embed sends values in a single request to <baseURL>/embeddings.
func (m *Model) Embed(ctx context.Context, values []string) (core.EmbeddingResult, error) {
	if limit := m.MaxEmbeddingsPerCall(); len(values) > limit {
		return core.EmbeddingResult{}, &moderr.TooManyEmbeddingValuesError{
			Provider: m.config.ProviderID,
			ModelID:  m.modelID,
			Max:      limit,
			Got:      len(values),
		}
	}

	start := time.Now()
	var er embeddingResponse
	err := transport.PostJSON(ctx, m.config, "/embeddings", embeddingRequest{
		Model:          m.modelID,
		Input:          values,
		EncodingFormat: "float",
	}, &er)
	usage := core.Usage{PromptTokens: er.Usage.PromptTokens, TotalTokens: er.Usage.TotalTokens}
	if err == nil && len(er.Data) != len(values) {
		err = moderr.ErrEmptyResponse
	}
	m.observe(time.Since(start), len(values), usage, err)
	if err != nil {
		return core.EmbeddingResult{}, err
	}

	out := core.EmbeddingResult{Embeddings: make([][]float64, len(values)), Usage: usage}
	for i, d := range er.Data {
		idx := d.Index
		if idx < 0 || idx >= len(values) {
			idx = i
		}
		out.Embeddings[idx] = d.Embedding
	}
	return out, nil
}

// EmbedMany splits values into chunks of MaxEmbeddingsPerCall and embeds each
// chunk, concurrently when the model supports parallel calls. Output order
// matches input order.
func (m *Model) EmbedMany(ctx context.Context, values []string) (core.EmbeddingResult, error) {
	size := m.MaxEmbeddingsPerCall()
	var chunks [][]string
	for start := 0; start < len(values); start += size {
		end := min(start+size, len(values))
		chunks = append(chunks, values[start:end])
	}

	results := make([]core.EmbeddingResult, len(chunks))
	if m.settings.SupportsParallelCalls {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxParallelCalls)
		for i, chunk := range chunks {
			g.Go(func() error {
				r, err := m.Embed(gctx, chunk)
				if err != nil {
					return err
				}
				results[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return core.EmbeddingResult{}, err
		}
	} else {
		for i, chunk := range chunks {
			r, err := m.Embed(ctx, chunk)
			if err != nil {
				return core.EmbeddingResult{}, err
			}
			results[i] = r
		}
	}

	out := core.EmbeddingResult{Embeddings: make([][]float64, 0, len(values))}
	for _, r := range results {
		out.Embeddings = append(out.Embeddings, r.Embeddings...)
		out.Usage.PromptTokens += r.Usage.PromptTokens
		out.Usage.TotalTokens += r.Usage.TotalTokens
	}
	return out, nil
}

func (m *Model) observe(d time.Duration, n int, u core.Usage, err error) {
	m.config.Log().Info("pinecone call",
		slog.String("provider", m.config.ProviderID),
		slog.String("model", m.modelID),
		slog.Int("values", n),
		slog.Int("prompt_tokens", u.PromptTokens),
		slog.Duration("latency_ms", d),
		slog.Bool("error", err != nil),
	)
	m.config.Metrics.ObserveCall(m.config.ProviderID, m.modelID, d, u.PromptTokens, 0, err)
}
