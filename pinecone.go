// Package pinecone builds chat and embedding model handles for the Pinecone API.
//
//	p := pinecone.New(pinecone.ProviderSettings{APIKey: "..."})
//	model, err := p.Model(pinecone.ChatModelPinecone)
//
// Model is the primary entry point; LanguageModel and Chat are aliases of it.
// Embedding and TextEmbedding build embedding handles.
package pinecone

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	moderr "github.com/lizzyg/pinecone/errors"
	"github.com/lizzyg/pinecone/internal/config"
	"github.com/lizzyg/pinecone/internal/providers"
	"github.com/lizzyg/pinecone/internal/providers/chat"
	"github.com/lizzyg/pinecone/internal/providers/embedding"
	"github.com/lizzyg/pinecone/internal/telemetry"
)

type (
	ChatModel      = chat.Model
	EmbeddingModel = embedding.Model
)

// Entry point names accepted by Provider.Dispatch.
const (
	EntryModel         = providers.EntryModel
	EntryLanguageModel = providers.EntryLanguageModel
	EntryChat          = providers.EntryChat
	EntryEmbedding     = providers.EntryEmbedding
	EntryTextEmbedding = providers.EntryTextEmbedding
)

// Provider manufactures model handles that share one resolved configuration.
// Obtain one from New or NewFromFile; a Provider built any other way
// (new(Provider), Provider{}) rejects every call with errors.ErrInvalidInvocation.
type Provider struct {
	factory *providers.Factory
}

// Option allows functional configuration.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
}

// WithLogger sets a custom slog logger for model calls.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithMetrics registers call metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option { return func(o *options) { o.registerer = reg } }

// Default is the provider built from empty settings. It reads PINECONE_API_KEY
// when a request is made.
var Default = New(ProviderSettings{})

// New resolves settings once and returns a provider. No network I/O happens
// here or when handles are created.
func New(settings ProviderSettings, opts ...Option) *Provider {
	return &Provider{factory: providers.NewFactory(resolveWithOptions(settings, "pinecone", DefaultBaseURL, opts))}
}

func resolveWithOptions(settings ProviderSettings, providerID, defaultBaseURL string, opts []Option) *ResolvedConfig {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	cfg := Resolve(settings, providerID, defaultBaseURL)
	cfg.Logger = o.logger
	if o.registerer != nil {
		m, err := telemetry.NewMetrics(o.registerer)
		if err != nil {
			cfg.Log().Warn("pinecone metrics disabled", slog.Any("error", err))
		}
		cfg.Metrics = m
	}
	return cfg
}

// NewFromFile loads settings via internal/config.Load and returns a Provider.
func NewFromFile(opts ...Option) (*Provider, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return New(settingsFromConfig(cfg), opts...), nil
}

func settingsFromConfig(cfg *config.ProviderConfig) ProviderSettings {
	s := ProviderSettings{
		BaseURL: cfg.BaseURL,
		BaseUrl: cfg.BaseUrl,
		APIKey:  cfg.APIKey,
		Headers: cfg.Headers,
	}
	if cfg.TimeoutSeconds > 0 {
		s.HTTPClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}
	return s
}

// Model creates a chat model for text generation. It is the primary entry point.
func (p *Provider) Model(modelID ChatModelID, settings ...ChatSettings) (*ChatModel, error) {
	return p.chatModel(modelID, firstOr(settings))
}

// LanguageModel creates a model for text generation.
func (p *Provider) LanguageModel(modelID ChatModelID, settings ...ChatSettings) (*ChatModel, error) {
	return p.chatModel(modelID, firstOr(settings))
}

// Chat creates a model for text generation.
func (p *Provider) Chat(modelID ChatModelID, settings ...ChatSettings) (*ChatModel, error) {
	return p.chatModel(modelID, firstOr(settings))
}

// Embedding creates a model for text embeddings.
func (p *Provider) Embedding(modelID EmbeddingModelID, settings ...EmbeddingSettings) (*EmbeddingModel, error) {
	return p.embeddingModel(modelID, firstOr(settings))
}

// TextEmbedding creates a model for text embeddings.
func (p *Provider) TextEmbedding(modelID EmbeddingModelID, settings ...EmbeddingSettings) (*EmbeddingModel, error) {
	return p.embeddingModel(modelID, firstOr(settings))
}

// Dispatch builds the handle behind a named entry point, e.g. from
// configuration. The result is a *ChatModel or an *EmbeddingModel; settings
// may be nil or the matching settings type.
func (p *Provider) Dispatch(entry string, modelID string, settings any) (any, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	return p.factory.Build(entry, modelID, settings)
}

// Config returns the configuration shared by handles of the given entry point.
func (p *Provider) Config(entry string) (*ResolvedConfig, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	kind, err := providers.Lookup(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, entry)
	}
	if kind == providers.KindChat {
		return p.factory.ChatConfig(), nil
	}
	return p.factory.EmbeddingConfig(), nil
}

func (p *Provider) chatModel(modelID ChatModelID, settings ChatSettings) (*ChatModel, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	return p.factory.NewChat(string(modelID), settings), nil
}

func (p *Provider) embeddingModel(modelID EmbeddingModelID, settings EmbeddingSettings) (*EmbeddingModel, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	return p.factory.NewEmbedding(string(modelID), settings), nil
}

func (p *Provider) check() error {
	if p == nil || p.factory == nil {
		return moderr.ErrInvalidInvocation
	}
	return nil
}
