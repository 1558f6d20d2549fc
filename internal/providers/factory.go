package providers

import (
	"fmt"

	"github.com/lizzyg/pinecone/internal/core"
	"github.com/lizzyg/pinecone/internal/providers/chat"
	"github.com/lizzyg/pinecone/internal/providers/embedding"
)

// Factory owns the per-kind configs derived from one resolved configuration.
// Every chat handle it builds shares one *core.ResolvedConfig, and likewise
// for embedding handles.
type Factory struct {
	chatConfig      *core.ResolvedConfig
	embeddingConfig *core.ResolvedConfig
}

func NewFactory(base *core.ResolvedConfig) *Factory {
	return &Factory{
		chatConfig:      base.WithProviderID(ChatProviderID),
		embeddingConfig: base.WithProviderID(EmbeddingProviderID),
	}
}

func (f *Factory) ChatConfig() *core.ResolvedConfig { return f.chatConfig }

func (f *Factory) EmbeddingConfig() *core.ResolvedConfig { return f.embeddingConfig }

func (f *Factory) NewChat(modelID string, settings chat.Settings) *chat.Model {
	return chat.New(modelID, settings, f.chatConfig)
}

func (f *Factory) NewEmbedding(modelID string, settings embedding.Settings) *embedding.Model {
	return embedding.New(modelID, settings, f.embeddingConfig)
}

// Build constructs the handle behind entry. settings may be nil or the
// Settings type of the entry's kind.
func (f *Factory) Build(entry, modelID string, settings any) (any, error) {
	kind, err := Lookup(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, entry)
	}
	switch kind {
	case KindChat:
		s, err := settingsAs[chat.Settings](settings, entry)
		if err != nil {
			return nil, err
		}
		return f.NewChat(modelID, s), nil
	default:
		s, err := settingsAs[embedding.Settings](settings, entry)
		if err != nil {
			return nil, err
		}
		return f.NewEmbedding(modelID, s), nil
	}
}

func settingsAs[S any](settings any, entry string) (S, error) {
	var zero S
	if settings == nil {
		return zero, nil
	}
	s, ok := settings.(S)
	if !ok {
		return zero, fmt.Errorf("settings of type %T cannot be used with entry point %q", settings, entry)
	}
	return s, nil
}
