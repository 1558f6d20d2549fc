package pinecone

import (
	"net/http"

	"github.com/lizzyg/pinecone/internal/providers/chat"
	"github.com/lizzyg/pinecone/internal/providers/embedding"
)

const (
	// DefaultBaseURL is the prefix for chat and embedding calls.
	DefaultBaseURL = "https://api.pinecone.io/v1"

	// APIKeyEnv is read when ProviderSettings.APIKey is empty.
	APIKeyEnv = "PINECONE_API_KEY"

	providerDescription = "Pinecone"
)

// ProviderSettings configures a Provider. The zero value is valid: the default
// base URL is used and the API key is read from PINECONE_API_KEY at request time.
type ProviderSettings struct {
	// BaseURL overrides the URL prefix for API calls, e.g. to use proxy servers.
	BaseURL string

	// Deprecated: Use BaseURL instead.
	BaseUrl string

	// APIKey is sent as "Authorization: Bearer <APIKey>".
	APIKey string

	// Headers are sent with every request. An Authorization entry replaces
	// the computed bearer header.
	Headers map[string]string

	// HTTPClient performs the requests. Useful for middleware or tests.
	HTTPClient *http.Client
}

// ChatModelID names a chat model. Any string is accepted so that models
// released after this package keep working.
type ChatModelID string

// https://docs.pinecone.io/platform/endpoints/
const ChatModelPinecone ChatModelID = "Pinecone"

// EmbeddingModelID names an embedding model; any string is accepted.
type EmbeddingModelID string

const (
	EmbeddingModelMultilingualE5Large EmbeddingModelID = "multilingual-e5-large"
	EmbeddingModelLlamaTextEmbedV2    EmbeddingModelID = "llama-text-embed-v2"
)

type (
	ChatSettings      = chat.Settings
	EmbeddingSettings = embedding.Settings
)

func firstOr[S any](settings []S) S {
	var zero S
	if len(settings) == 0 {
		return zero
	}
	return settings[0]
}
