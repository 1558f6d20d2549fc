package pinecone

import (
	"fmt"
	"net/url"

	moderr "github.com/lizzyg/pinecone/errors"
	"github.com/lizzyg/pinecone/internal/config"
	"github.com/lizzyg/pinecone/internal/providers"
)

// AssistantBaseURLTemplate is the default base URL of the assistant chat
// endpoint. Chat handles append /chat/completions to it.
const AssistantBaseURLTemplate = "https://prod-1-data.ke.pinecone.io/assistant/chat/%s"

// FacadeSettings configures a Facade.
type FacadeSettings struct {
	ProviderSettings

	// AssistantName fills the assistant segment of the default base URL.
	// Required unless BaseURL or BaseUrl is set.
	AssistantName string
}

// Facade is the class-style client kept for existing callers.
//
// Deprecated: Use New instead.
type Facade struct {
	factory *providers.Factory
}

// NewFacade creates a Facade.
//
// Deprecated: Use New instead.
func NewFacade(settings FacadeSettings, opts ...Option) (*Facade, error) {
	defaultURL, err := assistantBaseURL(settings)
	if err != nil {
		return nil, err
	}
	cfg := resolveWithOptions(settings.ProviderSettings, "pinecone", defaultURL, opts)
	return &Facade{factory: providers.NewFactory(cfg)}, nil
}

// NewFacadeFromFile is NewFacade with settings and assistant_name read by
// config.Load.
//
// Deprecated: Use NewFromFile instead.
func NewFacadeFromFile(opts ...Option) (*Facade, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewFacade(FacadeSettings{
		ProviderSettings: settingsFromConfig(cfg),
		AssistantName:    cfg.AssistantName,
	}, opts...)
}

func assistantBaseURL(settings FacadeSettings) (string, error) {
	if settings.AssistantName != "" {
		return fmt.Sprintf(AssistantBaseURLTemplate, url.PathEscape(settings.AssistantName)), nil
	}
	if resolveBaseURL(settings.ProviderSettings, "") == "" {
		return "", moderr.ErrMissingAssistantName
	}
	return "", nil
}

// BaseURL is the resolved base URL for API calls.
func (f *Facade) BaseURL() string { return f.factory.ChatConfig().BaseURL }

// Chat creates a chat model. Handles are identical to those from Provider.Chat
// for the same settings.
func (f *Facade) Chat(modelID ChatModelID, settings ...ChatSettings) *ChatModel {
	return f.factory.NewChat(string(modelID), firstOr(settings))
}
