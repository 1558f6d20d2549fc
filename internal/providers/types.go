package providers

import moderr "github.com/lizzyg/pinecone/errors"

// Kind selects one of the two model constructors.
type Kind int

const (
	KindChat Kind = iota
	KindEmbedding
)

func (k Kind) String() string {
	switch k {
	case KindChat:
		return "chat"
	case KindEmbedding:
		return "embedding"
	default:
		return "unknown"
	}
}

const (
	ChatProviderID      = "pinecone.chat"
	EmbeddingProviderID = "pinecone.embedding"
)

// Entry point names accepted by Lookup.
const (
	EntryModel         = "model"
	EntryLanguageModel = "languageModel"
	EntryChat          = "chat"
	EntryEmbedding     = "embedding"
	EntryTextEmbedding = "textEmbedding"
)

var entryPoints = map[string]Kind{
	EntryModel:         KindChat,
	EntryLanguageModel: KindChat,
	EntryChat:          KindChat,
	EntryEmbedding:     KindEmbedding,
	EntryTextEmbedding: KindEmbedding,
}

// Lookup maps a public entry point name to its constructor kind.
func Lookup(entry string) (Kind, error) {
	k, ok := entryPoints[entry]
	if !ok {
		return 0, moderr.ErrUnknownEntryPoint
	}
	return k, nil
}

// EntryPoints lists the entry points that construct handles of kind k.
func EntryPoints(k Kind) []string {
	var out []string
	for _, name := range []string{EntryModel, EntryLanguageModel, EntryChat, EntryEmbedding, EntryTextEmbedding} {
		if entryPoints[name] == k {
			out = append(out, name)
		}
	}
	return out
}
