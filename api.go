package pinecone

import (
	"context"
	"encoding/json"

	moderr "github.com/lizzyg/pinecone/errors"
	"github.com/lizzyg/pinecone/internal/core"
	"github.com/lizzyg/pinecone/internal/util"
)

type (
	CallParams      = core.CallParams
	RawResponse     = core.RawResponse
	Usage           = core.Usage
	EmbeddingResult = core.EmbeddingResult
)

// Message is one conversational message.
type Message = core.Message

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// GenerateText runs one completion and returns its text.
func GenerateText(ctx context.Context, m *ChatModel, messages ...Message) (string, error) {
	resp, err := m.Generate(ctx, CallParams{Messages: messages})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// GenerateObject asks the model for JSON matching the schema of T and decodes
// it. If T is string, the raw text is returned.
func GenerateObject[T any](ctx context.Context, m *ChatModel, messages ...Message) (T, error) {
	var zero T
	params := CallParams{Messages: messages}
	if !util.IsStringType[T]() {
		var zeroPtr *T
		params.OutputSchema = util.GenerateJSONSchema(zeroPtr)
	}

	resp, err := m.Generate(ctx, params)
	if err != nil {
		return zero, err
	}
	if util.IsStringType[T]() {
		anyVal := any(resp.Content)
		return anyVal.(T), nil
	}

	var out T
	if err := json.Unmarshal([]byte(resp.Content), &out); err != nil {
		if repaired, ok := util.RepairJSON(resp.Content); ok {
			if err2 := json.Unmarshal([]byte(repaired), &out); err2 == nil {
				return out, nil
			}
		}
		return zero, moderr.ErrStructuredOutput
	}
	return out, nil
}
