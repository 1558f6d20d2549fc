package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	moderr "github.com/lizzyg/pinecone/errors"
	"github.com/lizzyg/pinecone/internal/core"
	"github.com/lizzyg/pinecone/internal/providers/transport"
)

// Settings are per-model options for chat handles.
type Settings struct {
	// SafePrompt injects a safety prompt before all conversations.
	SafePrompt bool `json:"safe_prompt" koanf:"safe_prompt"`
}

// Model is a chat completion handle bound to one resolved configuration.
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

type chatRequest struct {
	Model          string           `json:"model"`
	Messages       []map[string]any `json:"messages"`
	SafePrompt     bool             `json:"safe_prompt,omitempty"`
	MaxTokens      int              `json:"max_tokens,omitempty"`
	Temperature    float32          `json:"temperature,omitempty"`
	TopP           float32          `json:"top_p,omitempty"`
	ResponseFormat map[string]any   `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content any `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Generate runs one chat completion against <baseURL>/chat/completions.
func (m *Model) Generate(ctx context.Context, params core.CallParams) (core.RawResponse, error) {
	payload := chatRequest{
		Model:       m.modelID,
		Messages:    mapMessages(params.Messages),
		SafePrompt:  m.settings.SafePrompt,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
		TopP:        params.TopP,
	}
	if params.OutputSchema != "" {
		payload.ResponseFormat = map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   "output",
				"schema": json.RawMessage(params.OutputSchema),
			},
		}
	}

	start := time.Now()
	var cr chatResponse
	err := transport.PostJSON(ctx, m.config, "/chat/completions", payload, &cr)
	out := toRawResponse(cr)
	if err == nil && len(cr.Choices) == 0 {
		err = moderr.ErrEmptyResponse
	}
	m.observe(time.Since(start), out.Usage, err)
	if err != nil {
		return core.RawResponse{}, err
	}
	return out, nil
}

func (m *Model) observe(d time.Duration, u core.Usage, err error) {
	m.config.Log().Info("pinecone call",
		slog.String("provider", m.config.ProviderID),
		slog.String("model", m.modelID),
		slog.Int("prompt_tokens", u.PromptTokens),
		slog.Int("completion_tokens", u.CompletionTokens),
		slog.Int("total_tokens", u.TotalTokens),
		slog.Duration("latency_ms", d),
		slog.Bool("error", err != nil),
	)
	m.config.Metrics.ObserveCall(m.config.ProviderID, m.modelID, d, u.PromptTokens, u.CompletionTokens, err)
}

func toRawResponse(cr chatResponse) core.RawResponse {
	out := core.RawResponse{
		Usage: core.Usage{
			PromptTokens:     cr.Usage.PromptTokens,
			CompletionTokens: cr.Usage.CompletionTokens,
			TotalTokens:      cr.Usage.TotalTokens,
		},
	}
	if len(cr.Choices) == 0 {
		return out
	}
	choice := cr.Choices[0]
	out.FinishReason = choice.FinishReason
	switch v := choice.Message.Content.(type) {
	case string:
		out.Content = v
	case []any:
		// concatenate text parts
		var acc string
		for _, p := range v {
			part, ok := p.(map[string]any)
			if !ok || part["type"] != "text" {
				continue
			}
			if s, ok := part["text"].(string); ok {
				if acc != "" {
					acc += "\n"
				}
				acc += s
			}
		}
		out.Content = acc
	}
	return out
}

func mapMessages(msgs []core.Message) []map[string]any {
	out := make([]map[string]any, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, map[string]any{
			"role":    m.Role,
			"content": m.Content,
		})
	}
	return out
}
