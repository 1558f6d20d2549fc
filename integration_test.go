//go:build integration
// +build integration

package pinecone

import (
	"context"
	"os"
	"testing"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireKey(t *testing.T) {
	t.Helper()
	if os.Getenv(APIKeyEnv) == "" {
		t.Skip("PINECONE_API_KEY not set; skipping integration test")
	}
}

func TestIntegration_Embed(t *testing.T) {
	requireKey(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	m, err := Default.Embedding(EmbeddingModelMultilingualE5Large)
	require.NoError(t, err)
	res, err := m.Embed(ctx, []string{"sunny day at the beach", "rainy afternoon"})
	require.NoError(t, err)
	require.Len(t, res.Embeddings, 2)
	assert.NotEmpty(t, res.Embeddings[0])
}

func TestIntegration_AssistantChat(t *testing.T) {
	requireKey(t)
	name := os.Getenv("PINECONE_ASSISTANT_NAME")
	if name == "" {
		t.Skip("PINECONE_ASSISTANT_NAME not set; skipping assistant chat")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	f, err := NewFacade(FacadeSettings{AssistantName: name})
	require.NoError(t, err)
	text, err := GenerateText(ctx, f.Chat(ChatModelPinecone), Message{Role: RoleUser, Content: "Reply with the single word: ok"})
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}
