package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadFile(t *testing.T) {
	t.Setenv("PINECONE_TEST_TOKEN", "secret")
	path := writeFile(t, t.TempDir(), "pinecone.yaml", `
pinecone:
  base_url: https://example.com/v1/
  baseUrl: https://legacy.example.com
  api_key: ${PINECONE_TEST_TOKEN}
  assistant_name: docs
  timeout_seconds: 15
  headers:
    X-Trace: abc
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/v1/", cfg.BaseURL)
	assert.Equal(t, "https://legacy.example.com", cfg.BaseUrl)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "docs", cfg.AssistantName)
	assert.Equal(t, 15, cfg.TimeoutSeconds)
	assert.Equal(t, map[string]string{"X-Trace": "abc"}, cfg.Headers)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pinecone.yaml", `
pinecone:
  base_url: https://example.com/v1
  api_key: from-file
`)
	t.Setenv("PINECONE__API_KEY", "from-env")
	t.Setenv("PINECONE__ASSISTANT_NAME", "support")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, "support", cfg.AssistantName)
	assert.Equal(t, "https://example.com/v1", cfg.BaseURL)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_DefaultPathOptional(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(PathEnv, "")
	t.Setenv("PINECONE__BASE_URL", "https://env.example.com")
	writeFile(t, dir, ".env", "PINECONE_DOTENV_PROBE=loaded\n")
	t.Cleanup(func() { _ = os.Unsetenv("PINECONE_DOTENV_PROBE") })

	ResetForTest()
	t.Cleanup(ResetForTest)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.BaseURL)
	assert.Equal(t, "loaded", os.Getenv("PINECONE_DOTENV_PROBE"))

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, again)
}

func TestLoad_ExplicitPathRequired(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(PathEnv, "does-not-exist.yaml")
	ResetForTest()
	t.Cleanup(ResetForTest)

	_, err := Load()
	assert.Error(t, err)
}

func TestResolveEnvString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		env      map[string]string
		expected string
	}{
		{
			name:     "replaces set environment variable",
			input:    "api-${API_KEY}-suffix",
			env:      map[string]string{"API_KEY": "test123"},
			expected: "api-test123-suffix",
		},
		{
			name:     "handles empty environment variable",
			input:    "prefix-${EMPTY_VAR}-suffix",
			env:      map[string]string{"EMPTY_VAR": ""},
			expected: "prefix--suffix",
		},
		{
			name:     "handles unset environment variable",
			input:    "prefix-${PINECONE_SURELY_UNSET_VAR}-suffix",
			expected: "prefix--suffix",
		},
		{
			name:     "handles multiple variables",
			input:    "${HOST}:${PORT}",
			env:      map[string]string{"HOST": "localhost", "PORT": "8080"},
			expected: "localhost:8080",
		},
		{
			name:     "no substitution needed",
			input:    "no-vars-here",
			expected: "no-vars-here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.expected, resolveEnvString(tt.input))
		})
	}
}
