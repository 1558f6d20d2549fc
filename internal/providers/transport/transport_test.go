package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizzyg/pinecone/internal/core"
	"github.com/lizzyg/pinecone/internal/providers/retry"
)

func testConfig(srv *httptest.Server, headers core.HeaderFunc) *core.ResolvedConfig {
	return &core.ResolvedConfig{
		ProviderID: "pinecone.test",
		BaseURL:    srv.URL,
		Headers:    headers,
		HTTPClient: srv.Client(),
	}
}

func staticHeaders(h map[string]string) core.HeaderFunc {
	return func() (map[string]string, error) { return h, nil }
}

func TestPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/echo", r.URL.Path)
		assert.Equal(t, "Bearer k1", r.Header.Get("Authorization"))
		assert.Equal(t, "yes", r.Header.Get("X-Custom"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["say"]})
	}))
	defer srv.Close()

	cfg := testConfig(srv, staticHeaders(map[string]string{"Authorization": "Bearer k1", "X-Custom": "yes"}))
	var out map[string]string
	err := PostJSON(context.Background(), cfg, "/echo", map[string]string{"say": "hi"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "hi", out["echo"])
}

func TestPostJSON_HeaderErrorSkipsRequest(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	want := errors.New("no credential")
	cfg := testConfig(srv, func() (map[string]string, error) { return nil, want })
	err := PostJSON(context.Background(), cfg, "/x", struct{}{}, nil)
	assert.ErrorIs(t, err, want)
	assert.Zero(t, hits.Load())
}

func TestPostJSON_StatusError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	cfg := testConfig(srv, staticHeaders(nil))
	err := PostJSON(context.Background(), cfg, "/x", struct{}{}, nil)

	var he *retry.HTTPStatusError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "pinecone.test", he.Source)
	assert.Equal(t, int32(1), hits.Load())
}

func TestPostJSON_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv, staticHeaders(nil))
	var out struct{ OK bool }
	require.NoError(t, PostJSON(context.Background(), cfg, "/x", struct{}{}, &out))
	assert.True(t, out.OK)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClientDefault(t *testing.T) {
	assert.Same(t, defaultClient, Client(&core.ResolvedConfig{}))
	hc := &http.Client{}
	assert.Same(t, hc, Client(&core.ResolvedConfig{HTTPClient: hc}))
}
