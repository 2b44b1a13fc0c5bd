package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicClient_Complete(t *testing.T) {
	var gotBody anthropicRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"{\"value\": 12}"}]}`))
	}))
	defer srv.Close()

	client := NewAnthropicClient("test-key", srv.URL, "claude-3-opus-20240229", 1000, 5*time.Second)

	text, err := client.Complete(context.Background(), "estimate this")
	require.NoError(t, err)
	assert.Equal(t, `{"value": 12}`, text)

	assert.Equal(t, "claude-3-opus-20240229", gotBody.Model)
	assert.Equal(t, 1000, gotBody.MaxTokens)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	assert.Equal(t, "estimate this", gotBody.Messages[0].Content)
}

func TestAnthropicClient_NonOKStatusIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	client := NewAnthropicClient("test-key", srv.URL, "", 0, 5*time.Second)

	_, err := client.Complete(context.Background(), "estimate this")
	require.Error(t, err)
	assert.Equal(t, KindUpstream, ErrKind(err))
	assert.Contains(t, RawText(err), "rate_limit_error")
}

func TestAnthropicClient_EmptyContentIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	client := NewAnthropicClient("test-key", srv.URL, "", 0, 5*time.Second)

	_, err := client.Complete(context.Background(), "estimate this")
	require.Error(t, err)
	assert.Equal(t, KindUpstream, ErrKind(err))
}

func TestAnthropicClient_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewAnthropicClient("test-key", srv.URL, "", 0, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, "estimate this")
	require.Error(t, err)
	assert.Equal(t, KindUpstream, ErrKind(err))
}
