package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(content string) string {
	return fmt.Sprintf(`{"choices":[{"message":{"content":%q}}]}`, content)
}

func TestCompleteFirstModelSucceeds(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "model-a", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		fmt.Fprint(w, completionBody("all clear"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)
	got := client.Complete(context.Background(), "prompt", []string{"model-a", "model-b"})
	assert.Equal(t, "all clear", got)
	assert.Equal(t, int64(1), attempts.Load())
}

func TestCompleteFallsBackUntilSuccess(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := attempts.Add(1)
		if n < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, completionBody("third time lucky"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second)
	got := client.Complete(context.Background(), "prompt", []string{"m1", "m2", "m3"})
	assert.Equal(t, "third time lucky", got)
	assert.Equal(t, int64(3), attempts.Load(), "caller must observe exactly N attempts")
}

func TestCompleteEmptyResponseCountsAsFailure(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			fmt.Fprint(w, completionBody("   "))
			return
		}
		fmt.Fprint(w, completionBody("real content"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second)
	got := client.Complete(context.Background(), "prompt", []string{"m1", "m2"})
	assert.Equal(t, "real content", got)
	assert.Equal(t, int64(2), attempts.Load())
}

func TestCompleteAllModelsFailedReturnsSentinel(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second)
	got := client.Complete(context.Background(), "prompt", []string{"m1", "m2", "m3"})
	assert.Equal(t, AllModelsFailedMessage, got)
	assert.Equal(t, int64(3), attempts.Load())
}

func TestCompleteUnreachableEndpointReturnsSentinel(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", 200*time.Millisecond)
	got := client.Complete(context.Background(), "prompt", []string{"m1"})
	assert.Equal(t, AllModelsFailedMessage, got)
}
