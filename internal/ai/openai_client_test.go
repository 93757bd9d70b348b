package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeOpenAI(t *testing.T, status int, content string, seen *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-1",
			"object":  "chat.completion",
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": content}}},
		})
	}))
}

func TestCompleteSendsJSONObjectRequest(t *testing.T) {
	var seen map[string]any
	srv := fakeOpenAI(t, http.StatusOK, `{"type":"text","message":"hi"}`, &seen)
	defer srv.Close()

	c := NewOpenAIClient(OpenAIOptions{APIKey: "sk-test", BaseURL: srv.URL})
	raw, err := c.Complete(context.Background(), Request{
		System:   "be json",
		Messages: []Message{{Role: "user", Content: "brakes squeal"}},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"type":"text","message":"hi"}`, raw)

	assert.Equal(t, "gpt-4o-mini", seen["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, seen["response_format"])

	msgs := seen["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "be json", msgs[0].(map[string]any)["content"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
	assert.Equal(t, "brakes squeal", msgs[1].(map[string]any)["content"])
}

func TestCompleteProviderError(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusInternalServerError, "", nil)
	defer srv.Close()

	c := NewOpenAIClient(OpenAIOptions{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), Request{System: "x"})
	assert.Error(t, err)
}

func TestCompleteWithoutKey(t *testing.T) {
	c := NewOpenAIClient(OpenAIOptions{})
	assert.False(t, c.Configured())

	_, err := c.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestShort(t *testing.T) {
	assert.Equal(t, "abc", Short("abc"))
	assert.Len(t, Short(strings.Repeat("a", 200)), 183)

	// 179 ASCII bytes then a 2-byte rune straddling the limit.
	s := strings.Repeat("a", 179) + "ключ" + strings.Repeat("b", 50)
	got := Short(s)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 179)+"...", got)

	cyr := strings.Repeat("ж", 120)
	got = Short(cyr)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("ж", 90)+"...", got)
}
