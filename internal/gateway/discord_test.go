package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscordNotifier_Notify(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier := NewDiscordNotifier(server.URL, log.New(io.Discard, "", 0))
	err := notifier.Notify(context.Background(), "**finance/summary**: ok")

	require.NoError(t, err)
	assert.Equal(t, "**finance/summary**: ok", received["content"])
}

func TestDiscordNotifier_Notify_TruncatesLongMessages(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier := NewDiscordNotifier(server.URL, log.New(io.Discard, "", 0))
	err := notifier.Notify(context.Background(), strings.Repeat("x", 2500))

	require.NoError(t, err)
	assert.Len(t, received["content"], 2000)
	assert.True(t, strings.HasSuffix(received["content"], "..."))
}

func TestDiscordNotifier_Notify_DeliveryError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	notifier := NewDiscordNotifier(server.URL, log.New(io.Discard, "", 0))
	err := notifier.Notify(context.Background(), "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short"))

	exact := strings.Repeat("a", 2000)
	assert.Equal(t, exact, Truncate(exact))

	long := Truncate(strings.Repeat("a", 2001))
	assert.Len(t, long, 2000)
	assert.Equal(t, strings.Repeat("a", 1997)+"...", long)
}

func TestTruncate_CountsCharactersNotBytes(t *testing.T) {
	// 1500 em dashes are 4500 bytes but only 1500 characters; the message
	// fits under the limit and must pass through untouched.
	under := strings.Repeat("—", 1500)
	assert.Equal(t, under, Truncate(under))

	over := Truncate(strings.Repeat("—", 2001))
	assert.Equal(t, 2000, utf8.RuneCountInString(over))
	assert.True(t, utf8.ValidString(over))
	assert.Equal(t, strings.Repeat("—", 1997)+"...", over)
}
