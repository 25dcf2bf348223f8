package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"unicode/utf8"
)

// Discord rejects messages over 2000 characters; longer ones are cut to 1997
// plus an ellipsis before delivery.
const maxDiscordMessageLen = 2000

// Notifier defines the behavior of a gateway delivering result messages.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// DiscordNotifier posts messages to a Discord channel via webhook. Delivery
// errors are returned to the caller; there are no retries.
type DiscordNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *log.Logger
}

// NewDiscordNotifier creates a notifier for the given webhook URL.
func NewDiscordNotifier(webhookURL string, logger *log.Logger) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: webhookURL,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// Notify delivers one message, truncating it to the webhook limit first.
func (n *DiscordNotifier) Notify(ctx context.Context, message string) error {
	payload, err := json.Marshal(map[string]string{"content": Truncate(message)})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook message: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook delivery failed with status %d", resp.StatusCode)
	}
	n.logger.Println("Delivered webhook message.")
	return nil
}

// Truncate caps a message at the Discord limit, ending it with "..." when cut.
// The limit counts characters, not bytes, so the cut never splits a rune.
func Truncate(message string) string {
	if utf8.RuneCountInString(message) <= maxDiscordMessageLen {
		return message
	}
	return string([]rune(message)[:maxDiscordMessageLen-3]) + "..."
}
