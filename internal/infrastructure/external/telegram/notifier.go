package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier sends pipeline notifications through a Telegram bot
type Notifier struct {
	botToken      string
	baseURL       string
	defaultChatID int64
	client        *http.Client
}

// NewNotifier creates a Telegram notifier
func NewNotifier(botToken, baseURL string, defaultChatID int64) *Notifier {
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	return &Notifier{
		botToken:      botToken,
		baseURL:       baseURL,
		defaultChatID: defaultChatID,
		client:        &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether the notifier is configured
func (n *Notifier) Enabled() bool {
	return n.botToken != ""
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// Send posts a message to the given chat. A zero chat ID falls back to the
// configured default chat.
func (n *Notifier) Send(ctx context.Context, chatID int64, text string) error {
	if !n.Enabled() {
		return nil
	}
	if chatID == 0 {
		chatID = n.defaultChatID
	}
	if chatID == 0 {
		return fmt.Errorf("no telegram chat configured")
	}

	b, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}
	return nil
}
