package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const telegramAPIBase = "https://api.telegram.org"

// Telegram pushes reports through the Telegram bot sendMessage API
type Telegram struct {
	// BaseURL overrides the production endpoint (tests)
	BaseURL string

	botToken string
	chatID   string
	client   *http.Client
}

// NewTelegram creates a Telegram channel. Returns nil when either credential
// is missing, so the channel is simply not configured.
func NewTelegram(botToken, chatID string) *Telegram {
	if botToken == "" || chatID == "" {
		return nil
	}
	return &Telegram{
		BaseURL:  telegramAPIBase,
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
}

// Name returns the channel name
func (t *Telegram) Name() string {
	return "telegram"
}

// Push sends one message. Telegram answers HTTP 200 with ok=false for
// application-level rejections; those count as failures too.
func (t *Telegram) Push(ctx context.Context, title, body string) error {
	payload := struct {
		ChatID string `json:"chat_id"`
		Text   string `json:"text"`
	}{
		ChatID: t.chatID,
		Text:   title + "\n\n" + body,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("telegram returned %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}

	if !result.OK {
		return fmt.Errorf("telegram rejected message: %s", result.Description)
	}
	return nil
}
