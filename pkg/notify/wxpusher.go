package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const wxPusherURL = "https://wxpusher.zjiecode.com/api/send/message"

// wxPusherOKCode is the application-level success code in the send response
const wxPusherOKCode = 1000

// WxPusher pushes reports through the WxPusher message API
type WxPusher struct {
	// BaseURL overrides the production endpoint (tests)
	BaseURL string

	appToken string
	uid      string
	client   *http.Client
}

// NewWxPusher creates a WxPusher channel. Returns nil when either credential
// is missing, so the channel is simply not configured.
func NewWxPusher(appToken, uid string) *WxPusher {
	if appToken == "" || uid == "" {
		return nil
	}
	return &WxPusher{
		BaseURL:  wxPusherURL,
		appToken: appToken,
		uid:      uid,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
}

// Name returns the channel name
func (w *WxPusher) Name() string {
	return "wxpusher"
}

// Push sends one message. An HTTP-level success with a non-1000 result code
// is still a failure.
func (w *WxPusher) Push(ctx context.Context, title, body string) error {
	payload := struct {
		AppToken    string   `json:"appToken"`
		ContentType int      `json:"contentType"`
		Summary     string   `json:"summary"`
		Content     string   `json:"content"`
		UIDs        []string `json:"uids"`
	}{
		AppToken:    w.appToken,
		ContentType: 1, // plain text
		Summary:     title,
		Content:     body,
		UIDs:        []string{w.uid},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.BaseURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("wxpusher returned %d", resp.StatusCode)
	}

	var result struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
		Data []struct {
			Code   int    `json:"code"`
			Status string `json:"status"`
		} `json:"data"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data) == 0 || result.Data[0].Code != wxPusherOKCode {
		return fmt.Errorf("wxpusher rejected message: %s", raw)
	}
	return nil
}
