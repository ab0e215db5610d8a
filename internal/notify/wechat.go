package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// WorkWeChat pushes markdown messages to an enterprise WeChat group robot
// webhook.
type WorkWeChat struct {
	webhookURL string
	client     *http.Client
}

func NewWorkWeChat(webhookURL string) *WorkWeChat {
	return &WorkWeChat{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: requestTimeout},
	}
}

func (w *WorkWeChat) Configured() bool {
	return w.webhookURL != ""
}

// Send pushes one markdown message. The robot API answers errcode 0 on
// success.
func (w *WorkWeChat) Send(content string) error {
	if !w.Configured() {
		return fmt.Errorf("work WeChat webhook not configured")
	}

	payload := map[string]interface{}{
		"msgtype": "markdown",
		"markdown": map[string]string{
			"content": content,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := w.client.Post(w.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("work WeChat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("work WeChat API error: status %d", resp.StatusCode)
	}

	var result struct {
		ErrCode int    `json:"errcode"`
		ErrMsg  string `json:"errmsg"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("work WeChat response decode failed: %w", err)
	}
	if result.ErrCode != 0 {
		return fmt.Errorf("work WeChat push failed: %s", result.ErrMsg)
	}
	return nil
}
