// Package notify delivers the rendered digest to a chat channel. Two
// channels are supported: ServerChan (primary) and an enterprise WeChat
// webhook (fallback). Every send is a single best-effort attempt.
package notify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const requestTimeout = 10 * time.Second

// ServerChan pushes messages through the sctapi.ftqq.com relay.
type ServerChan struct {
	sendKey string
	baseURL string
	client  *http.Client
}

func NewServerChan(sendKey string) *ServerChan {
	return &ServerChan{
		sendKey: sendKey,
		baseURL: "https://sctapi.ftqq.com",
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (s *ServerChan) Configured() bool {
	return s.sendKey != ""
}

// Send pushes one message. ServerChan answers JSON with code 0 on success.
func (s *ServerChan) Send(title, content string) error {
	if !s.Configured() {
		return fmt.Errorf("ServerChan send key not configured")
	}

	endpoint := fmt.Sprintf("%s/%s.send", s.baseURL, s.sendKey)
	form := url.Values{
		"title": {title},
		"desp":  {content},
	}

	resp, err := s.client.Post(endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("ServerChan request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ServerChan API error: status %d", resp.StatusCode)
	}

	var result struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("ServerChan response decode failed: %w", err)
	}
	if result.Code != 0 {
		return fmt.Errorf("ServerChan push failed: %s", result.Message)
	}
	return nil
}
