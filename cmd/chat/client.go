package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tailortalk/models"
	"tailortalk/utils"
)

// client posts messages to the chat endpoint and remembers the session id
// the server hands back.
type client struct {
	url       string
	http      *http.Client
	sessionID string
}

func newClient(url string) *client {
	return &client{url: url, http: &http.Client{Timeout: 60 * time.Second}}
}

func (c *client) send(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(models.ChatRequest{Message: &message, SessionID: c.sessionID})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e utils.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Message == "" {
			return "", fmt.Errorf("server returned %s", resp.Status)
		}
		if e.Details != "" {
			return "", fmt.Errorf("%s: %s", e.Message, e.Details)
		}
		return "", fmt.Errorf("%s", e.Message)
	}

	var out models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode reply: %w", err)
	}
	if out.SessionID != "" {
		c.sessionID = out.SessionID
	}
	return out.Response, nil
}

// reset forgets the session so the next message starts a new conversation.
func (c *client) reset() {
	c.sessionID = ""
}
