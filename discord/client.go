package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const defaultBaseURL = "https://discord.com/api/v10"

// Minimal Discord REST client covering the moderation verbs. Retries and
// timeouts are handled here (retryablehttp with backoff); callers treat each
// method as a single attempt.
type Client struct {
	http    *retryablehttp.Client
	token   string
	baseURL string
}

type ClientOption func(*Client)

func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

func NewClient(token string, opts ...ClientOption) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil
	c := &Client{
		http:    rc,
		token:   token,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetChannel(ctx context.Context, channelID string) (*Channel, error) {
	var ch Channel
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/channels/%s", channelID), nil, &ch, ""); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID), nil, nil, "")
}

// Sets a communication restriction on the guild member until the given
// instant.
func (c *Client) MuteUser(ctx context.Context, guildID, userID string, until time.Time) error {
	body := map[string]string{
		"communication_disabled_until": until.UTC().Format(time.RFC3339),
	}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/guilds/%s/members/%s", guildID, userID), body, nil, "")
}

// Permanently bans the user; reason (when non-empty) lands in the guild's
// audit log.
func (c *Client) BanUser(ctx context.Context, guildID, userID, reason string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/guilds/%s/bans/%s", guildID, userID), map[string]int{}, nil, reason)
}

func (c *Client) CreateMessage(ctx context.Context, channelID string, embeds []Embed) error {
	body := map[string]any{
		"embeds": embeds,
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/messages", channelID), body, nil, "")
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, auditReason string) error {
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		buf = bytes.NewReader(raw)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auditReason != "" {
		req.Header.Set("X-Audit-Log-Reason", url.PathEscape(auditReason))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(resp.Body)
		// error body is best-effort; the status code alone is meaningful
		_ = json.Unmarshal(raw, apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response body: %w", err)
		}
	}
	return nil
}
