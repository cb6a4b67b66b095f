package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Client sends messages through the Telegram Bot API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        zerolog.Logger
}

// NewClient creates a Client. baseURL is normally the public Bot API host
// and overridden in tests.
func NewClient(baseURL, token string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      token,
		log:        log.With().Str("component", "telegram").Logger(),
	}
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// statusError is a non-2xx Bot API response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("telegram: status %d: %s", e.code, e.body)
}

// SendMessage delivers text to a chat, retrying transient failures with
// exponential backoff. 429 and 5xx responses and network errors are
// retried; other client errors are permanent.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 15 * time.Second

	return backoff.Retry(func() error {
		err := c.send(ctx, chatID, text)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return backoff.Permanent(err)
		}
		c.log.Warn().Err(err).Int64("chat_id", chatID).Msg("send failed, retrying")
		return err
	}, backoff.WithContext(b, ctx))
}

func (c *Client) send(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return backoff.Permanent(err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &statusError{code: resp.StatusCode, body: string(body)}
	}
	return nil
}

func isRetryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	// Network-level failures are worth retrying.
	return true
}
