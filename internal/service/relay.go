package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/siblingk/chatbot-sub001/internal/config"
	"github.com/siblingk/chatbot-sub001/internal/domain"
)

// RelayService exchanges one user utterance for one assistant reply through
// the external automation webhook.
type RelayService struct {
	webhookURL string
	httpClient *http.Client
}

func NewRelayService(webhookURL string) *RelayService {
	return &RelayService{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: config.RelayTimeout},
	}
}

type relayRequest struct {
	SessionID string `json:"sessionId"`
	Action    string `json:"action"`
	ChatInput string `json:"chatInput"`
}

// Send posts the message to the webhook and returns the assistant's reply
// text. Transport failures are retried once with a short backoff; webhook
// error statuses are not. Errors wrap domain.ErrRelayUnavailable or
// domain.ErrRelayStatus so callers can tell the two apart.
func (s *RelayService) Send(ctx context.Context, sessionID, text string) (string, error) {
	payload, err := json.Marshal(relayRequest{
		SessionID: sessionID,
		Action:    "sendMessage",
		ChatInput: text,
	})
	if err != nil {
		return "", fmt.Errorf("marshal relay request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= config.RelayRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %s", domain.ErrRelayUnavailable, ctx.Err())
			case <-time.After(config.RelayRetryBackoff):
			}
		}
		reply, err := s.post(ctx, payload)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		if !errors.Is(err, domain.ErrRelayUnavailable) {
			break
		}
	}
	return "", lastErr
}

func (s *RelayService) post(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrRelayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", domain.ErrRelayStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %s", domain.ErrRelayUnavailable, err)
	}
	return parseReply(body), nil
}

// parseReply resolves assistant text from whatever shape the webhook sends
// back: a JSON array whose first element carries output/response, a JSON
// object carrying output/response, a bare JSON string, or plain text. Parse
// failures degrade to the raw body; they are never errors.
func parseReply(body []byte) string {
	raw := strings.TrimSpace(string(body))

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return flattenHTML(raw)
	}

	switch v := parsed.(type) {
	case []any:
		if len(v) > 0 {
			if obj, ok := v[0].(map[string]any); ok {
				if text, ok := replyField(obj); ok {
					return flattenHTML(text)
				}
			}
		}
	case map[string]any:
		if text, ok := replyField(v); ok {
			return flattenHTML(text)
		}
	case string:
		return flattenHTML(v)
	}
	return flattenHTML(raw)
}

func replyField(obj map[string]any) (string, bool) {
	if text, ok := obj["output"].(string); ok {
		return text, true
	}
	if text, ok := obj["response"].(string); ok {
		return text, true
	}
	return "", false
}

// flattenHTML reduces an HTML fragment to its visible text. Some automation
// flows answer with markup; the chat widget renders plain text.
func flattenHTML(text string) string {
	if !strings.Contains(text, "</") && !strings.Contains(text, "/>") {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	flat := strings.TrimSpace(doc.Text())
	if flat == "" {
		return text
	}
	return flat
}
