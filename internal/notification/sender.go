package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// Message is one push-notification fan-out request.
type Message struct {
	Tokens []string
	Title  string
	Body   string
}

// Sender delivers a message to the registered devices. Implementations are
// free to fail; callers never surface delivery errors to customers.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// pushSender posts messages to an FCM-compatible HTTP endpoint. A circuit
// breaker shields the worker from a flapping push service.
type pushSender struct {
	client    *http.Client
	endpoint  string
	serverKey string
	breaker   *gobreaker.CircuitBreaker[struct{}]
	logger    zerolog.Logger
}

// NewPushSender creates an HTTP-backed push sender.
func NewPushSender(endpoint, serverKey string, logger zerolog.Logger) Sender {
	settings := gobreaker.Settings{
		Name:    "push-delivery",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &pushSender{
		client:    &http.Client{Timeout: 10 * time.Second},
		endpoint:  endpoint,
		serverKey: serverKey,
		breaker:   gobreaker.NewCircuitBreaker[struct{}](settings),
		logger:    logger.With().Str("component", "push-sender").Logger(),
	}
}

type pushPayload struct {
	RegistrationIDs []string         `json:"registration_ids"`
	Notification    pushNotification `json:"notification"`
}

type pushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send posts the message to the push endpoint through the circuit breaker.
func (s *pushSender) Send(ctx context.Context, msg Message) error {
	if len(msg.Tokens) == 0 {
		return nil
	}

	body, err := json.Marshal(pushPayload{
		RegistrationIDs: msg.Tokens,
		Notification:    pushNotification{Title: msg.Title, Body: msg.Body},
	})
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	_, err = s.breaker.Execute(func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
		if err != nil {
			return struct{}{}, fmt.Errorf("failed to build push request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "key="+s.serverKey)

		resp, err := s.client.Do(req)
		if err != nil {
			return struct{}{}, fmt.Errorf("push request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			return struct{}{}, fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug().Int("token_count", len(msg.Tokens)).Str("title", msg.Title).Msg("push message delivered")

	return nil
}

// nopSender drops every message. Used when push delivery is disabled.
type nopSender struct{}

// NewNopSender creates a sender that silently discards messages.
func NewNopSender() Sender {
	return nopSender{}
}

func (nopSender) Send(context.Context, Message) error {
	return nil
}
