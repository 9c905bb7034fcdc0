// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSClient wraps the NATS connection and provides the session operations
type NATSClient struct {
	conn    *nats.Conn
	config  Config
	timeout time.Duration
}

// NATSClientInterface defines the interface for NATS operations
// This allows for easy mocking and testing
type NATSClientInterface interface {
	Subscribe(ctx context.Context, subject string, handler func(data []byte)) (unsubscribe func() error, err error)
	Request(ctx context.Context, request *SessionNATSRequest) ([]byte, error)
	Close() error
}

// Subscribe delivers the payload of every message published on subject to handler
func (c *NATSClient) Subscribe(ctx context.Context, subject string, handler func(data []byte)) (func() error, error) {
	if subject == "" || handler == nil {
		return nil, fmt.Errorf("invalid NATS subscription: subject and handler must be set")
	}

	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		slog.ErrorContext(ctx, "NATS subscribe failed", "subject", subject, "error", err)
		return nil, fmt.Errorf("NATS subscribe failed: %w", err)
	}

	slog.DebugContext(ctx, "subscribed to NATS subject", "subject", subject)

	return sub.Unsubscribe, nil
}

// Request sends a request via NATS and waits for the response
func (c *NATSClient) Request(ctx context.Context, request *SessionNATSRequest) ([]byte, error) {

	if request == nil || request.Subject == "" {
		slog.ErrorContext(ctx, "invalid NATS session request: subject must be set")
		return nil, fmt.Errorf("invalid NATS session request: subject must be set")
	}

	timeout := request.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	natsResponse, errRequest := c.conn.RequestWithContext(ctx, request.Subject, request.Message)
	if errRequest != nil {
		slog.ErrorContext(ctx, "NATS request failed", "error", errRequest)
		return nil, fmt.Errorf("NATS request failed: %w", errRequest)
	}

	slog.DebugContext(ctx, "received NATS response",
		"subject", request.Subject,
		"message", string(natsResponse.Data),
		"timeout", timeout,
	)

	return natsResponse.Data, nil
}

// Close gracefully closes the NATS connection
func (c *NATSClient) Close() error {
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}

// NewClient creates a new NATS client with the given configuration
func NewClient(ctx context.Context, config Config) (*NATSClient, error) {
	slog.InfoContext(ctx, "creating NATS client",
		"url", config.URL,
		"timeout", config.Timeout,
	)

	opts := []nats.Option{
		nats.Name("lfx-v2-product-listing"),
		nats.Timeout(config.Timeout),
		nats.MaxReconnects(config.MaxReconnect),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.WarnContext(ctx, "NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection closed")
		}),
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to NATS", "error", err)
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	client := &NATSClient{
		conn:    conn,
		config:  config,
		timeout: config.Timeout,
	}

	slog.InfoContext(ctx, "NATS client created successfully",
		"connected_url", conn.ConnectedUrl(),
		"status", conn.Status(),
	)

	return client, nil
}
