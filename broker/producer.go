package broker

import (
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Producer publishes raw payloads to a subject.
type Producer interface {
	Publish(subject string, data []byte) error
}

// Client is a NATS connection used both to publish domain events and to
// subscribe to them for the websocket feed.
type Client struct {
	conn *nats.Conn

	mu   sync.Mutex
	subs []*nats.Subscription
}

func InitClient(url string) (*Client, error) {
	conn, err := nats.Connect(url,
		nats.Name("taskboard-api"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				zap.L().Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			zap.L().Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	zap.L().Info("nats client initialized", zap.String("url", conn.ConnectedUrl()))
	return &Client{conn: conn}, nil
}

func (c *Client) Publish(subject string, data []byte) error {
	if c == nil || c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

func (c *Client) Close() {
	if c == nil || c.conn == nil {
		return
	}
	c.mu.Lock()
	for _, sub := range c.subs {
		if err := sub.Unsubscribe(); err != nil {
			zap.L().Warn("failed to unsubscribe", zap.String("subject", sub.Subject), zap.Error(err))
		}
	}
	c.subs = nil
	c.mu.Unlock()

	if err := c.conn.Drain(); err != nil {
		zap.L().Warn("failed to drain nats connection", zap.Error(err))
		c.conn.Close()
	}
}
