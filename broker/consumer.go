package broker

import (
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var ErrNotConnected = errors.New("broker not connected")

// Message is a broker message decoupled from the NATS types.
type Message struct {
	Subject string
	Data    []byte
}

type Subscriber interface {
	Subscribe(subject string, handler func(Message)) error
}

func (c *Client) Subscribe(subject string, handler func(Message)) error {
	if c == nil || c.conn == nil {
		return ErrNotConnected
	}
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(Message{Subject: msg.Subject, Data: msg.Data})
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()

	zap.L().Info("nats subscription started", zap.String("subject", subject))
	return nil
}

// SubscribeAll subscribes the same handler to every subject.
func SubscribeAll(s Subscriber, subjects []string, handler func(Message)) error {
	for _, subject := range subjects {
		if err := s.Subscribe(subject, handler); err != nil {
			return err
		}
	}
	return nil
}
