package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

// NATSPublisher implements domain.EventPublisher over core NATS
type NATSPublisher struct {
	conn *nats.Conn
	log  logrus.FieldLogger
}

// NewNATSPublisher connects to the NATS server at url
func NewNATSPublisher(url string, log logrus.FieldLogger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("talentnest"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Warn("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.WithField("url", c.ConnectedUrl()).Info("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	return &NATSPublisher{conn: conn, log: log}, nil
}

// Publish implements domain.EventPublisher
func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// NoopPublisher is used when no broker is configured
type NoopPublisher struct {
	log logrus.FieldLogger
}

// NewNoopPublisher creates a publisher that only logs
func NewNoopPublisher(log logrus.FieldLogger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

// Publish implements domain.EventPublisher
func (p *NoopPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	p.log.WithField("subject", subject).Debug("event publishing disabled, dropping event")
	return nil
}

var (
	_ domain.EventPublisher = (*NATSPublisher)(nil)
	_ domain.EventPublisher = (*NoopPublisher)(nil)
)
