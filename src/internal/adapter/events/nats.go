package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/api-sage/money-transfer-service/src/internal/logger"
	"github.com/api-sage/money-transfer-service/src/internal/telemetry"
)

// NATSPublisher publishes committed transactions. It is fire-and-forget:
// delivery problems never affect the ledger.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

func NewNATSPublisher(url string, clientName string) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name(clientName),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(10),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Error("nats disconnected", err, nil)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", logger.Fields{"url": nc.ConnectedUrl()})
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	return &NATSPublisher{conn: conn, subject: TransactionCompletedSubject}, nil
}

func (p *NATSPublisher) PublishTransactionCompleted(_ context.Context, txn domain.Transaction) error {
	data, err := json.Marshal(NewTransactionCompleted(txn))
	if err != nil {
		telemetry.EventsPublishedTotal.WithLabelValues(p.subject, "error").Inc()
		return fmt.Errorf("marshal transaction event: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		telemetry.EventsPublishedTotal.WithLabelValues(p.subject, "error").Inc()
		return fmt.Errorf("publish transaction event: %w", err)
	}

	telemetry.EventsPublishedTotal.WithLabelValues(p.subject, "ok").Inc()
	return nil
}

func (p *NATSPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
		p.conn.Close()
	}
}
