package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/PratikDhanave/datos-ingest/internal/models"
)

// Publisher ships observability records to a Kafka topic.
// Writes are asynchronous so the ingest handler never waits on the broker.
type Publisher struct {
	writer  *kafka.Writer
	brokers []string
	logger  *log.Logger
	dial    func(ctx context.Context, network, address string) (io.Closer, error)
}

func dialBroker(ctx context.Context, network, address string) (io.Closer, error) {
	return kafka.DialContext(ctx, network, address)
}

// NewPublisher creates an async writer for topic. Delivery failures are
// reported through logger since WriteMessages returns before the batch is sent.
func NewPublisher(brokers []string, topic string, logger *log.Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one kafka broker required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic required")
	}
	if logger == nil {
		logger = log.Default()
	}

	p := &Publisher{brokers: brokers, logger: logger, dial: dialBroker}
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion:   p.completion,
	}
	return p, nil
}

// Publish enqueues a record keyed by its request ID.
func (p *Publisher) Publish(ctx context.Context, rec models.Record) error {
	msg, err := messageFor(rec)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Ping dials the first reachable broker. Used by the readiness probe.
func (p *Publisher) Ping(ctx context.Context) error {
	var lastErr error
	for _, b := range p.brokers {
		conn, err := p.dial(ctx, "tcp", b)
		if err != nil {
			lastErr = err
			continue
		}
		return conn.Close()
	}
	return lastErr
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) completion(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range messages {
		p.logger.Printf("[Kafka] failed to publish record %s: %v", m.Key, err)
	}
}

func messageFor(rec models.Record) (kafka.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(rec.RequestID),
		Value: data,
		Time:  rec.ReceivedAt,
	}, nil
}
