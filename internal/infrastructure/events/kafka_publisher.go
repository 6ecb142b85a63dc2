package events

import (
	"context"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/hiking-league/internal/domain/scoring"
	"github.com/riskibarqy/hiking-league/internal/platform/resilience"
	"github.com/segmentio/kafka-go"
)

const headerEventType = "event_type"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes score events to one topic. The writer is created on the
// first publish so a down broker does not block startup.
type KafkaPublisher struct {
	brokers []string
	topic   string
	breaker *resilience.CircuitBreaker

	mu        sync.Mutex
	writer    messageWriter
	newWriter func() messageWriter
}

func NewKafkaPublisher(brokers []string, topic string, breakerCfg resilience.CircuitBreakerConfig) *KafkaPublisher {
	p := &KafkaPublisher{
		brokers: brokers,
		topic:   strings.TrimSpace(topic),
		breaker: resilience.NewCircuitBreaker(breakerCfg),
	}
	p.newWriter = func() messageWriter {
		return &kafka.Writer{
			Addr:         kafka.TCP(p.brokers...),
			Topic:        p.topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		}
	}
	return p
}

func (p *KafkaPublisher) PublishRecalculated(ctx context.Context, event scoring.RecalculatedEvent) error {
	msg, err := recalculatedMessage(event)
	if err != nil {
		return err
	}

	err = p.breaker.Execute(func() error {
		return p.writerOrInit().WriteMessages(ctx, msg)
	})
	if err != nil {
		return crerr.Wrapf(err, "publish %s for visit %s to %s", event.Type, event.VisitID, p.topic)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		return nil
	}
	err := p.writer.Close()
	p.writer = nil
	return err
}

func (p *KafkaPublisher) writerOrInit() messageWriter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		p.writer = p.newWriter()
	}
	return p.writer
}

// recalculatedMessage keys by visit so events of one visit stay ordered.
func recalculatedMessage(event scoring.RecalculatedEvent) (kafka.Message, error) {
	if strings.TrimSpace(event.VisitID) == "" {
		return kafka.Message{}, crerr.New("event visit id is required")
	}
	if event.Type == "" {
		event.Type = scoring.EventScoreRecalculated
	}

	payload, err := sonic.Marshal(event)
	if err != nil {
		return kafka.Message{}, crerr.Wrap(err, "encode score recalculated event")
	}
	return kafka.Message{
		Key:   []byte(event.VisitID),
		Value: payload,
		Time:  event.RecalculatedAt,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(event.Type)},
		},
	}, nil
}

// NopPublisher drops events. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishRecalculated(context.Context, scoring.RecalculatedEvent) error {
	return nil
}
