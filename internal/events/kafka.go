package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
)

// KafkaPublisher publishes events to Kafka, one writer per topic.
type KafkaPublisher struct {
	filings *kafka.Writer
	alerts  *kafka.Writer
	unlocks *kafka.Writer
	now     func() time.Time
}

// NewKafkaPublisher creates a publisher for the given brokers.
func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	writer := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		}
	}
	return &KafkaPublisher{
		filings: writer(TopicFilingStored),
		alerts:  writer(TopicAlertStored),
		unlocks: writer(TopicUnlockGranted),
		now:     time.Now,
	}
}

// Close flushes and closes all writers.
func (p *KafkaPublisher) Close() error {
	for _, w := range []*kafka.Writer{p.filings, p.alerts, p.unlocks} {
		if err := w.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (p *KafkaPublisher) PublishFilingStored(ctx context.Context, f *domain.Filing) error {
	return p.publish(ctx, p.filings, f.FilingURL, f)
}

func (p *KafkaPublisher) PublishAlertStored(ctx context.Context, a *domain.TransferAlert) error {
	return p.publish(ctx, p.alerts, a.TxHash, a)
}

func (p *KafkaPublisher) PublishUnlockGranted(ctx context.Context, userWallet string, kind domain.ItemKind, itemID int64, mode string) error {
	event := UnlockGrantedEvent{
		UserWallet: userWallet,
		ItemKind:   kind,
		ItemID:     itemID,
		Mode:       mode,
		GrantedAt:  p.now().UTC(),
	}
	return p.publish(ctx, p.unlocks, userWallet, event)
}

func (p *KafkaPublisher) publish(ctx context.Context, w *kafka.Writer, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	})
}

var _ Publisher = (*KafkaPublisher)(nil)
