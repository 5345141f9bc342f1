package producer

import (
	"context"
	"encoding/json"

	"github.com/mira-tu/FinalFlower-sub001/internal/domain/model"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

// OrderEventPublisher 發布訂單事件，失敗不影響已提交的訂單
type OrderEventPublisher interface {
	Publish(ctx context.Context, event *model.OrderEvent) error
	Close() error
}

// KafkaOrderPublisher 透過熔斷器寫入 kafka
type KafkaOrderPublisher struct {
	producer Producer
	breaker  *gobreaker.CircuitBreaker[struct{}]
}

func NewKafkaOrderPublisher(p Producer, cfg *Config) *KafkaOrderPublisher {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = DefaultConfig().BreakerFailures
	}
	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "order-events",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	return &KafkaOrderPublisher{producer: p, breaker: breaker}
}

func (k *KafkaOrderPublisher) Publish(ctx context.Context, event *model.OrderEvent) error {
	msg, err := convertToMessage(event)
	if err != nil {
		return err
	}
	_, err = k.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, k.producer.Produce(ctx, msg)
	})
	return err
}

func (k *KafkaOrderPublisher) Close() error {
	return k.producer.Close()
}

func convertToMessage(event *model.OrderEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(event.AggregateKey()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
		Time: event.CreatedAt,
	}, nil
}

// NoopPublisher 沒有設定 broker 時使用，只記錄 log
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, event *model.OrderEvent) error {
	log.Debug().
		Str("event_type", string(event.EventType)).
		Int64("order_id", event.OrderID).
		Msg("order event not published, no broker configured")
	return nil
}

func (NoopPublisher) Close() error { return nil }

var (
	_ OrderEventPublisher = (*KafkaOrderPublisher)(nil)
	_ OrderEventPublisher = NoopPublisher{}
)
