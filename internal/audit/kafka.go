package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Sink delivers audit events to an external system.
type Sink interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// KafkaSink publishes audit events to a Kafka topic, keyed by code hash so
// one applicant's trail stays in partition order.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink connects to the given brokers. Returns an error if the client
// cannot be constructed; broker availability is checked lazily on produce.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProduceRequestTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	return &KafkaSink{client: client, topic: topic}, nil
}

// wireEvent is the JSON shape published to Kafka.
type wireEvent struct {
	Timestamp string `json:"timestamp"`
	CodeHash  string `json:"code_hash"`
	Action    string `json:"action"`
	Decision  string `json:"decision"`
	Reason    string `json:"reason,omitempty"`
	Amount    int    `json:"amount,omitempty"`
	Period    int    `json:"period,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
	Browser   string `json:"browser,omitempty"`
	OS        string `json:"os,omitempty"`
}

func (s *KafkaSink) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(wireEvent{
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
		CodeHash:  event.CodeHash,
		Action:    event.Action,
		Decision:  event.Decision,
		Reason:    event.Reason,
		Amount:    event.Amount,
		Period:    event.Period,
		RequestID: event.RequestID,
		ClientIP:  event.ClientIP,
		Browser:   event.Browser,
		OS:        event.OS,
	})
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Key:   []byte(event.CodeHash),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (s *KafkaSink) Close() {
	s.client.Close()
}
