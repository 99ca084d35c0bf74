package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/dmitrijs2005/workshops/internal/logging"
)

// DefaultTopic receives activation notices unless configured otherwise.
const DefaultTopic = "workshop.account.activation"

type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	log      logging.Logger
}

// NewProducerConfig returns the sarama settings used for notices: every
// replica acknowledges and the producer is idempotent.
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1
	return config
}

func NewKafkaNotifier(brokers []string, topic string, log logging.Logger) (*KafkaNotifier, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}
	return NewKafkaNotifierWithProducer(producer, topic, log), nil
}

func NewKafkaNotifierWithProducer(producer sarama.SyncProducer, topic string, log logging.Logger) *KafkaNotifier {
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaNotifier{producer: producer, topic: topic, log: log.With("module", "notify")}
}

func (k *KafkaNotifier) NotifyActivation(ctx context.Context, n *ActivationNotice) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notice: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(n.UserName),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := k.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send notice: %w", err)
	}

	k.log.Debug(ctx, "activation notice sent", "topic", k.topic, "partition", partition, "offset", offset)
	return nil
}

func (k *KafkaNotifier) Close() error {
	return k.producer.Close()
}
