package broker

import (
	"bookStore/internal/config"
	"bookStore/package/logger"
	"context"
	"fmt"
	"github.com/IBM/sarama"
	"time"
)

const connectAttempts = 5

type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// Connect returns nil when no brokers are configured.
func Connect(cfg config.BrokerConfig) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		logger.Log.Info("Event publishing disabled")
		return nil, nil
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll

	var (
		producer sarama.SyncProducer
		err      error
	)
	for i := 1; i <= connectAttempts; i++ {
		producer, err = sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
		if err == nil {
			logger.Log.Info("Kafka producer connected to ", cfg.Brokers)
			return NewProducer(producer, cfg.OrderTopic), nil
		}
		logger.Log.Warnf("Waiting for Kafka... (%d/%d) Error: %v", i, connectAttempts, err)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("start kafka producer: %w", err)
}

func NewProducer(producer sarama.SyncProducer, topic string) *Producer {
	return &Producer{producer: producer, topic: topic}
}

func (p *Producer) Publish(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("send to %s: %w", p.topic, err)
	}
	logger.Log.Debugf("Published %s key=%s partition=%d offset=%d", p.topic, key, partition, offset)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
