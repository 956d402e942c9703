package queue

import (
	"context"
	"encoding/json"

	kafka "github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/sirupsen/logrus"
)

var _ EngagementQueue = (*Kafka)(nil)

type Kafka struct {
	producer *kafka.Producer
	topic    string
}

func NewKafka(servers, topic string) (*Kafka, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": servers,
	})
	if err != nil {
		return nil, err
	}

	q := &Kafka{
		producer: producer,
		topic:    topic,
	}

	go func() {
		for e := range producer.Events() {
			if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
				logrus.Warnf("engagement event delivery failed: %v", m.TopicPartition.Error)
			}
		}
	}()

	return q, nil
}

func (q *Kafka) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return q.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &q.topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(event.ParentID),
		Value: data,
	}, nil)
}

func (q *Kafka) Close() {
	q.producer.Flush(5000)
	q.producer.Close()
}
