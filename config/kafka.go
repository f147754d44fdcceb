package config

import (
	"log"
	"os"
	"strings"

	"github.com/segmentio/kafka-go"
)

// KafkaWriter is the global order-event producer. Nil when KAFKA_BROKERS
// is unset; event emission is then disabled.
var KafkaWriter *kafka.Writer

func InitKafka() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		KafkaWriter = nil
		return
	}
	topic := os.Getenv("KAFKA_ORDER_TOPIC")
	if topic == "" {
		topic = "order.status_changed"
	}
	KafkaWriter = &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	log.Printf("Kafka producer configured for topic %s", topic)
}
