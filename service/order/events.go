package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	salesEntity "shopcore.GO/model/entity/sales"
)

// StatusChangedEvent is published when an order's status transition
// commits. Consumers (notifications, analytics) are external.
type StatusChangedEvent struct {
	EventID     string    `json:"event_id"`
	OrderID     uint      `json:"order_id"`
	OrderNumber string    `json:"order_number,omitempty"`
	StoreID     uint      `json:"store_id"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BulkStatusChangedEvent is published once per bulk transition.
type BulkStatusChangedEvent struct {
	EventID    string    `json:"event_id"`
	StoreID    uint      `json:"store_id"`
	OrderIDs   []uint    `json:"order_ids"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventEmitter publishes order events to Kafka. A nil emitter or nil
// writer disables publishing; failures are logged, never returned —
// eventing is best-effort and must not fail the write that triggered it.
type EventEmitter struct {
	writer *kafka.Writer
}

func NewEventEmitter(writer *kafka.Writer) *EventEmitter {
	return &EventEmitter{writer: writer}
}

func (e *EventEmitter) publish(key string, payload interface{}) {
	if e == nil || e.writer == nil {
		return
	}
	value, err := json.Marshal(payload)
	if err != nil {
		logger.Error().Err(err).Msg("event marshal failed")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("event publish failed")
	}
}

// StatusChanged publishes a single-order transition event.
func (e *EventEmitter) StatusChanged(ord *salesEntity.Order, from, to string) {
	if e == nil || e.writer == nil {
		return
	}
	e.publish(fmt.Sprintf("order-%d", ord.ID), StatusChangedEvent{
		EventID:     uuid.NewString(),
		OrderID:     ord.ID,
		OrderNumber: ord.OrderNumber,
		StoreID:     ord.StoreID,
		From:        from,
		To:          to,
		OccurredAt:  time.Now(),
	})
}

// BulkStatusChanged publishes one event covering a bulk transition.
func (e *EventEmitter) BulkStatusChanged(storeID uint, orderIDs []uint, to string) {
	if e == nil || e.writer == nil {
		return
	}
	e.publish(fmt.Sprintf("store-%d", storeID), BulkStatusChangedEvent{
		EventID:    uuid.NewString(),
		StoreID:    storeID,
		OrderIDs:   orderIDs,
		To:         to,
		OccurredAt: time.Now(),
	})
}
