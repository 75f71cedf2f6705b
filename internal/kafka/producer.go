package kafka

import (
	"context"
	"encoding/json"
	"time"

	"bookcourier/internal/models"

	"github.com/segmentio/kafka-go"
)

// Event wraps every message published to the order/payment topics.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type Producer struct {
	orders   *kafka.Writer
	payments *kafka.Writer
}

func NewProducer(brokers []string, orderTopic, paymentTopic string) *Producer {
	return &Producer{
		orders: kafka.NewWriter(kafka.WriterConfig{
			Brokers: brokers,
			Topic:   orderTopic,
		}),
		payments: kafka.NewWriter(kafka.WriterConfig{
			Brokers: brokers,
			Topic:   paymentTopic,
		}),
	}
}

func (p *Producer) publish(writer *kafka.Writer, key string, event Event) error {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(key),
			Value: msgBytes,
		},
	)
}

// PublishOrderCreated streams the order creation event.
func (p *Producer) PublishOrderCreated(order models.Order) error {
	return p.publish(p.orders, order.ID, Event{
		Type:      "order_created",
		Payload:   order,
		Timestamp: time.Now().UTC(),
	})
}

// PublishOrderStatusChanged streams fulfilment status updates.
func (p *Producer) PublishOrderStatusChanged(order models.Order) error {
	return p.publish(p.orders, order.ID, Event{
		Type:      "order_status_changed",
		Payload:   order,
		Timestamp: time.Now().UTC(),
	})
}

// PublishPaymentRecorded streams a settled payment.
func (p *Producer) PublishPaymentRecorded(payment models.Payment) error {
	return p.publish(p.payments, payment.TransactionID, Event{
		Type:      "payment_recorded",
		Payload:   payment,
		Timestamp: time.Now().UTC(),
	})
}

func (p *Producer) Close() error {
	if err := p.orders.Close(); err != nil {
		return err
	}
	return p.payments.Close()
}
