package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RoutingKey is used for every notification published to the exchange.
const RoutingKey = "notification.created"

type message struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	SentAt  int64  `json:"sent_at"`
}

// AMQPSender publishes notifications as JSON to a topic exchange.
type AMQPSender struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQP(url, exchange string) (*AMQPSender, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPSender{conn: conn, ch: ch, exchange: exchange}, nil
}

func (s *AMQPSender) Notify(ctx context.Context, subject, msg string) error {
	pub, err := publishing(subject, msg, time.Now())
	if err != nil {
		return err
	}
	return s.ch.PublishWithContext(ctx, s.exchange, RoutingKey, false, false, pub)
}

// publishing encodes one notification as a persistent JSON message.
func publishing(subject, msg string, at time.Time) (amqp.Publishing, error) {
	b, err := json.Marshal(message{Subject: subject, Message: msg, SentAt: at.Unix()})
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    at,
		Body:         b,
	}, nil
}

func (s *AMQPSender) Close() error {
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
