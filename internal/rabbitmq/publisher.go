// Package rabbitmq публикует события платежей для внешних потребителей
// (бухгалтерия, квитанции). Публикация - fire-and-forget: отсутствие
// брокера не мешает обработке запроса.
package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// ExchangeName имя exchange для событий платежей.
const ExchangeName = "payments"

// Publisher публикует JSON-сообщения в exchange платежей.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher открывает канал и объявляет exchange и очередь событий.
func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	const op = "rabbitmq.NewPublisher"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q, err := ch.QueueDeclare(
		"payment_events",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.QueueBind(q.Name, "payment.completed", ExchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.QueueBind(q.Name, "payment.refunded", ExchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Publisher{ch: ch}, nil
}

// Publish сериализует сообщение в JSON и публикует его с указанным ключом.
func (p *Publisher) Publish(routingKey string, message any) error {
	const op = "rabbitmq.Publish"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
