// internal/event/publisher.go
package event

import (
	"log"

	"github.com/streadway/amqp"
)

// Exchange adalah topic exchange untuk semua event order.
const Exchange = "orders_exchange"

// Routing keys yang dipakai service ini.
const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
)

// Publisher adalah "kontrak" untuk mengirim event ke message broker.
// Service layer hanya bergantung pada interface ini, bukan pada AMQP langsung.
type Publisher interface {
	Publish(routingKey string, body []byte) error
}

type amqpPublisher struct {
	ch *amqp.Channel
}

func NewAMQPPublisher(ch *amqp.Channel) Publisher {
	return &amqpPublisher{ch: ch}
}

func (p *amqpPublisher) Publish(routingKey string, body []byte) error {
	return p.ch.Publish(
		Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// DeclareExchange memastikan exchange tersedia sebelum publish pertama.
func DeclareExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
}

// StartEventLogger menjalankan consumer yang mencatat semua event 'order.*'.
// Dipanggil sebagai goroutine dari main.
func StartEventLogger(ch *amqp.Channel) {
	q, err := ch.QueueDeclare(
		"q.orders.log",
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Printf("Failed to declare queue 'q.orders.log': %v", err)
		return
	}

	if err := ch.QueueBind(q.Name, "order.#", Exchange, false, nil); err != nil {
		log.Printf("Failed to bind queue 'q.orders.log': %v", err)
		return
	}

	msgs, err := ch.Consume(
		q.Name,
		"",    // consumer
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Printf("Failed to register consumer for 'q.orders.log': %v", err)
		return
	}

	log.Println("Event logger for 'order.#' started...")
	for d := range msgs {
		log.Printf("[EVENT LOGGER] %s: %s", d.RoutingKey, d.Body)
	}
}
