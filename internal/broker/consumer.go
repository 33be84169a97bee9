package broker

import (
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	deliveries <-chan amqp.Delivery
}

func NewConsumer(uri, queue, tag string, prefetch int, log *slog.Logger) (*Consumer, error) {
	conn, ch, err := dial(uri, queue)
	if err != nil {
		return nil, err
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		_ = closeAll(ch, conn)
		return nil, err
	}
	deliveries, err := ch.Consume(
		queue,
		tag,
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = closeAll(ch, conn)
		return nil, err
	}
	log.Info("rabbit_consumer_started", "queue", queue, "prefetch", prefetch)
	return &Consumer{conn: conn, ch: ch, deliveries: deliveries}, nil
}

// Mensagem é o que o consumidor repassa adiante: o tipo do evento e o corpo bruto.
type Mensagem struct {
	Tipo string
	Body []byte
}

// Run encaminha as mensagens até o canal de entregas fechar.
func (c *Consumer) Run(handle func(Mensagem)) {
	for d := range c.deliveries {
		handle(Mensagem{Tipo: tipoDe(d), Body: d.Body})
	}
}

func tipoDe(d amqp.Delivery) string {
	if d.Type != "" {
		return d.Type
	}
	if t, ok := d.Headers["tipo"].(string); ok {
		return t
	}
	return ""
}

func (c *Consumer) Close() error {
	return closeAll(c.ch, c.conn)
}
