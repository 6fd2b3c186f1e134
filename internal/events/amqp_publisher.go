// internal/events/amqp_publisher.go
package events

import (
    "encoding/json"
    "fmt"

    "github.com/streadway/amqp"
)

const sendEventsQueue = "campaign_send_events"

// AMQPPublisher publishes send events to a durable RabbitMQ queue.
type AMQPPublisher struct {
    conn    *amqp.Connection
    channel *amqp.Channel
}

// NewAMQPPublisher connects to the broker and declares the events queue.
func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
    conn, err := amqp.Dial(url)
    if err != nil {
        return nil, fmt.Errorf("failed to connect to queue: %w", err)
    }

    ch, err := conn.Channel()
    if err != nil {
        conn.Close()
        return nil, fmt.Errorf("failed to open queue channel: %w", err)
    }

    _, err = ch.QueueDeclare(
        sendEventsQueue,
        true,
        false,
        false,
        false,
        nil,
    )
    if err != nil {
        ch.Close()
        conn.Close()
        return nil, fmt.Errorf("failed to declare queue: %w", err)
    }

    return &AMQPPublisher{conn: conn, channel: ch}, nil
}

// PublishSendEvent publishes one event as JSON.
func (p *AMQPPublisher) PublishSendEvent(event SendEvent) error {
    body, err := json.Marshal(event)
    if err != nil {
        return err
    }

    return p.channel.Publish(
        "",
        sendEventsQueue,
        false,
        false,
        amqp.Publishing{
            ContentType: "application/json",
            Body:        body,
        },
    )
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
    if err := p.channel.Close(); err != nil {
        p.conn.Close()
        return err
    }
    return p.conn.Close()
}

var _ Publisher = (*AMQPPublisher)(nil)
