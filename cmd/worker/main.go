package main

import (
    "encoding/json"
    "fmt"
    "log"
    "os"

    "github.com/joho/godotenv"
    "github.com/streadway/amqp"

    "github.com/elecmate/campaign-backend/internal/events"
)

// The worker tails the campaign_send_events queue so operators can watch
// sends in real time and downstream tooling has a consumption example.

func main() {
    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }

    url := os.Getenv("AMQP_URL")
    if url == "" {
        log.Fatal("AMQP_URL must be set")
    }

    conn, err := amqp.Dial(url)
    if err != nil {
        log.Fatal("Failed to connect to RabbitMQ:", err)
    }
    defer conn.Close()

    ch, err := conn.Channel()
    if err != nil {
        log.Fatal("Failed to open a channel:", err)
    }
    defer ch.Close()

    q, err := ch.QueueDeclare(
        "campaign_send_events", // name
        true,                   // durable
        false,                  // delete when unused
        false,                  // exclusive
        false,                  // no-wait
        nil,                    // arguments
    )
    if err != nil {
        log.Fatal("Failed to declare queue:", err)
    }

    msgs, err := ch.Consume(
        q.Name,
        "",
        false, // autoAck = false for reliability
        false,
        false,
        false,
        nil,
    )
    if err != nil {
        log.Fatal("Failed to register consumer:", err)
    }

    forever := make(chan bool)

    go func() {
        totals := map[string]int{}
        for d := range msgs {
            event, err := decodeSendEvent(d.Body)
            if err != nil {
                log.Println("Invalid event:", err)
                d.Ack(false)
                continue
            }

            key := string(event.Campaign) + "/" + event.Status
            totals[key]++
            log.Printf("📩 %s -> %s (%s) [%d so far]", event.Campaign, event.Recipient, event.Status, totals[key])

            d.Ack(false)
        }
    }()

    log.Println("Worker running, waiting for send events...")
    <-forever
}

func decodeSendEvent(body []byte) (events.SendEvent, error) {
    var event events.SendEvent
    if err := json.Unmarshal(body, &event); err != nil {
        return events.SendEvent{}, err
    }
    if event.Recipient == "" || event.Campaign == "" {
        return events.SendEvent{}, fmt.Errorf("event missing recipient or campaign")
    }
    return event, nil
}
