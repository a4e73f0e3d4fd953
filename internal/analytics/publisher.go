// Package analytics publishes guide usage events to RabbitMQ. Publishing is
// strictly fire-and-forget: failures are logged and returned, never allowed
// to slow down or fail a guest request.
package analytics

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const queueName = "guide.events"

// Event is one analytics datum. RID is included so the host can see per-stay
// engagement; no other guest data leaves the process.
type Event struct {
	Type string    `json:"type"`
	RID  string    `json:"rid,omitempty"`
	Mode string    `json:"mode,omitempty"`
	Path string    `json:"path,omitempty"`
	At   time.Time `json:"at"`
}

// Publisher sends events over AMQP. A nil *Publisher is valid and drops
// everything, so callers never need to branch on whether analytics is
// configured.
type Publisher struct {
	url string
}

func NewPublisher(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url}
}

// ModeResolved records the outcome of one bootstrap pass.
func (p *Publisher) ModeResolved(ctx context.Context, rid, mode, path string) error {
	return p.publish(ctx, Event{Type: "mode_resolved", RID: rid, Mode: mode, Path: path, At: time.Now().UTC()})
}

// PageView records a guide page render.
func (p *Publisher) PageView(ctx context.Context, rid, path string) error {
	return p.publish(ctx, Event{Type: "page_view", RID: rid, Path: path, At: time.Now().UTC()})
}

func (p *Publisher) publish(ctx context.Context, ev Event) error {
	if p == nil {
		return nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("warn: analytics dial failed: %v", err)
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("warn: analytics channel failed: %v", err)
		return err
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		log.Printf("warn: analytics queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err = ch.PublishWithContext(pubCtx, "", q.Name, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		log.Printf("warn: analytics publish failed: %v", err)
	}
	return err
}
