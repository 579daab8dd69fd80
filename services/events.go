package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventEntryLiked   = "entry.liked"
	EventEntryUnliked = "entry.unliked"

	DefaultLikeQueue = "like.queue"
)

// LikeEvent is published after a toggle changed a like's state.
type LikeEvent struct {
	Type       string    `json:"type"`
	EntryID    uint      `json:"entry_id"`
	VoterID    string    `json:"voter_id"`
	LikesCount int64     `json:"likes_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev LikeEvent) error
}

// AMQPPublisher sends events as persistent JSON messages to a queue on the
// default exchange.
type AMQPPublisher struct {
	mu    sync.Mutex
	ch    *amqp.Channel
	queue string
}

func NewAMQPPublisher(ch *amqp.Channel, queue string) *AMQPPublisher {
	if queue == "" {
		queue = DefaultLikeQueue
	}
	return &AMQPPublisher{ch: ch, queue: queue}
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev LikeEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.OccurredAt,
		Type:         ev.Type,
		Body:         body,
	})
}
