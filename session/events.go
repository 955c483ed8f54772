package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSubscriptionClosed = errors.New("subscription closed")

type EventType string

const (
	SignedIn  EventType = "SIGNED_IN"
	SignedOut EventType = "SIGNED_OUT"
)

type Event struct {
	Type      EventType `json:"event"`
	UserID    string    `json:"userId"`
	SessionID string    `json:"sessionId"`
	At        time.Time `json:"at"`
}

type Broker struct {
	rdb *redis.Client
}

func NewBroker(rdb *redis.Client) *Broker {
	return &Broker{rdb: rdb}
}

func eventChannel(userID string) string {
	return "auth:events:" + userID
}

func (b *Broker) Publish(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := b.rdb.Publish(ctx, eventChannel(event.UserID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

type Subscription struct {
	pubsub   *redis.PubSub
	messages <-chan *redis.Message
}

// Subscribe returns once redis has confirmed the subscription, so no event
// published afterwards is missed.
func (b *Broker) Subscribe(ctx context.Context, userID string) (*Subscription, error) {
	pubsub := b.rdb.Subscribe(ctx, eventChannel(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}
	return &Subscription{pubsub: pubsub, messages: pubsub.Channel()}, nil
}

// Next blocks until the next event arrives, ctx is done or the
// subscription is closed.
func (s *Subscription) Next(ctx context.Context) (Event, error) {
	var msg *redis.Message
	select {
	case <-ctx.Done():
		return Event{}, ctx.Err()
	case m, ok := <-s.messages:
		if !ok {
			return Event{}, ErrSubscriptionClosed
		}
		msg = m
	}

	var event Event
	if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	return event, nil
}

func (s *Subscription) Close() error {
	return s.pubsub.Close()
}
