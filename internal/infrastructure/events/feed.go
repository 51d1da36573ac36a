package events

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"coin-desk.backend/pkg/logger"
	"coin-desk.backend/pkg/redis"
)

// EventKind is the kind of row change being announced
type EventKind string

const (
	EventInsert EventKind = "INSERT"
	EventUpdate EventKind = "UPDATE"
)

// Event is a row-level change notification. The presentation layer
// consumes these to refresh views; workflows never rely on delivery.
type Event struct {
	Table  string          `json:"table"`
	Kind   EventKind       `json:"kind"`
	Record json.RawMessage `json:"record"`
}

// Feed publishes and subscribes to row-level change notifications over
// Redis pub/sub, one channel per table.
type Feed struct{}

// NewFeed creates a new feed
func NewFeed() *Feed {
	return &Feed{}
}

func channelFor(table string) string {
	return "feed:" + table
}

// Publish announces a row change. Best effort: failures are logged, not
// propagated, so a notification outage never fails a workflow.
func (f *Feed) Publish(ctx context.Context, table string, kind EventKind, record interface{}) {
	if f == nil || redis.GetClient() == nil {
		return
	}
	raw, err := json.Marshal(record)
	if err != nil {
		logger.Warn(ctx, "event feed: marshal failed", zap.String("table", table), zap.Error(err))
		return
	}
	payload, err := json.Marshal(Event{Table: table, Kind: kind, Record: raw})
	if err != nil {
		logger.Warn(ctx, "event feed: marshal failed", zap.String("table", table), zap.Error(err))
		return
	}
	if err := redis.Publish(ctx, channelFor(table), payload); err != nil {
		logger.Warn(ctx, "event feed: publish failed", zap.String("table", table), zap.Error(err))
	}
}

// Subscription is a live stream of events for one table.
type Subscription struct {
	C      <-chan Event
	cancel func()
}

// Unsubscribe stops the stream and closes C.
func (s *Subscription) Unsubscribe() {
	s.cancel()
}

// Subscribe starts streaming change events for a table. Events that fail
// to decode are dropped.
func (f *Feed) Subscribe(ctx context.Context, table string) *Subscription {
	pubsub := redis.Subscribe(ctx, channelFor(table))
	out := make(chan Event, 16)

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer close(out)
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		C: out,
		cancel: func() {
			cancel()
			_ = pubsub.Close()
		},
	}
}
