package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/clinova/shift-scheduler/internal/domain/entities"
	redisclient "github.com/clinova/shift-scheduler/internal/infrastructure/clients/redis"
	"github.com/clinova/shift-scheduler/internal/infrastructure/observability"
)

// Bus publishes and delivers schedule-change events
type Bus interface {
	Publish(ctx context.Context, channel string, event *entities.ScheduleEvent) error
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ScheduleEvent, error)
	Close() error
}

var _ Bus = (*RedisEventBus)(nil)

// RedisEventBus implements Bus using Redis Pub/Sub
type RedisEventBus struct {
	client        *redisclient.Client
	subscriptions map[string]*redis.PubSub
	subscribers   map[string]map[chan *entities.ScheduleEvent]struct{}
	mu            sync.RWMutex
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) *RedisEventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client:        client,
		subscriptions: make(map[string]*redis.PubSub),
		subscribers:   make(map[string]map[chan *entities.ScheduleEvent]struct{}),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Publish publishes an event to all subscribers of the channel
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.ScheduleEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Client().Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	observability.GetLogger().Debug().
		Str("channel", channel).
		Str("event_id", event.ID).
		Str("event_type", string(event.EventType)).
		Msg("published schedule event")
	return nil
}

// Subscribe subscribes to events on a channel
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.ScheduleEvent, error) {
	b.mu.Lock()

	if _, exists := b.subscriptions[channel]; !exists {
		pubsub := b.client.Client().Subscribe(b.ctx, channel)
		b.subscriptions[channel] = pubsub
		go b.receiveMessages(channel, pubsub)
	}

	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[chan *entities.ScheduleEvent]struct{})
	}

	eventChan := make(chan *entities.ScheduleEvent, 64)
	b.subscribers[channel][eventChan] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.removeSubscriber(channel, eventChan)
	}()

	return eventChan, nil
}

// receiveMessages fans Redis messages out to local subscribers
func (b *RedisEventBus) receiveMessages(channel string, pubsub *redis.PubSub) {
	logger := observability.GetLogger()
	ch := pubsub.Channel()
	for {
		select {
		case <-b.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event entities.ScheduleEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Warn().Str("channel", channel).Err(err).Msg("failed to unmarshal schedule event")
				continue
			}

			b.mu.RLock()
			for subscriber := range b.subscribers[channel] {
				select {
				case subscriber <- &event:
				default:
					// subscriber channel full, skip event
					logger.Warn().
						Str("channel", channel).
						Str("event_id", event.ID).
						Msg("subscriber channel full, skipping event")
				}
			}
			b.mu.RUnlock()
		}
	}
}

func (b *RedisEventBus) removeSubscriber(channel string, eventChan chan *entities.ScheduleEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subs, ok := b.subscribers[channel]; ok {
		if _, ok := subs[eventChan]; ok {
			delete(subs, eventChan)
			close(eventChan)
		}
	}
}

// Close shuts down all subscriptions
func (b *RedisEventBus) Close() error {
	b.cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	var firstErr error
	for channel, pubsub := range b.subscriptions {
		if err := pubsub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(b.subscriptions, channel)
	}
	for channel, subs := range b.subscribers {
		for eventChan := range subs {
			close(eventChan)
		}
		delete(b.subscribers, channel)
	}
	return firstErr
}
