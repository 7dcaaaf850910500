package pubsub

import (
	"context"
	"sync"

	"shipdash-shopify-layer/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Subscription is one live webhook event feed. Events is closed when the
// subscription ends.
type Subscription struct {
	ID     string
	Filter *EventFilter
	Events chan *domain.WebhookEvent
	ctx    context.Context
	cancel context.CancelFunc
}

// EventFilter restricts a subscription to certain topics or one shop. A nil
// filter matches everything.
type EventFilter struct {
	Topics []string
	Shop   string
}

// WebhookPubSub broadcasts verified webhook events to in-process
// subscribers, feeding the operator event stream.
type WebhookPubSub struct {
	mu     sync.RWMutex
	subs   map[string]*Subscription
	logger zerolog.Logger
}

// NewWebhookPubSub creates an empty pub/sub hub.
func NewWebhookPubSub(logger zerolog.Logger) *WebhookPubSub {
	return &WebhookPubSub{
		subs:   make(map[string]*Subscription),
		logger: logger,
	}
}

// Subscribe registers a new subscriber. The subscription ends when ctx is
// cancelled or Unsubscribe is called.
func (ps *WebhookPubSub) Subscribe(ctx context.Context, filter *EventFilter) *Subscription {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		ID:     uuid.NewString(),
		Filter: filter,
		Events: make(chan *domain.WebhookEvent, 16),
		ctx:    subCtx,
		cancel: cancel,
	}

	ps.mu.Lock()
	ps.subs[sub.ID] = sub
	ps.mu.Unlock()

	ps.logger.Debug().Str("subscriptionId", sub.ID).Msg("Webhook subscription created")

	go func() {
		<-subCtx.Done()
		ps.Unsubscribe(sub.ID)
	}()

	return sub
}

// Unsubscribe removes a subscriber and closes its channel.
func (ps *WebhookPubSub) Unsubscribe(id string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	sub, ok := ps.subs[id]
	if !ok {
		return
	}
	delete(ps.subs, id)
	sub.cancel()
	close(sub.Events)

	ps.logger.Debug().Str("subscriptionId", id).Msg("Webhook subscription removed")
}

// Publish delivers the event to every matching subscriber. Delivery is
// non-blocking: a subscriber with a full buffer misses the event rather
// than stalling the webhook path.
func (ps *WebhookPubSub) Publish(event *domain.WebhookEvent) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for _, sub := range ps.subs {
		if !matches(event, sub.Filter) {
			continue
		}
		select {
		case sub.Events <- event:
		case <-sub.ctx.Done():
		default:
			ps.logger.Warn().Str("subscriptionId", sub.ID).Msg("Subscriber buffer full, dropping event")
		}
	}
}

func matches(event *domain.WebhookEvent, filter *EventFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Shop != "" && filter.Shop != event.Shop {
		return false
	}
	if len(filter.Topics) == 0 {
		return true
	}
	for _, t := range filter.Topics {
		if t == event.Topic {
			return true
		}
	}
	return false
}
