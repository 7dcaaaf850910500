package application

import (
	"context"
	"errors"

	"shipdash-shopify-layer/internal/domain"

	"github.com/rs/zerolog"
)

// ErrMalformedPayload marks a webhook body that could not be decoded; the
// transport layer maps it to a 400.
var ErrMalformedPayload = errors.New("malformed webhook payload")

// WebhookHandler processes webhook events for the topics it declares.
type WebhookHandler interface {
	CanHandle(topic string) bool
	Handle(ctx context.Context, event *domain.WebhookEvent) error
}

// WebhookDispatcher routes verified webhook events to registered handlers.
type WebhookDispatcher struct {
	handlers []WebhookHandler
	logger   zerolog.Logger
}

// NewWebhookDispatcher creates an empty dispatcher.
func NewWebhookDispatcher(logger zerolog.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{logger: logger}
}

// RegisterHandler adds a handler to the dispatch chain.
func (d *WebhookDispatcher) RegisterHandler(h WebhookHandler) {
	d.handlers = append(d.handlers, h)
}

// Dispatch hands the event to the first handler claiming its topic. An
// unrecognized topic is logged and acknowledged: the sender must not retry
// deliveries we will never understand.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, event *domain.WebhookEvent) error {
	for _, h := range d.handlers {
		if h.CanHandle(event.Topic) {
			return h.Handle(ctx, event)
		}
	}

	d.logger.Info().
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Msg("No handler registered for webhook topic, acknowledging")
	return nil
}
