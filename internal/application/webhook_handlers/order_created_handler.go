package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"shipdash-shopify-layer/internal/application"
	"shipdash-shopify-layer/internal/domain"
	"shipdash-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// OrderCreatedHandler persists new orders from orders/create deliveries and
// pushes them to the shipping dashboard.
type OrderCreatedHandler struct {
	logger zerolog.Logger
	orders ports.OrderRepository
	guard  ports.DeliveryGuard
	sync   *application.OrderSyncService
}

// NewOrderCreatedHandler creates an order-created webhook handler. guard may
// be nil, in which case duplicate suppression falls back to the repository
// upsert alone.
func NewOrderCreatedHandler(
	logger zerolog.Logger,
	orders ports.OrderRepository,
	guard ports.DeliveryGuard,
	sync *application.OrderSyncService,
) *OrderCreatedHandler {
	return &OrderCreatedHandler{
		logger: logger,
		orders: orders,
		guard:  guard,
		sync:   sync,
	}
}

// CanHandle returns true for the order-created topic.
func (h *OrderCreatedHandler) CanHandle(topic string) bool {
	return topic == domain.TopicOrdersCreate
}

// Handle persists the order and triggers a single-order sync. A persistence
// failure is returned so the delivery is retried; a sync failure is only
// logged, because the order is safely stored and can be re-synced from the
// dashboard trigger.
func (h *OrderCreatedHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var doc domain.OrderDocument
	if err := json.Unmarshal(event.Payload, &doc); err != nil {
		return fmt.Errorf("%w: %s", application.ErrMalformedPayload, err)
	}

	orderID := strconv.FormatInt(doc.ID, 10)

	if h.guard != nil {
		first, err := h.guard.FirstDelivery(ctx, event.Shop, orderID)
		if err != nil {
			// Guard unavailability must not drop deliveries; the upsert
			// still keeps the row unique.
			h.logger.Warn().Err(err).Str("orderId", orderID).Msg("Delivery guard unavailable, continuing")
		} else if !first {
			h.logger.Info().Str("shop", event.Shop).Str("orderId", orderID).Msg("Duplicate order delivery suppressed")
			return nil
		}
	}

	order := &domain.Order{
		ID:                orderID,
		Shop:              event.Shop,
		AdminGraphQLAPIID: doc.AdminGraphQLAPIID,
		Document:          doc,
		Synced:            false,
		CreatedAt:         time.Now(),
	}
	if err := h.orders.Upsert(ctx, order); err != nil {
		return fmt.Errorf("persist order: %w", err)
	}

	h.logger.Info().
		Str("shop", event.Shop).
		Str("orderId", orderID).
		Int64("orderNumber", doc.OrderNumber).
		Msg("Order persisted from webhook")

	summary, err := h.sync.SyncOrder(ctx, event.Shop, order)
	if err != nil {
		h.logger.Error().Err(err).Str("orderId", orderID).Msg("Webhook-driven order sync failed")
		return nil
	}

	h.logger.Info().
		Str("shop", event.Shop).
		Str("orderId", orderID).
		Str("result", summary.Message).
		Msg("Webhook-driven order sync finished")
	return nil
}
