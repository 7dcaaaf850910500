package webhook_handlers

import (
	"context"

	"shipdash-shopify-layer/internal/application"
	"shipdash-shopify-layer/internal/domain"

	"github.com/rs/zerolog"
)

// ComplianceWebhookHandler routes privacy webhook topics to the compliance
// service.
type ComplianceWebhookHandler struct {
	logger     zerolog.Logger
	compliance *application.ComplianceService
}

// NewComplianceWebhookHandler creates a compliance webhook handler.
func NewComplianceWebhookHandler(logger zerolog.Logger, compliance *application.ComplianceService) *ComplianceWebhookHandler {
	return &ComplianceWebhookHandler{
		logger:     logger,
		compliance: compliance,
	}
}

// CanHandle returns true for the three privacy topics.
func (h *ComplianceWebhookHandler) CanHandle(topic string) bool {
	return topic == domain.TopicCustomersDataRequest ||
		topic == domain.TopicCustomersRedact ||
		topic == domain.TopicShopRedact
}

// Handle executes the compliance operation for the event's topic.
func (h *ComplianceWebhookHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	result, err := h.compliance.Handle(ctx, event.Topic, event.Payload)
	if err != nil {
		return err
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Int("exportedOrders", len(result.Orders)).
		Msg("Compliance webhook processed")
	return nil
}
