package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"shipdash-shopify-layer/internal/application"
	"shipdash-shopify-layer/internal/domain"
	"shipdash-shopify-layer/internal/infrastructure/pubsub"
	"shipdash-shopify-layer/internal/infrastructure/shopify"
	"shipdash-shopify-layer/internal/metrics"

	"github.com/rs/zerolog"
)

// WebhookHandler terminates storefront webhook deliveries: signature
// verification, topic extraction, and dispatch.
type WebhookHandler struct {
	verifier   *shopify.WebhookVerifier
	dispatcher *application.WebhookDispatcher
	events     *pubsub.WebhookPubSub
	logger     zerolog.Logger
}

// NewWebhookHandler creates the webhook HTTP handler. events may be nil when
// no stream consumers are wired.
func NewWebhookHandler(
	verifier *shopify.WebhookVerifier,
	dispatcher *application.WebhookDispatcher,
	events *pubsub.WebhookPubSub,
	logger zerolog.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		verifier:   verifier,
		dispatcher: dispatcher,
		events:     events,
		logger:     logger,
	}
}

// Handle processes one webhook delivery. The signature is computed over the
// exact raw body; parsing happens only after verification succeeds.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	topic := r.Header.Get("X-Shopify-Topic")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read webhook body")
		metrics.WebhookDeliveries.WithLabelValues(topic, "failed").Inc()
		respondError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Shopify-Hmac-SHA256")
	if err := h.verifier.Verify(body, signature); err != nil {
		h.logger.Warn().Err(err).Str("topic", topic).Msg("Webhook signature verification failed")
		metrics.WebhookDeliveries.WithLabelValues(topic, "rejected").Inc()
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	shop := r.Header.Get("X-Shopify-Shop-Domain")
	if shop == "" {
		shop = shopDomainFromPayload(body)
	}

	event := &domain.WebhookEvent{
		Topic:    topic,
		Shop:     shop,
		Payload:  body,
		Verified: true,
	}

	if h.events != nil {
		h.events.Publish(event)
	}

	if err := h.dispatcher.Dispatch(r.Context(), event); err != nil {
		if errors.Is(err, application.ErrMalformedPayload) {
			h.logger.Warn().Err(err).Str("topic", topic).Msg("Webhook payload rejected")
			metrics.WebhookDeliveries.WithLabelValues(topic, "rejected").Inc()
			respondError(w, http.StatusBadRequest, "Malformed payload")
			return
		}
		h.logger.Error().Err(err).Str("topic", topic).Str("shop", shop).Msg("Webhook processing failed")
		metrics.WebhookDeliveries.WithLabelValues(topic, "failed").Inc()
		respondError(w, http.StatusInternalServerError, "Webhook failed")
		return
	}

	metrics.WebhookDeliveries.WithLabelValues(topic, "processed").Inc()
	respondJSON(w, http.StatusOK, map[string]string{"received": "true"})
}

// shopDomainFromPayload falls back to the payload's shop_domain field, which
// every compliance topic carries.
func shopDomainFromPayload(body []byte) string {
	var payload struct {
		ShopDomain string `json:"shop_domain"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.ShopDomain
}
