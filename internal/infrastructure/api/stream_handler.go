package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"shipdash-shopify-layer/internal/infrastructure/pubsub"

	"github.com/rs/zerolog"
)

// StreamHandler serves verified webhook events to the operator dashboard as
// a server-sent event feed.
type StreamHandler struct {
	events *pubsub.WebhookPubSub
	logger zerolog.Logger
}

// NewStreamHandler creates the event stream handler.
func NewStreamHandler(events *pubsub.WebhookPubSub, logger zerolog.Logger) *StreamHandler {
	return &StreamHandler{events: events, logger: logger}
}

// Stream subscribes the connection to webhook events, optionally filtered to
// one shop and a comma-separated topic list, until the client disconnects.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	filter := &pubsub.EventFilter{Shop: r.URL.Query().Get("shop")}
	if topics := r.URL.Query().Get("topics"); topics != "" {
		filter.Topics = strings.Split(topics, ",")
	}

	sub := h.events.Subscribe(r.Context(), filter)
	defer h.events.Unsubscribe(sub.ID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub.Events:
			if !ok {
				return
			}
			data, err := json.Marshal(map[string]any{
				"topic":   event.Topic,
				"shop":    event.Shop,
				"payload": json.RawMessage(event.Payload),
			})
			if err != nil {
				h.logger.Error().Err(err).Msg("Failed to encode stream event")
				continue
			}
			fmt.Fprintf(w, "event: webhook\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
