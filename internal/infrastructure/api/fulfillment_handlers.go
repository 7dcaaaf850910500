package api

import (
	"encoding/json"
	"net/http"

	"shipdash-shopify-layer/internal/application"

	"github.com/rs/zerolog"
)

// FulfillmentHandlers exposes the operator-facing fulfillment endpoints.
type FulfillmentHandlers struct {
	fulfillments *application.FulfillmentService
	logger       zerolog.Logger
}

// NewFulfillmentHandlers creates the fulfillment HTTP handlers.
func NewFulfillmentHandlers(fulfillments *application.FulfillmentService, logger zerolog.Logger) *FulfillmentHandlers {
	return &FulfillmentHandlers{
		fulfillments: fulfillments,
		logger:       logger,
	}
}

// ListFulfillmentOrders returns the complete fulfillment-order set for an
// order GID.
func (h *FulfillmentHandlers) ListFulfillmentOrders(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	gid := r.URL.Query().Get("gid")
	if shop == "" || gid == "" {
		respondError(w, http.StatusBadRequest, "shop and gid parameters are required")
		return
	}

	nodes, err := h.fulfillments.FulfillmentOrders(r.Context(), shop, gid)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", shop).Str("gid", gid).Msg("Failed to fetch fulfillment orders")
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"fulfillment_orders": nodes})
}

type createFulfillmentRequest struct {
	Shop           string `json:"shop"`
	GID            string `json:"gid"`
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number"`
	TrackingURL    string `json:"tracking_url"`
}

// CreateFulfillment creates one fulfillment covering the order's full
// line-item set with the given tracking metadata.
func (h *FulfillmentHandlers) CreateFulfillment(w http.ResponseWriter, r *http.Request) {
	var req createFulfillmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Shop == "" || req.GID == "" || req.Carrier == "" || req.TrackingNumber == "" {
		respondError(w, http.StatusBadRequest, "Shop, GraphQL ID, Tracking carrier, number and url are required.")
		return
	}

	result, err := h.fulfillments.CreateFulfillment(r.Context(), req.Shop, req.GID, req.Carrier, req.TrackingNumber, req.TrackingURL)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", req.Shop).Str("gid", req.GID).Msg("Failed to create fulfillment")
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type createFulfillmentEventRequest struct {
	Shop    string `json:"shop"`
	GID     string `json:"gid"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CreateFulfillmentEvents records a status event on every fulfillment of the
// order and returns the per-fulfillment results in fulfillment order.
func (h *FulfillmentHandlers) CreateFulfillmentEvents(w http.ResponseWriter, r *http.Request) {
	var req createFulfillmentEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Shop == "" || req.GID == "" || req.Status == "" {
		respondError(w, http.StatusBadRequest, "Shop name, GraphQL ID, fulfillment status & message is required.")
		return
	}

	results, err := h.fulfillments.CreateFulfillmentEvents(r.Context(), req.Shop, req.GID, req.Status, req.Message)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", req.Shop).Str("gid", req.GID).Msg("Failed to create fulfillment events")
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"result": results})
}
