package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"shipdash-shopify-layer/internal/application"
	"shipdash-shopify-layer/internal/metrics"
	"shipdash-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

const ordersPageSize = 25

// OrderHandlers exposes the operator-facing order endpoints: listing,
// credential entry, and the sync trigger.
type OrderHandlers struct {
	orders ports.OrderRepository
	sync   *application.OrderSyncService
	auth   *application.AuthService
	logger zerolog.Logger
}

// NewOrderHandlers creates the order HTTP handlers.
func NewOrderHandlers(
	orders ports.OrderRepository,
	sync *application.OrderSyncService,
	auth *application.AuthService,
	logger zerolog.Logger,
) *OrderHandlers {
	return &OrderHandlers{
		orders: orders,
		sync:   sync,
		auth:   auth,
		logger: logger,
	}
}

// List returns one page of a shop's stored orders, newest first.
func (h *OrderHandlers) List(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		respondError(w, http.StatusBadRequest, "shop parameter is required")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	orders, total, err := h.orders.ListByShop(r.Context(), shop, page, ordersPageSize)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to list orders")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"orders":      orders,
		"page":        page,
		"total_count": total,
	})
}

type syncOrdersRequest struct {
	Shop     string   `json:"shop"`
	OrderIDs []string `json:"order_ids"`
}

// SyncOrders is the operator sync trigger: an ordered set of order ids for a
// shop, answered with the count-based batch summary. Partial failure is
// reported in the summary, never as an HTTP error.
func (h *OrderHandlers) SyncOrders(w http.ResponseWriter, r *http.Request) {
	var req syncOrdersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Shop == "" {
		respondError(w, http.StatusBadRequest, "shop is required")
		return
	}

	start := time.Now()
	summary, err := h.sync.SyncOrders(r.Context(), req.Shop, req.OrderIDs)
	if err != nil {
		if errors.Is(err, application.ErrNoCredential) {
			respondError(w, http.StatusUnprocessableEntity, "No dashboard account configured for this shop")
			return
		}
		h.logger.Error().Err(err).Str("shop", req.Shop).Msg("Order sync failed")
		respondError(w, http.StatusInternalServerError, "Orders not synced, please try again later.")
		return
	}
	metrics.SyncBatchDuration.Observe(time.Since(start).Seconds())
	for _, o := range summary.Outcomes {
		metrics.SyncOutcomes.WithLabelValues(string(o.Status)).Inc()
	}

	respondJSON(w, http.StatusOK, summary)
}

type credentialsRequest struct {
	Shop     string `json:"shop"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// SaveCredentials signs the shop in with explicitly entered credentials and
// stores the resulting token.
func (h *OrderHandlers) SaveCredentials(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Shop == "" || req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "shop, username and password are required")
		return
	}

	cred, err := h.auth.SignIn(r.Context(), req.Shop, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		h.logger.Error().Err(err).Str("shop", req.Shop).Msg("Credential sign in failed")
		respondError(w, http.StatusInternalServerError, "server error, please try again later or contact your admin.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"shop":       cred.Shop,
		"username":   cred.Username,
		"authorized": cred.Authorized,
	})
}
