package application

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"shipdash-shopify-layer/internal/domain"
	"shipdash-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// noOrdersSelectedMessage is reported as a summary message, not an error,
// when a sync is triggered with nothing selected.
const noOrdersSelectedMessage = "No orders selected"

// OrderSyncService drives batches of orders through the vendor client,
// refreshing the shop credential once when the dashboard reports the token
// expired.
type OrderSyncService struct {
	orders ports.OrderRepository
	creds  ports.CredentialRepository
	vendor ports.VendorClient
	auth   *AuthService
	logger zerolog.Logger
}

// NewOrderSyncService creates the sync orchestrator.
func NewOrderSyncService(
	orders ports.OrderRepository,
	creds ports.CredentialRepository,
	vendor ports.VendorClient,
	auth *AuthService,
	logger zerolog.Logger,
) *OrderSyncService {
	return &OrderSyncService{
		orders: orders,
		creds:  creds,
		vendor: vendor,
		auth:   auth,
		logger: logger,
	}
}

// SyncOrders loads the selected orders and pushes them to the dashboard.
// Per-order failures are captured in the summary; the only batch-level
// errors are an empty credential record or a repository failure.
func (s *OrderSyncService) SyncOrders(ctx context.Context, shop string, orderIDs []string) (*domain.BatchSummary, error) {
	if len(orderIDs) == 0 {
		return &domain.BatchSummary{Message: noOrdersSelectedMessage}, nil
	}

	orders, err := s.orders.GetByIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if len(orders) == 0 {
		return &domain.BatchSummary{Message: noOrdersSelectedMessage}, nil
	}

	return s.syncBatch(ctx, shop, orders)
}

// SyncOrder pushes a single already-persisted order, using the same
// two-attempt policy as the batch path.
func (s *OrderSyncService) SyncOrder(ctx context.Context, shop string, order *domain.Order) (*domain.BatchSummary, error) {
	return s.syncBatch(ctx, shop, []*domain.Order{order})
}

// syncBatch runs at most two attempts: the initial fan-out, and one full
// re-run after a single credential refresh when the first attempt saw a 403.
// The straight-line shape is what guarantees the exactly-once retry bound.
func (s *OrderSyncService) syncBatch(ctx context.Context, shop string, orders []*domain.Order) (*domain.BatchSummary, error) {
	outcomes, err := s.attempt(ctx, shop, orders)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("shop", shop).Int("orders", len(orders)).Msg("Order sync first attempt finished")

	if needsReauth(outcomes) {
		s.logger.Warn().Str("shop", shop).Msg("Dashboard returned 403, refreshing credential and retrying once")
		if _, err := s.auth.SignIn(ctx, shop, "", ""); err != nil {
			s.logger.Error().Err(err).Str("shop", shop).Msg("Credential refresh failed, keeping first-attempt outcomes")
			return s.finish(ctx, outcomes), nil
		}

		retried, err := s.attempt(ctx, shop, orders)
		if err != nil {
			return nil, err
		}
		outcomes = retried
		s.logger.Info().Str("shop", shop).Int("orders", len(orders)).Msg("Order sync second attempt finished")
	}

	return s.finish(ctx, outcomes), nil
}

// attempt fans the vendor calls out concurrently and joins on all of them.
// The outcome slice preserves the order of its input batch.
func (s *OrderSyncService) attempt(ctx context.Context, shop string, orders []*domain.Order) ([]domain.SyncOutcome, error) {
	cred, err := s.creds.GetByShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}
	if cred == nil {
		return nil, ErrNoCredential
	}

	outcomes := make([]domain.SyncOutcome, len(orders))
	var wg sync.WaitGroup
	for i, order := range orders {
		wg.Add(1)
		go func(i int, order *domain.Order) {
			defer wg.Done()
			outcome := s.vendor.CreateOrder(ctx, cred.Token, &order.Document)
			outcome.OrderID = order.ID
			outcomes[i] = outcome
		}(i, order)
	}
	wg.Wait()

	return outcomes, nil
}

// finish marks successful orders synced and builds the summary.
func (s *OrderSyncService) finish(ctx context.Context, outcomes []domain.SyncOutcome) *domain.BatchSummary {
	for _, o := range outcomes {
		if o.Status != domain.SyncSuccess {
			continue
		}
		if err := s.orders.MarkSynced(ctx, o.OrderID); err != nil {
			s.logger.Error().Err(err).Str("orderId", o.OrderID).Msg("Failed to mark order synced")
		}
	}
	return domain.Summarize(outcomes)
}

// needsReauth reports whether the batch should be retried behind a fresh
// token: the attempt was not uniformly successful and at least one outcome
// carries a 403.
func needsReauth(outcomes []domain.SyncOutcome) bool {
	sawForbidden := false
	allSuccess := true
	for _, o := range outcomes {
		if o.StatusCode == http.StatusForbidden {
			sawForbidden = true
		}
		if o.Status != domain.SyncSuccess {
			allSuccess = false
		}
	}
	return sawForbidden && !allSuccess
}
