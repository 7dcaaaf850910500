package application

import (
	"context"
	"fmt"
	"sync"

	"shipdash-shopify-layer/internal/domain"
	"shipdash-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// FulfillmentService drives fulfillment creation and status events against
// the storefront Admin API using the shop's stored session token.
type FulfillmentService struct {
	sessions ports.SessionRepository
	admin    ports.AdminAPI
	logger   zerolog.Logger
}

// NewFulfillmentService creates a fulfillment service.
func NewFulfillmentService(sessions ports.SessionRepository, admin ports.AdminAPI, logger zerolog.Logger) *FulfillmentService {
	return &FulfillmentService{
		sessions: sessions,
		admin:    admin,
		logger:   logger,
	}
}

func (s *FulfillmentService) accessToken(ctx context.Context, shop string) (string, error) {
	session, err := s.sessions.GetByShop(ctx, shop)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return "", fmt.Errorf("no session exists for shop %s", shop)
	}
	return session.AccessToken, nil
}

// FulfillmentOrders returns the complete fulfillment-order set for an order.
func (s *FulfillmentService) FulfillmentOrders(ctx context.Context, shop, orderGID string) ([]domain.FulfillmentOrderNode, error) {
	token, err := s.accessToken(ctx, shop)
	if err != nil {
		return nil, err
	}
	return s.admin.FulfillmentOrders(ctx, shop, token, orderGID)
}

// CreateFulfillment fetches every fulfillment order for the order, flattens
// their line items into a single allocation, and issues one creation
// mutation carrying the tracking metadata.
func (s *FulfillmentService) CreateFulfillment(ctx context.Context, shop, orderGID, carrier, trackingNumber, trackingURL string) (*domain.FulfillmentCreateResult, error) {
	token, err := s.accessToken(ctx, shop)
	if err != nil {
		return nil, err
	}

	nodes, err := s.admin.FulfillmentOrders(ctx, shop, token, orderGID)
	if err != nil {
		return nil, fmt.Errorf("fetch fulfillment orders: %w", err)
	}

	lineItems := make([]domain.FulfillmentOrderLineItemsInput, 0, len(nodes))
	for _, node := range nodes {
		input := domain.FulfillmentOrderLineItemsInput{FulfillmentOrderID: node.ID}
		for _, li := range node.LineItems {
			input.FulfillmentOrderLineItems = append(input.FulfillmentOrderLineItems, domain.FulfillmentLineItemInput{
				ID:       li.ID,
				Quantity: li.Quantity,
			})
		}
		lineItems = append(lineItems, input)
	}

	tracking := domain.TrackingInfo{Company: carrier, Number: trackingNumber, URL: trackingURL}
	result, err := s.admin.CreateFulfillment(ctx, shop, token, lineItems, tracking)
	if err != nil {
		return nil, fmt.Errorf("create fulfillment: %w", err)
	}

	s.logger.Info().
		Str("shop", shop).
		Str("orderGid", orderGID).
		Str("fulfillmentId", result.FulfillmentID).
		Int("userErrors", len(result.UserErrors)).
		Msg("Fulfillment created")
	return result, nil
}

// CreateFulfillmentEvents looks up the order's fulfillments and records one
// status event per fulfillment. Calls run concurrently; a failing call
// becomes an error entry in its slot rather than aborting the siblings, and
// the result order matches the fulfillment order.
func (s *FulfillmentService) CreateFulfillmentEvents(ctx context.Context, shop, orderGID, status, message string) ([]domain.FulfillmentEventResult, error) {
	token, err := s.accessToken(ctx, shop)
	if err != nil {
		return nil, err
	}

	fulfillments, err := s.admin.Fulfillments(ctx, shop, token, orderGID)
	if err != nil {
		return nil, fmt.Errorf("fetch fulfillments: %w", err)
	}

	results := make([]domain.FulfillmentEventResult, len(fulfillments))
	var wg sync.WaitGroup
	for i, f := range fulfillments {
		wg.Add(1)
		go func(i int, f domain.Fulfillment) {
			defer wg.Done()
			result, err := s.admin.CreateFulfillmentEvent(ctx, shop, token, f.ID, status, message)
			if err != nil {
				s.logger.Error().Err(err).Str("fulfillmentId", f.ID).Msg("Fulfillment event creation failed")
				results[i] = domain.FulfillmentEventResult{FulfillmentID: f.ID, Err: err.Error()}
				return
			}
			results[i] = *result
		}(i, f)
	}
	wg.Wait()

	return results, nil
}
