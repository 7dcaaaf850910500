package ports

import (
	"context"

	"shipdash-shopify-layer/internal/domain"
)

// GraphQLDoer executes one Admin API GraphQL call for a shop and decodes the
// response body into out.
type GraphQLDoer interface {
	Do(ctx context.Context, shop, accessToken, query string, variables map[string]any, out any) error
}

// AdminAPI defines the storefront GraphQL operations this layer performs.
// All methods take the shop domain and its session access token; token
// lookup belongs to the caller.
type AdminAPI interface {
	// FulfillmentOrders retrieves every fulfillment order for an order GID,
	// following cursor pagination to completion before returning.
	FulfillmentOrders(ctx context.Context, shop, accessToken, orderGID string) ([]domain.FulfillmentOrderNode, error)

	// CreateFulfillment issues one fulfillment-creation mutation covering the
	// given line-item allocation with tracking metadata.
	CreateFulfillment(ctx context.Context, shop, accessToken string, lineItems []domain.FulfillmentOrderLineItemsInput, tracking domain.TrackingInfo) (*domain.FulfillmentCreateResult, error)

	// Fulfillments lists the existing fulfillments on an order GID.
	Fulfillments(ctx context.Context, shop, accessToken, orderGID string) ([]domain.Fulfillment, error)

	// CreateFulfillmentEvent records one status event against a fulfillment.
	CreateFulfillmentEvent(ctx context.Context, shop, accessToken, fulfillmentID, status, message string) (*domain.FulfillmentEventResult, error)
}
