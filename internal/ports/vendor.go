package ports

import (
	"context"

	"shipdash-shopify-layer/internal/domain"
)

// VendorClient talks to the shipping dashboard API.
type VendorClient interface {
	// AuthToken exchanges an account username/password for a bearer token.
	// A response that carries no token returns ("", nil): the credentials
	// were rejected, nothing failed in transport.
	AuthToken(ctx context.Context, username, password string) (string, error)

	// CreateOrder pushes one normalized order to the dashboard. Failures of
	// any kind are folded into the outcome, never returned as errors, so a
	// bad order cannot abort its batch siblings.
	CreateOrder(ctx context.Context, token string, doc *domain.OrderDocument) domain.SyncOutcome
}
