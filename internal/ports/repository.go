package ports

import (
	"context"

	"shipdash-shopify-layer/internal/domain"
)

// OrderRepository defines persistence for webhook-ingested orders.
// Lookup methods return (nil, nil) when no document matches.
type OrderRepository interface {
	// Upsert writes an order keyed by (shop, id) so duplicate webhook
	// deliveries cannot create a second row.
	Upsert(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Order, error)
	// ListByShop returns one page of a shop's orders, newest first, plus the
	// shop's total order count.
	ListByShop(ctx context.Context, shop string, page, pageSize int) ([]*domain.Order, int64, error)
	MarkSynced(ctx context.Context, id string) error
	// FindByCustomer returns the shop's orders belonging to a customer,
	// optionally restricted to an explicit set of order document ids.
	FindByCustomer(ctx context.Context, shop string, customerID int64, orderIDs []int64) ([]*domain.Order, error)
	DeleteByCustomer(ctx context.Context, shop string, customerID int64) (int64, error)
	DeleteByShop(ctx context.Context, shop string) (int64, error)
}

// CredentialRepository defines persistence for per-shop vendor credentials.
// One record per shop; Upsert is atomic per shop key.
type CredentialRepository interface {
	GetByShop(ctx context.Context, shop string) (*domain.ShopCredential, error)
	Upsert(ctx context.Context, cred *domain.ShopCredential) error
	DeleteByShop(ctx context.Context, shop string) error
}

// SessionRepository reads and erases storefront app sessions. Sessions are
// written by the platform's auth handshake, outside this layer.
type SessionRepository interface {
	GetByShop(ctx context.Context, shop string) (*domain.Session, error)
	DeleteByShop(ctx context.Context, shop string) (int64, error)
}

// DeliveryGuard suppresses duplicate webhook deliveries. FirstDelivery
// reports whether this (shop, order) pair has not been seen before.
type DeliveryGuard interface {
	FirstDelivery(ctx context.Context, shop, orderID string) (bool, error)
}
