package api

import (
	"context"
	"sync"

	"shipdash-shopify-layer/internal/domain"
)

// stubOrderRepo is an in-memory OrderRepository for handler tests.
type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newStubOrderRepo(orders ...*domain.Order) *stubOrderRepo {
	r := &stubOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *stubOrderRepo) Upsert(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	return nil
}

func (r *stubOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[id], nil
}

func (r *stubOrderRepo) GetByIDs(_ context.Context, ids []string) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, id := range ids {
		if o, ok := r.orders[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListByShop(_ context.Context, shop string, _, _ int) ([]*domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		if o.Shop == shop {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) MarkSynced(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		o.Synced = true
	}
	return nil
}

func (r *stubOrderRepo) FindByCustomer(_ context.Context, _ string, _ int64, _ []int64) ([]*domain.Order, error) {
	return nil, nil
}

func (r *stubOrderRepo) DeleteByCustomer(_ context.Context, _ string, _ int64) (int64, error) {
	return 0, nil
}

func (r *stubOrderRepo) DeleteByShop(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

type stubCredRepo struct {
	mu   sync.Mutex
	cred *domain.ShopCredential
}

func (r *stubCredRepo) GetByShop(_ context.Context, _ string) (*domain.ShopCredential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cred, nil
}

func (r *stubCredRepo) Upsert(_ context.Context, cred *domain.ShopCredential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cred = cred
	return nil
}

func (r *stubCredRepo) DeleteByShop(_ context.Context, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cred = nil
	return nil
}

// stubVendorClient accepts any sign-in when token is non-empty and reports
// every order create as successful.
type stubVendorClient struct {
	token string
}

func (v *stubVendorClient) AuthToken(_ context.Context, _, _ string) (string, error) {
	return v.token, nil
}

func (v *stubVendorClient) CreateOrder(_ context.Context, _ string, doc *domain.OrderDocument) domain.SyncOutcome {
	return domain.SyncOutcome{Status: domain.SyncSuccess, StatusCode: 200}
}
