package application

import (
	"context"
	"sync"

	"shipdash-shopify-layer/internal/domain"
)

// fakeOrderRepo is an in-memory OrderRepository recording mutation calls.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
	synced []string

	getByIDsErr error
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Upsert(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[id], nil
}

func (r *fakeOrderRepo) GetByIDs(_ context.Context, ids []string) ([]*domain.Order, error) {
	if r.getByIDsErr != nil {
		return nil, r.getByIDsErr
	}
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

func (r *fakeOrderRepo) ListByShop(_ context.Context, shop string, _, _ int) ([]*domain.Order, int64, error) {
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

func (r *fakeOrderRepo) MarkSynced(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		o.Synced = true
	}
	r.synced = append(r.synced, id)
	return nil
}

func (r *fakeOrderRepo) FindByCustomer(_ context.Context, shop string, customerID int64, orderIDs []int64) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		if o.Shop != shop || o.Document.Customer == nil || o.Document.Customer.ID != customerID {
			continue
		}
		if len(orderIDs) > 0 && !containsInt64(orderIDs, o.Document.ID) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) DeleteByCustomer(_ context.Context, shop string, customerID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, o := range r.orders {
		if o.Shop == shop && o.Document.Customer != nil && o.Document.Customer.ID == customerID {
			delete(r.orders, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeOrderRepo) DeleteByShop(_ context.Context, shop string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, o := range r.orders {
		if o.Shop == shop {
			delete(r.orders, id)
			deleted++
		}
	}
	return deleted, nil
}

func containsInt64(s []int64, v int64) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// fakeCredRepo is an in-memory CredentialRepository.
type fakeCredRepo struct {
	mu      sync.Mutex
	creds   map[string]*domain.ShopCredential
	upserts int
}

func newFakeCredRepo(creds ...*domain.ShopCredential) *fakeCredRepo {
	r := &fakeCredRepo{creds: make(map[string]*domain.ShopCredential)}
	for _, c := range creds {
		r.creds[c.Shop] = c
	}
	return r
}

func (r *fakeCredRepo) GetByShop(_ context.Context, shop string) (*domain.ShopCredential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.creds[shop], nil
}

func (r *fakeCredRepo) Upsert(_ context.Context, cred *domain.ShopCredential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creds[cred.Shop] = cred
	r.upserts++
	return nil
}

func (r *fakeCredRepo) DeleteByShop(_ context.Context, shop string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.creds, shop)
	return nil
}

// fakeSessionRepo is an in-memory SessionRepository.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newFakeSessionRepo(sessions ...*domain.Session) *fakeSessionRepo {
	r := &fakeSessionRepo{sessions: make(map[string]*domain.Session)}
	for _, s := range sessions {
		r.sessions[s.Shop] = s
	}
	return r
}

func (r *fakeSessionRepo) GetByShop(_ context.Context, shop string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[shop], nil
}

func (r *fakeSessionRepo) DeleteByShop(_ context.Context, shop string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[shop]; !ok {
		return 0, nil
	}
	delete(r.sessions, shop)
	return 1, nil
}

// fakeVendor scripts the dashboard: tokens returned per AuthToken call and
// an outcome function keyed by (token, order).
type fakeVendor struct {
	mu         sync.Mutex
	tokens     []string
	authErr    error
	authCalls  int
	outcomeFor func(token string, doc *domain.OrderDocument) domain.SyncOutcome
	orderCalls int
}

func (v *fakeVendor) AuthToken(_ context.Context, _, _ string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.authCalls++
	if v.authErr != nil {
		return "", v.authErr
	}
	if len(v.tokens) == 0 {
		return "", nil
	}
	token := v.tokens[0]
	if len(v.tokens) > 1 {
		v.tokens = v.tokens[1:]
	}
	return token, nil
}

func (v *fakeVendor) CreateOrder(_ context.Context, token string, doc *domain.OrderDocument) domain.SyncOutcome {
	v.mu.Lock()
	v.orderCalls++
	v.mu.Unlock()
	return v.outcomeFor(token, doc)
}
