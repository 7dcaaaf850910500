package application

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"shipdash-shopify-layer/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeOrders(n int) []*domain.Order {
	orders := make([]*domain.Order, n)
	for i := range orders {
		id := int64(5000 + i)
		orders[i] = &domain.Order{
			ID:   strconv.FormatInt(id, 10),
			Shop: testShop,
			Document: domain.OrderDocument{
				ID:          id,
				OrderNumber: int64(1000 + i),
			},
		}
	}
	return orders
}

func successOutcome(_ string, doc *domain.OrderDocument) domain.SyncOutcome {
	return domain.SyncOutcome{
		OrderNumber: strconv.FormatInt(doc.OrderNumber, 10),
		Status:      domain.SyncSuccess,
		StatusCode:  200,
	}
}

func newSyncService(orders *fakeOrderRepo, creds *fakeCredRepo, vendor *fakeVendor) *OrderSyncService {
	auth := NewAuthService(creds, vendor, zerolog.Nop())
	return NewOrderSyncService(orders, creds, vendor, auth, zerolog.Nop())
}

func TestSyncOrdersAllSuccess(t *testing.T) {
	orders := makeOrders(3)
	repo := newFakeOrderRepo(orders...)
	creds := newFakeCredRepo(&domain.ShopCredential{Shop: testShop, Token: "valid-token"})
	vendor := &fakeVendor{outcomeFor: successOutcome}
	svc := newSyncService(repo, creds, vendor)

	summary, err := svc.SyncOrders(context.Background(), testShop, []string{"5000", "5001", "5002"})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.SuccessCount)
	assert.Equal(t, 0, summary.FailedCount)
	assert.Equal(t, 0, summary.AlreadyExistsCount)
	assert.Equal(t, 3, vendor.orderCalls)
	assert.Equal(t, 0, vendor.authCalls)

	// Outcome order matches the input batch.
	require.Len(t, summary.Outcomes, 3)
	for i, o := range summary.Outcomes {
		assert.Equal(t, strconv.Itoa(5000+i), o.OrderID)
	}

	assert.ElementsMatch(t, []string{"5000", "5001", "5002"}, repo.synced)
}

func TestSyncOrdersEmptySelection(t *testing.T) {
	svc := newSyncService(newFakeOrderRepo(), newFakeCredRepo(), &fakeVendor{})

	summary, err := svc.SyncOrders(context.Background(), testShop, nil)
	require.NoError(t, err)
	assert.Equal(t, "No orders selected", summary.Message)
	assert.Equal(t, 0, summary.SuccessCount+summary.AlreadyExistsCount+summary.FailedCount)
}

func TestSyncOrdersUnknownIDs(t *testing.T) {
	vendor := &fakeVendor{}
	svc := newSyncService(newFakeOrderRepo(), newFakeCredRepo(), vendor)

	summary, err := svc.SyncOrders(context.Background(), testShop, []string{"does-not-exist"})
	require.NoError(t, err)
	assert.Equal(t, "No orders selected", summary.Message)
	assert.Equal(t, 0, vendor.orderCalls)
}

func TestSyncOrdersNoCredential(t *testing.T) {
	orders := makeOrders(1)
	svc := newSyncService(newFakeOrderRepo(orders...), newFakeCredRepo(), &fakeVendor{})

	_, err := svc.SyncOrders(context.Background(), testShop, []string{"5000"})
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestSyncOrdersMixedOutcomes(t *testing.T) {
	orders := makeOrders(4)
	repo := newFakeOrderRepo(orders...)
	creds := newFakeCredRepo(&domain.ShopCredential{Shop: testShop, Token: "valid-token"})
	vendor := &fakeVendor{outcomeFor: func(_ string, doc *domain.OrderDocument) domain.SyncOutcome {
		switch doc.ID {
		case 5000:
			return domain.SyncOutcome{Status: domain.SyncSuccess, StatusCode: 200}
		case 5001:
			return domain.SyncOutcome{Status: domain.SyncAlreadyExists, StatusCode: 400, Message: "order already exists"}
		case 5002:
			return domain.SyncOutcome{Status: domain.SyncFailed, StatusCode: 500}
		default:
			return domain.SyncOutcome{Status: domain.SyncError, Message: "connection reset"}
		}
	}}
	svc := newSyncService(repo, creds, vendor)

	summary, err := svc.SyncOrders(context.Background(), testShop, []string{"5000", "5001", "5002", "5003"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, 1, summary.AlreadyExistsCount)
	assert.Equal(t, 2, summary.FailedCount)
	assert.Equal(t, len(summary.Outcomes), summary.SuccessCount+summary.AlreadyExistsCount+summary.FailedCount)

	// No 403 in the batch, so no credential refresh happened.
	assert.Equal(t, 0, vendor.authCalls)
	assert.Equal(t, 4, vendor.orderCalls)
	assert.Equal(t, []string{"5000"}, repo.synced)
}

func TestSyncOrdersRetriesOnceAfterForbidden(t *testing.T) {
	orders := makeOrders(2)
	repo := newFakeOrderRepo(orders...)
	creds := newFakeCredRepo(&domain.ShopCredential{
		Shop:     testShop,
		Username: "store-account",
		Password: "s3cret",
		Token:    "stale-token",
	})
	vendor := &fakeVendor{
		tokens: []string{"fresh-token"},
		outcomeFor: func(token string, doc *domain.OrderDocument) domain.SyncOutcome {
			if token == "stale-token" {
				return domain.SyncOutcome{Status: domain.SyncFailed, StatusCode: http.StatusForbidden, Message: "token expired"}
			}
			return successOutcome(token, doc)
		},
	}
	svc := newSyncService(repo, creds, vendor)

	summary, err := svc.SyncOrders(context.Background(), testShop, []string{"5000", "5001"})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 0, summary.FailedCount)

	// Exactly one refresh, exactly one retry of the full batch.
	assert.Equal(t, 1, vendor.authCalls)
	assert.Equal(t, 4, vendor.orderCalls)

	stored, _ := creds.GetByShop(context.Background(), testShop)
	assert.Equal(t, "fresh-token", stored.Token)
	assert.ElementsMatch(t, []string{"5000", "5001"}, repo.synced)
}

func TestSyncOrdersNeverRetriesTwice(t *testing.T) {
	// The refreshed token is still rejected: the second attempt's 403s must
	// not trigger another refresh.
	orders := makeOrders(1)
	repo := newFakeOrderRepo(orders...)
	creds := newFakeCredRepo(&domain.ShopCredential{
		Shop:     testShop,
		Username: "store-account",
		Password: "s3cret",
		Token:    "stale-token",
	})
	vendor := &fakeVendor{
		tokens: []string{"another-bad-token"},
		outcomeFor: func(string, *domain.OrderDocument) domain.SyncOutcome {
			return domain.SyncOutcome{Status: domain.SyncFailed, StatusCode: http.StatusForbidden}
		},
	}
	svc := newSyncService(repo, creds, vendor)

	summary, err := svc.SyncOrders(context.Background(), testShop, []string{"5000"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.FailedCount)
	assert.Equal(t, 1, vendor.authCalls)
	assert.Equal(t, 2, vendor.orderCalls)
	assert.Empty(t, repo.synced)
}

func TestSyncOrdersKeepsFirstOutcomesWhenRefreshFails(t *testing.T) {
	orders := makeOrders(1)
	repo := newFakeOrderRepo(orders...)
	creds := newFakeCredRepo(&domain.ShopCredential{
		Shop:     testShop,
		Username: "store-account",
		Password: "wrong",
		Token:    "stale-token",
	})
	vendor := &fakeVendor{
		// No tokens scripted: the refresh attempt is rejected.
		outcomeFor: func(string, *domain.OrderDocument) domain.SyncOutcome {
			return domain.SyncOutcome{Status: domain.SyncFailed, StatusCode: http.StatusForbidden, Message: "token expired"}
		},
	}
	svc := newSyncService(repo, creds, vendor)

	summary, err := svc.SyncOrders(context.Background(), testShop, []string{"5000"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.FailedCount)
	assert.Equal(t, 1, vendor.authCalls)
	assert.Equal(t, 1, vendor.orderCalls, "batch must not be retried behind a failed refresh")
	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, "token expired", summary.Outcomes[0].Message)
}

func TestSyncOrderSingle(t *testing.T) {
	order := makeOrders(1)[0]
	repo := newFakeOrderRepo(order)
	creds := newFakeCredRepo(&domain.ShopCredential{Shop: testShop, Token: "valid-token"})
	vendor := &fakeVendor{outcomeFor: successOutcome}
	svc := newSyncService(repo, creds, vendor)

	summary, err := svc.SyncOrder(context.Background(), testShop, order)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, []string{"5000"}, repo.synced)
}

func TestSyncOrdersLargeBatchPreservesOrder(t *testing.T) {
	orders := makeOrders(50)
	repo := newFakeOrderRepo(orders...)
	creds := newFakeCredRepo(&domain.ShopCredential{Shop: testShop, Token: "valid-token"})
	vendor := &fakeVendor{outcomeFor: successOutcome}
	svc := newSyncService(repo, creds, vendor)

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	summary, err := svc.SyncOrders(context.Background(), testShop, ids)
	require.NoError(t, err)
	require.Len(t, summary.Outcomes, 50)
	for i, o := range summary.Outcomes {
		assert.Equal(t, fmt.Sprintf("%d", 5000+i), o.OrderID)
		assert.Equal(t, fmt.Sprintf("%d", 1000+i), o.OrderNumber)
	}
}
