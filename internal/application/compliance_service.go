package application

import (
	"context"
	"encoding/json"
	"fmt"

	"shipdash-shopify-layer/internal/domain"
	"shipdash-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// ComplianceService executes the privacy webhook operations: data export
// lookups and customer/shop erasure.
type ComplianceService struct {
	orders   ports.OrderRepository
	creds    ports.CredentialRepository
	sessions ports.SessionRepository
	logger   zerolog.Logger
}

// NewComplianceService creates a compliance service.
func NewComplianceService(
	orders ports.OrderRepository,
	creds ports.CredentialRepository,
	sessions ports.SessionRepository,
	logger zerolog.Logger,
) *ComplianceService {
	return &ComplianceService{
		orders:   orders,
		creds:    creds,
		sessions: sessions,
		logger:   logger,
	}
}

// Handle executes the operation selected by the webhook topic. Unknown
// topics are logged and acknowledged so the platform does not retry them.
func (s *ComplianceService) Handle(ctx context.Context, topic string, payload []byte) (*domain.ComplianceResult, error) {
	var req domain.ComplianceRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}
	req.Topic = topic

	switch topic {
	case domain.TopicCustomersDataRequest:
		return s.dataRequest(ctx, &req)
	case domain.TopicCustomersRedact:
		return s.customerRedact(ctx, &req)
	case domain.TopicShopRedact:
		return s.shopRedact(ctx, &req)
	default:
		s.logger.Error().Str("topic", topic).Msg("Unknown compliance webhook topic")
		return &domain.ComplianceResult{Success: true}, nil
	}
}

// dataRequest collects the customer's orders for export, optionally
// restricted to the explicitly requested order ids.
func (s *ComplianceService) dataRequest(ctx context.Context, req *domain.ComplianceRequest) (*domain.ComplianceResult, error) {
	orders, err := s.orders.FindByCustomer(ctx, req.ShopDomain, req.Customer.ID, req.OrdersRequested)
	if err != nil {
		return nil, fmt.Errorf("find customer orders: %w", err)
	}

	s.logger.Info().
		Str("shop", req.ShopDomain).
		Int64("customerId", req.Customer.ID).
		Int("orders", len(orders)).
		Msg("Customer data request collected")
	return &domain.ComplianceResult{Success: true, Orders: orders}, nil
}

// customerRedact deletes the customer's orders for the shop, then the shop's
// credential record.
func (s *ComplianceService) customerRedact(ctx context.Context, req *domain.ComplianceRequest) (*domain.ComplianceResult, error) {
	deleted, err := s.orders.DeleteByCustomer(ctx, req.ShopDomain, req.Customer.ID)
	if err != nil {
		return nil, fmt.Errorf("delete customer orders: %w", err)
	}
	if err := s.creds.DeleteByShop(ctx, req.ShopDomain); err != nil {
		return nil, fmt.Errorf("delete credential: %w", err)
	}

	s.logger.Info().
		Str("shop", req.ShopDomain).
		Int64("customerId", req.Customer.ID).
		Int64("ordersDeleted", deleted).
		Msg("Customer data redacted")
	return &domain.ComplianceResult{Success: true}, nil
}

// shopRedact irreversibly deletes every order, session, and credential
// record for the shop. Rows for other shops are untouched.
func (s *ComplianceService) shopRedact(ctx context.Context, req *domain.ComplianceRequest) (*domain.ComplianceResult, error) {
	ordersDeleted, err := s.orders.DeleteByShop(ctx, req.ShopDomain)
	if err != nil {
		return nil, fmt.Errorf("delete shop orders: %w", err)
	}
	sessionsDeleted, err := s.sessions.DeleteByShop(ctx, req.ShopDomain)
	if err != nil {
		return nil, fmt.Errorf("delete shop sessions: %w", err)
	}
	if err := s.creds.DeleteByShop(ctx, req.ShopDomain); err != nil {
		return nil, fmt.Errorf("delete shop credential: %w", err)
	}

	s.logger.Info().
		Str("shop", req.ShopDomain).
		Int64("ordersDeleted", ordersDeleted).
		Int64("sessionsDeleted", sessionsDeleted).
		Msg("Shop data redacted")
	return &domain.ComplianceResult{Success: true}, nil
}
