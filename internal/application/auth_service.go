package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"shipdash-shopify-layer/internal/domain"
	"shipdash-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

var (
	// ErrNoCredential means sign-in was requested without explicit
	// credentials and no record exists for the shop.
	ErrNoCredential = errors.New("no credential exists for shop")
	// ErrInvalidCredentials means the dashboard rejected the account.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService exchanges a shop's dashboard account for a bearer token and
// keeps the credential record current. It never retries; retry policy
// belongs to the caller.
type AuthService struct {
	creds  ports.CredentialRepository
	vendor ports.VendorClient
	logger zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAuthService creates an auth service over the credential repository and
// vendor client.
func NewAuthService(creds ports.CredentialRepository, vendor ports.VendorClient, logger zerolog.Logger) *AuthService {
	return &AuthService{
		creds:  creds,
		vendor: vendor,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// shopLock returns the mutex serializing credential refresh for one shop, so
// concurrent batches detecting the same 403 do not race their upserts.
func (s *AuthService) shopLock(shop string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[shop]
	if !ok {
		l = &sync.Mutex{}
		s.locks[shop] = l
	}
	return l
}

// SignIn resolves the effective username/password (explicit arguments
// override the stored record), exchanges them for a token, and upserts the
// result as the shop's single credential record.
func (s *AuthService) SignIn(ctx context.Context, shop, username, password string) (*domain.ShopCredential, error) {
	lock := s.shopLock(shop)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.creds.GetByShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}

	if username == "" && password == "" && existing == nil {
		s.logger.Error().Str("shop", shop).Msg("Sign in requested but no credential exists")
		return nil, ErrNoCredential
	}

	if username == "" && existing != nil {
		username = existing.Username
	}
	if password == "" && existing != nil {
		password = existing.Password
	}

	token, err := s.vendor.AuthToken(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("vendor auth: %w", err)
	}
	if token == "" {
		s.logger.Warn().Str("shop", shop).Str("username", username).Msg("Dashboard rejected credentials")
		return nil, ErrInvalidCredentials
	}

	cred := &domain.ShopCredential{
		Shop:       shop,
		Username:   username,
		Password:   password,
		Token:      token,
		Authorized: true,
		UpdatedAt:  time.Now(),
	}
	if err := s.creds.Upsert(ctx, cred); err != nil {
		return nil, fmt.Errorf("save credential: %w", err)
	}

	s.logger.Info().Str("shop", shop).Str("username", username).Msg("Shop signed in to dashboard")
	return cred, nil
}
