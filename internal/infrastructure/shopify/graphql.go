package shopify

import (
	"context"
	"fmt"
	"strings"

	"shipdash-shopify-layer/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// DefaultAPIVersion is the Admin API version used when none is configured.
const DefaultAPIVersion = "2025-04"

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

func joinGraphQLErrors(errs []graphQLError) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return fmt.Errorf("graphql errors: %s", strings.Join(msgs, "; "))
}

// AdminGraphQL executes Admin API GraphQL calls through the go-shopify
// client, one client per (shop, token) pair.
type AdminGraphQL struct {
	app     goshopify.App
	version string
	logger  zerolog.Logger
}

// NewAdminGraphQL creates a GraphQL transport for the given app credentials
// and Admin API version.
func NewAdminGraphQL(apiKey, apiSecret, version string, logger zerolog.Logger) *AdminGraphQL {
	if version == "" {
		version = DefaultAPIVersion
	}
	return &AdminGraphQL{
		app:     goshopify.App{ApiKey: apiKey, ApiSecret: apiSecret},
		version: version,
		logger:  logger,
	}
}

// Do posts one GraphQL document to the shop's Admin API and decodes the
// response into out.
func (g *AdminGraphQL) Do(ctx context.Context, shop, accessToken, query string, variables map[string]any, out any) error {
	client, err := goshopify.NewClient(g.app, shop, accessToken, goshopify.WithVersion(g.version))
	if err != nil {
		return fmt.Errorf("create shopify client: %w", err)
	}
	if err := client.Post(ctx, "graphql.json", graphQLRequest{Query: query, Variables: variables}, out); err != nil {
		return fmt.Errorf("graphql request: %w", err)
	}
	return nil
}

var _ ports.GraphQLDoer = (*AdminGraphQL)(nil)
