package shopify

import (
	"context"
	"errors"
	"fmt"

	"shipdash-shopify-layer/internal/domain"
	"shipdash-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// ErrMalformedPage is returned when the server reports another page but
// supplies no edges to advance the cursor with. Failing closed here is what
// keeps pagination from looping forever on a bad response.
var ErrMalformedPage = errors.New("fulfillment orders page has no edges but reports a next page")

const fulfillmentOrderPageSize = 50

const getFulfillmentOrdersQuery = `
query getFulfillmentOrders($orderId: ID!, $cursor: String) {
  order(id: $orderId) {
    name
    fulfillmentOrders(first: 50, after: $cursor) {
      pageInfo {
        hasNextPage
      }
      edges {
        cursor
        node {
          id
          status
          lineItems(first: 50) {
            edges {
              node {
                id
                totalQuantity
              }
            }
          }
        }
      }
    }
  }
}`

// AdminClient implements the storefront Admin API operations on top of a
// GraphQL transport.
type AdminClient struct {
	doer   ports.GraphQLDoer
	logger zerolog.Logger
}

// NewAdminClient creates an admin client using the given GraphQL transport.
func NewAdminClient(doer ports.GraphQLDoer, logger zerolog.Logger) *AdminClient {
	return &AdminClient{doer: doer, logger: logger}
}

type fulfillmentOrdersResponse struct {
	Data struct {
		Order *struct {
			Name              string `json:"name"`
			FulfillmentOrders struct {
				PageInfo struct {
					HasNextPage bool `json:"hasNextPage"`
				} `json:"pageInfo"`
				Edges []struct {
					Cursor string `json:"cursor"`
					Node   struct {
						ID        string `json:"id"`
						Status    string `json:"status"`
						LineItems struct {
							Edges []struct {
								Node struct {
									ID            string `json:"id"`
									TotalQuantity int    `json:"totalQuantity"`
								} `json:"node"`
							} `json:"edges"`
						} `json:"lineItems"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"fulfillmentOrders"`
		} `json:"order"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// FulfillmentOrders walks the order's fulfillment-order connection page by
// page and returns every node in connection order. Pagination is strictly
// sequential: each page's request cursor is the last edge cursor of the page
// before it.
func (c *AdminClient) FulfillmentOrders(ctx context.Context, shop, accessToken, orderGID string) ([]domain.FulfillmentOrderNode, error) {
	var (
		nodes  []domain.FulfillmentOrderNode
		cursor *string
	)

	for {
		variables := map[string]any{"orderId": orderGID}
		if cursor != nil {
			variables["cursor"] = *cursor
		}

		var resp fulfillmentOrdersResponse
		if err := c.doer.Do(ctx, shop, accessToken, getFulfillmentOrdersQuery, variables, &resp); err != nil {
			return nil, err
		}
		if len(resp.Errors) > 0 {
			return nil, joinGraphQLErrors(resp.Errors)
		}
		if resp.Data.Order == nil {
			return nil, fmt.Errorf("order %s not found", orderGID)
		}

		conn := resp.Data.Order.FulfillmentOrders
		for _, edge := range conn.Edges {
			node := domain.FulfillmentOrderNode{
				ID:     edge.Node.ID,
				Status: edge.Node.Status,
			}
			for _, li := range edge.Node.LineItems.Edges {
				node.LineItems = append(node.LineItems, domain.FulfillmentOrderLineItem{
					ID:       li.Node.ID,
					Quantity: li.Node.TotalQuantity,
				})
			}
			nodes = append(nodes, node)
		}

		if !conn.PageInfo.HasNextPage {
			return nodes, nil
		}
		if len(conn.Edges) == 0 {
			return nil, ErrMalformedPage
		}
		last := conn.Edges[len(conn.Edges)-1].Cursor
		cursor = &last
	}
}

var _ ports.AdminAPI = (*AdminClient)(nil)
