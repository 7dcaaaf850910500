package shopify

import (
	"context"
	"fmt"

	"shipdash-shopify-layer/internal/domain"
)

const createFulfillmentMutation = `
mutation (
  $lineItemsByFulfillmentOrder: [FulfillmentOrderLineItemsInput!]!,
  $carrier: String!,
  $tracking_number: String!,
  $tracking_url: URL
) {
  fulfillmentCreateV2(fulfillment: {
    notifyCustomer: true,
    trackingInfo: {
      company: $carrier,
      number: $tracking_number,
      url: $tracking_url
    },
    lineItemsByFulfillmentOrder: $lineItemsByFulfillmentOrder
  }) {
    fulfillment {
      id
      status
    }
    userErrors {
      field
      message
    }
  }
}`

const getOrderFulfillmentsQuery = `
query GetOrderFulfillments($orderId: ID!) {
  order(id: $orderId) {
    id
    fulfillments {
      id
      status
      createdAt
    }
  }
}`

const createFulfillmentEventMutation = `
mutation (
  $fulfillmentId: ID!
  $status: FulfillmentEventStatus!
  $message: String
) {
  fulfillmentEventCreate(
    fulfillmentEvent: {
      fulfillmentId: $fulfillmentId
      status: $status
      message: $message
    }
  ) {
    fulfillmentEvent {
      id
      status
      happenedAt
    }
    userErrors {
      field
      message
    }
  }
}`

type fulfillmentCreateResponse struct {
	Data struct {
		FulfillmentCreateV2 struct {
			Fulfillment *struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"fulfillment"`
			UserErrors []domain.UserError `json:"userErrors"`
		} `json:"fulfillmentCreateV2"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// CreateFulfillment issues one mutation covering the full line-item
// allocation. The mutation either applies as a whole or reports user errors;
// there is no partial application to reconcile.
func (c *AdminClient) CreateFulfillment(ctx context.Context, shop, accessToken string, lineItems []domain.FulfillmentOrderLineItemsInput, tracking domain.TrackingInfo) (*domain.FulfillmentCreateResult, error) {
	variables := map[string]any{
		"lineItemsByFulfillmentOrder": lineItems,
		"carrier":                     tracking.Company,
		"tracking_number":             tracking.Number,
		"tracking_url":                tracking.URL,
	}

	var resp fulfillmentCreateResponse
	if err := c.doer.Do(ctx, shop, accessToken, createFulfillmentMutation, variables, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, joinGraphQLErrors(resp.Errors)
	}

	result := &domain.FulfillmentCreateResult{
		UserErrors: resp.Data.FulfillmentCreateV2.UserErrors,
	}
	if f := resp.Data.FulfillmentCreateV2.Fulfillment; f != nil {
		result.FulfillmentID = f.ID
		result.Status = f.Status
	}
	return result, nil
}

type orderFulfillmentsResponse struct {
	Data struct {
		Order *struct {
			ID           string `json:"id"`
			Fulfillments []struct {
				ID        string `json:"id"`
				Status    string `json:"status"`
				CreatedAt string `json:"createdAt"`
			} `json:"fulfillments"`
		} `json:"order"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Fulfillments lists the existing fulfillments on an order.
func (c *AdminClient) Fulfillments(ctx context.Context, shop, accessToken, orderGID string) ([]domain.Fulfillment, error) {
	var resp orderFulfillmentsResponse
	if err := c.doer.Do(ctx, shop, accessToken, getOrderFulfillmentsQuery, map[string]any{"orderId": orderGID}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, joinGraphQLErrors(resp.Errors)
	}
	if resp.Data.Order == nil {
		return nil, fmt.Errorf("order %s not found", orderGID)
	}

	fulfillments := make([]domain.Fulfillment, 0, len(resp.Data.Order.Fulfillments))
	for _, f := range resp.Data.Order.Fulfillments {
		fulfillments = append(fulfillments, domain.Fulfillment{
			ID:        f.ID,
			Status:    f.Status,
			CreatedAt: f.CreatedAt,
		})
	}
	return fulfillments, nil
}

type fulfillmentEventCreateResponse struct {
	Data struct {
		FulfillmentEventCreate struct {
			FulfillmentEvent *struct {
				ID         string `json:"id"`
				Status     string `json:"status"`
				HappenedAt string `json:"happenedAt"`
			} `json:"fulfillmentEvent"`
			UserErrors []domain.UserError `json:"userErrors"`
		} `json:"fulfillmentEventCreate"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// CreateFulfillmentEvent records one status event against a fulfillment.
func (c *AdminClient) CreateFulfillmentEvent(ctx context.Context, shop, accessToken, fulfillmentID, status, message string) (*domain.FulfillmentEventResult, error) {
	variables := map[string]any{
		"fulfillmentId": fulfillmentID,
		"status":        status,
		"message":       message,
	}

	var resp fulfillmentEventCreateResponse
	if err := c.doer.Do(ctx, shop, accessToken, createFulfillmentEventMutation, variables, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, joinGraphQLErrors(resp.Errors)
	}

	result := &domain.FulfillmentEventResult{
		FulfillmentID: fulfillmentID,
		UserErrors:    resp.Data.FulfillmentEventCreate.UserErrors,
	}
	if e := resp.Data.FulfillmentEventCreate.FulfillmentEvent; e != nil {
		result.EventID = e.ID
		result.Status = e.Status
		result.HappenedAt = e.HappenedAt
	}
	return result, nil
}
