package domain

// FulfillmentOrderLineItem is one fulfillable line on a fulfillment order.
type FulfillmentOrderLineItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// FulfillmentOrderNode is a fulfillment order fetched from the storefront
// GraphQL API. Transient: fetched, aggregated, never persisted.
type FulfillmentOrderNode struct {
	ID        string                     `json:"id"`
	Status    string                     `json:"status"`
	LineItems []FulfillmentOrderLineItem `json:"line_items"`
}

// Fulfillment is an existing fulfillment record on an order.
type Fulfillment struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// TrackingInfo is the carrier metadata attached to a new fulfillment.
type TrackingInfo struct {
	Company string `json:"company"`
	Number  string `json:"number"`
	URL     string `json:"url"`
}

// FulfillmentLineItemInput selects a fulfillment-order line item and quantity
// for inclusion in a fulfillment.
type FulfillmentLineItemInput struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// FulfillmentOrderLineItemsInput groups line items under their fulfillment
// order for the create-fulfillment mutation.
type FulfillmentOrderLineItemsInput struct {
	FulfillmentOrderID        string                     `json:"fulfillmentOrderId"`
	FulfillmentOrderLineItems []FulfillmentLineItemInput `json:"fulfillmentOrderLineItems"`
}

// UserError is a field-level error reported by a storefront mutation,
// surfaced to the caller verbatim.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// FulfillmentCreateResult is the outcome of a create-fulfillment mutation.
type FulfillmentCreateResult struct {
	FulfillmentID string      `json:"fulfillment_id,omitempty"`
	Status        string      `json:"status,omitempty"`
	UserErrors    []UserError `json:"user_errors,omitempty"`
}

// FulfillmentEventResult is the per-fulfillment outcome of the status-event
// fan-out. Either the event fields or Err is set, never both.
type FulfillmentEventResult struct {
	FulfillmentID string      `json:"fulfillment_id"`
	EventID       string      `json:"event_id,omitempty"`
	Status        string      `json:"status,omitempty"`
	HappenedAt    string      `json:"happened_at,omitempty"`
	UserErrors    []UserError `json:"user_errors,omitempty"`
	Err           string      `json:"error,omitempty"`
}
