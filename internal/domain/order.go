package domain

import "time"

// Order is an order captured from a storefront webhook, pending or already
// synced to the shipping dashboard.
type Order struct {
	ID                string        `json:"id"`
	Shop              string        `json:"shop"`
	AdminGraphQLAPIID string        `json:"admin_graphql_api_id"`
	Document          OrderDocument `json:"order"`
	Synced            bool          `json:"synced"`
	CreatedAt         time.Time     `json:"created_at"`
}

// OrderDocument is the subset of the storefront order payload this layer
// consumes. Fields not listed here are dropped on ingestion.
type OrderDocument struct {
	ID                int64         `json:"id" bson:"id"`
	AdminGraphQLAPIID string        `json:"admin_graphql_api_id" bson:"admin_graphql_api_id"`
	OrderNumber       int64         `json:"order_number" bson:"order_number"`
	CreatedAt         string        `json:"created_at" bson:"created_at"`
	TotalWeight       int64         `json:"total_weight" bson:"total_weight"`
	TotalPrice        string        `json:"total_price" bson:"total_price"`
	TotalOutstanding  string        `json:"total_outstanding" bson:"total_outstanding"`
	FinancialStatus   string        `json:"financial_status" bson:"financial_status"`
	ContactEmail      string        `json:"contact_email" bson:"contact_email"`
	Email             string        `json:"email" bson:"email"`
	Customer          *Customer     `json:"customer" bson:"customer"`
	BillingAddress    *OrderAddress `json:"billing_address" bson:"billing_address"`
	ShippingAddress   *OrderAddress `json:"shipping_address" bson:"shipping_address"`
	LineItems         []LineItem    `json:"line_items" bson:"line_items"`
}

// Customer carries the customer identity embedded in an order document.
type Customer struct {
	ID    int64  `json:"id" bson:"id"`
	Email string `json:"email" bson:"email"`
}

// OrderAddress is a billing or shipping address on an order document.
type OrderAddress struct {
	Name      string `json:"name" bson:"name"`
	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
	Phone     string `json:"phone" bson:"phone"`
	Address1  string `json:"address1" bson:"address1"`
	Address2  string `json:"address2" bson:"address2"`
	Zip       string `json:"zip" bson:"zip"`
	City      string `json:"city" bson:"city"`
	Province  string `json:"province" bson:"province"`
	Country   string `json:"country" bson:"country"`
}

// LineItem is a purchasable line on an order document.
type LineItem struct {
	Title    string    `json:"title" bson:"title"`
	Name     string    `json:"name" bson:"name"`
	Quantity int       `json:"quantity" bson:"quantity"`
	Price    string    `json:"price" bson:"price"`
	SKU      string    `json:"sku" bson:"sku"`
	TaxLines []TaxLine `json:"tax_lines" bson:"tax_lines"`
}

// TaxLine is a single tax applied to a line item. The title identifies the
// tax bucket (IGST, CGST, SGST) and the rate is a fraction, not a percent.
type TaxLine struct {
	Title string  `json:"title" bson:"title"`
	Rate  float64 `json:"rate" bson:"rate"`
}
