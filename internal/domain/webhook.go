package domain

// Webhook topics this layer understands. Anything else is acknowledged and
// dropped so the platform does not retry deliveries we will never handle.
const (
	TopicOrdersCreate         = "orders/create"
	TopicCustomersDataRequest = "customers/data_request"
	TopicCustomersRedact      = "customers/redact"
	TopicShopRedact           = "shop/redact"
)

// WebhookEvent is a verified webhook delivery.
type WebhookEvent struct {
	Topic    string `json:"topic"`
	Shop     string `json:"shop"`
	Payload  []byte `json:"payload"`
	Verified bool   `json:"verified"`
}
