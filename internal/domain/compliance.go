package domain

// ComplianceRequest is the decoded payload of a privacy webhook.
type ComplianceRequest struct {
	Topic           string   `json:"-"`
	ShopDomain      string   `json:"shop_domain"`
	Customer        Customer `json:"customer"`
	OrdersRequested []int64  `json:"orders_requested"`
}

// ComplianceResult reports the effect of a compliance operation. Orders is
// populated only for data requests; the caller owns delivery of the export.
type ComplianceResult struct {
	Success bool     `json:"success"`
	Orders  []*Order `json:"orders,omitempty"`
}
