package domain

import "time"

// ShopCredential holds the shipping dashboard account and the bearer token
// derived from it for one shop. Exactly one record exists per shop; writes go
// through the repository upsert so the last writer wins.
//
// The username/password pair is stored as-is. Encryption at rest is a known
// gap; the repository interface is the seam where it would be added.
type ShopCredential struct {
	Shop       string    `json:"shop"`
	Username   string    `json:"username"`
	Password   string    `json:"password"`
	Token      string    `json:"token"`
	Authorized bool      `json:"authorized"`
	UpdatedAt  time.Time `json:"updated_at"`
}
