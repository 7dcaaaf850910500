package domain

import "time"

// Session is a storefront app session written by the platform's own auth
// handshake. This layer only reads the access token and deletes sessions on
// shop redaction; it never mints them.
type Session struct {
	ID          string    `json:"id"`
	Shop        string    `json:"shop"`
	AccessToken string    `json:"access_token"`
	Scopes      []string  `json:"scopes"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}
