package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

var (
	// ErrMissingSignature is returned when the HMAC header is absent.
	ErrMissingSignature = errors.New("missing webhook signature header")
	// ErrInvalidSignature is returned when the HMAC does not match the body.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// WebhookVerifier authenticates webhook deliveries against the shared
// webhook secret.
type WebhookVerifier struct {
	secret []byte
}

// NewWebhookVerifier creates a verifier for the given shared secret.
func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: []byte(secret)}
}

// Verify checks the base64 HMAC-SHA256 of the raw, unparsed request body
// against the signature header. The comparison is constant-time.
func (v *WebhookVerifier) Verify(body []byte, signature string) error {
	if signature == "" {
		return ErrMissingSignature
	}
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
