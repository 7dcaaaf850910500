package entity

import (
	"time"

	"shipdash-shopify-layer/internal/domain"
)

// MongoSessionDoc represents a storefront app session in MongoDB. Sessions
// are written by the platform's auth layer; this side only reads and erases.
type MongoSessionDoc struct {
	ID          string    `bson:"_id"`
	Shop        string    `bson:"shop"`
	AccessToken string    `bson:"accessToken"`
	Scopes      []string  `bson:"scopes"`
	ExpiresAt   time.Time `bson:"expiresAt"`
	CreatedAt   time.Time `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoSessionDoc) ToDomain() *domain.Session {
	return &domain.Session{
		ID:          d.ID,
		Shop:        d.Shop,
		AccessToken: d.AccessToken,
		Scopes:      d.Scopes,
		ExpiresAt:   d.ExpiresAt,
		CreatedAt:   d.CreatedAt,
	}
}
