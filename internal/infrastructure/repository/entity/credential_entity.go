package entity

import (
	"time"

	"shipdash-shopify-layer/internal/domain"
)

// MongoCredentialDoc represents a shop's dashboard credential in MongoDB.
type MongoCredentialDoc struct {
	Shop       string    `bson:"_id"`
	Username   string    `bson:"username"`
	Password   string    `bson:"password"`
	Token      string    `bson:"token"`
	Authorized bool      `bson:"authorized"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoCredentialDoc) ToDomain() *domain.ShopCredential {
	return &domain.ShopCredential{
		Shop:       d.Shop,
		Username:   d.Username,
		Password:   d.Password,
		Token:      d.Token,
		Authorized: d.Authorized,
		UpdatedAt:  d.UpdatedAt,
	}
}

// MongoCredentialDocFromDomain converts a domain entity to a MongoDB document
func MongoCredentialDocFromDomain(cred *domain.ShopCredential) *MongoCredentialDoc {
	return &MongoCredentialDoc{
		Shop:       cred.Shop,
		Username:   cred.Username,
		Password:   cred.Password,
		Token:      cred.Token,
		Authorized: cred.Authorized,
		UpdatedAt:  cred.UpdatedAt,
	}
}
