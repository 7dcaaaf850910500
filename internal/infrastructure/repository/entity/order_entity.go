package entity

import (
	"time"

	"shipdash-shopify-layer/internal/domain"
)

// MongoOrderDoc represents a webhook-ingested order in MongoDB. The order
// document is embedded so compliance queries can match on its nested
// customer id.
type MongoOrderDoc struct {
	ID                string               `bson:"_id"`
	Shop              string               `bson:"shop"`
	AdminGraphQLAPIID string               `bson:"adminGraphqlApiId"`
	Order             domain.OrderDocument `bson:"order"`
	Synced            bool                 `bson:"synced"`
	CreatedAt         time.Time            `bson:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoOrderDoc) ToDomain() *domain.Order {
	return &domain.Order{
		ID:                d.ID,
		Shop:              d.Shop,
		AdminGraphQLAPIID: d.AdminGraphQLAPIID,
		Document:          d.Order,
		Synced:            d.Synced,
		CreatedAt:         d.CreatedAt,
	}
}

// MongoOrderDocFromDomain converts a domain entity to a MongoDB document
func MongoOrderDocFromDomain(order *domain.Order) *MongoOrderDoc {
	return &MongoOrderDoc{
		ID:                order.ID,
		Shop:              order.Shop,
		AdminGraphQLAPIID: order.AdminGraphQLAPIID,
		Order:             order.Document,
		Synced:            order.Synced,
		CreatedAt:         order.CreatedAt,
	}
}
