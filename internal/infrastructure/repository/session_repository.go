package repository

import (
	"context"
	"fmt"

	"shipdash-shopify-layer/internal/domain"
	"shipdash-shopify-layer/internal/infrastructure/repository/entity"
	"shipdash-shopify-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSessionRepository implements SessionRepository using MongoDB. The
// session collection is owned by the platform auth layer; this repository
// only reads tokens and erases rows on shop redaction.
type MongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new MongoDB session repository.
func NewMongoSessionRepository(db *mongo.Database) ports.SessionRepository {
	return &MongoSessionRepository{
		collection: db.Collection("sessions"),
	}
}

// GetByShop retrieves a session for the shop.
func (r *MongoSessionRepository) GetByShop(ctx context.Context, shop string) (*domain.Session, error) {
	var doc entity.MongoSessionDoc
	err := r.collection.FindOne(ctx, bson.M{"shop": shop}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return doc.ToDomain(), nil
}

// DeleteByShop removes every session for the shop.
func (r *MongoSessionRepository) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"shop": shop})
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}
	return result.DeletedCount, nil
}
