package repository

import (
	"context"
	"fmt"
	"time"

	"shipdash-shopify-layer/internal/domain"
	"shipdash-shopify-layer/internal/infrastructure/repository/entity"
	"shipdash-shopify-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCredentialRepository implements CredentialRepository using MongoDB.
// The shop domain is the document id, which is what enforces the one-record-
// per-shop invariant.
type MongoCredentialRepository struct {
	collection *mongo.Collection
}

// NewMongoCredentialRepository creates a new MongoDB credential repository.
func NewMongoCredentialRepository(db *mongo.Database) ports.CredentialRepository {
	return &MongoCredentialRepository{
		collection: db.Collection("credentials"),
	}
}

// GetByShop retrieves the shop's credential record.
func (r *MongoCredentialRepository) GetByShop(ctx context.Context, shop string) (*domain.ShopCredential, error) {
	var doc entity.MongoCredentialDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": shop}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return doc.ToDomain(), nil
}

// Upsert writes the shop's credential record, last writer wins.
func (r *MongoCredentialRepository) Upsert(ctx context.Context, cred *domain.ShopCredential) error {
	doc := entity.MongoCredentialDocFromDomain(cred)
	doc.UpdatedAt = time.Now()

	opts := options.Update().SetUpsert(true)
	update := bson.M{"$set": doc}

	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": cred.Shop}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert credential: %w", err)
	}
	return nil
}

// DeleteByShop removes the shop's credential record.
func (r *MongoCredentialRepository) DeleteByShop(ctx context.Context, shop string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": shop}); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}
