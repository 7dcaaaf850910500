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

// MongoOrderRepository implements OrderRepository using MongoDB.
type MongoOrderRepository struct {
	collection *mongo.Collection
}

// NewMongoOrderRepository creates a new MongoDB order repository.
func NewMongoOrderRepository(db *mongo.Database) ports.OrderRepository {
	return &MongoOrderRepository{
		collection: db.Collection("orders"),
	}
}

// Upsert saves an order keyed by (shop, id). A redelivered webhook for an
// already-stored order rewrites the same row instead of duplicating it.
func (r *MongoOrderRepository) Upsert(ctx context.Context, order *domain.Order) error {
	doc := entity.MongoOrderDocFromDomain(order)
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": order.ID, "shop": order.Shop}
	update := bson.M{"$set": doc}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert order: %w", err)
	}
	return nil
}

// GetByID retrieves an order by its bare id.
func (r *MongoOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var doc entity.MongoOrderDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return doc.ToDomain(), nil
}

// GetByIDs retrieves the orders matching any of the given ids.
func (r *MongoOrderRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Order, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeOrders(ctx, cursor)
}

// ListByShop returns one page of the shop's orders, newest first, plus the
// total count for the shop.
func (r *MongoOrderRepository) ListByShop(ctx context.Context, shop string, page, pageSize int) ([]*domain.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	filter := bson.M{"shop": shop}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders, err := decodeOrders(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// MarkSynced flips the order's synced flag after a successful vendor push.
func (r *MongoOrderRepository) MarkSynced(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{"synced": true, "updatedAt": time.Now()}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to mark order synced: %w", err)
	}
	return nil
}

// FindByCustomer returns the shop's orders whose embedded document belongs
// to the customer, optionally intersected with an explicit order id list.
func (r *MongoOrderRepository) FindByCustomer(ctx context.Context, shop string, customerID int64, orderIDs []int64) ([]*domain.Order, error) {
	filter := bson.M{
		"shop":              shop,
		"order.customer.id": customerID,
	}
	if len(orderIDs) > 0 {
		filter["order.id"] = bson.M{"$in": orderIDs}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer orders: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeOrders(ctx, cursor)
}

// DeleteByCustomer removes the customer's orders for the shop.
func (r *MongoOrderRepository) DeleteByCustomer(ctx context.Context, shop string, customerID int64) (int64, error) {
	filter := bson.M{
		"shop":              shop,
		"order.customer.id": customerID,
	}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete customer orders: %w", err)
	}
	return result.DeletedCount, nil
}

// DeleteByShop removes every order for the shop.
func (r *MongoOrderRepository) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"shop": shop})
	if err != nil {
		return 0, fmt.Errorf("failed to delete shop orders: %w", err)
	}
	return result.DeletedCount, nil
}

func decodeOrders(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Order, error) {
	var orders []*domain.Order
	for cursor.Next(ctx) {
		var doc entity.MongoOrderDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		orders = append(orders, doc.ToDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return orders, nil
}
