package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/ministore/internal/datamodels/order"
)

type orderRepo struct {
	coll *mongo.Collection
}

// NewOrderRepository creates the orders-collection repository.
func NewOrderRepository(db *mongo.Database) order.Repository {
	return &orderRepo{coll: db.Collection(CollOrders)}
}

func (r *orderRepo) Create(ctx context.Context, o *order.Order) error {
	res, err := r.coll.InsertOne(ctx, o)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid
	}
	return nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*order.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	var list []*order.Order
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepo) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var list []*order.Order
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
