package order

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusPlaced is the only order status in this system; orders are
// immutable once written.
const StatusPlaced = "placed"

// CartItem is a frozen snapshot of a product at add-to-cart time. Name and
// price are copied, so later catalog edits never touch it.
type CartItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Qty       int64   `bson:"qty" json:"qty"`
}

func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Qty)
}

// Order is the persisted record created from a cart at placement. Total is
// computed once from the item snapshots and never recomputed.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Username  string             `bson:"username" json:"username"`
	Items     []CartItem         `bson:"items" json:"items"`
	Total     float64            `bson:"total" json:"total"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Repository is the orders-collection access contract.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*Order, error)
	ListRecent(ctx context.Context, limit int) ([]*Order, error)
}
