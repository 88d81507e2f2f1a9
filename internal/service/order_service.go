package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/ministore/internal/datamodels/order"
)

// OrderService is the order ledger.
type OrderService struct {
	repo order.Repository
}

func NewOrderService(repo order.Repository) *OrderService {
	return &OrderService{repo: repo}
}

// Place freezes the cart into an immutable order. The total comes from the
// item snapshots, never from a fresh catalog lookup, so a price change
// mid-cart cannot move it. On a store failure nothing is recorded and the
// caller must keep the cart for retry.
func (s *OrderService) Place(ctx context.Context, userID primitive.ObjectID, username string, items []order.CartItem) (*order.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidInput)
	}
	var total float64
	for _, it := range items {
		if it.Qty < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("%w: item price must not be negative", ErrInvalidInput)
		}
		total += it.Subtotal()
	}

	o := &order.Order{
		UserID:    userID,
		Username:  username,
		Items:     append([]order.CartItem(nil), items...),
		Total:     total,
		Status:    order.StatusPlaced,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, storageErr(err)
	}
	GetMonitor().RecordOrderPlaced()
	return o, nil
}

// ListByUser returns a shopper's order history, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*order.Order, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

// ListRecent returns the latest orders for the admin dashboard.
func (s *OrderService) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	list, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}
