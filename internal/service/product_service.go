package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/ministore/internal/datamodels/product"
)

// ProductService is the catalog.
type ProductService struct {
	repo product.Repository
}

func NewProductService(repo product.Repository) *ProductService {
	return &ProductService{repo: repo}
}

// Add creates a catalog entry. Input is rejected before any store call;
// duplicate names are allowed on purpose.
func (s *ProductService) Add(ctx context.Context, name string, price float64) (*product.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	p := &product.Product{
		Name:      name,
		Price:     price,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, storageErr(err)
	}
	return p, nil
}

// List returns the catalog in store order.
func (s *ProductService) List(ctx context.Context) ([]*product.Product, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

// GetByID returns one product, product.ErrNotFound when absent.
func (s *ProductService) GetByID(ctx context.Context, id primitive.ObjectID) (*product.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, err
		}
		return nil, storageErr(err)
	}
	return p, nil
}
