package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/ministore/internal/datamodels/product"
)

type memProductRepo struct {
	products []*product.Product
	creates  int
}

func (r *memProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*product.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, product.ErrNotFound
}

func (r *memProductRepo) ListAll(_ context.Context) ([]*product.Product, error) {
	return append([]*product.Product(nil), r.products...), nil
}

func (r *memProductRepo) Create(_ context.Context, p *product.Product) error {
	r.creates++
	p.ID = primitive.NewObjectID()
	r.products = append(r.products, p)
	return nil
}

type failProductRepo struct{}

func (failProductRepo) GetByID(context.Context, primitive.ObjectID) (*product.Product, error) {
	return nil, errors.New("connection refused")
}
func (failProductRepo) ListAll(context.Context) ([]*product.Product, error) {
	return nil, errors.New("connection refused")
}
func (failProductRepo) Create(context.Context, *product.Product) error {
	return errors.New("connection refused")
}

func TestAddProduct(t *testing.T) {
	repo := &memProductRepo{}
	svc := NewProductService(repo)

	p, err := svc.Add(context.Background(), "Pen", 10.0)
	require.NoError(t, err)
	assert.Equal(t, "Pen", p.Name)
	assert.Equal(t, 10.0, p.Price)
	assert.False(t, p.ID.IsZero())
}

func TestAddProductInvalidInputBeforeStore(t *testing.T) {
	repo := &memProductRepo{}
	svc := NewProductService(repo)
	ctx := context.Background()

	_, err := svc.Add(ctx, "", 10.0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(ctx, "   ", 10.0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(ctx, "Pen", -1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, repo.creates, "invalid input must be rejected before any store call")
}

func TestAddProductFreePriceAllowed(t *testing.T) {
	svc := NewProductService(&memProductRepo{})

	p, err := svc.Add(context.Background(), "Sticker", 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Price)
}

func TestDuplicateProductNamesAllowed(t *testing.T) {
	svc := NewProductService(&memProductRepo{})
	ctx := context.Background()

	p1, err := svc.Add(ctx, "Pen", 10.0)
	require.NoError(t, err)
	p2, err := svc.Add(ctx, "Pen", 10.0)
	require.NoError(t, err)
	assert.NotEqual(t, p1.ID, p2.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2, "no uniqueness constraint on product name")
}

func TestProductStorageUnavailable(t *testing.T) {
	svc := NewProductService(failProductRepo{})
	ctx := context.Background()

	_, err := svc.Add(ctx, "Pen", 10.0)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = svc.GetByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewProductService(&memProductRepo{})

	_, err := svc.GetByID(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, product.ErrNotFound)
}
