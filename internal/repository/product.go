package repository

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product model.Product) error
	GetProduct(ctx context.Context, id string) (model.Product, error)
	ListAllProducts(ctx context.Context) ([]model.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	// UpdateProduct overwrites every mutable field of the stored product.
	UpdateProduct(ctx context.Context, product model.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type productRepository struct {
	coll docstore.Collection
}

func NewProductRepository(store docstore.Store) ProductRepository {
	return &productRepository{coll: store.Collection(model.CollectionProducts)}
}

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) error {
	if err := r.coll.Insert(ctx, product.ID, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r productRepository) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var product model.Product
	if err := r.coll.Get(ctx, id, &product); err != nil {
		return model.Product{}, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (r productRepository) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	if err := r.coll.Find(ctx, docstore.Query{}, &products); err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	return products, nil
}

func (r productRepository) ListProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	products := []model.Product{}
	q := docstore.Query{Where: []docstore.Condition{docstore.Eq("category", category)}}
	if err := r.coll.Find(ctx, q, &products); err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return products, nil
}

func (r productRepository) UpdateProduct(ctx context.Context, product model.Product) error {
	if err := r.coll.Patch(ctx, product.ID, map[string]any{
		"productCode":  product.ProductCode,
		"name":         product.Name,
		"category":     product.Category,
		"description":  product.Description,
		"productImage": product.ProductImage,
		"status":       product.Status,
		"variants":     product.Variants,
		"updatedAt":    product.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id string) error {
	if err := r.coll.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
