package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/shop-admin/internal/apperr"
	"github.com/tuanvumaihuynh/shop-admin/internal/event"
	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/repository"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
	"github.com/tuanvumaihuynh/shop-admin/pkg/search"
	"github.com/tuanvumaihuynh/shop-admin/pkg/validator"
)

type VariantParams struct {
	VariantID     string          `json:"variantId"`
	Type          string          `json:"type" validate:"required"`
	Size          string          `json:"size"`
	Color         string          `json:"color"`
	SellingPrice  decimal.Decimal `json:"sellingPrice" validate:"money"`
	StockQuantity int             `json:"stockQuantity" validate:"gte=0"`
	Description   string          `json:"description"`
	Images        []string        `json:"images"`
}

type CreateProductParams struct {
	ProductCode  string          `json:"productCode"`
	Name         string          `json:"name" validate:"required"`
	Category     string          `json:"category" validate:"required"`
	Description  string          `json:"description"`
	ProductImage string          `json:"productImage"`
	Status       string          `json:"status"`
	Variants     []VariantParams `json:"variants" validate:"required,min=1,dive"`
}

// UpdateProductParams changes the non-nil fields only. Variants, when given,
// replace the whole variant list.
type UpdateProductParams struct {
	ProductCode  *string          `json:"productCode"`
	Name         *string          `json:"name" validate:"omitempty,min=1"`
	Category     *string          `json:"category" validate:"omitempty,min=1"`
	Description  *string          `json:"description"`
	ProductImage *string          `json:"productImage"`
	Status       *string          `json:"status"`
	Variants     *[]VariantParams `json:"variants" validate:"omitempty,min=1,dive"`
}

type ListProductsParams struct {
	// Query is matched against name, category and variant type, color and size.
	Query    string
	Category string
}

type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	ListAllProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id string, params UpdateProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type productService struct {
	store         docstore.Store
	validator     validator.Validator
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewProductService(
	store docstore.Store,
	validator validator.Validator,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		store:         store,
		validator:     validator,
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	if err := s.validator.Validate(params); err != nil {
		return model.Product{}, err
	}

	id, err := newID()
	if err != nil {
		return model.Product{}, err
	}

	variants, err := toVariants(params.Variants)
	if err != nil {
		return model.Product{}, err
	}

	ts := now()
	product := model.Product{
		ID:           id,
		ProductCode:  params.ProductCode,
		Name:         params.Name,
		Category:     params.Category,
		Description:  params.Description,
		ProductImage: params.ProductImage,
		Status:       productStatus(params.Status),
		Variants:     variants,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	msg, err := newOutboxMsg(ctx, event.TopicProductCreated, product.ID, event.ProductCreatedEvent{
		ProductID:    product.ID,
		Name:         product.Name,
		Category:     product.Category,
		VariantCount: len(product.Variants),
		TotalStock:   product.TotalStock(),
	})
	if err != nil {
		return model.Product{}, err
	}

	if err := s.store.WithTx(ctx, func(ctx context.Context) error {
		if err := s.productRepo.CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		if err := s.outboxMsgRepo.CreateOutboxMsg(ctx, msg); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("store with tx: %w", err)
	}

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, mapNotFound(err, apperr.ProductNotFoundErr)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	var (
		products []model.Product
		err      error
	)
	if params.Category != "" {
		products, err = s.productRepo.ListProductsByCategory(ctx, params.Category)
	} else {
		products, err = s.productRepo.ListAllProducts(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("product repository list products: %w", err)
	}

	return search.Filter(products, params.Query, productSearchFields), nil
}

func (s *productService) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list all products: %w", err)
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, params UpdateProductParams) (model.Product, error) {
	if err := s.validator.Validate(params); err != nil {
		return model.Product{}, err
	}

	var product model.Product
	if err := s.store.WithTx(ctx, func(ctx context.Context) error {
		var err error
		product, err = s.productRepo.GetProduct(ctx, id)
		if err != nil {
			return mapNotFound(err, apperr.ProductNotFoundErr)
		}

		if params.ProductCode != nil {
			product.ProductCode = *params.ProductCode
		}
		if params.Name != nil {
			product.Name = *params.Name
		}
		if params.Category != nil {
			product.Category = *params.Category
		}
		if params.Description != nil {
			product.Description = *params.Description
		}
		if params.ProductImage != nil {
			product.ProductImage = *params.ProductImage
		}
		if params.Status != nil {
			product.Status = productStatus(*params.Status)
		}
		if params.Variants != nil {
			if product.Variants, err = toVariants(*params.Variants); err != nil {
				return err
			}
		}
		product.UpdatedAt = now()

		return s.productRepo.UpdateProduct(ctx, product)
	}); err != nil {
		return model.Product{}, fmt.Errorf("update product %s: %w", id, err)
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		return mapNotFound(err, apperr.ProductNotFoundErr)
	}
	return nil
}

func productSearchFields(p model.Product) []string {
	fields := []string{p.Name, p.Category}
	for _, v := range p.Variants {
		fields = append(fields, v.Type, v.Color, v.Size)
	}
	return fields
}

func productStatus(s string) string {
	if s = model.NormalizeStatus(s); strings.TrimSpace(s) == "" {
		return model.ProductStatusActive
	}
	return s
}

func toVariants(params []VariantParams) ([]model.Variant, error) {
	variants := make([]model.Variant, 0, len(params))
	for _, p := range params {
		id := p.VariantID
		if id == "" {
			var err error
			if id, err = newID(); err != nil {
				return nil, err
			}
		}

		variants = append(variants, model.Variant{
			VariantID:     id,
			Type:          p.Type,
			Size:          p.Size,
			Color:         p.Color,
			SellingPrice:  p.SellingPrice,
			StockQuantity: p.StockQuantity,
			Description:   p.Description,
			Images:        p.Images,
		})
	}
	return variants, nil
}
