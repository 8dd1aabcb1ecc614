package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const ProductStatusActive = "active"

type Product struct {
	ID           string    `json:"id" bson:"_id"`
	ProductCode  string    `json:"productCode,omitempty" bson:"productCode,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Category     string    `json:"category" bson:"category"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	ProductImage string    `json:"productImage,omitempty" bson:"productImage,omitempty"`
	Status       string    `json:"status" bson:"status"`
	Variants     []Variant `json:"variants" bson:"variants"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Variant is a purchasable size/color/type configuration of a product.
type Variant struct {
	VariantID     string          `json:"variantId,omitempty" bson:"variantId,omitempty"`
	Type          string          `json:"type" bson:"type"`
	Size          string          `json:"size,omitempty" bson:"size,omitempty"`
	Color         string          `json:"color,omitempty" bson:"color,omitempty"`
	SellingPrice  decimal.Decimal `json:"sellingPrice" bson:"sellingPrice"`
	StockQuantity int             `json:"stockQuantity" bson:"stockQuantity"`
	Description   string          `json:"description,omitempty" bson:"description,omitempty"`
	Images        []string        `json:"images,omitempty" bson:"images,omitempty"`
}

// TotalStock sums the stock of all variants as stored.
func (p Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.StockQuantity
	}
	return total
}

// VariantAt returns the variant at index i.
func (p Product) VariantAt(i int) (Variant, bool) {
	if i < 0 || i >= len(p.Variants) {
		return Variant{}, false
	}
	return p.Variants[i], true
}
