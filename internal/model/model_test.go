package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/shop-admin/internal/model"
)

func TestStatusIs(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want bool
	}{
		{name: "same tag", s: "paid", want: true},
		{name: "different case", s: "PAID", want: true},
		{name: "surrounding spaces", s: " paid", want: false},
		{name: "other tag", s: "pending", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.StatusIs(tt.s, model.PaymentStatusPaid))
		})
	}
}

func TestProductTotalStock(t *testing.T) {
	t.Run("Should sum variant stock as stored", func(t *testing.T) {
		p := model.Product{Variants: []model.Variant{{StockQuantity: 12}, {StockQuantity: -3}}}
		assert.Equal(t, 9, p.TotalStock())
	})

	t.Run("Should be zero without variants", func(t *testing.T) {
		assert.Zero(t, model.Product{}.TotalStock())
	})
}
