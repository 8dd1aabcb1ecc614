package validator_test

import (
	"errors"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shop-admin/pkg/validator"
)

type variantInput struct {
	Type          string          `json:"type" validate:"required"`
	SellingPrice  decimal.Decimal `json:"sellingPrice" validate:"money"`
	StockQuantity int             `json:"stockQuantity" validate:"gte=0"`
}

func TestDefaultValidator(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	t.Run("Should accept a valid struct", func(t *testing.T) {
		err := v.Validate(variantInput{Type: "Apron", SellingPrice: decimal.RequireFromString("95.00")})

		assert.NoError(t, err)
	})

	t.Run("Should report json field names", func(t *testing.T) {
		err := v.Validate(variantInput{SellingPrice: decimal.NewFromInt(-1), StockQuantity: -2})
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))

		var verrs govalidator.ValidationErrors
		require.True(t, errors.As(err, &verrs))

		fields := map[string]string{}
		for _, fe := range verrs {
			fields[fe.Field()] = validator.ValidationErrorMessage(fe)
		}
		assert.Equal(t, map[string]string{
			"type":          "field is required",
			"sellingPrice":  "must be a non-negative amount",
			"stockQuantity": "must be greater than or equal to 0",
		}, fields)
	})
}
