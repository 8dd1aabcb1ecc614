package zerror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/shop-admin/pkg/zerror"
)

func TestZError(t *testing.T) {
	notFound := zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")

	t.Run("Should match predefined error after wrapping", func(t *testing.T) {
		cause := errors.New("document not found")
		err := fmt.Errorf("get product: %w", notFound.WrapParent(cause))

		assert.ErrorIs(t, err, notFound)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Should not match a different code", func(t *testing.T) {
		other := zerror.NewNotFound("ORDER_NOT_FOUND", "order not found")

		assert.NotErrorIs(t, notFound, other)
	})

	t.Run("Should extract with errors.As", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", notFound.WithMsg("product %s not found", "p-1"))

		var zErr zerror.ZError
		assert.True(t, errors.As(err, &zErr))
		assert.Equal(t, zerror.StatusNotFound, zErr.Status())
		assert.Equal(t, "PRODUCT_NOT_FOUND", zErr.Code())
		assert.Equal(t, "product p-1 not found", zErr.Msg())
	})

	t.Run("Should leave error unchanged when wrapping nil", func(t *testing.T) {
		assert.Equal(t, notFound, notFound.WrapParent(nil))
	})
}
