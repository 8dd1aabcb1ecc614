package service

import (
	"context"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shop-admin/internal/apperr"
	"github.com/tuanvumaihuynh/shop-admin/pkg/ptr"
)

func TestBusinessInfoService(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create, list and update business info", func(t *testing.T) {
		f := newFixture(t)

		info, err := f.businesses.CreateBusinessInfo(ctx, CreateBusinessInfoParams{Name: "Umoya Threads", VATNumber: "4123456789"})
		require.NoError(t, err)
		assert.Equal(t, "ZAR", info.Currency)

		infos, err := f.businesses.ListBusinessInfo(ctx)
		require.NoError(t, err)
		require.Len(t, infos, 1)
		assert.Equal(t, "Umoya Threads", infos[0].Name)

		got, err := f.businesses.UpdateBusinessInfo(ctx, info.ID, UpdateBusinessInfoParams{Phone: ptr.New("0215550000")})
		require.NoError(t, err)
		assert.Equal(t, "0215550000", got.Phone)
		assert.Equal(t, "4123456789", got.VATNumber)
	})

	t.Run("Should validate email and currency", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.businesses.CreateBusinessInfo(ctx, CreateBusinessInfoParams{Name: "x", Email: "nope", Currency: "RAND"})
		var verrs govalidator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
	})

	t.Run("Should return not found for an unknown id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.businesses.GetBusinessInfo(ctx, "missing")
		assert.ErrorIs(t, err, apperr.BusinessInfoNotFoundErr)
	})
}
