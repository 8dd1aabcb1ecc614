package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shop-admin/internal/repository"
	"github.com/tuanvumaihuynh/shop-admin/internal/service"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore/memstore"
	"github.com/tuanvumaihuynh/shop-admin/pkg/validator"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	v := validator.MustNewDefaultValidator()

	s := &seeder{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		products:     service.NewProductService(store, v, repository.NewProductRepository(store), repository.NewOutboxMsgRepository(store)),
		customers:    service.NewCustomerService(store, v, repository.NewCustomerRepository(store)),
		businessInfo: service.NewBusinessInfoService(store, v, repository.NewBusinessInfoRepository(store)),
	}

	t.Run("Should seed empty collections", func(t *testing.T) {
		require.NoError(t, s.Seed(ctx))

		products, err := s.products.ListAllProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, products, len(sampleProducts))

		customers, err := s.customers.ListAllCustomers(ctx)
		require.NoError(t, err)
		assert.Len(t, customers, len(sampleCustomers))

		infos, err := s.businessInfo.ListBusinessInfo(ctx)
		require.NoError(t, err)
		assert.Len(t, infos, 1)
	})

	t.Run("Should not duplicate on a second run", func(t *testing.T) {
		require.NoError(t, s.Seed(ctx))

		products, err := s.products.ListAllProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, products, len(sampleProducts))
	})
}
