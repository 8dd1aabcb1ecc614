package repository

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
)

type BusinessInfoRepository interface {
	CreateBusinessInfo(ctx context.Context, info model.BusinessInfo) error
	GetBusinessInfo(ctx context.Context, id string) (model.BusinessInfo, error)
	ListAllBusinessInfo(ctx context.Context) ([]model.BusinessInfo, error)
	UpdateBusinessInfo(ctx context.Context, info model.BusinessInfo) error
}

type businessInfoRepository struct {
	coll docstore.Collection
}

func NewBusinessInfoRepository(store docstore.Store) BusinessInfoRepository {
	return &businessInfoRepository{coll: store.Collection(model.CollectionBusinessInfo)}
}

func (r businessInfoRepository) CreateBusinessInfo(ctx context.Context, info model.BusinessInfo) error {
	if err := r.coll.Insert(ctx, info.ID, info); err != nil {
		return fmt.Errorf("create business info: %w", err)
	}
	return nil
}

func (r businessInfoRepository) GetBusinessInfo(ctx context.Context, id string) (model.BusinessInfo, error) {
	var info model.BusinessInfo
	if err := r.coll.Get(ctx, id, &info); err != nil {
		return model.BusinessInfo{}, fmt.Errorf("get business info: %w", err)
	}
	return info, nil
}

func (r businessInfoRepository) ListAllBusinessInfo(ctx context.Context) ([]model.BusinessInfo, error) {
	infos := []model.BusinessInfo{}
	if err := r.coll.Find(ctx, docstore.Query{}, &infos); err != nil {
		return nil, fmt.Errorf("list all business info: %w", err)
	}
	return infos, nil
}

func (r businessInfoRepository) UpdateBusinessInfo(ctx context.Context, info model.BusinessInfo) error {
	if err := r.coll.Patch(ctx, info.ID, map[string]any{
		"name":      info.Name,
		"email":     info.Email,
		"phone":     info.Phone,
		"address":   info.Address,
		"vatNumber": info.VATNumber,
		"website":   info.Website,
		"currency":  info.Currency,
		"updatedAt": info.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("update business info: %w", err)
	}
	return nil
}
