package service

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/shop-admin/internal/apperr"
	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/repository"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
	"github.com/tuanvumaihuynh/shop-admin/pkg/validator"
)

const defaultCurrency = "ZAR"

type CreateBusinessInfoParams struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	VATNumber string `json:"vatNumber"`
	Website   string `json:"website" validate:"omitempty,url"`
	Currency  string `json:"currency" validate:"omitempty,len=3"`
}

type UpdateBusinessInfoParams struct {
	Name      *string `json:"name" validate:"omitempty,min=1"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	VATNumber *string `json:"vatNumber"`
	Website   *string `json:"website" validate:"omitempty,url"`
	Currency  *string `json:"currency" validate:"omitempty,len=3"`
}

type BusinessInfoService interface {
	CreateBusinessInfo(ctx context.Context, params CreateBusinessInfoParams) (model.BusinessInfo, error)
	GetBusinessInfo(ctx context.Context, id string) (model.BusinessInfo, error)
	ListBusinessInfo(ctx context.Context) ([]model.BusinessInfo, error)
	UpdateBusinessInfo(ctx context.Context, id string, params UpdateBusinessInfoParams) (model.BusinessInfo, error)
}

type businessInfoService struct {
	store            docstore.Store
	validator        validator.Validator
	businessInfoRepo repository.BusinessInfoRepository
}

func NewBusinessInfoService(
	store docstore.Store,
	validator validator.Validator,
	businessInfoRepo repository.BusinessInfoRepository,
) BusinessInfoService {
	return &businessInfoService{
		store:            store,
		validator:        validator,
		businessInfoRepo: businessInfoRepo,
	}
}

func (s *businessInfoService) CreateBusinessInfo(ctx context.Context, params CreateBusinessInfoParams) (model.BusinessInfo, error) {
	if err := s.validator.Validate(params); err != nil {
		return model.BusinessInfo{}, err
	}

	id, err := newID()
	if err != nil {
		return model.BusinessInfo{}, err
	}

	currency := params.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	ts := now()
	info := model.BusinessInfo{
		ID:        id,
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		Address:   params.Address,
		VATNumber: params.VATNumber,
		Website:   params.Website,
		Currency:  currency,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	if err := s.businessInfoRepo.CreateBusinessInfo(ctx, info); err != nil {
		return model.BusinessInfo{}, fmt.Errorf("business info repository create business info: %w", err)
	}

	return info, nil
}

func (s *businessInfoService) GetBusinessInfo(ctx context.Context, id string) (model.BusinessInfo, error) {
	info, err := s.businessInfoRepo.GetBusinessInfo(ctx, id)
	if err != nil {
		return model.BusinessInfo{}, mapNotFound(err, apperr.BusinessInfoNotFoundErr)
	}
	return info, nil
}

func (s *businessInfoService) ListBusinessInfo(ctx context.Context) ([]model.BusinessInfo, error) {
	infos, err := s.businessInfoRepo.ListAllBusinessInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("business info repository list all business info: %w", err)
	}
	return infos, nil
}

func (s *businessInfoService) UpdateBusinessInfo(ctx context.Context, id string, params UpdateBusinessInfoParams) (model.BusinessInfo, error) {
	if err := s.validator.Validate(params); err != nil {
		return model.BusinessInfo{}, err
	}

	var info model.BusinessInfo
	if err := s.store.WithTx(ctx, func(ctx context.Context) error {
		var err error
		info, err = s.businessInfoRepo.GetBusinessInfo(ctx, id)
		if err != nil {
			return mapNotFound(err, apperr.BusinessInfoNotFoundErr)
		}

		setIfNotNil(&info.Name, params.Name)
		setIfNotNil(&info.Email, params.Email)
		setIfNotNil(&info.Phone, params.Phone)
		setIfNotNil(&info.Address, params.Address)
		setIfNotNil(&info.VATNumber, params.VATNumber)
		setIfNotNil(&info.Website, params.Website)
		setIfNotNil(&info.Currency, params.Currency)
		info.UpdatedAt = now()

		return s.businessInfoRepo.UpdateBusinessInfo(ctx, info)
	}); err != nil {
		return model.BusinessInfo{}, fmt.Errorf("update business info %s: %w", id, err)
	}

	return info, nil
}
