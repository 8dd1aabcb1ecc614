// Package apperr lists the domain errors returned by services.
package apperr

import "github.com/tuanvumaihuynh/shop-admin/pkg/zerror"

const (
	ValidationErrorCode      = "VALIDATION_FAILED"
	ProductNotFoundCode      = "PRODUCT_NOT_FOUND"
	VariantNotFoundCode      = "VARIANT_NOT_FOUND"
	OrderNotFoundCode        = "ORDER_NOT_FOUND"
	CustomerNotFoundCode     = "CUSTOMER_NOT_FOUND"
	BusinessInfoNotFoundCode = "BUSINESS_INFO_NOT_FOUND"
	InsufficientStockCode    = "INSUFFICIENT_STOCK"
	InvalidOrderCode         = "INVALID_ORDER"
)

var (
	ValidationErr           = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	ProductNotFoundErr      = zerror.NewNotFound(ProductNotFoundCode, "product not found")
	VariantNotFoundErr      = zerror.NewNotFound(VariantNotFoundCode, "variant not found")
	OrderNotFoundErr        = zerror.NewNotFound(OrderNotFoundCode, "order not found")
	CustomerNotFoundErr     = zerror.NewNotFound(CustomerNotFoundCode, "customer not found")
	BusinessInfoNotFoundErr = zerror.NewNotFound(BusinessInfoNotFoundCode, "business info not found")
	InsufficientStockErr    = zerror.NewConflict(InsufficientStockCode, "insufficient stock")
	InvalidOrderErr         = zerror.NewUnprocessableEntity(InvalidOrderCode, "invalid order")
)
